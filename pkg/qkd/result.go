package qkd

import "github.com/qkdpost/core/pkg/bits"

// Result is the outcome of one session's post-processing pipeline.
type Result struct {
	Success       bool
	FinalKey      bits.Vector
	EstimatedQBER float64
	LeakageBits   int
	Reason        Reason
}
