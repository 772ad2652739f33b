package qkd

import "github.com/qkdpost/core/pkg/bits"

// RawKeySource is the opaque raw-key-distribution front end, modeled
// as an injectable collaborator wired in at construction time rather
// than hard-coded to a concrete quantum layer.
type RawKeySource interface {
	// Sift returns the party's sifted raw key, an estimated QBER, and
	// the sifted sample size backing that estimate (used to form a
	// Wilson-score confidence bound in privacy amplification).
	Sift() (rawKey bits.Vector, qberEstimate float64, sampleSize int, err error)
}

// StaticSource is a fixed-key RawKeySource for tests and the
// cmd/qkdsim demo. It is deliberately trivial: it does not simulate
// BB84 sifting or EPR measurement.
type StaticSource struct {
	Key        bits.Vector
	QBER       float64
	SampleSize int
}

// Sift returns the configured fixed values.
func (s StaticSource) Sift() (bits.Vector, float64, int, error) {
	return s.Key, s.QBER, s.SampleSize, nil
}
