package qkd

import "github.com/pion/logging"

// DefaultMinKeyLength is the test/dev MIN_KEY_LENGTH value. Production
// deployments should override it via Options.MinKeyLength.
const DefaultMinKeyLength = 32

// DefaultAbortThreshold is ABORT_THRESHOLD, the QBER above which a
// session aborts immediately.
const DefaultAbortThreshold = 0.11

// DefaultEpsilonSec is a test-scale security parameter. Production
// deployments should set Options.EpsilonSec to a value around 1e-12.
const DefaultEpsilonSec = 1e-6

// DefaultFieldWidth is the GF(2^n) verification tag width used when
// Options.FieldWidth is unset.
const DefaultFieldWidth = 64

// DefaultWilsonZ is the z-score for the Wilson upper confidence bound
// (1.96 ~ one-sided 97.5% confidence).
const DefaultWilsonZ = 1.96

// Options configures a Run or RunPair invocation. Zero values select
// the defaults above.
type Options struct {
	// MinKeyLength is MIN_KEY_LENGTH: a final key shorter than this
	// causes InsufficientEntropy.
	MinKeyLength int

	// AbortThreshold is ABORT_THRESHOLD: a Q_est above this causes an
	// immediate QberTooHigh abort before any channel traffic.
	AbortThreshold float64

	// EpsilonSec is the session security parameter fed into the
	// Devetak-Winter bound.
	EpsilonSec float64

	// FieldWidth is the polynomial-hash verification tag width, 64 or
	// 128.
	FieldWidth int

	// Passes is the Cascade pass count; zero selects
	// cascade.DefaultPasses.
	Passes int

	// WilsonZ is the z-score used for the Wilson upper confidence
	// bound on the QBER.
	WilsonZ float64

	// LoggerFactory creates per-component loggers. Nil disables
	// logging, matching pkg/commissioning.PASEClientConfig.
	LoggerFactory logging.LoggerFactory
}

func (o Options) withDefaults() Options {
	if o.MinKeyLength <= 0 {
		o.MinKeyLength = DefaultMinKeyLength
	}
	if o.AbortThreshold <= 0 {
		o.AbortThreshold = DefaultAbortThreshold
	}
	if o.EpsilonSec <= 0 {
		o.EpsilonSec = DefaultEpsilonSec
	}
	if o.FieldWidth == 0 {
		o.FieldWidth = DefaultFieldWidth
	}
	if o.WilsonZ <= 0 {
		o.WilsonZ = DefaultWilsonZ
	}
	return o
}
