package cascade

import "errors"

// ErrDivergence indicates the reconciler could not agree on a
// corrected key within the configured number of passes. The barrier
// variant implemented here never detects this itself (divergence,
// if any, surfaces downstream as a VerificationFailed at C4); it is
// defined for the backtracking variant's future use and for callers
// that wrap Reconciler.Run with their own convergence check.
var ErrDivergence = errors.New("cascade: reconciliation did not converge")
