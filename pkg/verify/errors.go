package verify

import "errors"

// ErrMismatch indicates the two parties' polynomial-hash tags differ,
// meaning residual errors survived Cascade reconciliation.
var ErrMismatch = errors.New("verify: tag mismatch")
