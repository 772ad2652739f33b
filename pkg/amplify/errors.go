package amplify

import "errors"

// ErrInsufficientEntropy indicates the Devetak-Winter final length m
// fell below the configured minimum final-key length.
var ErrInsufficientEntropy = errors.New("amplify: insufficient entropy for minimum key length")
