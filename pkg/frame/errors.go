package frame

import "errors"

// Codec errors: package-level sentinels, never panics.
var (
	ErrTooShort        = errors.New("frame: payload too short")
	ErrTrailingBytes   = errors.New("frame: unexpected trailing bytes")
	ErrUnknownType     = errors.New("frame: unknown message type")
	ErrInvalidBitLen   = errors.New("frame: declared bit length exceeds payload")
)
