package channel

import "errors"

// Channel-layer errors. All are fatal to the session; the
// orchestrator (pkg/qkd) maps them to the corresponding Reason.
var (
	// ErrIntegrity is returned when an inbound frame's authenticator
	// does not verify. Strong indication of active tampering.
	ErrIntegrity = errors.New("channel: authenticator mismatch")

	// ErrTransport covers closed/short reads on the underlying
	// byte stream.
	ErrTransport = errors.New("channel: transport failure")

	// ErrProtocol is returned when a received frame's type does not
	// match what the current protocol turn expects.
	ErrProtocol = errors.New("channel: unexpected message type for this turn")

	// ErrShortKey is returned by New when the shared channel key is
	// below the minimum length (32 bytes).
	ErrShortKey = errors.New("channel: shared channel key must be at least 32 bytes")
)

// MinSharedKeyLen is the minimum SharedChannelKey length.
const MinSharedKeyLen = 32
