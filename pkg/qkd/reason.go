package qkd

// Reason enumerates the terminal outcome codes of a session.
type Reason int

const (
	Ok Reason = iota
	QberTooHigh
	ReconciliationFailure
	VerificationFailed
	InsufficientEntropy
	IntegrityFailure
	TransportFailure
	ProtocolError
)

func (r Reason) String() string {
	switch r {
	case Ok:
		return "Ok"
	case QberTooHigh:
		return "QberTooHigh"
	case ReconciliationFailure:
		return "ReconciliationFailure"
	case VerificationFailed:
		return "VerificationFailed"
	case InsufficientEntropy:
		return "InsufficientEntropy"
	case IntegrityFailure:
		return "IntegrityFailure"
	case TransportFailure:
		return "TransportFailure"
	case ProtocolError:
		return "ProtocolError"
	default:
		return "Unknown"
	}
}
