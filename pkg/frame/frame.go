package frame

import "encoding/binary"

// Frame is an unauthenticated classical message: a type tag plus its
// already-serialized payload. pkg/channel is responsible for
// attaching and verifying the HMAC authenticator; Frame only concerns
// itself with a deterministic, canonical byte layout.
type Frame struct {
	Type    MessageType
	Payload []byte
}

// Encode serializes f as {1-byte type, payload...}.
func (f Frame) Encode() []byte {
	buf := make([]byte, 1+len(f.Payload))
	buf[0] = byte(f.Type)
	copy(buf[1:], f.Payload)
	return buf
}

// Decode parses a Frame previously produced by Encode.
func Decode(data []byte) (Frame, error) {
	if len(data) < 1 {
		return Frame{}, ErrTooShort
	}
	t := MessageType(data[0])
	if !t.Valid() {
		return Frame{}, ErrUnknownType
	}
	payload := make([]byte, len(data)-1)
	copy(payload, data[1:])
	return Frame{Type: t, Payload: payload}, nil
}

// AuthInput builds the byte string that pkg/channel authenticates:
// message-type || sequence counter || serialized payload. The
// sequence counter is never itself transmitted; it only feeds the
// authenticator.
func AuthInput(t MessageType, seq uint64, payload []byte) []byte {
	buf := make([]byte, 1+8+len(payload))
	buf[0] = byte(t)
	binary.BigEndian.PutUint64(buf[1:9], seq)
	copy(buf[9:], payload)
	return buf
}
