// Package channel implements the authenticated framed classical
// channel: every outbound frame is HMAC-tagged over its type,
// per-direction sequence counter, and serialized payload; every
// inbound frame is verified before its payload is handed to the
// caller. A verification failure is fatal and aborts the session.
package channel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/pion/logging"
	"github.com/qkdpost/core/pkg/frame"
	"github.com/qkdpost/core/pkg/partystate"
)

// TagSize is the HMAC-SHA256 authenticator width in bytes (256 bits):
// the authenticator width always equals the hash output width.
const TagSize = sha256.Size

// maxFrameSize bounds a single frame's wire size to guard against a
// corrupt or adversarial length prefix causing an unbounded
// allocation.
const maxFrameSize = 16 << 20 // 16 MiB; generously covers N in the tens of thousands.

// Channel is the authenticated, length-prefixed framed transport built
// on top of an arbitrary ordered, reliable byte stream.
type Channel struct {
	rw       io.ReadWriter
	key      []byte
	counters partystate.Counters
	log      logging.LeveledLogger
}

// Config configures a new Channel.
type Config struct {
	// Stream is the underlying bidirectional, ordered, reliable byte
	// channel (e.g. a net.Conn or an in-memory pipe).
	Stream io.ReadWriter

	// SharedChannelKey is the pre-established HMAC key. Must be at
	// least MinSharedKeyLen bytes.
	SharedChannelKey []byte

	// LoggerFactory creates the channel's logger. If nil, logging is
	// disabled.
	LoggerFactory logging.LoggerFactory
}

// New wraps stream in an authenticated Channel.
func New(cfg Config) (*Channel, error) {
	if len(cfg.SharedChannelKey) < MinSharedKeyLen {
		return nil, ErrShortKey
	}
	c := &Channel{
		rw:  cfg.Stream,
		key: cfg.SharedChannelKey,
	}
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("channel")
	}
	return c, nil
}

// Send authenticates and transmits one frame of the given type.
func (c *Channel) Send(t frame.MessageType, payload []byte) error {
	seq := c.counters.NextSend()
	tag := c.tag(t, seq, payload)

	body := frame.Frame{Type: t, Payload: payload}.Encode()
	wire := make([]byte, 0, len(body)+TagSize)
	wire = append(wire, body...)
	wire = append(wire, tag...)

	if c.log != nil {
		c.log.Debugf("send %s (seq=%d, %d payload bytes)", t, seq, len(payload))
	}

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(wire)))
	if _, err := c.rw.Write(lenPrefix[:]); err != nil {
		return ErrTransport
	}
	if _, err := c.rw.Write(wire); err != nil {
		return ErrTransport
	}
	return nil
}

// Recv blocks for the next frame, verifies its authenticator, and
// returns its type and payload. A tag mismatch returns ErrIntegrity
// and the caller MUST treat the session as aborted: no further
// messages should be processed. The authenticator is checked before
// the type byte is decoded, so an unknown message type only surfaces
// as ErrProtocol once the frame is known to be genuine.
func (c *Channel) Recv() (frame.MessageType, []byte, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(c.rw, lenPrefix[:]); err != nil {
		return 0, nil, ErrTransport
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	if n == 0 || n > maxFrameSize {
		return 0, nil, ErrTransport
	}

	wire := make([]byte, n)
	if _, err := io.ReadFull(c.rw, wire); err != nil {
		return 0, nil, ErrTransport
	}
	if len(wire) < TagSize {
		return 0, nil, ErrTransport
	}

	body, gotTag := wire[:len(wire)-TagSize], wire[len(wire)-TagSize:]
	if len(body) < 1 {
		return 0, nil, ErrTransport
	}

	// The tag is verified over the raw body, type byte included, before
	// that byte is trusted as a valid MessageType: frame.Decode rejects
	// an out-of-range type before a tag comparison ever runs, which
	// would let a tampered type byte escape as a transport/protocol
	// error instead of being caught as an integrity failure.
	seq := c.counters.NextRecv()
	wantTag := c.tag(frame.MessageType(body[0]), seq, body[1:])
	if !hmac.Equal(gotTag, wantTag) {
		if c.log != nil {
			c.log.Warnf("authenticator mismatch (seq=%d)", seq)
		}
		return 0, nil, ErrIntegrity
	}

	f, err := frame.Decode(body)
	if err != nil {
		return 0, nil, ErrProtocol
	}

	if c.log != nil {
		c.log.Debugf("recv %s (seq=%d, %d payload bytes)", f.Type, seq, len(f.Payload))
	}
	return f.Type, f.Payload, nil
}

// RecvExpect receives the next frame and requires it to have type
// want; any other type is a ProtocolError. At any point in the
// protocol exactly one party expects exactly one message type.
func (c *Channel) RecvExpect(want frame.MessageType) ([]byte, error) {
	got, payload, err := c.Recv()
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, ErrProtocol
	}
	return payload, nil
}

// tag computes the HMAC-SHA256 authenticator over type||seq||payload
// keyed by the shared channel key.
func (c *Channel) tag(t frame.MessageType, seq uint64, payload []byte) []byte {
	h := hmac.New(sha256.New, c.key)
	h.Write(frame.AuthInput(t, seq, payload))
	return h.Sum(nil)
}

// Close closes the underlying stream if it supports closing.
func (c *Channel) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
