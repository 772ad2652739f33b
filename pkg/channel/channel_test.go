package channel

import (
	"bytes"
	"testing"

	"github.com/qkdpost/core/pkg/frame"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, MinSharedKeyLen)
}

func TestSendRecvRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	sender, err := New(Config{Stream: buf, SharedChannelKey: testKey()})
	if err != nil {
		t.Fatal(err)
	}
	receiver, err := New(Config{Stream: buf, SharedChannelKey: testKey()})
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte{1, 2, 3, 4}
	if err := sender.Send(frame.CascadePassParity, payload); err != nil {
		t.Fatalf("Send: %v", err)
	}

	gotType, gotPayload, err := receiver.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if gotType != frame.CascadePassParity {
		t.Errorf("type = %v, want CascadePassParity", gotType)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Errorf("payload = %x, want %x", gotPayload, payload)
	}
}

func TestRecvExpectMismatchIsProtocolError(t *testing.T) {
	buf := &bytes.Buffer{}
	sender, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})
	receiver, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})

	sender.Send(frame.Abort, []byte{1})

	if _, err := receiver.RecvExpect(frame.VerifyTag); err != ErrProtocol {
		t.Errorf("err = %v, want ErrProtocol", err)
	}
}

func TestTamperedFrameTriggersIntegrityError(t *testing.T) {
	buf := &bytes.Buffer{}
	sender, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})
	receiver, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})

	if err := sender.Send(frame.CascadePassParity, []byte{0xAA, 0xBB}); err != nil {
		t.Fatal(err)
	}

	// Flip one payload byte in flight, after the length prefix.
	raw := buf.Bytes()
	raw[4+1+1] ^= 0xFF // offset: 4-byte length, 1-byte type, payload starts at 5

	if _, _, err := receiver.Recv(); err != ErrIntegrity {
		t.Errorf("err = %v, want ErrIntegrity", err)
	}
}

func TestTamperedTypeByteTriggersIntegrityError(t *testing.T) {
	buf := &bytes.Buffer{}
	sender, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})
	receiver, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})

	if err := sender.Send(frame.CascadePassParity, []byte{0xAA, 0xBB}); err != nil {
		t.Fatal(err)
	}

	// Flip the type byte itself, immediately after the 4-byte length
	// prefix. An attacker-controlled type byte must be caught by the
	// authenticator, not by frame.Decode's range check, and must
	// therefore surface as ErrIntegrity rather than ErrTransport or
	// ErrProtocol.
	raw := buf.Bytes()
	raw[4] ^= 0xFF

	if _, _, err := receiver.Recv(); err != ErrIntegrity {
		t.Errorf("err = %v, want ErrIntegrity", err)
	}
}

func TestWrongKeyTriggersIntegrityError(t *testing.T) {
	buf := &bytes.Buffer{}
	sender, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})
	otherKey := bytes.Repeat([]byte{0x99}, MinSharedKeyLen)
	receiver, _ := New(Config{Stream: buf, SharedChannelKey: otherKey})

	sender.Send(frame.VerifyChallenge, []byte{1, 2, 3})

	if _, _, err := receiver.Recv(); err != ErrIntegrity {
		t.Errorf("err = %v, want ErrIntegrity", err)
	}
}

func TestShortKeyRejected(t *testing.T) {
	if _, err := New(Config{Stream: &bytes.Buffer{}, SharedChannelKey: []byte("tooshort")}); err != ErrShortKey {
		t.Errorf("err = %v, want ErrShortKey", err)
	}
}

func TestRecvOnEmptyStreamIsTransportError(t *testing.T) {
	buf := &bytes.Buffer{}
	receiver, _ := New(Config{Stream: buf, SharedChannelKey: testKey()})
	if _, _, err := receiver.Recv(); err != ErrTransport {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}
