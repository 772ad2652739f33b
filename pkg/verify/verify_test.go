package verify

import (
	"testing"

	"github.com/qkdpost/core/pkg/bits"
	"github.com/qkdpost/core/pkg/channel"
	"github.com/qkdpost/core/pkg/partystate"
	"github.com/qkdpost/core/pkg/transport"
)

func pairedChannels(t *testing.T) (*channel.Channel, *channel.Channel) {
	t.Helper()
	a, b := transport.NewInMemoryPair()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	aCh, err := channel.New(channel.Config{Stream: a, SharedChannelKey: key})
	if err != nil {
		t.Fatal(err)
	}
	bCh, err := channel.New(channel.Config{Stream: b, SharedChannelKey: key})
	if err != nil {
		t.Fatal(err)
	}
	return aCh, bCh
}

func runPair(t *testing.T, width int, keyA, keyB bits.Vector) (int, error, int, error) {
	t.Helper()
	aCh, bCh := pairedChannels(t)

	type out struct {
		leakage int
		err     error
	}
	resA := make(chan out, 1)
	resB := make(chan out, 1)

	go func() {
		v, err := New(Config{Channel: aCh, Role: partystate.RoleInitiator, FieldWidth: width})
		if err != nil {
			resA <- out{0, err}
			return
		}
		l, err := v.Run(keyA)
		resA <- out{l, err}
	}()
	go func() {
		v, err := New(Config{Channel: bCh, Role: partystate.RoleResponder, FieldWidth: width})
		if err != nil {
			resB <- out{0, err}
			return
		}
		l, err := v.Run(keyB)
		resB <- out{l, err}
	}()

	outA := <-resA
	outB := <-resB
	return outA.leakage, outA.err, outB.leakage, outB.err
}

func testVector(n int, fill int) bits.Vector {
	v := bits.NewVector(n)
	for i := 0; i < n; i++ {
		v.Set(i, (i+fill)%2)
	}
	return v
}

func TestVerifyMatchingKeysSucceed(t *testing.T) {
	key := testVector(256, 0)
	lA, errA, lB, errB := runPair(t, 64, key.Clone(), key.Clone())
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: initiator=%v responder=%v", errA, errB)
	}
	if lA != lB || lA != 128 {
		t.Errorf("leakage = (%d, %d), want (128, 128)", lA, lB)
	}
}

func TestVerifyMismatchedKeysFail(t *testing.T) {
	keyA := testVector(256, 0)
	keyB := testVector(256, 1)
	_, errA, _, errB := runPair(t, 64, keyA, keyB)
	if errA != ErrMismatch {
		t.Errorf("initiator err = %v, want ErrMismatch", errA)
	}
	if errB != ErrMismatch {
		t.Errorf("responder err = %v, want ErrMismatch", errB)
	}
}

func TestVerifyField128(t *testing.T) {
	key := testVector(512, 3)
	lA, errA, lB, errB := runPair(t, 128, key.Clone(), key.Clone())
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: initiator=%v responder=%v", errA, errB)
	}
	if lA != 256 || lB != 256 {
		t.Errorf("leakage = (%d, %d), want (256, 256)", lA, lB)
	}
}

func TestSampleEvaluationPointNonZero(t *testing.T) {
	field, err := bits.NewField(64)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		e, err := sampleEvaluationPoint(field)
		if err != nil {
			t.Fatal(err)
		}
		if e.IsZero() {
			t.Fatal("sampled evaluation point is zero")
		}
	}
}
