// Package verify implements the post-reconciliation polynomial-hash
// equality check: agree on a random GF(2^n) evaluation point, fold
// the reconciled key through it via Horner's method, and compare
// tags using a constant-time comparison over an arbitrary-width
// field element.
package verify

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/pion/logging"
	"github.com/qkdpost/core/pkg/bits"
	"github.com/qkdpost/core/pkg/channel"
	"github.com/qkdpost/core/pkg/frame"
	"github.com/qkdpost/core/pkg/partystate"
)

// Config configures a Verifier.
type Config struct {
	Channel *channel.Channel
	Role    partystate.Role

	// FieldWidth is n, the GF(2^n) tag width: 64 or 128. Both parties
	// must agree on it before Run is called.
	FieldWidth int

	LoggerFactory logging.LoggerFactory
}

// Verifier runs the polynomial-hash equality check for one party.
type Verifier struct {
	cfg   Config
	field bits.Field
	log   logging.LeveledLogger
}

// New constructs a Verifier for the configured field width.
func New(cfg Config) (*Verifier, error) {
	field, err := bits.NewField(cfg.FieldWidth)
	if err != nil {
		return nil, err
	}
	v := &Verifier{cfg: cfg, field: field}
	if cfg.LoggerFactory != nil {
		v.log = cfg.LoggerFactory.NewLogger("verify")
	}
	return v, nil
}

// Run agrees on an evaluation point (the Initiator samples it),
// computes and exchanges polynomial-hash tags over key, and returns
// the leaked bit count and ErrMismatch on inequality.
//
// Both parties' tags are exchanged, not only the Initiator's: a
// single-threaded Channel with no out-of-band signaling gives the
// Responder no other way to tell the Initiator the comparison failed.
// This is accounted as 2n bits of leakage rather than the minimum n a
// one-directional exchange would cost, which only overstates leakage
// on the safe side of the Devetak-Winter bound.
func (v *Verifier) Run(key bits.Vector) (int, error) {
	r, err := v.agreeEvaluationPoint()
	if err != nil {
		return 0, err
	}

	mine := v.field.Horner(bits.Pack(key, v.field.N), r)
	theirs, leakage, err := v.exchangeTag(mine)
	if err != nil {
		return leakage, err
	}

	if v.log != nil {
		v.log.Debugf("verify: tags exchanged, %d bits leaked", leakage)
	}

	if !tagsEqual(mine, theirs, v.field.N) {
		return leakage, ErrMismatch
	}
	return leakage, nil
}

func (v *Verifier) agreeEvaluationPoint() (bits.Element, error) {
	if v.cfg.Role == partystate.RoleInitiator {
		r, err := sampleEvaluationPoint(v.field)
		if err != nil {
			return bits.Element{}, err
		}
		payload := frame.EncodeEvaluationPoint(elementToVector(r, v.field.N))
		if err := v.cfg.Channel.Send(frame.VerifyChallenge, payload); err != nil {
			return bits.Element{}, err
		}
		return r, nil
	}
	payload, err := v.cfg.Channel.RecvExpect(frame.VerifyChallenge)
	if err != nil {
		return bits.Element{}, err
	}
	vec, err := frame.DecodeEvaluationPoint(payload)
	if err != nil {
		return bits.Element{}, err
	}
	return vectorToElement(vec, v.field.N), nil
}

func (v *Verifier) exchangeTag(mine bits.Element) (theirs bits.Element, leakage int, err error) {
	n := v.field.N
	send := func() error {
		return v.cfg.Channel.Send(frame.VerifyTag, frame.EncodeTag(elementToVector(mine, n)))
	}
	recv := func() (bits.Element, error) {
		payload, err := v.cfg.Channel.RecvExpect(frame.VerifyTag)
		if err != nil {
			return bits.Element{}, err
		}
		vec, err := frame.DecodeTag(payload)
		if err != nil {
			return bits.Element{}, err
		}
		return vectorToElement(vec, n), nil
	}

	if v.cfg.Role == partystate.RoleInitiator {
		if err := send(); err != nil {
			return bits.Element{}, n, err
		}
		theirs, err = recv()
	} else {
		theirs, err = recv()
		if err == nil {
			err = send()
		}
	}
	return theirs, 2 * n, err
}

// sampleEvaluationPoint draws r uniformly from GF(2^n) \ {0} using a
// CSPRNG.
func sampleEvaluationPoint(field bits.Field) (bits.Element, error) {
	buf := make([]byte, (field.N+7)/8)
	for {
		if _, err := rand.Read(buf); err != nil {
			return bits.Element{}, err
		}
		v, err := bits.FromBytes(buf, field.N)
		if err != nil {
			return bits.Element{}, err
		}
		e := bits.Pack(v, field.N)[0]
		if !e.IsZero() {
			return e, nil
		}
	}
}

func elementToVector(e bits.Element, n int) bits.Vector {
	return bits.Unpack([]bits.Element{e}, n, n)
}

func vectorToElement(v bits.Vector, n int) bits.Element {
	return bits.Pack(v, n)[0]
}

func tagsEqual(a, b bits.Element, n int) bool {
	av := elementToVector(a, n).Bytes()
	bv := elementToVector(b, n).Bytes()
	return subtle.ConstantTimeCompare(av, bv) == 1
}
