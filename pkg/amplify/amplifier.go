// Package amplify implements privacy amplification: the
// Devetak-Winter final-length computation and Toeplitz-hash
// compression of the reconciled key into a final, near-uniform key.
package amplify

import (
	"crypto/rand"

	"github.com/pion/logging"
	"github.com/qkdpost/core/pkg/bits"
	"github.com/qkdpost/core/pkg/channel"
	"github.com/qkdpost/core/pkg/frame"
	"github.com/qkdpost/core/pkg/partystate"
)

// Config configures an Amplifier.
type Config struct {
	Channel       *channel.Channel
	Role          partystate.Role
	LoggerFactory logging.LoggerFactory
}

// Amplifier runs the Toeplitz privacy-amplification step for one
// party.
type Amplifier struct {
	cfg Config
	log logging.LeveledLogger
}

// New constructs an Amplifier.
func New(cfg Config) *Amplifier {
	a := &Amplifier{cfg: cfg}
	if cfg.LoggerFactory != nil {
		a.log = cfg.LoggerFactory.NewLogger("amplify")
	}
	return a
}

// Run compresses kRec (length n_rec) into a final key of length m via
// a Toeplitz hash keyed by a seed the Initiator samples and transmits
// over PA_SEED.
func (a *Amplifier) Run(kRec bits.Vector, m int) (bits.Vector, error) {
	n := kRec.Len()
	seedLen := n + m - 1

	seed, err := a.agreeSeed(seedLen)
	if err != nil {
		return bits.Vector{}, err
	}

	final := Toeplitz(seed, kRec, m)
	if a.log != nil {
		a.log.Debugf("amplify: compressed %d-bit reconciled key to %d-bit final key", n, m)
	}
	return final, nil
}

func (a *Amplifier) agreeSeed(seedLen int) (bits.Vector, error) {
	if a.cfg.Role == partystate.RoleInitiator {
		seed, err := sampleSeed(seedLen)
		if err != nil {
			return bits.Vector{}, err
		}
		if err := a.cfg.Channel.Send(frame.PASeed, frame.EncodeSeed(seed)); err != nil {
			return bits.Vector{}, err
		}
		return seed, nil
	}
	payload, err := a.cfg.Channel.RecvExpect(frame.PASeed)
	if err != nil {
		return bits.Vector{}, err
	}
	return frame.DecodeSeed(payload)
}

// sampleSeed draws a uniformly random Toeplitz seed of the given
// bit length from a CSPRNG.
func sampleSeed(n int) (bits.Vector, error) {
	buf := make([]byte, (n+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return bits.Vector{}, err
	}
	return bits.FromBytes(buf, n)
}
