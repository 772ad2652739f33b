// Package cascade implements the Cascade information-reconciliation
// stage: multi-pass, shuffled-block parity correction with
// binary-search error localization. This implementation runs the
// barrier-synchronized variant only: passes are separated by an
// explicit CASCADE_PASS_SYNC barrier and no cross-pass backtracking
// is performed.
package cascade

import (
	"context"

	"github.com/pion/logging"
	"github.com/qkdpost/core/pkg/bits"
	"github.com/qkdpost/core/pkg/channel"
	"github.com/qkdpost/core/pkg/frame"
	"github.com/qkdpost/core/pkg/partystate"
)

// Config configures a Reconciler.
type Config struct {
	// Channel is the authenticated transport shared with the peer.
	Channel *channel.Channel

	// Role determines which party applies corrective bit flips
	// (Responder) and which party sends first at every parity exchange
	// (Initiator).
	Role partystate.Role

	// PreSharedSeed derives per-pass permutations identically on both
	// parties.
	PreSharedSeed []byte

	// Passes is the number of Cascade passes P. Zero selects
	// DefaultPasses.
	Passes int

	// LoggerFactory creates the reconciler's logger; nil disables
	// logging, matching pkg/commissioning.PASEClientConfig.
	LoggerFactory logging.LoggerFactory
}

// Reconciler runs the Cascade protocol for one party.
type Reconciler struct {
	cfg Config
	log logging.LeveledLogger
}

// New constructs a Reconciler from cfg.
func New(cfg Config) *Reconciler {
	if cfg.Passes <= 0 {
		cfg.Passes = DefaultPasses
	}
	r := &Reconciler{cfg: cfg}
	if cfg.LoggerFactory != nil {
		r.log = cfg.LoggerFactory.NewLogger("cascade")
	}
	return r
}

// Run reconciles key against the peer's copy over cfg.Channel given
// the estimated QBER, returning the corrected key and the number of
// bits leaked on the channel. key is not mutated; the returned vector
// is an independent copy (equal to key for the Initiator, possibly
// flipped for the Responder).
func (r *Reconciler) Run(ctx context.Context, key bits.Vector, qberEst float64) (bits.Vector, int, error) {
	n := key.Len()
	local := key.Clone()
	if n == 0 {
		return local, 0, nil
	}

	leakage := 0
	k := initialBlockSize(n, qberEst)

	for pass := 1; pass <= r.cfg.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			local.Zeroize()
			return bits.Vector{}, leakage, err
		}

		perm, err := derivePermutation(r.cfg.PreSharedSeed, pass, n)
		if err != nil {
			local.Zeroize()
			return bits.Vector{}, leakage, err
		}
		blocks := splitBlocks(perm, k)

		if r.log != nil {
			r.log.Debugf("cascade: pass %d, block size %d, %d blocks", pass, k, len(blocks))
		}

		for blockIdx, block := range blocks {
			leaked, err := r.runBlock(uint16(pass), uint32(blockIdx), block, local)
			leakage += leaked
			if err != nil {
				local.Zeroize()
				return bits.Vector{}, leakage, err
			}
		}

		if err := r.barrier(pass); err != nil {
			local.Zeroize()
			return bits.Vector{}, leakage, err
		}

		k = nextBlockSize(k, n)
	}

	return local, leakage, nil
}

// runBlock processes a single block: the mutual top-level parity
// exchange and, on mismatch, binary-search localization followed by
// the Responder's corrective flip.
func (r *Reconciler) runBlock(pass uint16, blockIdx uint32, block []int, local bits.Vector) (int, error) {
	leaked := 0
	mine, theirs, err := r.exchangeBlockParity(pass, blockIdx, block, local)
	leaked += 2
	if err != nil {
		return leaked, err
	}
	if mine == theirs {
		return leaked, nil
	}

	pos, subLeaked, err := r.localize(block, local)
	leaked += subLeaked
	if err != nil {
		return leaked, err
	}

	if r.cfg.Role == partystate.RoleResponder {
		local.Flip(pos)
		if r.log != nil {
			r.log.Tracef("cascade: corrected bit %d in pass %d block %d", pos, pass, blockIdx)
		}
	}
	return leaked, nil
}

// barrier exchanges the CASCADE_PASS_SYNC frame that separates passes
// in the barrier-synchronized variant.
func (r *Reconciler) barrier(pass int) error {
	if r.cfg.Role == partystate.RoleInitiator {
		return r.cfg.Channel.Send(frame.CascadePassSync, frame.PassSync{PassIndex: uint16(pass)}.Encode())
	}
	_, err := r.cfg.Channel.RecvExpect(frame.CascadePassSync)
	return err
}
