// Package qkd implements the protocol orchestrator: it sequences
// Cascade reconciliation, polynomial-hash verification, and Toeplitz
// privacy amplification over an authenticated channel, and maps every
// component failure to a terminal Result.
package qkd

import (
	"context"
	"errors"

	"github.com/pion/logging"
	"github.com/qkdpost/core/pkg/amplify"
	"github.com/qkdpost/core/pkg/cascade"
	"github.com/qkdpost/core/pkg/channel"
	"github.com/qkdpost/core/pkg/partystate"
	"github.com/qkdpost/core/pkg/verify"
)

// Run executes the full post-processing pipeline for one party and
// returns a terminal Result; it never returns a Go error, since every
// failure mode is itself part of the result.
func Run(ctx context.Context, role partystate.Role, source RawKeySource, ch *channel.Channel, preSharedSeed []byte, opts Options) Result {
	// On any return path the channel is closed so a peer blocked in
	// Recv observes a transport failure rather than hanging forever.
	defer ch.Close()

	opts = opts.withDefaults()
	var log logging.LeveledLogger
	if opts.LoggerFactory != nil {
		log = opts.LoggerFactory.NewLogger("qkd")
	}

	rawKey, qberEst, sampleSize, err := source.Sift()
	if err != nil {
		return Result{Reason: ProtocolError, EstimatedQBER: qberEst}
	}

	// N=0 always yields InsufficientEntropy: Devetak-Winter with
	// n_rec=0 can never clear MIN_KEY_LENGTH, so this is never a
	// vacuous success.
	if rawKey.Len() == 0 {
		return Result{Reason: InsufficientEntropy, EstimatedQBER: qberEst}
	}

	if qberEst > opts.AbortThreshold {
		if log != nil {
			log.Warnf("qkd: estimated QBER %.4f exceeds abort threshold %.4f", qberEst, opts.AbortThreshold)
		}
		return Result{Reason: QberTooHigh, EstimatedQBER: qberEst}
	}

	rc := cascade.New(cascade.Config{
		Channel:       ch,
		Role:          role,
		PreSharedSeed: preSharedSeed,
		Passes:        opts.Passes,
		LoggerFactory: opts.LoggerFactory,
	})
	reconciled, reconcileLeakage, err := rc.Run(ctx, rawKey, qberEst)
	if err != nil {
		return Result{Reason: reasonFromError(err), EstimatedQBER: qberEst, LeakageBits: reconcileLeakage}
	}

	vf, err := verify.New(verify.Config{
		Channel:       ch,
		Role:          role,
		FieldWidth:    opts.FieldWidth,
		LoggerFactory: opts.LoggerFactory,
	})
	if err != nil {
		partystate.ZeroizeAll(reconciled)
		return Result{Reason: ProtocolError, EstimatedQBER: qberEst, LeakageBits: reconcileLeakage}
	}
	verifyLeakage, err := vf.Run(reconciled)
	totalLeakage := reconcileLeakage + verifyLeakage
	if err != nil {
		partystate.ZeroizeAll(reconciled)
		return Result{Reason: reasonFromError(err), EstimatedQBER: qberEst, LeakageBits: totalLeakage}
	}

	qUpper := qberEst
	if sampleSize > 0 {
		observedErrors := int(qberEst*float64(sampleSize) + 0.5)
		qUpper = amplify.WilsonUpperBound(observedErrors, sampleSize, opts.WilsonZ)
	}

	m := amplify.FinalLength(reconciled.Len(), qUpper, totalLeakage, opts.EpsilonSec)
	if err := amplify.CheckMinLength(m, opts.MinKeyLength); err != nil {
		partystate.ZeroizeAll(reconciled)
		return Result{Reason: reasonFromError(err), EstimatedQBER: qberEst, LeakageBits: totalLeakage}
	}

	amp := amplify.New(amplify.Config{Channel: ch, Role: role, LoggerFactory: opts.LoggerFactory})
	finalKey, err := amp.Run(reconciled, m)
	partystate.ZeroizeAll(reconciled)
	if err != nil {
		return Result{Reason: reasonFromError(err), EstimatedQBER: qberEst, LeakageBits: totalLeakage}
	}

	if log != nil {
		log.Infof("qkd: session succeeded, %d-bit final key, %d bits leaked", finalKey.Len(), totalLeakage)
	}
	return Result{
		Success:       true,
		FinalKey:      finalKey,
		EstimatedQBER: qberEst,
		LeakageBits:   totalLeakage,
		Reason:        Ok,
	}
}

// reasonFromError maps a component-layer sentinel error to its
// outward-facing Reason.
func reasonFromError(err error) Reason {
	switch {
	case errors.Is(err, channel.ErrIntegrity):
		return IntegrityFailure
	case errors.Is(err, channel.ErrTransport):
		return TransportFailure
	case errors.Is(err, channel.ErrProtocol):
		return ProtocolError
	case errors.Is(err, verify.ErrMismatch):
		return VerificationFailed
	case errors.Is(err, cascade.ErrDivergence):
		return ReconciliationFailure
	case errors.Is(err, amplify.ErrInsufficientEntropy):
		return InsufficientEntropy
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return TransportFailure
	default:
		return ProtocolError
	}
}

