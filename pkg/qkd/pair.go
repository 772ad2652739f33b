package qkd

import (
	"context"

	"github.com/qkdpost/core/pkg/channel"
	"github.com/qkdpost/core/pkg/partystate"
	"github.com/qkdpost/core/pkg/transport"
)

// RunPair runs the Initiator and Responder sides of one session
// in-process over an in-memory duplex pipe, for tests and demos. It
// is not part of the core two-party protocol (each party calls Run
// independently in production, against its own half of a real
// channel); it exists purely to exercise both roles together.
func RunPair(ctx context.Context, sharedChannelKey, preSharedSeed []byte, initiatorSource, responderSource RawKeySource, opts Options) (initiatorResult, responderResult Result) {
	a, b := transport.NewInMemoryPair()

	aCh, err := channel.New(channel.Config{Stream: a, SharedChannelKey: sharedChannelKey, LoggerFactory: opts.LoggerFactory})
	if err != nil {
		return Result{Reason: ProtocolError}, Result{Reason: ProtocolError}
	}
	bCh, err := channel.New(channel.Config{Stream: b, SharedChannelKey: sharedChannelKey, LoggerFactory: opts.LoggerFactory})
	if err != nil {
		return Result{Reason: ProtocolError}, Result{Reason: ProtocolError}
	}

	resultsA := make(chan Result, 1)
	resultsB := make(chan Result, 1)

	go func() {
		resultsA <- Run(ctx, partystate.RoleInitiator, initiatorSource, aCh, preSharedSeed, opts)
	}()
	go func() {
		resultsB <- Run(ctx, partystate.RoleResponder, responderSource, bCh, preSharedSeed, opts)
	}()

	return <-resultsA, <-resultsB
}
