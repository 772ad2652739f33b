package cascade

import (
	"github.com/qkdpost/core/pkg/bits"
	"github.com/qkdpost/core/pkg/frame"
	"github.com/qkdpost/core/pkg/partystate"
)

// exchangeBlockParity carries out the mutual top-level parity exchange
// for one block. The Initiator sends first; the Responder replies
// with its own value over the same frame type. Exchanging in both
// directions lets both parties independently learn whether the block
// mismatches, which the single-threaded, request-less Channel
// requires: neither party can otherwise decide whether to enter
// binary search without an extra signal.
func (r *Reconciler) exchangeBlockParity(pass uint16, blockIdx uint32, indices []int, local bits.Vector) (mine, theirs int, err error) {
	mine = bits.Parity(local, indices)
	send := func() error {
		return r.cfg.Channel.Send(frame.CascadePassParity, frame.PassParity{
			PassIndex:  pass,
			BlockIndex: blockIdx,
			ParityBit:  uint8(mine),
		}.Encode())
	}
	recv := func() (int, error) {
		payload, err := r.cfg.Channel.RecvExpect(frame.CascadePassParity)
		if err != nil {
			return 0, err
		}
		pp, err := frame.DecodePassParity(payload)
		if err != nil {
			return 0, err
		}
		return int(pp.ParityBit), nil
	}
	return r.mutualExchange(send, recv, mine)
}

// exchangeSubParity is exchangeBlockParity's counterpart for one
// binary-search level.
func (r *Reconciler) exchangeSubParity(indices []int, local bits.Vector) (mine, theirs int, err error) {
	mine = bits.Parity(local, indices)
	send := func() error {
		return r.cfg.Channel.Send(frame.CascadeBinSearchParity, frame.BinSearchParity{ParityBit: uint8(mine)}.Encode())
	}
	recv := func() (int, error) {
		payload, err := r.cfg.Channel.RecvExpect(frame.CascadeBinSearchParity)
		if err != nil {
			return 0, err
		}
		bp, err := frame.DecodeBinSearchParity(payload)
		if err != nil {
			return 0, err
		}
		return int(bp.ParityBit), nil
	}
	return r.mutualExchange(send, recv, mine)
}

// mutualExchange fixes the turn order shared by every parity exchange
// in this package: the Initiator always sends before receiving, the
// Responder always receives before sending, so a single blocking
// Channel never deadlocks.
func (r *Reconciler) mutualExchange(send func() error, recv func() (int, error), mine int) (int, int, error) {
	if r.cfg.Role == partystate.RoleInitiator {
		if err := send(); err != nil {
			return 0, 0, err
		}
		theirs, err := recv()
		if err != nil {
			return 0, 0, err
		}
		return mine, theirs, nil
	}
	theirs, err := recv()
	if err != nil {
		return 0, 0, err
	}
	if err := send(); err != nil {
		return 0, 0, err
	}
	return mine, theirs, nil
}

// localize runs binary-search error localization over block,
// returning the single original index at which the block's two
// parties disagree and the number of leaked bits spent finding it.
func (r *Reconciler) localize(block []int, local bits.Vector) (pos int, leaked int, err error) {
	cur := block
	for len(cur) > 1 {
		mid := (len(cur) + 1) / 2
		left := cur[:mid]
		mine, theirs, err := r.exchangeSubParity(left, local)
		leaked += 2
		if err != nil {
			return 0, leaked, err
		}
		if mine != theirs {
			cur = left
		} else {
			cur = cur[mid:]
		}
	}
	return cur[0], leaked, nil
}
