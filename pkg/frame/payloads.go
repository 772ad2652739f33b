package frame

import (
	"encoding/binary"

	"github.com/qkdpost/core/pkg/bits"
)

// PassParity is the payload of CASCADE_PASS_PARITY and
// CASCADE_BACKTRACK_PARITY frames: the pass and block being reported
// on, and that block's XOR parity bit.
type PassParity struct {
	PassIndex  uint16
	BlockIndex uint32
	ParityBit  uint8
}

// Encode serializes p to its canonical fixed-width layout.
func (p PassParity) Encode() []byte {
	buf := make([]byte, 7)
	binary.BigEndian.PutUint16(buf[0:2], p.PassIndex)
	binary.BigEndian.PutUint32(buf[2:6], p.BlockIndex)
	buf[6] = p.ParityBit
	return buf
}

// DecodePassParity parses the fixed-width PassParity layout.
func DecodePassParity(data []byte) (PassParity, error) {
	if len(data) != 7 {
		return PassParity{}, ErrTooShort
	}
	return PassParity{
		PassIndex:  binary.BigEndian.Uint16(data[0:2]),
		BlockIndex: binary.BigEndian.Uint32(data[2:6]),
		ParityBit:  data[6],
	}, nil
}

// BinSearchParity is the payload of CASCADE_BINSEARCH_PARITY frames:
// a single sub-range parity bit exchanged during binary-search error
// localization.
type BinSearchParity struct {
	ParityBit uint8
}

func (p BinSearchParity) Encode() []byte {
	return []byte{p.ParityBit}
}

func DecodeBinSearchParity(data []byte) (BinSearchParity, error) {
	if len(data) != 1 {
		return BinSearchParity{}, ErrTooShort
	}
	return BinSearchParity{ParityBit: data[0]}, nil
}

// PassSync is the payload of CASCADE_PASS_SYNC barrier frames.
type PassSync struct {
	PassIndex uint16
}

func (p PassSync) Encode() []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, p.PassIndex)
	return buf
}

func DecodePassSync(data []byte) (PassSync, error) {
	if len(data) != 2 {
		return PassSync{}, ErrTooShort
	}
	return PassSync{PassIndex: binary.BigEndian.Uint16(data)}, nil
}

// AbortReason is the payload of ABORT frames: a single reason-code
// byte. The byte values mirror pkg/qkd.Reason.
type AbortReason struct {
	Code uint8
}

func (a AbortReason) Encode() []byte {
	return []byte{a.Code}
}

func DecodeAbortReason(data []byte) (AbortReason, error) {
	if len(data) != 1 {
		return AbortReason{}, ErrTooShort
	}
	return AbortReason{Code: data[0]}, nil
}

// EncodeBitVector writes v using a canonical variable-length layout:
// a big-endian uint32 bit-length prefix followed by the packed bytes
// (trailing bits in the final byte are zero padding on the
// low-order end).
func EncodeBitVector(v bits.Vector) []byte {
	packed := v.Bytes()
	buf := make([]byte, 4+len(packed))
	binary.BigEndian.PutUint32(buf[0:4], uint32(v.Len()))
	copy(buf[4:], packed)
	if r := v.Len() % 8; r != 0 {
		buf[4+v.Len()/8] &= byte(0xFF << uint(8-r))
	}
	return buf
}

// DecodeBitVector reverses EncodeBitVector, validating that the
// declared bit length is consistent with the supplied byte payload.
func DecodeBitVector(data []byte) (bits.Vector, error) {
	if len(data) < 4 {
		return bits.Vector{}, ErrTooShort
	}
	n := int(binary.BigEndian.Uint32(data[0:4]))
	body := data[4:]
	wantBytes := (n + 7) / 8
	if len(body) < wantBytes {
		return bits.Vector{}, ErrInvalidBitLen
	}
	if len(body) > wantBytes {
		return bits.Vector{}, ErrTrailingBytes
	}
	return bits.FromBytes(body, n)
}

// EvaluationPoint, Tag, and Seed are thin aliases over the generic
// bit-vector codec, kept distinct so call sites name the VERIFY_
// CHALLENGE / VERIFY_TAG / PA_SEED payloads explicitly.
func EncodeEvaluationPoint(v bits.Vector) []byte { return EncodeBitVector(v) }
func DecodeEvaluationPoint(data []byte) (bits.Vector, error) { return DecodeBitVector(data) }

func EncodeTag(v bits.Vector) []byte                 { return EncodeBitVector(v) }
func DecodeTag(data []byte) (bits.Vector, error)      { return DecodeBitVector(data) }

func EncodeSeed(v bits.Vector) []byte            { return EncodeBitVector(v) }
func DecodeSeed(data []byte) (bits.Vector, error) { return DecodeBitVector(data) }
