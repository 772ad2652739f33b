package cascade

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

// derivePermutation returns the pass-i permutation over [0,n) that
// both parties compute independently from PreSharedSeed: an
// HKDF(PreSharedSeed, info="cascade-pass"||pass_index) stream drives
// a standard Fisher-Yates shuffle. Pass 1 always uses the identity
// permutation.
func derivePermutation(seed []byte, pass, n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if pass <= 1 {
		return perm, nil
	}
	stream, err := newPassStream(seed, pass)
	if err != nil {
		return nil, err
	}
	for i := n - 1; i > 0; i-- {
		j := stream.intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, nil
}

// splitBlocks partitions perm into contiguous blocks of length k; the
// final block may be shorter.
func splitBlocks(perm []int, k int) [][]int {
	if k <= 0 {
		k = len(perm)
	}
	blocks := make([][]int, 0, (len(perm)+k-1)/k)
	for i := 0; i < len(perm); i += k {
		end := i + k
		if end > len(perm) {
			end = len(perm)
		}
		blocks = append(blocks, perm[i:end])
	}
	return blocks
}

// passStream is a deterministic byte generator seeded via HKDF. HKDF's
// own Expand output is capped at 255 hash lengths (RFC 5869), too
// short to permute N in the tens of thousands, so the 32-byte HKDF
// output keys a SHA-256 counter-mode expansion that supplies every
// byte the shuffle consumes.
type passStream struct {
	key     [32]byte
	counter uint64
	buf     []byte
}

func newPassStream(presharedSeed []byte, pass int) (*passStream, error) {
	info := append([]byte("cascade-pass"), encodeUint32(uint32(pass))...)
	r := hkdf.New(sha256.New, presharedSeed, nil, info)
	s := &passStream{}
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *passStream) fill() {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], s.counter)
	s.counter++
	block := sha256.Sum256(append(s.key[:], ctr[:]...))
	s.buf = append(s.buf, block[:]...)
}

// intn returns a pseudorandom value in [0,n). Selection is by
// modulo reduction rather than rejection sampling: the resulting bias
// is negligible for Fisher-Yates block decorrelation, which needs no
// cryptographic uniformity guarantee (security rests on the HKDF seed
// being secret and shared, not on perfect shuffle uniformity).
func (s *passStream) intn(n int) int {
	for len(s.buf) < 4 {
		s.fill()
	}
	v := binary.BigEndian.Uint32(s.buf[:4])
	s.buf = s.buf[4:]
	return int(v % uint32(n))
}

func encodeUint32(v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return buf[:]
}
