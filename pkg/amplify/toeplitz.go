package amplify

import "github.com/qkdpost/core/pkg/bits"

// Toeplitz computes T(seed)*kRec over GF(2), where T is the m x n
// Toeplitz matrix with T[i][j] = seed[i-j+(n-1)] and n = kRec.Len(),
// m is the output length. The inner loop indexes seed and kRec by
// position only and never branches on a bit's value; it combines via
// XOR/AND instead of an if.
func Toeplitz(seed bits.Vector, kRec bits.Vector, m int) bits.Vector {
	n := kRec.Len()
	out := bits.NewVector(m)
	for i := 0; i < m; i++ {
		acc := 0
		for j := 0; j < n; j++ {
			acc ^= seed.Get(i-j+(n-1)) & kRec.Get(j)
		}
		out.Set(i, acc)
	}
	return out
}
