package cascade

// DefaultPasses is the recommended pass count, P=4.
const DefaultPasses = 4

// initialBlockSize computes k_1 = max(4, min(floor(0.73/Q), floor(N/4))).
// Q=0 drops the QBER-derived term so floor(N/4) dominates.
func initialBlockSize(n int, q float64) int {
	byN := n / 4
	k := byN
	if q > 0 {
		byQ := int(0.73 / q)
		if byQ < k {
			k = byQ
		}
	}
	if k < 4 {
		k = 4
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}
	return k
}

// nextBlockSize doubles k for the next pass, clamped to n.
func nextBlockSize(k, n int) int {
	k *= 2
	if k > n {
		k = n
	}
	return k
}
