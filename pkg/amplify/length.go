package amplify

import "math"

// binaryEntropy returns the binary Shannon entropy h(q) in bits. h(0)
// and h(1) are 0 by the standard convention (0*log(0) := 0).
func binaryEntropy(q float64) float64 {
	if q <= 0 || q >= 1 {
		return 0
	}
	return -q*math.Log2(q) - (1-q)*math.Log2(1-q)
}

// FinalLength computes the Devetak-Winter secure-key length:
//
//	m = floor(n_rec*(1-h(Q_upper)) - total_leakage - 2*log2(1/epsilonSec))
//
// The result may be negative; callers should route it through
// CheckMinLength before using it as a slice length.
func FinalLength(nRec int, qUpper float64, totalLeakage int, epsilonSec float64) int {
	raw := float64(nRec)*(1-binaryEntropy(qUpper)) - float64(totalLeakage) - 2*math.Log2(1/epsilonSec)
	return int(math.Floor(raw))
}

// CheckMinLength returns ErrInsufficientEntropy if m falls below min,
// the minimum acceptable final-key length for the session.
func CheckMinLength(m, min int) error {
	if m < min {
		return ErrInsufficientEntropy
	}
	return nil
}

// WilsonUpperBound returns the one-sided Wilson score upper confidence
// bound on the true QBER given an observed error count k out of n
// sifted samples, at confidence level z (e.g. z=1.96 for ~97.5%
// one-sided confidence). n=0 returns 1 (maximally conservative).
func WilsonUpperBound(k, n int, z float64) float64 {
	if n <= 0 {
		return 1
	}
	phat := float64(k) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := phat + z*z/(2*nf)
	margin := z * math.Sqrt(phat*(1-phat)/nf+z*z/(4*nf*nf))
	upper := (center + margin) / denom
	if upper > 1 {
		upper = 1
	}
	return upper
}
