package partystate

// Zeroizer is implemented by any buffer that holds secret material
// and can scrub it in place. pkg/bits.Vector satisfies this via its
// Zeroize method.
type Zeroizer interface {
	Zeroize()
}

// ZeroizeAll scrubs every supplied secret buffer. Used on abort paths
// so that no key material, field element, or seed outlives the
// session.
func ZeroizeAll(secrets ...Zeroizer) {
	for _, s := range secrets {
		if s != nil {
			s.Zeroize()
		}
	}
}
