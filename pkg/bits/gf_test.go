package bits

import (
	"math/rand"
	"testing"
)

func TestFieldMulCommutativeAssociative(t *testing.T) {
	for _, n := range []int{64, 128} {
		f, err := NewField(n)
		if err != nil {
			t.Fatal(err)
		}
		r := rand.New(rand.NewSource(int64(n)))
		randElem := func() Element {
			return Element{Hi: r.Uint64(), Lo: r.Uint64()}
		}
		a, b, c := randElem(), randElem(), randElem()

		if ab, ba := f.Mul(a, b), f.Mul(b, a); ab != ba {
			t.Errorf("n=%d: Mul not commutative: %v vs %v", n, ab, ba)
		}

		lhs := f.Mul(f.Mul(a, b), c)
		rhs := f.Mul(a, f.Mul(b, c))
		if lhs != rhs {
			t.Errorf("n=%d: Mul not associative: %v vs %v", n, lhs, rhs)
		}
	}
}

func TestFieldPowZeroZeroIsOne(t *testing.T) {
	f, _ := NewField(64)
	got := f.Pow(Element{}, 0)
	if got != f.One() {
		t.Errorf("Pow(0,0) = %v, want 1", got)
	}
}

func TestFieldInversePowIdentity(t *testing.T) {
	for _, n := range []int{64, 128} {
		f, _ := NewField(n)
		r := Element{Lo: 0xDEADBEEF, Hi: 0x1}
		if n == 64 {
			r.Hi = 0
		}
		// r * r^(2^n - 2) = 1
		inv, err := f.Inv(r)
		if err != nil {
			t.Fatal(err)
		}
		got := f.Mul(r, inv)
		if got != f.One() {
			t.Errorf("n=%d: r * r^-1 = %v, want 1", n, got)
		}
	}
}

func TestInvZeroErrors(t *testing.T) {
	f, _ := NewField(64)
	if _, err := f.Inv(Element{}); err == nil {
		t.Fatal("expected error inverting zero")
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, n := range []int{64, 128} {
		for _, bitLen := range []int{0, 1, 63, 64, 65, 127, 128, 129, 500} {
			vals := make([]int, bitLen)
			r := rand.New(rand.NewSource(int64(bitLen*1000 + n)))
			for i := range vals {
				vals[i] = r.Intn(2)
			}
			v := FromBits(vals)
			elems := Pack(v, n)
			back := Unpack(elems, n, bitLen)
			if !Equal(v, back) {
				t.Errorf("n=%d bitLen=%d: round trip mismatch", n, bitLen)
			}
		}
	}
}

func TestHornerMatchesManualFold(t *testing.T) {
	f, _ := NewField(64)
	elems := []Element{{Lo: 1}, {Lo: 2}, {Lo: 3}}
	r := Element{Lo: 5}

	got := f.Horner(elems, r)

	// ((0*r + m1)*r + m2)*r + m3
	want := f.Mul(Element{}, r).Xor(elems[0])
	want = f.Mul(want, r).Xor(elems[1])
	want = f.Mul(want, r).Xor(elems[2])

	if got != want {
		t.Errorf("Horner = %v, want %v", got, want)
	}
}
