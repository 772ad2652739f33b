package bits

import "testing"

func TestVectorGetSet(t *testing.T) {
	v := NewVector(10)
	v.Set(0, 1)
	v.Set(9, 1)
	v.Set(5, 1)

	for i := 0; i < 10; i++ {
		want := 0
		if i == 0 || i == 9 || i == 5 {
			want = 1
		}
		if got := v.Get(i); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestVectorFlip(t *testing.T) {
	v := NewVector(4)
	v.Flip(2)
	if v.Get(2) != 1 {
		t.Fatalf("expected bit 2 set after flip")
	}
	v.Flip(2)
	if v.Get(2) != 0 {
		t.Fatalf("expected bit 2 cleared after second flip")
	}
}

func TestParityEmptyIsZero(t *testing.T) {
	v := FromBits([]int{1, 0, 1, 1})
	if got := Parity(v, nil); got != 0 {
		t.Errorf("Parity(empty) = %d, want 0", got)
	}
}

func TestFullParitySelfConcatIsZero(t *testing.T) {
	// XOR parity of a list concatenated with itself is 0.
	vals := []int{1, 0, 1, 1, 0, 0, 1}
	doubled := append(append([]int{}, vals...), vals...)
	v := FromBits(doubled)
	if got := FullParity(v); got != 0 {
		t.Errorf("FullParity(self-concat) = %d, want 0", got)
	}
}

func TestHammingDistance(t *testing.T) {
	a := FromBits([]int{1, 0, 1, 0, 1})
	b := FromBits([]int{1, 1, 1, 1, 1})
	d, err := HammingDistance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if d != 2 {
		t.Errorf("HammingDistance = %d, want 2", d)
	}
}

func TestHammingDistanceLengthMismatch(t *testing.T) {
	a := NewVector(4)
	b := NewVector(5)
	if _, err := HammingDistance(a, b); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestSliceAndClone(t *testing.T) {
	v := FromBits([]int{0, 1, 1, 0, 1})
	sub := v.Slice([]int{1, 3, 4})
	want := []int{1, 0, 1}
	for i, w := range want {
		if sub.Get(i) != w {
			t.Errorf("Slice bit %d = %d, want %d", i, sub.Get(i), w)
		}
	}

	clone := v.Clone()
	clone.Set(0, 1)
	if v.Get(0) == clone.Get(0) {
		t.Errorf("clone should be independent of original")
	}
}

func TestZeroize(t *testing.T) {
	v := FromBits([]int{1, 1, 1, 1, 1, 1, 1, 1, 1})
	v.Zeroize()
	for _, b := range v.Bytes() {
		if b != 0 {
			t.Fatalf("expected zeroized bytes, got %x", v.Bytes())
		}
	}
}
