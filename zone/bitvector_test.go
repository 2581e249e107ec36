package zone

import "testing"

func TestBitVectorSetTestClear(t *testing.T) {
	z := New(64)
	bv, err := NewBitVector(z, 130)
	if err != nil {
		t.Fatalf("NewBitVector: %v", err)
	}
	bv.Set(0)
	bv.Set(63)
	bv.Set(64)
	bv.Set(129)
	for _, i := range []int{0, 63, 64, 129} {
		if !bv.Test(i) {
			t.Errorf("bit %d not set", i)
		}
	}
	bv.Clear(64)
	if bv.Test(64) {
		t.Errorf("bit 64 still set after Clear")
	}
	if got, want := bv.Count(), 3; got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
}

func TestBitVectorOrDiff(t *testing.T) {
	z := New(64)
	a, _ := NewBitVector(z, 64)
	b, _ := NewBitVector(z, 64)
	c, _ := NewBitVector(z, 64)
	dst, _ := NewBitVector(z, 64)

	a.Set(1)
	b.Set(2)
	c.Set(1)

	changed := dst.OrDiff(a, b, c)
	if !changed {
		t.Fatalf("expected change on first OrDiff")
	}
	if dst.Test(1) {
		t.Errorf("bit 1 should have been removed by c")
	}
	if !dst.Test(2) {
		t.Errorf("bit 2 should be set")
	}

	changed = dst.OrDiff(a, b, c)
	if changed {
		t.Errorf("expected no change on repeat OrDiff")
	}
}

func TestBitVectorEqualAndCopy(t *testing.T) {
	z := New(64)
	a, _ := NewBitVector(z, 64)
	b, _ := NewBitVector(z, 64)
	a.Set(10)
	if a.Equal(b) {
		t.Fatalf("expected inequality before copy")
	}
	b.CopyFrom(a)
	if !a.Equal(b) {
		t.Fatalf("expected equality after copy")
	}
}
