package zone

import (
	"math/bits"
	"unsafe"
)

const wordBits = 64

// BitVector is a fixed-width, word-parallel bitset used for liveness and
// visited-set tracking. Unlike Vector, its words never hold pointers, so
// growing it through the owning Zone's raw byte pages is safe: nothing
// inside needs the garbage collector's attention, and the whole GEN/
// KILL/IN/OUT family for every block in a pass reclaims in the one
// Zone.Reset the pass already pays for.
type BitVector struct {
	z     *Zone
	words []uint64
	bits  int
}

// NewBitVector creates a BitVector of the given bit width, all bits
// clear, with its word storage carved out of z rather than the Go heap.
// uint64 words hold no pointers, so reinterpreting a zone page as a
// []uint64 carries no garbage-collector hazard.
func NewBitVector(z *Zone, nbits int) (*BitVector, error) {
	bv := &BitVector{z: z, bits: nbits}
	if nbits == 0 {
		return bv, nil
	}
	n := wordCount(nbits)
	buf, err := z.AllocZeroed(n*8, 8)
	if err != nil {
		return nil, err
	}
	bv.words = unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), n)
	return bv, nil
}

func wordCount(nbits int) int { return (nbits + wordBits - 1) / wordBits }

// Len returns the number of addressable bits.
func (bv *BitVector) Len() int { return bv.bits }

// Test reports whether bit i is set.
func (bv *BitVector) Test(i int) bool {
	return bv.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// Set sets bit i to 1.
func (bv *BitVector) Set(i int) {
	bv.words[i/wordBits] |= uint64(1) << uint(i%wordBits)
}

// Clear sets bit i to 0.
func (bv *BitVector) Clear(i int) {
	bv.words[i/wordBits] &^= uint64(1) << uint(i%wordBits)
}

// Put sets or clears bit i according to val.
func (bv *BitVector) Put(i int, val bool) {
	if val {
		bv.Set(i)
	} else {
		bv.Clear(i)
	}
}

// ClearAll zeroes every word.
func (bv *BitVector) ClearAll() {
	for i := range bv.words {
		bv.words[i] = 0
	}
}

// Count returns the number of set bits.
func (bv *BitVector) Count() int {
	n := 0
	for _, w := range bv.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Or ORs src into bv in place and reports whether any word of bv changed.
func (bv *BitVector) Or(src *BitVector) bool {
	changed := false
	for i := range bv.words {
		before := bv.words[i]
		after := before | src.words[i]
		if after != before {
			bv.words[i] = after
			changed = true
		}
	}
	return changed
}

// OrDiff computes bv = (a | b) &^ c in place and reports whether bv
// changed relative to its previous contents.
func (bv *BitVector) OrDiff(a, b, c *BitVector) bool {
	changed := false
	for i := range bv.words {
		before := bv.words[i]
		after := (a.words[i] | b.words[i]) &^ c.words[i]
		if after != before {
			bv.words[i] = after
			changed = true
		}
	}
	return changed
}

// CopyFrom overwrites bv's words with src's.
func (bv *BitVector) CopyFrom(src *BitVector) {
	copy(bv.words, src.words)
}

// Equal reports whether bv and other have identical contents.
func (bv *BitVector) Equal(other *BitVector) bool {
	if bv.bits != other.bits {
		return false
	}
	for i := range bv.words {
		if bv.words[i] != other.words[i] {
			return false
		}
	}
	return true
}
