package rapass

import "github.com/xyproto/midforge/ir"

// TiedBuilder collects, for one instruction-like node, every virtual
// register it touches into a compact per-kind array stored on the
// node's RAData. It is transient: Reset is called once per instruction,
// and the builder's working buffer is reused across instructions within
// one pass rather than reallocated.
type TiedBuilder struct {
	pass  *Pass
	block *Block

	buf    []ir.TiedReg // fixed-capacity, length grows via append but never past cap
	counts [ir.NumRegKinds]int
}

// newTiedBuilder allocates the fixed-capacity working buffer once per
// pass.
func newTiedBuilder(pass *Pass, capacity int) *TiedBuilder {
	return &TiedBuilder{pass: pass, buf: make([]ir.TiedReg, 0, capacity)}
}

// Reset clears the working buffer and per-kind counters ahead of
// building one instruction's tied array.
func (tb *TiedBuilder) Reset(pass *Pass, block *Block) {
	tb.pass = pass
	tb.block = block
	tb.buf = tb.buf[:0]
	for k := range tb.counts {
		tb.counts[k] = 0
	}
}

// Add records one operand mention of vreg at the current instruction.
// Multiple mentions of the same virtual register within one instruction
// merge into a single tied entry.
func (tb *TiedBuilder) Add(vreg *ir.VirtReg, flags ir.TiedFlags, allocableMask uint32, rPhysID, wPhysID uint8) (Status, error) {
	scratch := tb.pass.scratchFor(vreg.ID())

	if scratch.tied == nil {
		if len(tb.buf) >= cap(tb.buf) {
			return StatusInvalidInstruction, wrap(StatusInvalidInstruction, nil, "tied-register buffer exhausted")
		}
		if scratch.work == nil {
			scratch.work = tb.pass.newWorkReg(vreg)
		}
		tb.buf = append(tb.buf, ir.TiedReg{
			VReg:          vreg,
			Flags:         flags,
			AllocableMask: allocableMask,
			RefCount:      1,
			RPhysID:       rPhysID,
			WPhysID:       wPhysID,
		})
		entry := &tb.buf[len(tb.buf)-1]
		scratch.tied = entry
		tb.counts[vreg.Kind]++
	} else {
		entry := scratch.tied
		entry.RefCount++
		entry.Flags |= flags
		entry.AllocableMask &= allocableMask

		merged, status := reconcilePhysID(entry.RPhysID, rPhysID)
		if status != StatusOk {
			return status, wrap(status, nil, "conflicting fixed read-side physical register")
		}
		entry.RPhysID = merged

		merged, status = reconcilePhysID(entry.WPhysID, wPhysID)
		if status != StatusOk {
			return status, wrap(status, nil, "conflicting fixed write-side physical register")
		}
		entry.WPhysID = merged
	}

	entry := scratch.tied
	// Corrected precondition (see design notes): fire when either fixed
	// id is set, not only when both happen to be the read-side id.
	if entry.RPhysID != ir.AnyPhysReg || entry.WPhysID != ir.AnyPhysReg {
		if tb.block != nil {
			tb.block.Stats.MarkPrecolored(vreg.Kind, entry.RPhysID)
			tb.block.Stats.MarkPrecolored(vreg.Kind, entry.WPhysID)
		}
	}
	return StatusOk, nil
}

// reconcilePhysID adopts the more specific of an existing and an
// incoming fixed physical id, failing if both are set and differ.
func reconcilePhysID(existing, incoming uint8) (uint8, Status) {
	if incoming == ir.AnyPhysReg {
		return existing, StatusOk
	}
	if existing == ir.AnyPhysReg {
		return incoming, StatusOk
	}
	if existing != incoming {
		return existing, StatusOverlappedRegs
	}
	return existing, StatusOk
}

// Total returns the number of distinct virtual registers collected so
// far across every kind.
func (tb *TiedBuilder) Total() int { return len(tb.buf) }

// Block returns the block the instruction currently being built belongs
// to, so an adapter can fold call-clobber or used-register masks into
// its running statistics.
func (tb *TiedBuilder) Block() *Block { return tb.block }

// Pass returns the enclosing Pass, so an out-of-package adapter can
// resolve an operand's RegRef.VirtID back to the *ir.VirtReg tb.Add
// expects via pass.VRegs().
func (tb *TiedBuilder) Pass() *Pass { return tb.pass }

// StoreTo finalizes the working buffer into node's RAData, grouping
// entries by kind, and clears every involved virtual register's
// currently-tied back-pointer.
func (tb *TiedBuilder) StoreTo(node *ir.Node) {
	ra := &ir.RAData{}

	offset := 0
	for k := 0; k < int(ir.NumRegKinds); k++ {
		ra.TiedIndex[k] = offset
		ra.TiedCount[k] = tb.counts[k]
		offset += tb.counts[k]
	}
	ra.Tied = make([]ir.TiedReg, offset)

	var filled [ir.NumRegKinds]int
	hasFixed := false
	for _, t := range tb.buf {
		k := t.VReg.Kind
		pos := ra.TiedIndex[k] + filled[k]
		ra.Tied[pos] = t
		filled[k]++
		if t.HasFixedRegs() {
			hasFixed = true
		}
		scratch := tb.pass.scratchFor(t.VReg.ID())
		scratch.work.touch(node)
		scratch.tied = nil
	}

	node.RA = ra
	if tb.block != nil {
		if hasFixed {
			tb.block.Flags |= BlockHasFixedRegs
		}
		tb.block.Stats.merge(tiedRegStats(tb.buf))
	}
}

// tiedRegStats folds one instruction's tied entries into the Used mask
// the owning block accumulates: every physical register a fixed read or
// write side pins is a register this block is known to use, the only
// concrete physical-register fact available before allocation runs.
func tiedRegStats(buf []ir.TiedReg) *RegStats {
	var s RegStats
	for _, t := range buf {
		if t.RPhysID != ir.AnyPhysReg {
			s.Used[t.VReg.Kind] |= 1 << t.RPhysID
		}
		if t.WPhysID != ir.AnyPhysReg {
			s.Used[t.VReg.Kind] |= 1 << t.WPhysID
		}
	}
	return &s
}
