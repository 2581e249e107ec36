package ir

import "testing"

func TestBuilderStraightLine(t *testing.T) {
	b := NewBuilder("straight")
	v0 := b.Func().VRegs.New(KindGP, 8, 8)

	b.Begin(&Signature{})
	b.Inst(1 /* mov */, RegOperand(v0), ImmOperand(1))
	b.Inst(2 /* add */, RegOperand(v0), RegOperand(v0), ImmOperand(2))
	b.FuncRet([2]Operand{RegOperand(v0), {}})
	end := b.End()

	fn := b.Func()
	if fn.Entry == nil {
		t.Fatalf("expected FuncEntry to be recorded")
	}
	if fn.Entry.End != end {
		t.Fatalf("expected FuncEntry.End to point at the sentinel")
	}
	if !fn.Entry.Finished {
		t.Fatalf("expected Finished to be set after End()")
	}

	var positions []uint32
	for n := fn.Head(); n != nil; n = n.Next() {
		positions = append(positions, n.Position)
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Fatalf("positions not strictly increasing: %v", positions)
		}
	}
	if len(positions) != 5 { // FuncEntry, mov, add, FuncRet, Sentinel
		t.Fatalf("expected 5 nodes, got %d", len(positions))
	}
}

func TestBuilderRemoveUnlinksNode(t *testing.T) {
	b := NewBuilder("unreachable")
	v0 := b.Func().VRegs.New(KindGP, 8, 8)

	b.Begin(&Signature{})
	dead1 := b.Inst(1, RegOperand(v0), ImmOperand(7))
	dead2 := b.Inst(1, RegOperand(v0), ImmOperand(8))
	b.FuncRet([2]Operand{RegOperand(v0), {}})
	b.End()

	b.Remove(dead1)
	b.Remove(dead2)

	count := 0
	for n := b.Func().Head(); n != nil; n = n.Next() {
		if n == dead1 || n == dead2 {
			t.Fatalf("removed node still reachable from head")
		}
		count++
	}
	if count != 3 { // FuncEntry, FuncRet, Sentinel
		t.Fatalf("expected 3 remaining nodes, got %d", count)
	}
	if b.Func().Tail().Type != NodeSentinel {
		t.Fatalf("expected tail to remain the sentinel")
	}
}

func TestNewLabelSkipsZero(t *testing.T) {
	b := NewBuilder("labels")
	l1 := b.NewLabel()
	l2 := b.NewLabel()
	if l1 == NoLabel || l2 == NoLabel {
		t.Fatalf("NewLabel must never return NoLabel")
	}
	if l1 == l2 {
		t.Fatalf("expected distinct label ids")
	}
}

func TestVirtRegTableGet(t *testing.T) {
	tbl := NewVirtRegTable()
	v := tbl.New(KindVec, 16, 16)
	got, ok := tbl.Get(v.ID())
	if !ok || got != v {
		t.Fatalf("Get(%d) = (%v, %v), want (%v, true)", v.ID(), got, ok, v)
	}
	if _, ok := tbl.Get(VRegID(999)); ok {
		t.Fatalf("expected Get on out-of-range id to fail")
	}
}
