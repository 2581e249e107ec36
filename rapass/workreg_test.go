package rapass

import (
	"testing"

	"github.com/xyproto/midforge/ir"
)

// TestWorkRegTouchTracksLiveRangeAndNodes exercises the touch wiring in
// TiedBuilder.StoreTo: a work register mentioned across several
// instructions must end up with Nodes holding each mentioning
// instruction and LiveRangeStart/End spanning its first and last
// mention, not their zero value.
func TestWorkRegTouchTracksLiveRangeAndNodes(t *testing.T) {
	b := ir.NewBuilder("touch")
	v0 := b.Func().VRegs.New(ir.KindGP, 8, 8)

	b.Begin(&ir.Signature{})
	b.Inst(opMov, ir.RegOperand(v0), ir.ImmOperand(1))
	b.Inst(opAdd, ir.RegOperand(v0), ir.RegOperand(v0))
	b.FuncRet([2]ir.Operand{ir.RegOperand(v0), {}})
	b.End()

	p := New(b.Func(), &testAdapter{}, DefaultConfig())
	if err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var wr *WorkReg
	for _, w := range p.WorkRegs() {
		if w.VReg.ID() == v0.ID() {
			wr = w
			break
		}
	}
	if wr == nil {
		t.Fatalf("expected a work register for v0")
	}

	if len(wr.Nodes) != 3 {
		t.Fatalf("expected 3 touches (mov, add, funcret), got %d", len(wr.Nodes))
	}
	if wr.LiveRangeStart == 0 {
		t.Fatalf("expected LiveRangeStart to be set, stayed at its zero value")
	}
	if wr.LiveRangeEnd <= wr.LiveRangeStart {
		t.Fatalf("expected LiveRangeEnd (%d) to be past LiveRangeStart (%d)", wr.LiveRangeEnd, wr.LiveRangeStart)
	}
}
