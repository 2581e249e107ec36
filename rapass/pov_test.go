package rapass

import (
	"testing"

	"github.com/xyproto/midforge/ir"
)

func buildDiamond(t *testing.T) *Pass {
	t.Helper()
	b := ir.NewBuilder("diamond")
	v0 := b.Func().VRegs.New(ir.KindGP, 8, 8)
	elseLabel := b.NewLabel()
	joinLabel := b.NewLabel()

	b.Begin(&ir.Signature{})
	b.Inst(opCmp, ir.RegOperand(v0), ir.ImmOperand(0))
	b.Inst(opJcc, ir.LabelOperand(elseLabel))
	b.Inst(opMov, ir.RegOperand(v0), ir.ImmOperand(1))
	b.Inst(opJmp, ir.LabelOperand(joinLabel))
	b.Label(elseLabel)
	b.Inst(opMov, ir.RegOperand(v0), ir.ImmOperand(2))
	b.Label(joinLabel)
	b.FuncRet([2]ir.Operand{ir.RegOperand(v0), {}})
	b.End()

	p := newTestPass(b.Func(), &testAdapter{})
	if err := p.buildCFG(); err != nil {
		t.Fatalf("buildCFG: %v", err)
	}
	return p
}

func TestBuildPOVCoversEveryBlockAndEndsAtEntry(t *testing.T) {
	p := buildDiamond(t)
	p.buildPOV()

	if len(p.pov) != len(p.blocks) {
		t.Fatalf("expected POV to cover every reachable block: pov=%d blocks=%d", len(p.pov), len(p.blocks))
	}
	if p.pov[len(p.pov)-1] != p.entry {
		t.Fatalf("expected POV's last element to be the entry block")
	}

	seen := make(map[*Block]bool)
	for _, b := range p.pov {
		if seen[b] {
			t.Fatalf("block appears twice in POV")
		}
		seen[b] = true
	}
}

func TestBuildPOVEmptyWithoutEntry(t *testing.T) {
	p := &Pass{}
	p.buildPOV()
	if p.pov != nil {
		t.Fatalf("expected nil POV when no entry block exists, got %v", p.pov)
	}
}
