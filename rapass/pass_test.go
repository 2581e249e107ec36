package rapass

import (
	"testing"

	"github.com/xyproto/midforge/ir"
)

func TestPassRunEndToEnd(t *testing.T) {
	b := ir.NewBuilder("e2e")
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

	adapter := &testAdapter{}
	p := New(b.Func(), adapter, DefaultConfig())
	if err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if adapter.initCalls != 1 || adapter.doneCalls != 1 {
		t.Fatalf("expected OnInit/OnDone exactly once each, got init=%d done=%d", adapter.initCalls, adapter.doneCalls)
	}
	if len(p.Blocks()) == 0 {
		t.Fatalf("expected at least one block after Run")
	}
	if len(p.POV()) != len(p.Blocks()) {
		t.Fatalf("expected POV to cover every block")
	}
	if p.EntryBlock() == nil {
		t.Fatalf("expected an entry block")
	}
	for _, s := range p.scratch {
		if s.work != nil || s.tied != nil {
			t.Fatalf("expected scratch to be wiped after Run returns")
		}
	}
}

func TestPassRunFailsOnMalformedStream(t *testing.T) {
	fn := ir.NewBuilder("empty").Func()
	p := New(fn, &testAdapter{}, DefaultConfig())
	if err := p.Run(); err == nil {
		t.Fatalf("expected Run to fail on an empty function")
	}
}
