package rapass

import (
	"errors"
	"testing"

	"github.com/xyproto/midforge/ir"
)

// TestTiedBuilderAddDetectsOverlappedRegs unit-tests reconcilePhysID's
// conflict path directly: two mentions of the same virtual register
// within one instruction that pin distinct fixed write-side physical
// ids must fail rather than silently adopt one of them.
func TestTiedBuilderAddDetectsOverlappedRegs(t *testing.T) {
	fn := ir.NewBuilder("overlap").Func()
	v0 := fn.VRegs.New(ir.KindGP, 8, 8)

	p := newTestPass(fn, &testAdapter{})
	p.resetScratch()
	tb := newTiedBuilder(p, 4)
	tb.Reset(p, nil)

	if _, err := tb.Add(v0, ir.TiedW, 0xFFFF, ir.AnyPhysReg, 0); err != nil {
		t.Fatalf("first Add: unexpected error %v", err)
	}
	_, err := tb.Add(v0, ir.TiedW, 0xFFFF, ir.AnyPhysReg, 1)
	if err == nil {
		t.Fatalf("expected OverlappedRegs from conflicting fixed write ids")
	}
	if !errors.Is(err, ErrOverlappedRegs) {
		t.Fatalf("expected ErrOverlappedRegs, got %v", err)
	}
}

// opImulSameOperand is a single-operand-site toy opcode standing in for
// spec.md's S6 scenario ("imul v0, v0 where both operand sites impose
// distinct fixed output physical ids"): overlapAdapter ties the same
// vreg twice per instruction, once fixed to physical id 0 and once to
// physical id 1.
const opImulSameOperand uint32 = 6

type overlapAdapter struct{}

func (a *overlapAdapter) OnInit(pass *Pass) {
	pass.ArchRegCount[ir.KindGP] = 16
	pass.AllocableRegs[ir.KindGP] = 0xFFFF
	pass.SPPhysID = 4
}

func (a *overlapAdapter) OnDone(pass *Pass) {}

func (a *overlapAdapter) OnInst(tb *TiedBuilder, n *ir.Node) (JumpType, error) {
	if n.Type == ir.NodeFuncRet {
		tb.StoreTo(n)
		return JumpReturn, nil
	}

	vregs := tb.pass.VRegs()
	v, ok := vregs.Get(n.Operands[0].Reg.VirtID)
	if !ok {
		return JumpNone, wrap(StatusInvalidVirtID, n, "unknown virtual register")
	}

	if _, err := tb.Add(v, ir.TiedX, 0xFFFF, ir.AnyPhysReg, 0); err != nil {
		return JumpNone, err
	}
	if _, err := tb.Add(v, ir.TiedX, 0xFFFF, ir.AnyPhysReg, 1); err != nil {
		return JumpNone, err
	}
	tb.StoreTo(n)
	return JumpNone, nil
}

// TestPassRunFailsOnOverlappedRegs is spec.md's S6: the pass aborts with
// OverlappedRegs, and every virtual register's scratch state is wiped
// even though the run failed.
func TestPassRunFailsOnOverlappedRegs(t *testing.T) {
	b := ir.NewBuilder("overlap")
	v0 := b.Func().VRegs.New(ir.KindGP, 8, 8)

	b.Begin(&ir.Signature{})
	b.Inst(opImulSameOperand, ir.RegOperand(v0), ir.RegOperand(v0))
	b.FuncRet([2]ir.Operand{ir.RegOperand(v0), {}})
	b.End()

	p := New(b.Func(), &overlapAdapter{}, DefaultConfig())
	err := p.Run()
	if err == nil {
		t.Fatalf("expected Run to fail with OverlappedRegs")
	}
	if !errors.Is(err, ErrOverlappedRegs) {
		t.Fatalf("expected ErrOverlappedRegs, got %v", err)
	}

	for _, s := range p.scratch {
		if s.work != nil || s.tied != nil {
			t.Fatalf("expected scratch to be wiped after a failed Run")
		}
	}
}
