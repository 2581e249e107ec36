package x86

import (
	"github.com/xyproto/midforge/ir"
	"github.com/xyproto/midforge/rapass"
)

// Adapter is the x86-64 rapass.Adapter: it resolves each instruction's
// operands into tied-register entries (fixing RAX/RDX/RCX where the ISA
// requires it) and classifies jumps, per spec.md §6's architecture
// adapter contract. The actual operand read/write table lives in
// rwtable.go; this file only owns register-layout reporting and dispatch.
type Adapter struct {
	// PreserveFramePointer, if true, asks the pass to exclude RBP from
	// the allocable set and report it as the frame-pointer register;
	// this layer never decides frame layout itself, it only reports the
	// choice upward.
	PreserveFramePointer bool
}

func (a *Adapter) OnInit(pass *rapass.Pass) {
	pass.ArchRegCount[ir.KindGP] = NumGP
	pass.ArchRegCount[ir.KindVec] = NumXMM
	pass.ArchRegCount[ir.KindMask] = NumMask

	gp := AllocableGP
	if a.PreserveFramePointer {
		gp &^= 1 << RBP
	}
	pass.AllocableRegs[ir.KindGP] = gp
	pass.AllocableRegs[ir.KindVec] = AllocableXMM
	pass.AllocableRegs[ir.KindMask] = AllocableMask

	pass.SPPhysID = RSP
	pass.FPPhysID = RBP
	pass.PreserveFP = a.PreserveFramePointer
}

func (a *Adapter) OnDone(pass *rapass.Pass) {}

func (a *Adapter) OnInst(tb *rapass.TiedBuilder, n *ir.Node) (rapass.JumpType, error) {
	return buildTiedRegs(tb, n)
}
