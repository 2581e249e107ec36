package x86

import (
	"github.com/xyproto/midforge/ir"
	"github.com/xyproto/midforge/rapass"
)

// buildTiedRegs maps one node to its tied-register entries and jump
// classification. It is the x86-64 realization of the operand
// read/write table: a static, per-opcode mapping from operand shape to
// roles, plus the fixed-register special cases (Div/Idiv's RAX:RDX
// pair, Imul/Mul's implicit RDX clobber, shift-by-CL, Cpuid's
// four-register clobber) documented per constant in opcode.go.
func buildTiedRegs(tb *rapass.TiedBuilder, n *ir.Node) (rapass.JumpType, error) {
	vregs := tb.Pass().VRegs()

	resolve := func(op ir.Operand) (*ir.VirtReg, bool) {
		if op.Kind != ir.OpReg || !op.Reg.Virtual {
			return nil, false
		}
		return vregs.Get(op.Reg.VirtID)
	}

	addOp := func(op ir.Operand, flags ir.TiedFlags, allocable uint32, rPhysID, wPhysID uint8) error {
		v, ok := resolve(op)
		if !ok {
			return nil // a fixed-physical or memory-base/index operand, or no operand at this slot
		}
		_, err := tb.Add(v, flags, allocable, rPhysID, wPhysID)
		return err
	}

	addMemOperands := func(m ir.MemOperand) error {
		if m.HasBase && m.Base.Virtual {
			if v, ok := vregs.Get(m.Base.VirtID); ok {
				if _, err := tb.Add(v, ir.TiedRMem, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
					return err
				}
			}
		}
		if m.HasIndex && m.Index.Virtual {
			if v, ok := vregs.Get(m.Index.VirtID); ok {
				if _, err := tb.Add(v, ir.TiedRMem, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
					return err
				}
			}
		}
		return nil
	}

	switch n.Type {
	case ir.NodeFuncRet:
		for _, op := range n.RetOperands {
			if err := addOp(op, ir.TiedR|ir.TiedFuncRet, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
				return rapass.JumpNone, err
			}
		}
		tb.StoreTo(n)
		return rapass.JumpReturn, nil

	case ir.NodeFuncCall:
		for _, op := range n.CallArgs {
			if err := addOp(op, ir.TiedR|ir.TiedFuncArg, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
				return rapass.JumpNone, err
			}
		}
		for _, op := range n.CallRets {
			if err := addOp(op, ir.TiedW|ir.TiedFuncRet, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
				return rapass.JumpNone, err
			}
		}
		// System V AMD64 caller-saved set: rax, rcx, rdx, rsi, rdi, r8-r11.
		const callClobberGP = 1<<RAX | 1<<RCX | 1<<RDX | 1<<RSI | 1<<RDI |
			1<<R8 | 1<<R9 | 1<<R10 | 1<<R11
		tb.StoreTo(n)
		n.RA.ClobberedRegs[ir.KindGP] = callClobberGP
		tb.Block().Stats.Clobbered[ir.KindGP] |= callClobberGP
		return rapass.JumpNone, nil
	}

	switch Opcode(n.Opcode) {
	case Mov, Lea:
		for _, m := range memOperandsOf(n) {
			if err := addMemOperands(m); err != nil {
				return rapass.JumpNone, err
			}
		}
		if err := addOp(n.Operands[0], ir.TiedW, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
			return rapass.JumpNone, err
		}
		if len(n.Operands) > 1 {
			if err := addOp(n.Operands[1], ir.TiedR, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
				return rapass.JumpNone, err
			}
		}
		tb.StoreTo(n)
		return rapass.JumpNone, nil

	case Add, Sub, And, Or, Xor:
		if err := addOp(n.Operands[0], ir.TiedX, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
			return rapass.JumpNone, err
		}
		if err := addOp(n.Operands[1], ir.TiedR, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
			return rapass.JumpNone, err
		}
		tb.StoreTo(n)
		return rapass.JumpNone, nil

	case Cmp:
		for _, operand := range n.Operands {
			if err := addOp(operand, ir.TiedR, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
				return rapass.JumpNone, err
			}
		}
		tb.StoreTo(n)
		return rapass.JumpNone, nil

	case Div, Idiv:
		if err := addOp(n.Operands[0], ir.TiedX, AllocableGP, RAX, RAX); err != nil {
			return rapass.JumpNone, err
		}
		if err := addOp(n.Operands[1], ir.TiedX, AllocableGP, RDX, RDX); err != nil {
			return rapass.JumpNone, err
		}
		if err := addOp(n.Operands[2], ir.TiedR, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
			return rapass.JumpNone, err
		}
		tb.StoreTo(n)
		return rapass.JumpNone, nil

	case Imul, Mul:
		if err := addOp(n.Operands[0], ir.TiedX, AllocableGP, RAX, RAX); err != nil {
			return rapass.JumpNone, err
		}
		if err := addOp(n.Operands[1], ir.TiedR, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
			return rapass.JumpNone, err
		}
		tb.StoreTo(n)
		tb.Block().Stats.Clobbered[ir.KindGP] |= 1 << RDX
		return rapass.JumpNone, nil

	case Shl, Shr, Sar:
		if err := addOp(n.Operands[0], ir.TiedX, AllocableGP, ir.AnyPhysReg, ir.AnyPhysReg); err != nil {
			return rapass.JumpNone, err
		}
		if n.Operands[1].Kind == ir.OpReg && n.Operands[1].Reg.Virtual {
			if err := addOp(n.Operands[1], ir.TiedR, AllocableGP, RCX, ir.AnyPhysReg); err != nil {
				return rapass.JumpNone, err
			}
		}
		tb.StoreTo(n)
		return rapass.JumpNone, nil

	case Cpuid:
		if err := addOp(n.Operands[0], ir.TiedX, AllocableGP, RAX, RAX); err != nil {
			return rapass.JumpNone, err
		}
		tb.StoreTo(n)
		tb.Block().Stats.Clobbered[ir.KindGP] |= 1<<RAX | 1<<RBX | 1<<RCX | 1<<RDX
		return rapass.JumpNone, nil

	case Jmp:
		tb.StoreTo(n)
		return rapass.JumpDirect, nil

	case Jcc:
		tb.StoreTo(n)
		return rapass.JumpConditional, nil

	case Ret:
		tb.StoreTo(n)
		return rapass.JumpReturn, nil

	default:
		tb.StoreTo(n)
		return rapass.JumpNone, nil
	}
}

// memOperandsOf returns n's memory operands, if any, so Mov/Lea can feed
// base/index registers through the tied builder as reads even though
// the memory operand as a whole is not itself a tied entry.
func memOperandsOf(n *ir.Node) []ir.MemOperand {
	var mems []ir.MemOperand
	for _, op := range n.Operands {
		if op.Kind == ir.OpMem {
			mems = append(mems, op.Mem)
		}
	}
	return mems
}
