package rapass

import "github.com/xyproto/midforge/ir"

// Opcode constants used only by this package's own tests: a tiny
// five-instruction toy ISA, just enough to exercise jump
// classification without pulling in a real architecture adapter.
const (
	opMov uint32 = 1 // operand 0 def, operand 1 use
	opAdd uint32 = 2 // operand 0 def+use, operand 1 use
	opCmp uint32 = 3 // both operands use-only
	opJmp uint32 = 4 // unconditional jump, last operand is the label
	opJcc uint32 = 5 // conditional jump, last operand is the label
)

// testAdapter is a minimal Adapter: it reports every virtual-register
// operand as a plain read, write, or read-write tied reference with no fixed
// registers, and classifies jumps purely from opcode.
type testAdapter struct {
	initCalls int
	doneCalls int
}

func (a *testAdapter) OnInit(pass *Pass) {
	a.initCalls++
	pass.ArchRegCount[ir.KindGP] = 16
	pass.AllocableRegs[ir.KindGP] = 0xFFFF
	pass.SPPhysID = 4
}

func (a *testAdapter) OnDone(pass *Pass) { a.doneCalls++ }

func (a *testAdapter) OnInst(tb *TiedBuilder, n *ir.Node) (JumpType, error) {
	vregs := tb.pass.VRegs()

	addOperand := func(op ir.Operand, flags ir.TiedFlags) error {
		if op.Kind != ir.OpReg || !op.Reg.Virtual {
			return nil
		}
		v, ok := vregs.Get(op.Reg.VirtID)
		if !ok {
			return wrap(StatusInvalidVirtID, n, "operand references an unknown virtual register")
		}
		_, err := tb.Add(v, flags, 0xFFFF, ir.AnyPhysReg, ir.AnyPhysReg)
		return err
	}

	switch n.Type {
	case ir.NodeFuncRet:
		for _, op := range n.RetOperands {
			if err := addOperand(op, ir.TiedR); err != nil {
				return JumpNone, err
			}
		}
		tb.StoreTo(n)
		return JumpReturn, nil

	case ir.NodeFuncCall:
		for _, op := range n.CallArgs {
			if err := addOperand(op, ir.TiedR|ir.TiedFuncArg); err != nil {
				return JumpNone, err
			}
		}
		for _, op := range n.CallRets {
			if err := addOperand(op, ir.TiedW|ir.TiedFuncRet); err != nil {
				return JumpNone, err
			}
		}
		tb.Block().Stats.Clobbered[ir.KindGP] |= 0x000F
		tb.StoreTo(n)
		return JumpNone, nil
	}

	switch n.Opcode {
	case opMov:
		if err := addOperand(n.Operands[0], ir.TiedW); err != nil {
			return JumpNone, err
		}
		if err := addOperand(n.Operands[1], ir.TiedR); err != nil {
			return JumpNone, err
		}
		tb.StoreTo(n)
		return JumpNone, nil

	case opAdd:
		if err := addOperand(n.Operands[0], ir.TiedX); err != nil {
			return JumpNone, err
		}
		if err := addOperand(n.Operands[1], ir.TiedR); err != nil {
			return JumpNone, err
		}
		tb.StoreTo(n)
		return JumpNone, nil

	case opCmp:
		for _, op := range n.Operands {
			if err := addOperand(op, ir.TiedR); err != nil {
				return JumpNone, err
			}
		}
		tb.StoreTo(n)
		return JumpNone, nil

	case opJmp:
		tb.StoreTo(n)
		return JumpDirect, nil

	case opJcc:
		tb.StoreTo(n)
		return JumpConditional, nil

	default:
		tb.StoreTo(n)
		return JumpNone, nil
	}
}
