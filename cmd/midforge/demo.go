package main

import (
	"fmt"

	"github.com/xyproto/midforge/ir"
)

// demoPrograms are small, hand-built node streams exercising a specific
// CFG shape, used by the "run" subcommand in place of a front end (this
// module's scope starts at the node list, not source text).
var demoPrograms = map[string]func() *ir.Func{
	"straight": buildStraightLineDemo,
	"branch":   buildBranchDemo,
	"call":     buildCallDemo,
}

func buildStraightLineDemo() *ir.Func {
	b := ir.NewBuilder("straight")
	v0 := b.Func().VRegs.New(ir.KindGP, 8, 8)
	v1 := b.Func().VRegs.New(ir.KindGP, 8, 8)

	b.Begin(&ir.Signature{})
	b.Inst(opcodeMov, ir.RegOperand(v0), ir.ImmOperand(1))
	b.Inst(opcodeMov, ir.RegOperand(v1), ir.ImmOperand(2))
	b.Inst(opcodeAdd, ir.RegOperand(v0), ir.RegOperand(v1))
	b.FuncRet([2]ir.Operand{ir.RegOperand(v0), {}})
	b.End()
	return b.Func()
}

func buildBranchDemo() *ir.Func {
	b := ir.NewBuilder("branch")
	v0 := b.Func().VRegs.New(ir.KindGP, 8, 8)
	elseLabel := b.NewLabel()
	joinLabel := b.NewLabel()

	b.Begin(&ir.Signature{})
	b.Inst(opcodeCmp, ir.RegOperand(v0), ir.ImmOperand(0))
	b.Inst(opcodeJcc, ir.LabelOperand(elseLabel))
	b.Inst(opcodeMov, ir.RegOperand(v0), ir.ImmOperand(1))
	b.Inst(opcodeJmp, ir.LabelOperand(joinLabel))
	b.Label(elseLabel)
	b.Inst(opcodeMov, ir.RegOperand(v0), ir.ImmOperand(2))
	b.Label(joinLabel)
	b.FuncRet([2]ir.Operand{ir.RegOperand(v0), {}})
	b.End()
	return b.Func()
}

func buildCallDemo() *ir.Func {
	b := ir.NewBuilder("call")
	fn := b.Func()
	arg := fn.VRegs.New(ir.KindGP, 8, 8)
	ret := fn.VRegs.New(ir.KindGP, 8, 8)

	b.Begin(&ir.Signature{})
	b.Inst(opcodeMov, ir.RegOperand(arg), ir.ImmOperand(7))
	b.FuncCall(&ir.Signature{}, []ir.Operand{ir.RegOperand(arg)}, [2]ir.Operand{ir.RegOperand(ret), {}})
	b.FuncRet([2]ir.Operand{ir.RegOperand(ret), {}})
	b.End()
	return b.Func()
}

func listDemoPrograms() string {
	names := make([]string, 0, len(demoPrograms))
	for name := range demoPrograms {
		names = append(names, name)
	}
	return fmt.Sprint(names)
}
