package ir

// LabelID identifies a label within one function's node list. Zero is
// reserved as "no label" — per the same "never reuse zero for a sentinel
// that has a real meaning elsewhere" rule applied to physical register
// ids, label 0 is never handed out by NewLabel.
type LabelID uint32

// NoLabel is the zero value meaning "no label attached."
const NoLabel LabelID = 0

// OperandKind tags the union carried by Operand.
type OperandKind uint8

const (
	OpNone OperandKind = iota
	OpReg
	OpMem
	OpImm
	OpLabel
)

// RegRef refers to either a virtual register (pre-allocation) or a fixed
// physical register (post-allocation, or a pin imposed by the
// instruction database).
type RegRef struct {
	Virtual bool
	VirtID  VRegID
	PhysID  uint8
}

// MemOperand is a base[+index*scale+disp] memory reference. Segment
// overrides and RIP-relative addressing are left to the (out of scope)
// encoder; only the register operands the allocator must know about are
// modeled here.
type MemOperand struct {
	HasBase  bool
	Base     RegRef
	HasIndex bool
	Index    RegRef
	Disp     int32
	Scale    uint8
}

// Operand is a tagged union over the operand kinds the middle-end needs
// to see: registers (the allocator's business), memory (whose base/index
// registers are the allocator's business even though the rest of the
// addressing mode is not), immediates, and label references (jump
// targets).
type Operand struct {
	Kind  OperandKind
	Reg   RegRef
	Mem   MemOperand
	Imm   int64
	Label LabelID
}

// RegOperand builds a virtual-register operand.
func RegOperand(v *VirtReg) Operand {
	return Operand{Kind: OpReg, Reg: RegRef{Virtual: true, VirtID: v.ID()}}
}

// PhysRegOperand builds a fixed-physical-register operand.
func PhysRegOperand(kind RegKind, physID uint8) Operand {
	return Operand{Kind: OpReg, Reg: RegRef{Virtual: false, PhysID: physID}}
}

// ImmOperand builds an immediate operand.
func ImmOperand(v int64) Operand {
	return Operand{Kind: OpImm, Imm: v}
}

// LabelOperand builds a label-reference operand, used by jump
// instructions.
func LabelOperand(id LabelID) Operand {
	return Operand{Kind: OpLabel, Label: id}
}

// MemRegOperand builds a memory operand over virtual-register base and
// (optional) index registers.
func MemRegOperand(base *VirtReg, index *VirtReg, disp int32, scale uint8) Operand {
	m := MemOperand{Disp: disp, Scale: scale}
	if base != nil {
		m.HasBase = true
		m.Base = RegRef{Virtual: true, VirtID: base.ID()}
	}
	if index != nil {
		m.HasIndex = true
		m.Index = RegRef{Virtual: true, VirtID: index.ID()}
	}
	return Operand{Kind: OpMem, Mem: m}
}
