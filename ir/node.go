package ir

// NodeType tags the union carried by Node.
type NodeType uint8

const (
	NodeLabel NodeType = iota
	NodeInst
	NodeFuncEntry
	NodeFuncRet
	NodeFuncCall
	NodeSentinel
	NodeAlign
	NodeComment
	NodeConstPool
	NodeData
)

func (t NodeType) String() string {
	switch t {
	case NodeLabel:
		return "Label"
	case NodeInst:
		return "Inst"
	case NodeFuncEntry:
		return "FuncEntry"
	case NodeFuncRet:
		return "FuncRet"
	case NodeFuncCall:
		return "FuncCall"
	case NodeSentinel:
		return "Sentinel"
	case NodeAlign:
		return "Align"
	case NodeComment:
		return "Comment"
	case NodeConstPool:
		return "ConstPool"
	case NodeData:
		return "Data"
	default:
		return "Node?"
	}
}

// NodeFlags are the structural flag bits every node carries regardless
// of its type.
type NodeFlags uint8

const (
	FlagInformative NodeFlags = 1 << iota // carries no code (comment, align, ...)
	FlagRemovable                         // may be dropped by unreachable-code elimination
	FlagNoEffect                          // known to have no observable effect
	FlagActsAsInst                        // participates in tied-register building like a plain Inst
)

// Node is a single entry in the doubly-linked node list that is a
// function's program. Every node carries the same header (type, flags,
// position, pass-scoped side data) plus whichever of the type-specific
// fields below its Type selects; unused fields for a given Type are left
// at their zero value. This flat layout avoids a class hierarchy the
// language does not have a direct equivalent for, at the cost of some
// unused struct space per node — an acceptable trade given how few nodes
// one function holds.
type Node struct {
	next, prev *Node

	Type     NodeType
	Flags    NodeFlags
	Position uint32

	// PassData is reset to nil between passes. It is where a pass stores
	// the structured side-data this package doesn't know the shape of
	// (e.g. a *rapass.Block back-reference); instruction-like nodes use
	// the dedicated RA field instead, since every pass in this module
	// needs that one.
	PassData any

	// Label
	Label      LabelID
	LabelBlock any // opaque slot for a pass's block back-reference; rapass keeps its own label-to-block map and leaves this unset

	// Inst, and the instruction-shaped parts of FuncCall (FlagActsAsInst
	// is set on both).
	Opcode     uint32
	OptionBits uint32
	ExtraReg   *RegRef
	Operands   []Operand
	RA         *RAData

	// FuncEntry
	Sig        *Signature
	ExitLabel  LabelID
	End        *Node
	Finished   bool

	// FuncRet — up to two return operands, per the calling convention's
	// low/high (or pointer/length) register pair.
	RetOperands [2]Operand

	// FuncCall
	CallSig  *Signature
	CallArgs []Operand
	CallRets [2]Operand

	// Align
	Alignment uint32

	// Comment
	Text string

	// ConstPool / Data
	Bytes []byte
}

// Next returns the next node in the list, or nil at the tail.
func (n *Node) Next() *Node { return n.next }

// Prev returns the previous node in the list, or nil at the head.
func (n *Node) Prev() *Node { return n.prev }

// ActsAsInst reports whether this node must be fed through the
// tied-register builder like a plain instruction (true for Inst,
// FuncCall, and FuncRet).
func (n *Node) ActsAsInst() bool {
	return n.Type == NodeInst || n.Type == NodeFuncCall || n.Type == NodeFuncRet
}

// IsLabelLike reports whether this node is transparent with respect to
// block boundaries during CFG construction's label-merge walk (labels,
// aligns, and comments — never instructions).
func (n *Node) IsLabelLike() bool {
	switch n.Type {
	case NodeLabel, NodeAlign, NodeComment:
		return true
	default:
		return false
	}
}
