package rapass

import "github.com/xyproto/midforge/ir"

// JumpType classifies an instruction-like node's effect on control flow,
// as reported by the architecture adapter.
type JumpType uint8

const (
	JumpNone JumpType = iota
	JumpDirect
	JumpConditional
	JumpReturn
)

func (j JumpType) String() string {
	switch j {
	case JumpNone:
		return "None"
	case JumpDirect:
		return "Direct"
	case JumpConditional:
		return "Conditional"
	case JumpReturn:
		return "Return"
	default:
		return "JumpType?"
	}
}

// Adapter is the architecture-specific collaborator the CFG builder
// consults for every instruction-like node. It is declared here, in the
// consumer package, rather than in a shared arch package: callers accept
// this interface, and arch/x86 and arch/arm64 return concrete types that
// implement it. rapass never imports an arch package.
type Adapter interface {
	// OnInit sets architecture constants on the pass (register counts
	// per kind, allocable masks, SP/FP registers, whether a frame
	// pointer is preserved) before the CFG builder runs.
	OnInit(pass *Pass)

	// OnDone is called once after the whole pass completes, success or
	// failure, symmetric with OnInit.
	OnDone(pass *Pass)

	// OnInst builds inst's tied-register array (via repeated tb.Add calls
	// followed by tb.StoreTo(inst)) and classifies its effect on control
	// flow. It must not retain tb or inst beyond the call. tb.Block()
	// gives access to the enclosing block's running register statistics.
	OnInst(tb *TiedBuilder, inst *ir.Node) (JumpType, error)
}
