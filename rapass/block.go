package rapass

import (
	"github.com/xyproto/midforge/ir"
	"github.com/xyproto/midforge/zone"
)

// BlockFlags are the per-block status bits the CFG builder and later
// phases maintain.
type BlockFlags uint8

const (
	BlockConstructed  BlockFlags = 1 << iota // closed by the CFG builder
	BlockHasLiveness                         // GEN/KILL/IN/OUT have been computed
	BlockHasFixedRegs                        // some instruction in this block pins a physical register
	BlockHasCalls                            // contains a FuncCall node
)

// RegStats carries per-register-kind bitmasks: which physical registers
// this block uses, which it clobbers (at call sites or through an
// instruction's implicit register clobbers), and which are
// precolored (pinned by a fixed tied-register id).
type RegStats struct {
	Used       [ir.NumRegKinds]uint32
	Clobbered  [ir.NumRegKinds]uint32
	Precolored [ir.NumRegKinds]uint32
}

// MarkPrecolored records that physical register id physID of kind kind
// is pinned somewhere in this site's tied registers.
func (s *RegStats) MarkPrecolored(kind ir.RegKind, physID uint8) {
	if physID == ir.AnyPhysReg || physID >= 32 {
		return
	}
	s.Precolored[kind] |= 1 << physID
}

// merge ORs src into s in place, used to fold one instruction's stats
// into its block's running totals.
func (s *RegStats) merge(src *RegStats) {
	for k := 0; k < int(ir.NumRegKinds); k++ {
		s.Used[k] |= src.Used[k]
		s.Clobbered[k] |= src.Clobbered[k]
		s.Precolored[k] |= src.Precolored[k]
	}
}

// Loop is the reserved, stubbed loop-metadata record: the pass allocates
// one per back-edge target it is told about, but records no member
// blocks and computes no nesting structure. See buildLoops.
type Loop struct {
	ID     int
	Header *Block
}

// Block is a maximal sequence of IR nodes with a single entry and single
// control-flow exit.
type Block struct {
	id int

	Flags BlockFlags
	First *ir.Node
	Last  *ir.Node
	Weight float64

	POVOrder int
	Stats    RegStats
	IDom     *Block
	Loop     *Loop

	Predecessors []*Block
	Successors   []*Block

	IN, OUT, GEN, KILL *zone.BitVector

	stamp uint64 // dominance-query timestamp, see dom.go
}

// ID returns the block's dense id, assigned in construction order.
func (b *Block) ID() int { return b.id }

// appendSuccessor adds s as a successor of p (and p as a predecessor of
// s), idempotently.
func appendSuccessor(p, s *Block) {
	if !containsBlock(p.Successors, s) {
		p.Successors = append(p.Successors, s)
	}
	if !containsBlock(s.Predecessors, p) {
		s.Predecessors = append(s.Predecessors, p)
	}
}

func containsBlock(list []*Block, b *Block) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}
