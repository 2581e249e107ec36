package rapass

import "github.com/xyproto/midforge/ir"

// WorkReg is a stable, pass-scoped handle for a virtual register. Its
// dense work-id is the bit index used in every liveness bitmap; work-ids
// are contiguous in [0, W) for the current function and never outlive
// the pass that allocated them.
type WorkReg struct {
	id   int
	Kind ir.RegKind
	VReg *ir.VirtReg

	// LiveRangeStart/End are node positions bounding the coarsest range
	// in which this register is live, maintained as a cheap byproduct of
	// tied-register building; a downstream allocator may refine this
	// into a full set of disjoint sub-ranges.
	LiveRangeStart uint32
	LiveRangeEnd   uint32

	Nodes []*ir.Node
}

// ID returns the work register's dense bit index.
func (w *WorkReg) ID() int { return w.id }

// touch records that this work register is referenced at node, widening
// its coarse live range and appending to its node list.
func (w *WorkReg) touch(node *ir.Node) {
	w.Nodes = append(w.Nodes, node)
	if w.LiveRangeStart == 0 || node.Position < w.LiveRangeStart {
		w.LiveRangeStart = node.Position
	}
	if node.Position > w.LiveRangeEnd {
		w.LiveRangeEnd = node.Position
	}
}

// vregScratch holds the per-virtual-register fields that are meaningful
// only during one pass. Keeping them here instead of on ir.VirtReg keeps
// ir free of any dependency on this package, per the side-table
// alternative the data model explicitly sanctions.
type vregScratch struct {
	tied *ir.TiedReg
	work *WorkReg

	// Reserved for a downstream allocator; this pass resets them to a
	// neutral state on entry and exit but never assigns them itself.
	physID    uint8
	state     uint8
	homeMask  uint32
	stackSlot any
}

func neutralScratch() vregScratch {
	return vregScratch{physID: ir.AnyPhysReg}
}

// resetScratch grows (if necessary) and wipes every scratch slot to its
// neutral value, satisfying the invariant that virtual-register scratch
// fields are reset on entering and leaving every function pass.
func (p *Pass) resetScratch() {
	n := p.fn.VRegs.Len()
	if cap(p.scratch) < n {
		p.scratch = make([]vregScratch, n)
	} else {
		p.scratch = p.scratch[:n]
	}
	for i := range p.scratch {
		p.scratch[i] = neutralScratch()
	}
}

func (p *Pass) scratchFor(id ir.VRegID) *vregScratch {
	return &p.scratch[id]
}
