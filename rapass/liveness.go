package rapass

import (
	"github.com/xyproto/midforge/ir"
	"github.com/xyproto/midforge/zone"
)

// buildLiveness runs the classical two-phase dataflow computation over
// work registers: a single backward walk per block to derive GEN and
// KILL (and each instruction's live-out snapshot), then an IN/OUT
// worklist fixpoint across the CFG.
func (p *Pass) buildLiveness() error {
	w := len(p.workRegs)

	for _, b := range p.blocks {
		var err error
		if b.GEN, err = zone.NewBitVector(p.zone, w); err != nil {
			return wrap(StatusNoHeapMemory, nil, "liveness GEN allocation failed")
		}
		if b.KILL, err = zone.NewBitVector(p.zone, w); err != nil {
			return wrap(StatusNoHeapMemory, nil, "liveness KILL allocation failed")
		}
		if b.IN, err = zone.NewBitVector(p.zone, w); err != nil {
			return wrap(StatusNoHeapMemory, nil, "liveness IN allocation failed")
		}
		if b.OUT, err = zone.NewBitVector(p.zone, w); err != nil {
			return wrap(StatusNoHeapMemory, nil, "liveness OUT allocation failed")
		}
	}

	live, err := zone.NewBitVector(p.zone, w)
	if err != nil {
		return wrap(StatusNoHeapMemory, nil, "liveness scratch allocation failed")
	}

	// Phase 1: GEN/KILL per block, walking reverse postorder across
	// blocks (order-independent, each block's result depends only on its
	// own instructions) and each block's instructions from last to
	// first.
	for i := len(p.pov) - 1; i >= 0; i-- {
		b := p.pov[i]
		live.ClearAll()
		if b.First == nil {
			continue
		}

		for node := b.Last; ; node = node.Prev() {
			if node.RA != nil {
				snapshot, err := zone.NewBitVector(p.zone, w)
				if err != nil {
					return wrap(StatusNoHeapMemory, node, "liveness snapshot allocation failed")
				}
				snapshot.CopyFrom(live)
				node.RA.LiveOut = snapshot

				for k := 0; k < int(ir.NumRegKinds); k++ {
					for _, t := range node.RA.TiedForKind(ir.RegKind(k)) {
						idx := p.scratchFor(t.VReg.ID()).work.ID()

						// Standard backward incremental update, walking
						// last instruction to first: a write-only mention
						// kills the register (it needs nothing from
						// above it), while a read or read-modify-write
						// mention generates it and cancels any KILL
						// recorded so far in this backward walk, since
						// the register is plainly live going into this
						// point regardless of what a later (in program
						// order) write in the block did to it.
						isRead := t.Flags&(ir.TiedR|ir.TiedRMem) != 0
						if !isRead {
							b.KILL.Set(idx)
							live.Clear(idx)
						} else {
							b.GEN.Set(idx)
							b.KILL.Clear(idx)
							live.Set(idx)
						}
					}
				}
			}
			if node == b.First {
				break
			}
		}
		b.Flags |= BlockHasLiveness
	}

	// Phase 2: IN/OUT fixpoint over a FIFO worklist, seeded with every
	// block so even an all-zero-GEN function converges in one sweep.
	queue := make([]*Block, len(p.blocks))
	copy(queue, p.blocks)
	queued := make([]bool, len(p.blocks))
	visited := make([]bool, len(p.blocks))
	for _, b := range queue {
		queued[b.id] = true
	}

	tmp, err := zone.NewBitVector(p.zone, w)
	if err != nil {
		return wrap(StatusNoHeapMemory, nil, "liveness OUT scratch allocation failed")
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued[b.id] = false

		tmp.ClearAll()
		for _, s := range b.Successors {
			tmp.Or(s.IN)
		}
		outChanged := !tmp.Equal(b.OUT)
		if outChanged {
			b.OUT.CopyFrom(tmp)
		}

		first := !visited[b.id]
		visited[b.id] = true

		if !first && !outChanged {
			continue
		}

		inChanged := b.IN.OrDiff(b.GEN, b.OUT, b.KILL)
		if inChanged {
			for _, pred := range b.Predecessors {
				if visited[pred.id] && !queued[pred.id] {
					queue = append(queue, pred)
					queued[pred.id] = true
				}
			}
		}
	}

	return nil
}
