package rapass

import "github.com/xyproto/midforge/zone"

type povFrame struct {
	b   *Block
	idx int
}

// buildPOV computes the post-order view: an iterative DFS from the
// entry block using an explicit (block, next-successor-index) stack and
// a visited bitmap, so traversal depth is bounded by block count rather
// than Go's goroutine stack. POV[len-1] is always the entry block;
// reverse-postorder for the dominator and liveness passes is POV walked
// from the end.
func (p *Pass) buildPOV() {
	p.pov = p.pov[:0]
	if p.entry == nil {
		return
	}

	visited, _ := zone.NewBitVector(p.zone, len(p.blocks))
	stack := zone.NewStack[povFrame](p.zone)

	visited.Set(p.entry.id)
	_ = stack.Push(povFrame{b: p.entry})

	pov := make([]*Block, 0, len(p.blocks))
	for !stack.Empty() {
		top := stack.TopPtr()
		if top.idx < len(top.b.Successors) {
			s := top.b.Successors[top.idx]
			top.idx++
			if !visited.Test(s.id) {
				visited.Set(s.id)
				_ = stack.Push(povFrame{b: s})
			}
			continue
		}
		done := stack.Pop()
		done.b.POVOrder = len(pov)
		pov = append(pov, done.b)
	}
	p.pov = pov
}
