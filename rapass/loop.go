package rapass

// buildLoops detects back edges (an edge b -> h where h dominates b) and
// gives each distinct header a Loop record, pointing the header and each
// back-edge source block at it, but does not compute full loop
// membership, nesting, or preheaders — that structural analysis is left
// to a downstream pass, per the middle-end's scope. Nothing here runs
// unless the pass's Config opted into loop detection, since most
// callers of this pass don't need even this much.
func (p *Pass) buildLoops() {
	if !p.config.LoopDetection || p.entry == nil {
		return
	}

	headers := make(map[*Block]*Loop)
	nextID := 0
	for _, b := range p.blocks {
		for _, s := range b.Successors {
			if !p.Dominates(s, b) {
				continue // not a back edge
			}
			lp, ok := headers[s]
			if !ok {
				lp = &Loop{ID: nextID, Header: s}
				nextID++
				headers[s] = lp
				s.Loop = lp
			}
			if b.Loop == nil {
				b.Loop = lp
			}
		}
	}
}
