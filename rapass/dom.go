package rapass

// buildDominators computes each reachable block's immediate dominator
// with the Cooper-Harvey-Kennedy iterative algorithm: repeatedly walk
// blocks in reverse postorder, re-deriving each non-entry block's idom
// as the intersection of its already-processed predecessors' idoms,
// until a full pass makes no change. POVOrder (assigned by buildPOV)
// stands in for the reverse-postorder numbering the intersect step
// walks by.
func (p *Pass) buildDominators() {
	if p.entry == nil {
		return
	}
	p.entry.IDom = p.entry

	rpo := make([]*Block, len(p.pov))
	for i, b := range p.pov {
		rpo[len(p.pov)-1-i] = b
	}

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == p.entry {
				continue
			}
			var newIdom *Block
			for _, pred := range b.Predecessors {
				if pred.IDom == nil {
					continue // predecessor not yet processed this pass
				}
				if newIdom == nil {
					newIdom = pred
				} else {
					newIdom = intersect(newIdom, pred)
				}
			}
			if newIdom != nil && b.IDom != newIdom {
				b.IDom = newIdom
				changed = true
			}
		}
	}
}

// intersect walks two blocks' idom chains up towards the entry in
// lockstep, using POVOrder as the height ordering, until they meet at
// their nearest common dominator.
func intersect(x, y *Block) *Block {
	for x != y {
		for x.POVOrder < y.POVOrder {
			x = x.IDom
		}
		for y.POVOrder < x.POVOrder {
			y = y.IDom
		}
	}
	return x
}

// NearestCommonDominator returns the nearest block that dominates both
// a and b, via a timestamp walk: a's idom chain is stamped with a
// pass-unique value, then b's idom chain is scanned for the first
// stamped block.
func (p *Pass) NearestCommonDominator(a, b *Block) *Block {
	if a == nil || b == nil {
		return nil
	}
	stamp := p.nextStamp()
	for x := a; ; x = x.IDom {
		x.stamp = stamp
		if x == x.IDom {
			break
		}
	}
	for y := b; ; y = y.IDom {
		if y.stamp == stamp {
			return y
		}
		if y == y.IDom {
			break
		}
	}
	return p.entry
}

// Dominates reports whether a dominates b (every path from the entry to
// b passes through a), a included.
func (p *Pass) Dominates(a, b *Block) bool {
	return p.NearestCommonDominator(a, b) == a
}

// StrictlyDominates reports whether a dominates b and a != b.
func (p *Pass) StrictlyDominates(a, b *Block) bool {
	return a != b && p.Dominates(a, b)
}
