package rapass

import "github.com/xyproto/midforge/ir"

// buildCFG walks fn's node list exactly once, producing blocks,
// predecessor/successor edges, and removing nodes that unreachable-code
// elimination proves dead. It implements the seven numbered rules plus
// the label-merge rule.
func (p *Pass) buildCFG() error {
	fn := p.fn
	if fn.Head() == nil || fn.Head().Type != ir.NodeFuncEntry {
		return wrap(StatusInvalidState, fn.Head(), "function must start with a FuncEntry node")
	}
	if fn.Entry == nil || fn.Entry.End == nil {
		return wrap(StatusInvalidState, fn.Entry, "function has no end sentinel")
	}

	labelNodeOf := make(map[ir.LabelID]*ir.Node)
	for n := fn.Head(); n != nil; n = n.Next() {
		if n.Type == ir.NodeLabel {
			labelNodeOf[n.Label] = n
		}
	}

	var current *Block
	hasCode := false
	seenEntry := false

scan:
	for n := fn.Head(); n != nil; {
		next := n.Next()

		switch {
		case n.Type == ir.NodeFuncEntry:
			if seenEntry {
				return wrap(StatusInvalidState, n, "FuncEntry node not at the start of the function")
			}
			seenEntry = true
			entryBlock := p.newBlock()
			entryBlock.First = n
			p.entry = entryBlock
			current = entryBlock
			hasCode = false

		case n.Type == ir.NodeSentinel:
			if n == fn.Entry.End {
				if current != nil {
					current.Last = n
					current.Flags |= BlockConstructed
					p.exits = append(p.exits, current)
					current = nil
				}
				break scan
			}

		case n.Type == ir.NodeLabel && current == nil:
			blk, err := p.resolveLabelBlock(n.Label, labelNodeOf)
			if err != nil {
				return err
			}
			if blk.Flags&BlockConstructed != 0 {
				break scan
			}
			current = blk
			hasCode = false
			if current.First == nil {
				current.First = n
			}

		case n.Type == ir.NodeLabel && current != nil:
			if existing, ok := p.labelBlocks[n.Label]; ok {
				if existing == current {
					if hasCode {
						return wrap(StatusInvalidState, n, "label re-binds its own block after code was emitted")
					}
				} else {
					current.Last = n.Prev()
					current.Flags |= BlockConstructed
					appendSuccessor(current, existing)
					current = existing
					hasCode = false
				}
			} else if hasCode {
				current.Last = n.Prev()
				current.Flags |= BlockConstructed
				newBlk := p.newBlock()
				newBlk.First = n
				p.labelBlocks[n.Label] = newBlk
				appendSuccessor(current, newBlk)
				current = newBlk
				hasCode = false
			} else {
				p.labelBlocks[n.Label] = current
			}

		case n.ActsAsInst() && current == nil:
			fn.Remove(n)

		case n.ActsAsInst() && current != nil:
			if n.Type == ir.NodeFuncCall {
				current.Flags |= BlockHasCalls
			}
			p.tiedBuilder.Reset(p, current)
			jt, err := p.adapter.OnInst(p.tiedBuilder, n)
			if err != nil {
				return err
			}
			prev := current
			if err := p.applyJump(n, jt, &current, labelNodeOf); err != nil {
				return err
			}
			// applyJump only keeps *current pointed at the same block for
			// JumpNone/JumpReturn; JumpDirect closes the block (current
			// becomes nil) and JumpConditional switches it to the
			// fall-through block, which has no code yet either way.
			hasCode = current != nil && current == prev

		default:
			// Align, Comment, ConstPool, Data: transparent to the CFG.
		}

		n = next
	}

	if current != nil {
		// Reached the end of the node list without hitting the end
		// sentinel: malformed stream.
		return wrap(StatusInvalidState, fn.Tail(), "node list ended without reaching the function's end sentinel")
	}
	return nil
}

// applyJump folds one instruction's jump classification into the CFG
// under construction, closing and linking blocks per rule 4.
func (p *Pass) applyJump(n *ir.Node, jt JumpType, current **Block, labelNodeOf map[ir.LabelID]*ir.Node) error {
	cur := *current
	switch jt {
	case JumpNone, JumpReturn:
		if cur.First == nil {
			cur.First = n
		}
		cur.Last = n
		return nil

	case JumpDirect:
		lbl, ok := lastOperandLabel(n)
		if !ok {
			return wrap(StatusInvalidState, n, "direct jump has no label operand")
		}
		target, err := p.resolveLabelBlock(lbl, labelNodeOf)
		if err != nil {
			return err
		}
		if cur.First == nil {
			cur.First = n
		}
		cur.Last = n
		cur.Flags |= BlockConstructed
		appendSuccessor(cur, target)
		*current = nil
		return nil

	case JumpConditional:
		lbl, ok := lastOperandLabel(n)
		if !ok {
			return wrap(StatusInvalidState, n, "conditional jump has no label operand")
		}
		target, err := p.resolveLabelBlock(lbl, labelNodeOf)
		if err != nil {
			return err
		}
		if cur.First == nil {
			cur.First = n
		}
		cur.Last = n
		cur.Flags |= BlockConstructed

		// Taken edge goes in first, so it lands at successors index 0.
		appendSuccessor(cur, target)

		nxt := n.Next()
		if nxt == nil {
			return wrap(StatusInvalidState, n, "conditional jump has no fall-through")
		}
		var fall *Block
		if nxt.Type == ir.NodeLabel {
			var err error
			fall, err = p.resolveLabelBlock(nxt.Label, labelNodeOf)
			if err != nil {
				return err
			}
		} else {
			fall = p.newBlock()
			fall.First = nxt
		}
		// Fall-through is installed second, landing at index 1 — the
		// successor-ordering contract downstream code relies on.
		appendSuccessor(cur, fall)

		*current = fall
		return nil

	default:
		return wrap(StatusInvalidInstruction, n, "unknown jump classification")
	}
}

// resolveLabelBlock returns the block associated with label, creating
// one if needed. New blocks created here apply the label-merge rule:
// walking backwards through only label/align/comment-class nodes, reuse
// an already-blocked label's block and retroactively assign it to every
// intervening label, so a run of consecutive labels collapses to one
// block.
func (p *Pass) resolveLabelBlock(label ir.LabelID, labelNodeOf map[ir.LabelID]*ir.Node) (*Block, error) {
	if b, ok := p.labelBlocks[label]; ok {
		return b, nil
	}

	labelNode, ok := labelNodeOf[label]
	if !ok {
		return nil, wrap(StatusInvalidState, nil, "jump targets an undefined label")
	}

	for prev := labelNode.Prev(); prev != nil && prev.IsLabelLike(); prev = prev.Prev() {
		if prev.Type != ir.NodeLabel {
			continue
		}
		if pb, ok := p.labelBlocks[prev.Label]; ok {
			for ln := prev.Next(); ln != nil; ln = ln.Next() {
				if ln.Type == ir.NodeLabel {
					p.labelBlocks[ln.Label] = pb
				}
				if ln == labelNode {
					break
				}
			}
			p.labelBlocks[label] = pb
			return pb, nil
		}
	}

	nb := p.newBlock()
	nb.First = labelNode
	p.labelBlocks[label] = nb
	return nb, nil
}

func lastOperandLabel(n *ir.Node) (ir.LabelID, bool) {
	if len(n.Operands) == 0 {
		return ir.NoLabel, false
	}
	last := n.Operands[len(n.Operands)-1]
	if last.Kind != ir.OpLabel {
		return ir.NoLabel, false
	}
	return last.Label, true
}
