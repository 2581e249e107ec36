package ir

// Func is one function's node list plus its virtual-register table. It
// is the unit of compilation the middle-end pass operates on; nodes and
// virtual registers outlive any single pass over Func, per the
// lifecycle rule that only pass-scoped analysis state is reclaimed
// between runs.
type Func struct {
	Name  string
	Entry *Node
	VRegs *VirtRegTable

	head, tail  *Node
	nextLabel   LabelID
	nextPos     uint32
}

// Head returns the first node of the function's list.
func (f *Func) Head() *Node { return f.head }

// Tail returns the last node of the function's list.
func (f *Func) Tail() *Node { return f.tail }

// Builder appends nodes to a Func's list, assigning strictly increasing
// Position values and maintaining next/prev links — the client-facing
// half of node construction. It deliberately does not know how to emit
// any particular instruction mnemonic; that belongs to the (out of
// scope) assembler-facing API layered on top of this package.
type Builder struct {
	fn *Func
}

// NewBuilder starts building a fresh function named name.
func NewBuilder(name string) *Builder {
	fn := &Func{
		Name:      name,
		VRegs:     NewVirtRegTable(),
		nextLabel: 1, // 0 is NoLabel
	}
	return &Builder{fn: fn}
}

// Func returns the function under construction.
func (b *Builder) Func() *Func { return b.fn }

// NewLabel allocates a fresh label id without creating a node for it.
func (b *Builder) NewLabel() LabelID {
	id := b.fn.nextLabel
	b.fn.nextLabel++
	return id
}

func (b *Builder) append(n *Node) *Node {
	b.fn.nextPos++
	n.Position = b.fn.nextPos
	if b.fn.tail == nil {
		b.fn.head = n
		b.fn.tail = n
	} else {
		n.prev = b.fn.tail
		b.fn.tail.next = n
		b.fn.tail = n
	}
	return n
}

// Begin appends the function's FuncEntry node. It must be the first node
// appended to an otherwise-empty function.
func (b *Builder) Begin(sig *Signature) *Node {
	n := &Node{Type: NodeFuncEntry, Sig: sig}
	b.fn.Entry = n
	return b.append(n)
}

// Label appends a label node.
func (b *Builder) Label(id LabelID) *Node {
	return b.append(&Node{Type: NodeLabel, Label: id})
}

// Inst appends a plain instruction node.
func (b *Builder) Inst(opcode uint32, operands ...Operand) *Node {
	return b.append(&Node{
		Type:     NodeInst,
		Flags:    FlagActsAsInst,
		Opcode:   opcode,
		Operands: operands,
	})
}

// InstWithExtra appends an instruction node carrying an extra
// predicate/mask/rep-count register.
func (b *Builder) InstWithExtra(opcode uint32, extra RegRef, operands ...Operand) *Node {
	n := b.Inst(opcode, operands...)
	n.ExtraReg = &extra
	return n
}

// FuncCall appends a call node with the given signature, argument
// operands, and up to two return operands.
func (b *Builder) FuncCall(sig *Signature, args []Operand, rets [2]Operand) *Node {
	return b.append(&Node{
		Type:     NodeFuncCall,
		Flags:    FlagActsAsInst | FlagRemovable,
		CallSig:  sig,
		CallArgs: args,
		CallRets: rets,
	})
}

// FuncRet appends a return node carrying up to two return operands.
func (b *Builder) FuncRet(rets [2]Operand) *Node {
	return b.append(&Node{
		Type:        NodeFuncRet,
		Flags:       FlagActsAsInst,
		RetOperands: rets,
	})
}

// Align appends an alignment directive, transparent to the CFG.
func (b *Builder) Align(alignment uint32) *Node {
	return b.append(&Node{Type: NodeAlign, Flags: FlagInformative, Alignment: alignment})
}

// Comment appends a comment node, transparent to the CFG.
func (b *Builder) Comment(text string) *Node {
	return b.append(&Node{Type: NodeComment, Flags: FlagInformative, Text: text})
}

// End appends the function's end sentinel and records it on the
// function's FuncEntry node.
func (b *Builder) End() *Node {
	n := b.append(&Node{Type: NodeSentinel})
	if b.fn.Entry != nil {
		b.fn.Entry.End = n
		b.fn.Entry.Finished = true
	}
	return n
}

// Remove unlinks n from the node list. Used by unreachable-code
// elimination during CFG construction; n's own next/prev are cleared so
// a stray reference cannot observe a half-unlinked node.
func (b *Builder) Remove(n *Node) { b.fn.Remove(n) }

// Remove unlinks n from f's node list.
func (f *Func) Remove(n *Node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		f.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		f.tail = n.prev
	}
	n.next, n.prev = nil, nil
}
