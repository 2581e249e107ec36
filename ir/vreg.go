package ir

// RegKind groups virtual and physical registers into the families the
// allocator must track separately (general purpose, vector, mask). It is
// small and closed because every architecture adapter must be able to
// size per-kind statistics with a fixed-length array.
type RegKind uint8

const (
	KindGP RegKind = iota
	KindVec
	KindMask
	NumRegKinds
)

func (k RegKind) String() string {
	switch k {
	case KindGP:
		return "gp"
	case KindVec:
		return "vec"
	case KindMask:
		return "mask"
	default:
		return "kind?"
	}
}

// VirtRegFlags are the client-settable, pass-independent flag bits of a
// virtual register.
type VirtRegFlags uint16

const (
	VRegFixed          VirtRegFlags = 1 << iota // must be assigned a specific physical register
	VRegStack                                   // lives in a stack slot, never a register
	VRegMaterializable                          // may be recomputed instead of spilled
	VRegSaveOnUnuse                             // callee-saved style: preserve even if seemingly dead
)

// VRegID is a dense, per-function virtual register identifier.
type VRegID uint32

// VirtReg is a kind+size placeholder for a value, later mapped to a
// physical register or a stack slot by a downstream allocator. It
// deliberately carries no allocator-scratch fields (currently-tied
// pointer, currently-work pointer, assigned physical id, ...): those
// live in per-pass side tables owned by the consumer of this package so
// that ir stays independent of any particular pass implementation.
type VirtReg struct {
	id        VRegID
	Kind      RegKind
	Size      uint32
	Alignment uint32
	TypeID    uint32
	Priority  uint8
	Flags     VirtRegFlags
	Name      string

	// Reserved for a downstream allocator; never read by this package's
	// own passes.
	StackSlotSize      uint32
	StackSlotAlignment uint32
}

// ID returns the virtual register's dense id.
func (v *VirtReg) ID() VRegID { return v.id }

// VirtRegTable is the dense, per-function table of virtual registers,
// addressable by packed id.
type VirtRegTable struct {
	regs []*VirtReg
}

// NewVirtRegTable creates an empty table.
func NewVirtRegTable() *VirtRegTable {
	return &VirtRegTable{}
}

// New allocates a fresh virtual register and adds it to the table.
func (t *VirtRegTable) New(kind RegKind, size, alignment uint32) *VirtReg {
	v := &VirtReg{
		id:        VRegID(len(t.regs)),
		Kind:      kind,
		Size:      size,
		Alignment: alignment,
	}
	t.regs = append(t.regs, v)
	return v
}

// Get returns the virtual register with the given id, or ok=false if id
// is out of range.
func (t *VirtRegTable) Get(id VRegID) (*VirtReg, bool) {
	if int(id) < 0 || int(id) >= len(t.regs) {
		return nil, false
	}
	return t.regs[id], true
}

// Len returns the number of virtual registers registered so far.
func (t *VirtRegTable) Len() int { return len(t.regs) }

// All returns every virtual register in id order. The slice must not be
// mutated by callers.
func (t *VirtRegTable) All() []*VirtReg { return t.regs }
