package rapass

import (
	"go.uber.org/zap"

	"github.com/xyproto/midforge/ir"
	"github.com/xyproto/midforge/zone"
)

// Pass is one function's middle-end run: CFG construction, post-order
// view, dominators, (stubbed) loops, and liveness, in that order. A Pass
// is single-use — construct a fresh one per function via New, and call
// Run exactly once.
type Pass struct {
	fn      *ir.Func
	adapter Adapter
	config  Config
	log     *zap.Logger

	zone *zone.Zone

	scratch  []vregScratch
	workRegs []*WorkReg
	blocks   []*Block
	pov      []*Block

	entry *Block
	exits []*Block

	labelBlocks map[ir.LabelID]*Block

	stamp uint64 // monotonically increasing dominance-query timestamp

	// Architecture constants, set by Adapter.OnInit before CFG
	// construction begins.
	ArchRegCount  [ir.NumRegKinds]int
	AllocableRegs [ir.NumRegKinds]uint32
	SPPhysID      uint8
	FPPhysID      uint8
	PreserveFP    bool

	tiedBuilder *TiedBuilder
}

// New constructs a Pass over fn using adapter for architecture-specific
// decisions. cfg is copied; pass DefaultConfig() or ConfigFromEnv() for
// typical use.
func New(fn *ir.Func, adapter Adapter, cfg Config) *Pass {
	p := &Pass{
		fn:          fn,
		adapter:     adapter,
		config:      cfg,
		log:         zap.NewNop(),
		zone:        zone.New(cfg.ZonePageSize),
		labelBlocks: make(map[ir.LabelID]*Block),
		SPPhysID:    ir.AnyPhysReg,
		FPPhysID:    ir.AnyPhysReg,
	}
	p.tiedBuilder = newTiedBuilder(p, cfg.TiedBufferCap)
	return p
}

// WithLogger attaches a zap logger for phase-boundary debug messages;
// the zero value keeps logging a no-op, so embedding this package in a
// process that never configures zap costs nothing.
func (p *Pass) WithLogger(log *zap.Logger) *Pass {
	if log != nil {
		p.log = log
	}
	return p
}

// Zone returns the per-function arena this pass allocates from.
func (p *Pass) Zone() *zone.Zone { return p.zone }

// VRegs returns the function's virtual-register table, so an adapter can
// resolve an operand's RegRef.VirtID back to the *ir.VirtReg tb.Add
// expects.
func (p *Pass) VRegs() *ir.VirtRegTable { return p.fn.VRegs }

// Blocks returns every block constructed, in construction order.
func (p *Pass) Blocks() []*Block { return p.blocks }

// POV returns the post-order view computed by buildPOV; POV[len-1] is
// always the entry block once Run has completed successfully.
func (p *Pass) POV() []*Block { return p.pov }

// WorkRegs returns every work register allocated during this pass.
func (p *Pass) WorkRegs() []*WorkReg { return p.workRegs }

// EntryBlock returns the function's entry block.
func (p *Pass) EntryBlock() *Block { return p.entry }

// ExitBlocks returns every block with no successors that contains the
// function's end sentinel.
func (p *Pass) ExitBlocks() []*Block { return p.exits }

// Run executes the full middle-end pass over fn. On any failure it
// returns a non-nil error; in both the success and failure cases the
// zone is reset and every virtual register's scratch fields are wiped
// before Run returns, so callers never observe partial pass state.
func (p *Pass) Run() error {
	p.resetScratch()
	for n := p.fn.Head(); n != nil; n = n.Next() {
		n.PassData = nil
	}
	p.adapter.OnInit(p)
	defer p.adapter.OnDone(p)
	defer p.zone.Reset()
	defer p.resetScratch()

	log := p.log
	if !p.config.DebugLog {
		log = zap.NewNop()
	}

	if err := p.buildCFG(); err != nil {
		return err
	}
	log.Debug("cfg built", zap.Int("blocks", len(p.blocks)))

	p.buildPOV()
	log.Debug("post-order view built", zap.Int("reachable_blocks", len(p.pov)))

	p.buildDominators()
	log.Debug("dominators converged")

	p.buildLoops()

	if err := p.buildLiveness(); err != nil {
		return err
	}
	log.Debug("liveness converged")

	return nil
}

func (p *Pass) newWorkReg(vreg *ir.VirtReg) *WorkReg {
	w := &WorkReg{id: len(p.workRegs), Kind: vreg.Kind, VReg: vreg}
	p.workRegs = append(p.workRegs, w)
	return w
}

func (p *Pass) newBlock() *Block {
	b := &Block{id: len(p.blocks)}
	p.blocks = append(p.blocks, b)
	return b
}

// nextStamp returns a fresh, pass-unique timestamp for dominance
// queries.
func (p *Pass) nextStamp() uint64 {
	p.stamp++
	return p.stamp
}
