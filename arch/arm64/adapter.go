// Package arm64 is a placeholder architecture collaborator: this module
// targets x86-64 first, per spec.md §1. Adapter exists so callers have
// somewhere to land an arch switch without that switch reaching into
// rapass internals, but every OnInst call fails with
// rapass.ErrInvalidArch (OnInit and OnDone do nothing).
package arm64

import (
	"github.com/xyproto/midforge/ir"
	"github.com/xyproto/midforge/rapass"
)

// Adapter is the unimplemented ARM64 rapass.Adapter. Grounded on the
// teacher's own arch.go ARM64 struct, which stubs out every method of
// its Architecture interface the same way.
type Adapter struct{}

func (a *Adapter) OnInit(pass *rapass.Pass) {}

func (a *Adapter) OnDone(pass *rapass.Pass) {}

func (a *Adapter) OnInst(tb *rapass.TiedBuilder, n *ir.Node) (rapass.JumpType, error) {
	return rapass.JumpNone, rapass.ErrInvalidArch
}
