package ir

// Signature describes a function's argument and return virtual
// registers. Calling-convention frame layout (argument shuffling,
// prolog/epilog) is out of scope for this package; Signature only binds
// argument positions to virtual registers so the middle-end can treat
// FuncEntry's arguments and FuncCall's arguments/returns uniformly.
type Signature struct {
	Args     []VRegID
	Rets     []VRegID
	CallConv string
	Variadic bool
}
