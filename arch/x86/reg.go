// Package x86 is the x86-64 collaborator the middle-end CFG builder
// consults for jump classification and tied-register construction. It
// knows nothing about instruction encoding: byte emission is the (out of
// scope) layer above this one.
package x86

import "github.com/xyproto/midforge/ir"

// General-purpose physical register ids, matching the encoding field the
// teacher's own register table (reg.go, x86_64Registers) assigns each
// 64-bit name.
const (
	RAX uint8 = 0
	RCX uint8 = 1
	RDX uint8 = 2
	RBX uint8 = 3
	RSP uint8 = 4
	RBP uint8 = 5
	RSI uint8 = 6
	RDI uint8 = 7
	R8  uint8 = 8
	R9  uint8 = 9
	R10 uint8 = 10
	R11 uint8 = 11
	R12 uint8 = 12
	R13 uint8 = 13
	R14 uint8 = 14
	R15 uint8 = 15
)

// NumGP is the number of addressable 64-bit general-purpose registers.
const NumGP = 16

// NumXMM is the number of addressable XMM/YMM/ZMM vector register slots
// this module tracks (the allocator only needs one identity per vector
// register, independent of which width it's currently accessed at).
const NumXMM = 16

// NumMask is the number of AVX-512 mask registers (k0-k7).
const NumMask = 8

// AllocableGP excludes RSP (always the stack pointer) from the
// allocator's candidate set; RBP is left allocable since whether a frame
// pointer is preserved is a per-function calling-convention choice this
// layer doesn't decide.
const AllocableGP = uint32(1<<NumGP - 1) &^ (1 << RSP)

const AllocableXMM = uint32(1<<NumXMM - 1)

const AllocableMask = uint32(1<<NumMask-1) &^ 1 // k0 is not addressable as a predicate source on most instructions

// RegName returns the canonical 64-bit name for a general-purpose
// physical register id, for diagnostics.
func RegName(kind ir.RegKind, physID uint8) string {
	switch kind {
	case ir.KindGP:
		names := [NumGP]string{"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
			"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"}
		if int(physID) < len(names) {
			return names[physID]
		}
	case ir.KindVec:
		if int(physID) < NumXMM {
			return "xmm" + itoa(physID)
		}
	case ir.KindMask:
		if int(physID) < NumMask {
			return "k" + itoa(physID)
		}
	}
	return "?"
}

func itoa(v uint8) string {
	if v < 10 {
		return string([]byte{'0' + v})
	}
	return string([]byte{'0' + v/10, '0' + v%10})
}
