package rapass

import (
	"github.com/xyproto/env/v2"
	"github.com/xyproto/midforge/zone"
)

// Config holds the tunables a middle-end pass exposes. Zero-value Config
// is not usable directly; construct one with DefaultConfig or
// ConfigFromEnv.
type Config struct {
	// ZonePageSize sizes each page of the per-function zone allocator.
	ZonePageSize int
	// TiedBufferCap bounds the tied-register builder's working buffer;
	// an instruction with more distinct virtual-register mentions than
	// this fails with StatusInvalidInstruction rather than growing
	// unbounded mid-instruction.
	TiedBufferCap int
	// LoopDetection, if true, asks the pass to run its (stubbed) loop
	// construction step; false skips it entirely. Either is conforming
	// per the loop component's reserved status.
	LoopDetection bool
	// DebugLog enables phase-boundary debug logging on the Pass's
	// logger.
	DebugLog bool
}

// DefaultConfig returns the library defaults without touching the
// environment, so embedding this package in another process never
// implicitly reads process environment variables unless the caller asks
// for ConfigFromEnv.
func DefaultConfig() Config {
	return Config{
		ZonePageSize:  zone.DefaultPageSize,
		TiedBufferCap: 80,
		LoopDetection: false,
		DebugLog:      false,
	}
}

// ConfigFromEnv starts from DefaultConfig and overrides fields from
// environment variables, using the same github.com/xyproto/env/v2
// helpers the rest of this module's ambient stack uses for
// environment-driven settings.
func ConfigFromEnv() Config {
	c := DefaultConfig()
	c.ZonePageSize = env.Int("MIDFORGE_ZONE_PAGE_SIZE", c.ZonePageSize)
	c.TiedBufferCap = env.Int("MIDFORGE_TIED_BUFFER_CAP", c.TiedBufferCap)
	c.LoopDetection = env.Bool("MIDFORGE_LOOP_DETECTION")
	c.DebugLog = env.Bool("MIDFORGE_DEBUG_LOG")
	return c
}
