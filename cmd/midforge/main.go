package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/xyproto/midforge/arch/arm64"
	"github.com/xyproto/midforge/arch/x86"
	"github.com/xyproto/midforge/rapass"
)

const versionString = "midforge 0.1.0"

const (
	opcodeMov = uint32(x86.Mov)
	opcodeAdd = uint32(x86.Add)
	opcodeCmp = uint32(x86.Cmp)
	opcodeJmp = uint32(x86.Jmp)
	opcodeJcc = uint32(x86.Jcc)
)

func main() {
	var (
		archFlag    = flag.String("arch", "x86", "target architecture (x86, arm64)")
		debugFlag   = flag.Bool("debug", false, "enable phase-boundary debug logging")
		loopsFlag   = flag.Bool("loops", false, "run loop-header detection")
		versionFlag = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println(versionString)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		printHelp()
		return
	}

	switch args[0] {
	case "help", "-h", "--help":
		printHelp()
	case "run":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "usage: midforge [--arch x86|arm64] [--debug] [--loops] run <program>\navailable programs: %s\n", listDemoPrograms())
			os.Exit(1)
		}
		if err := runDemo(args[1], *archFlag, *debugFlag, *loopsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\nrun 'midforge help' for usage\n", args[0])
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(versionString)
	fmt.Println(`
usage:
  midforge [--arch x86|arm64] [--debug] [--loops] run <program>
  midforge help
  midforge --version

midforge runs the compiler middle-end (CFG construction, dominators,
liveness) over a small built-in demo program and prints a summary of
what the pass computed. There is no front end in this module: the demo
programs build their node list directly via the ir package.`)
}

func runDemo(name, archName string, debug, loops bool) error {
	build, ok := demoPrograms[name]
	if !ok {
		return fmt.Errorf("unknown demo program %q (available: %s)", name, listDemoPrograms())
	}

	var adapter rapass.Adapter
	switch archName {
	case "x86":
		adapter = &x86.Adapter{}
	case "arm64":
		adapter = &arm64.Adapter{}
	default:
		return fmt.Errorf("unknown architecture %q (available: x86, arm64)", archName)
	}

	cfg := rapass.DefaultConfig()
	cfg.LoopDetection = loops
	cfg.DebugLog = debug

	fn := build()
	p := rapass.New(fn, adapter, cfg)
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		p.WithLogger(logger)
	}

	if err := p.Run(); err != nil {
		return err
	}

	printSummary(p)
	return nil
}

func printSummary(p *rapass.Pass) {
	fmt.Printf("blocks: %d\n", len(p.Blocks()))
	fmt.Printf("post-order view: %d reachable\n", len(p.POV()))
	fmt.Printf("entry block: #%d\n", p.EntryBlock().ID())
	for _, b := range p.Blocks() {
		idom := -1
		if b.IDom != nil {
			idom = b.IDom.ID()
		}
		fmt.Printf("  block #%d: idom=#%d calls=%v fixed-regs=%v gen=%d kill=%d\n",
			b.ID(), idom, b.Flags&rapass.BlockHasCalls != 0,
			b.Flags&rapass.BlockHasFixedRegs != 0, b.GEN.Count(), b.KILL.Count())
	}
}
