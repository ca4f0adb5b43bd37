// jbridge CLI - manifest checking, trace inspection and a smoke run
// against the simulated runtime
package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/jbridge/bridge"
	"github.com/chazu/jbridge/manifest"
	"github.com/chazu/jbridge/simvm"
	"github.com/chazu/jbridge/trace"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	checkMode := flag.Bool("check", false, "Validate the bridge.toml manifest and exit")
	dumpPath := flag.String("dump", "", "Dump a recorded trace file and exit")
	smokeMode := flag.Bool("smoke", false, "Run a smoke scenario against the simulated runtime")
	manifestDir := flag.String("manifest", ".", "Directory to search for bridge.toml")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jbridge [options]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects and exercises a bridge attachment configuration.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jbridge -check                # Validate ./bridge.toml\n")
		fmt.Fprintf(os.Stderr, "  jbridge -check -manifest cfg  # Validate cfg/bridge.toml\n")
		fmt.Fprintf(os.Stderr, "  jbridge -dump trace.cbor      # Print a recorded trace\n")
		fmt.Fprintf(os.Stderr, "  jbridge -smoke                # Exercise the simulated runtime\n")
	}
	flag.Parse()

	switch {
	case *checkMode:
		if err := runCheck(*manifestDir, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *dumpPath != "":
		if err := runDump(*dumpPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *smokeMode:
		if err := runSmoke(*manifestDir, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// runCheck validates a manifest against the simulated runtime's builtin
// class set.
func runCheck(dir string, verbose bool) error {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no bridge.toml found from %s", dir)
	}
	if verbose {
		fmt.Printf("Manifest: %s\n", m.Dir)
		fmt.Printf("  install-loader: %v\n", m.Runtime.InstallLoader)
		fmt.Printf("  loader-class:   %s\n", m.Runtime.LoaderClass)
		fmt.Printf("  preload:        %d classes\n", len(m.Preload.Classes))
		fmt.Printf("  trace:          enabled=%v output=%s\n", m.Trace.Enabled, m.TraceOutputPath())
	}

	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()
	if err := m.Apply(b); err != nil {
		return err
	}
	fmt.Println("Manifest OK")
	return nil
}

// runDump prints a recorded trace file.
func runDump(path string) error {
	log, err := trace.ReadFile(path)
	if err != nil {
		return err
	}
	for i, ev := range log.Events {
		status := "ok"
		if !ev.OK {
			status = "FAILED"
		}
		fmt.Printf("%4d  %-12s %s.%s%s  %s\n", i, ev.Op, ev.Class, ev.Member, ev.Signature, status)
	}
	fmt.Printf("%d events\n", len(log.Events))
	return nil
}

// runSmoke exercises the full pipeline against the simulated runtime:
// attach, optionally install a class loader, resolve classes and members
// through the caches, convert strings both ways and print the runtime's
// operation counters.
func runSmoke(dir string, verbose bool) error {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	rec := trace.NewRecorder()
	b.SetRecorder(rec)

	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return err
	}
	if m != nil {
		if m.Runtime.InstallLoader {
			loader := b.WrapLocalRef(vm.BootstrapLoader())
			b.SetClassLoader(loader)
			if verbose {
				fmt.Printf("Installed class loader %s\n", m.Runtime.LoaderClass)
			}
		}
		if err := m.Apply(b); err != nil {
			return err
		}
	}

	str := b.NewString("abc")
	defer str.Release()
	fmt.Printf("string:   %q (length %d)\n", str.ToString(), str.CallIntMethod("length", ""))

	parsed := b.CallStaticIntMethod("java.lang.Integer", "parseInt",
		"(Ljava/lang/String;)I", str.Value())
	fmt.Printf("parseInt: %d (expected 0, \"abc\" is not a number)\n", parsed)

	num := b.NewString("42")
	defer num.Release()
	fmt.Printf("parseInt: %d\n", b.CallStaticIntMethod("java.lang.Integer", "parseInt",
		"(Ljava/lang/String;)I", num.Value()))

	fmt.Printf("max:      %d\n", b.CallStaticIntMethod("java.lang.Math", "max",
		"(II)I", bridge.Int(3), bridge.Int(7)))

	if verbose {
		fmt.Printf("\nCounters:\n")
		fmt.Printf("  class lookups (java.lang.String): %d\n", vm.FindClassCount("java.lang.String"))
		fmt.Printf("  method lookups:                   %d\n", vm.MethodLookups())
		fmt.Printf("  reference operations:             %d\n", vm.RefOps())
		fmt.Printf("  live durable references:          %d\n", vm.LiveGlobalRefs())
		fmt.Printf("  recorded events:                  %d\n", rec.Len())
	}

	if m != nil && m.Trace.Enabled {
		out := m.TraceOutputPath()
		if err := rec.WriteFile(out); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", out)
	}
	return nil
}
