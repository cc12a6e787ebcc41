// Command geosctl is a minimal smoke-test CLI over this module's core:
// it reads two WKT operands and a relation/overlay operator name from
// argv and prints the result, per SPEC_FULL §6's explicit scoping of the
// CLI out of the core engine itself. Grounded in the pack's
// flag-based single-purpose tool shape (e.g. banshee's cmd/tools/*
// commands), trimmed to this package's one job.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/geos-go/geos/gc"
	"github.com/geos-go/geos/overlay"
)

func main() {
	op := flag.String("op", "relate", "operation to run: relate, intersection, union, difference, symdifference")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	h := gc.InitGEOSWithContext(&gc.Context{
		Notice: func(format string, args ...any) { fmt.Fprintf(os.Stderr, "notice: "+format+"\n", args...) },
		Error:  func(format string, args ...any) { fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...) },
	}, nil)
	defer gc.FinishGEOS(h)

	a := h.ReadWKT(flag.Arg(0))
	b := h.ReadWKT(flag.Arg(1))
	if a == nil || b == nil {
		os.Exit(1)
	}

	switch *op {
	case "relate":
		matrix := h.Relate(a, b)
		if matrix == "" {
			os.Exit(1)
		}
		fmt.Println(matrix)
	case "intersection", "union", "difference", "symdifference":
		result := h.Overlay(a, b, overlayOperation(*op))
		if result == nil {
			os.Exit(1)
		}
		fmt.Println(h.WriteWKT(result))
	default:
		fmt.Fprintf(os.Stderr, "unknown operation %q\n", *op)
		usage()
		os.Exit(2)
	}
}

func overlayOperation(op string) overlay.Operation {
	switch op {
	case "intersection":
		return overlay.Intersection
	case "union":
		return overlay.Union
	case "difference":
		return overlay.Difference
	default:
		return overlay.SymDifference
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: geosctl [-op relate|intersection|union|difference|symdifference] <wkt-a> <wkt-b>\n")
	flag.PrintDefaults()
}
