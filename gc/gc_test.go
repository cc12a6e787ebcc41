package gc

import (
	"testing"

	"github.com/geos-go/geos/overlay"
)

func TestReadWriteRoundTrip(t *testing.T) {
	h := InitGEOS()
	defer FinishGEOS(h)

	g := h.ReadWKT("POLYGON((0 0,1 0,1 1,0 1,0 0))")
	if g == nil {
		t.Fatalf("expected ReadWKT to succeed")
	}
	out := h.WriteWKT(g)
	if out == "" {
		t.Fatalf("expected WriteWKT to produce output")
	}
}

func TestReadWTKReportsErrorViaCallback(t *testing.T) {
	var messages []string
	h := InitGEOSWithContext(&Context{
		Error: func(format string, args ...any) { messages = append(messages, format) },
	}, nil)
	defer FinishGEOS(h)

	g := h.ReadWKT("NOT WKT AT ALL")
	if g != nil {
		t.Fatalf("expected a nil sentinel result for invalid WKT")
	}
	if len(messages) == 0 {
		t.Fatalf("expected the error callback to fire")
	}
}

func TestRelateAndOverlay(t *testing.T) {
	h := InitGEOS()
	defer FinishGEOS(h)

	a := h.ReadWKT("POLYGON((0 0,2 0,2 2,0 2,0 0))")
	b := h.ReadWKT("POLYGON((1 1,3 1,3 3,1 3,1 1))")

	matrix := h.Relate(a, b)
	if matrix == "" {
		t.Fatalf("expected a non-empty DE-9IM matrix string")
	}

	result := h.Overlay(a, b, overlay.Intersection)
	if result == nil || result.IsEmpty() {
		t.Fatalf("expected a non-empty intersection result")
	}
}

func TestRelateNilOperandReportsError(t *testing.T) {
	var messages []string
	h := InitGEOSWithContext(&Context{
		Error: func(format string, args ...any) { messages = append(messages, format) },
	}, nil)
	defer FinishGEOS(h)

	if got := h.Relate(nil, nil); got != "" {
		t.Fatalf("expected empty sentinel for nil operands, got %q", got)
	}
	if len(messages) == 0 {
		t.Fatalf("expected the error callback to fire for nil operands")
	}
}
