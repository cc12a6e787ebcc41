// Package gc sketches the handle + context + sentinel-return convention
// GEOS's C ABI uses (GEOS_init_r / GEOSContext_setErrorMessageHandler_r /
// GEOS_finish_r and friends), per SPEC_FULL §6. It is not a cgo-exported
// surface -- there is no cgo in this module -- but a small set of
// Go functions shaped the way that convention requires: an opaque
// per-caller Handle carrying a notice/error callback pair, sentinel
// (nil) returns on failure instead of a second error value, and an
// explicit Init/Finish pairing instead of a constructor/destructor.
// Consumed only by the cmd/geosctl smoke CLI.
package gc

import (
	"context"

	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/overlay"
	"github.com/geos-go/geos/relate"
	"github.com/geos-go/geos/wkt"
)

// NoticeFunc matches the teacher's plain-callback style for diagnostics
// (spec.md §6): no logging framework, just a format string and args,
// exactly as GEOS's GEOSMessageHandler_r does.
type NoticeFunc func(format string, args ...any)

// Context carries the two callbacks a GEOS C-ABI handle configures: one
// for informational notices, one for errors. A nil func is a silent
// no-op, matching the C API's "NULL handler disables callback" behavior.
type Context struct {
	Notice NoticeFunc
	Error  NoticeFunc
}

func (c *Context) notice(format string, args ...any) {
	if c != nil && c.Notice != nil {
		c.Notice(format, args...)
	}
}

func (c *Context) errorf(format string, args ...any) {
	if c != nil && c.Error != nil {
		c.Error(format, args...)
	}
}

// Handle is the opaque per-caller engine handle GEOS_init_r returns.
// Every operation on a Handle is single-threaded, matching the
// teacher's and the C ABI's "one handle per thread" contract.
type Handle struct {
	ctx *Context
	pm  *geom.PrecisionModel
}

// InitGEOS returns a Handle with default (silent) notice/error callbacks
// and a floating precision model, mirroring the zero-argument GEOS_init()
// entry point.
func InitGEOS() *Handle {
	return &Handle{ctx: &Context{}, pm: geom.NewFloatingPrecisionModel()}
}

// InitGEOSWithContext returns a Handle using the given callbacks, the
// handle-returning analogue of GEOS_init_r plus
// GEOSContext_setNoticeMessageHandler_r / setErrorMessageHandler_r rolled
// into one call.
func InitGEOSWithContext(ctx *Context, pm *geom.PrecisionModel) *Handle {
	if ctx == nil {
		ctx = &Context{}
	}
	if pm == nil {
		pm = geom.NewFloatingPrecisionModel()
	}
	return &Handle{ctx: ctx, pm: pm}
}

// FinishGEOS releases h. There is no real resource to free -- this
// module allocates nothing a GC can't already reclaim -- but the call is
// kept to preserve the Init/Finish pairing callers of the C ABI expect.
func FinishGEOS(h *Handle) {
	if h != nil {
		h.ctx = nil
	}
}

// ReadWKT parses s using h's precision model. On a parse failure it
// reports through h's error callback and returns nil, the sentinel-return
// convention GEOSWKTReader_read_r uses in place of a second error value.
func (h *Handle) ReadWKT(s string) *geom.Geometry {
	g, err := wkt.Read(h.pm, s)
	if err != nil {
		h.ctx.errorf("ReadWKT: %v", err)
		return nil
	}
	return g
}

// WriteWKT renders g, reporting through h's notice callback (not error --
// a nil or malformed g is a caller bug worth a notice, not a hard
// failure) and returning "" if g is nil.
func (h *Handle) WriteWKT(g *geom.Geometry) string {
	if g == nil {
		h.ctx.notice("WriteWKT: nil geometry")
		return ""
	}
	return wkt.Write(g, wkt.WriteOptions{})
}

// Relate returns the DE-9IM matrix string for a and b (GEOSRelate_r's
// sentinel-return shape: "" on failure, reported via the error callback).
func (h *Handle) Relate(a, b *geom.Geometry) string {
	if a == nil || b == nil {
		h.ctx.errorf("Relate: nil operand")
		return ""
	}
	return relate.Compute(a, b).String()
}

// Overlay runs op between a and b (GEOSIntersection_r / GEOSUnion_r /
// GEOSDifference_r / GEOSSymDifference_r collapsed into one entry point),
// returning nil and reporting through the error callback on failure.
func (h *Handle) Overlay(a, b *geom.Geometry, op overlay.Operation) *geom.Geometry {
	// The C API has no cancellation concept, so this package's wrappers
	// don't expose context.Context to their callers either.
	result, err := (overlay.OverlayOp{}).Compute(context.Background(), a, b, op)
	if err != nil {
		h.ctx.errorf("Overlay %s: %v", op, err)
		return nil
	}
	return result
}
