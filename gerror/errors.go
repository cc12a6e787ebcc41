// Package gerror defines the typed error taxonomy shared by every package
// in this module: invalid arguments, parse failures, topology violations,
// noding non-convergence, unsupported operations, cancellation, and
// internal assertion failures.
//
// Numerical errors (TopologyError, NonConvergenceError) are recoverable —
// callers are expected to retry against a coarser, fixed PrecisionModel.
// InvalidArgumentError and ParseError are caller errors and should bubble
// up untouched. InternalAssertionError is non-resumable.
package gerror

import "fmt"

// Coordinate is the minimal 2D point carried by error values that need to
// report an offending location. It intentionally does not import geom, so
// that geom (and everything above it) can import gerror without a cycle.
type Coordinate struct {
	X, Y float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g %g)", c.X, c.Y)
}

// InvalidArgumentError reports a caller error: a null geometry where one is
// required, a wrong geometry type, a negative count, or an out-of-range
// ordinate index.
type InvalidArgumentError struct {
	Op      string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Message)
}

// ParseError reports a malformed WKT/WKB/GeoJSON document. Offset is a
// byte or character position into the source text when known, or -1.
type ParseError struct {
	Format  string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s parse error at offset %d: %s", e.Format, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// TopologyError reports that a floating-point result would violate a
// topology invariant (a proper intersection the noder missed, a
// self-touching ring produced by overlay, a non-convergent iteration).
// It always carries the offending coordinate. The recommended recovery
// path is to reduce precision (snap to a fixed grid) and retry.
type TopologyError struct {
	Coordinate Coordinate
	Message    string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology exception at %s: %s", e.Coordinate, e.Message)
}

// NonConvergenceError reports that an IteratedNoder did not reach a stable
// noding within its iteration cap.
type NonConvergenceError struct {
	Iterations int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("noding did not converge after %d iterations", e.Iterations)
}

// UnsupportedOperationError reports an operation attempted on a curved
// geometry variant defined only over linear geometry, or on an index used
// outside its valid phase (e.g. inserting after the first query).
type UnsupportedOperationError struct {
	Op      string
	Message string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: unsupported operation: %s", e.Op, e.Message)
}

// InterruptedError reports that a caller-set cancellation flag (or a
// context.Context) was observed at a checkpoint inside a hot loop.
type InterruptedError struct {
	Op string
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("%s: interrupted", e.Op)
}

// InternalAssertionError reports that an internal invariant was violated.
// It signals a programming error in this module, not a caller error, and
// is never expected to be recovered from.
type InternalAssertionError struct {
	Message string
}

func (e *InternalAssertionError) Error() string {
	return fmt.Sprintf("internal assertion failed: %s", e.Message)
}
