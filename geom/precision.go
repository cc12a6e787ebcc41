package geom

import "math"

// PrecisionModelType selects the snap-to-grid rule applied by
// (*PrecisionModel).MakePrecise.
type PrecisionModelType int

const (
	// Floating uses full IEEE-754 double precision; MakePrecise is the
	// identity function.
	Floating PrecisionModelType = iota
	// FloatingSingle rounds to single-precision significance while still
	// storing the result in a float64.
	FloatingSingle
	// Fixed snaps onto the lattice {k/Scale : k in Z}^2.
	Fixed
)

// PrecisionModel is the snap-to-grid rule every coordinate that will be
// written to output passes through. Contract:
// MakePrecise(MakePrecise(c)) == MakePrecise(c).
type PrecisionModel struct {
	kind  PrecisionModelType
	scale float64
}

// NewFloatingPrecisionModel returns the default, unrounded model.
func NewFloatingPrecisionModel() *PrecisionModel {
	return &PrecisionModel{kind: Floating}
}

// NewFloatingSinglePrecisionModel returns a model that rounds to
// single-precision significance.
func NewFloatingSinglePrecisionModel() *PrecisionModel {
	return &PrecisionModel{kind: FloatingSingle}
}

// NewFixedPrecisionModel returns a model that snaps coordinates onto the
// grid with spacing 1/scale. scale must be positive.
func NewFixedPrecisionModel(scale float64) *PrecisionModel {
	if scale <= 0 {
		panic("geom: fixed precision model scale must be positive")
	}
	return &PrecisionModel{kind: Fixed, scale: scale}
}

// Type returns which grid rule the model implements.
func (pm *PrecisionModel) Type() PrecisionModelType { return pm.kind }

// Scale returns the fixed-model scale factor, or 0 for non-fixed models.
func (pm *PrecisionModel) Scale() float64 { return pm.scale }

// IsFloating reports whether the model is Floating or FloatingSingle.
func (pm *PrecisionModel) IsFloating() bool { return pm.kind != Fixed }

// MakePrecise returns the canonical representative of v under this model.
func (pm *PrecisionModel) MakePrecise(v float64) float64 {
	switch pm.kind {
	case Fixed:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v
		}
		return math.Round(v*pm.scale) / pm.scale
	case FloatingSingle:
		return float64(float32(v))
	default:
		return v
	}
}

// MakeCoordinatePrecise returns c with X and Y snapped through MakePrecise.
// Z and M, if present, are left untouched: the grid applies to the planar
// position, not to elevation or measure.
func (pm *PrecisionModel) MakeCoordinatePrecise(c Coordinate) Coordinate {
	c.X = pm.MakePrecise(c.X)
	c.Y = pm.MakePrecise(c.Y)
	return c
}

// GridSize returns the spacing of the fixed grid (1/scale), or 0 for
// floating models (which have no grid).
func (pm *PrecisionModel) GridSize() float64 {
	if pm.kind != Fixed {
		return 0
	}
	return 1 / pm.scale
}
