package geom

import "github.com/geos-go/geos/gerror"

// Factory is the source of truth for a family of geometries: it fixes the
// PrecisionModel every constructed geometry snaps through and the default
// CoordinateSequence dimension. This collapses the teacher's
// "factory returned from the geometry factory" indirection into a single
// concrete type, per DESIGN NOTES §9.
type Factory struct {
	pm  *PrecisionModel
	dim SequenceDimension
}

// NewFactory returns a Factory using pm for MakePrecise and dim as the
// default sequence dimension for constructors that accept raw coordinates.
func NewFactory(pm *PrecisionModel, dim SequenceDimension) *Factory {
	if pm == nil {
		pm = NewFloatingPrecisionModel()
	}
	if dim == 0 {
		dim = DimXY
	}
	return &Factory{pm: pm, dim: dim}
}

// PrecisionModel returns the factory's precision model.
func (f *Factory) PrecisionModel() *PrecisionModel { return f.pm }

// SequenceDimension returns the factory's default sequence dimension.
func (f *Factory) SequenceDimension() SequenceDimension { return f.dim }

// CreatePoint builds a Point geometry. An empty coords slice yields the
// empty point.
func (f *Factory) CreatePoint(coords []Coordinate) *Geometry {
	return &Geometry{kind: KindPoint, factory: f, seq: NewSequence(f.dim, coords)}
}

// CreateLineString builds a LineString. Per spec.md §3 it must have zero
// or at least two coordinates; 1 is invalid.
func (f *Factory) CreateLineString(coords []Coordinate) (*Geometry, error) {
	if len(coords) == 1 {
		return nil, &gerror.InvalidArgumentError{Op: "CreateLineString", Message: "a non-empty LineString needs at least 2 coordinates"}
	}
	return &Geometry{kind: KindLineString, factory: f, seq: NewSequence(f.dim, coords)}, nil
}

// CreateLinearRing builds a closed LineString: empty, or at least 4
// coordinates with the first equal to the last.
func (f *Factory) CreateLinearRing(coords []Coordinate) (*Geometry, error) {
	if len(coords) == 0 {
		return &Geometry{kind: KindLinearRing, factory: f, seq: EmptySequence(f.dim)}, nil
	}
	if len(coords) < 4 {
		return nil, &gerror.InvalidArgumentError{Op: "CreateLinearRing", Message: "a non-empty LinearRing needs at least 4 coordinates"}
	}
	if !coords[0].Equals2D(coords[len(coords)-1]) {
		return nil, &gerror.InvalidArgumentError{Op: "CreateLinearRing", Message: "ring is not closed: first coordinate != last coordinate"}
	}
	return &Geometry{kind: KindLinearRing, factory: f, seq: NewSequence(f.dim, coords)}, nil
}

// CreatePolygon builds a Polygon from a shell ring and zero or more hole
// rings. shell may be nil for the empty polygon.
func (f *Factory) CreatePolygon(shell *Geometry, holes []*Geometry) (*Geometry, error) {
	if shell != nil && shell.kind != KindLinearRing {
		return nil, &gerror.InvalidArgumentError{Op: "CreatePolygon", Message: "shell must be a LinearRing"}
	}
	for _, h := range holes {
		if h.kind != KindLinearRing {
			return nil, &gerror.InvalidArgumentError{Op: "CreatePolygon", Message: "hole must be a LinearRing"}
		}
	}
	return &Geometry{kind: KindPolygon, factory: f, shell: shell, holes: holes}, nil
}

// CreateMultiPoint builds a MultiPoint from Point parts.
func (f *Factory) CreateMultiPoint(points []*Geometry) (*Geometry, error) {
	if err := f.checkKind(points, KindPoint, "CreateMultiPoint"); err != nil {
		return nil, err
	}
	return &Geometry{kind: KindMultiPoint, factory: f, parts: points}, nil
}

// CreateMultiLineString builds a MultiLineString from LineString parts.
func (f *Factory) CreateMultiLineString(lines []*Geometry) (*Geometry, error) {
	if err := f.checkKind(lines, KindLineString, "CreateMultiLineString"); err != nil {
		return nil, err
	}
	return &Geometry{kind: KindMultiLineString, factory: f, parts: lines}, nil
}

// CreateMultiPolygon builds a MultiPolygon from Polygon parts.
func (f *Factory) CreateMultiPolygon(polys []*Geometry) (*Geometry, error) {
	if err := f.checkKind(polys, KindPolygon, "CreateMultiPolygon"); err != nil {
		return nil, err
	}
	return &Geometry{kind: KindMultiPolygon, factory: f, parts: polys}, nil
}

// CreateGeometryCollection builds a heterogeneous collection.
func (f *Factory) CreateGeometryCollection(parts []*Geometry) *Geometry {
	return &Geometry{kind: KindGeometryCollection, factory: f, parts: parts}
}

func (f *Factory) checkKind(parts []*Geometry, want Kind, op string) error {
	for _, p := range parts {
		if p.kind != want {
			return &gerror.InvalidArgumentError{Op: op, Message: "all parts must be " + want.String()}
		}
	}
	return nil
}
