package wkt

import (
	"math"
	"strconv"
	"strings"

	"github.com/geos-go/geos/geom"
)

// WriteOptions controls WKT output formatting (SPEC_FULL §6).
type WriteOptions struct {
	// TrimTrailingZeros strips a redundant ".0" from integral ordinates
	// ("1" instead of "1.0"). Off by default, matching strconv's own
	// 'f'/-1 formatting, which already omits trailing zeros past the
	// decimal point but keeps none before it.
	TrimTrailingZeros bool

	// RoundingPrecision is the number of decimal digits to round each
	// ordinate to before formatting. Zero means full precision.
	RoundingPrecision int

	// OutputDimension caps how many ordinates are written per coordinate:
	// 2 for XY, 3 for XYZ, 4 for XYZM. Zero means "use the geometry's own
	// dimension".
	OutputDimension int

	// OldStyle3D omits the "Z" dimensionality tag on 3D geometries,
	// matching pre-ISO WKT writers that relied on coordinate arity alone.
	OldStyle3D bool
}

// Write renders g as Well-Known Text per opts. Grounded in SAP-go-hdb's
// driver/spatial wkt.go: a small buffer wrapper (wktBuffer here) with
// writeList emitting "EMPTY" for a zero-length list and a
// comma-separated parenthesized body otherwise.
func Write(g *geom.Geometry, opts WriteOptions) string {
	b := &wktBuffer{opts: opts}
	b.writeGeometryTaggedText(g)
	return b.String()
}

type wktBuffer struct {
	strings.Builder
	opts WriteOptions
}

func (b *wktBuffer) writeGeometryTaggedText(g *geom.Geometry) {
	b.WriteString(wktTag(g))
	if dimSuffix := b.dimSuffix(g); dimSuffix != "" {
		b.WriteString(dimSuffix)
	}
	if g.IsEmpty() {
		b.WriteString(" EMPTY")
		return
	}
	switch g.Kind() {
	case geom.KindPoint, geom.KindLineString, geom.KindLinearRing:
		b.withBrackets(func() { b.writeCoordinateList(g.Sequence()) })
	case geom.KindPolygon:
		b.writePolygonText(g)
	case geom.KindMultiPoint:
		b.writeList(g.NumGeometries(), func(i int) {
			b.withBrackets(func() { b.writeCoordinateList(g.GeometryN(i).Sequence()) })
		})
	case geom.KindMultiLineString:
		b.writeList(g.NumGeometries(), func(i int) {
			b.withBrackets(func() { b.writeCoordinateList(g.GeometryN(i).Sequence()) })
		})
	case geom.KindMultiPolygon:
		b.writeList(g.NumGeometries(), func(i int) {
			b.writePolygonText(g.GeometryN(i))
		})
	case geom.KindGeometryCollection:
		b.writeList(g.NumGeometries(), func(i int) {
			b.writeGeometryTaggedText(g.GeometryN(i))
		})
	}
}

func (b *wktBuffer) writeRingText(ring *geom.Geometry) {
	b.withBrackets(func() { b.writeCoordinateList(ring.Sequence()) })
}

func (b *wktBuffer) writePolygonText(poly *geom.Geometry) {
	if poly.IsEmpty() {
		b.WriteString("EMPTY")
		return
	}
	b.writeList(1+len(poly.Holes()), func(i int) {
		if i == 0 {
			b.writeRingText(poly.Shell())
			return
		}
		b.writeRingText(poly.Holes()[i-1])
	})
}

// writeList writes n comma-separated items produced by fn, wrapped in
// parentheses, or "EMPTY" when n == 0. This mirrors SAP-go-hdb's
// wktBuffer.writeList(size int, write func(i int)).
func (b *wktBuffer) writeList(n int, fn func(i int)) {
	if n == 0 {
		b.WriteString("EMPTY")
		return
	}
	b.withBrackets(func() {
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			fn(i)
		}
	})
}

func (b *wktBuffer) withBrackets(fn func()) {
	b.WriteByte('(')
	fn()
	b.WriteByte(')')
}

func (b *wktBuffer) writeCoordinateList(seq *geom.CoordinateSequence) {
	coords := seq.Coordinates()
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		b.writeCoordinate(c, seq.Dimension())
	}
}

func (b *wktBuffer) writeCoordinate(c geom.Coordinate, dim geom.SequenceDimension) {
	n := b.ordinateCount(dim)
	b.writeOrdinate(c.X)
	b.WriteByte(' ')
	b.writeOrdinate(c.Y)
	if n >= 3 {
		b.WriteByte(' ')
		if c.HasZ() {
			b.writeOrdinate(c.Z)
		} else {
			b.writeOrdinate(0)
		}
	}
	if n >= 4 {
		b.WriteByte(' ')
		if c.HasM() {
			b.writeOrdinate(c.M)
		} else {
			b.writeOrdinate(0)
		}
	}
}

func (b *wktBuffer) ordinateCount(dim geom.SequenceDimension) int {
	if b.opts.OutputDimension > 0 {
		return b.opts.OutputDimension
	}
	switch dim {
	case geom.DimXYZ, geom.DimXYM:
		return 3
	case geom.DimXYZM:
		return 4
	default:
		return 2
	}
}

func (b *wktBuffer) writeOrdinate(v float64) {
	if math.IsNaN(v) {
		b.WriteString("NULL")
		return
	}
	if b.opts.RoundingPrecision > 0 {
		scale := math.Pow(10, float64(b.opts.RoundingPrecision))
		v = math.Round(v*scale) / scale
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if b.opts.TrimTrailingZeros {
		s = trimTrailingZeros(s)
	}
	b.WriteString(s)
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// dimSuffix returns " Z", " M", " ZM" or "" for g's sequence dimension,
// honoring OldStyle3D (pre-ISO writers infer dimensionality from
// coordinate arity alone and never emit this tag).
func (b *wktBuffer) dimSuffix(g *geom.Geometry) string {
	if b.opts.OldStyle3D {
		return ""
	}
	dim := sequenceDimensionOf(g)
	switch dim {
	case geom.DimXYZ:
		return " Z"
	case geom.DimXYM:
		return " M"
	case geom.DimXYZM:
		return " ZM"
	default:
		return ""
	}
}

// sequenceDimensionOf finds the dimension of the first non-empty
// coordinate sequence reachable from g, for collections whose own Kind
// carries no sequence.
func sequenceDimensionOf(g *geom.Geometry) geom.SequenceDimension {
	switch g.Kind() {
	case geom.KindPoint, geom.KindLineString, geom.KindLinearRing:
		if g.Sequence() == nil {
			return geom.DimXY
		}
		return g.Sequence().Dimension()
	case geom.KindPolygon:
		if g.Shell() == nil {
			return geom.DimXY
		}
		return sequenceDimensionOf(g.Shell())
	default:
		for i := 0; i < g.NumGeometries(); i++ {
			if d := sequenceDimensionOf(g.GeometryN(i)); d != geom.DimXY {
				return d
			}
		}
		return geom.DimXY
	}
}

// wktTag returns the WKT keyword for g's Kind, reflecting the reflect-
// based wktTypeName derivation in SAP-go-hdb's writer as a plain switch,
// since this module's Kind is already a closed enum rather than a set of
// Go struct types to reflect over.
func wktTag(g *geom.Geometry) string {
	switch g.Kind() {
	case geom.KindPoint:
		return "POINT"
	case geom.KindLineString, geom.KindLinearRing:
		return "LINESTRING"
	case geom.KindPolygon:
		return "POLYGON"
	case geom.KindMultiPoint:
		return "MULTIPOINT"
	case geom.KindMultiLineString:
		return "MULTILINESTRING"
	case geom.KindMultiPolygon:
		return "MULTIPOLYGON"
	case geom.KindGeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return g.Kind().String()
	}
}
