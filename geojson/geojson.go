// Package geojson marshals and unmarshals geom.Geometry values to and
// from RFC 7946 GeoJSON geometry objects, per SPEC_FULL §6. It reuses
// the teacher's own geojson package's naming (Marshal/Unmarshal, a
// Type-tagged wire struct) but is written against this module's
// geom.Geometry instead of the teacher's s2.Polygon/s2.Polyline: s2's
// shapes are spherical and this engine is planar, so nothing about the
// teacher's geometry representation carries over, only the package's
// external shape.
package geojson

import (
	"encoding/json"

	"github.com/geos-go/geos/gerror"
	"github.com/geos-go/geos/geom"
)

type object struct {
	Type        string            `json:"type"`
	Coordinates json.RawMessage   `json:"coordinates,omitempty"`
	Geometries  []json.RawMessage `json:"geometries,omitempty"`
}

// Marshal encodes g as an RFC 7946 geometry object.
func Marshal(g *geom.Geometry) ([]byte, error) {
	if g == nil {
		return nil, &gerror.InvalidArgumentError{Op: "geojson.Marshal", Message: "geometry must not be nil"}
	}
	if g.Kind().IsCurved() {
		return nil, &gerror.UnsupportedOperationError{Op: "geojson.Marshal", Message: "GeoJSON has no curved geometry types, got " + g.Kind().String()}
	}

	if g.Kind() == geom.KindGeometryCollection {
		members := make([]json.RawMessage, g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			raw, err := Marshal(g.GeometryN(i))
			if err != nil {
				return nil, err
			}
			members[i] = raw
		}
		return json.Marshal(object{Type: "GeometryCollection", Geometries: members})
	}

	coords, err := json.Marshal(coordinatesOf(g))
	if err != nil {
		return nil, err
	}
	return json.Marshal(object{Type: wireType(g), Coordinates: coords})
}

func wireType(g *geom.Geometry) string {
	switch g.Kind() {
	case geom.KindPoint:
		return "Point"
	case geom.KindLineString, geom.KindLinearRing:
		return "LineString"
	case geom.KindPolygon:
		return "Polygon"
	case geom.KindMultiPoint:
		return "MultiPoint"
	case geom.KindMultiLineString:
		return "MultiLineString"
	case geom.KindMultiPolygon:
		return "MultiPolygon"
	default:
		return g.Kind().String()
	}
}

// coordinatesOf builds the nested []float64 slices RFC 7946 §3.1
// describes for every non-collection geometry kind.
func coordinatesOf(g *geom.Geometry) any {
	switch g.Kind() {
	case geom.KindPoint:
		if g.IsEmpty() {
			return []float64{}
		}
		return position(g.Sequence().Get(0))
	case geom.KindLineString, geom.KindLinearRing:
		return positions(g.Sequence())
	case geom.KindPolygon:
		if g.Shell() == nil || g.Shell().IsEmpty() {
			return [][][]float64{}
		}
		rings := [][][]float64{positions(g.Shell().Sequence())}
		for _, h := range g.Holes() {
			rings = append(rings, positions(h.Sequence()))
		}
		return rings
	case geom.KindMultiPoint:
		out := make([][]float64, g.NumGeometries())
		for i := range out {
			out[i] = position(g.GeometryN(i).Sequence().Get(0))
		}
		return out
	case geom.KindMultiLineString:
		out := make([][][]float64, g.NumGeometries())
		for i := range out {
			out[i] = positions(g.GeometryN(i).Sequence())
		}
		return out
	case geom.KindMultiPolygon:
		out := make([][][][]float64, g.NumGeometries())
		for i := range out {
			out[i] = coordinatesOf(g.GeometryN(i)).([][][]float64)
		}
		return out
	default:
		return nil
	}
}

func position(c geom.Coordinate) []float64 {
	if c.HasZ() {
		return []float64{c.X, c.Y, c.Z}
	}
	return []float64{c.X, c.Y}
}

func positions(seq *geom.CoordinateSequence) [][]float64 {
	coords := seq.Coordinates()
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = position(c)
	}
	return out
}

// Unmarshal decodes an RFC 7946 geometry object into a Geometry built
// from f.
func Unmarshal(data []byte, f *geom.Factory) (*geom.Geometry, error) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &gerror.ParseError{Format: "GeoJSON", Offset: -1, Message: err.Error()}
	}
	return buildGeometry(obj, f)
}

func buildGeometry(obj object, f *geom.Factory) (*geom.Geometry, error) {
	switch obj.Type {
	case "GeometryCollection":
		parts := make([]*geom.Geometry, len(obj.Geometries))
		for i, raw := range obj.Geometries {
			g, err := Unmarshal(raw, f)
			if err != nil {
				return nil, err
			}
			parts[i] = g
		}
		return f.CreateGeometryCollection(parts), nil
	case "Point":
		pos, err := decodePosition(obj.Coordinates)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			return f.CreatePoint(nil), nil
		}
		return f.CreatePoint([]geom.Coordinate{*pos}), nil
	case "LineString":
		coords, err := decodePositions(obj.Coordinates)
		if err != nil {
			return nil, err
		}
		return f.CreateLineString(coords)
	case "Polygon":
		rings, err := decodeRings(obj.Coordinates)
		if err != nil {
			return nil, err
		}
		return buildPolygon(f, rings)
	case "MultiPoint":
		coords, err := decodePositions(obj.Coordinates)
		if err != nil {
			return nil, err
		}
		points := make([]*geom.Geometry, len(coords))
		for i, c := range coords {
			points[i] = f.CreatePoint([]geom.Coordinate{c})
		}
		return f.CreateMultiPoint(points)
	case "MultiLineString":
		var raw [][][]float64
		if err := json.Unmarshal(obj.Coordinates, &raw); err != nil {
			return nil, &gerror.ParseError{Format: "GeoJSON", Offset: -1, Message: err.Error()}
		}
		lines := make([]*geom.Geometry, len(raw))
		for i, coords := range raw {
			line, err := f.CreateLineString(toCoordinates(coords))
			if err != nil {
				return nil, err
			}
			lines[i] = line
		}
		return f.CreateMultiLineString(lines)
	case "MultiPolygon":
		var raw [][][][]float64
		if err := json.Unmarshal(obj.Coordinates, &raw); err != nil {
			return nil, &gerror.ParseError{Format: "GeoJSON", Offset: -1, Message: err.Error()}
		}
		polys := make([]*geom.Geometry, len(raw))
		for i, rings := range raw {
			p, err := buildPolygon(f, rings)
			if err != nil {
				return nil, err
			}
			polys[i] = p
		}
		return f.CreateMultiPolygon(polys)
	default:
		return nil, &gerror.UnsupportedOperationError{Op: "geojson.Unmarshal", Message: "unknown GeoJSON type " + obj.Type}
	}
}

func buildPolygon(f *geom.Factory, rings [][][]float64) (*geom.Geometry, error) {
	if len(rings) == 0 {
		return f.CreatePolygon(nil, nil)
	}
	shell, err := f.CreateLinearRing(toCoordinates(rings[0]))
	if err != nil {
		return nil, err
	}
	holes := make([]*geom.Geometry, 0, len(rings)-1)
	for _, r := range rings[1:] {
		h, err := f.CreateLinearRing(toCoordinates(r))
		if err != nil {
			return nil, err
		}
		holes = append(holes, h)
	}
	return f.CreatePolygon(shell, holes)
}

func decodePosition(raw json.RawMessage) (*geom.Coordinate, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var xy []float64
	if err := json.Unmarshal(raw, &xy); err != nil {
		return nil, &gerror.ParseError{Format: "GeoJSON", Offset: -1, Message: err.Error()}
	}
	if len(xy) == 0 {
		return nil, nil
	}
	c := coordinateFrom(xy)
	return &c, nil
}

func decodePositions(raw json.RawMessage) ([]geom.Coordinate, error) {
	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &gerror.ParseError{Format: "GeoJSON", Offset: -1, Message: err.Error()}
	}
	return toCoordinates(rows), nil
}

func decodeRings(raw json.RawMessage) ([][][]float64, error) {
	var rings [][][]float64
	if err := json.Unmarshal(raw, &rings); err != nil {
		return nil, &gerror.ParseError{Format: "GeoJSON", Offset: -1, Message: err.Error()}
	}
	return rings, nil
}

func toCoordinates(rows [][]float64) []geom.Coordinate {
	out := make([]geom.Coordinate, len(rows))
	for i, row := range rows {
		out[i] = coordinateFrom(row)
	}
	return out
}

func coordinateFrom(row []float64) geom.Coordinate {
	if len(row) >= 3 {
		return geom.NewXYZ(row[0], row[1], row[2])
	}
	return geom.NewXY(row[0], row[1])
}
