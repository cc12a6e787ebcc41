package wkt

import (
	"math"
	"strconv"

	"github.com/geos-go/geos/geom"
	"github.com/geos-go/geos/gerror"
)

// Read parses s as Well-Known Text and returns the geometry it denotes,
// built through a Factory using pm and a sequence dimension inferred from
// the parsed coordinates (SPEC_FULL §6). The grammar and the
// recursive-descent shape (one function per tagged-text production)
// follow missinglink-simplefeatures' geom/wkt_parser.go.
func Read(pm *geom.PrecisionModel, s string) (*geom.Geometry, error) {
	l := newLexer(s)
	g, err := readGeometryTaggedText(l)
	if err != nil {
		return nil, err
	}
	if !l.atEOF() {
		tok, _ := l.next()
		return nil, &gerror.ParseError{Format: "WKT", Offset: -1, Message: "unexpected trailing input near " + strconv.Quote(tok)}
	}
	f := geom.NewFactory(pm, inferDim(g))
	return build(f, g)
}

// inferDim scans every coordinate reachable from g and picks the widest
// sequence dimension they need, since the Z/M/ZM tag suffix is optional
// and some WKT producers omit it while still emitting 3D coordinates.
func inferDim(g *geomLit) geom.SequenceDimension {
	hasZ, hasM := false, false
	var walk func(*geomLit)
	walk = func(n *geomLit) {
		for _, c := range n.seq {
			hasZ = hasZ || c.HasZ()
			hasM = hasM || c.HasM()
		}
		if n.shell != nil {
			walk(n.shell)
		}
		for _, h := range n.holes {
			walk(h)
		}
		for _, p := range n.parts {
			walk(p)
		}
	}
	walk(g)
	switch {
	case hasZ && hasM:
		return geom.DimXYZM
	case hasZ:
		return geom.DimXYZ
	case hasM:
		return geom.DimXYM
	default:
		return geom.DimXY
	}
}

// geomLit is an intermediate parse tree: a tagged geometry literal before
// it is handed to a Factory, so the parser stays independent of the
// target Factory's precision model.
type geomLit struct {
	kind  geom.Kind
	empty bool
	seq   []geom.Coordinate
	shell *geomLit
	holes []*geomLit
	parts []*geomLit
}

func readGeometryTaggedText(l *lexer) (*geomLit, error) {
	tok, ok := l.next()
	if !ok {
		return nil, eofErr("WKT")
	}
	tag := upper(tok)
	switch tag {
	case "POINT":
		return readPointText(l)
	case "LINESTRING":
		return readLineStringText(l)
	case "POLYGON":
		return readPolygonText(l)
	case "MULTIPOINT":
		return readMultiPointText(l)
	case "MULTILINESTRING":
		return readMultiLineStringText(l)
	case "MULTIPOLYGON":
		return readMultiPolygonText(l)
	case "GEOMETRYCOLLECTION":
		return readGeometryCollectionText(l)
	default:
		return nil, &gerror.ParseError{Format: "WKT", Offset: -1, Message: "unknown geometry tag " + strconv.Quote(tok)}
	}
}

// skipDimTag consumes an optional Z/M/ZM dimensionality tag between a
// geometry keyword and its coordinate text ("POINT Z (1 2 3)"). The
// sequence dimension itself is inferred from the parsed coordinates
// (inferDim), since WKT producers don't always bother with this tag.
func skipDimTag(l *lexer) {
	tok, ok := l.peek()
	if !ok {
		return
	}
	switch upper(tok) {
	case "Z", "M", "ZM":
		l.next()
	}
}

func readPointText(l *lexer) (*geomLit, error) {
	skipDimTag(l)
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindPoint, empty: true}, nil
	}
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	c, err := readCoordinate(l)
	if err != nil {
		return nil, err
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindPoint, seq: []geom.Coordinate{c}}, nil
}

func readLineStringText(l *lexer) (*geomLit, error) {
	skipDimTag(l)
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindLineString, empty: true}, nil
	}
	coords, err := readCoordinateList(l)
	if err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindLineString, seq: coords}, nil
}

func readLinearRingText(l *lexer) (*geomLit, error) {
	coords, err := readCoordinateList(l)
	if err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindLinearRing, seq: coords}, nil
}

func readPolygonText(l *lexer) (*geomLit, error) {
	skipDimTag(l)
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindPolygon, empty: true}, nil
	}
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	shell, err := readLinearRingText(l)
	if err != nil {
		return nil, err
	}
	var holes []*geomLit
	for {
		tok, ok := l.peek()
		if !ok || tok != "," {
			break
		}
		l.next()
		hole, err := readLinearRingText(l)
		if err != nil {
			return nil, err
		}
		holes = append(holes, hole)
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindPolygon, shell: shell, holes: holes}, nil
}

func readMultiPointText(l *lexer) (*geomLit, error) {
	skipDimTag(l)
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindMultiPoint, empty: true}, nil
	}
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	var parts []*geomLit
	for {
		p, err := readMultiPointMember(l)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
		tok, ok := l.peek()
		if !ok || tok != "," {
			break
		}
		l.next()
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindMultiPoint, parts: parts}, nil
}

// readMultiPointMember accepts both "(1 2)" and the bare "1 2" forms real
// WKT producers disagree on.
func readMultiPointMember(l *lexer) (*geomLit, error) {
	tok, ok := l.peek()
	if !ok {
		return nil, eofErr("MULTIPOINT")
	}
	if tok == "(" {
		l.next()
		c, err := readCoordinate(l)
		if err != nil {
			return nil, err
		}
		if err := expect(l, ")"); err != nil {
			return nil, err
		}
		return &geomLit{kind: geom.KindPoint, seq: []geom.Coordinate{c}}, nil
	}
	c, err := readCoordinate(l)
	if err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindPoint, seq: []geom.Coordinate{c}}, nil
}

func readMultiLineStringText(l *lexer) (*geomLit, error) {
	skipDimTag(l)
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindMultiLineString, empty: true}, nil
	}
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	var parts []*geomLit
	for {
		ls, err := readLineStringText(l)
		if err != nil {
			return nil, err
		}
		parts = append(parts, ls)
		tok, ok := l.peek()
		if !ok || tok != "," {
			break
		}
		l.next()
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindMultiLineString, parts: parts}, nil
}

func readMultiPolygonText(l *lexer) (*geomLit, error) {
	skipDimTag(l)
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindMultiPolygon, empty: true}, nil
	}
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	var parts []*geomLit
	for {
		p, err := readPolygonText(l)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
		tok, ok := l.peek()
		if !ok || tok != "," {
			break
		}
		l.next()
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindMultiPolygon, parts: parts}, nil
}

func readGeometryCollectionText(l *lexer) (*geomLit, error) {
	if isEmptyToken(l) {
		return &geomLit{kind: geom.KindGeometryCollection, empty: true}, nil
	}
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	var parts []*geomLit
	for {
		p, err := readGeometryTaggedText(l)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
		tok, ok := l.peek()
		if !ok || tok != "," {
			break
		}
		l.next()
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return &geomLit{kind: geom.KindGeometryCollection, parts: parts}, nil
}

func readCoordinateList(l *lexer) ([]geom.Coordinate, error) {
	if err := expect(l, "("); err != nil {
		return nil, err
	}
	var out []geom.Coordinate
	for {
		c, err := readCoordinate(l)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		tok, ok := l.peek()
		if !ok || tok != "," {
			break
		}
		l.next()
	}
	if err := expect(l, ")"); err != nil {
		return nil, err
	}
	return out, nil
}

func readCoordinate(l *lexer) (geom.Coordinate, error) {
	x, err := readSignedNumber(l)
	if err != nil {
		return geom.Coordinate{}, err
	}
	y, err := readSignedNumber(l)
	if err != nil {
		return geom.Coordinate{}, err
	}
	c := geom.NewXY(x, y)
	if tok, ok := l.peek(); ok && looksNumeric(tok) {
		z, err := readSignedNumber(l)
		if err != nil {
			return geom.Coordinate{}, err
		}
		c.Z = z
		if tok, ok := l.peek(); ok && looksNumeric(tok) {
			m, err := readSignedNumber(l)
			if err != nil {
				return geom.Coordinate{}, err
			}
			c.M = m
		}
	}
	return c, nil
}

func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// readSignedNumber parses a WKT numeric literal, rejecting NaN/Inf
// spellings the way missinglink-simplefeatures' nextSignedNumericLiteral
// does: WKT has no token for either.
func readSignedNumber(l *lexer) (float64, error) {
	tok, ok := l.next()
	if !ok {
		return 0, eofErr("WKT number")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &gerror.ParseError{Format: "WKT", Offset: -1, Message: "expected a number, got " + strconv.Quote(tok)}
	}
	return v, nil
}

func isEmptyToken(l *lexer) bool {
	tok, ok := l.peek()
	if !ok {
		return false
	}
	if upper(tok) == "EMPTY" {
		l.next()
		return true
	}
	return false
}

func expect(l *lexer, want string) error {
	tok, ok := l.next()
	if !ok {
		return eofErr("WKT")
	}
	if tok != want {
		return &gerror.ParseError{Format: "WKT", Offset: -1, Message: "expected " + strconv.Quote(want) + ", got " + strconv.Quote(tok)}
	}
	return nil
}

// build turns a parsed geomLit tree into real Factory-backed geometries.
func build(f *geom.Factory, g *geomLit) (*geom.Geometry, error) {
	switch g.kind {
	case geom.KindPoint:
		if g.empty {
			return f.CreatePoint(nil), nil
		}
		return f.CreatePoint(g.seq), nil
	case geom.KindLineString:
		if g.empty {
			return f.CreateLineString(nil)
		}
		return f.CreateLineString(g.seq)
	case geom.KindPolygon:
		if g.empty {
			return f.CreatePolygon(nil, nil)
		}
		shell, err := f.CreateLinearRing(g.shell.seq)
		if err != nil {
			return nil, err
		}
		holes := make([]*geom.Geometry, len(g.holes))
		for i, h := range g.holes {
			hr, err := f.CreateLinearRing(h.seq)
			if err != nil {
				return nil, err
			}
			holes[i] = hr
		}
		return f.CreatePolygon(shell, holes)
	case geom.KindMultiPoint:
		if g.empty {
			return f.CreateMultiPoint(nil)
		}
		pts := make([]*geom.Geometry, len(g.parts))
		for i, p := range g.parts {
			b, err := build(f, p)
			if err != nil {
				return nil, err
			}
			pts[i] = b
		}
		return f.CreateMultiPoint(pts)
	case geom.KindMultiLineString:
		if g.empty {
			return f.CreateMultiLineString(nil)
		}
		lines := make([]*geom.Geometry, len(g.parts))
		for i, p := range g.parts {
			b, err := build(f, p)
			if err != nil {
				return nil, err
			}
			lines[i] = b
		}
		return f.CreateMultiLineString(lines)
	case geom.KindMultiPolygon:
		if g.empty {
			return f.CreateMultiPolygon(nil)
		}
		polys := make([]*geom.Geometry, len(g.parts))
		for i, p := range g.parts {
			b, err := build(f, p)
			if err != nil {
				return nil, err
			}
			polys[i] = b
		}
		return f.CreateMultiPolygon(polys)
	case geom.KindGeometryCollection:
		parts := make([]*geom.Geometry, len(g.parts))
		for i, p := range g.parts {
			b, err := build(f, p)
			if err != nil {
				return nil, err
			}
			parts[i] = b
		}
		return f.CreateGeometryCollection(parts), nil
	default:
		return nil, &gerror.ParseError{Format: "WKT", Offset: -1, Message: "unsupported geometry kind in WKT: " + g.kind.String()}
	}
}
