// Package wkt implements a Well-Known Text reader and writer over
// geom.Geometry. Grounded in the pack's two WKT implementations:
// missinglink-simplefeatures' geom/wkt_parser.go for the tokenizer/
// recursive-descent parser shape ("next*Text" functions named after the
// WKT grammar's own productions), and SAP-go-hdb's driver/spatial wkt.go
// for the writer's buffer-helper shape (writeList/withBrackets).
package wkt

import (
	"strings"

	"github.com/geos-go/geos/gerror"
)

// token kinds: "(" ")" "," or a bare word (keyword or number).
type lexer struct {
	input string
	pos   int
	peeked *string
}

func newLexer(s string) *lexer {
	return &lexer{input: s}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isSpecial(b byte) bool { return b == '(' || b == ')' || b == ',' }

// next consumes and returns the next token, or io.EOF-equivalent via ok=false.
func (l *lexer) next() (string, bool) {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t, true
	}
	l.skipSpace()
	if l.pos >= len(l.input) {
		return "", false
	}
	b := l.input[l.pos]
	if isSpecial(b) {
		l.pos++
		return string(b), true
	}
	start := l.pos
	for l.pos < len(l.input) && !isSpace(l.input[l.pos]) && !isSpecial(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos], true
}

func (l *lexer) peek() (string, bool) {
	if l.peeked == nil {
		t, ok := l.next()
		if !ok {
			return "", false
		}
		l.peeked = &t
	}
	return *l.peeked, true
}

func (l *lexer) atEOF() bool {
	_, ok := l.peek()
	return !ok
}

func upper(s string) string { return strings.ToUpper(s) }

func eofErr(op string) error {
	return &gerror.ParseError{Offset: -1, Message: op + ": unexpected end of input"}
}
