package cschema

import (
	"bufio"
	"io"
)

// scanner is the single-byte input stream shared by the JSON parser (json_parse.go)
// and the schema parser (schema_parse.go): read/peek/unget over a byte
// stream, with ASCII-whitespace and "/* ... */" block-comment skipping.
//
// The teacher delegates JSON decoding to a library (goccy/go-json) and never
// hand-rolls a byte lexer; bufio.Reader is the idiomatic stdlib primitive for
// exactly the read/peek/unget shape this spec asks for (ReadByte/UnreadByte
// give a one-byte pushback buffer for free), so no third-party lexer/scanner
// library from the pack is a better fit — see DESIGN.md.
type scanner struct {
	r    *bufio.Reader
	pos  Position
	last Position // position before the most recent readByte, for unget
}

func newScanner(r io.Reader) *scanner {
	return &scanner{
		r:   bufio.NewReader(r),
		pos: Position{Offset: 0, Line: 1, Column: 1},
	}
}

// readByte returns the next byte, or ErrUnexpectedEOF.
func (s *scanner) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, ErrUnexpectedEOF
	}
	s.last = s.pos
	s.pos.Offset++
	if b == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	return b, nil
}

// unreadByte pushes the most recently read byte back onto the stream. It may
// only be called once between reads.
func (s *scanner) unreadByte() {
	_ = s.r.UnreadByte()
	s.pos = s.last
}

// peekByte returns the next byte without consuming it. Returns
// ErrUnexpectedEOF at end of input.
func (s *scanner) peekByte() (byte, error) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, ErrUnexpectedEOF
	}
	return b[0], nil
}

// skipComment consumes a "/* ... */" block comment, given that the opening
// "/*" has already been consumed. Nested comments are not supported; the
// first "*/" ends it.
func (s *scanner) skipComment() error {
	prevStar := false
	for {
		b, err := s.readByte()
		if err != nil {
			return newParseError(s.pos, ErrUnexpectedEOF, "unexpected EOF inside block comment")
		}
		if prevStar && b == '/' {
			return nil
		}
		prevStar = b == '*'
	}
}

// readNonSpace skips ASCII whitespace and, when skipComments is set, any
// interleaved "/* ... */" block comments, then returns the next significant
// byte without consuming it (peek semantics, matching §4.1's read_non_space).
func (s *scanner) readNonSpace(skipComments bool) (byte, error) {
	for {
		b, err := s.peekByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			if _, err := s.readByte(); err != nil {
				return 0, err
			}
			continue
		case '/':
			if !skipComments {
				return b, nil
			}
			if _, err := s.readByte(); err != nil {
				return 0, err
			}
			star, err := s.peekByte()
			if err != nil || star != '*' {
				// Not a block comment: push the '/' back and report it.
				s.unreadByte()
				return b, nil
			}
			if _, err := s.readByte(); err != nil {
				return 0, err
			}
			if err := s.skipComment(); err != nil {
				return 0, err
			}
			continue
		default:
			return b, nil
		}
	}
}

// expect consumes the next byte and fails unless it equals want.
func (s *scanner) expect(want byte) error {
	got, err := s.readByte()
	if err != nil {
		return newParseError(s.pos, ErrUnexpectedEOF, "expected %q, got EOF", want)
	}
	if got != want {
		return newParseError(s.pos, nil, "expected %q, got %q", want, got)
	}
	return nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_'
}
