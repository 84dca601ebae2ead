package cschema

import (
	"strconv"
	"strings"
)

// ParseJSON parses one JSON value from text, tolerating interleaved
// "/* ... */" block comments (spec.md §4.2, §6). Grounded in the dispatch
// table of §4.2; the teacher has no hand-rolled equivalent (it delegates to
// goccy/go-json), so this file is new, following the teacher's per-concern
// file layout and error style (errors.go's wrapped-sentinel pattern).
func ParseJSON(text string) (J, error) {
	s := newScanner(strings.NewReader(text))
	v, err := parseJSONValue(s)
	if err != nil {
		return Null, err
	}
	return v, nil
}

func parseJSONValue(s *scanner) (J, error) {
	b, err := s.readNonSpace(true)
	if err != nil {
		return Null, err
	}
	switch {
	case b == '[':
		return parseJSONArray(s)
	case b == '{':
		return parseJSONObject(s)
	case b == '"':
		return parseJSONString(s)
	case b == 't':
		return parseJSONLiteral(s, "true", NewBool(true))
	case b == 'f':
		return parseJSONLiteral(s, "false", NewBool(false))
	case b == 'n':
		return parseJSONLiteral(s, "null", Null)
	case isDigit(b) || b == '-' || b == '.':
		return parseJSONNumber(s)
	default:
		return Null, newParseError(s.pos, nil, "unexpected character %q", b)
	}
}

func parseJSONArray(s *scanner) (J, error) {
	if err := s.expect('['); err != nil {
		return Null, err
	}
	var elems []J
	b, err := s.readNonSpace(true)
	if err != nil {
		return Null, err
	}
	if b == ']' {
		_, _ = s.readByte()
		return NewArray(elems...), nil
	}
	for {
		v, err := parseJSONValue(s)
		if err != nil {
			return Null, err
		}
		elems = append(elems, v)
		b, err := s.readNonSpace(true)
		if err != nil {
			return Null, err
		}
		if b == ',' {
			_, _ = s.readByte()
			continue
		}
		if b == ']' {
			_, _ = s.readByte()
			return NewArray(elems...), nil
		}
		return Null, newParseError(s.pos, nil, "expected ',' or ']', got %q", b)
	}
}

func parseJSONObject(s *scanner) (J, error) {
	if err := s.expect('{'); err != nil {
		return Null, err
	}
	var members []Member
	b, err := s.readNonSpace(true)
	if err != nil {
		return Null, err
	}
	if b == '}' {
		_, _ = s.readByte()
		return NewObject(members...), nil
	}
	for {
		kb, err := s.readNonSpace(true)
		if err != nil {
			return Null, err
		}
		if kb != '"' {
			return Null, newParseError(s.pos, nil, "expected object key string, got %q", kb)
		}
		keyVal, err := parseJSONString(s)
		if err != nil {
			return Null, err
		}
		key, _ := keyVal.AsString()

		cb, err := s.readNonSpace(true)
		if err != nil {
			return Null, err
		}
		if cb != ':' {
			return Null, newParseError(s.pos, nil, "expected ':' after object key, got %q", cb)
		}
		_, _ = s.readByte()

		val, err := parseJSONValue(s)
		if err != nil {
			return Null, err
		}
		members = append(members, Member{Key: key, Value: val})

		b, err := s.readNonSpace(true)
		if err != nil {
			return Null, err
		}
		if b == ',' {
			_, _ = s.readByte()
			continue
		}
		if b == '}' {
			_, _ = s.readByte()
			return NewObject(members...), nil
		}
		return Null, newParseError(s.pos, nil, "expected ',' or '}', got %q", b)
	}
}

// parseJSONString parses a quoted string starting at the opening quote.
// Per spec.md §4.2 and §9: a backslash preserves the following byte
// verbatim — there is no escape decoding, deliberately. A backslash never
// terminates the string, even when the byte it preserves is itself '"'.
func parseJSONString(s *scanner) (J, error) {
	if err := s.expect('"'); err != nil {
		return Null, err
	}
	var buf []byte
	for {
		b, err := s.readByte()
		if err != nil {
			return Null, newParseError(s.pos, ErrUnexpectedEOF, "unexpected EOF inside string")
		}
		switch b {
		case '"':
			return NewString(string(buf)), nil
		case '\\':
			buf = append(buf, b)
			next, err := s.readByte()
			if err != nil {
				return Null, newParseError(s.pos, ErrUnexpectedEOF, "unexpected EOF inside string escape")
			}
			buf = append(buf, next)
		default:
			buf = append(buf, b)
		}
	}
}

func parseJSONLiteral(s *scanner, word string, value J) (J, error) {
	for i := 0; i < len(word); i++ {
		b, err := s.readByte()
		if err != nil {
			return Null, newParseError(s.pos, ErrUnexpectedEOF, "unexpected EOF in literal %q", word)
		}
		if b != word[i] {
			return Null, newParseError(s.pos, nil, "invalid literal, expected %q", word)
		}
	}
	return value, nil
}

// parseJSONNumber implements the grammar in spec.md §4.2: optional leading
// '-'; digits; optional '.' digits* (a lone trailing '.' is tolerated);
// optional [eE][+-]?digits. Leading zero before another digit is rejected
// except for the lone "0" (per §9's resolution of that open question).
// A '.' immediately followed by a second '.' is left unconsumed: it is the
// schema DSL's range operator (int(1..10)), not a fractional part.
// Parses as double if a fractional or exponent part is present, else as i64.
func parseJSONNumber(s *scanner) (J, error) {
	var buf []byte

	readIf := func(pred func(byte) bool) bool {
		b, err := s.peekByte()
		if err != nil || !pred(b) {
			return false
		}
		_, _ = s.readByte()
		buf = append(buf, b)
		return true
	}

	negative := readIf(func(b byte) bool { return b == '-' })

	digitsStart := len(buf)
	for readIf(isDigit) {
	}
	intDigits := len(buf) - digitsStart
	if intDigits == 0 {
		return Null, newParseError(s.pos, nil, "invalid number: no digits")
	}
	if intDigits > 1 && buf[digitsStart] == '0' {
		return Null, newParseError(s.pos, nil, "invalid number: leading zero")
	}

	isFloat := false
	rangeOp := false
	if next, err := s.r.Peek(2); err == nil && next[0] == '.' && next[1] == '.' {
		rangeOp = true
	}
	if !rangeOp && readIf(func(b byte) bool { return b == '.' }) {
		isFloat = true
		for readIf(isDigit) {
		}
	}

	if readIf(func(b byte) bool { return b == 'e' || b == 'E' }) {
		isFloat = true
		readIf(func(b byte) bool { return b == '+' || b == '-' })
		expDigitsStart := len(buf)
		for readIf(isDigit) {
		}
		if len(buf) == expDigitsStart {
			return Null, newParseError(s.pos, nil, "invalid number: malformed exponent")
		}
	}

	text := string(buf)
	if isFloat {
		// A lone trailing '.' (e.g. "0.") has no fractional digits; ParseFloat
		// accepts this form directly.
		d, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Null, newParseError(s.pos, nil, "invalid number %q", text)
		}
		return NewDouble(d), nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Null, newParseError(s.pos, nil, "invalid integer %q", text)
	}
	_ = negative // sign is already part of text/parsed value
	return NewInt(i), nil
}
