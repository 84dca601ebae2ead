package cschema

import (
	"regexp"
	"strings"
)

// keywordSet is the closed list of schema-body keywords, longest 10 letters
// ("extensible"), matching spec.md §4.3's "longest-match up to 16 letters"
// rule trivially since nothing here is close to that bound.
var keywordSet = map[string]bool{
	"any": true, "null": true, "bool": true, "int": true, "double": true,
	"str": true, "enum": true, "allOf": true, "anyOf": true, "oneOf": true,
	"not": true, "extensible": true, "extended": true,
}

// ParseSchema parses one schema value from the concise DSL text (spec.md
// §4.3, §6). Grounded on the teacher's compiler.go (the resolution/caching
// entry point) generalized from URI-based to lexical scoping, and on
// ref.go's walk-the-parent-chain shape for @name resolution.
func ParseSchema(text string) (*S, error) {
	p := &schemaParser{s: newScanner(strings.NewReader(text))}
	return p.parseSchema()
}

type schemaParser struct {
	s      *scanner
	scopes []*S
}

// parseSchema implements the "schema" production: push a new node onto the
// scope stack, collect leading docstrings/#definitions# into it, parse the
// body that determines its SKind, then pop — regardless of outcome
// (spec.md §4.3).
func (p *schemaParser) parseSchema() (*S, error) {
	node := &S{defs: newDefTable()}
	p.scopes = append(p.scopes, node)
	defer func() { p.scopes = p.scopes[:len(p.scopes)-1] }()

	firstWord, err := p.parseDocstringsAndDefs(node)
	if err != nil {
		return nil, err
	}
	if firstWord != "" {
		if err := p.dispatchKeyword(node, firstWord); err != nil {
			return nil, err
		}
		return node, nil
	}
	if err := p.parseBody(node); err != nil {
		return nil, err
	}
	return node, nil
}

// parseDocstringsAndDefs consumes any number of leading "/** ... */"
// docstrings and "#name schema #" definitions. If it stops because the next
// token is an identifier (an alpha-prefixed keyword) it has no choice but to
// consume that identifier to find out it wasn't "#" or "/" — it returns that
// word so the caller can dispatch on it directly instead of re-peeking a
// byte the 1-byte scanner pushback cannot hold twice over.
func (p *schemaParser) parseDocstringsAndDefs(node *S) (string, error) {
	for {
		b, err := p.s.readNonSpace(false)
		if err != nil {
			return "", err
		}
		switch {
		case b == '/':
			if err := p.consumeDocstringOrComment(node); err != nil {
				return "", err
			}
		case b == '#':
			if err := p.parseDefinition(node); err != nil {
				return "", err
			}
		case isAlpha(b):
			word, err := p.readIdentWord()
			if err != nil {
				return "", err
			}
			return word, nil
		default:
			return "", nil
		}
	}
}

// consumeDocstringOrComment is called with '/' as the next unconsumed byte.
// It distinguishes "/**" (a docstring, captured onto node) from a plain
// "/* ... */" comment (discarded, matching the shared lexical utility's
// comment skipping in spec.md §4.1).
func (p *schemaParser) consumeDocstringOrComment(node *S) error {
	if _, err := p.s.readByte(); err != nil { // consume '/'
		return err
	}
	if err := p.s.expect('*'); err != nil {
		return err
	}
	star, err := p.s.peekByte()
	if err != nil {
		return newParseError(p.s.pos, ErrUnexpectedEOF, "unexpected EOF after '/*'")
	}
	if star != '*' {
		return p.s.skipComment()
	}
	_, _ = p.s.readByte() // consume the second '*'
	var buf []byte
	prevStar := false
	for {
		b, err := p.s.readByte()
		if err != nil {
			return newParseError(p.s.pos, ErrUnexpectedEOF, "unexpected EOF inside docstring")
		}
		if prevStar && b == '/' {
			buf = buf[:len(buf)-1] // drop the trailing '*' we already appended
			node.docstrings = append(node.docstrings, strings.TrimSpace(string(buf)))
			return nil
		}
		buf = append(buf, b)
		prevStar = b == '*'
	}
}

// parseDefinition parses "#" ident schema "#" with '#' already the peeked,
// unconsumed byte.
func (p *schemaParser) parseDefinition(node *S) error {
	_, _ = p.s.readByte() // consume '#'
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if !isAlpha(b) {
		return newParseError(p.s.pos, nil, "expected definition name, got %q", b)
	}
	name, err := p.readIdentWord()
	if err != nil {
		return err
	}
	sub, err := p.parseSchema()
	if err != nil {
		return err
	}
	if err := p.expectByte('#'); err != nil {
		return err
	}
	if _, exists := node.defs.Lookup(name); exists {
		return newParseError(p.s.pos, ErrDuplicateDefinition, "duplicate definition %q", name)
	}
	node.defs.Add(name, sub)
	return nil
}

// readIdentWord consumes a maximal run of [A-Za-z][A-Za-z0-9_]* starting at
// the current (already-peeked, alpha) byte.
func (p *schemaParser) readIdentWord() (string, error) {
	var buf []byte
	for {
		b, err := p.s.peekByte()
		if err != nil || !isIdentByte(b) {
			break
		}
		_, _ = p.s.readByte()
		buf = append(buf, b)
	}
	if len(buf) == 0 {
		return "", newParseError(p.s.pos, nil, "expected identifier")
	}
	return string(buf), nil
}

func (p *schemaParser) expectByte(want byte) error {
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if b != want {
		return newParseError(p.s.pos, nil, "expected %q, got %q", want, b)
	}
	_, _ = p.s.readByte()
	return nil
}

func (p *schemaParser) expectLiteral(lit string) error {
	if _, err := p.s.readNonSpace(true); err != nil {
		return err
	}
	for i := 0; i < len(lit); i++ {
		b, err := p.s.readByte()
		if err != nil {
			return newParseError(p.s.pos, ErrUnexpectedEOF, "expected %q", lit)
		}
		if b != lit[i] {
			return newParseError(p.s.pos, nil, "expected %q", lit)
		}
	}
	return nil
}

// parseBody dispatches on the next significant byte: '{' object, '['
// array, '(' tuple, '@' reference, alpha a keyword (spec.md §4.3).
func (p *schemaParser) parseBody(node *S) error {
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	switch {
	case b == '{':
		return p.parseObjectBody(node, false)
	case b == '[':
		return p.parseArrayBody(node)
	case b == '(':
		return p.parseTupleBody(node)
	case b == '@':
		return p.parseReferenceBody(node, false)
	case isAlpha(b):
		word, err := p.readIdentWord()
		if err != nil {
			return err
		}
		return p.dispatchKeyword(node, word)
	default:
		return newParseError(p.s.pos, nil, "unexpected character %q at start of schema", b)
	}
}

// dispatchKeyword fills in node from an already-read keyword identifier,
// shared by parseBody's alpha branch and the array "unique"? lookahead
// (parseArrayBody), which must sometimes reinterpret a pre-read identifier
// as the body keyword itself rather than the "unique" modifier.
func (p *schemaParser) dispatchKeyword(node *S, word string) error {
	if !keywordSet[word] {
		return newParseError(p.s.pos, nil, "unknown schema keyword %q", word)
	}
	switch word {
	case "any":
		node.kind = SAny
	case "null":
		node.kind = SNull
	case "bool":
		node.kind = SBool
	case "int":
		return p.parseIntBody(node)
	case "double":
		return p.parseDoubleBody(node)
	case "str":
		return p.parseStringBody(node)
	case "enum":
		return p.parseEnumBody(node)
	case "allOf":
		return p.parseCombinatorBody(node, SAllOf)
	case "anyOf":
		return p.parseCombinatorBody(node, SAnyOf)
	case "oneOf":
		return p.parseCombinatorBody(node, SOneOf)
	case "not":
		return p.parseNotBody(node)
	case "extensible":
		return p.parseObjectBody(node, true)
	case "extended":
		return p.parseReferenceBody(node, true)
	}
	return nil
}

func (p *schemaParser) parseOptionalIntBound() (*int64, error) {
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return nil, err
	}
	if !(isDigit(b) || b == '-') {
		return nil, nil
	}
	v, err := parseJSONNumber(p.s)
	if err != nil {
		return nil, err
	}
	i, err := v.AsInt()
	if err != nil {
		return nil, newParseError(p.s.pos, nil, "expected an integer bound")
	}
	return &i, nil
}

func (p *schemaParser) parseOptionalFloatBound() (*float64, error) {
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return nil, err
	}
	if !(isDigit(b) || b == '-') {
		return nil, nil
	}
	v, err := parseJSONNumber(p.s)
	if err != nil {
		return nil, err
	}
	var f float64
	switch v.Kind() {
	case KindInteger:
		i, _ := v.AsInt()
		f = float64(i)
	case KindDouble:
		f, _ = v.AsDouble()
	}
	return &f, nil
}

func (p *schemaParser) parseIntBody(node *S) error {
	node.kind = SInt
	b, err := p.s.readNonSpace(true)
	if err != nil || b != '(' {
		return nil
	}
	_, _ = p.s.readByte()
	b2, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if b2 == ')' {
		_, _ = p.s.readByte()
		return nil
	}
	min, err := p.parseOptionalIntBound()
	if err != nil {
		return err
	}
	if err := p.expectLiteral(".."); err != nil {
		return err
	}
	max, err := p.parseOptionalIntBound()
	if err != nil {
		return err
	}
	if err := p.expectByte(')'); err != nil {
		return err
	}
	node.intMin, node.intMax = min, max
	return nil
}

func (p *schemaParser) parseDoubleBody(node *S) error {
	node.kind = SDouble
	b, err := p.s.readNonSpace(true)
	if err != nil || b != '(' {
		return nil
	}
	_, _ = p.s.readByte()
	b2, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if b2 == ')' {
		_, _ = p.s.readByte()
		return nil
	}
	min, err := p.parseOptionalFloatBound()
	if err != nil {
		return err
	}
	if err := p.expectLiteral(".."); err != nil {
		return err
	}
	max, err := p.parseOptionalFloatBound()
	if err != nil {
		return err
	}
	if err := p.expectByte(')'); err != nil {
		return err
	}
	node.doubleMin, node.doubleMax = min, max
	return nil
}

func (p *schemaParser) parseStringBody(node *S) error {
	node.kind = SString
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return nil
	}
	if b == '(' {
		_, _ = p.s.readByte()
		b2, err := p.s.readNonSpace(true)
		if err != nil {
			return err
		}
		if b2 != '"' {
			return newParseError(p.s.pos, nil, "expected a quoted regex pattern")
		}
		patVal, err := parseJSONString(p.s)
		if err != nil {
			return err
		}
		pat, _ := patVal.AsString()
		compiled, err := regexp.Compile("^(?:" + pat + ")$")
		if err != nil {
			return newParseError(p.s.pos, nil, "invalid regular expression %q: %v", pat, err)
		}
		node.pattern = &pat
		node.compiledPattern = compiled
		if err := p.expectByte(')'); err != nil {
			return err
		}
	}
	b3, err := p.s.readNonSpace(true)
	if err != nil || b3 != '{' {
		return nil
	}
	min, max, err := p.parseLenQ()
	if err != nil {
		return err
	}
	node.minLen, node.maxLen = min, max
	return nil
}

// parseLenQ implements lenq := "{" int? ("," int?)? "}": a bare "{n}" is an
// exact count (min == max == n); "{,n}" / "{n,}" / "{n,m}" / "{,}" set
// whichever sides are present (spec.md §4.3).
func (p *schemaParser) parseLenQ() (min, max *int, err error) {
	if err := p.expectByte('{'); err != nil {
		return nil, nil, err
	}
	first, err := p.parseOptionalIntBound()
	if err != nil {
		return nil, nil, err
	}
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return nil, nil, err
	}
	if b != ',' {
		if err := p.expectByte('}'); err != nil {
			return nil, nil, err
		}
		if first == nil {
			return nil, nil, nil
		}
		n := int(*first)
		return &n, &n, nil
	}
	_, _ = p.s.readByte() // consume ','
	second, err := p.parseOptionalIntBound()
	if err != nil {
		return nil, nil, err
	}
	if err := p.expectByte('}'); err != nil {
		return nil, nil, err
	}
	min = int64ToIntPtr(first)
	max = int64ToIntPtr(second)
	return min, max, nil
}

func int64ToIntPtr(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func (p *schemaParser) parseEnumBody(node *S) error {
	node.kind = SEnum
	if err := p.expectByte('('); err != nil {
		return err
	}
	for {
		v, err := parseJSONValue(p.s)
		if err != nil {
			return err
		}
		node.enumValues = append(node.enumValues, v)
		b, err := p.s.readNonSpace(true)
		if err != nil {
			return err
		}
		if b == ',' {
			_, _ = p.s.readByte()
			continue
		}
		if b == ')' {
			_, _ = p.s.readByte()
			return nil
		}
		return newParseError(p.s.pos, nil, "expected ',' or ')' in enum, got %q", b)
	}
}

func (p *schemaParser) parseCombinatorBody(node *S, kind SKind) error {
	node.kind = kind
	if err := p.expectByte('('); err != nil {
		return err
	}
	for {
		sub, err := p.parseSchema()
		if err != nil {
			return err
		}
		node.subs = append(node.subs, sub)
		b, err := p.s.readNonSpace(true)
		if err != nil {
			return err
		}
		if b == ',' {
			_, _ = p.s.readByte()
			continue
		}
		if b == ')' {
			_, _ = p.s.readByte()
			return nil
		}
		return newParseError(p.s.pos, nil, "expected ',' or ')', got %q", b)
	}
}

func (p *schemaParser) parseNotBody(node *S) error {
	node.kind = SNot
	if err := p.expectByte('('); err != nil {
		return err
	}
	sub, err := p.parseSchema()
	if err != nil {
		return err
	}
	node.inner = sub
	return p.expectByte(')')
}

func (p *schemaParser) parseTupleBody(node *S) error {
	node.kind = STuple
	if err := p.expectByte('('); err != nil {
		return err
	}
	for {
		sub, err := p.parseSchema()
		if err != nil {
			return err
		}
		node.tupleElems = append(node.tupleElems, sub)
		b, err := p.s.readNonSpace(true)
		if err != nil {
			return err
		}
		if b == ',' {
			_, _ = p.s.readByte()
			continue
		}
		if b == ')' {
			_, _ = p.s.readByte()
			return nil
		}
		return newParseError(p.s.pos, nil, "expected ',' or ')', got %q", b)
	}
}

func (p *schemaParser) parseArrayBody(node *S) error {
	node.kind = SArray
	if err := p.expectByte('['); err != nil {
		return err
	}
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	var elem *S
	if isAlpha(b) {
		word, err := p.readIdentWord()
		if err != nil {
			return err
		}
		if word == "unique" {
			node.unique = true
			elem, err = p.parseSchema()
			if err != nil {
				return err
			}
		} else {
			elem, err = p.parseSchemaFromWord(word)
			if err != nil {
				return err
			}
		}
	} else {
		elem, err = p.parseSchema()
		if err != nil {
			return err
		}
	}
	node.elem = elem
	if err := p.expectByte(']'); err != nil {
		return err
	}
	b2, err := p.s.readNonSpace(true)
	if err != nil || b2 != '{' {
		return nil
	}
	min, max, err := p.parseLenQ()
	if err != nil {
		return err
	}
	node.arrMin, node.arrMax = min, max
	return nil
}

// parseSchemaFromWord parses a full "schema" production whose first
// (alpha) token has already been consumed as word — used when an array's
// "unique"? lookahead turns out not to be "unique" after all.
func (p *schemaParser) parseSchemaFromWord(word string) (*S, error) {
	node := &S{defs: newDefTable()}
	p.scopes = append(p.scopes, node)
	defer func() { p.scopes = p.scopes[:len(p.scopes)-1] }()
	if err := p.dispatchKeyword(node, word); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *schemaParser) parseObjectBody(node *S, extensible bool) error {
	node.kind = SObject
	node.extensible = extensible
	node.propIndex = make(map[string]*Property)
	if err := p.expectByte('{'); err != nil {
		return err
	}
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if b == '}' {
		_, _ = p.s.readByte()
		return nil
	}
	for {
		if err := p.parseObjItem(node); err != nil {
			return err
		}
		b, err := p.s.readNonSpace(true)
		if err != nil {
			return err
		}
		if b == ',' {
			_, _ = p.s.readByte()
			continue
		}
		if b == '}' {
			_, _ = p.s.readByte()
			return nil
		}
		return newParseError(p.s.pos, nil, "expected ',' or '}', got %q", b)
	}
}

func (p *schemaParser) parseObjItem(node *S) error {
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	switch {
	case b == '?':
		_, _ = p.s.readByte()
		return p.parseProp(node, true)
	case b == 'r':
		return p.parsePatternProp(node)
	case b == '"':
		return p.parseProp(node, false)
	default:
		return newParseError(p.s.pos, nil, "expected '?', 're', or a property key, got %q", b)
	}
}

func (p *schemaParser) parseProp(node *S, optional bool) error {
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if b != '"' {
		return newParseError(p.s.pos, nil, "expected property key string, got %q", b)
	}
	keyVal, err := parseJSONString(p.s)
	if err != nil {
		return err
	}
	key, _ := keyVal.AsString()
	if err := p.expectByte(':'); err != nil {
		return err
	}
	sub, err := p.parseSchema()
	if err != nil {
		return err
	}
	prop := &Property{Name: key, Schema: sub, Optional: optional}

	b2, err := p.s.readNonSpace(true)
	if err == nil && b2 == '=' {
		if !optional {
			return newParseError(p.s.pos, nil, "default value only permitted on optional properties")
		}
		_, _ = p.s.readByte()
		defVal, err := parseJSONValue(p.s)
		if err != nil {
			return err
		}
		prop.Default = &defVal
	}
	node.props = append(node.props, prop)
	node.propIndex[key] = prop
	return nil
}

func (p *schemaParser) parsePatternProp(node *S) error {
	word, err := p.readIdentWord()
	if err != nil {
		return err
	}
	if word != "re" {
		return newParseError(p.s.pos, nil, "unknown object item prefix %q", word)
	}
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if b != '"' {
		return newParseError(p.s.pos, nil, "expected quoted pattern after 're', got %q", b)
	}
	patVal, err := parseJSONString(p.s)
	if err != nil {
		return err
	}
	pat, _ := patVal.AsString()
	if err := p.expectByte(':'); err != nil {
		return err
	}
	sub, err := p.parseSchema()
	if err != nil {
		return err
	}
	compiled, err := regexp.Compile("^(?:" + pat + ")$")
	if err != nil {
		return newParseError(p.s.pos, nil, "invalid regular expression %q: %v", pat, err)
	}
	node.patternProps = append(node.patternProps, &PatternProperty{Pattern: pat, Compiled: compiled, Schema: sub})
	return nil
}

func (p *schemaParser) parseReferenceBody(node *S, extended bool) error {
	node.kind = SReference
	node.extended = extended
	if err := p.expectByte('@'); err != nil {
		return err
	}
	b, err := p.s.readNonSpace(true)
	if err != nil {
		return err
	}
	if !isAlpha(b) {
		return newParseError(p.s.pos, nil, "expected reference name, got %q", b)
	}
	name, err := p.readIdentWord()
	if err != nil {
		return err
	}
	node.refName = name

	resolved, ok := p.resolveReference(name)
	if !ok {
		return newParseError(p.s.pos, ErrUnresolvedReference, "unresolved reference @%s", name)
	}
	node.resolved = resolved
	return nil
}

// resolveReference walks the scope stack innermost-to-outermost, returning
// the first enclosing scope whose definitions contain name (spec.md §3.2).
func (p *schemaParser) resolveReference(name string) (*S, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if target, ok := p.scopes[i].lookupDefinition(name); ok {
			return target, true
		}
	}
	return nil, false
}
