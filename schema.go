package cschema

import "regexp"

// SKind tags the 15 variants a schema value (S) may hold (spec.md §3.2).
// Grounded on the teacher's keyword-bag Schema (schema.go) generalized to a
// closed sum type: an implementation should use exhaustive case analysis
// rather than subclass dispatch (spec.md §9), so adding a variant is a
// compile-time obligation everywhere match/print switches on SKind.
type SKind int

const (
	SAny SKind = iota
	SNull
	SBool
	SInt
	SDouble
	SString
	SEnum
	SArray
	STuple
	SObject
	SAllOf
	SAnyOf
	SOneOf
	SNot
	SReference
)

// Property is one declared member of an Object schema: a required or
// optional name, its schema, and an optional static default JSON literal.
// Grounded on the teacher's Properties/SchemaMap plus its per-property
// Default field (schema.go), minus the teacher's dynamic-default-function
// machinery, which this DSL's read-only match model does not have.
type Property struct {
	Name     string
	Schema   *S
	Default  *J // nil if no default was written
	Optional bool
}

// PatternProperty is an object-schema entry keyed by a regex rather than a
// literal name (spec.md §3.2, glossary "Pattern property").
type PatternProperty struct {
	Pattern  string
	Compiled *regexp.Regexp
	Schema   *S
}

// defEntry is one #name S # definition captured in a scope's definitions
// table, keeping its textual declaration order for stable concise-printing
// (spec.md §3.2, §9).
type defEntry struct {
	Seq    int
	Name   string
	Schema *S
}

// defTable is the ordered, by-name-lookup definitions map a schema node
// carries for its nested #name...# clauses. Entries are appended in parse
// order, so Ordered() already reflects textual declaration order.
type defTable struct {
	byName map[string]*defEntry
	order  []*defEntry
}

func newDefTable() *defTable {
	return &defTable{byName: make(map[string]*defEntry)}
}

// Add registers a new definition. It is the schema parser's job to reject a
// duplicate name within one scope before calling this.
func (t *defTable) Add(name string, schema *S) *defEntry {
	e := &defEntry{Seq: len(t.order), Name: name, Schema: schema}
	t.byName[name] = e
	t.order = append(t.order, e)
	return e
}

func (t *defTable) Lookup(name string) (*S, bool) {
	if t == nil {
		return nil, false
	}
	e, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return e.Schema, true
}

// Ordered returns definitions in textual declaration order.
func (t *defTable) Ordered() []*defEntry {
	if t == nil {
		return nil
	}
	return t.order
}

// S is a schema value: exactly one of the 15 SKind variants, each carrying
// only the fields that variant uses (spec.md §3.2). The teacher represents
// every JSON Schema keyword as an optional field on one giant Schema struct;
// this spec's schema is a closed sum instead, so S carries the union of
// per-variant payloads with each variant touching a disjoint subset.
//
// Reference resolution is lexical, not URI-based (contrast the teacher's
// compiler.go $id/anchor cache): Reference.resolved is a non-owning back-
// pointer into an ancestor S's definitions table, set once during parsing
// and never re-walked. Since Go is garbage collected, the ownership hazard
// spec.md §3.2/§9 calls out — a Reference's target outliving its root — is
// avoided without an arena: as long as any part of the tree (including the
// Reference node itself) is reachable, the whole tree it was parsed from
// stays reachable, because Reference.resolved only ever points at a node
// that was reached by walking up from where the Reference was parsed, i.e.
// a node that is itself reachable from the same root. A schema tree must
// still not be partially copied in a way that would orphan a Reference from
// its root — this package never does so: printers and the match engine only
// ever receive a schema along with the full tree it was parsed from.
type S struct {
	kind SKind

	// Int
	intMin, intMax *int64
	// Double
	doubleMin, doubleMax *float64
	// String
	pattern         *string
	compiledPattern *regexp.Regexp
	minLen, maxLen  *int
	// Enum
	enumValues []J
	// Array
	elem               *S
	arrMin, arrMax     *int
	unique             bool
	// Tuple
	tupleElems []*S
	// Object
	props        []*Property
	propIndex    map[string]*Property
	patternProps []*PatternProperty
	extensible   bool
	// AllOf / AnyOf / OneOf
	subs []*S
	// Not
	inner *S
	// Reference
	refName  string
	resolved *S
	extended bool

	docstrings []string
	defs       *defTable
}

// Kind returns which of the 15 variants this schema holds.
func (s *S) Kind() SKind { return s.kind }

// Docstrings returns the /** ... */ comments attached to this schema node,
// in source order.
func (s *S) Docstrings() []string { return s.docstrings }

// Definitions returns this node's #name...# definitions in textual
// declaration order, or nil if it declared none.
func (s *S) Definitions() []*defEntry { return s.defs.Ordered() }

// lookupDefinition resolves name against this node's own definitions table
// only (no walking to ancestors); used by the scope stack in schema_parse.go.
func (s *S) lookupDefinition(name string) (*S, bool) {
	return s.defs.Lookup(name)
}

// Property looks up a declared (non-pattern) property by name.
func (s *S) Property(name string) (*Property, bool) {
	if s.propIndex == nil {
		return nil, false
	}
	p, ok := s.propIndex[name]
	return p, ok
}

// Properties returns declared properties in textual declaration order.
func (s *S) Properties() []*Property { return s.props }

// PatternProperties returns pattern properties in textual declaration order.
func (s *S) PatternProperties() []*PatternProperty { return s.patternProps }

// Extensible reports whether an Object schema tolerates unknown keys.
func (s *S) Extensible() bool { return s.extensible }

// Elem returns the element schema of an Array variant.
func (s *S) Elem() *S { return s.elem }

// Unique reports whether an Array variant requires unique elements.
func (s *S) Unique() bool { return s.unique }

// TupleElems returns the ordered element schemas of a Tuple variant.
func (s *S) TupleElems() []*S { return s.tupleElems }

// Subs returns the child schemas of an AllOf/AnyOf/OneOf variant.
func (s *S) Subs() []*S { return s.subs }

// Inner returns the negated schema of a Not variant.
func (s *S) Inner() *S { return s.inner }

// EnumValues returns the allowed values of an Enum variant.
func (s *S) EnumValues() []J { return s.enumValues }

// RefName returns the @name a Reference variant names.
func (s *S) RefName() string { return s.refName }

// Resolved returns the schema a Reference variant resolved to at parse
// time, or nil if this is not a Reference (or, for a hand-built S never run
// through ParseSchema, if it was never resolved).
func (s *S) Resolved() *S { return s.resolved }

// Extended reports whether a Reference forces its resolved target (when an
// Object) to match in allow-extensions mode.
func (s *S) Extended() bool { return s.extended }

// IntRange returns the Int variant's inclusive bounds; a nil pointer means
// unbounded on that side.
func (s *S) IntRange() (min, max *int64) { return s.intMin, s.intMax }

// DoubleRange returns the Double variant's inclusive bounds.
func (s *S) DoubleRange() (min, max *float64) { return s.doubleMin, s.doubleMax }

// StringPattern returns the String variant's regex source, or nil if none.
func (s *S) StringPattern() *string { return s.pattern }

// StringLenRange returns the String variant's byte-length bounds.
func (s *S) StringLenRange() (min, max *int) { return s.minLen, s.maxLen }

// ArrayLenRange returns the Array variant's element-count bounds.
func (s *S) ArrayLenRange() (min, max *int) { return s.arrMin, s.arrMax }
