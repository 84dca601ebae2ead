package cschema

// MatchError is one node of the tree produced by a failing Match (spec.md
// §3.3). A nil *MatchError means Ok. Value is the J subvalue that was being
// checked by the validator that produced this node (the container itself
// for a composite failure, not the specific child that triggered it — the
// child's own location is carried by its own node in Nested); Schema is
// stamped by matchNode with the S variant whose validator produced the
// node, after that validator returns.
//
// Code and Params mirror the teacher's EvaluationError (result.go): a
// stable keyword-like code plus named template parameters, resolvable
// through the embedded locale bundle in i18n.go via Localize, independent
// of the English Message string built at construction time.
type MatchError struct {
	Message string
	Code    string
	Params  map[string]any
	Value   J
	Schema  *S
	Nested  []*MatchError
}

func newMatchError(code, message string, value J, params map[string]any) *MatchError {
	return &MatchError{Message: message, Code: code, Params: params, Value: value}
}

func newMatchErrorWithChild(message string, value J, child *MatchError) *MatchError {
	return &MatchError{Message: message, Value: value, Nested: []*MatchError{child}}
}

func newMatchErrorWithChildren(message string, value J, children []*MatchError) *MatchError {
	return &MatchError{Message: message, Value: value, Nested: children}
}

// Match validates value against schema (spec.md §4.4). A nil result means
// the match succeeded.
//
// Grounded on the teacher's Validator.Evaluate/evaluateXxx dispatch
// (evaluation.go, type.go, …): a top-level entry that switches on the
// schema's kind and delegates to one function per keyword, building an
// EvaluationError tree bottom-up. Generalized from the teacher's ~20
// independent keyword evaluators (which can all fire on one schema at once)
// to this DSL's 15 mutually exclusive variants (exactly one evaluator runs
// per node), and from the teacher's keyword-name-keyed error map to an
// ordered Nested slice.
func Match(schema *S, value J) *MatchError {
	return matchNode(schema, value, false)
}

// matchNode dispatches on schema's kind and stamps the result with schema
// before returning, unless a recursive call already stamped a more specific
// schema onto it (as happens for Reference, which passes its target's
// already-stamped error straight through).
func matchNode(s *S, v J, allowExt bool) *MatchError {
	var e *MatchError
	switch s.Kind() {
	case SAny:
		e = nil
	case SNull:
		e = matchNull(v)
	case SBool:
		e = matchBool(v)
	case SInt:
		e = matchInt(s, v)
	case SDouble:
		e = matchDouble(s, v)
	case SString:
		e = matchString(s, v)
	case SEnum:
		e = matchEnum(s, v)
	case SArray:
		e = matchArray(s, v)
	case STuple:
		e = matchTuple(s, v)
	case SObject:
		e = matchObject(s, v, allowExt)
	case SAllOf:
		e = matchAllOf(s, v)
	case SAnyOf:
		e = matchAnyOf(s, v)
	case SOneOf:
		e = matchOneOf(s, v)
	case SNot:
		e = matchNot(s, v)
	case SReference:
		e = matchReference(s, v)
	}
	if e != nil && e.Schema == nil {
		e.Schema = s
	}
	return e
}
