package cschema

import "fmt"

// Validators for the combinator variants: AllOf, AnyOf, OneOf, Not,
// Reference (spec.md §4.4). Grounded on the teacher's evaluateAllOf/
// evaluateAnyOf/evaluateOneOf/evaluateNot/evaluateRef (allOf.go, anyOf.go,
// oneOf.go, not.go, ref.go), generalized from the teacher's URI-resolved
// $ref to this DSL's lexically-resolved Reference, which additionally
// threads an "allow extensions" override for `extended` references.

func matchAllOf(s *S, v J) *MatchError {
	for i, sub := range s.subs {
		if child := matchNode(sub, v, false); child != nil {
			return newMatchErrorWithChild(fmt.Sprintf("allOf: schema[%d] fails", i), v, child)
		}
	}
	return nil
}

func matchAnyOf(s *S, v J) *MatchError {
	var failures []*MatchError
	for _, sub := range s.subs {
		child := matchNode(sub, v, false)
		if child == nil {
			return nil
		}
		failures = append(failures, child)
	}
	return newMatchErrorWithChildren("anyOf: no match", v, failures)
}

func matchOneOf(s *S, v J) *MatchError {
	var failures []*MatchError
	successes := 0
	for _, sub := range s.subs {
		child := matchNode(sub, v, false)
		if child == nil {
			successes++
			continue
		}
		failures = append(failures, child)
	}
	switch {
	case successes == 1:
		return nil
	case successes == 0:
		return newMatchErrorWithChildren("oneOf: no match", v, failures)
	default:
		return newMatchError("oneOf.multiple", "oneOf: more than one match", v, map[string]any{"count": successes})
	}
}

func matchNot(s *S, v J) *MatchError {
	if child := matchNode(s.inner, v, false); child != nil {
		return nil
	}
	return newMatchError("not.matches", "not: matches", v, nil)
}

func matchReference(s *S, v J) *MatchError {
	if s.resolved == nil {
		panic(ErrDanglingReference)
	}
	return matchNode(s.resolved, v, s.extended)
}
