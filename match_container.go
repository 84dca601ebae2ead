package cschema

import "fmt"

// Validators for the container variants: Array, Tuple, Object (spec.md
// §4.4). Grounded on the teacher's evaluateItems/evaluatePrefixItems/
// evaluateProperties/evaluateAdditionalProperties/evaluateRequired
// (items.go, prefixItems.go, properties.go, required.go), narrowed from the
// teacher's independently-firing keyword set (several can all contribute
// errors to the same object at once) to this DSL's short-circuit-at-first-
// violation rule (spec.md §9: composite failures nest a single child).

func matchArray(s *S, v J) *MatchError {
	if v.Kind() != KindArray {
		return newMatchError("array.type", "array: not an array", v, nil)
	}
	elems, _ := v.AsArray()
	if s.arrMin != nil && len(elems) < *s.arrMin {
		return newMatchError("array.minItems", "array: too few items", v, map[string]any{"min": *s.arrMin})
	}
	if s.arrMax != nil && len(elems) > *s.arrMax {
		return newMatchError("array.maxItems", "array: too many items", v, map[string]any{"max": *s.arrMax})
	}
	for i, elem := range elems {
		if child := matchNode(s.elem, elem, false); child != nil {
			return newMatchErrorWithChild(fmt.Sprintf("bad item [%d]", i), v, child)
		}
	}
	if s.unique {
		sorted := make([]J, len(elems))
		copy(sorted, elems)
		sortJ(sorted)
		for i := 1; i < len(sorted); i++ {
			if sorted[i-1].Equal(sorted[i]) {
				return newMatchError("array.unique", "array: contains duplicate elements", v, nil)
			}
		}
	}
	return nil
}

func sortJ(vs []J) {
	// Small helper kept local: insertion sort is plenty for the schema
	// value lists this engine sorts (array elements under "unique").
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j-1].Compare(vs[j]) > 0; j-- {
			vs[j-1], vs[j] = vs[j], vs[j-1]
		}
	}
}

func matchTuple(s *S, v J) *MatchError {
	if v.Kind() != KindArray {
		return newMatchError("tuple.type", "tuple: not an array", v, nil)
	}
	elems, _ := v.AsArray()
	if len(elems) != len(s.tupleElems) {
		return newMatchError("tuple.length", "tuple: wrong length", v, map[string]any{"length": len(s.tupleElems)})
	}
	for i, elemSchema := range s.tupleElems {
		if child := matchNode(elemSchema, elems[i], false); child != nil {
			return newMatchErrorWithChild(fmt.Sprintf("bad item [%d]", i), v, child)
		}
	}
	return nil
}

func matchObject(s *S, v J, allowExt bool) *MatchError {
	if v.Kind() != KindObject {
		return newMatchError("object.type", "object: not an object", v, nil)
	}
	members, _ := v.AsObject()

	for _, m := range members {
		matchedPattern := false
		for _, pp := range s.patternProps {
			if !pp.Compiled.MatchString(m.Key) {
				continue
			}
			matchedPattern = true
			if child := matchNode(pp.Schema, m.Value, false); child != nil {
				return newMatchErrorWithChild(fmt.Sprintf("bad pattern property %q", m.Key), v, child)
			}
		}
		if prop, ok := s.propIndex[m.Key]; ok {
			if child := matchNode(prop.Schema, m.Value, false); child != nil {
				return newMatchErrorWithChild(fmt.Sprintf("bad property %q", m.Key), v, child)
			}
			continue
		}
		if matchedPattern {
			continue
		}
		if !s.extensible && !allowExt {
			return newMatchError("object.additionalProperties", fmt.Sprintf("unexpected property %q", m.Key), v, map[string]any{"property": m.Key})
		}
	}

	for _, prop := range s.props {
		if prop.Optional {
			continue
		}
		if _, ok := v.Get(prop.Name); !ok {
			return newMatchError("object.required", fmt.Sprintf("no property %q", prop.Name), v, map[string]any{"property": prop.Name})
		}
	}
	return nil
}
