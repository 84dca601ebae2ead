package cschema

// Validators for the scalar variants: Null, Bool, Int, Double, String, Enum
// (spec.md §4.4). Grounded on the teacher's evaluateType/evaluateMinimum/
// evaluateMaximum/evaluatePattern/evaluateEnum (type.go, minimum.go,
// maximum.go, pattern.go, enum.go), narrowed to this DSL's fixed per-kind
// bounds rather than the teacher's generic keyword-bag lookup.

func matchNull(v J) *MatchError {
	if v.Kind() != KindNull {
		return newMatchError("null.type", "null: not a null", v, nil)
	}
	return nil
}

func matchBool(v J) *MatchError {
	if v.Kind() != KindBoolean {
		return newMatchError("bool.type", "bool: not a boolean", v, nil)
	}
	return nil
}

func matchInt(s *S, v J) *MatchError {
	if v.Kind() != KindInteger {
		return newMatchError("int.type", "int: not an integer", v, nil)
	}
	i, _ := v.AsInt()
	if s.intMin != nil && i < *s.intMin {
		return newMatchError("int.min", "int: below minimum", v, map[string]any{"min": *s.intMin})
	}
	if s.intMax != nil && i > *s.intMax {
		return newMatchError("int.max", "int: above maximum", v, map[string]any{"max": *s.intMax})
	}
	return nil
}

func matchDouble(s *S, v J) *MatchError {
	var f float64
	switch v.Kind() {
	case KindInteger:
		i, _ := v.AsInt()
		f = float64(i)
	case KindDouble:
		f, _ = v.AsDouble()
	default:
		return newMatchError("double.type", "double: not a number", v, nil)
	}
	if s.doubleMin != nil && f < *s.doubleMin {
		return newMatchError("double.min", "double: below minimum", v, map[string]any{"min": *s.doubleMin})
	}
	if s.doubleMax != nil && f > *s.doubleMax {
		return newMatchError("double.max", "double: above maximum", v, map[string]any{"max": *s.doubleMax})
	}
	return nil
}

func matchString(s *S, v J) *MatchError {
	if v.Kind() != KindString {
		return newMatchError("string.type", "string: not a string", v, nil)
	}
	str, _ := v.AsString()
	n := len(str) // byte length, per spec.md §8
	if s.minLen != nil && n < *s.minLen {
		return newMatchError("string.minLength", "string: too short", v, map[string]any{"min": *s.minLen})
	}
	if s.maxLen != nil && n > *s.maxLen {
		return newMatchError("string.maxLength", "string: too long", v, map[string]any{"max": *s.maxLen})
	}
	if s.compiledPattern != nil && !s.compiledPattern.MatchString(str) {
		return newMatchError("string.pattern", "string: does not match pattern", v, map[string]any{"pattern": *s.pattern})
	}
	return nil
}

func matchEnum(s *S, v J) *MatchError {
	for _, candidate := range s.enumValues {
		if v.Equal(candidate) {
			return nil
		}
	}
	return newMatchError("enum.mismatch", "enum: no matching value", v, nil)
}
