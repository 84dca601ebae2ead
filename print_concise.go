package cschema

import (
	"strconv"
	"strings"
)

// Render renders s as concise DSL source that ParseSchema accepts back
// (spec.md §4.5: "inverse of §4.3"). Grounded on the teacher's lack of an
// equivalent (the teacher never re-renders a Schema as JSON-Schema source
// text, only as Go values), so this is new code, structured as the mirror
// image of schema_parse.go's dispatch table: one switch case per SKind in
// renderBody, with small helpers for combinators, ranges and length
// quantifiers.
func (s *S) Render() string {
	var b strings.Builder
	renderSchemaNode(&b, s)
	return b.String()
}

func renderSchemaNode(b *strings.Builder, s *S) {
	for _, d := range s.docstrings {
		b.WriteString("/**")
		b.WriteString(d)
		b.WriteString("*/ ")
	}
	for _, def := range s.Definitions() {
		b.WriteByte('#')
		b.WriteString(def.Name)
		b.WriteByte(' ')
		renderSchemaNode(b, def.Schema)
		b.WriteString("# ")
	}
	renderBody(b, s)
}

func renderBody(b *strings.Builder, s *S) {
	switch s.Kind() {
	case SAny:
		b.WriteString("any")
	case SNull:
		b.WriteString("null")
	case SBool:
		b.WriteString("bool")
	case SInt:
		b.WriteString("int")
		b.WriteString(renderIntRange(s.intMin, s.intMax))
	case SDouble:
		b.WriteString("double")
		b.WriteString(renderDoubleRange(s.doubleMin, s.doubleMax))
	case SString:
		b.WriteString("str")
		if s.pattern != nil {
			b.WriteByte('(')
			b.WriteString(NewString(*s.pattern).Compact())
			b.WriteByte(')')
		}
		b.WriteString(renderLenQ(s.minLen, s.maxLen))
	case SEnum:
		b.WriteString("enum(")
		for i, v := range s.enumValues {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(v.Compact())
		}
		b.WriteByte(')')
	case SArray:
		b.WriteByte('[')
		if s.unique {
			b.WriteString("unique ")
		}
		renderSchemaNode(b, s.elem)
		b.WriteByte(']')
		b.WriteString(renderLenQ(s.arrMin, s.arrMax))
	case STuple:
		b.WriteByte('(')
		for i, e := range s.tupleElems {
			if i > 0 {
				b.WriteByte(',')
			}
			renderSchemaNode(b, e)
		}
		b.WriteByte(')')
	case SObject:
		if s.extensible {
			b.WriteString("extensible ")
		}
		b.WriteByte('{')
		for i, p := range s.props {
			if i > 0 {
				b.WriteByte(',')
			}
			if p.Optional {
				b.WriteByte('?')
			}
			b.WriteString(NewString(p.Name).Compact())
			b.WriteByte(':')
			renderSchemaNode(b, p.Schema)
			if p.Default != nil {
				b.WriteByte('=')
				b.WriteString(p.Default.Compact())
			}
		}
		for i, pp := range s.patternProps {
			if i > 0 || len(s.props) > 0 {
				b.WriteByte(',')
			}
			b.WriteString("re")
			b.WriteString(NewString(pp.Pattern).Compact())
			b.WriteByte(':')
			renderSchemaNode(b, pp.Schema)
		}
		b.WriteByte('}')
	case SAllOf:
		renderCombinator(b, "allOf", s.subs)
	case SAnyOf:
		renderCombinator(b, "anyOf", s.subs)
	case SOneOf:
		renderCombinator(b, "oneOf", s.subs)
	case SNot:
		b.WriteString("not(")
		renderSchemaNode(b, s.inner)
		b.WriteByte(')')
	case SReference:
		if s.extended {
			b.WriteString("extended ")
		}
		b.WriteByte('@')
		b.WriteString(s.refName)
	}
}

func renderCombinator(b *strings.Builder, keyword string, subs []*S) {
	b.WriteString(keyword)
	b.WriteByte('(')
	for i, sub := range subs {
		if i > 0 {
			b.WriteByte(',')
		}
		renderSchemaNode(b, sub)
	}
	b.WriteByte(')')
}

func renderIntRange(min, max *int64) string {
	if min == nil && max == nil {
		return ""
	}
	var b strings.Builder
	b.WriteByte('(')
	if min != nil {
		b.WriteString(strconv.FormatInt(*min, 10))
	}
	b.WriteString("..")
	if max != nil {
		b.WriteString(strconv.FormatInt(*max, 10))
	}
	b.WriteByte(')')
	return b.String()
}

func renderDoubleRange(min, max *float64) string {
	if min == nil && max == nil {
		return ""
	}
	var b strings.Builder
	b.WriteByte('(')
	if min != nil {
		b.WriteString(formatDouble(*min))
	}
	b.WriteString("..")
	if max != nil {
		b.WriteString(formatDouble(*max))
	}
	b.WriteByte(')')
	return b.String()
}

// renderLenQ inverts parseLenQ: both nil renders nothing; an exact bound
// (min == max) renders "{n}"; otherwise whichever sides are present.
func renderLenQ(min, max *int) string {
	if min == nil && max == nil {
		return ""
	}
	if min != nil && max != nil && *min == *max {
		return "{" + strconv.Itoa(*min) + "}"
	}
	var b strings.Builder
	b.WriteByte('{')
	if min != nil {
		b.WriteString(strconv.Itoa(*min))
	}
	b.WriteByte(',')
	if max != nil {
		b.WriteString(strconv.Itoa(*max))
	}
	b.WriteByte('}')
	return b.String()
}
