package cschema

import "strings"

// annotation is one message to display beneath a J subvalue, at a given
// nesting depth relative to that subvalue's own position in the printed
// tree (spec.md §4.5).
type annotation struct {
	depth   int
	message string
}

// PrettyWordyPrint renders value as an indented pretty-print (spec.md §4.2)
// with err's tree of violations displayed as a caret-prefixed annotation
// block beneath every offending subvalue, each line suffixed with the
// concise form of the schema variant that rejected it (spec.md §4.5). A nil
// err renders the plain pretty-print with no annotations.
//
// Grounded on the teacher's lack of an equivalent: the teacher's
// EvaluationResult (result.go) renders as a flat field->message map, never
// inlined next to the data it refers to. This is new code, built directly
// from spec.md §4.5's two-pass description: first collect violator-subvalue
// -> messages by walking the error tree, then walk the JSON pretty-printer
// a second time, emitting the collected annotations whenever a value
// matches one collected from the first pass.
func PrettyWordyPrint(value J, err *MatchError, tabSize int) string {
	an := &annotator{byValue: map[string][]annotation{}}
	an.collect(err, 0)

	var b strings.Builder
	an.writeNode(&b, value, 0, tabSize)
	return b.String()
}

// annotator is scoped to one PrettyWordyPrint call: it never touches package
// state, so distinct (S, J) pairs may still be printed concurrently without
// coordination, matching the read-only concurrency model of spec.md §5.
// Matching a J subvalue to its annotations has to use structural equality
// (Go's J is a plain value, not identity-comparable), so violators are keyed
// by their Compact() rendering — sufficient because within a single (schema,
// json) pair under match, two subvalues printing identically are
// interchangeable for annotation purposes.
type annotator struct {
	byValue map[string][]annotation
}

func (an *annotator) collect(err *MatchError, depth int) {
	if err == nil {
		return
	}
	msg := err.Message
	if err.Schema != nil {
		msg = msg + ": expected " + err.Schema.Render()
	}
	key := err.Value.Compact()
	an.byValue[key] = append(an.byValue[key], annotation{depth: depth, message: msg})
	for _, child := range err.Nested {
		an.collect(child, depth+1)
	}
}

func (an *annotator) writeNode(b *strings.Builder, j J, depth, tabSize int) {
	indent := strings.Repeat(" ", depth*tabSize)
	childIndent := strings.Repeat(" ", (depth+1)*tabSize)

	switch j.Kind() {
	case KindArray:
		arr, _ := j.AsArray()
		if len(arr) == 0 {
			b.WriteString("[]")
		} else {
			b.WriteString("[\n")
			for i, e := range arr {
				b.WriteString(childIndent)
				an.writeNode(b, e, depth+1, tabSize)
				if i < len(arr)-1 {
					b.WriteByte(',')
				}
				b.WriteByte('\n')
			}
			b.WriteString(indent)
			b.WriteByte(']')
		}
	case KindObject:
		members, _ := j.AsObject()
		if len(members) == 0 {
			b.WriteString("{}")
		} else {
			width := 0
			for _, m := range members {
				if n := len(m.Key) + 2; n > width {
					width = n
				}
			}
			b.WriteString("{\n")
			for i, m := range members {
				b.WriteString(childIndent)
				quoted := "\"" + m.Key + "\""
				b.WriteString(quoted)
				b.WriteString(strings.Repeat(" ", width-len(quoted)))
				b.WriteString(": ")
				an.writeNode(b, m.Value, depth+1, tabSize)
				if i < len(members)-1 {
					b.WriteByte(',')
				}
				b.WriteByte('\n')
			}
			b.WriteString(indent)
			b.WriteByte('}')
		}
	default:
		b.WriteString(j.Compact())
	}

	an.writeAnnotationBlock(b, j, depth, tabSize)
}

func (an *annotator) writeAnnotationBlock(b *strings.Builder, j J, depth, tabSize int) {
	notes, ok := an.byValue[j.Compact()]
	if !ok {
		return
	}
	for _, a := range notes {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", depth*tabSize))
		b.WriteString("^ ")
		b.WriteString(strings.Repeat(" ", 2*tabSize*a.depth))
		b.WriteString(a.message)
	}
}
