package cschema

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/kaptinlin/jsonpointer"
)

// AsJSONSchema builds a standard JSON-Schema (2020-12-flavored) document
// mirroring s (spec.md §4.5). Grounded on the teacher's own keyword
// vocabulary (schema.go's field names double as the JSON-Schema keywords
// it reads back), run in reverse: instead of decoding these keywords into a
// Go struct, this exporter writes them from the closed 15-variant `S`.
//
// References are flattened into a single root-level "definitions" object
// keyed by name (disambiguated on collision), regardless of which lexical
// scope originally owned the `#name#` clause — standard JSON Schema has no
// notion of nested, lexically-scoped definitions, so this is the one place
// the export is deliberately lossy relative to the DSL's own scoping model.
func AsJSONSchema(s *S) J {
	ex := &exporter{
		names:    make(map[*S]string),
		target:   make(map[string]*S),
		exported: make(map[string]J),
	}
	root := ex.exportNode(s)
	for len(ex.pending) > 0 {
		t := ex.pending[0]
		ex.pending = ex.pending[1:]
		name := ex.names[t]
		ex.exported[name] = ex.exportNode(t)
	}
	if len(ex.order) > 0 {
		members := make([]Member, len(ex.order))
		for i, name := range ex.order {
			members[i] = Member{Key: name, Value: ex.exported[name]}
		}
		root = addMember(root, "definitions", NewObject(members...))
	}
	return root
}

type exporter struct {
	names    map[*S]string   // resolved definition target -> assigned name
	target   map[string]*S   // assigned name -> target (for collision checks)
	exported map[string]J    // assigned name -> its exported document
	order    []string        // discovery order
	pending  []*S            // targets named but not yet exported
}

// nameFor assigns (or reuses) the "definitions" key for target, using hint
// (the reference's original @name) when it is not already taken by a
// different target.
func (ex *exporter) nameFor(target *S, hint string) string {
	if n, ok := ex.names[target]; ok {
		return n
	}
	if hint == "" {
		hint = "def"
	}
	name := hint
	for i := 2; ; i++ {
		if _, taken := ex.target[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d", hint, i)
	}
	ex.names[target] = name
	ex.target[name] = target
	ex.order = append(ex.order, name)
	ex.pending = append(ex.pending, target)
	return name
}

var combinatorKeyword = map[SKind]string{
	SAllOf: "allOf",
	SAnyOf: "anyOf",
	SOneOf: "oneOf",
}

func (ex *exporter) exportNode(s *S) J {
	if s.Kind() == SReference {
		name := ex.nameFor(s.resolved, s.refName)
		return NewObject(Member{Key: "$ref", Value: NewString("#" + jsonpointer.Format("definitions", name))})
	}

	var members []Member
	switch s.Kind() {
	case SAny:
		// no "type" restriction
	case SNull:
		members = append(members, Member{Key: "type", Value: NewString("null")})
	case SBool:
		members = append(members, Member{Key: "type", Value: NewString("boolean")})
	case SInt:
		members = append(members, Member{Key: "type", Value: NewString("integer")})
		if s.intMin != nil {
			members = append(members, Member{Key: "minimum", Value: NewInt(*s.intMin)})
		}
		if s.intMax != nil {
			members = append(members, Member{Key: "maximum", Value: NewInt(*s.intMax)})
		}
	case SDouble:
		members = append(members, Member{Key: "type", Value: NewString("number")})
		if s.doubleMin != nil {
			members = append(members, Member{Key: "minimum", Value: NewDouble(*s.doubleMin)})
		}
		if s.doubleMax != nil {
			members = append(members, Member{Key: "maximum", Value: NewDouble(*s.doubleMax)})
		}
	case SString:
		members = append(members, Member{Key: "type", Value: NewString("string")})
		if s.pattern != nil {
			members = append(members, Member{Key: "pattern", Value: NewString("^" + *s.pattern + "$")})
		}
		if s.minLen != nil {
			members = append(members, Member{Key: "minLength", Value: NewInt(int64(*s.minLen))})
		}
		if s.maxLen != nil {
			members = append(members, Member{Key: "maxLength", Value: NewInt(int64(*s.maxLen))})
		}
	case SEnum:
		members = append(members, Member{Key: "enum", Value: NewArray(s.enumValues...)})
	case SArray:
		members = append(members, Member{Key: "type", Value: NewString("array")})
		members = append(members, Member{Key: "items", Value: ex.exportNode(s.elem)})
		if s.arrMin != nil {
			members = append(members, Member{Key: "minItems", Value: NewInt(int64(*s.arrMin))})
		}
		if s.arrMax != nil {
			members = append(members, Member{Key: "maxItems", Value: NewInt(int64(*s.arrMax))})
		}
		if s.unique {
			members = append(members, Member{Key: "uniqueItems", Value: NewBool(true)})
		}
	case STuple:
		items := make([]J, len(s.tupleElems))
		for i, e := range s.tupleElems {
			items[i] = ex.exportNode(e)
		}
		members = append(members,
			Member{Key: "type", Value: NewString("array")},
			Member{Key: "items", Value: NewArray(items...)},
			Member{Key: "minItems", Value: NewInt(int64(len(items)))},
			Member{Key: "maxItems", Value: NewInt(int64(len(items)))},
		)
	case SObject:
		members = append(members, Member{Key: "type", Value: NewString("object")})
		if len(s.props) > 0 {
			propMembers := make([]Member, 0, len(s.props))
			var required []J
			for _, p := range s.props {
				propMembers = append(propMembers, Member{Key: p.Name, Value: ex.exportNode(p.Schema)})
				if !p.Optional {
					required = append(required, NewString(p.Name))
				}
			}
			members = append(members, Member{Key: "properties", Value: NewObject(propMembers...)})
			if len(required) > 0 {
				members = append(members, Member{Key: "required", Value: NewArray(required...)})
			}
		}
		if len(s.patternProps) > 0 {
			ppMembers := make([]Member, len(s.patternProps))
			for i, pp := range s.patternProps {
				ppMembers[i] = Member{Key: "^" + pp.Pattern + "$", Value: ex.exportNode(pp.Schema)}
			}
			members = append(members, Member{Key: "patternProperties", Value: NewObject(ppMembers...)})
		}
		members = append(members, Member{Key: "additionalProperties", Value: NewBool(s.extensible)})
	case SAllOf, SAnyOf, SOneOf:
		subs := make([]J, len(s.subs))
		for i, sub := range s.subs {
			subs[i] = ex.exportNode(sub)
		}
		members = append(members, Member{Key: combinatorKeyword[s.Kind()], Value: NewArray(subs...)})
	case SNot:
		members = append(members, Member{Key: "not", Value: ex.exportNode(s.inner)})
	}

	if len(s.docstrings) > 0 {
		members = append(members, Member{Key: "description", Value: NewString(strings.Join(s.docstrings, "\n\n"))})
	}
	return NewObject(members...)
}

func addMember(obj J, key string, value J) J {
	existing, _ := obj.AsObject()
	out := make([]Member, 0, len(existing)+1)
	out = append(out, existing...)
	out = append(out, Member{Key: key, Value: value})
	return NewObject(out...)
}

// toNative converts j into the plain any (map[string]any / []any / ...)
// shape both goccy/go-json and goccy/go-yaml expect to marshal, since J
// itself carries no struct tags for either library to read.
func toNative(j J) any {
	switch j.Kind() {
	case KindArray:
		arr, _ := j.AsArray()
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = toNative(e)
		}
		return out
	case KindBoolean:
		b, _ := j.AsBool()
		return b
	case KindInteger:
		i, _ := j.AsInt()
		return i
	case KindNull:
		return nil
	case KindObject:
		members, _ := j.AsObject()
		out := make(map[string]any, len(members))
		for _, m := range members {
			out[m.Key] = toNative(m.Value)
		}
		return out
	case KindDouble:
		d, _ := j.AsDouble()
		return d
	case KindString:
		s, _ := j.AsString()
		return s
	default:
		return nil
	}
}

// ExportJSON marshals s's JSON-Schema export (AsJSONSchema) as canonical
// JSON bytes. Grounded on the teacher's compiler.go jsonEncoder
// (goccy/go-json, its go.mod direct dependency); the teacher only ever
// decodes schema source with it, this module additionally uses it on the
// encode side since the DSL has no native JSON-Schema serialization of its
// own (spec.md §6: "Render schema ... as standard JSON-Schema document").
func (s *S) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(toNative(AsJSONSchema(s)), "", "  ")
}

// ExportYAML marshals s's JSON-Schema export as YAML. Grounded on the
// teacher's use of goccy/go-yaml for decoding content-type "application/yaml"
// values (compiler.go); repurposed here for the encode direction, since this
// DSL has no content-type keyword to decode against (SPEC_FULL.md §C).
func (s *S) ExportYAML() ([]byte, error) {
	return yaml.Marshal(toNative(AsJSONSchema(s)))
}
