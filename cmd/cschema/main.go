// Command cschema reads a concise schema and a JSON document from stdin and
// reports whether the document matches, writing an annotated error report
// to stdout on mismatch.
//
// Usage:
//
//	cschema < input
//
// input is the schema text, a blank line, then the JSON text. Exit code 0
// on match, non-zero otherwise.
package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gridmark/cschema"
)

var errNoSeparator = errors.New("input must contain a schema, a blank line, then a JSON document")

var (
	schemaOnly = flag.Bool("schema-only", false, "print the parsed schema's concise re-rendering and exit")
	jsonOnly   = flag.Bool("json-only", false, "print the parsed JSON's pretty-print and exit")
	tabSize    = flag.Int("tab-size", 2, "indent width for pretty-printed output")
)

func main() {
	flag.Parse()

	schemaText, jsonText, err := readInput(os.Stdin)
	if err != nil {
		log.Fatalf("cschema: failed to read stdin: %v", err)
	}

	schema, err := cschema.ParseSchema(schemaText)
	if err != nil {
		log.Fatalf("cschema: schema parse error: %v", err)
	}
	if *schemaOnly {
		os.Stdout.WriteString(schema.Render())
		os.Stdout.WriteString("\n")
		return
	}

	value, err := cschema.ParseJSON(jsonText)
	if err != nil {
		log.Fatalf("cschema: json parse error: %v", err)
	}
	if *jsonOnly {
		os.Stdout.WriteString(value.Pretty(*tabSize))
		os.Stdout.WriteString("\n")
		return
	}

	result := cschema.Match(schema, value)
	if result == nil {
		os.Stdout.WriteString("match\n")
		return
	}
	os.Stdout.WriteString(cschema.PrettyWordyPrint(value, result, *tabSize))
	os.Stdout.WriteString("\n")
	os.Exit(1)
}

// readInput splits stdin into a schema section and a JSON section, separated
// by the first blank line.
func readInput(r io.Reader) (schemaText, jsonText string, err error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(string(data), "\n\n", 2)
	if len(parts) != 2 {
		return "", "", errNoSeparator
	}
	return parts[0], parts[1], nil
}
