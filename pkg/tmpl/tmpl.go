// Package tmpl renders the text/template reports printed by the CLI.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// cell escapes s for use inside a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// code wraps s in a markdown code span, widening the fence when s contains
// backticks.
func code(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

func truncate(n int, s string) string {
	r := []rune(s)
	if n < 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

var funcs = template.FuncMap{
	"cell":     cell,
	"code":     code,
	"join":     strings.Join,
	"truncate": truncate,
	"plural":   plural,
	"inc":      func(i int) int { return i + 1 },
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - cell: Escape a string for a markdown table cell ("-" when empty)
//   - code: Wrap a string in a markdown code span
//   - join: Join string slice with separator (e.g., join .Names ", ")
//   - truncate: Cut a string to n runes (e.g., truncate 40 .Text)
//   - plural: Format a count with a noun (e.g., plural 2 "label")
//   - inc: Add one, for 1-based numbering
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
