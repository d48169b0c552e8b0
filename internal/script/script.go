// Package script replays a list of store operations read from YAML or JSON.
//
// A script looks like:
//
//	steps:
//	  - op: add-label
//	    name: exon
//	    color: "#f00"
//	  - op: add-annotation
//	    label: exon        # name or zero-based index
//	    from: 2
//	    to: 5
//	  - op: click
//	    position: 3        # 1-based, like every position in a script
package script

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/colonyops/seqmark/internal/core/validate"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Op names a store operation.
type Op string

// Supported operations. Keep list sorted A-Z.
const (
	OpAddAnnotation    Op = "add-annotation"
	OpAddLabel         Op = "add-label"
	OpClearSelection   Op = "clear-selection"
	OpClick            Op = "click"
	OpFromBound        Op = "from-bound"
	OpRemoveLabel      Op = "remove-label"
	OpSelectAnnotation Op = "select-annotation"
	OpToBound          Op = "to-bound"
	OpToggleLabel      Op = "toggle-label"
	OpUpdateAnnotation Op = "update-annotation"
	OpUpdateLabel      Op = "update-label"
)

// Ops lists every supported operation.
var Ops = []Op{
	OpAddAnnotation,
	OpAddLabel,
	OpClearSelection,
	OpClick,
	OpFromBound,
	OpRemoveLabel,
	OpSelectAnnotation,
	OpToBound,
	OpToggleLabel,
	OpUpdateAnnotation,
	OpUpdateLabel,
}

// Script is an ordered list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation and its arguments. Which fields apply depends on Op.
type Step struct {
	Op         Op       `yaml:"op"`
	Label      LabelRef `yaml:"label"`
	Name       string   `yaml:"name"`
	Color      string   `yaml:"color"`
	Active     *bool    `yaml:"active"`
	Annotation *int     `yaml:"annotation"`
	From       int      `yaml:"from"`
	To         int      `yaml:"to"`
	Reverse    bool     `yaml:"reverse"`
	Note       string   `yaml:"note"`
	Position   int      `yaml:"position"`
}

// LabelRef addresses a label by zero-based index or by name.
type LabelRef struct {
	Index int
	Name  string
	Set   bool
}

// ByIndex returns a reference to label i.
func ByIndex(i int) LabelRef { return LabelRef{Index: i, Set: true} }

// ByName returns a reference to the first label called name.
func ByName(name string) LabelRef { return LabelRef{Name: name, Set: true} }

// UnmarshalYAML accepts an integer index or a string name.
func (r *LabelRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: label must be an index or a name", node.Line)
	}
	var i int
	if node.Tag == "!!int" && node.Decode(&i) == nil {
		*r = ByIndex(i)
		return nil
	}
	*r = ByName(node.Value)
	return nil
}

// MarshalYAML writes the index or the name.
func (r LabelRef) MarshalYAML() (any, error) {
	if !r.Set {
		return nil, nil
	}
	if r.Name != "" {
		return r.Name, nil
	}
	return r.Index, nil
}

func (r LabelRef) String() string {
	switch {
	case !r.Set:
		return "<none>"
	case r.Name != "":
		return fmt.Sprintf("%q", r.Name)
	default:
		return fmt.Sprint(r.Index)
	}
}

// Parse decodes a script from YAML or JSON.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// Validate checks every step for a known op and the arguments that op needs.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return criterio.NewFieldErrors("steps", fmt.Errorf("array is empty"))
	}

	var errs []error
	for i, step := range s.Steps {
		errs = append(errs, step.validate(fmt.Sprintf("steps[%d]", i)))
	}
	return criterio.ValidateStruct(errs...)
}

func (st Step) validate(field string) error {
	var errs criterio.FieldErrorsBuilder

	if !slices.Contains(Ops, st.Op) {
		msg := fmt.Errorf("unknown op %q", st.Op)
		if s := Suggest(string(st.Op), opNames()); s != "" {
			msg = fmt.Errorf("unknown op %q, did you mean %q?", st.Op, s)
		}
		return criterio.NewFieldErrors(field+".op", msg)
	}

	needsLabel := func() {
		if !st.Label.Set {
			errs = errs.Append(field+".label", fmt.Errorf("required for %s", st.Op))
			return
		}
		if st.Label.Name == "" && st.Label.Index < 0 {
			errs = errs.Append(field+".label", fmt.Errorf("index must not be negative"))
		}
	}
	needsRange := func() {
		if err := validate.Position(st.From); err != nil {
			errs = errs.Append(field+".from", err)
		}
		if err := validate.Position(st.To); err != nil {
			errs = errs.Append(field+".to", err)
		}
	}
	needsPosition := func() {
		if err := validate.Position(st.Position); err != nil {
			errs = errs.Append(field+".position", err)
		}
	}
	checkColor := func(required bool) {
		if st.Color == "" && !required {
			return
		}
		if err := validate.Color(st.Color); err != nil {
			errs = errs.Append(field+".color", err)
		}
	}

	switch st.Op {
	case OpAddLabel:
		if err := validate.LabelName(st.Name); err != nil {
			errs = errs.Append(field+".name", err)
		}
		checkColor(true)
	case OpUpdateLabel:
		needsLabel()
		checkColor(false)
	case OpRemoveLabel, OpToggleLabel:
		needsLabel()
	case OpAddAnnotation, OpSelectAnnotation:
		needsLabel()
		needsRange()
	case OpUpdateAnnotation:
		needsLabel()
		needsRange()
		if st.Annotation == nil {
			errs = errs.Append(field+".annotation", fmt.Errorf("required for %s", st.Op))
		} else if *st.Annotation < 0 {
			errs = errs.Append(field+".annotation", fmt.Errorf("index must not be negative"))
		}
	case OpClick, OpFromBound, OpToBound:
		needsPosition()
	case OpClearSelection:
	}

	return errs.ToError()
}

func opNames() []string {
	names := make([]string, len(Ops))
	for i, op := range Ops {
		names[i] = string(op)
	}
	return names
}
