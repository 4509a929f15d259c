// Package dump renders a dictionary as YAML for inspection.
package dump

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jacoelho/romdict/metadata"
)

// Document is the YAML shape of a dictionary.
type Document struct {
	ChoiceSets         []ChoiceSet `yaml:"choice_sets,omitempty"`
	Structures         []Structure `yaml:"structures,omitempty"`
	Elements           []Element   `yaml:"elements,omitempty"`
	Classes            []Class     `yaml:"classes,omitempty"`
	Styles             []string    `yaml:"styles,omitempty"`
	ValueValidators    []string    `yaml:"value_validators,omitempty"`
	SemanticValidators []string    `yaml:"semantic_validators,omitempty"`
}

// ChoiceSet lists the choice names of a set in declaration order.
type ChoiceSet struct {
	Name    string   `yaml:"name"`
	Choices []string `yaml:"choices"`
}

// Structure is a structure with its members.
type Structure struct {
	Name    string     `yaml:"name"`
	Members []Property `yaml:"members,omitempty"`
}

// Element is an element with its local properties and slots.
type Element struct {
	Name       string     `yaml:"name"`
	Extends    string     `yaml:"extends,omitempty"`
	Abstract   bool       `yaml:"abstract,omitempty"`
	Namespace  string     `yaml:"namespace"`
	Required   bool       `yaml:"name_required,omitempty"`
	Properties []Property `yaml:"properties,omitempty"`
	Slots      []Slot     `yaml:"slots,omitempty"`
	Style      []string   `yaml:"style_properties,omitempty"`
}

// Property is a property or structure member. Detail holds the name of the
// choice set, structure or target element, or a method signature.
type Property struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	SubType  string   `yaml:"sub_type,omitempty"`
	List     bool     `yaml:"list,omitempty"`
	Detail   string   `yaml:"detail,omitempty"`
	Types    []string `yaml:"types,omitempty"`
	Default  string   `yaml:"default,omitempty"`
	Allowed  []string `yaml:"allowed,omitempty"`
	Units    []string `yaml:"allowed_units,omitempty"`
	Trim     string   `yaml:"trim,omitempty"`
	Validate string   `yaml:"validator,omitempty"`
}

// Slot is a slot with the element type names it accepts.
type Slot struct {
	Name     string   `yaml:"name"`
	Multiple bool     `yaml:"multiple"`
	Types    []string `yaml:"types"`
}

// Class is a scripting class; Methods are rendered as signatures.
type Class struct {
	Name    string   `yaml:"name"`
	Native  bool     `yaml:"native,omitempty"`
	Members []string `yaml:"members,omitempty"`
	Methods []string `yaml:"methods,omitempty"`
}

// Build converts d into its YAML document shape.
func Build(d *metadata.Dictionary) Document {
	var doc Document
	for cs := range d.ChoiceSets() {
		doc.ChoiceSets = append(doc.ChoiceSets, ChoiceSet{Name: cs.Name(), Choices: cs.Names()})
	}
	for s := range d.Structures() {
		st := Structure{Name: s.Name()}
		for m := range s.Members() {
			st.Members = append(st.Members, property(m))
		}
		doc.Structures = append(doc.Structures, st)
	}
	for e := range d.Elements() {
		doc.Elements = append(doc.Elements, element(e))
	}
	for c := range d.Classes() {
		cl := Class{Name: c.Name()}
		cl.Native, _ = c.Native()
		for m := range c.Members() {
			cl.Members = append(cl.Members, m.Name())
		}
		for m := range c.Methods() {
			cl.Methods = append(cl.Methods, signature(m))
		}
		doc.Classes = append(doc.Classes, cl)
	}
	for s := range d.PredefinedStyles() {
		doc.Styles = append(doc.Styles, s.Name())
	}
	for v := range d.ValueValidators() {
		doc.ValueValidators = append(doc.ValueValidators, v.Name())
	}
	for v := range d.SemanticValidators() {
		doc.SemanticValidators = append(doc.SemanticValidators, v.Name())
	}
	return doc
}

// Write encodes d as YAML to w.
func Write(w io.Writer, d *metadata.Dictionary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Build(d)); err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}
	return nil
}

func element(e *metadata.ElementDefn) Element {
	out := Element{
		Name:      e.Name(),
		Extends:   e.Extends(),
		Abstract:  e.IsAbstract(),
		Namespace: e.NamespaceName(),
		Required:  e.NameOption() == metadata.NameRequired,
		Style:     e.StyleProperties(),
	}
	for p := range e.LocalProperties() {
		out.Properties = append(out.Properties, property(p))
	}
	for s := range e.Slots() {
		out.Slots = append(out.Slots, Slot{
			Name:     s.Name(),
			Multiple: s.IsMultipleCardinality(),
			Types:    s.TypeNames(),
		})
	}
	return out
}

func property(p *metadata.PropertyDefn) Property {
	out := Property{
		Name:     p.Name(),
		Type:     p.Type().Name(),
		List:     p.IsList(),
		Types:    p.AllowedElementTypes(),
		Validate: p.ValueValidator(),
	}
	if st := p.SubType(); st != nil {
		out.SubType = st.Name()
	}
	switch p.Detail().Kind() {
	case metadata.DetailChoiceSet:
		out.Detail = p.ChoiceSet().Name()
	case metadata.DetailStructure:
		out.Detail = p.StructureName()
	case metadata.DetailElement:
		out.Detail = p.TargetElement()
	case metadata.DetailMethod:
		out.Detail = signature(p.Method())
	}
	if v, ok := p.Default(); ok {
		out.Default = formatValue(v)
	}
	if cs := p.AllowedChoices(); cs != nil {
		out.Allowed = cs.Names()
	}
	if cs := p.AllowedUnits(); cs != nil {
		out.Units = cs.Names()
	}
	if t := p.TrimOption(); t != metadata.TrimNone {
		out.Trim = t.String()
	}
	return out
}

func signature(m *metadata.MethodInfo) string {
	s := m.Name() + "("
	for i, a := range m.Arguments() {
		if i > 0 {
			s += ", "
		}
		s += a.Name()
		if a.Type() != "" {
			s += " " + a.Type()
		}
	}
	s += ")"
	if m.ReturnType() != "" {
		s += " " + m.ReturnType()
	}
	return s
}

func formatValue(v any) string {
	switch v := v.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
