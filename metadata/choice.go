package metadata

import (
	"iter"
	"slices"
	"strings"
)

// Names of the choice sets every dictionary starts with.
const (
	ColorsChoiceSet = "colors"
	UnitsChoiceSet  = "units"
)

// Choice is one legal value of a ChoiceSet.
type Choice struct {
	name           string
	displayNameKey string
}

// Name returns the value as written in model files.
func (c *Choice) Name() string { return c.name }

// DisplayNameKey returns the resource key of the display name.
func (c *Choice) DisplayNameKey() string { return c.displayNameKey }

// ChoiceSet is a named enumeration. Restriction sets built from Allowed
// children are anonymous.
type ChoiceSet struct {
	name    string
	choices []*Choice
}

func newChoiceSet(name string, choices []*Choice) *ChoiceSet {
	return &ChoiceSet{name: name, choices: choices}
}

// Name returns the set name, empty for anonymous sets.
func (s *ChoiceSet) Name() string { return s.name }

// Len returns the number of choices.
func (s *ChoiceSet) Len() int { return len(s.choices) }

// Choices iterates the choices in declaration order.
func (s *ChoiceSet) Choices() iter.Seq[*Choice] { return slices.Values(s.choices) }

// FindChoice returns the choice whose name matches case-insensitively.
func (s *ChoiceSet) FindChoice(name string) (*Choice, bool) {
	for _, c := range s.choices {
		if strings.EqualFold(c.name, name) {
			return c, true
		}
	}
	return nil, false
}

// Names returns the choice names in declaration order.
func (s *ChoiceSet) Names() []string {
	out := make([]string, len(s.choices))
	for i, c := range s.choices {
		out[i] = c.name
	}
	return out
}

func (s *ChoiceSet) lookup(name string) (string, bool) {
	c, ok := s.FindChoice(strings.TrimSpace(name))
	if !ok {
		return "", false
	}
	return c.name, true
}

var colorNames = []string{
	"black", "blue", "aqua", "fuchsia", "gray", "green", "lime", "maroon",
	"navy", "olive", "orange", "purple", "red", "silver", "teal", "white",
	"yellow",
}

var unitNames = []string{"in", "cm", "mm", "pt", "pc", "px", "em", "ex", "%"}

func builtinChoiceSet(name string, values []string) *ChoiceSet {
	choices := make([]*Choice, len(values))
	for i, v := range values {
		key := v
		if v == "%" {
			key = "percentage"
		}
		choices[i] = &Choice{name: v, displayNameKey: "Choices." + name + "." + key}
	}
	return newChoiceSet(name, choices)
}
