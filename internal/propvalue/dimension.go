package propvalue

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension is a measure with an optional unit. An empty unit means the
// property's default unit applies.
type Dimension struct {
	Measure float64
	Units   string
}

// MeasureValue returns the numeric part.
func (d Dimension) MeasureValue() float64 { return d.Measure }

// String formats the dimension in its lexical form.
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Measure, 'f', -1, 64) + d.Units
}

// ParseDimension parses "<number><unit>", for example "10pt", "1.5 in" or
// "50%". The unit is resolved through units; a nil lookup accepts any unit.
func ParseDimension(s string, units Lookup) (Dimension, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimension{}, fmt.Errorf("invalid dimension: empty")
	}
	split := len(s)
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' && i > 0 && isDigit(s[i-1]) && i+1 < len(s) && isExponentTail(s[i+1]) {
			continue
		}
		split = i
		break
	}
	number, unit := s[:split], strings.TrimSpace(s[split:])
	if number == "" {
		return Dimension{}, fmt.Errorf("invalid dimension %q: missing measure", s)
	}
	measure, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("invalid dimension %q: %w", s, err)
	}
	if unit != "" && units != nil {
		canonical, ok := units(unit)
		if !ok {
			return Dimension{}, fmt.Errorf("invalid dimension %q: unknown unit %q", s, unit)
		}
		unit = canonical
	}
	return Dimension{Measure: measure, Units: unit}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isExponentTail(b byte) bool { return isDigit(b) || b == '-' || b == '+' }
