// Package propvalue parses the lexical forms of property values as they
// appear in definition defaults.
package propvalue

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd"
)

// Lookup resolves a choice name case-insensitively and returns its
// canonical spelling.
type Lookup func(name string) (string, bool)

// Trim applies the trim rules of a textual property. The second result is
// false when the value normalizes to null.
func Trim(s string, trimSpace, emptyToNull bool) (string, bool) {
	if trimSpace {
		s = strings.TrimSpace(s)
	}
	if emptyToNull && s == "" {
		return "", false
	}
	return s, true
}

// ParseBoolean accepts "true" and "false" in any case.
func ParseBoolean(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// ParseInteger parses a base-10 signed integer.
func ParseInteger(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return v, nil
}

// ParseFloat parses a 64-bit floating point number.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q: %w", s, err)
	}
	return v, nil
}

// ParseDecimal parses an arbitrary-precision decimal number.
func ParseDecimal(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("invalid number %q: not finite", s)
	}
	return d, nil
}

var (
	dateTimeLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02 15:04",
		"2006-01-02",
	}
	dateLayouts = []string{"2006-01-02"}
	timeLayouts = []string{"15:04:05", "15:04"}
)

// ParseDateTime parses a date-time in one of the accepted layouts.
func ParseDateTime(s string) (time.Time, error) {
	return parseTime(s, dateTimeLayouts, "date-time")
}

// ParseDate parses a calendar date.
func ParseDate(s string) (time.Time, error) {
	return parseTime(s, dateLayouts, "date")
}

// ParseTime parses a time of day.
func ParseTime(s string) (time.Time, error) {
	return parseTime(s, timeLayouts, "time")
}

func parseTime(s string, layouts []string, what string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s %q", what, s)
}
