package validator

import (
	"fmt"
	"strings"
)

var builtinValues = map[string]ValueFactory{
	"NonNegativeValidator": func(name string) Value { return signValidator{name: name, allowZero: true} },
	"PositiveValidator":    func(name string) Value { return signValidator{name: name} },
	"NotBlankValidator":    func(name string) Value { return notBlankValidator{name: name} },
}

var builtinSemantics = map[string]SemanticFactory{
	"NameRequiredValidator": func(name string, modules []string) Semantic {
		return requiredPropertyValidator{name: name, modules: modules, property: "name"}
	},
	"DataSetRequiredValidator": func(name string, modules []string) Semantic {
		return requiredPropertyValidator{name: name, modules: modules, property: "dataSet"}
	},
}

// signer is implemented by decimal values.
type signer interface {
	Sign() int
}

// measured is implemented by dimension values.
type measured interface {
	MeasureValue() float64
}

type signValidator struct {
	name      string
	allowZero bool
}

func (v signValidator) Name() string { return v.name }

func (v signValidator) Validate(value any) error {
	sign, ok := signOf(value)
	if !ok {
		return fmt.Errorf("%s: unsupported value %T", v.name, value)
	}
	if sign < 0 || (sign == 0 && !v.allowZero) {
		if v.allowZero {
			return fmt.Errorf("%s: value %v must not be negative", v.name, value)
		}
		return fmt.Errorf("%s: value %v must be positive", v.name, value)
	}
	return nil
}

func signOf(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return cmpZero(float64(v)), true
	case int64:
		return cmpZero(float64(v)), true
	case float64:
		return cmpZero(v), true
	case signer:
		return v.Sign(), true
	case measured:
		return cmpZero(v.MeasureValue()), true
	}
	return 0, false
}

func cmpZero(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

type notBlankValidator struct {
	name string
}

func (v notBlankValidator) Name() string { return v.name }

func (v notBlankValidator) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s: unsupported value %T", v.name, value)
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s: value must not be blank", v.name)
	}
	return nil
}

type requiredPropertyValidator struct {
	name     string
	modules  []string
	property string
}

func (v requiredPropertyValidator) Name() string      { return v.name }
func (v requiredPropertyValidator) Modules() []string { return v.modules }

func (v requiredPropertyValidator) Validate(t Target) []error {
	value, ok := t.Property(v.property)
	if ok {
		if s, isString := value.(string); !isString || strings.TrimSpace(s) != "" {
			return nil
		}
	}
	return []error{fmt.Errorf("%s: %s requires property %q", v.name, t.DefinitionName(), v.property)}
}
