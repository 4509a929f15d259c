package metadata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jacoelho/romdict/internal/propvalue"
)

// TrimOption is a bitmask controlling how textual values are normalized.
type TrimOption uint8

const (
	// TrimNone means the kind's default rule applies.
	TrimNone TrimOption = 0
	// NoTrim keeps values verbatim.
	NoTrim TrimOption = 1
	// TrimSpace strips leading and trailing white space.
	TrimSpace TrimOption = 2
	// TrimEmptyToNull turns empty values into null.
	TrimEmptyToNull TrimOption = 4
)

// String renders the option as its semicolon separated tokens.
func (o TrimOption) String() string {
	var parts []string
	if o&NoTrim != 0 {
		parts = append(parts, "noTrim")
	}
	if o&TrimSpace != 0 {
		parts = append(parts, "trimSpace")
	}
	if o&TrimEmptyToNull != 0 {
		parts = append(parts, "trimEmptyToNull")
	}
	return strings.Join(parts, ";")
}

// DetailKind tags the variant held by a Detail.
type DetailKind uint8

const (
	// DetailNone is held by kinds that take no detail.
	DetailNone DetailKind = iota
	// DetailChoiceSet restricts a scalar or choice property to a choice set.
	DetailChoiceSet
	// DetailStructure names the structure of struct and structRef properties.
	DetailStructure
	// DetailElement names the target of an element reference.
	DetailElement
	// DetailElementTypes lists the element types an element property accepts.
	DetailElementTypes
	// DetailMethod carries the signature of a script property declared by a
	// Method tag.
	DetailMethod
)

// Detail is the kind-dependent payload of a property: a choice set, a
// structure, a target element, a list of allowed element types or a method.
type Detail struct {
	kind      DetailKind
	choices   *ChoiceSet
	structure *StructureDefn
	name      string
	names     []string
	method    *MethodInfo

	// filled by Finalize
	element  *ElementDefn
	elements []*ElementDefn
}

// Kind returns the variant tag.
func (d Detail) Kind() DetailKind { return d.kind }

// PropertyDefn defines one property of an element or one member of a
// structure.
type PropertyDefn struct {
	name           string
	displayNameKey string
	typ            *PropertyType
	subType        *PropertyType
	detail         Detail

	defaultValue any
	hasDefault   bool

	allowedChoices *ChoiceSet
	allowedUnits   *ChoiceSet
	defaultUnit    string

	valueValidator string
	trimOption     TrimOption
	groupKey       string
	since          string
	returnType     string
	context        string

	allowExpression bool
	canInherit      bool
	intrinsic       bool
	styleProperty   bool
	bidiProperty    bool
	valueRequired   bool
	runtimeSettable bool
	list            bool
	structMember    bool

	triggers []*SemanticTriggerDefn
}

func (p *PropertyDefn) Name() string               { return p.name }
func (p *PropertyDefn) DisplayNameKey() string     { return p.displayNameKey }
func (p *PropertyDefn) Type() *PropertyType        { return p.typ }
func (p *PropertyDefn) Kind() Kind                 { return p.typ.kind }
func (p *PropertyDefn) SubType() *PropertyType     { return p.subType }
func (p *PropertyDefn) Detail() Detail             { return p.detail }
func (p *PropertyDefn) AllowedChoices() *ChoiceSet { return p.allowedChoices }
func (p *PropertyDefn) AllowedUnits() *ChoiceSet   { return p.allowedUnits }
func (p *PropertyDefn) DefaultUnit() string        { return p.defaultUnit }
func (p *PropertyDefn) ValueValidator() string     { return p.valueValidator }
func (p *PropertyDefn) TrimOption() TrimOption     { return p.trimOption }
func (p *PropertyDefn) GroupKey() string           { return p.groupKey }
func (p *PropertyDefn) Since() string              { return p.since }
func (p *PropertyDefn) ReturnType() string         { return p.returnType }
func (p *PropertyDefn) Context() string            { return p.context }
func (p *PropertyDefn) AllowExpression() bool      { return p.allowExpression }
func (p *PropertyDefn) CanInherit() bool           { return p.canInherit }
func (p *PropertyDefn) IsIntrinsic() bool          { return p.intrinsic }
func (p *PropertyDefn) IsStyleProperty() bool      { return p.styleProperty }
func (p *PropertyDefn) IsBidiProperty() bool       { return p.bidiProperty }
func (p *PropertyDefn) IsValueRequired() bool      { return p.valueRequired }
func (p *PropertyDefn) IsRuntimeSettable() bool    { return p.runtimeSettable }
func (p *PropertyDefn) IsList() bool               { return p.list }
func (p *PropertyDefn) IsStructMember() bool       { return p.structMember }

// Default returns the parsed default value, if one was declared.
func (p *PropertyDefn) Default() (any, bool) { return p.defaultValue, p.hasDefault }

// Triggers returns the semantic validators attached to the property.
func (p *PropertyDefn) Triggers() []*SemanticTriggerDefn { return slices.Clone(p.triggers) }

// ChoiceSet returns the choice set of choice, color and choice-restricted
// scalar properties.
func (p *PropertyDefn) ChoiceSet() *ChoiceSet {
	if p.detail.kind == DetailChoiceSet {
		return p.detail.choices
	}
	return nil
}

// Structure returns the structure of struct and structRef properties.
func (p *PropertyDefn) Structure() *StructureDefn {
	if p.detail.kind == DetailStructure {
		return p.detail.structure
	}
	return nil
}

// StructureName returns the name of the referenced structure.
func (p *PropertyDefn) StructureName() string {
	if p.detail.kind != DetailStructure {
		return ""
	}
	if p.detail.structure != nil {
		return p.detail.structure.name
	}
	return p.detail.name
}

// TargetElement returns the name of the element an elementRef property
// (or a list of elementRef) points at.
func (p *PropertyDefn) TargetElement() string {
	if p.detail.kind == DetailElement {
		return p.detail.name
	}
	return ""
}

// TargetElementDefn returns the resolved target element after finalize.
func (p *PropertyDefn) TargetElementDefn() *ElementDefn {
	if p.detail.kind == DetailElement {
		return p.detail.element
	}
	return nil
}

// AllowedElementTypes returns the element names an element-typed property
// may contain.
func (p *PropertyDefn) AllowedElementTypes() []string {
	if p.detail.kind == DetailElementTypes {
		return slices.Clone(p.detail.names)
	}
	return nil
}

// AllowedElementDefns returns the resolved element types after finalize.
func (p *PropertyDefn) AllowedElementDefns() []*ElementDefn {
	if p.detail.kind == DetailElementTypes {
		return slices.Clone(p.detail.elements)
	}
	return nil
}

// Method returns the method signature of a script property declared by a
// Method tag.
func (p *PropertyDefn) Method() *MethodInfo {
	if p.detail.kind == DetailMethod {
		return p.detail.method
	}
	return nil
}

func (p *PropertyDefn) valueKind() Kind {
	if p.typ.kind == KindList && p.subType != nil {
		return p.subType.kind
	}
	return p.typ.kind
}

// effectiveTrim resolves TrimNone to the per-kind default.
func (p *PropertyDefn) effectiveTrim() (trimSpace, emptyToNull bool) {
	opt := p.trimOption
	if opt == TrimNone {
		if p.typ.kind == KindLiteralString {
			return false, false
		}
		return true, true
	}
	if opt&NoTrim != 0 {
		return false, false
	}
	return opt&TrimSpace != 0, opt&TrimEmptyToNull != 0
}

// parseDefault validates a default literal against the property kind and
// returns its parsed form. A false second result means the literal
// normalizes to null and no default is recorded.
func (p *PropertyDefn) parseDefault(d *Dictionary, text string) (any, bool, error) {
	kind := p.typ.kind
	switch kind {
	case KindStruct, KindStructRef, KindList, KindElement, KindContentElement, KindElementRef, KindExtends:
		return nil, false, fmt.Errorf("kind %s does not take a default value", kind)
	}
	if kind.isTextual() {
		trimSpace, emptyToNull := p.effectiveTrim()
		s, ok := propvalue.Trim(text, trimSpace, emptyToNull)
		if !ok {
			return nil, false, nil
		}
		if cs := p.ChoiceSet(); cs != nil && kind == KindString {
			name, found := cs.lookup(s)
			if !found {
				return nil, false, fmt.Errorf("%q is not a choice of %q", s, cs.name)
			}
			return name, true, nil
		}
		return s, true, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, nil
	}
	if cs := p.ChoiceSet(); cs != nil {
		if name, ok := cs.lookup(text); ok {
			return name, true, nil
		}
	}

	var (
		v   any
		err error
	)
	switch kind {
	case KindBoolean:
		v, err = propvalue.ParseBoolean(text)
	case KindDateTime:
		v, err = propvalue.ParseDateTime(text)
	case KindDate:
		v, err = propvalue.ParseDate(text)
	case KindTime:
		v, err = propvalue.ParseTime(text)
	case KindFloat:
		v, err = propvalue.ParseFloat(text)
	case KindInteger:
		v, err = propvalue.ParseInteger(text)
	case KindNumber:
		v, err = propvalue.ParseDecimal(text)
	case KindDimension:
		v, err = propvalue.ParseDimension(text, d.unitLookup())
	case KindColor:
		v, err = propvalue.ParseColor(text, d.colorLookup())
	case KindChoice:
		err = fmt.Errorf("%q is not a choice of %q", text, p.detail.choices.Name())
	default:
		err = fmt.Errorf("kind %s does not take a default value", kind)
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
