package metadata

import (
	"slices"
	"strings"

	metaerrors "github.com/jacoelho/romdict/errors"
)

// propertyState builds an element property or a structure member. The
// property is added to its owner at the end tag, after its Default,
// Allowed and Type children have been applied.
type propertyState struct {
	element   *ElementDefn
	structure *StructureDefn
	group     string

	p     *PropertyDefn
	types []string
}

func (s *propertyState) rejected() bool { return s.p == nil }

func (s *propertyState) begin(b *Builder, attrs Attributes) error {
	p, err := b.newProperty(attrs, s.element, s.structure != nil)
	if err != nil || p == nil {
		return err
	}
	p.groupKey = s.group
	s.p = p
	return nil
}

func (s *propertyState) end(b *Builder) error {
	p := s.p
	if p == nil {
		return nil
	}
	switch {
	case p.typ.kind.IsElementType():
		p.detail = Detail{kind: DetailElementTypes, names: s.types}
	case len(s.types) > 0:
		b.errorf(metaerrors.ErrInvalidType, "property %q of type %s cannot list element types", p.name, p.typ.name)
	}

	if s.structure != nil {
		if !s.structure.addMember(p) {
			b.errorf(metaerrors.ErrDuplicateProperty, "member %q is already defined on %q", p.name, s.structure.name)
		}
		return nil
	}
	if !s.element.addProperty(p) {
		b.errorf(metaerrors.ErrDuplicateProperty, "property %q is already defined on %q", p.name, s.element.name)
	}
	return nil
}

type defaultState struct {
	textBuffer
	prop *propertyState
}

func (*defaultState) begin(*Builder, Attributes) error { return nil }

func (s *defaultState) end(b *Builder) error {
	p := s.prop.p
	v, ok, err := p.parseDefault(b.dict, s.text())
	if err != nil {
		b.errorf(metaerrors.ErrInvalidDefault, "default of %q: %v", p.name, err)
		return nil
	}
	p.defaultValue, p.hasDefault = v, ok
	return nil
}

// allowedState handles Allowed and AllowedUnits: a comma separated subset
// of the choices or units the property may take. A single unresolved token
// discards the whole restriction. Allowed always restricts allowedChoices,
// resolving tokens against the units of a dimension property; AllowedUnits
// restricts allowedUnits.
type allowedState struct {
	textBuffer
	prop  *propertyState
	units bool
}

func (*allowedState) begin(*Builder, Attributes) error { return nil }

func (s *allowedState) end(b *Builder) error {
	p := s.prop.p
	units, _ := b.dict.choiceSets.get(UnitsChoiceSet)
	var source *ChoiceSet
	switch {
	case s.units && p.valueKind() == KindDimension:
		source = units
	case !s.units && p.typ.kind == KindDimension:
		source = units
	case !s.units && p.typ.kind == KindChoice:
		source = p.detail.choices
	default:
		tag := tagAllowed
		if s.units {
			tag = tagAllowedUnits
		}
		b.errorf(metaerrors.ErrRestrictionNotAllowed, "%s is not allowed on %s property %q", tag, p.typ.name, p.name)
		return nil
	}

	text := strings.TrimSpace(s.text())
	if text == "" {
		return nil
	}
	var chosen []*Choice
	for token := range strings.SplitSeq(text, ",") {
		token = strings.TrimSpace(token)
		c, ok := source.FindChoice(token)
		if !ok {
			b.errorf(metaerrors.ErrInvalidRestriction, "%q is not a choice of %q", token, source.name)
			return nil
		}
		if !slices.Contains(chosen, c) {
			chosen = append(chosen, c)
		}
	}
	restriction := newChoiceSet("", chosen)
	if s.units {
		p.allowedUnits = restriction
	} else {
		p.allowedChoices = restriction
	}
	return nil
}

type defaultUnitState struct {
	textBuffer
	prop *propertyState
}

func (*defaultUnitState) begin(*Builder, Attributes) error { return nil }

func (s *defaultUnitState) end(b *Builder) error {
	p := s.prop.p
	if p.typ.kind != KindDimension {
		b.errorf(metaerrors.ErrDefaultUnitNotAllowed, "DefaultUnit is not allowed on %s property %q", p.typ.name, p.name)
		return nil
	}
	text := strings.TrimSpace(s.text())
	if text == "" {
		return nil
	}
	unit, ok := b.dict.unitLookup()(text)
	if !ok {
		b.errorf(metaerrors.ErrInvalidRestriction, "%q is not a unit", text)
		return nil
	}
	p.defaultUnit = unit
	return nil
}

// propertyTypeState names one element type an element-typed property may
// contain.
type propertyTypeState struct {
	prop *propertyState
}

func (s *propertyTypeState) begin(b *Builder, attrs Attributes) error {
	if name, ok := b.require(attrs, attrName, metaerrors.ErrNameRequired); ok {
		s.prop.types = append(s.prop.types, name)
	}
	return nil
}

func (*propertyTypeState) end(*Builder) error { return nil }
