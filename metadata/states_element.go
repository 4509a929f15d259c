package metadata

import (
	"slices"

	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/internal/namespaces"
)

// elementState builds an element and registers it at the end tag.
type elementState struct {
	e *ElementDefn
}

func (s *elementState) rejected() bool { return s.e == nil }

func (s *elementState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	if !okName || !okKey {
		return nil
	}
	e := newElementDefn(name)
	e.displayNameKey = key
	e.extends = attr(attrs, attrExtends)
	e.abstract = attrBool(attrs, attrIsAbstract, false)
	e.hasStyle = attrBool(attrs, attrHasStyle, false)
	e.selector = attr(attrs, attrSelector)
	e.allowsUserProperties = attrBool(attrs, attrAllowsUserProperties, true)
	e.canExtend = attrBool(attrs, attrCanExtend, true)
	e.implClass = attr(attrs, attrJavaClass)
	e.since = attr(attrs, attrSince)
	e.xmlName = attr(attrs, attrXMLName)
	if required, ok := attrBoolSet(attrs, attrIsNameRequired); ok {
		e.nameOptionSet = true
		if required {
			e.nameOption = NameRequired
		}
	}
	ns, err := namespaces.Resolve(attrs.Value(attrNameSpace))
	if err != nil {
		b.errorf(metaerrors.ErrInvalidNamespace, "element %q: %v", name, err)
	} else {
		e.namespace = ns
	}
	s.e = e
	return nil
}

func (s *elementState) end(b *Builder) error {
	if s.e == nil {
		return nil
	}
	if !b.dict.elements.add(s.e.name, s.e) {
		b.errorf(metaerrors.ErrDuplicateName, "element %q is already defined", s.e.name)
		return nil
	}
	b.logger.Debug("element defined", "name", s.e.name, "extends", s.e.extends, "properties", len(s.e.properties))
	return nil
}

// propertyGroupState sets the group key of the properties it contains.
type propertyGroupState struct {
	element *ElementDefn
	key     string
}

func (s *propertyGroupState) rejected() bool { return s.key == "" }

func (s *propertyGroupState) begin(b *Builder, attrs Attributes) error {
	s.key, _ = b.require(attrs, attrDisplayNameID, metaerrors.ErrGroupNameIDRequired)
	return nil
}

func (*propertyGroupState) end(*Builder) error { return nil }

type visibilityState struct {
	element *ElementDefn
}

func (s *visibilityState) begin(b *Builder, attrs Attributes) error {
	name, ok := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	if !ok {
		return nil
	}
	s.element.visibility[name] = attr(attrs, attrVisibility)
	return nil
}

func (*visibilityState) end(*Builder) error { return nil }

type stylePropertyState struct {
	element *ElementDefn
}

func (s *stylePropertyState) begin(b *Builder, attrs Attributes) error {
	name, ok := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	if !ok {
		return nil
	}
	if slices.Contains(s.element.styleProps, name) {
		b.errorf(metaerrors.ErrDuplicateProperty, "style property %q is already listed", name)
		return nil
	}
	s.element.styleProps = append(s.element.styleProps, name)
	return nil
}

func (*stylePropertyState) end(*Builder) error { return nil }

// slotState builds a slot and adds it to its element at the end tag.
type slotState struct {
	element *ElementDefn
	s       *SlotDefn
}

func (s *slotState) rejected() bool { return s.s == nil }

func (s *slotState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	_, okCard := b.require(attrs, attrMultipleCardinality, metaerrors.ErrMultipleCardinalityRequired)
	if !okName || !okKey || !okCard {
		return nil
	}
	s.s = &SlotDefn{
		name:                name,
		displayNameKey:      key,
		multipleCardinality: attrBool(attrs, attrMultipleCardinality, true),
		managedByNamespace:  attrBool(attrs, attrIsManagedByNameSpace, true),
		selector:            attr(attrs, attrSelector),
		since:               attr(attrs, attrSince),
		xmlName:             attr(attrs, attrXMLName),
	}
	return nil
}

func (s *slotState) end(b *Builder) error {
	if s.s == nil {
		return nil
	}
	if !s.element.addSlot(s.s) {
		b.errorf(metaerrors.ErrDuplicateName, "slot %q is already defined on %q", s.s.name, s.element.name)
	}
	return nil
}

type slotTypeState struct {
	slot *SlotDefn
}

func (s *slotTypeState) begin(b *Builder, attrs Attributes) error {
	if name, ok := b.require(attrs, attrName, metaerrors.ErrNameRequired); ok {
		s.slot.typeNames = append(s.slot.typeNames, name)
	}
	return nil
}

func (*slotTypeState) end(*Builder) error { return nil }

// triggerState attaches a semantic validator reference to an element,
// property or slot.
type triggerState struct {
	triggers *[]*SemanticTriggerDefn
}

func (s *triggerState) begin(b *Builder, attrs Attributes) error {
	name, ok := b.require(attrs, attrValidator, metaerrors.ErrValidatorNameRequired)
	if !ok {
		return nil
	}
	*s.triggers = append(*s.triggers, &SemanticTriggerDefn{
		validatorName: name,
		preRequisite:  attrBool(attrs, attrPreRequisite, false),
		targetElement: attr(attrs, attrTargetElement),
	})
	return nil
}

func (*triggerState) end(*Builder) error { return nil }
