package metadata

import (
	"slices"
	"strings"

	metaerrors "github.com/jacoelho/romdict/errors"
)

// choiceTypeState collects the choices of a ChoiceType and registers the
// set at its end tag.
type choiceTypeState struct {
	name    string
	choices []*Choice
}

func (s *choiceTypeState) rejected() bool { return s.name == "" }

func (s *choiceTypeState) begin(b *Builder, attrs Attributes) error {
	s.name, _ = b.require(attrs, attrName, metaerrors.ErrNameRequired)
	return nil
}

func (s *choiceTypeState) end(b *Builder) error {
	if s.name == "" {
		return nil
	}
	set := newChoiceSet(s.name, s.choices)
	if !b.dict.choiceSets.add(s.name, set) {
		b.errorf(metaerrors.ErrDuplicateName, "choice set %q is already defined", s.name)
		return nil
	}
	b.logger.Debug("choice set defined", "name", s.name, "choices", len(s.choices))
	return nil
}

type choiceState struct {
	set *choiceTypeState
}

func (s *choiceState) begin(b *Builder, attrs Attributes) error {
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	name, okName := b.require(attrs, attrName, metaerrors.ErrXMLNameRequired)
	if !okKey || !okName {
		return nil
	}
	if slices.ContainsFunc(s.set.choices, func(c *Choice) bool { return strings.EqualFold(c.name, name) }) {
		b.errorf(metaerrors.ErrDuplicateChoiceName, "choice %q is already defined in %q", name, s.set.name)
		return nil
	}
	s.set.choices = append(s.set.choices, &Choice{name: name, displayNameKey: key})
	return nil
}

func (*choiceState) end(*Builder) error { return nil }

type styleState struct{}

func (*styleState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	if !okName || !okKey {
		return nil
	}
	if !b.dict.styles.add(name, &PredefinedStyle{name: name, displayNameKey: key}) {
		b.errorf(metaerrors.ErrDuplicateName, "predefined style %q is already defined", name)
	}
	return nil
}

func (*styleState) end(*Builder) error { return nil }

// structureState registers its structure at the end tag, once every member
// has been added.
type structureState struct {
	s *StructureDefn
}

func (s *structureState) rejected() bool { return s.s == nil }

func (s *structureState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	if !okName || !okKey {
		return nil
	}
	s.s = newStructureDefn(name)
	s.s.displayNameKey = key
	s.s.since = attr(attrs, attrSince)
	return nil
}

func (s *structureState) end(b *Builder) error {
	if s.s == nil {
		return nil
	}
	if !b.dict.structures.add(s.s.name, s.s) {
		b.errorf(metaerrors.ErrDuplicateName, "structure %q is already defined", s.s.name)
		return nil
	}
	b.logger.Debug("structure defined", "name", s.s.name, "members", len(s.s.members))
	return nil
}
