package metadata

import (
	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/validator"
)

type validatorsState struct{}

func (*validatorsState) begin(*Builder, Attributes) error { return nil }
func (*validatorsState) end(*Builder) error               { return nil }

// valueValidatorState resolves a value validator class through the
// builder's registry and registers the instance under its name.
type valueValidatorState struct{}

func (*valueValidatorState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrValidatorNameRequired)
	class, okClass := b.require(attrs, attrClass, metaerrors.ErrClassNameRequired)
	if !okName || !okClass {
		return nil
	}
	v, err := b.validators.NewValue(class, name)
	if err != nil {
		b.errorf(metaerrors.ErrInvalidValidator, "value validator %q: %v", name, err)
		return nil
	}
	if !b.dict.valueValidators.add(name, v) {
		b.errorf(metaerrors.ErrDuplicateName, "value validator %q is already defined", name)
	}
	return nil
}

func (*valueValidatorState) end(*Builder) error { return nil }

type semanticValidatorState struct{}

func (*semanticValidatorState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrValidatorNameRequired)
	class, okClass := b.require(attrs, attrClass, metaerrors.ErrClassNameRequired)
	if !okName || !okClass {
		return nil
	}
	v, err := b.validators.NewSemantic(class, name, validator.ParseModules(attrs.Value(attrModules)))
	if err != nil {
		b.errorf(metaerrors.ErrInvalidValidator, "semantic validator %q: %v", name, err)
		return nil
	}
	if !b.dict.semanticValidators.add(name, v) {
		b.errorf(metaerrors.ErrDuplicateName, "semantic validator %q is already defined", name)
	}
	return nil
}

func (*semanticValidatorState) end(*Builder) error { return nil }
