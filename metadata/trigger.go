package metadata

import "github.com/jacoelho/romdict/validator"

// SemanticTriggerDefn attaches a semantic validator, by name, to an
// element, a property or a slot.
type SemanticTriggerDefn struct {
	validatorName string
	preRequisite  bool
	targetElement string

	validator validator.Semantic
}

func (t *SemanticTriggerDefn) ValidatorName() string { return t.validatorName }
func (t *SemanticTriggerDefn) PreRequisite() bool    { return t.preRequisite }
func (t *SemanticTriggerDefn) TargetElement() string { return t.targetElement }

// Validator returns the resolved validator after finalize.
func (t *SemanticTriggerDefn) Validator() validator.Semantic { return t.validator }
