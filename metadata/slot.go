package metadata

import "slices"

// SlotDefn is a named container within an element holding child elements
// of the listed types.
type SlotDefn struct {
	name                string
	displayNameKey      string
	multipleCardinality bool
	managedByNamespace  bool
	selector            string
	since               string
	xmlName             string
	typeNames           []string
	triggers            []*SemanticTriggerDefn

	types []*ElementDefn
}

func (s *SlotDefn) Name() string                { return s.name }
func (s *SlotDefn) DisplayNameKey() string      { return s.displayNameKey }
func (s *SlotDefn) IsMultipleCardinality() bool { return s.multipleCardinality }
func (s *SlotDefn) IsManagedByNamespace() bool  { return s.managedByNamespace }
func (s *SlotDefn) Selector() string            { return s.selector }
func (s *SlotDefn) Since() string               { return s.since }
func (s *SlotDefn) XMLName() string             { return s.xmlName }

// TypeNames returns the allowed child element names.
func (s *SlotDefn) TypeNames() []string { return slices.Clone(s.typeNames) }

// Types returns the allowed child elements resolved by finalize.
func (s *SlotDefn) Types() []*ElementDefn { return slices.Clone(s.types) }

// Triggers returns the semantic validators attached to the slot.
func (s *SlotDefn) Triggers() []*SemanticTriggerDefn { return slices.Clone(s.triggers) }

// CanContain reports whether the slot accepts instances of e, including
// elements derived from an allowed type.
func (s *SlotDefn) CanContain(e *ElementDefn) bool {
	for _, t := range s.types {
		if e.IsKindOf(t) {
			return true
		}
	}
	return false
}
