package metadata

import (
	"iter"
	"slices"

	"github.com/jacoelho/romdict/internal/namespaces"
)

// NameOption says whether instances of an element carry a name.
type NameOption uint8

const (
	NameOptional NameOption = iota
	NameRequired
)

// ElementDefn defines one kind of report element.
type ElementDefn struct {
	name                 string
	displayNameKey       string
	extends              string
	abstract             bool
	hasStyle             bool
	allowsUserProperties bool
	canExtend            bool
	selector             string
	implClass            string
	since                string
	xmlName              string

	nameOption    NameOption
	nameOptionSet bool
	namespace     namespaces.Resolution

	properties []*PropertyDefn
	propIndex  map[string]*PropertyDefn
	slots      []*SlotDefn
	slotIndex  map[string]*SlotDefn
	styleProps []string
	visibility map[string]string
	triggers   []*SemanticTriggerDefn

	// filled by Finalize
	parent   *ElementDefn
	all      []*PropertyDefn
	allIndex map[string]*PropertyDefn
	resolved bool
}

func newElementDefn(name string) *ElementDefn {
	return &ElementDefn{
		name:                 name,
		allowsUserProperties: true,
		canExtend:            true,
		namespace:            namespaces.Resolution{ID: namespaces.Inherit},
		propIndex:            make(map[string]*PropertyDefn),
		slotIndex:            make(map[string]*SlotDefn),
		visibility:           make(map[string]string),
	}
}

func (e *ElementDefn) Name() string               { return e.name }
func (e *ElementDefn) DisplayNameKey() string     { return e.displayNameKey }
func (e *ElementDefn) Extends() string            { return e.extends }
func (e *ElementDefn) Parent() *ElementDefn       { return e.parent }
func (e *ElementDefn) IsAbstract() bool           { return e.abstract }
func (e *ElementDefn) HasStyle() bool             { return e.hasStyle }
func (e *ElementDefn) AllowsUserProperties() bool { return e.allowsUserProperties }
func (e *ElementDefn) CanExtend() bool            { return e.canExtend }
func (e *ElementDefn) Selector() string           { return e.selector }
func (e *ElementDefn) ImplClass() string          { return e.implClass }
func (e *ElementDefn) Since() string              { return e.since }
func (e *ElementDefn) XMLName() string            { return e.xmlName }
func (e *ElementDefn) NameOption() NameOption     { return e.nameOption }

// Namespace returns the namespace id. Before finalize an element without a
// nameSpace attribute reports the inherit marker.
func (e *ElementDefn) Namespace() int { return int(e.namespace.ID) }

// NamespaceName returns the symbolic name of the namespace.
func (e *ElementDefn) NamespaceName() string {
	if e.namespace.Holder != "" {
		return "(" + e.namespace.Holder + "," + e.namespace.Namespace + ")"
	}
	return namespaces.Name(e.namespace.ID)
}

// Property returns a property by name. After finalize inherited properties
// are included.
func (e *ElementDefn) Property(name string) (*PropertyDefn, bool) {
	if e.allIndex != nil {
		p, ok := e.allIndex[name]
		return p, ok
	}
	p, ok := e.propIndex[name]
	return p, ok
}

// LocalProperty returns a property declared on the element itself.
func (e *ElementDefn) LocalProperty(name string) (*PropertyDefn, bool) {
	p, ok := e.propIndex[name]
	return p, ok
}

// Properties iterates every property, inherited ones first, once the
// dictionary is finalized; before that only local properties.
func (e *ElementDefn) Properties() iter.Seq[*PropertyDefn] {
	if e.allIndex != nil {
		return slices.Values(e.all)
	}
	return slices.Values(e.properties)
}

// LocalProperties iterates the properties declared on the element.
func (e *ElementDefn) LocalProperties() iter.Seq[*PropertyDefn] { return slices.Values(e.properties) }

// Slot returns a slot by name.
func (e *ElementDefn) Slot(name string) (*SlotDefn, bool) {
	s, ok := e.slotIndex[name]
	return s, ok
}

// Slots iterates the slots in declaration order.
func (e *ElementDefn) Slots() iter.Seq[*SlotDefn] { return slices.Values(e.slots) }

// SlotCount returns the number of slots.
func (e *ElementDefn) SlotCount() int { return len(e.slots) }

// StyleProperties returns the names of style properties the element exposes.
func (e *ElementDefn) StyleProperties() []string { return slices.Clone(e.styleProps) }

// PropertyVisibility returns the visibility declared for a property on this
// element or, after finalize, the closest ancestor.
func (e *ElementDefn) PropertyVisibility(name string) (string, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.visibility[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Triggers returns the element-level semantic validators.
func (e *ElementDefn) Triggers() []*SemanticTriggerDefn { return slices.Clone(e.triggers) }

// IsKindOf reports whether e is other or derives from it.
func (e *ElementDefn) IsKindOf(other *ElementDefn) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (e *ElementDefn) addProperty(p *PropertyDefn) bool {
	if _, exists := e.propIndex[p.name]; exists {
		return false
	}
	e.propIndex[p.name] = p
	e.properties = append(e.properties, p)
	return true
}

func (e *ElementDefn) addSlot(s *SlotDefn) bool {
	if _, exists := e.slotIndex[s.name]; exists {
		return false
	}
	e.slotIndex[s.name] = s
	e.slots = append(e.slots, s)
	return true
}
