package metadata

import (
	"iter"
	"slices"
)

// StructureDefn is a named record of members used as a property value.
type StructureDefn struct {
	name           string
	displayNameKey string
	since          string
	members        []*PropertyDefn
	memberIndex    map[string]*PropertyDefn
}

func newStructureDefn(name string) *StructureDefn {
	return &StructureDefn{name: name, memberIndex: make(map[string]*PropertyDefn)}
}

func (s *StructureDefn) Name() string           { return s.name }
func (s *StructureDefn) DisplayNameKey() string { return s.displayNameKey }
func (s *StructureDefn) Since() string          { return s.since }

// Member returns the member with the given name.
func (s *StructureDefn) Member(name string) (*PropertyDefn, bool) {
	m, ok := s.memberIndex[name]
	return m, ok
}

// Members iterates the members in declaration order.
func (s *StructureDefn) Members() iter.Seq[*PropertyDefn] { return slices.Values(s.members) }

// MemberCount returns the number of members.
func (s *StructureDefn) MemberCount() int { return len(s.members) }

func (s *StructureDefn) addMember(p *PropertyDefn) bool {
	if _, exists := s.memberIndex[p.name]; exists {
		return false
	}
	p.structMember = true
	s.memberIndex[p.name] = p
	s.members = append(s.members, p)
	return true
}
