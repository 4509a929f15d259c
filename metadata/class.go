package metadata

import (
	"iter"
	"slices"
)

// ArgumentInfo is one argument of a method signature.
type ArgumentInfo struct {
	name           string
	typ            string
	displayNameKey string
}

func (a *ArgumentInfo) Name() string           { return a.name }
func (a *ArgumentInfo) Type() string           { return a.typ }
func (a *ArgumentInfo) DisplayNameKey() string { return a.displayNameKey }

// MethodInfo is a method, constructor or element script signature.
type MethodInfo struct {
	name           string
	displayNameKey string
	toolTipKey     string
	returnType     string
	static         bool
	constructor    bool
	args           []*ArgumentInfo
}

func (m *MethodInfo) Name() string           { return m.name }
func (m *MethodInfo) DisplayNameKey() string { return m.displayNameKey }
func (m *MethodInfo) ToolTipKey() string     { return m.toolTipKey }
func (m *MethodInfo) ReturnType() string     { return m.returnType }
func (m *MethodInfo) IsStatic() bool         { return m.static }
func (m *MethodInfo) IsConstructor() bool    { return m.constructor }

// Arguments returns the arguments in declaration order.
func (m *MethodInfo) Arguments() []*ArgumentInfo { return slices.Clone(m.args) }

func (m *MethodInfo) hasArgument(name string) bool {
	return slices.ContainsFunc(m.args, func(a *ArgumentInfo) bool { return a.name == name })
}

// MemberInfo is a data member of a scripting class.
type MemberInfo struct {
	name           string
	displayNameKey string
	toolTipKey     string
	dataType       string
	static         bool
}

func (m *MemberInfo) Name() string           { return m.name }
func (m *MemberInfo) DisplayNameKey() string { return m.displayNameKey }
func (m *MemberInfo) ToolTipKey() string     { return m.toolTipKey }
func (m *MemberInfo) DataType() string       { return m.dataType }
func (m *MemberInfo) IsStatic() bool         { return m.static }

// ClassInfo describes a class exposed to the scripting environment.
type ClassInfo struct {
	name           string
	displayNameKey string
	toolTipKey     string
	native         bool
	nativeSet      bool
	since          string

	constructor *MethodInfo
	methods     []*MethodInfo
	members     []*MemberInfo
	memberIndex map[string]*MemberInfo

	overloads map[string][]*MethodInfo
}

func newClassInfo(name string) *ClassInfo {
	return &ClassInfo{name: name, memberIndex: make(map[string]*MemberInfo)}
}

func (c *ClassInfo) Name() string             { return c.name }
func (c *ClassInfo) DisplayNameKey() string   { return c.displayNameKey }
func (c *ClassInfo) ToolTipKey() string       { return c.toolTipKey }
func (c *ClassInfo) Since() string            { return c.since }
func (c *ClassInfo) Constructor() *MethodInfo { return c.constructor }
func (c *ClassInfo) MemberCount() int         { return len(c.members) }
func (c *ClassInfo) MethodCount() int         { return len(c.methods) }

// Native reports the native flag. The second result is false when the
// class did not declare one.
func (c *ClassInfo) Native() (bool, bool) { return c.native, c.nativeSet }

// Methods iterates the methods in declaration order.
func (c *ClassInfo) Methods() iter.Seq[*MethodInfo] { return slices.Values(c.methods) }

// Members iterates the members in declaration order.
func (c *ClassInfo) Members() iter.Seq[*MemberInfo] { return slices.Values(c.members) }

// Member returns the member with the given name.
func (c *ClassInfo) Member(name string) (*MemberInfo, bool) {
	m, ok := c.memberIndex[name]
	return m, ok
}

// Overloads returns every method sharing name, in declaration order.
// The table is built by finalize.
func (c *ClassInfo) Overloads(name string) []*MethodInfo {
	return slices.Clone(c.overloads[name])
}

func (c *ClassInfo) addMember(m *MemberInfo) bool {
	if _, exists := c.memberIndex[m.name]; exists {
		return false
	}
	c.memberIndex[m.name] = m
	c.members = append(c.members, m)
	return true
}

func (c *ClassInfo) buildOverloads() {
	c.overloads = make(map[string][]*MethodInfo, len(c.methods))
	for _, m := range c.methods {
		c.overloads[m.name] = append(c.overloads[m.name], m)
	}
}
