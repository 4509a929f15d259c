package metadata

import metaerrors "github.com/jacoelho/romdict/errors"

// classState builds a scripting class and registers it at the end tag.
type classState struct {
	c *ClassInfo
}

func (s *classState) rejected() bool { return s.c == nil }

func (s *classState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	if !okName || !okKey {
		return nil
	}
	c := newClassInfo(name)
	c.displayNameKey = key
	c.toolTipKey = attr(attrs, attrToolTipID)
	c.since = attr(attrs, attrSince)
	c.native, c.nativeSet = attrBoolSet(attrs, attrNative)
	s.c = c
	return nil
}

func (s *classState) end(b *Builder) error {
	if s.c == nil {
		return nil
	}
	if !b.dict.classes.add(s.c.name, s.c) {
		b.errorf(metaerrors.ErrDuplicateName, "class %q is already defined", s.c.name)
		return nil
	}
	b.logger.Debug("class defined", "name", s.c.name, "methods", len(s.c.methods), "members", len(s.c.members))
	return nil
}

// methodState handles Method and Constructor tags of a class and Method
// tags of an element. An element method becomes a script property whose
// detail is the method signature.
type methodState struct {
	element     *ElementDefn
	class       *ClassInfo
	constructor bool

	m    *MethodInfo
	prop *PropertyDefn
}

func (s *methodState) rejected() bool { return s.m == nil }

func (s *methodState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	if !okName || !okKey {
		return nil
	}
	s.m = &MethodInfo{
		name:           name,
		displayNameKey: key,
		toolTipKey:     attr(attrs, attrToolTipID),
		returnType:     attr(attrs, attrReturnType),
		static:         attrBool(attrs, attrIsStatic, false),
		constructor:    s.constructor,
	}
	if s.element != nil {
		s.prop = &PropertyDefn{
			name:            name,
			displayNameKey:  key,
			typ:             propertyTypesByKind[KindScript],
			detail:          Detail{kind: DetailMethod, method: s.m},
			valueRequired:   attrBool(attrs, attrValueRequired, false),
			since:           attr(attrs, attrSince),
			context:         attr(attrs, attrContext),
			returnType:      s.m.returnType,
			canInherit:      true,
			runtimeSettable: true,
		}
	}
	return nil
}

func (s *methodState) end(b *Builder) error {
	if s.m == nil {
		return nil
	}
	switch {
	case s.element != nil:
		if !s.element.addProperty(s.prop) {
			b.errorf(metaerrors.ErrDuplicateProperty, "property %q is already defined on %q", s.prop.name, s.element.name)
		}
	case s.constructor:
		if s.class.constructor != nil {
			b.errorf(metaerrors.ErrDuplicateConstructor, "class %q already has a constructor", s.class.name)
			return nil
		}
		s.class.constructor = s.m
	default:
		s.class.methods = append(s.class.methods, s.m)
	}
	return nil
}

// argumentState adds one argument to the enclosing method. Arguments
// without a name are ignored.
type argumentState struct {
	method *methodState
}

func (s *argumentState) begin(b *Builder, attrs Attributes) error {
	name := attr(attrs, attrName)
	if name == "" {
		return nil
	}
	m := s.method.m
	if m.hasArgument(name) {
		b.errorf(metaerrors.ErrDuplicateName, "argument %q is already defined on %q", name, m.name)
		return nil
	}
	m.args = append(m.args, &ArgumentInfo{
		name:           name,
		typ:            attr(attrs, attrType),
		displayNameKey: attr(attrs, attrTagID),
	})
	return nil
}

func (*argumentState) end(*Builder) error { return nil }

type classMemberState struct {
	class *ClassInfo
}

func (s *classMemberState) begin(b *Builder, attrs Attributes) error {
	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	dataType, okType := b.require(attrs, attrDataType, metaerrors.ErrDataTypeRequired)
	if !okName || !okKey || !okType {
		return nil
	}
	m := &MemberInfo{
		name:           name,
		displayNameKey: key,
		toolTipKey:     attr(attrs, attrToolTipID),
		dataType:       dataType,
		static:         attrBool(attrs, attrIsStatic, false),
	}
	if !s.class.addMember(m) {
		b.errorf(metaerrors.ErrDuplicateName, "member %q is already defined on %q", name, s.class.name)
	}
	return nil
}

func (*classMemberState) end(*Builder) error { return nil }
