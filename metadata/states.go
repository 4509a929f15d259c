package metadata

import "strings"

// Tag names of the definition markup. Matching is case-insensitive.
const (
	tagRoot               = "ReportMetaData"
	tagChoiceType         = "ChoiceType"
	tagChoice             = "Choice"
	tagStructure          = "Structure"
	tagMember             = "Member"
	tagElement            = "Element"
	tagProperty           = "Property"
	tagPropertyGroup      = "PropertyGroup"
	tagPropertyVisibility = "PropertyVisibility"
	tagStyleProperty      = "StyleProperty"
	tagSlot               = "Slot"
	tagType               = "Type"
	tagDefault            = "Default"
	tagAllowed            = "Allowed"
	tagAllowedUnits       = "AllowedUnits"
	tagDefaultUnit        = "DefaultUnit"
	tagTrigger            = "Trigger"
	tagMethod             = "Method"
	tagArgument           = "Argument"
	tagConstructor        = "Constructor"
	tagClass              = "Class"
	tagStyle              = "Style"
	tagValidators         = "Validators"
	tagValueValidator     = "ValueValidator"
	tagSemanticValidator  = "SemanticValidator"
)

// Attribute names.
const (
	attrName                 = "name"
	attrDisplayNameID        = "displayNameID"
	attrToolTipID            = "toolTipID"
	attrTagID                = "tagID"
	attrType                 = "type"
	attrSubType              = "subType"
	attrDetailType           = "detailType"
	attrExtends              = "extends"
	attrIsAbstract           = "isAbstract"
	attrHasStyle             = "hasStyle"
	attrSelector             = "selector"
	attrAllowsUserProperties = "allowsUserProperties"
	attrCanExtend            = "canExtend"
	attrJavaClass            = "javaClass"
	attrSince                = "since"
	attrXMLName              = "xmlName"
	attrIsNameRequired       = "isNameRequired"
	attrNameSpace            = "nameSpace"
	attrMultipleCardinality  = "multipleCardinality"
	attrIsManagedByNameSpace = "isManagedByNameSpace"
	attrCanInherit           = "canInherit"
	attrIsIntrinsic          = "isIntrinsic"
	attrIsStyleProperty      = "isStyleProperty"
	attrIsBidiProperty       = "isBidiProperty"
	attrValueRequired        = "valueRequired"
	attrRuntimeSettable      = "runtimeSettable"
	attrIsList               = "isList"
	attrTrimOption           = "trimOption"
	attrAllowExpression      = "allowExpression"
	attrReturnType           = "returnType"
	attrContext              = "context"
	attrValidator            = "validator"
	attrClass                = "class"
	attrModules              = "modules"
	attrPreRequisite         = "preRequisite"
	attrTargetElement        = "targetElement"
	attrVisibility           = "visibility"
	attrDataType             = "dataType"
	attrIsStatic             = "isStatic"
	attrNative               = "native"
)

var canonicalTags = func() map[string]string {
	tags := []string{
		tagRoot, tagChoiceType, tagChoice, tagStructure, tagMember, tagElement,
		tagProperty, tagPropertyGroup, tagPropertyVisibility, tagStyleProperty,
		tagSlot, tagType, tagDefault, tagAllowed, tagAllowedUnits, tagDefaultUnit,
		tagTrigger, tagMethod, tagArgument, tagConstructor, tagClass, tagStyle,
		tagValidators, tagValueValidator, tagSemanticValidator,
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[strings.ToLower(t)] = t
	}
	return m
}()

// canonicalTag maps a tag name to its canonical spelling, or "" if unknown.
func canonicalTag(name string) string {
	return canonicalTags[strings.ToLower(name)]
}

// parseState is one open tag. begin runs at the start tag and end at the
// matching end tag; a non-nil error from either is fatal.
type parseState interface {
	begin(b *Builder, attrs Attributes) error
	end(b *Builder) error
}

// rejecter is implemented by states whose entity may be rejected; the
// children of a rejected entity are skipped without further errors.
type rejecter interface {
	rejected() bool
}

// textSink is implemented by states that collect character data.
type textSink interface {
	appendText(text []byte)
}

type textBuffer struct {
	buf strings.Builder
}

func (t *textBuffer) appendText(text []byte) { t.buf.Write(text) }

func (t *textBuffer) text() string { return t.buf.String() }

// child returns the state for tag opened inside parent, or nil when parent
// does not accept it.
func (b *Builder) child(parent parseState, tag string) parseState {
	switch p := parent.(type) {
	case *documentState:
		if tag == tagRoot {
			return &rootState{}
		}
	case *rootState:
		switch tag {
		case tagChoiceType:
			return &choiceTypeState{}
		case tagStructure:
			return &structureState{}
		case tagElement:
			return &elementState{}
		case tagStyle:
			return &styleState{}
		case tagClass:
			return &classState{}
		case tagValidators:
			return &validatorsState{}
		}
	case *choiceTypeState:
		if tag == tagChoice {
			return &choiceState{set: p}
		}
	case *structureState:
		if tag == tagMember {
			return &propertyState{structure: p.s}
		}
	case *elementState:
		switch tag {
		case tagProperty:
			return &propertyState{element: p.e}
		case tagPropertyGroup:
			return &propertyGroupState{element: p.e}
		case tagPropertyVisibility:
			return &visibilityState{element: p.e}
		case tagStyleProperty:
			return &stylePropertyState{element: p.e}
		case tagSlot:
			return &slotState{element: p.e}
		case tagMethod:
			return &methodState{element: p.e}
		case tagSemanticValidator:
			return &triggerState{triggers: &p.e.triggers}
		}
	case *propertyGroupState:
		if tag == tagProperty {
			return &propertyState{element: p.element, group: p.key}
		}
	case *propertyState:
		switch tag {
		case tagDefault:
			return &defaultState{prop: p}
		case tagAllowed:
			return &allowedState{prop: p}
		}
		if p.structure != nil {
			return nil
		}
		switch tag {
		case tagAllowedUnits:
			return &allowedState{prop: p, units: true}
		case tagDefaultUnit:
			return &defaultUnitState{prop: p}
		case tagTrigger:
			return &triggerState{triggers: &p.p.triggers}
		case tagType:
			return &propertyTypeState{prop: p}
		}
	case *slotState:
		switch tag {
		case tagType:
			return &slotTypeState{slot: p.s}
		case tagTrigger:
			return &triggerState{triggers: &p.s.triggers}
		}
	case *methodState:
		if tag == tagArgument {
			return &argumentState{method: p}
		}
	case *classState:
		switch tag {
		case tagConstructor:
			return &methodState{class: p.c, constructor: true}
		case tagMethod:
			return &methodState{class: p.c}
		case tagMember:
			return &classMemberState{class: p.c}
		}
	case *validatorsState:
		switch tag {
		case tagValueValidator:
			return &valueValidatorState{}
		case tagSemanticValidator:
			return &semanticValidatorState{}
		}
	}
	return nil
}

type documentState struct{}

func (*documentState) begin(*Builder, Attributes) error { return nil }
func (*documentState) end(*Builder) error               { return nil }

type rootState struct{}

func (*rootState) begin(b *Builder, _ Attributes) error {
	b.sawRoot = true
	return nil
}

func (*rootState) end(*Builder) error { return nil }

// skipState swallows an unknown or rejected subtree.
type skipState struct{}

func (*skipState) begin(*Builder, Attributes) error { return nil }
func (*skipState) end(*Builder) error               { return nil }
func (*skipState) rejected() bool                   { return true }
