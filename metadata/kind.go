package metadata

// Kind is the closed set of property type kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindLiteralString
	KindBoolean
	KindDateTime
	KindDate
	KindTime
	KindFloat
	KindNumber
	KindInteger
	KindDimension
	KindColor
	KindChoice
	KindStruct
	KindExpression
	KindHTML
	KindURI
	KindResourceKey
	KindElementRef
	KindStructRef
	KindScript
	KindXML
	KindName
	KindMember
	KindExtends
	KindList
	KindElement
	KindContentElement
)

// PropertyType describes one kind by its definition-file name.
type PropertyType struct {
	kind Kind
	name string
}

// Kind returns the kind.
func (t *PropertyType) Kind() Kind { return t.kind }

// Name returns the name used in definition files.
func (t *PropertyType) Name() string { return t.name }

// String returns the name.
func (t *PropertyType) String() string { return t.name }

var propertyTypes = []*PropertyType{
	{KindString, "string"},
	{KindLiteralString, "literalString"},
	{KindBoolean, "boolean"},
	{KindDateTime, "dateTime"},
	{KindDate, "date"},
	{KindTime, "time"},
	{KindFloat, "float"},
	{KindNumber, "number"},
	{KindInteger, "integer"},
	{KindDimension, "dimension"},
	{KindColor, "color"},
	{KindChoice, "choice"},
	{KindStruct, "structure"},
	{KindExpression, "expression"},
	{KindHTML, "html"},
	{KindURI, "uri"},
	{KindResourceKey, "resourceKey"},
	{KindElementRef, "elementRef"},
	{KindStructRef, "structRef"},
	{KindScript, "script"},
	{KindXML, "xml"},
	{KindName, "name"},
	{KindMember, "member"},
	{KindExtends, "extends"},
	{KindList, "list"},
	{KindElement, "element"},
	{KindContentElement, "contentElement"},
}

var propertyTypesByName = func() map[string]*PropertyType {
	m := make(map[string]*PropertyType, len(propertyTypes))
	for _, t := range propertyTypes {
		m[t.name] = t
	}
	return m
}()

var propertyTypesByKind = func() map[Kind]*PropertyType {
	m := make(map[Kind]*PropertyType, len(propertyTypes))
	for _, t := range propertyTypes {
		m[t.kind] = t
	}
	return m
}()

// LookupPropertyType returns the property type with the given name.
func LookupPropertyType(name string) (*PropertyType, bool) {
	t, ok := propertyTypesByName[name]
	return t, ok
}

// String returns the definition-file name of the kind.
func (k Kind) String() string {
	if t, ok := propertyTypesByKind[k]; ok {
		return t.name
	}
	return "invalid"
}

// IsElementType reports whether values of the kind are contained elements.
func (k Kind) IsElementType() bool {
	return k == KindElement || k == KindContentElement
}

// isTextual reports kinds whose values are free text subject to trimming.
func (k Kind) isTextual() bool {
	switch k {
	case KindString, KindLiteralString, KindExpression, KindHTML, KindURI,
		KindResourceKey, KindScript, KindXML, KindName, KindMember:
		return true
	}
	return false
}
