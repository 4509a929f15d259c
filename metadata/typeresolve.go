package metadata

import (
	"strings"

	metaerrors "github.com/jacoelho/romdict/errors"
)

// selfReference is the detailType value naming the enclosing element.
const selfReference = "this"

// newProperty builds a property from the attributes of a Property, Member
// or Method tag. It returns nil when a recoverable error rejected the tag
// and a non-nil error only for fatal problems.
func (b *Builder) newProperty(attrs Attributes, element *ElementDefn, member bool) (*PropertyDefn, error) {
	trim, err := parseTrimOption(attrs.Value(attrTrimOption))
	if err != nil {
		return nil, err
	}

	name, okName := b.require(attrs, attrName, metaerrors.ErrNameRequired)
	key, okKey := b.require(attrs, attrDisplayNameID, metaerrors.ErrDisplayNameIDRequired)
	typeName, okType := b.require(attrs, attrType, metaerrors.ErrTypeRequired)
	if !okName || !okKey || !okType {
		return nil, nil
	}
	typ, ok := LookupPropertyType(typeName)
	if !ok {
		b.errorf(metaerrors.ErrInvalidType, "property %q has unknown type %q", name, typeName)
		return nil, nil
	}

	p := &PropertyDefn{
		name:            name,
		displayNameKey:  key,
		typ:             typ,
		trimOption:      trim,
		canInherit:      attrBool(attrs, attrCanInherit, true),
		runtimeSettable: attrBool(attrs, attrRuntimeSettable, true),
		allowExpression: attrBool(attrs, attrAllowExpression, false),
		intrinsic:       attrBool(attrs, attrIsIntrinsic, false),
		styleProperty:   attrBool(attrs, attrIsStyleProperty, false),
		bidiProperty:    attrBool(attrs, attrIsBidiProperty, false),
		valueRequired:   attrBool(attrs, attrValueRequired, false),
		valueValidator:  attr(attrs, attrValidator),
		since:           attr(attrs, attrSince),
	}

	if typ.kind == KindList {
		subName, ok := b.require(attrs, attrSubType, metaerrors.ErrMissingSubType)
		if !ok {
			return nil, nil
		}
		sub, found := LookupPropertyType(subName)
		if !found {
			b.errorf(metaerrors.ErrInvalidType, "property %q has unknown subType %q", name, subName)
			return nil, nil
		}
		p.subType = sub
	}

	if !b.resolveDetail(p, attr(attrs, attrDetailType), element, member) {
		return nil, nil
	}

	switch typ.kind {
	case KindStruct, KindStructRef, KindElement, KindContentElement:
		p.list = attrBool(attrs, attrIsList, false)
	case KindExpression:
		p.returnType = attr(attrs, attrReturnType)
		p.context = attr(attrs, attrContext)
	}
	return p, nil
}

// resolveDetail fills the kind-dependent detail of p from the detailType
// attribute. It reports false after recording an error that rejects the
// property.
func (b *Builder) resolveDetail(p *PropertyDefn, detail string, element *ElementDefn, member bool) bool {
	switch p.typ.kind {
	case KindDimension, KindDateTime, KindString, KindLiteralString, KindFloat, KindInteger, KindNumber:
		if detail == "" {
			return true
		}
		return b.resolveChoiceDetail(p, detail)

	case KindChoice:
		if detail == "" {
			b.errorf(metaerrors.ErrChoiceTypeRequired, "choice property %q has no detailType", p.name)
			return false
		}
		return b.resolveChoiceDetail(p, detail)

	case KindColor:
		colors, _ := b.dict.choiceSets.get(ColorsChoiceSet)
		p.detail = Detail{kind: DetailChoiceSet, choices: colors}
		return true

	case KindStruct, KindStructRef:
		if detail == "" {
			b.errorf(metaerrors.ErrStructTypeRequired, "structure property %q has no detailType", p.name)
			return false
		}
		if s, ok := b.dict.structures.get(detail); ok {
			p.detail = Detail{kind: DetailStructure, structure: s}
			return true
		}
		if member {
			// Members may reference a structure defined later; finalize resolves it.
			p.detail = Detail{kind: DetailStructure, name: detail}
			return true
		}
		b.errorf(metaerrors.ErrInvalidStructType, "structure %q is not defined", detail)
		return false

	case KindElementRef:
		return b.resolveElementRef(p, detail, element)

	case KindList:
		if p.subType.kind == KindElementRef {
			return b.resolveElementRef(p, detail, element)
		}
		return true

	case KindElement, KindContentElement:
		// Allowed element types come from Type children.
		return true
	}
	// Other kinds take no detail; a supplied detailType is discarded.
	return true
}

func (b *Builder) resolveChoiceDetail(p *PropertyDefn, detail string) bool {
	cs, ok := b.dict.choiceSets.get(detail)
	if !ok {
		b.errorf(metaerrors.ErrInvalidChoiceType, "choice set %q is not defined", detail)
		return false
	}
	p.detail = Detail{kind: DetailChoiceSet, choices: cs}
	return true
}

func (b *Builder) resolveElementRef(p *PropertyDefn, detail string, element *ElementDefn) bool {
	if detail == "" {
		b.errorf(metaerrors.ErrElementRefTypeRequired, "element reference %q has no detailType", p.name)
		return false
	}
	if detail == selfReference {
		if element == nil {
			b.errorf(metaerrors.ErrElementRefTypeRequired, "%q can only be used inside an element", selfReference)
			return false
		}
		detail = element.name
	}
	p.detail = Detail{kind: DetailElement, name: detail}
	return true
}

// parseTrimOption parses a semicolon separated list of trim tokens. Unknown
// tokens are fatal.
func parseTrimOption(value string) (TrimOption, error) {
	var opt TrimOption
	for token := range strings.SplitSeq(value, ";") {
		token = strings.TrimSpace(token)
		switch {
		case token == "":
		case strings.EqualFold(token, "noTrim"):
			opt |= NoTrim
		case strings.EqualFold(token, "trimSpace"):
			opt |= TrimSpace
		case strings.EqualFold(token, "trimEmptyToNull"):
			opt |= TrimEmptyToNull
		default:
			return TrimNone, metaerrors.NewFatal(metaerrors.ErrInvalidTrimOption, "unknown trim option "+token, nil)
		}
	}
	return opt, nil
}
