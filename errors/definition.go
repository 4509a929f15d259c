package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a class of definition error.
type ErrorCode string

const (
	// ErrNameRequired indicates a required name attribute is missing or blank.
	ErrNameRequired ErrorCode = "META_NAME_REQUIRED"
	// ErrDisplayNameIDRequired indicates a required displayNameID attribute is missing.
	ErrDisplayNameIDRequired ErrorCode = "META_DISPLAY_NAME_ID_REQUIRED"
	// ErrGroupNameIDRequired indicates a property group has no displayNameID.
	ErrGroupNameIDRequired ErrorCode = "META_GROUP_NAME_ID_REQUIRED"
	// ErrTypeRequired indicates a property or member has no type attribute.
	ErrTypeRequired ErrorCode = "META_TYPE_REQUIRED"
	// ErrInvalidType indicates a type or subType names no known property type.
	ErrInvalidType ErrorCode = "META_INVALID_TYPE"
	// ErrMissingSubType indicates a list property has no subType attribute.
	ErrMissingSubType ErrorCode = "META_MISSING_SUB_TYPE"
	// ErrChoiceTypeRequired indicates a choice property has no detailType.
	ErrChoiceTypeRequired ErrorCode = "META_CHOICE_TYPE_REQUIRED"
	// ErrInvalidChoiceType indicates a detailType names no known choice set.
	ErrInvalidChoiceType ErrorCode = "META_INVALID_CHOICE_TYPE"
	// ErrStructTypeRequired indicates a structure property has no detailType.
	ErrStructTypeRequired ErrorCode = "META_STRUCT_TYPE_REQUIRED"
	// ErrInvalidStructType indicates a detailType names no known structure.
	ErrInvalidStructType ErrorCode = "META_INVALID_STRUCT_TYPE"
	// ErrElementRefTypeRequired indicates an element reference has no target element.
	ErrElementRefTypeRequired ErrorCode = "META_ELEMENT_REF_TYPE_REQUIRED"
	// ErrXMLNameRequired indicates a choice has no name.
	ErrXMLNameRequired ErrorCode = "META_XML_NAME_REQUIRED"
	// ErrMultipleCardinalityRequired indicates a slot has no multipleCardinality attribute.
	ErrMultipleCardinalityRequired ErrorCode = "META_MULTIPLE_CARDINALITY_REQUIRED"
	// ErrDataTypeRequired indicates a class member has no dataType attribute.
	ErrDataTypeRequired ErrorCode = "META_DATA_TYPE_REQUIRED"
	// ErrValidatorNameRequired indicates a validator or trigger has no name.
	ErrValidatorNameRequired ErrorCode = "META_VALIDATOR_NAME_REQUIRED"
	// ErrClassNameRequired indicates a validator has no class identifier.
	ErrClassNameRequired ErrorCode = "META_CLASS_NAME_REQUIRED"
	// ErrInvalidValidator indicates a validator identifier could not be resolved.
	ErrInvalidValidator ErrorCode = "META_INVALID_VALIDATOR"
	// ErrInvalidDefault indicates a default value does not match its property type.
	ErrInvalidDefault ErrorCode = "META_INVALID_DEFAULT"
	// ErrRestrictionNotAllowed indicates Allowed or AllowedUnits on an unsupported type.
	ErrRestrictionNotAllowed ErrorCode = "META_RESTRICTION_NOT_ALLOWED"
	// ErrInvalidRestriction indicates a restriction token could not be resolved.
	ErrInvalidRestriction ErrorCode = "META_INVALID_RESTRICTION"
	// ErrDefaultUnitNotAllowed indicates DefaultUnit on a non-dimension property.
	ErrDefaultUnitNotAllowed ErrorCode = "META_DEFAULT_UNIT_NOT_ALLOWED"
	// ErrInvalidNamespace indicates an element nameSpace attribute could not be resolved.
	ErrInvalidNamespace ErrorCode = "META_INVALID_NAME_SPACE"
	// ErrUnknownTag indicates a tag that the enclosing tag does not accept.
	ErrUnknownTag ErrorCode = "META_UNKNOWN_TAG"
	// ErrInvalidRoot indicates the document root is not the metadata root tag.
	ErrInvalidRoot ErrorCode = "META_INVALID_ROOT"

	// ErrDuplicateName indicates an entity name already used in its scope.
	ErrDuplicateName ErrorCode = "META_DUPLICATE_NAME"
	// ErrDuplicateChoiceName indicates a choice name repeated within its set.
	ErrDuplicateChoiceName ErrorCode = "META_DUPLICATE_CHOICE_NAME"
	// ErrDuplicateProperty indicates a property name repeated within an element or structure.
	ErrDuplicateProperty ErrorCode = "META_DUPLICATE_PROPERTY"
	// ErrDuplicateConstructor indicates a second constructor on one class.
	ErrDuplicateConstructor ErrorCode = "META_DUPLICATE_CONSTRUCTOR"

	// ErrMissingParent indicates an extends attribute that names no element.
	ErrMissingParent ErrorCode = "META_MISSING_PARENT"
	// ErrExtendsCycle indicates a cycle in an element inheritance chain.
	ErrExtendsCycle ErrorCode = "META_EXTENDS_CYCLE"
	// ErrCannotExtend indicates an element extends a parent declared canExtend=false.
	ErrCannotExtend ErrorCode = "META_CANNOT_EXTEND"
	// ErrUnresolvedReference indicates a name reference that finalize could not resolve.
	ErrUnresolvedReference ErrorCode = "META_UNRESOLVED_REFERENCE"
	// ErrAlreadyFinalized indicates a mutation or second finalize on a finalized dictionary.
	ErrAlreadyFinalized ErrorCode = "META_ALREADY_FINALIZED"

	// ErrInvalidTrimOption indicates an unknown trim option token. Always fatal.
	ErrInvalidTrimOption ErrorCode = "META_INVALID_TRIM_OPTION"
	// ErrMarkupParse indicates the definition source could not be tokenized. Always fatal.
	ErrMarkupParse ErrorCode = "META_MARKUP_PARSE"
)

// Definition describes one recoverable definition error with its code,
// the tag path where it was raised and optional line/column context.
type Definition struct {
	Code    string
	Message string
	Path    string
	Line    int
	Column  int
}

// DefinitionList is an error that wraps every recoverable error of a build.
type DefinitionList []Definition

// Error returns a compact summary of the definition errors.
func (l DefinitionList) Error() string {
	switch len(l) {
	case 0:
		return "no definition errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Error formats the definition error with code, message and context.
func (d *Definition) Error() string {
	if d == nil {
		return "definition <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Code, d.Message)
	if d.Path != "" {
		fmt.Fprintf(&b, " at %s", d.Path)
	}
	if d.Line > 0 && d.Column > 0 {
		if d.Path == "" {
			fmt.Fprintf(&b, " at line %d, column %d", d.Line, d.Column)
		} else {
			fmt.Fprintf(&b, " (line %d, column %d)", d.Line, d.Column)
		}
	}
	return b.String()
}

// NewDefinition builds a Definition with a code, message and optional path.
func NewDefinition(code ErrorCode, msg, path string) Definition {
	return Definition{Code: string(code), Message: msg, Path: path}
}

// NewDefinitionf formats a message and builds a Definition.
func NewDefinitionf(code ErrorCode, path, format string, args ...any) Definition {
	return NewDefinition(code, fmt.Sprintf(format, args...), path)
}

// AsDefinitions extracts the recoverable errors from an error returned by a build.
func AsDefinitions(err error) ([]Definition, bool) {
	if err == nil {
		return nil, false
	}
	var list DefinitionList
	if errors.As(err, &list) {
		return []Definition(list), true
	}
	var listPtr *DefinitionList
	if errors.As(err, &listPtr) && listPtr != nil {
		return []Definition(*listPtr), true
	}
	return nil, false
}

// HasCode reports whether err carries a recoverable error with code.
func HasCode(err error, code ErrorCode) bool {
	defs, ok := AsDefinitions(err)
	if !ok {
		return false
	}
	for _, d := range defs {
		if d.Code == string(code) {
			return true
		}
	}
	return false
}

// Fatal is a structural error that aborts a build immediately.
type Fatal struct {
	Err     error
	Code    string
	Message string
	Path    string
	Line    int
	Column  int
}

// Error implements the error interface.
func (f *Fatal) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", f.Code, f.Message)
	if f.Path != "" {
		fmt.Fprintf(&b, " at %s", f.Path)
	}
	if f.Line > 0 {
		fmt.Fprintf(&b, " (line %d, column %d)", f.Line, f.Column)
	}
	if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	}
	return b.String()
}

// Unwrap returns the wrapped error, if any.
func (f *Fatal) Unwrap() error {
	return f.Err
}

// NewFatal builds a Fatal error with a code and message.
func NewFatal(code ErrorCode, msg string, err error) *Fatal {
	return &Fatal{Code: string(code), Message: msg, Err: err}
}

// IsFatal reports whether err is or wraps a Fatal error.
func IsFatal(err error) bool {
	var f *Fatal
	return errors.As(err, &f)
}
