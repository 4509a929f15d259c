// Package validator holds the pluggable validators a dictionary registers by
// name: per-value validators invoked when a model instance sets a property,
// and semantic validators invoked during whole-model consistency checks.
package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Value validates one property value.
type Value interface {
	Name() string
	Validate(value any) error
}

// Target is the view of a model element that semantic validators inspect.
type Target interface {
	DefinitionName() string
	Module() string
	Property(name string) (any, bool)
}

// Semantic validates a model element as a whole.
type Semantic interface {
	Name() string
	// Modules lists the module kinds the validator applies to; empty means all.
	Modules() []string
	Validate(t Target) []error
}

// AppliesTo reports whether s applies to elements of the given module kind.
func AppliesTo(s Semantic, module string) bool {
	mods := s.Modules()
	if len(mods) == 0 {
		return true
	}
	return slices.ContainsFunc(mods, func(m string) bool {
		return strings.EqualFold(m, module)
	})
}

// ParseModules splits a comma separated module list, dropping blanks.
func ParseModules(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValueFactory constructs a value validator registered under name.
type ValueFactory func(name string) Value

// SemanticFactory constructs a semantic validator registered under name.
type SemanticFactory func(name string, modules []string) Semantic

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("validator not found")

// NotFoundError reports an identifier with no registered factory.
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s validator %q not found", e.Kind, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Registry maps validator identifiers to factories.
// A Registry is not safe for concurrent registration.
type Registry struct {
	values    map[string]ValueFactory
	semantics map[string]SemanticFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		values:    make(map[string]ValueFactory),
		semantics: make(map[string]SemanticFactory),
	}
}

// RegisterValue adds a value validator factory under id.
func (r *Registry) RegisterValue(id string, f ValueFactory) error {
	if id == "" || f == nil {
		return fmt.Errorf("register value validator: empty id or nil factory")
	}
	if _, exists := r.values[id]; exists {
		return fmt.Errorf("register value validator: %q already registered", id)
	}
	r.values[id] = f
	return nil
}

// RegisterSemantic adds a semantic validator factory under id.
func (r *Registry) RegisterSemantic(id string, f SemanticFactory) error {
	if id == "" || f == nil {
		return fmt.Errorf("register semantic validator: empty id or nil factory")
	}
	if _, exists := r.semantics[id]; exists {
		return fmt.Errorf("register semantic validator: %q already registered", id)
	}
	r.semantics[id] = f
	return nil
}

// NewValue constructs the value validator registered under id.
func (r *Registry) NewValue(id, name string) (Value, error) {
	f, ok := r.values[id]
	if !ok {
		return nil, &NotFoundError{Kind: "value", ID: id}
	}
	return f(name), nil
}

// NewSemantic constructs the semantic validator registered under id.
func (r *Registry) NewSemantic(id, name string, modules []string) (Semantic, error) {
	f, ok := r.semantics[id]
	if !ok {
		return nil, &NotFoundError{Kind: "semantic", ID: id}
	}
	return f(name, modules), nil
}

// Default returns a registry holding the built-in validators.
func Default() *Registry {
	r := NewRegistry()
	for id, f := range builtinValues {
		if err := r.RegisterValue(id, f); err != nil {
			panic(err)
		}
	}
	for id, f := range builtinSemantics {
		if err := r.RegisterSemantic(id, f); err != nil {
			panic(err)
		}
	}
	return r
}
