// Package namespaces maps the symbolic namespace names used by element
// definitions to namespace ids.
package namespaces

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// ID identifies a name space in which element instance names must be unique.
type ID int

const (
	// Inherit marks an element that takes its parent's namespace at finalize.
	Inherit ID = -2
	// None marks elements whose instance names are not managed by a namespace.
	None ID = -1

	Style ID = iota - 2
	Theme
	DataSet
	DataSource
	Element
	Parameter
	MasterPage
	TemplateParameterDefinition
	Cube
)

// firstCustom is the smallest id handed out for (holder,namespace) pairs.
const firstCustom ID = 1 << 10

var wellKnown = map[string]ID{
	"style":                       Style,
	"theme":                       Theme,
	"dataset":                     DataSet,
	"datasource":                  DataSource,
	"element":                     Element,
	"parameter":                   Parameter,
	"masterpage":                  MasterPage,
	"templateparameterdefinition": TemplateParameterDefinition,
	"cube":                        Cube,
	"none":                        None,
}

var names = map[ID]string{
	Inherit:                     "inherit",
	None:                        "none",
	Style:                       "style",
	Theme:                       "theme",
	DataSet:                     "dataSet",
	DataSource:                  "dataSource",
	Element:                     "element",
	Parameter:                   "parameter",
	MasterPage:                  "masterPage",
	TemplateParameterDefinition: "templateParameterDefinition",
	Cube:                        "cube",
}

// Name returns the symbolic name of a well-known id, or "custom(<id>)".
func Name(id ID) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("custom(%d)", int(id))
}

// Resolution is the outcome of resolving a nameSpace attribute.
type Resolution struct {
	ID ID
	// Holder is set for the (holder,namespace) form.
	Holder string
	// Namespace is the namespace part of the (holder,namespace) form.
	Namespace string
}

// Resolve maps a nameSpace attribute value to an id. Blank values inherit.
// Well-known names match case-insensitively; "(holder,namespace)" yields a
// stable id computed from the pair.
func Resolve(value string) (Resolution, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Resolution{ID: Inherit}, nil
	}
	if id, ok := wellKnown[strings.ToLower(value)]; ok {
		return Resolution{ID: id}, nil
	}
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		inner := value[1 : len(value)-1]
		holder, ns, ok := strings.Cut(inner, ",")
		if !ok {
			return Resolution{}, fmt.Errorf("namespace %q: expected (holder,namespace)", value)
		}
		holder = strings.TrimSpace(holder)
		ns = strings.TrimSpace(ns)
		if holder == "" || ns == "" {
			return Resolution{}, fmt.Errorf("namespace %q: holder and namespace must be non-blank", value)
		}
		return Resolution{ID: Custom(holder, ns), Holder: holder, Namespace: ns}, nil
	}
	return Resolution{}, fmt.Errorf("namespace %q is not a known namespace", value)
}

// Custom returns the id for a (holder,namespace) pair. Equal pairs always
// produce equal ids and never collide with well-known ids.
func Custom(holder, namespace string) ID {
	h := fnv.New32a()
	_, _ = h.Write([]byte(holder))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(namespace))
	return firstCustom + ID(h.Sum32()>>2)
}
