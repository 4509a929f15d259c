package metadata

import (
	"maps"
	"slices"
	"strings"

	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/internal/graphcycle"
	"github.com/jacoelho/romdict/internal/namespaces"
)

// StyleElement is the element whose properties style property names are
// checked against, when the dictionary defines it.
const StyleElement = "Style"

// Finalize resolves inheritance and every name reference recorded during
// parsing. On success the dictionary becomes read-only. All problems are
// collected and returned together as a metaerrors.DefinitionList.
func (d *Dictionary) Finalize() error {
	if d.finalized {
		return metaerrors.DefinitionList{
			metaerrors.NewDefinition(metaerrors.ErrAlreadyFinalized, "dictionary is already finalized", ""),
		}
	}
	f := &finalizer{d: d, broken: make(map[string]bool)}
	f.reset()
	f.resolveInheritance()
	for e := range d.elements.all() {
		f.checkElement(e)
	}
	for s := range d.structures.all() {
		for m := range s.Members() {
			f.checkProperty(structurePath(s.name)+"/Member["+m.name+"]", m)
		}
	}
	for c := range d.classes.all() {
		c.buildOverloads()
	}
	if len(f.errs) > 0 {
		return f.errs
	}
	d.finalized = true
	return nil
}

type finalizer struct {
	d      *Dictionary
	broken map[string]bool
	errs   metaerrors.DefinitionList
}

func (f *finalizer) add(code metaerrors.ErrorCode, path, format string, args ...any) {
	f.errs = append(f.errs, metaerrors.NewDefinitionf(code, path, format, args...))
}

func elementPath(name string) string   { return "Element[" + name + "]" }
func structurePath(name string) string { return "Structure[" + name + "]" }

// reset drops state left by a failed finalize so the pass can be rerun.
func (f *finalizer) reset() {
	for e := range f.d.elements.all() {
		e.parent = nil
		e.all = nil
		e.allIndex = nil
		e.resolved = false
	}
}

func (f *finalizer) resolveInheritance() {
	d := f.d
	starts := make([]string, 0, d.elements.len())
	for e := range d.elements.all() {
		starts = append(starts, e.name)
	}
	errs := graphcycle.Collect(graphcycle.Config[string]{
		Exists: func(name string) bool {
			_, ok := d.elements.get(name)
			return ok
		},
		Next: func(name string) []string {
			e, _ := d.elements.get(name)
			if e.extends == "" {
				return nil
			}
			return []string{e.extends}
		},
		Starts: starts,
	})
	for _, err := range errs {
		switch e := err.(type) {
		case graphcycle.CycleError[string]:
			for _, name := range e.Path {
				f.broken[name] = true
			}
			f.add(metaerrors.ErrExtendsCycle, elementPath(e.Key), "element inheritance cycle: %s", strings.Join(e.Path, " -> "))
		case graphcycle.MissingError[string]:
			f.broken[e.From] = true
			f.add(metaerrors.ErrMissingParent, elementPath(e.From), "parent element %q is not defined", e.Key)
		default:
			f.add(metaerrors.ErrExtendsCycle, "", "%v", err)
		}
	}
	for e := range d.elements.all() {
		f.resolve(e)
	}
}

// resolve links e to its parent and builds the inherited property table.
// Elements whose chain is broken stay unresolved; the cause has already
// been reported.
func (f *finalizer) resolve(e *ElementDefn) bool {
	if e.resolved {
		return true
	}
	if f.broken[e.name] {
		return false
	}
	var parent *ElementDefn
	if e.extends != "" {
		parent, _ = f.d.elements.get(e.extends)
		if !f.resolve(parent) {
			f.broken[e.name] = true
			return false
		}
		if !parent.canExtend {
			f.add(metaerrors.ErrCannotExtend, elementPath(e.name), "element %q cannot be extended", parent.name)
		}
	}
	e.parent = parent

	if e.namespace.ID == namespaces.Inherit {
		if parent != nil {
			e.namespace = parent.namespace
		} else {
			e.namespace = namespaces.Resolution{ID: namespaces.None}
		}
	}
	if !e.nameOptionSet && parent != nil {
		e.nameOption = parent.nameOption
	}

	e.all = make([]*PropertyDefn, 0, len(e.properties))
	e.allIndex = make(map[string]*PropertyDefn, len(e.properties))
	if parent != nil {
		e.all = append(e.all, parent.all...)
		maps.Copy(e.allIndex, parent.allIndex)
	}
	for _, p := range e.properties {
		if _, inherited := e.allIndex[p.name]; inherited {
			f.add(metaerrors.ErrDuplicateProperty, elementPath(e.name)+"/Property["+p.name+"]",
				"property %q is already defined by an ancestor", p.name)
			continue
		}
		e.all = append(e.all, p)
		e.allIndex[p.name] = p
	}
	e.resolved = true
	return true
}

func (f *finalizer) checkElement(e *ElementDefn) {
	path := elementPath(e.name)

	if style, ok := f.d.elements.get(StyleElement); ok && style.resolved {
		for _, name := range e.styleProps {
			if _, found := style.allIndex[name]; !found {
				f.add(metaerrors.ErrUnresolvedReference, path, "style property %q is not defined by %s", name, StyleElement)
			}
		}
	}
	if e.resolved {
		for _, name := range slices.Sorted(maps.Keys(e.visibility)) {
			if _, found := e.allIndex[name]; !found {
				f.add(metaerrors.ErrUnresolvedReference, path, "visibility names undefined property %q", name)
			}
		}
	}
	f.checkTriggers(path, e.triggers)
	for _, p := range e.properties {
		f.checkProperty(path+"/Property["+p.name+"]", p)
	}
	for _, s := range e.slots {
		slotPath := path + "/Slot[" + s.name + "]"
		s.types = s.types[:0]
		for _, name := range s.typeNames {
			t, ok := f.d.elements.get(name)
			if !ok {
				f.add(metaerrors.ErrUnresolvedReference, slotPath, "slot type %q is not defined", name)
				continue
			}
			s.types = append(s.types, t)
		}
		f.checkTriggers(slotPath, s.triggers)
	}
}

func (f *finalizer) checkProperty(path string, p *PropertyDefn) {
	if p.valueValidator != "" {
		if _, ok := f.d.valueValidators.get(p.valueValidator); !ok {
			f.add(metaerrors.ErrUnresolvedReference, path, "value validator %q is not defined", p.valueValidator)
		}
	}
	f.checkTriggers(path, p.triggers)

	switch p.detail.kind {
	case DetailElement:
		target, ok := f.d.elements.get(p.detail.name)
		if !ok {
			f.add(metaerrors.ErrUnresolvedReference, path, "referenced element %q is not defined", p.detail.name)
			return
		}
		p.detail.element = target
	case DetailElementTypes:
		p.detail.elements = p.detail.elements[:0]
		for _, name := range p.detail.names {
			t, ok := f.d.elements.get(name)
			if !ok {
				f.add(metaerrors.ErrUnresolvedReference, path, "allowed element type %q is not defined", name)
				continue
			}
			p.detail.elements = append(p.detail.elements, t)
		}
	case DetailStructure:
		if p.detail.structure != nil {
			return
		}
		s, ok := f.d.structures.get(p.detail.name)
		if !ok {
			f.add(metaerrors.ErrUnresolvedReference, path, "structure %q is not defined", p.detail.name)
			return
		}
		p.detail.structure = s
	}
}

func (f *finalizer) checkTriggers(path string, triggers []*SemanticTriggerDefn) {
	for _, t := range triggers {
		v, ok := f.d.semanticValidators.get(t.validatorName)
		if !ok {
			f.add(metaerrors.ErrUnresolvedReference, path, "semantic validator %q is not defined", t.validatorName)
		} else {
			t.validator = v
		}
		if t.targetElement != "" {
			if _, ok := f.d.elements.get(t.targetElement); !ok {
				f.add(metaerrors.ErrUnresolvedReference, path, "trigger target element %q is not defined", t.targetElement)
			}
		}
	}
}
