package metadata

import (
	"iter"
	"slices"

	"github.com/jacoelho/romdict/internal/propvalue"
	"github.com/jacoelho/romdict/validator"
)

// registry keeps entities by unique name in declaration order.
type registry[T any] struct {
	byName  map[string]T
	ordered []T
}

func (r *registry[T]) add(name string, v T) bool {
	if r.byName == nil {
		r.byName = make(map[string]T)
	}
	if _, exists := r.byName[name]; exists {
		return false
	}
	r.byName[name] = v
	r.ordered = append(r.ordered, v)
	return true
}

func (r *registry[T]) get(name string) (T, bool) {
	v, ok := r.byName[name]
	return v, ok
}

func (r *registry[T]) all() iter.Seq[T] { return slices.Values(r.ordered) }

func (r *registry[T]) len() int { return len(r.ordered) }

// Dictionary is the process-wide type dictionary built from definition
// files. It is mutated only by a Builder and is read-only once finalized,
// after which it is safe for concurrent readers.
type Dictionary struct {
	elements           registry[*ElementDefn]
	structures         registry[*StructureDefn]
	choiceSets         registry[*ChoiceSet]
	classes            registry[*ClassInfo]
	styles             registry[*PredefinedStyle]
	valueValidators    registry[validator.Value]
	semanticValidators registry[validator.Semantic]

	finalized bool
}

// NewDictionary returns an empty dictionary holding only the built-in
// colors and units choice sets.
func NewDictionary() *Dictionary {
	d := &Dictionary{}
	d.choiceSets.add(ColorsChoiceSet, builtinChoiceSet(ColorsChoiceSet, colorNames))
	d.choiceSets.add(UnitsChoiceSet, builtinChoiceSet(UnitsChoiceSet, unitNames))
	return d
}

// Finalized reports whether Finalize completed successfully.
func (d *Dictionary) Finalized() bool { return d.finalized }

func (d *Dictionary) Element(name string) (*ElementDefn, bool)     { return d.elements.get(name) }
func (d *Dictionary) Structure(name string) (*StructureDefn, bool) { return d.structures.get(name) }
func (d *Dictionary) ChoiceSet(name string) (*ChoiceSet, bool)     { return d.choiceSets.get(name) }
func (d *Dictionary) Class(name string) (*ClassInfo, bool)         { return d.classes.get(name) }

func (d *Dictionary) PredefinedStyle(name string) (*PredefinedStyle, bool) {
	return d.styles.get(name)
}

func (d *Dictionary) ValueValidator(name string) (validator.Value, bool) {
	return d.valueValidators.get(name)
}

func (d *Dictionary) SemanticValidator(name string) (validator.Semantic, bool) {
	return d.semanticValidators.get(name)
}

// PropertyType returns the property type with the given definition name.
func (d *Dictionary) PropertyType(name string) (*PropertyType, bool) {
	return LookupPropertyType(name)
}

// Elements iterates the elements in declaration order.
func (d *Dictionary) Elements() iter.Seq[*ElementDefn]                 { return d.elements.all() }
func (d *Dictionary) Structures() iter.Seq[*StructureDefn]             { return d.structures.all() }
func (d *Dictionary) ChoiceSets() iter.Seq[*ChoiceSet]                 { return d.choiceSets.all() }
func (d *Dictionary) Classes() iter.Seq[*ClassInfo]                    { return d.classes.all() }
func (d *Dictionary) PredefinedStyles() iter.Seq[*PredefinedStyle]     { return d.styles.all() }
func (d *Dictionary) ValueValidators() iter.Seq[validator.Value]       { return d.valueValidators.all() }
func (d *Dictionary) SemanticValidators() iter.Seq[validator.Semantic] { return d.semanticValidators.all() }

// Counts reports the number of entities of each kind.
type Counts struct {
	Elements           int
	Structures         int
	ChoiceSets         int
	Classes            int
	PredefinedStyles   int
	ValueValidators    int
	SemanticValidators int
}

// Counts returns the entity counts.
func (d *Dictionary) Counts() Counts {
	return Counts{
		Elements:           d.elements.len(),
		Structures:         d.structures.len(),
		ChoiceSets:         d.choiceSets.len(),
		Classes:            d.classes.len(),
		PredefinedStyles:   d.styles.len(),
		ValueValidators:    d.valueValidators.len(),
		SemanticValidators: d.semanticValidators.len(),
	}
}

func (d *Dictionary) unitLookup() propvalue.Lookup {
	units, _ := d.choiceSets.get(UnitsChoiceSet)
	return units.lookup
}

func (d *Dictionary) colorLookup() propvalue.Lookup {
	colors, _ := d.choiceSets.get(ColorsChoiceSet)
	return colors.lookup
}
