package schema

import "github.com/marcmengel/fhicl-cpp/pset"

// elementPlaceholder is the Walk-visible node standing in for a Sequence's
// scalar element type or a Tuple's per-slot type. It carries no value of
// its own and is never asked to set one directly (Sequence/Tuple convert
// each positional raw value themselves); it exists only so Walk has a real
// child Parameter to recurse into, per the "walker iterates elements in
// positional order" rule for sequences and tuples alike.
type elementPlaceholder struct{ base }

func newElementPlaceholder(name, key string) *elementPlaceholder {
	return &elementPlaceholder{base: base{name: name, key: key, category: CategoryAtom, presence: PresenceRequired}}
}

func (e *elementPlaceholder) children() []Parameter             { return nil }
func (e *elementPlaceholder) schemaCheck() Issues                { return nil }
func (e *elementPlaceholder) setValue(pset.ParameterSet) Issues { return nil }
