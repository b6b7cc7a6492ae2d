package schema

import "github.com/marcmengel/fhicl-cpp/pset"

// Category tags which concrete descriptor kind a Parameter is.
type Category int

const (
	CategoryAtom Category = iota
	CategorySequence
	CategoryTuple
	CategoryTable
)

func (c Category) String() string {
	switch c {
	case CategoryAtom:
		return "atom"
	case CategorySequence:
		return "sequence"
	case CategoryTuple:
		return "tuple"
	case CategoryTable:
		return "table"
	default:
		return "?"
	}
}

// Presence tags how a descriptor's absence from the input is handled.
type Presence int

const (
	PresenceRequired Presence = iota
	PresenceRequiredConditional
	PresenceDefault
	PresenceOptional
)

func (p Presence) String() string {
	switch p {
	case PresenceRequired:
		return "REQUIRED"
	case PresenceRequiredConditional:
		return "REQUIRED_CONDITIONAL"
	case PresenceDefault:
		return "DEFAULT"
	case PresenceOptional:
		return "OPTIONAL"
	default:
		return "?"
	}
}

// Parameter is the abstract schema node every concrete descriptor
// (Atom, Sequence, Tuple2/3/4, Table) implements. It carries metadata and
// the two hooks the validation driver and Walker dispatch through.
type Parameter interface {
	Name() string
	Key() string
	Comment() string
	Category() Category
	Presence() Presence
	HasDefault() bool
	IsOptional() bool

	// children lists this descriptor's schema-declared children, in
	// declaration order. Leaves (Atom) return nil.
	children() []Parameter
	// setValue is do_set_value: read this descriptor's own key from ps
	// (the ParameterSet at the level containing it) and populate its value
	// slot. It returns every issue found; it never stops at the first one.
	setValue(ps pset.ParameterSet) Issues
	// schemaCheck contributes this descriptor's own phase-1 schema-defect
	// findings, independent of nesting (nesting rules are enforced by the
	// Walker-driven pre-check in validate.go).
	schemaCheck() Issues
}

// base implements the metadata common to every concrete descriptor. It
// deliberately does not implement Parameter on its own: children/setValue/
// schemaCheck are supplied by the embedding concrete type.
type base struct {
	name     string
	key      string
	comment  string
	category Category
	presence Presence
}

func (b *base) Name() string       { return b.name }
func (b *base) Key() string        { return b.key }
func (b *base) Comment() string    { return b.comment }
func (b *base) Category() Category { return b.category }
func (b *base) Presence() Presence { return b.presence }
func (b *base) HasDefault() bool   { return b.presence == PresenceDefault }
func (b *base) IsOptional() bool   { return b.presence == PresenceOptional }
