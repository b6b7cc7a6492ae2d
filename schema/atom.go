package schema

import (
	"github.com/marcmengel/fhicl-cpp/internal/i18n"
	"github.com/marcmengel/fhicl-cpp/pset"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Atom is the leaf descriptor: a single scalar value of Go type T, backed
// by one of string/bool/int*/float*/uint* (any type gocty knows how to
// decode a cty.Value into). The same struct serves all three presence
// variants named in the schema vocabulary (plain, DEFAULT, OPTIONAL); which
// constructor you call decides which.
type Atom[T any] struct {
	base
	hasDefault bool
	def        T
	value      T
	wasSet     bool
}

func newAtom[T any](name, comment string, presence Presence, hasDefault bool, def T) *Atom[T] {
	beginCtor(name)
	key := currentPath()
	a := &Atom[T]{
		base:       base{name: name, key: key, comment: comment, category: CategoryAtom, presence: presence},
		hasDefault: hasDefault,
		def:        def,
	}
	endCtor(name)
	registerChild(a)
	return a
}

// NewAtom declares a required scalar.
func NewAtom[T any](name, comment string) *Atom[T] {
	var zero T
	return newAtom[T](name, comment, PresenceRequired, false, zero)
}

// NewAtomWithDefault declares a scalar that takes def when absent.
func NewAtomWithDefault[T any](name, comment string, def T) *Atom[T] {
	return newAtom[T](name, comment, PresenceDefault, true, def)
}

// NewOptionalAtom declares a scalar that may be entirely absent. Presence
// OPTIONAL and a default are mutually exclusive by construction: there is
// no NewOptionalAtomWithDefault.
func NewOptionalAtom[T any](name, comment string) *Atom[T] {
	var zero T
	return newAtom[T](name, comment, PresenceOptional, false, zero)
}

// Value returns the populated value after a successful validation. It is
// the zero value of T before validation, or for an absent OPTIONAL atom.
func (a *Atom[T]) Value() T { return a.value }

// Present reports whether this OPTIONAL atom was bound by the input.
// Always true for non-OPTIONAL atoms once validation has succeeded.
func (a *Atom[T]) Present() bool { return a.wasSet }

// Get mirrors Present with the LookupError accessor shape used throughout
// the package: an absent OPTIONAL atom reports LookupError rather than
// silently returning the zero value.
func (a *Atom[T]) Get() (T, error) {
	if a.presence == PresenceOptional && !a.wasSet {
		var zero T
		return zero, &LookupError{Key: a.key}
	}
	return a.value, nil
}

func (a *Atom[T]) children() []Parameter { return nil }

func (a *Atom[T]) schemaCheck() Issues { return nil }

func (a *Atom[T]) setValue(ps pset.ParameterSet) Issues {
	if !ps.Has(a.name) {
		switch a.presence {
		case PresenceDefault:
			a.value = a.def
			a.wasSet = true
			return nil
		case PresenceOptional:
			a.wasSet = false
			return nil
		default:
			return Issues{IssueAt(KeyRefFromPath(a.key), CodeMissingKey, i18n.T(CodeMissingKey, nil))}
		}
	}
	raw, _ := ps.Get(a.name)
	v, iss := convertPrimitive[T](a.key, raw)
	if len(iss) > 0 {
		return iss
	}
	a.value = v
	a.wasSet = true
	return nil
}

// convertPrimitive converts a parsed cty.Value into T, lossless coercion
// only: gocty.FromCtyValue rejects a number that can't round-trip exactly
// into an integer Go type, which is exactly the "coerce numerics only when
// lossless" rule the schema enforces.
func convertPrimitive[T any](key string, raw cty.Value) (T, Issues) {
	var out T
	ref := KeyRefFromPath(key)
	if raw.IsNull() {
		return out, Issues{IssueAt(ref, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{"detail": "value is nil"}))}
	}
	if err := gocty.FromCtyValue(raw, &out); err != nil {
		code := CodeTypeMismatch
		if raw.Type().Equals(cty.Number) {
			code = CodeOutOfRange
		}
		return out, Issues{IssueAt(ref, code, i18n.T(code, map[string]string{"detail": err.Error()}))}
	}
	return out, nil
}

func convertPrimitiveAny[T any](key string, raw cty.Value) (any, Issues) {
	return convertPrimitive[T](key, raw)
}
