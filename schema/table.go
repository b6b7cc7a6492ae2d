package schema

import (
	"github.com/marcmengel/fhicl-cpp/internal/i18n"
	"github.com/marcmengel/fhicl-cpp/pset"
)

// Table is a nested named group of descriptors, described by a Go struct
// type T whose fields are themselves *Atom[X], *Sequence[X], *Tuple2/3/4,
// or *Table[Y] values built inside build. It is also the schema root: the
// zero-comment, zero-key Table returned by a package's top-level
// constructor is what ValidateParameterSet is called on.
type Table[T any] struct {
	base
	value        T
	kids         []Parameter
	keysToIgnore map[string]struct{}
	wasSet       bool
	sourcePset   pset.ParameterSet
}

func newTable[T any](name, comment string, presence Presence, build func() T) *Table[T] {
	beginCtor(name)
	key := currentPath()
	val := build()
	kids := endCtor(name)
	t := &Table[T]{
		base:         base{name: name, key: key, comment: comment, category: CategoryTable, presence: presence},
		value:        val,
		kids:         kids,
		keysToIgnore: map[string]struct{}{},
	}
	registerChild(t)
	return t
}

// NewTable declares a required nested table. build is invoked immediately,
// with this table's name already on the construction stack, so every
// descriptor it constructs learns its correct dotted key.
func NewTable[T any](name, comment string, build func() T) *Table[T] {
	return newTable[T](name, comment, PresenceRequired, build)
}

// NewOptionalTable declares a nested table that may be entirely absent.
func NewOptionalTable[T any](name, comment string, build func() T) *Table[T] {
	return newTable[T](name, comment, PresenceOptional, build)
}

// WithKeysToIgnore excludes the given top-level key names from this
// table's ExtraKeys check, for tables that legitimately carry keys no
// descriptor models (metadata blocks, tool-specific overrides). It returns
// the receiver for chaining right after construction.
func (t *Table[T]) WithKeysToIgnore(names ...string) *Table[T] {
	for _, n := range names {
		t.keysToIgnore[n] = struct{}{}
	}
	return t
}

// Value returns the populated struct of descriptors after a successful
// validation.
func (t *Table[T]) Value() T { return t.value }

// Present reports whether an OPTIONAL table was bound by the input.
func (t *Table[T]) Present() bool { return t.wasSet }

// PSet returns the ParameterSet this table validated against, for callers
// that need raw access alongside the typed view (e.g. to re-print it).
func (t *Table[T]) PSet() pset.ParameterSet { return t.sourcePset }

func (t *Table[T]) children() []Parameter { return t.kids }

// ValidateParameterSet runs the two-phase validate-then-set driver against
// ps: a schema pre-check (phase 1, raised as SchemaError and never
// aggregated with ValidationException), then key reconciliation and
// per-child conversion (phases 2-4, aggregated into one ValidationException
// if anything at all is wrong). extraKeysToIgnore supplements this table's
// own WithKeysToIgnore set for this call only.
func (t *Table[T]) ValidateParameterSet(ps pset.ParameterSet, extraKeysToIgnore ...string) error {
	if iss := schemaPreCheck(t); len(iss) > 0 {
		reason := iss[0].Hint
		if reason == "" {
			reason = iss[0].Message
		}
		return &SchemaError{Reason: reason, Path: iss[0].Path}
	}
	iss := t.validateAgainst(ps, extraKeysToIgnore...)
	if len(iss) > 0 {
		return NewValidationException(iss)
	}
	t.sourcePset = ps
	t.wasSet = true
	return nil
}

// validateAgainst implements this table's own share of phases 2-4: extra
// keys not modeled by any child are flagged (unless ignored), then every
// child descriptor is dispatched in declaration order. NewSequenceOfTable
// also calls this directly, once per sequence element, against a
// freshly-minted *Table[U] and a ParameterSet wrapping just that element's
// value.
func (t *Table[T]) validateAgainst(ps pset.ParameterSet, extraIgnore ...string) Issues {
	var iss Issues
	expected := map[string]struct{}{}
	for _, c := range t.kids {
		expected[c.Name()] = struct{}{}
	}
	ignore := map[string]struct{}{}
	for k := range t.keysToIgnore {
		ignore[k] = struct{}{}
	}
	for _, k := range extraIgnore {
		ignore[k] = struct{}{}
	}
	for _, k := range ps.Keys() {
		if _, ok := expected[k]; ok {
			continue
		}
		if _, ok := ignore[k]; ok {
			continue
		}
		iss = append(iss, IssueAt(KeyRefFromPath(t.childKey(k)), CodeExtraKeys, i18n.T(CodeExtraKeys, nil)))
	}
	for _, c := range t.kids {
		iss = append(iss, c.setValue(ps)...)
	}
	return iss
}

func (t *Table[T]) childKey(name string) string {
	return KeyRefFromPath(t.key).Field(name).Path()
}

func (t *Table[T]) setValue(ps pset.ParameterSet) Issues {
	if !ps.Has(t.name) {
		if t.presence == PresenceOptional {
			t.wasSet = false
			return nil
		}
		return Issues{IssueAt(KeyRefFromPath(t.key), CodeMissingKey, i18n.T(CodeMissingKey, nil))}
	}
	sub, err := ps.GetTable(t.name)
	if err != nil {
		return Issues{IssueAt(KeyRefFromPath(t.key), CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{"detail": err.Error()}))}
	}
	iss := t.validateAgainst(sub)
	if len(iss) > 0 {
		return iss
	}
	t.sourcePset = sub
	t.wasSet = true
	return nil
}

// schemaCheck flags sibling descriptors declared with the same name inside
// one build func: the second one to register silently wins in expected[]
// during validateAgainst, so this must be caught before any input is even
// consulted.
func (t *Table[T]) schemaCheck() Issues {
	seen := map[string]struct{}{}
	var iss Issues
	for _, c := range t.kids {
		name := c.Name()
		if _, dup := seen[name]; dup {
			iss = append(iss, Issue{
				Path:    t.childKey(name),
				Code:    CodeSchemaError,
				Message: i18n.T(CodeSchemaError, nil),
				Hint:    ReasonDuplicateSiblingName,
			})
			continue
		}
		seen[name] = struct{}{}
	}
	return iss
}
