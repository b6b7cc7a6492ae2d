package schema

import (
	"fmt"

	"github.com/marcmengel/fhicl-cpp/internal/i18n"
	"github.com/marcmengel/fhicl-cpp/pset"
	"github.com/zclconf/go-cty/cty"
)

// Sequence is an ordered, homogeneous collection of T, optionally bounded
// to an exact element count. arity < 0 means unbounded.
type Sequence[T any] struct {
	base
	arity      int
	hasDefault bool
	def        []T
	value      []T
	wasSet     bool
	elemConv   func(key string, raw cty.Value) (T, Issues)
	elem       Parameter
}

func newSequence[T any](
	name, comment string,
	presence Presence,
	arity int,
	hasDefault bool,
	def []T,
	elemConv func(string, cty.Value) (T, Issues),
) *Sequence[T] {
	beginCtor(name)
	key := currentPath()
	s := &Sequence[T]{
		base:       base{name: name, key: key, comment: comment, category: CategorySequence, presence: presence},
		arity:      arity,
		hasDefault: hasDefault,
		def:        def,
		elemConv:   elemConv,
		elem:       newElementPlaceholder("element", KeyRefFromPath(key).Field("element").Path()),
	}
	endCtor(name)
	registerChild(s)
	return s
}

// NewSequenceOfAtom declares a required sequence of scalar T. arity < 0
// leaves the length unbounded.
func NewSequenceOfAtom[T any](name, comment string, arity int) *Sequence[T] {
	return newSequence[T](name, comment, PresenceRequired, arity, false, nil, convertPrimitive[T])
}

// NewSequenceOfAtomWithDefault declares a sequence that takes def when
// absent. len(def) must equal arity when arity is bounded.
func NewSequenceOfAtomWithDefault[T any](name, comment string, arity int, def []T) *Sequence[T] {
	if arity >= 0 && len(def) != arity {
		panic(fmt.Sprintf("fhicl/schema: default sequence for %q has length %d, want %d", name, len(def), arity))
	}
	return newSequence[T](name, comment, PresenceDefault, arity, true, def, convertPrimitive[T])
}

// NewOptionalSequenceOfAtom declares a sequence that may be entirely
// absent.
func NewOptionalSequenceOfAtom[T any](name, comment string, arity int) *Sequence[T] {
	return newSequence[T](name, comment, PresenceOptional, arity, false, nil, convertPrimitive[T])
}

// newSequenceOfTable is the shared constructor behind NewSequenceOfTable
// and NewOptionalSequenceOfTable: each element is validated independently
// against a fresh instance of the table schema build produces, the same
// way a nested Table would validate one sub-object, rather than against a
// single shared descriptor whose value would be overwritten index by
// index. arity < 0 leaves the length unbounded.
func newSequenceOfTable[U any](name, comment string, presence Presence, arity int, build func() U) *Sequence[*Table[U]] {
	beginCtor(name)
	key := currentPath()
	proto := newTable[U]("element", "", PresenceRequired, build)
	s := &Sequence[*Table[U]]{
		base:     base{name: name, key: key, comment: comment, category: CategorySequence, presence: presence},
		arity:    arity,
		elem:     proto,
		elemConv: newTableElementConv[U](build),
	}
	endCtor(name)
	registerChild(s)
	return s
}

// newTableElementConv builds the elemConv used by a Sequence of tables: for
// each raw element it mints a brand-new *Table[U] (via newTable, exactly
// as a nested Table field would be constructed) keyed at the element's own
// position, then validates it against a ParameterSet wrapping just that
// element's value.
func newTableElementConv[U any](build func() U) func(string, cty.Value) (*Table[U], Issues) {
	return func(elemKey string, raw cty.Value) (*Table[U], Issues) {
		ref := KeyRefFromPath(elemKey)
		if raw.IsNull() || !raw.Type().IsObjectType() {
			return nil, Issues{IssueAt(ref, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{"detail": "value is not a table"}))}
		}
		child := newTable[U](elemKey, "", PresenceRequired, build)
		sub := pset.FromValue(raw, nil)
		if iss := child.validateAgainst(sub); len(iss) > 0 {
			return nil, iss
		}
		child.sourcePset = sub
		child.wasSet = true
		return child, nil
	}
}

// NewSequenceOfTable declares a required sequence whose elements are
// themselves tables shaped by build, e.g. a "sequence of tables" in
// spec vocabulary. arity < 0 leaves the length unbounded.
func NewSequenceOfTable[U any](name, comment string, arity int, build func() U) *Sequence[*Table[U]] {
	return newSequenceOfTable[U](name, comment, PresenceRequired, arity, build)
}

// NewOptionalSequenceOfTable declares a sequence of tables that may be
// entirely absent.
func NewOptionalSequenceOfTable[U any](name, comment string, arity int, build func() U) *Sequence[*Table[U]] {
	return newSequenceOfTable[U](name, comment, PresenceOptional, arity, build)
}

func (s *Sequence[T]) Value() []T { return s.value }

func (s *Sequence[T]) Present() bool { return s.wasSet }

func (s *Sequence[T]) Get() ([]T, error) {
	if s.presence == PresenceOptional && !s.wasSet {
		return nil, &LookupError{Key: s.key}
	}
	return s.value, nil
}

func (s *Sequence[T]) children() []Parameter { return []Parameter{s.elem} }

func (s *Sequence[T]) schemaCheck() Issues { return nil }

func (s *Sequence[T]) setValue(ps pset.ParameterSet) Issues {
	if !ps.Has(s.name) {
		switch s.presence {
		case PresenceDefault:
			s.value = s.def
			s.wasSet = true
			return nil
		case PresenceOptional:
			s.wasSet = false
			return nil
		default:
			return Issues{IssueAt(KeyRefFromPath(s.key), CodeMissingKey, i18n.T(CodeMissingKey, nil))}
		}
	}
	ref := KeyRefFromPath(s.key)
	raw, err := ps.GetSequence(s.name)
	if err != nil {
		return Issues{IssueAt(ref, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{"detail": err.Error()}))}
	}
	if s.arity >= 0 && len(raw) != s.arity {
		detail := fmt.Sprintf("expected %d elements, got %d", s.arity, len(raw))
		return Issues{IssueAt(ref, CodeArityMismatch, i18n.T(CodeArityMismatch, map[string]string{"detail": detail}))}
	}
	var iss Issues
	out := make([]T, len(raw))
	for i, elem := range raw {
		v, elemIss := s.elemConv(ref.Index(i).Path(), elem)
		if len(elemIss) > 0 {
			iss = append(iss, elemIss...)
			continue
		}
		out[i] = v
	}
	if len(iss) > 0 {
		return iss
	}
	s.value = out
	s.wasSet = true
	return nil
}
