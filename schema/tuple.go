package schema

import (
	"fmt"

	"github.com/marcmengel/fhicl-cpp/internal/i18n"
	"github.com/marcmengel/fhicl-cpp/pset"
	"github.com/zclconf/go-cty/cty"
)

// tupleBase is the untyped core shared by Tuple2/Tuple3/Tuple4: a
// fixed-arity, heterogeneous sequence, represented internally as []any and
// exposed through typed GetN accessors on the generic wrapper types. This
// is the "small generated-or-macro shim over a vector of child descriptors"
// shape: Go generics don't let one type range over an arbitrary slot
// count, so the shim is three concrete arities instead of one variadic
// template.
type tupleBase struct {
	base
	slotConv   []func(key string, raw cty.Value) (any, Issues)
	slots      []Parameter
	values     []any
	hasDefault bool
	def        []any
	wasSet     bool
}

func newTupleBase(name, comment string, presence Presence, slotConv []func(string, cty.Value) (any, Issues), hasDefault bool, def []any) *tupleBase {
	beginCtor(name)
	key := currentPath()
	slots := make([]Parameter, len(slotConv))
	ref := KeyRefFromPath(key)
	for i := range slotConv {
		slots[i] = newElementPlaceholder(fmt.Sprintf("[%d]", i), ref.Index(i).Path())
	}
	t := &tupleBase{
		base:       base{name: name, key: key, comment: comment, category: CategoryTuple, presence: presence},
		slotConv:   slotConv,
		slots:      slots,
		hasDefault: hasDefault,
		def:        def,
	}
	endCtor(name)
	registerChild(t)
	return t
}

func (t *tupleBase) Present() bool { return t.wasSet }

func (t *tupleBase) children() []Parameter { return t.slots }

func (t *tupleBase) schemaCheck() Issues { return nil }

func (t *tupleBase) setValue(ps pset.ParameterSet) Issues {
	arity := len(t.slotConv)
	if !ps.Has(t.name) {
		switch t.presence {
		case PresenceDefault:
			t.values = t.def
			t.wasSet = true
			return nil
		case PresenceOptional:
			t.wasSet = false
			return nil
		default:
			return Issues{IssueAt(KeyRefFromPath(t.key), CodeMissingKey, i18n.T(CodeMissingKey, nil))}
		}
	}
	ref := KeyRefFromPath(t.key)
	raw, err := ps.GetSequence(t.name)
	if err != nil {
		return Issues{IssueAt(ref, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{"detail": err.Error()}))}
	}
	if len(raw) != arity {
		detail := fmt.Sprintf("expected %d elements, got %d", arity, len(raw))
		return Issues{IssueAt(ref, CodeArityMismatch, i18n.T(CodeArityMismatch, map[string]string{"detail": detail}))}
	}
	var iss Issues
	out := make([]any, arity)
	for i, elem := range raw {
		v, elemIss := t.slotConv[i](ref.Index(i).Path(), elem)
		if len(elemIss) > 0 {
			iss = append(iss, elemIss...)
			continue
		}
		out[i] = v
	}
	if len(iss) > 0 {
		return iss
	}
	t.values = out
	t.wasSet = true
	return nil
}

func (t *tupleBase) get(i int) (any, error) {
	if t.presence == PresenceOptional && !t.wasSet {
		return nil, &LookupError{Key: t.key}
	}
	return t.values[i], nil
}

// Tuple2 is a fixed two-slot heterogeneous tuple.
type Tuple2[A, B any] struct{ *tupleBase }

func NewTuple2[A, B any](name, comment string) *Tuple2[A, B] {
	return &Tuple2[A, B]{newTupleBase(name, comment, PresenceRequired,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B]}, false, nil)}
}

func NewOptionalTuple2[A, B any](name, comment string) *Tuple2[A, B] {
	return &Tuple2[A, B]{newTupleBase(name, comment, PresenceOptional,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B]}, false, nil)}
}

// NewTuple2WithDefault declares a tuple that takes (defA, defB) when
// entirely absent from the input.
func NewTuple2WithDefault[A, B any](name, comment string, defA A, defB B) *Tuple2[A, B] {
	return &Tuple2[A, B]{newTupleBase(name, comment, PresenceDefault,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B]}, true, []any{defA, defB})}
}

func (t *Tuple2[A, B]) Get0() A { v, _ := t.get(0); a, _ := v.(A); return a }
func (t *Tuple2[A, B]) Get1() B { v, _ := t.get(1); b, _ := v.(B); return b }

// Tuple3 is a fixed three-slot heterogeneous tuple.
type Tuple3[A, B, C any] struct{ *tupleBase }

func NewTuple3[A, B, C any](name, comment string) *Tuple3[A, B, C] {
	return &Tuple3[A, B, C]{newTupleBase(name, comment, PresenceRequired,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B], convertPrimitiveAny[C]}, false, nil)}
}

func NewOptionalTuple3[A, B, C any](name, comment string) *Tuple3[A, B, C] {
	return &Tuple3[A, B, C]{newTupleBase(name, comment, PresenceOptional,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B], convertPrimitiveAny[C]}, false, nil)}
}

// NewTuple3WithDefault declares a tuple that takes (defA, defB, defC) when
// entirely absent from the input.
func NewTuple3WithDefault[A, B, C any](name, comment string, defA A, defB B, defC C) *Tuple3[A, B, C] {
	return &Tuple3[A, B, C]{newTupleBase(name, comment, PresenceDefault,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B], convertPrimitiveAny[C]}, true, []any{defA, defB, defC})}
}

func (t *Tuple3[A, B, C]) Get0() A { v, _ := t.get(0); a, _ := v.(A); return a }
func (t *Tuple3[A, B, C]) Get1() B { v, _ := t.get(1); b, _ := v.(B); return b }
func (t *Tuple3[A, B, C]) Get2() C { v, _ := t.get(2); c, _ := v.(C); return c }

// Tuple4 is a fixed four-slot heterogeneous tuple.
type Tuple4[A, B, C, D any] struct{ *tupleBase }

func NewTuple4[A, B, C, D any](name, comment string) *Tuple4[A, B, C, D] {
	return &Tuple4[A, B, C, D]{newTupleBase(name, comment, PresenceRequired,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B], convertPrimitiveAny[C], convertPrimitiveAny[D]}, false, nil)}
}

func NewOptionalTuple4[A, B, C, D any](name, comment string) *Tuple4[A, B, C, D] {
	return &Tuple4[A, B, C, D]{newTupleBase(name, comment, PresenceOptional,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B], convertPrimitiveAny[C], convertPrimitiveAny[D]}, false, nil)}
}

// NewTuple4WithDefault declares a tuple that takes (defA, defB, defC, defD)
// when entirely absent from the input.
func NewTuple4WithDefault[A, B, C, D any](name, comment string, defA A, defB B, defC C, defD D) *Tuple4[A, B, C, D] {
	return &Tuple4[A, B, C, D]{newTupleBase(name, comment, PresenceDefault,
		[]func(string, cty.Value) (any, Issues){convertPrimitiveAny[A], convertPrimitiveAny[B], convertPrimitiveAny[C], convertPrimitiveAny[D]}, true, []any{defA, defB, defC, defD})}
}

func (t *Tuple4[A, B, C, D]) Get0() A { v, _ := t.get(0); a, _ := v.(A); return a }
func (t *Tuple4[A, B, C, D]) Get1() B { v, _ := t.get(1); b, _ := v.(B); return b }
func (t *Tuple4[A, B, C, D]) Get2() C { v, _ := t.get(2); c, _ := v.(C); return c }
func (t *Tuple4[A, B, C, D]) Get3() D { v, _ := t.get(3); d, _ := v.(D); return d }
