package schema

import (
	"errors"
	"testing"

	"github.com/marcmengel/fhicl-cpp/pset"
)

// S1: bounded sequence, defaulted.
func TestSequence_BoundedDefaulted(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		Composers *Sequence[string]
	} {
		return struct {
			Composers *Sequence[string]
		}{
			Composers: NewSequenceOfAtomWithDefault[string]("composers", "", 2, []string{"Mahler", "Elgar"}),
		}
	})
	ps, err := pset.Make("t.fcl", ``, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := tbl.ValidateParameterSet(ps); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
	v := tbl.Value().Composers.Value()
	if len(v) != 2 || v[0] != "Mahler" || v[1] != "Elgar" {
		t.Fatalf("composers = %v, want [Mahler Elgar]", v)
	}
}

// S2: tuple, defaulted.
func TestTuple_Defaulted(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		Ages *Tuple2[string, int]
	} {
		return struct {
			Ages *Tuple2[string, int]
		}{Ages: NewTuple2WithDefault[string, int]("ages", "", "David", 9)}
	})
	ps, err := pset.Make("t.fcl", ``, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := tbl.ValidateParameterSet(ps); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
	ages := tbl.Value().Ages
	if ages.Get0() != "David" || ages.Get1() != 9 {
		t.Fatalf("ages = (%v, %v), want (David, 9)", ages.Get0(), ages.Get1())
	}
}

// Tuple3/Tuple4 get the same Optional/WithDefault family as Tuple2.
func TestTuple3AndTuple4_DefaultedAndOptional(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		Trio      *Tuple3[string, int, bool]
		Quad      *Tuple4[string, int, bool, string]
		Extra     *Tuple3[string, int, bool]
		ExtraQuad *Tuple4[string, int, bool, string]
	} {
		return struct {
			Trio      *Tuple3[string, int, bool]
			Quad      *Tuple4[string, int, bool, string]
			Extra     *Tuple3[string, int, bool]
			ExtraQuad *Tuple4[string, int, bool, string]
		}{
			Trio:      NewTuple3WithDefault[string, int, bool]("trio", "", "a", 1, true),
			Quad:      NewTuple4WithDefault[string, int, bool, string]("quad", "", "a", 1, true, "z"),
			Extra:     NewOptionalTuple3[string, int, bool]("extra", ""),
			ExtraQuad: NewOptionalTuple4[string, int, bool, string]("extra_quad", ""),
		}
	})
	ps, err := pset.Make("t.fcl", ``, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := tbl.ValidateParameterSet(ps); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
	v := tbl.Value()
	if v.Trio.Get0() != "a" || v.Trio.Get1() != 1 || v.Trio.Get2() != true {
		t.Fatalf("trio = (%v, %v, %v), want (a, 1, true)", v.Trio.Get0(), v.Trio.Get1(), v.Trio.Get2())
	}
	if v.Quad.Get3() != "z" {
		t.Fatalf("quad.Get3() = %v, want z", v.Quad.Get3())
	}
	if v.Extra.Present() {
		t.Fatalf("expected extra to be absent")
	}
	if v.ExtraQuad.Present() {
		t.Fatalf("expected extra_quad to be absent")
	}
}

// S3: arity mismatch on a bounded sequence.
func TestSequence_ArityMismatch(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		Composers *Sequence[string]
	} {
		return struct {
			Composers *Sequence[string]
		}{
			Composers: NewSequenceOfAtomWithDefault[string]("composers", "", 2, []string{"Mahler", "Elgar"}),
		}
	})
	ps, err := pset.Make("t.fcl", `composers: ["Beethoven"]`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = tbl.ValidateParameterSet(ps)
	if err == nil {
		t.Fatalf("expected ValidationException for arity mismatch")
	}
	var ve *ValidationException
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationException, got %T: %v", err, err)
	}
	found := false
	for _, iss := range ve.Issues {
		if iss.Code == CodeArityMismatch && iss.Path == "composers" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ArityMismatch at composers, got %+v", ve.Issues)
	}
}

// S4: tuple arity mismatch.
func TestTuple_ArityMismatch(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		Ages *Tuple2[string, int]
	} {
		return struct {
			Ages *Tuple2[string, int]
		}{Ages: NewTuple2[string, int]("ages", "")}
	})
	ps, err := pset.Make("t.fcl", `ages: ["Jenny"]`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = tbl.ValidateParameterSet(ps)
	if err == nil {
		t.Fatalf("expected ValidationException for tuple arity mismatch")
	}
	var ve *ValidationException
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationException, got %T: %v", err, err)
	}
	if len(ve.Issues) != 1 || ve.Issues[0].Code != CodeArityMismatch {
		t.Fatalf("expected exactly one ArityMismatch, got %+v", ve.Issues)
	}
}

// S5: extra key.
func TestTable_ExtraKey(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		N *Atom[int]
	} {
		return struct{ N *Atom[int] }{N: NewAtomWithDefault[int]("n", "", 0)}
	})
	ps, err := pset.Make("t.fcl", `n: 3 extra: 1`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = tbl.ValidateParameterSet(ps)
	if err == nil {
		t.Fatalf("expected ValidationException for the extra key")
	}
	var ve *ValidationException
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationException, got %T: %v", err, err)
	}
	if len(ve.Issues) != 1 || ve.Issues[0].Code != CodeExtraKeys || ve.Issues[0].Path != "extra" {
		t.Fatalf("expected exactly one ExtraKeys at extra, got %+v", ve.Issues)
	}
}

func TestTable_ExtraKeyIgnoredWhenListed(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		N *Atom[int]
	} {
		return struct{ N *Atom[int] }{N: NewAtomWithDefault[int]("n", "", 0)}
	})
	tbl.WithKeysToIgnore("extra")
	ps, err := pset.Make("t.fcl", `n: 3 extra: 1`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := tbl.ValidateParameterSet(ps); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
}

// S6: optional atom, both absent and present.
func TestOptionalAtom_AbsentAndPresent(t *testing.T) {
	build := func() struct {
		N *Atom[int]
	} {
		return struct{ N *Atom[int] }{N: NewOptionalAtom[int]("n", "")}
	}

	absent := NewTable("", "", build)
	ps, err := pset.Make("t.fcl", ``, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := absent.ValidateParameterSet(ps); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
	if absent.Value().N.Present() {
		t.Fatalf("expected n to be absent")
	}
	if _, err := absent.Value().N.Get(); err == nil {
		t.Fatalf("expected LookupError from Get() on an absent optional")
	}

	present := NewTable("", "", build)
	ps2, err := pset.Make("t.fcl", `n: 7`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := present.ValidateParameterSet(ps2); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
	if !present.Value().N.Present() {
		t.Fatalf("expected n to be present")
	}
	if v, err := present.Value().N.Get(); err != nil || v != 7 {
		t.Fatalf("Get() = (%d, %v), want (7, nil)", v, err)
	}
}

func TestSchemaPreCheck_RejectsNestedOptional(t *testing.T) {
	outer := NewTable("", "", func() struct {
		Inner *Table[struct{ N *Atom[int] }]
	} {
		return struct {
			Inner *Table[struct{ N *Atom[int] }]
		}{
			Inner: NewOptionalTable("inner", "", func() struct{ N *Atom[int] } {
				return struct{ N *Atom[int] }{N: NewOptionalAtom[int]("n", "")}
			}),
		}
	})
	ps, err := pset.Make("t.fcl", ``, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = outer.ValidateParameterSet(ps)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError for a nested OPTIONAL, got %T: %v", err, err)
	}
}

func TestSchemaPreCheck_RejectsDuplicateSiblingName(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		A *Atom[int]
		B *Atom[int]
	} {
		return struct {
			A *Atom[int]
			B *Atom[int]
		}{A: NewAtom[int]("n", ""), B: NewAtom[int]("n", "")}
	})
	ps, err := pset.Make("t.fcl", `n: 3`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = tbl.ValidateParameterSet(ps)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError for a duplicate sibling name, got %T: %v", err, err)
	}
	if se.Reason != ReasonDuplicateSiblingName {
		t.Fatalf("Reason = %q, want %q", se.Reason, ReasonDuplicateSiblingName)
	}
}

// PrintReference should render one line per descriptor, positionally
// recursing into a Sequence's element schema and a Tuple's per-slot
// schema exactly as it recurses into a Table's fields.
func TestPrintReference_CoversAtomSequenceAndTuple(t *testing.T) {
	tbl := NewTable("cfg", "root config", func() struct {
		N    *Atom[int]
		Seq  *Sequence[string]
		Ages *Tuple2[string, int]
	} {
		return struct {
			N    *Atom[int]
			Seq  *Sequence[string]
			Ages *Tuple2[string, int]
		}{
			N:    NewAtom[int]("n", "count"),
			Seq:  NewSequenceOfAtomWithDefault[string]("names", "", 2, []string{"a", "b"}),
			Ages: NewTuple2[string, int]("ages", ""),
		}
	})
	want := `cfg : {  (REQUIRED)  # root config
   n : atom (REQUIRED)  # count
   names : sequence (DEFAULT)
      element : atom (REQUIRED)
   ages : tuple (REQUIRED)
      [0] : atom (REQUIRED)
      [1] : atom (REQUIRED)
}
`
	if got := PrintReference(tbl); got != want {
		t.Fatalf("PrintReference =\n%s\nwant\n%s", got, want)
	}
}

// A Sequence of tables validates each element independently, each getting
// its own materialized *Table[U] rather than sharing one.
func TestSequenceOfTable_ValidatesEachElementIndependently(t *testing.T) {
	build := func() struct{ Name *Atom[string] } {
		return struct{ Name *Atom[string] }{Name: NewAtom[string]("name", "")}
	}
	tbl := NewTable("", "", func() struct {
		Modules *Sequence[*Table[struct{ Name *Atom[string] }]]
	} {
		return struct {
			Modules *Sequence[*Table[struct{ Name *Atom[string] }]]
		}{Modules: NewSequenceOfTable("modules", "", -1, build)}
	})
	ps, err := pset.Make("t.fcl", `modules: [ { name: "a" } { name: "b" } ]`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if err := tbl.ValidateParameterSet(ps); err != nil {
		t.Fatalf("ValidateParameterSet: %v", err)
	}
	mods := tbl.Value().Modules.Value()
	if len(mods) != 2 || mods[0].Value().Name.Value() != "a" || mods[1].Value().Name.Value() != "b" {
		t.Fatalf("modules = %+v, want [a b]", mods)
	}
}

// Issues from independently-invalid elements of a Sequence of tables are
// aggregated, not short-circuited, like every other validation phase.
func TestSequenceOfTable_AggregatesPerElementIssues(t *testing.T) {
	build := func() struct{ Name *Atom[string] } {
		return struct{ Name *Atom[string] }{Name: NewAtom[string]("name", "")}
	}
	tbl := NewTable("", "", func() struct {
		Modules *Sequence[*Table[struct{ Name *Atom[string] }]]
	} {
		return struct {
			Modules *Sequence[*Table[struct{ Name *Atom[string] }]]
		}{Modules: NewSequenceOfTable("modules", "", -1, build)}
	})
	ps, err := pset.Make("t.fcl", `modules: [ { } { name: 5 } ]`, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = tbl.ValidateParameterSet(ps)
	var ve *ValidationException
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationException, got %T: %v", err, err)
	}
	if len(ve.Issues) != 2 {
		t.Fatalf("expected issues from both elements, got %+v", ve.Issues)
	}
}

func TestMissingRequiredAtom(t *testing.T) {
	tbl := NewTable("", "", func() struct {
		N *Atom[int]
	} {
		return struct{ N *Atom[int] }{N: NewAtom[int]("n", "")}
	})
	ps, err := pset.Make("t.fcl", ``, nil)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	err = tbl.ValidateParameterSet(ps)
	var ve *ValidationException
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationException, got %T: %v", err, err)
	}
	if len(ve.Issues) != 1 || ve.Issues[0].Code != CodeMissingKey {
		t.Fatalf("expected exactly one MissingKey, got %+v", ve.Issues)
	}
}
