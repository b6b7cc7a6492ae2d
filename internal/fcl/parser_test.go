package fcl

import (
	"testing"

	"github.com/zclconf/go-cty/cty"
)

func TestParse_SimpleTable(t *testing.T) {
	v, locs, err := Parse("t.fcl", `n: 3 s: "hi" b: true seq: [1,2,3]`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !v.Type().IsObjectType() {
		t.Fatalf("expected object type, got %s", v.Type().FriendlyName())
	}
	n := v.GetAttr("n")
	f, _ := n.AsBigFloat().Float64()
	if f != 3 {
		t.Fatalf("n = %v, want 3", f)
	}
	if v.GetAttr("s").AsString() != "hi" {
		t.Fatalf("s = %v, want hi", v.GetAttr("s"))
	}
	if !v.GetAttr("b").True() {
		t.Fatalf("b = %v, want true", v.GetAttr("b"))
	}
	seq := v.GetAttr("seq")
	if seq.LengthInt() != 3 {
		t.Fatalf("seq length = %d, want 3", seq.LengthInt())
	}
	if len(locs) != 4 {
		t.Fatalf("locs = %d, want 4", len(locs))
	}
}

func TestParse_PrologHiddenButReferenceable(t *testing.T) {
	src := "BEGIN_PROLOG\nbase: 5\nEND_PROLOG\nn: @local::base\n"
	v, _, err := Parse("t.fcl", src, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Type().HasAttribute("base") {
		t.Fatalf("prolog binding %q leaked into the final table", "base")
	}
	f, _ := v.GetAttr("n").AsBigFloat().Float64()
	if f != 5 {
		t.Fatalf("n = %v, want 5 (resolved via @local::base)", f)
	}
}

func TestParse_UndefinedReferenceIsError(t *testing.T) {
	_, _, err := Parse("t.fcl", "n: @local::nope\n", nil)
	if err == nil {
		t.Fatalf("expected an error for an undefined @local:: reference")
	}
}

func TestParse_Include(t *testing.T) {
	include := func(path string) (string, string, error) {
		if path != "inc.fcl" {
			t.Fatalf("unexpected include path %q", path)
		}
		return "inc.fcl", "m: 9\n", nil
	}
	v, _, err := Parse("t.fcl", `#include "inc.fcl"`+"\nn: 1\n", include)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !v.Type().HasAttribute("m") || !v.Type().HasAttribute("n") {
		t.Fatalf("expected both included and local keys, got %v", v.Type().AttributeTypes())
	}
}

func TestParse_TupleSyntaxYieldsSameShapeAsSequence(t *testing.T) {
	v, _, err := Parse("t.fcl", `ages: ("David", 9)`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ages := v.GetAttr("ages")
	if !ages.Type().IsTupleType() {
		t.Fatalf("expected a tuple-shaped cty value regardless of ()/[] delimiter, got %s", ages.Type().FriendlyName())
	}
	if ages.LengthInt() != 2 {
		t.Fatalf("length = %d, want 2", ages.LengthInt())
	}
	if ages.Index(cty.NumberIntVal(0)).AsString() != "David" {
		t.Fatalf("ages[0] = %v, want David", ages.Index(cty.NumberIntVal(0)))
	}
}
