package pset

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// SourceLoc annotates a dotted key path with the location it was parsed
// from. Annotations never affect equality or validation semantics; they
// exist purely for to_indented_string diagnostics.
type SourceLoc struct {
	File string
	Line int
	Col  int
}

// ParameterSet is an immutable, unordered mapping from dotted-segment keys
// to values, where each value is a primitive (string/number/bool), an
// ordered sequence of values, or a nested ParameterSet. It is safe for
// concurrent readers once constructed.
type ParameterSet struct {
	val  cty.Value // always an object type, or cty.NilVal for the zero value
	locs map[string]SourceLoc
}

// Empty returns the ParameterSet with no bindings.
func Empty() ParameterSet {
	return ParameterSet{val: cty.EmptyObjectVal, locs: map[string]SourceLoc{}}
}

// FromValue builds a ParameterSet directly from an already-assembled cty
// object value and its location annotations. It is the seam the
// internal/fcl parser uses to hand off a parsed document; most callers
// should use Make instead.
func FromValue(v cty.Value, locs map[string]SourceLoc) ParameterSet {
	if locs == nil {
		locs = map[string]SourceLoc{}
	}
	if v.IsNull() || !v.Type().IsObjectType() {
		v = cty.EmptyObjectVal
	}
	return ParameterSet{val: v, locs: locs}
}

// Value returns the underlying object-typed cty.Value for this level of the
// tree. Consumers that need to distinguish sequences from tuples (a
// schema-time concern the value tree itself is agnostic to) work directly
// against this value.
func (p ParameterSet) Value() cty.Value { return p.val }

// kindOf classifies a cty.Value the way ParameterSet callers reason about
// values: primitive, sequence, or nested table.
func kindOf(v cty.Value) Kind {
	if v.IsNull() {
		return KindNil
	}
	t := v.Type()
	switch {
	case t.Equals(cty.String):
		return KindString
	case t.Equals(cty.Number):
		return KindNumber
	case t.Equals(cty.Bool):
		return KindBool
	case t.IsTupleType(), t.IsListType():
		return KindSequence
	case t.IsObjectType():
		return KindTable
	default:
		return KindUnknown
	}
}

// splitKey splits a dotted key path into its segments. An empty key yields
// no segments (the root itself).
func splitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ".")
}

// lookup walks segs from v, returning the terminal value or false if any
// segment is absent or not addressable (a non-table value with a segment
// remaining).
func lookup(v cty.Value, segs []string) (cty.Value, bool) {
	cur := v
	for _, seg := range segs {
		if cur.IsNull() || !cur.Type().IsObjectType() {
			return cty.NilVal, false
		}
		if !cur.Type().HasAttribute(seg) {
			return cty.NilVal, false
		}
		cur = cur.GetAttr(seg)
	}
	return cur, true
}

// Has reports whether the dotted key path is present.
func (p ParameterSet) Has(key string) bool {
	_, ok := lookup(p.val, splitKey(key))
	return ok
}

// Get returns the value bound to the dotted key path. It fails with
// MissingKey when the path is entirely absent.
func (p ParameterSet) Get(key string) (cty.Value, error) {
	v, ok := lookup(p.val, splitKey(key))
	if !ok {
		return cty.NilVal, &MissingKey{Key: key}
	}
	return v, nil
}

// GetTable returns the nested ParameterSet bound to key. It fails with
// LookupError if the key holds a non-table value.
func (p ParameterSet) GetTable(key string) (ParameterSet, error) {
	v, err := p.Get(key)
	if err != nil {
		return ParameterSet{}, err
	}
	if kindOf(v) != KindTable {
		return ParameterSet{}, &LookupError{Key: key, Actual: kindOf(v)}
	}
	return ParameterSet{val: v, locs: subLocs(p.locs, key)}, nil
}

// GetSequence returns the ordered element values bound to key. It fails
// with LookupError if the key holds a non-sequence value.
func (p ParameterSet) GetSequence(key string) ([]cty.Value, error) {
	v, err := p.Get(key)
	if err != nil {
		return nil, err
	}
	if kindOf(v) != KindSequence {
		return nil, &LookupError{Key: key, Actual: kindOf(v)}
	}
	n := v.LengthInt()
	out := make([]cty.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, v.Index(cty.NumberIntVal(int64(i))))
	}
	return out, nil
}

// Keys enumerates the simple names bound at the top level of this
// ParameterSet, in stable sorted order.
func (p ParameterSet) Keys() []string {
	if p.val.IsNull() || !p.val.Type().IsObjectType() {
		return nil
	}
	attrs := p.val.Type().AttributeTypes()
	out := make([]string, 0, len(attrs))
	for k := range attrs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LocationOf returns the recorded source location for a dotted key path, if
// any was captured during parsing.
func (p ParameterSet) LocationOf(key string) (SourceLoc, bool) {
	loc, ok := p.locs[key]
	return loc, ok
}

func subLocs(locs map[string]SourceLoc, prefix string) map[string]SourceLoc {
	pfx := prefix + "."
	out := map[string]SourceLoc{}
	for k, v := range locs {
		if k == prefix {
			continue
		}
		if strings.HasPrefix(k, pfx) {
			out[strings.TrimPrefix(k, pfx)] = v
		}
	}
	return out
}
