package pset

import "github.com/zclconf/go-cty/cty"

// ToAny converts the ParameterSet into a tree of native Go values
// (map[string]any, []any, string, float64, bool, nil) suitable for
// encoding/json or goccy/go-json. The sequence/tuple distinction, being a
// schema-time concern, collapses to []any here just as it does in
// ToIndentedString.
func (p ParameterSet) ToAny() any { return valueToAny(p.val) }

func valueToAny(v cty.Value) any {
	switch kindOf(v) {
	case KindNil:
		return nil
	case KindString:
		return v.AsString()
	case KindBool:
		return v.True()
	case KindNumber:
		f, _ := v.AsBigFloat().Float64()
		return f
	case KindSequence:
		n := v.LengthInt()
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = valueToAny(v.Index(cty.NumberIntVal(int64(i))))
		}
		return out
	case KindTable:
		attrs := v.Type().AttributeTypes()
		out := make(map[string]any, len(attrs))
		for name := range attrs {
			out[name] = valueToAny(v.GetAttr(name))
		}
		return out
	default:
		return nil
	}
}
