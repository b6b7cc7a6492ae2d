package pset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// PrintMode selects how source-location annotations are rendered alongside
// bindings in ToIndentedString.
type PrintMode int

const (
	// PrintRaw renders bindings with no annotations.
	PrintRaw PrintMode = iota
	// PrintAnnotated interleaves each binding with a trailing "# file:line"
	// comment on the same line.
	PrintAnnotated
	// PrintPrefixAnnotated precedes each binding with its own comment line
	// instead of a trailing one.
	PrintPrefixAnnotated
)

// ToIndentedString pretty-prints the ParameterSet starting at the given
// indentation depth (counted in 3-space steps, matching the reference
// dumper's default tab width).
func (p ParameterSet) ToIndentedString(depth int, mode PrintMode) string {
	var b strings.Builder
	printTable(&b, p.val, p.locs, "", depth, mode, true)
	return b.String()
}

func indent(depth int) string { return strings.Repeat("   ", depth) }

func printTable(b *strings.Builder, v cty.Value, locs map[string]SourceLoc, prefix string, depth int, mode PrintMode, root bool) {
	if v.IsNull() || !v.Type().IsObjectType() {
		return
	}
	attrs := v.Type().AttributeTypes()
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		writeBinding(b, name, key, v.GetAttr(name), locs, depth, mode)
	}
}

func writeBinding(b *strings.Builder, name, key string, val cty.Value, locs map[string]SourceLoc, depth int, mode PrintMode) {
	loc, hasLoc := locs[key]
	annotation := ""
	if hasLoc {
		annotation = fmt.Sprintf("# %s:%d", loc.File, loc.Line)
	}
	if mode == PrintPrefixAnnotated && hasLoc {
		fmt.Fprintf(b, "%s%s\n", indent(depth), annotation)
	}
	suffix := ""
	if mode == PrintAnnotated && hasLoc {
		suffix = " " + annotation
	}
	switch kindOf(val) {
	case KindTable:
		fmt.Fprintf(b, "%s%s: {%s\n", indent(depth), name, suffix)
		printTable(b, val, locs, key, depth+1, mode, false)
		fmt.Fprintf(b, "%s}\n", indent(depth))
	case KindSequence:
		fmt.Fprintf(b, "%s%s: %s%s\n", indent(depth), name, renderSequence(val), suffix)
	default:
		line := fmt.Sprintf("%s%s: %s", indent(depth), name, renderScalar(val))
		if mode == PrintAnnotated && hasLoc {
			line += " " + annotation
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func renderSequence(v cty.Value) string {
	n := v.LengthInt()
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ev := v.Index(cty.NumberIntVal(int64(i)))
		switch kindOf(ev) {
		case KindSequence:
			parts = append(parts, renderSequence(ev))
		case KindTable:
			var sub strings.Builder
			sub.WriteString("{ ")
			printFlatTable(&sub, ev)
			sub.WriteString("}")
			parts = append(parts, sub.String())
		default:
			parts = append(parts, renderScalar(ev))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func printFlatTable(b *strings.Builder, v cty.Value) {
	if v.IsNull() || !v.Type().IsObjectType() {
		return
	}
	attrs := v.Type().AttributeTypes()
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "%s: %s ", name, renderScalar(v.GetAttr(name)))
	}
}

func renderScalar(v cty.Value) string {
	switch kindOf(v) {
	case KindNil:
		return "nil"
	case KindString:
		return strconv.Quote(v.AsString())
	case KindBool:
		if v.True() {
			return "true"
		}
		return "false"
	case KindNumber:
		bf := v.AsBigFloat()
		return bf.Text('g', -1)
	default:
		return "<?>"
	}
}
