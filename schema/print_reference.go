package schema

import (
	"fmt"
	"strings"
)

// PrintReference renders a human-readable description of a schema tree: one
// line per descriptor, indented by nesting depth, annotated with its
// category, presence, and comment. It is the schema-documentation
// counterpart to pset.ParameterSet.ToIndentedString and shares the same
// Walker traversal the validation driver's phase 1 uses.
func PrintReference(root Parameter) string {
	rv := &refVisitor{b: &strings.Builder{}}
	Walk(root, rv)
	return rv.b.String()
}

type refVisitor struct {
	b     *strings.Builder
	depth int
}

func (v *refVisitor) indent() string { return strings.Repeat("   ", v.depth) }

func (v *refVisitor) line(p Parameter, shape string) {
	fmt.Fprintf(v.b, "%s%s : %s (%s)", v.indent(), p.Name(), shape, p.Presence())
	if p.Comment() != "" {
		fmt.Fprintf(v.b, "  # %s", p.Comment())
	}
	v.b.WriteByte('\n')
}

func (v *refVisitor) EnterTable(t Parameter) {
	fmt.Fprintf(v.b, "%s%s : {  (%s)", v.indent(), t.Name(), t.Presence())
	if t.Comment() != "" {
		fmt.Fprintf(v.b, "  # %s", t.Comment())
	}
	v.b.WriteByte('\n')
	v.depth++
}

func (v *refVisitor) LeaveTable(Parameter) {
	v.depth--
	fmt.Fprintf(v.b, "%s}\n", v.indent())
}

func (v *refVisitor) EnterSequence(s Parameter) {
	v.line(s, "sequence")
	v.depth++
}
func (v *refVisitor) LeaveSequence(Parameter) { v.depth-- }

func (v *refVisitor) EnterTuple(t Parameter) {
	v.line(t, "tuple")
	v.depth++
}
func (v *refVisitor) LeaveTuple(Parameter) { v.depth-- }

func (v *refVisitor) Atom(a Parameter) { v.line(a, "atom") }
