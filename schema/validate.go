package schema

import "github.com/marcmengel/fhicl-cpp/internal/i18n"

// precheckVisitor implements phase 1 of the validate-then-set driver: a
// schema-defect scan that runs before the input ParameterSet is even
// consulted. Today it enforces the one nesting rule this implementation
// can violate by construction: an OPTIONAL descriptor may not be nested
// beneath another OPTIONAL descriptor. Table fragments (spec vocabulary
// for a flattened repeated sub-structure) have no constructor in this
// package, so ReasonNoNestedTableFragments can never actually fire; it
// stays defined in errors.go for the day a Fragment type is added.
type precheckVisitor struct {
	optionalAncestor []bool
	issues           Issues
}

func (v *precheckVisitor) ancestorOptional() bool {
	return len(v.optionalAncestor) > 0 && v.optionalAncestor[len(v.optionalAncestor)-1]
}

func (v *precheckVisitor) checkOptional(p Parameter) {
	if v.ancestorOptional() && p.Presence() == PresenceOptional {
		v.issues = append(v.issues, Issue{
			Path:    p.Key(),
			Code:    CodeSchemaError,
			Message: i18n.T(CodeSchemaError, nil),
			Hint:    ReasonNoOptionalTypes,
		})
	}
	v.issues = append(v.issues, p.schemaCheck()...)
}

func (v *precheckVisitor) push(p Parameter) {
	v.optionalAncestor = append(v.optionalAncestor, v.ancestorOptional() || p.Presence() == PresenceOptional)
}

func (v *precheckVisitor) pop() {
	v.optionalAncestor = v.optionalAncestor[:len(v.optionalAncestor)-1]
}

func (v *precheckVisitor) EnterTable(t Parameter) {
	v.checkOptional(t)
	v.push(t)
}
func (v *precheckVisitor) LeaveTable(Parameter) { v.pop() }

func (v *precheckVisitor) EnterSequence(s Parameter) {
	v.checkOptional(s)
	v.push(s)
}
func (v *precheckVisitor) LeaveSequence(Parameter) { v.pop() }

func (v *precheckVisitor) EnterTuple(t Parameter) {
	v.checkOptional(t)
	v.push(t)
}
func (v *precheckVisitor) LeaveTuple(Parameter) { v.pop() }

func (v *precheckVisitor) Atom(a Parameter) { v.checkOptional(a) }

// schemaPreCheck runs the Walker-driven phase-1 scan over root and returns
// every defect found. A non-empty result short-circuits validation: unlike
// ValidationException, schema defects are never something the caller can
// fix by editing their input document.
func schemaPreCheck(root Parameter) Issues {
	pv := &precheckVisitor{}
	Walk(root, pv)
	return pv.issues
}
