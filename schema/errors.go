// Package schema implements the composable parameter-descriptor family
// (Atom, Sequence, Tuple, Table, and their Optional variants) that make up
// a fhicl schema, plus the validate-then-set driver that checks a
// pset.ParameterSet against a declared schema tree.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes used by aggregated ValidationException values.
const (
	CodeMissingKey    = "missing_key"
	CodeExtraKeys     = "extra_keys"
	CodeTypeMismatch  = "type_mismatch"
	CodeArityMismatch = "arity_mismatch"
	CodeOutOfRange    = "out_of_range"
	CodeParseError    = "parse_error"
	CodeSchemaError   = "schema_error"
)

// Issue is a single validation diagnostic, addressed by dotted key path.
type Issue struct {
	Path    string // dotted key path, e.g. "producers.gen.composers[1]"
	Code    string
	Message string
	Hint    string
	Cause   error
}

// Issues is an ordered collection of Issue values. It implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 5
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s: %s", iss[i].Code, iss[i].Path, iss[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues onto dst, allocating dst when nil.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from err using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ValidationException aggregates every diagnostic produced by a single
// validate-then-set pass. Aggregation is never short-circuited: every
// MissingKey/ExtraKeys/TypeMismatch/ArityMismatch/OutOfRange found during
// the pass is collected before this is raised.
type ValidationException struct {
	Issues Issues
}

func (e *ValidationException) Error() string {
	return "fhicl: validation failed: " + e.Issues.Error()
}

func (e *ValidationException) Unwrap() error { return e.Issues }

// NewValidationException wraps a non-empty Issues slice, or returns nil when
// there is nothing to report.
func NewValidationException(iss Issues) error {
	if len(iss) == 0 {
		return nil
	}
	return &ValidationException{Issues: iss}
}

// SchemaError reports a defect in the schema itself (nested optionals,
// misplaced table fragments, duplicate sibling names). Unlike
// ValidationException it is raised by the validation driver's schema
// pre-check, before the input ParameterSet is even consulted.
type SchemaError struct {
	Reason string
	Path   string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "fhicl: schema error: " + e.Reason
	}
	return fmt.Sprintf("fhicl: schema error at %s: %s", e.Path, e.Reason)
}

// Schema-error reasons (kinds, not exhaustive types).
const (
	ReasonNoOptionalTypes        = "NO_OPTIONAL_TYPES"
	ReasonNoNestedTableFragments = "NO_NESTED_TABLE_FRAGMENTS"
	ReasonDuplicateSiblingName   = "DUPLICATE_SIBLING_NAME"
	ReasonOptionalWithDefault    = "OPTIONAL_WITH_DEFAULT"
	ReasonMisorderedNameStack    = "MISORDERED_NAME_STACK"
)

// LookupError is raised by a typed accessor used on an absent Optional
// descriptor. It is local to the accessor call and never invalidates the
// schema or a prior successful validation.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("fhicl: lookup error: %q is absent", e.Key)
}
