package schema

// IssueAt creates an Issue at the dotted key path produced by a KeyRef.
// This is a convenience helper to improve readability at call sites.
func IssueAt(p KeyRef, code, msg string) Issue {
	return Issue{Path: p.Path(), Code: code, Message: msg}
}
