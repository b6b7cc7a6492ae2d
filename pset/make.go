package pset

import (
	"fmt"
	"os"

	"github.com/marcmengel/fhicl-cpp/internal/fcl"
)

// Includer resolves an #include directive's textual path argument to a
// filename and its contents. It matches fcl.Includer's shape so a
// pathresolver.Policy can be adapted directly.
type Includer = fcl.Includer

// Make constructs a ParameterSet from FHiCL text. filename is used purely
// for diagnostics (error locations and source annotations); #include
// arguments are passed to include unchanged. include may be nil when the
// document contains no #include directives.
func Make(filename, text string, include Includer) (ParameterSet, error) {
	v, locs, err := fcl.Parse(filename, text, include)
	if err != nil {
		return ParameterSet{}, &ParseError{Location: locationOf(err), Message: err.Error()}
	}
	locMap := make(map[string]SourceLoc, len(locs))
	for _, l := range locs {
		locMap[l.Path] = SourceLoc{File: l.File, Line: l.Line}
	}
	return FromValue(v, locMap), nil
}

// MakeFromFile reads filename and constructs a ParameterSet from its
// contents, using include to resolve any #include directives.
func MakeFromFile(filename string, include Includer) (ParameterSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return ParameterSet{}, &ParseError{Location: filename, Message: err.Error()}
	}
	return Make(filename, string(data), include)
}

func locationOf(err error) string {
	switch e := err.(type) {
	case *fcl.LexError:
		return fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Col)
	case *fcl.ParseError:
		return fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Col)
	default:
		return ""
	}
}
