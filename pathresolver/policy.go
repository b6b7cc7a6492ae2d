// Package pathresolver implements the file-path lookup policies consulted
// by #include directives: identity, environment-variable search path,
// non-absolute-only search, and search-after-first-attempt.
package pathresolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Policy resolves an #include argument to a filename and its contents. Its
// signature matches pset.Includer / fcl.Includer so it can be passed
// directly wherever an includer is expected.
type Policy interface {
	Resolve(path string) (resolvedName string, contents string, err error)
}

// Code selects one of the four built-in policies, matching the small
// integer codes the CLI's -l/--lookup-policy flag accepts.
type Code int

const (
	// CodeIdentity resolves every path exactly as given.
	CodeIdentity Code = iota
	// CodeEnvLookup searches a colon-separated environment variable for
	// every include, regardless of whether the path is already absolute.
	CodeEnvLookup
	// CodeNonAbsoluteLookup searches the environment variable only for
	// non-absolute paths; absolute paths are used as-is.
	CodeNonAbsoluteLookup
	// CodeLookupAfterFirst tries the current working directory once, then
	// falls back to the environment variable's search path for that and
	// every subsequent lookup.
	CodeLookupAfterFirst
)

// New constructs the Policy for a given code and environment variable name
// (conventionally "FHICL_FILE_PATH").
func New(code Code, envVar string) (Policy, error) {
	switch code {
	case CodeIdentity:
		return Identity{}, nil
	case CodeEnvLookup:
		return &EnvLookup{EnvVar: envVar}, nil
	case CodeNonAbsoluteLookup:
		return &NonAbsoluteLookup{EnvVar: envVar}, nil
	case CodeLookupAfterFirst:
		return &LookupAfterFirst{EnvVar: envVar}, nil
	default:
		return nil, fmt.Errorf("pathresolver: unknown policy code %d", code)
	}
}

func searchPath(envVar string) []string {
	v := os.Getenv(envVar)
	if v == "" {
		return nil
	}
	return strings.Split(v, ":")
}

func readFirst(candidates []string) (string, string, error) {
	var lastErr error
	for _, c := range candidates {
		data, err := os.ReadFile(c)
		if err == nil {
			return c, string(data), nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate paths")
	}
	return "", "", lastErr
}

// Identity resolves every #include path exactly as given, with no search.
type Identity struct{}

func (Identity) Resolve(path string) (string, string, error) {
	return readFirst([]string{path})
}

// EnvLookup searches EnvVar's colon-separated directories for every path.
type EnvLookup struct{ EnvVar string }

func (p *EnvLookup) Resolve(path string) (string, string, error) {
	dirs := searchPath(p.EnvVar)
	candidates := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		candidates = append(candidates, filepath.Join(d, path))
	}
	candidates = append(candidates, path)
	return readFirst(candidates)
}

// NonAbsoluteLookup searches EnvVar only for non-absolute paths; an
// absolute path is used exactly as given.
type NonAbsoluteLookup struct{ EnvVar string }

func (p *NonAbsoluteLookup) Resolve(path string) (string, string, error) {
	if filepath.IsAbs(path) {
		return readFirst([]string{path})
	}
	dirs := searchPath(p.EnvVar)
	candidates := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		candidates = append(candidates, filepath.Join(d, path))
	}
	candidates = append(candidates, path)
	return readFirst(candidates)
}

// LookupAfterFirst tries the bare path once; if that fails (or on any
// subsequent call), it searches EnvVar's directories.
type LookupAfterFirst struct {
	EnvVar  string
	askedOnce bool
}

func (p *LookupAfterFirst) Resolve(path string) (string, string, error) {
	if !p.askedOnce {
		p.askedOnce = true
		if name, contents, err := readFirst([]string{path}); err == nil {
			return name, contents, nil
		}
	}
	dirs := searchPath(p.EnvVar)
	candidates := make([]string, 0, len(dirs))
	for _, d := range dirs {
		candidates = append(candidates, filepath.Join(d, path))
	}
	return readFirst(candidates)
}
