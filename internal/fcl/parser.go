package fcl

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// ParseError reports a malformed document at the recursive-descent stage
// (as opposed to LexError, raised by the tokenizer itself).
type ParseError struct {
	File    string
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Message)
}

// Includer resolves an #include directive's path to file contents. It is
// supplied by the caller (typically a pathresolver.Policy's Resolve method,
// which both locates and reads the file); a nil Includer makes #include an
// error.
type Includer func(path string) (resolvedName string, contents string, err error)

// Loc pairs a dotted key path with the file/line it was parsed from.
type Loc struct {
	Path string
	File string
	Line int
}

// Parse tokenizes and parses an FHiCL document, expanding #include
// directives via include, and returns the resulting table value together
// with per-key source locations.
func Parse(file, text string, include Includer) (cty.Value, []Loc, error) {
	toks, err := Lex(file, text)
	if err != nil {
		return cty.NilVal, nil, err
	}
	p := &parser{toks: toks, include: include, refs: map[string]cty.Value{}}
	v, err := p.parseTopLevel()
	if err != nil {
		return cty.NilVal, nil, err
	}
	return v, p.locs, nil
}

type parser struct {
	toks    []Token
	pos     int
	include Includer
	refs    map[string]cty.Value // top-level bindings seen so far, for @local:: resolution
	locs    []Loc
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t Token, format string, args ...any) error {
	return &ParseError{File: t.File, Line: t.Line, Col: t.Col, Message: fmt.Sprintf(format, args...)}
}

// parseTopLevel parses bindings until KindEOF, honoring BEGIN_PROLOG/
// END_PROLOG regions (whose bindings are visible for @local:: references but
// excluded from the returned table) and #include splices.
func (p *parser) parseTopLevel() (cty.Value, error) {
	out := map[string]cty.Value{}
	inProlog := false
	for {
		t := p.cur()
		switch t.Kind {
		case KindEOF:
			return cty.ObjectVal(out), nil
		case KindBeginProlog:
			if inProlog {
				return cty.NilVal, p.errorf(t, "nested BEGIN_PROLOG is not permitted")
			}
			inProlog = true
			p.advance()
		case KindEndProlog:
			if !inProlog {
				return cty.NilVal, p.errorf(t, "END_PROLOG without matching BEGIN_PROLOG")
			}
			inProlog = false
			p.advance()
		case KindInclude:
			if err := p.spliceInclude(t); err != nil {
				return cty.NilVal, err
			}
		case KindKey:
			name := t.Text
			p.advance()
			val, err := p.parseValue("", name)
			if err != nil {
				return cty.NilVal, err
			}
			p.refs[name] = val
			p.locs = append(p.locs, Loc{Path: name, File: t.File, Line: t.Line})
			if !inProlog {
				out[name] = val
			}
		default:
			return cty.NilVal, p.errorf(t, "expected a key, #include, or BEGIN_PROLOG/END_PROLOG, got %s", t.Kind)
		}
	}
}

// spliceInclude resolves and lexes an included file, splicing its tokens
// (minus its own trailing EOF) into the current stream at the current
// position, so the parser continues as if the text had been typed inline.
func (p *parser) spliceInclude(t Token) error {
	p.advance() // consume the include token itself
	if p.include == nil {
		return p.errorf(t, "#include %q requires a configured path resolver", t.Text)
	}
	name, contents, err := p.include(t.Text)
	if err != nil {
		return p.errorf(t, "#include %q: %v", t.Text, err)
	}
	sub, err := Lex(name, contents)
	if err != nil {
		return err
	}
	if len(sub) > 0 && sub[len(sub)-1].Kind == KindEOF {
		sub = sub[:len(sub)-1]
	}
	rest := make([]Token, 0, len(sub)+len(p.toks)-p.pos)
	rest = append(rest, sub...)
	rest = append(rest, p.toks[p.pos:]...)
	p.toks = append(p.toks[:p.pos], rest...)
	return nil
}

// parseValue parses a single scalar/sequence/table value at path (used only
// for diagnostics; table recursion builds its own child paths).
func (p *parser) parseValue(parentPath, name string) (cty.Value, error) {
	path := name
	if parentPath != "" {
		path = parentPath + "." + name
	}
	t := p.cur()
	switch t.Kind {
	case KindBeginTable:
		p.advance()
		return p.parseTable(path)
	case KindBeginSeq:
		p.advance()
		return p.parseSeq(path)
	case KindString:
		p.advance()
		return cty.StringVal(t.Text), nil
	case KindNumber:
		p.advance()
		return numberVal(t.Text)
	case KindBool:
		p.advance()
		return cty.BoolVal(t.Bool), nil
	case KindNil:
		p.advance()
		return cty.NullVal(cty.DynamicPseudoType), nil
	case KindReference:
		p.advance()
		v, ok := p.refs[t.Text]
		if !ok {
			return cty.NilVal, p.errorf(t, "reference to undefined name %q", t.Text)
		}
		return v, nil
	default:
		return cty.NilVal, p.errorf(t, "expected a value, got %s", t.Kind)
	}
}

func (p *parser) parseTable(path string) (cty.Value, error) {
	out := map[string]cty.Value{}
	for {
		t := p.cur()
		switch t.Kind {
		case KindEndTable:
			p.advance()
			return cty.ObjectVal(out), nil
		case KindKey:
			name := t.Text
			p.advance()
			val, err := p.parseValue(path, name)
			if err != nil {
				return cty.NilVal, err
			}
			out[name] = val
			p.locs = append(p.locs, Loc{Path: path + "." + name, File: t.File, Line: t.Line})
		case KindEOF:
			return cty.NilVal, p.errorf(t, "unterminated table starting at %q", path)
		default:
			return cty.NilVal, p.errorf(t, "expected a key or '}', got %s", t.Kind)
		}
	}
}

func (p *parser) parseSeq(path string) (cty.Value, error) {
	var elems []cty.Value
	i := 0
	for {
		t := p.cur()
		if t.Kind == KindEndSeq {
			p.advance()
			return cty.TupleVal(elems), nil
		}
		if t.Kind == KindEOF {
			return cty.NilVal, p.errorf(t, "unterminated sequence starting at %q", path)
		}
		val, err := p.parseValue(path, "["+strconv.Itoa(i)+"]")
		if err != nil {
			return cty.NilVal, err
		}
		elems = append(elems, val)
		i++
	}
}

func numberVal(text string) (cty.Value, error) {
	v, err := cty.ParseNumberVal(text)
	if err != nil {
		return cty.NilVal, fmt.Errorf("invalid number literal %q: %w", text, err)
	}
	return v, nil
}
