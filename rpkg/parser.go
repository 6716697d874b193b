package rpkg

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

const keywordResourcePackage = "ResourcePackage"

// ParseError describes the first problem found in resource package source.
type ParseError struct {
	File  string
	Line  int
	Col   int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s at %s", e.File, e.Line, e.Col, e.Msg, e.Token)
}

// parser keeps state of a single Parse call.
type parser struct {
	lex      *Lexer
	tok      Token
	src      []byte
	filename string

	pkg      *Package
	prefix   string
	declared map[string]struct{}
}

// Parse reads resource package source. Package name defaults to the base of
// filename without its last extension.
func Parse(content, filename string) (*Package, error) {
	src := []byte(strings.ReplaceAll(content, "\r\n", "\n"))
	p := &parser{
		lex:      NewLexer(src),
		src:      src,
		filename: filename,
		declared: make(map[string]struct{}),
	}
	p.next()
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.pkg, nil
}

// DefaultName returns package name derived from source file name.
func DefaultName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// next advances to the next significant token.
func (p *parser) next() {
	for {
		p.tok = p.lex.Next()
		if p.tok.Type != WhitespaceToken && p.tok.Type != CommentToken {
			return
		}
	}
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	line, col, _ := parse.Position(bytes.NewReader(p.src), tok.Offset)
	return &ParseError{
		File:  p.filename,
		Line:  line,
		Col:   col,
		Token: tok.String(),
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *parser) unexpected() error {
	return p.errorf(p.tok, "unexpected token")
}

// expect returns current token if it has wanted type and advances.
func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.tok
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s", tt)
	}
	p.next()
	return tok, nil
}

// skipBlankLines skips newlines together with lines holding nothing but
// indentation and comments.
func (p *parser) skipBlankLines() error {
	for {
		switch p.tok.Type {
		case NewlineToken:
			p.next()
		case IndentToken:
			p.next()
			if p.tok.Type != NewlineToken && p.tok.Type != EOFToken {
				return p.errorf(p.tok, "unexpected indentation")
			}
		default:
			return nil
		}
	}
}

func (p *parser) parse() error {
	if err := p.skipBlankLines(); err != nil {
		return err
	}
	if err := p.parseHeader(); err != nil {
		return err
	}
	for {
		if err := p.skipBlankLines(); err != nil {
			return err
		}
		var err error
		switch p.tok.Type {
		case EOFToken:
			return nil
		case SetPrefixToken:
			err = p.parseSetPrefix()
		case SymbolToken:
			err = p.parseDeclaration()
		default:
			err = p.unexpected()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) parseHeader() error {
	if p.tok.Type != SymbolToken || p.tok.Value != keywordResourcePackage {
		return p.errorf(p.tok, "expected %s", keywordResourcePackage)
	}
	p.next()

	name := DefaultName(p.filename)
	if p.tok.Type == OpenParenToken {
		p.next()
		tok, err := p.expect(SymbolToken)
		if err != nil {
			return err
		}
		if _, err := p.expect(CloseParenToken); err != nil {
			return err
		}
		name = tok.Value
	}
	p.pkg = NewPackage(name)
	return nil
}

func (p *parser) parseSetPrefix() error {
	p.next()
	if _, err := p.expect(OpenParenToken); err != nil {
		return err
	}
	p.prefix = ""
	if p.tok.Type == SymbolToken {
		p.prefix = p.tok.Value
		p.next()
	}
	_, err := p.expect(CloseParenToken)
	return err
}

func (p *parser) parseDeclaration() error {
	tok := p.tok
	name := p.prefix + tok.Value
	if _, exists := p.declared[name]; exists {
		return p.errorf(tok, "duplicate symbol %s", name)
	}
	p.declared[name] = struct{}{}
	p.next()

	if _, err := p.expect(ColonToken); err != nil {
		return err
	}
	if p.tok.Type == NumberToken {
		value, err := strconv.Atoi(p.tok.Value)
		if err != nil {
			return p.errorf(p.tok, "bad symbol value: %v", err)
		}
		p.pkg.Symbols.Add(name, value)
		p.next()
	} else if p.pkg.IsSymbols() {
		p.pkg.Symbols.Add(name, p.pkg.AutoID)
		p.pkg.AutoID++
	}
	if p.tok.Type == NewlineToken {
		p.next()
	}

	for p.tok.Type == IndentToken {
		p.next()
		switch p.tok.Type {
		case NewlineToken:
			p.next()
			continue
		case EOFToken:
			return nil
		case SymbolToken:
		default:
			return p.unexpected()
		}
		if err := p.parseLocalization(name); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseLocalization(name string) error {
	tok := p.tok
	lang, err := ParseLanguage(tok.Value)
	if err != nil {
		return p.errorf(tok, "unsupported language %s", tok.Value)
	}
	p.next()
	if p.tok.Type != ColonToken {
		return p.errorf(p.tok, "expected %s", ColonToken)
	}
	// text is taken verbatim, tokenizing resumes on the next line
	text := unescape(strings.TrimSpace(p.lex.RestOfLine()))
	if !p.pkg.Localize(lang, name, text) {
		return p.errorf(tok, "duplicate localization %s for %s", lang, name)
	}
	p.next()
	if p.tok.Type == NewlineToken {
		p.next()
	}
	return nil
}

// unescape replaces \n and \t sequences unless backslash itself is preceded
// by a backslash.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (i == 0 || s[i-1] != '\\') {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
