package rpkg

import (
	"strconv"

	"github.com/tdewolff/parse/v2"
)

// TokenType determines the type of token, eg. a symbol or a colon.
type TokenType uint32

const (
	ErrorToken TokenType = iota // extra token when errors occur
	EOFToken
	NewlineToken
	ColonToken
	OpenParenToken
	CloseParenToken
	SetPrefixToken
	NumberToken
	SymbolToken
	IndentToken // blanks starting at column 0
	WhitespaceToken
	CommentToken
)

func (tt TokenType) String() string {
	switch tt {
	case ErrorToken:
		return "Error"
	case EOFToken:
		return "EOF"
	case NewlineToken:
		return "Newline"
	case ColonToken:
		return "Colon"
	case OpenParenToken:
		return "OpenParen"
	case CloseParenToken:
		return "CloseParen"
	case SetPrefixToken:
		return "SetPrefix"
	case NumberToken:
		return "Number"
	case SymbolToken:
		return "Symbol"
	case IndentToken:
		return "Indent"
	case WhitespaceToken:
		return "Whitespace"
	case CommentToken:
		return "Comment"
	}
	return "Invalid(" + strconv.Itoa(int(tt)) + ")"
}

// Token is a single lexeme with byte offset of its first character in
// source.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

func (t Token) String() string {
	if t.Type == EOFToken {
		return t.Type.String()
	}
	return t.Type.String() + "(" + strconv.Quote(t.Value) + ")"
}

const keywordSetPrefix = "SetPrefix"

// Lexer splits resource package source into tokens. Whitespace is reported
// as indentation only when it starts a physical line, this is the only way
// to tell localization lines from declarations.
type Lexer struct {
	r      *parse.Input
	offset int
	col    int
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{r: parse.NewInputBytes(src)}
}

func (l *Lexer) atEOF() bool {
	return l.r.Peek(0) == 0 && l.r.Err() != nil
}

// Next returns the next token, EOFToken is returned repeatedly once input is
// exhausted.
func (l *Lexer) Next() Token {
	start := l.offset
	if l.atEOF() {
		return Token{Type: EOFToken, Offset: start}
	}

	var tt TokenType
	switch c := l.r.Peek(0); {
	case c == '\n':
		l.r.Move(1)
		tt = NewlineToken
	case c == ':':
		l.r.Move(1)
		tt = ColonToken
	case c == '(':
		l.r.Move(1)
		tt = OpenParenToken
	case c == ')':
		l.r.Move(1)
		tt = CloseParenToken
	case c == '#':
		l.skipLine()
		tt = CommentToken
	case isBlank(c):
		for isBlank(l.r.Peek(0)) {
			l.r.Move(1)
		}
		tt = WhitespaceToken
		if l.col == 0 {
			tt = IndentToken
		}
	case isWord(c):
		digits := true
		for c := l.r.Peek(0); isWord(c); c = l.r.Peek(0) {
			digits = digits && c >= '0' && c <= '9'
			l.r.Move(1)
		}
		switch {
		case digits:
			tt = NumberToken
		case string(l.r.Lexeme()) == keywordSetPrefix:
			tt = SetPrefixToken
		default:
			tt = SymbolToken
		}
	default:
		_, n := l.r.PeekRune(0)
		l.r.Move(max(n, 1))
		tt = ErrorToken
	}
	return Token{Type: tt, Value: l.shift(tt == NewlineToken), Offset: start}
}

// RestOfLine returns raw text up to (not including) the end of current
// physical line.
func (l *Lexer) RestOfLine() string {
	l.skipLine()
	return l.shift(false)
}

func (l *Lexer) skipLine() {
	for !l.atEOF() && l.r.Peek(0) != '\n' {
		l.r.Move(1)
	}
}

func (l *Lexer) shift(newline bool) string {
	value := string(l.r.Shift())
	l.offset += len(value)
	if newline {
		l.col = 0
	} else {
		l.col += len(value)
	}
	return value
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}

func isWord(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
