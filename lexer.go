// lexer.go
package sprout

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Literals & identifiers
	IDENT
	INT
	FLOAT
	STRING

	// Operators
	ASSIGN   // "="
	PLUS     // "+"
	MINUS    // "-"
	BANG     // "!"
	ASTERISK // "*"
	SLASH    // "/"
	LT       // "<"
	GT       // ">"
	EQ       // "=="
	NOT_EQ   // "!="

	// Punctuation
	COMMA     // ","
	SEMICOLON // ";"
	COLON     // ":"
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	LBRACKET  // "["
	RBRACKET  // "]"

	// Keywords
	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
)

var tokenNames = map[TokenType]string{
	EOF:       "EOF",
	ILLEGAL:   "ILLEGAL",
	IDENT:     "IDENT",
	INT:       "INT",
	FLOAT:     "FLOAT",
	STRING:    "STRING",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	EQ:        "==",
	NOT_EQ:    "!=",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	FUNCTION:  "fn",
	LET:       "let",
	TRUE:      "true",
	FALSE:     "false",
	IF:        "if",
	ELSE:      "else",
	RETURN:    "return",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token with optional decoded literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for INT/FLOAT/STRING
	Line    int         // 1-based
	Col     int         // 0-based column within line
}

// keywords map
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// Lexer scans a Sprout source string into tokens, one at a time.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) makeToken(tt TokenType, lit interface{}) Token {
	return Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
}

// skipWhitespaceAndComments eats whitespace and '//' line comments. A comment
// runs to end of line or end of input, then whitespace skipping resumes.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
		case '/':
			if l.cur+1 < len(l.src) && l.src[l.cur+1] == '/' {
				for {
					b, ok := l.peek()
					if !ok || b == '\n' {
						break
					}
					l.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// ----- errors -----

type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanString decodes a double-quoted string literal. The recognized escapes
// are \" \\ \n \t \r; any other backslash pair is copied through verbatim.
// Reaching end of input before the closing quote is a fatal lexical error.
func (l *Lexer) scanString() (string, error) {
	// opening quote already consumed
	var out strings.Builder
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return out.String(), nil
		}
		if ch == '\\' {
			esc, ok := l.peek()
			if !ok {
				break
			}
			l.advance()
			switch esc {
			case '"':
				out.WriteByte('"')
			case '\\':
				out.WriteByte('\\')
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			default:
				// Unknown escape: keep the raw pair.
				out.WriteByte('\\')
				out.WriteByte(esc)
			}
			continue
		}
		out.WriteByte(ch)
	}
	return "", l.err("string was not terminated")
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber parses a digit run, optionally followed by '.' and at least one
// more digit (a float). No exponents, signs, or hex forms.
func (l *Lexer) scanNumber() (TokenType, interface{}, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	isFloat := false
	if b, ok := l.peek(); ok && b == '.' {
		if l.cur+1 < len(l.src) && isDigit(l.src[l.cur+1]) {
			l.advance() // consume '.'
			isFloat = true
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}

	lex := l.src[l.start:l.cur]
	if isFloat {
		f, convErr := strconv.ParseFloat(lex, 64)
		if convErr != nil {
			return ILLEGAL, nil, l.err("invalid float literal")
		}
		return FLOAT, f, nil
	}
	n, convErr := strconv.ParseInt(lex, 10, 64)
	if convErr != nil {
		return ILLEGAL, nil, l.err("invalid integer literal")
	}
	return INT, n, nil
}

// ----- main scanner -----

// NextToken returns the next token, or a *LexError on a fatal lexical
// failure (unterminated string). After EOF is returned, further calls keep
// returning EOF.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.start = l.cur
	l.tokStartLine = l.line
	l.tokStartCol = l.col

	if l.isAtEnd() {
		return l.makeToken(EOF, nil), nil
	}

	ch, _ := l.advance()

	switch ch {
	case '+':
		return l.makeToken(PLUS, nil), nil
	case '-':
		return l.makeToken(MINUS, nil), nil
	case '*':
		return l.makeToken(ASTERISK, nil), nil
	case '/':
		return l.makeToken(SLASH, nil), nil
	case '<':
		return l.makeToken(LT, nil), nil
	case '>':
		return l.makeToken(GT, nil), nil
	case ',':
		return l.makeToken(COMMA, nil), nil
	case ';':
		return l.makeToken(SEMICOLON, nil), nil
	case ':':
		return l.makeToken(COLON, nil), nil
	case '(':
		return l.makeToken(LPAREN, nil), nil
	case ')':
		return l.makeToken(RPAREN, nil), nil
	case '{':
		return l.makeToken(LBRACE, nil), nil
	case '}':
		return l.makeToken(RBRACE, nil), nil
	case '[':
		return l.makeToken(LBRACKET, nil), nil
	case ']':
		return l.makeToken(RBRACKET, nil), nil
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.makeToken(EQ, nil), nil
		}
		return l.makeToken(ASSIGN, nil), nil
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.makeToken(NOT_EQ, nil), nil
		}
		return l.makeToken(BANG, nil), nil
	case '"':
		text, err := l.scanString()
		if err != nil {
			return Token{}, err
		}
		return l.makeToken(STRING, text), nil
	}

	if isDigit(ch) {
		l.cur = l.start
		l.col = l.tokStartCol
		l.line = l.tokStartLine
		tt, lit, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.makeToken(tt, lit), nil
	}

	if isAlpha(ch) {
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			return l.makeToken(tt, nil), nil
		}
		return l.makeToken(IDENT, nil), nil
	}

	// Anything else is a recoverable ILLEGAL token; the scanner never sticks.
	return l.makeToken(ILLEGAL, nil), nil
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
