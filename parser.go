// parser.go — Pratt parser for Sprout.
//
// Statements are parsed by recursive descent; expressions by precedence
// climbing. Each token kind has at most one prefix handler (invoked when it
// starts an expression) and at most one infix handler (invoked when it
// continues one), looked up through two handler tables. The parser operates
// on a two-token window (cur, peek) and never fails hard on malformed input:
// it appends a message to its error list, produces a best-effort partial
// node, and keeps going so several independent mistakes surface in one pass.
package sprout

import (
	"fmt"
	"strings"
)

// ───────────────────────── precedence ──────────────────────────────────────

const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // < >
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x !x
	CALL        // f(x)
	INDEX       // a[i]
)

var precedences = map[TokenType]int{
	EQ:       EQUALS,
	NOT_EQ:   EQUALS,
	LT:       LESSGREATER,
	GT:       LESSGREATER,
	PLUS:     SUM,
	MINUS:    SUM,
	ASTERISK: PRODUCT,
	SLASH:    PRODUCT,
	LPAREN:   CALL,
	LBRACKET: INDEX,
}

func precedenceOf(t TokenType) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}

// ───────────────────────── errors ──────────────────────────────────────────

// ParseError is one collected syntax diagnostic. Incomplete marks errors
// caused purely by running out of input, which lets a REPL distinguish
// "keep reading lines" from "this is wrong".
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether every collected error is an end-of-input
// condition, i.e. the input so far is a valid prefix of a longer program.
func IsIncomplete(errs []*ParseError) bool {
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		if !e.Incomplete {
			return false
		}
	}
	return true
}

// ───────────────────────── parser ──────────────────────────────────────────

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// Parser consumes a Lexer's token stream through a two-token lookahead
// window and builds the AST. One Parser parses one program; construct a new
// one per input.
type Parser struct {
	lex  *Lexer
	cur  Token
	peek Token

	errs []*ParseError

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// NewParser creates a parser over src and primes the lookahead window.
func NewParser(src string) *Parser {
	p := &Parser{lex: NewLexer(src)}

	p.prefixFns = map[TokenType]prefixParseFn{
		IDENT:    p.parseIdentifier,
		INT:      p.parseIntegerLiteral,
		FLOAT:    p.parseFloatLiteral,
		STRING:   p.parseStringLiteral,
		TRUE:     p.parseBooleanLiteral,
		FALSE:    p.parseBooleanLiteral,
		BANG:     p.parsePrefixExpression,
		MINUS:    p.parsePrefixExpression,
		LPAREN:   p.parseGroupedExpression,
		LBRACKET: p.parseArrayLiteral,
		LBRACE:   p.parseHashLiteral,
		IF:       p.parseIfExpression,
		FUNCTION: p.parseFunctionLiteral,
	}
	p.infixFns = map[TokenType]infixParseFn{
		PLUS:     p.parseInfixExpression,
		MINUS:    p.parseInfixExpression,
		ASTERISK: p.parseInfixExpression,
		SLASH:    p.parseInfixExpression,
		LT:       p.parseInfixExpression,
		GT:       p.parseInfixExpression,
		EQ:       p.parseInfixExpression,
		NOT_EQ:   p.parseInfixExpression,
		LPAREN:   p.parseCallExpression,
		LBRACKET: p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the diagnostics collected so far, in source order.
func (p *Parser) Errors() []*ParseError { return p.errs }

// ErrorStrings returns the collected diagnostics as plain messages.
func (p *Parser) ErrorStrings() []string {
	out := make([]string, len(p.errs))
	for i, e := range p.errs {
		out[i] = e.Msg
	}
	return out
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		// A fatal lexical failure (unterminated string) stops token
		// production; record it once and pin the window at EOF.
		if le, ok := err.(*LexError); ok {
			p.errs = append(p.errs, &ParseError{Line: le.Line, Col: le.Col, Msg: le.Msg})
			p.peek = Token{Type: EOF, Line: le.Line, Col: le.Col}
			return
		}
		p.errs = append(p.errs, &ParseError{Msg: err.Error()})
		p.peek = Token{Type: EOF}
		return
	}
	p.peek = tok
}

func (p *Parser) curIs(t TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t TokenType) bool { return p.peek.Type == t }

// expectPeek advances when the next token matches, else records a mismatch.
func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t TokenType) {
	p.errs = append(p.errs, &ParseError{
		Line:       p.peek.Line,
		Col:        p.peek.Col,
		Msg:        fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peek.Type),
		Incomplete: p.peek.Type == EOF,
	})
}

func (p *Parser) noPrefixError(t TokenType) {
	p.errs = append(p.errs, &ParseError{
		Line:       p.cur.Line,
		Col:        p.cur.Col,
		Msg:        fmt.Sprintf("no prefix parse function for %s found", t),
		Incomplete: t == EOF,
	})
}

// ───────────────────────── program / statements ────────────────────────────

// ParseProgram parses the whole input and returns the best-effort Program.
// Check Errors() to decide whether the result is trustworthy.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for !p.curIs(EOF) {
		if st := p.parseStatement(); st != nil {
			prog.Statements = append(prog.Statements, st)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseStatement() Statement {
	switch p.cur.Type {
	case LET:
		return p.parseLetStatement()
	case RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() Statement {
	st := &LetStatement{Tok: p.cur}
	if !p.expectPeek(IDENT) {
		return nil
	}
	st.Name = &Identifier{Tok: p.cur, Name: p.cur.Lexeme}
	if !p.expectPeek(ASSIGN) {
		return nil
	}
	p.nextToken()
	st.Value = p.parseExpression(LOWEST)
	if p.peekIs(SEMICOLON) {
		p.nextToken()
	}
	return st
}

func (p *Parser) parseReturnStatement() Statement {
	st := &ReturnStatement{Tok: p.cur}
	p.nextToken()
	st.Value = p.parseExpression(LOWEST)
	if p.peekIs(SEMICOLON) {
		p.nextToken()
	}
	return st
}

func (p *Parser) parseExpressionStatement() Statement {
	st := &ExpressionStatement{Tok: p.cur}
	st.Expression = p.parseExpression(LOWEST)
	if p.peekIs(SEMICOLON) {
		p.nextToken()
	}
	return st
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	blk := &BlockStatement{Tok: p.cur}
	p.nextToken()
	for !p.curIs(RBRACE) && !p.curIs(EOF) {
		if st := p.parseStatement(); st != nil {
			blk.Statements = append(blk.Statements, st)
		}
		p.nextToken()
	}
	if p.curIs(EOF) {
		p.errs = append(p.errs, &ParseError{
			Line:       p.cur.Line,
			Col:        p.cur.Col,
			Msg:        "expected next token to be }, got EOF instead",
			Incomplete: true,
		})
	}
	return blk
}

// ───────────────────────── expressions ─────────────────────────────────────

func (p *Parser) parseExpression(minPrec int) Expression {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.noPrefixError(p.cur.Type)
		return nil
	}
	left := prefix()

	for !p.peekIs(SEMICOLON) && minPrec < precedenceOf(p.peek.Type) {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Tok: p.cur, Name: p.cur.Lexeme}
}

func (p *Parser) parseIntegerLiteral() Expression {
	return &IntegerLiteral{Tok: p.cur, Value: p.cur.Literal.(int64)}
}

func (p *Parser) parseFloatLiteral() Expression {
	return &FloatLiteral{Tok: p.cur, Value: p.cur.Literal.(float64)}
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Tok: p.cur, Value: p.cur.Literal.(string)}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Tok: p.cur, Value: p.curIs(TRUE)}
}

func (p *Parser) parsePrefixExpression() Expression {
	e := &PrefixExpression{Tok: p.cur, Operator: p.cur.Lexeme}
	p.nextToken()
	e.Right = p.parseExpression(PREFIX)
	return e
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	e := &InfixExpression{Tok: p.cur, Operator: p.cur.Lexeme, Left: left}
	prec := precedenceOf(p.cur.Type)
	p.nextToken()
	e.Right = p.parseExpression(prec)
	return e
}

// parseGroupedExpression resets to the lowest precedence inside parentheses.
func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	e := p.parseExpression(LOWEST)
	if !p.expectPeek(RPAREN) {
		return nil
	}
	return e
}

func (p *Parser) parseIfExpression() Expression {
	e := &IfExpression{Tok: p.cur}
	if !p.expectPeek(LPAREN) {
		return nil
	}
	p.nextToken()
	e.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(RPAREN) {
		return nil
	}
	if !p.expectPeek(LBRACE) {
		return nil
	}
	e.Consequence = p.parseBlockStatement()
	if p.peekIs(ELSE) {
		p.nextToken()
		if !p.expectPeek(LBRACE) {
			return nil
		}
		e.Alternative = p.parseBlockStatement()
	}
	return e
}

func (p *Parser) parseFunctionLiteral() Expression {
	e := &FunctionLiteral{Tok: p.cur}
	if !p.expectPeek(LPAREN) {
		return nil
	}
	e.Params = p.parseFunctionParams()
	if !p.expectPeek(LBRACE) {
		return nil
	}
	e.Body = p.parseBlockStatement()
	return e
}

func (p *Parser) parseFunctionParams() []*Identifier {
	var params []*Identifier
	if p.peekIs(RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &Identifier{Tok: p.cur, Name: p.cur.Lexeme})
	for p.peekIs(COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &Identifier{Tok: p.cur, Name: p.cur.Lexeme})
	}
	if !p.expectPeek(RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseCallExpression(callee Expression) Expression {
	e := &CallExpression{Tok: p.cur, Callee: callee}
	e.Args = p.parseExpressionList(RPAREN)
	return e
}

func (p *Parser) parseArrayLiteral() Expression {
	e := &ArrayLiteral{Tok: p.cur}
	e.Elements = p.parseExpressionList(RBRACKET)
	return e
}

func (p *Parser) parseExpressionList(end TokenType) []Expression {
	var list []Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

// parseHashLiteral accepts arbitrary expressions as keys; whether a key is
// actually hashable is decided at evaluation time, not here.
func (p *Parser) parseHashLiteral() Expression {
	e := &HashLiteral{Tok: p.cur}
	for !p.peekIs(RBRACE) {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(COLON) {
			return nil
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		e.Pairs = append(e.Pairs, HashPairExpr{Key: key, Value: val})
		if !p.peekIs(RBRACE) && !p.expectPeek(COMMA) {
			return nil
		}
	}
	if !p.expectPeek(RBRACE) {
		return nil
	}
	return e
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	e := &IndexExpression{Tok: p.cur, Left: left}
	p.nextToken()
	e.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(RBRACKET) {
		return nil
	}
	return e
}

// joinParseErrors flattens diagnostics into one error for API callers that
// want a single value; the REPL consumes the list directly instead.
func joinParseErrors(errs []*ParseError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
