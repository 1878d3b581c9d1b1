// ast.go
//
// The Sprout AST is a closed set of node kinds. Every node renders a
// canonical textual form via String(); the rendering is re-parseable, which
// is what lets tooling round-trip a program through its printed form. Nodes
// are immutable after construction and exclusively owned by their parent.
package sprout

import (
	"strconv"
	"strings"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the 1-based line and 0-based column of the token that
	// originated this node.
	Pos() (line, col int)

	// String returns the canonical textual form of the node.
	String() string
}

// Statement is a marker interface for statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression is a marker interface for expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// ---------------------------------------------------------------------------
// Program & statements
// ---------------------------------------------------------------------------

// Program is the root of every parse tree.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 0
}

func (p *Program) String() string {
	var b strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// LetStatement binds the value of an expression to a name: let x = <expr>;
type LetStatement struct {
	Tok   Token // the LET token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode()  {}
func (s *LetStatement) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *LetStatement) String() string {
	var b strings.Builder
	b.WriteString("let ")
	b.WriteString(s.Name.String())
	b.WriteString(" = ")
	if s.Value != nil {
		b.WriteString(s.Value.String())
	}
	b.WriteByte(';')
	return b.String()
}

// ReturnStatement carries a value out of the enclosing function.
type ReturnStatement struct {
	Tok   Token // the RETURN token
	Value Expression
}

func (s *ReturnStatement) statementNode()  {}
func (s *ReturnStatement) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *ReturnStatement) String() string {
	var b strings.Builder
	b.WriteString("return")
	if s.Value != nil {
		b.WriteByte(' ')
		b.WriteString(s.Value.String())
	}
	b.WriteByte(';')
	return b.String()
}

// ExpressionStatement wraps a bare expression used in statement position.
type ExpressionStatement struct {
	Tok        Token // first token of the expression
	Expression Expression
}

func (s *ExpressionStatement) statementNode()  {}
func (s *ExpressionStatement) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *ExpressionStatement) String() string {
	if s.Expression == nil {
		return ""
	}
	return s.Expression.String()
}

// BlockStatement is a brace-delimited statement sequence.
type BlockStatement struct {
	Tok        Token // the LBRACE token
	Statements []Statement
}

func (s *BlockStatement) statementNode()  {}
func (s *BlockStatement) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *BlockStatement) String() string {
	var b strings.Builder
	for i, st := range s.Statements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(st.String())
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Identifier names a binding.
type Identifier struct {
	Tok  Token // the IDENT token
	Name string
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *Identifier) String() string  { return e.Name }

// IntegerLiteral is a 64-bit integer literal.
type IntegerLiteral struct {
	Tok   Token
	Value int64
}

func (e *IntegerLiteral) expressionNode() {}
func (e *IntegerLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *IntegerLiteral) String() string  { return strconv.FormatInt(e.Value, 10) }

// FloatLiteral is a 64-bit floating-point literal.
type FloatLiteral struct {
	Tok   Token
	Value float64
}

func (e *FloatLiteral) expressionNode() {}
func (e *FloatLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *FloatLiteral) String() string  { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

// StringLiteral is a decoded string literal.
type StringLiteral struct {
	Tok   Token
	Value string
}

func (e *StringLiteral) expressionNode() {}
func (e *StringLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *StringLiteral) String() string  { return strconv.Quote(e.Value) }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Tok   Token
	Value bool
}

func (e *BooleanLiteral) expressionNode() {}
func (e *BooleanLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *BooleanLiteral) String() string  { return strconv.FormatBool(e.Value) }

// ArrayLiteral is an ordered element list: [a, b, c]
type ArrayLiteral struct {
	Tok      Token // the LBRACKET token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode() {}
func (e *ArrayLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *ArrayLiteral) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range e.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(el.String())
	}
	b.WriteByte(']')
	return b.String()
}

// HashPairExpr is one key/value pair of a hash literal.
type HashPairExpr struct {
	Key   Expression
	Value Expression
}

// HashLiteral owns an ordered pair sequence; insertion order is preserved so
// the rendering is deterministic even though lookup is by value.
type HashLiteral struct {
	Tok   Token // the LBRACE token
	Pairs []HashPairExpr
}

func (e *HashLiteral) expressionNode() {}
func (e *HashLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *HashLiteral) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range e.Pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key.String())
		b.WriteString(": ")
		b.WriteString(p.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

// PrefixExpression applies a unary operator: !x, -x
type PrefixExpression struct {
	Tok      Token // the operator token
	Operator string
	Right    Expression
}

func (e *PrefixExpression) expressionNode() {}
func (e *PrefixExpression) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *PrefixExpression) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(e.Operator)
	if e.Right != nil {
		b.WriteString(e.Right.String())
	}
	b.WriteByte(')')
	return b.String()
}

// InfixExpression applies a binary operator: a + b
type InfixExpression struct {
	Tok      Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *InfixExpression) expressionNode() {}
func (e *InfixExpression) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *InfixExpression) String() string {
	var b strings.Builder
	b.WriteByte('(')
	if e.Left != nil {
		b.WriteString(e.Left.String())
	}
	b.WriteByte(' ')
	b.WriteString(e.Operator)
	b.WriteByte(' ')
	if e.Right != nil {
		b.WriteString(e.Right.String())
	}
	b.WriteByte(')')
	return b.String()
}

// IfExpression selects a branch by truthiness; the alternative is optional.
// There is no native else-if: chaining nests an if inside the alternative.
type IfExpression struct {
	Tok         Token // the IF token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (e *IfExpression) expressionNode() {}
func (e *IfExpression) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("if (")
	if e.Condition != nil {
		b.WriteString(e.Condition.String())
	}
	b.WriteString(") { ")
	b.WriteString(e.Consequence.String())
	b.WriteString(" }")
	if e.Alternative != nil {
		b.WriteString(" else { ")
		b.WriteString(e.Alternative.String())
		b.WriteString(" }")
	}
	return b.String()
}

// FunctionLiteral is an anonymous function: fn(a, b) { ... }
type FunctionLiteral struct {
	Tok    Token // the FN token
	Params []*Identifier
	Body   *BlockStatement
}

func (e *FunctionLiteral) expressionNode() {}
func (e *FunctionLiteral) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *FunctionLiteral) String() string {
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range e.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") { ")
	b.WriteString(e.Body.String())
	b.WriteString(" }")
	return b.String()
}

// CallExpression applies a callee to arguments: f(a, b)
type CallExpression struct {
	Tok    Token // the LPAREN token
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) expressionNode() {}
func (e *CallExpression) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *CallExpression) String() string {
	var b strings.Builder
	b.WriteString(e.Callee.String())
	b.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// IndexExpression subscripts a base expression: a[i]
type IndexExpression struct {
	Tok   Token // the LBRACKET token
	Left  Expression
	Index Expression
}

func (e *IndexExpression) expressionNode() {}
func (e *IndexExpression) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *IndexExpression) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(e.Left.String())
	b.WriteByte('[')
	if e.Index != nil {
		b.WriteString(e.Index.String())
	}
	b.WriteString("])")
	return b.String()
}
