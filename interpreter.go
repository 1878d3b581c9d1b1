// interpreter.go — tree-walking evaluator.
//
// Eval dispatches on the closed AST node set and recurses against an Env.
// Early return is the only non-local control flow, realized by a sandwich:
// a block propagates the wrapped return signal upward untouched, while the
// top-level program and the function-call boundary unwrap it. Runtime type
// mismatches resolve to null (or annotated null) rather than stopping the
// host; the language has no exception mechanism.
package sprout

import (
	"fmt"
	"io"
	"os"
)

// Interpreter evaluates Sprout programs.
//
// Core holds the builtin table and is the parent of Global, the persistent
// program environment. Both belong to this instance alone: independent
// interpreters never share state, so hosts may run them concurrently as
// long as each evaluation sticks to its own Env tree.
type Interpreter struct {
	Core   *Env
	Global *Env

	// Stdout receives the output of the print builtin.
	Stdout io.Writer
}

// New constructs an interpreter with the standard builtins installed in
// Core and an empty Global child.
func New() *Interpreter {
	ip := &Interpreter{Stdout: os.Stdout}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	registerCoreBuiltins(ip)
	return ip
}

// RegisterBuiltin installs a host function into Core under name, making it
// callable from Sprout code in every environment of this interpreter.
func (ip *Interpreter) RegisterBuiltin(name string, impl BuiltinImpl) {
	ip.Core.Define(name, BuiltinVal(&Builtin{Name: name, Impl: impl}))
}

// Eval evaluates node against env and returns the resulting value.
func (ip *Interpreter) Eval(node Node, env *Env) Value {
	switch n := node.(type) {

	case *Program:
		return ip.evalProgram(n, env)
	case *LetStatement:
		v := unwrapReturn(ip.Eval(n.Value, env))
		return env.Define(n.Name.Name, v)
	case *ReturnStatement:
		return retVal(unwrapReturn(ip.Eval(n.Value, env)))
	case *ExpressionStatement:
		if n.Expression == nil {
			return Null
		}
		return ip.Eval(n.Expression, env)
	case *BlockStatement:
		return ip.evalBlock(n, env)

	case *Identifier:
		if v, ok := env.Get(n.Name); ok {
			return v
		}
		return Null
	case *IntegerLiteral:
		return Int(n.Value)
	case *FloatLiteral:
		return Num(n.Value)
	case *StringLiteral:
		return Str(n.Value)
	case *BooleanLiteral:
		return Bool(n.Value)

	case *PrefixExpression:
		return ip.evalPrefix(n, env)
	case *InfixExpression:
		return ip.evalInfix(n, env)
	case *IfExpression:
		return ip.evalIf(n, env)

	case *FunctionLiteral:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		return FunVal(&Fun{Params: params, Body: n.Body, Env: env})
	case *CallExpression:
		return ip.evalCall(n, env)

	case *ArrayLiteral:
		elems := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = unwrapReturn(ip.Eval(el, env))
		}
		return Arr(elems)
	case *IndexExpression:
		return ip.evalIndex(n, env)
	case *HashLiteral:
		return ip.evalHashLiteral(n, env)

	default:
		return Null
	}
}

// evalProgram runs statements in order and unwraps a return signal into its
// inner value before yielding the final result.
func (ip *Interpreter) evalProgram(prog *Program, env *Env) Value {
	result := Null
	for _, st := range prog.Statements {
		result = ip.Eval(st, env)
		if result.Tag == VTReturn {
			return result.Data.(Value)
		}
	}
	return result
}

// evalBlock runs statements in order but yields the wrapped return signal
// itself, so a return can escape nested blocks up to the call boundary.
func (ip *Interpreter) evalBlock(blk *BlockStatement, env *Env) Value {
	result := Null
	for _, st := range blk.Statements {
		result = ip.Eval(st, env)
		if result.Tag == VTReturn {
			return result
		}
	}
	return result
}

// ───────────────────────── operators ───────────────────────────────────────

func (ip *Interpreter) evalPrefix(n *PrefixExpression, env *Env) Value {
	right := unwrapReturn(ip.Eval(n.Right, env))
	switch n.Operator {
	case "!":
		// Bang flips booleans, sends null to true, everything else to false.
		switch right.Tag {
		case VTBool:
			return Bool(!right.Data.(bool))
		case VTNull:
			return Bool(true)
		default:
			return Bool(false)
		}
	case "-":
		switch right.Tag {
		case VTInt:
			return Int(-right.Data.(int64))
		case VTNum:
			return Num(-right.Data.(float64))
		default:
			return Null
		}
	default:
		return Null
	}
}

func isNumeric(v Value) bool { return v.Tag == VTInt || v.Tag == VTNum }

func (ip *Interpreter) evalInfix(n *InfixExpression, env *Env) Value {
	left := unwrapReturn(ip.Eval(n.Left, env))
	right := unwrapReturn(ip.Eval(n.Right, env))

	if isNumeric(left) && isNumeric(right) {
		return evalNumericInfix(n.Operator, left, right)
	}
	if left.Tag == VTStr && right.Tag == VTStr && n.Operator == "+" {
		return Str(left.Data.(string) + right.Data.(string))
	}
	// Generic equality falls back to canonical textual form. This one rule
	// covers string equality and cross-type comparisons alike.
	switch n.Operator {
	case "==":
		return Bool(Inspect(left) == Inspect(right))
	case "!=":
		return Bool(Inspect(left) != Inspect(right))
	}
	return Null
}

// evalNumericInfix applies an arithmetic or comparison operator with
// numeric promotion: if either operand is a float the result is a float,
// else an integer. Integer division truncates toward zero.
func evalNumericInfix(op string, left, right Value) Value {
	if left.Tag == VTInt && right.Tag == VTInt {
		a := left.Data.(int64)
		b := right.Data.(int64)
		switch op {
		case "+":
			return Int(a + b)
		case "-":
			return Int(a - b)
		case "*":
			return Int(a * b)
		case "/":
			if b == 0 {
				return ErrNull("division by zero")
			}
			return Int(a / b)
		case "<":
			return Bool(a < b)
		case ">":
			return Bool(a > b)
		case "==":
			return Bool(a == b)
		case "!=":
			return Bool(a != b)
		default:
			return Null
		}
	}

	a := toFloat(left)
	b := toFloat(right)
	switch op {
	case "+":
		return Num(a + b)
	case "-":
		return Num(a - b)
	case "*":
		return Num(a * b)
	case "/":
		if b == 0 {
			return ErrNull("division by zero")
		}
		return Num(a / b)
	case "<":
		return Bool(a < b)
	case ">":
		return Bool(a > b)
	case "==":
		return Bool(a == b)
	case "!=":
		return Bool(a != b)
	default:
		return Null
	}
}

func toFloat(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

// ───────────────────────── control flow ────────────────────────────────────

// isTruthy: null, false, numeric zero and the empty string are false;
// everything else (arrays, hashes, functions included) is true.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	case VTNum:
		return v.Data.(float64) != 0
	case VTStr:
		return v.Data.(string) != ""
	default:
		return true
	}
}

func (ip *Interpreter) evalIf(n *IfExpression, env *Env) Value {
	cond := unwrapReturn(ip.Eval(n.Condition, env))
	if isTruthy(cond) {
		return ip.Eval(n.Consequence, env)
	}
	if n.Alternative != nil {
		return ip.Eval(n.Alternative, env)
	}
	return Null
}

// ───────────────────────── calls ───────────────────────────────────────────

func (ip *Interpreter) evalCall(n *CallExpression, env *Env) Value {
	callee := unwrapReturn(ip.Eval(n.Callee, env))
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = unwrapReturn(ip.Eval(a, env))
	}
	return ip.Apply(callee, args)
}

// Apply invokes a function or builtin value with already-evaluated
// arguments. For closures a fresh child of the captured environment is
// created per call; missing trailing arguments bind to null and the body's
// return signal is unwrapped, so a call always yields a plain value.
func (ip *Interpreter) Apply(callee Value, args []Value) Value {
	switch callee.Tag {
	case VTFun:
		f := callee.Data.(*Fun)
		frame := NewEnv(f.Env)
		for i, name := range f.Params {
			if i < len(args) {
				frame.Define(name, args[i])
			} else {
				frame.Define(name, Null)
			}
		}
		return unwrapReturn(ip.Eval(f.Body, frame))
	case VTBuiltin:
		return callee.Data.(*Builtin).Impl(ip, args)
	default:
		return ErrNull(fmt.Sprintf("not a function: %s", callee.Tag.typeName()))
	}
}

// ───────────────────────── indexing & hashes ───────────────────────────────

func (ip *Interpreter) evalIndex(n *IndexExpression, env *Env) Value {
	base := unwrapReturn(ip.Eval(n.Left, env))
	idx := unwrapReturn(ip.Eval(n.Index, env))

	switch base.Tag {
	case VTArray:
		xs := base.Data.([]Value)
		var i int64
		switch idx.Tag {
		case VTInt:
			i = idx.Data.(int64)
		case VTNum:
			i = int64(idx.Data.(float64)) // truncates toward zero
		default:
			return Null
		}
		if i < 0 || i >= int64(len(xs)) {
			return Null
		}
		return xs[i]
	case VTHash:
		h := base.Data.(*HashObject)
		if v, ok := h.Get(idx); ok {
			return v
		}
		return Null
	default:
		return Null
	}
}

// evalHashLiteral evaluates every key and value expression in order; a key
// whose value is not hashable is dropped without a diagnostic.
func (ip *Interpreter) evalHashLiteral(n *HashLiteral, env *Env) Value {
	h := NewHash()
	for _, pair := range n.Pairs {
		key := unwrapReturn(ip.Eval(pair.Key, env))
		val := unwrapReturn(ip.Eval(pair.Value, env))
		h.Set(key, val)
	}
	return HashVal(h)
}
