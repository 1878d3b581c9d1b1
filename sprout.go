// sprout.go — public entry points for embedding the Sprout engine.
//
// The engine boundary is purely in-process: tokenize with Lexer, parse with
// Parser, evaluate with Interpreter.Eval. The helpers here bundle those
// stages the two ways hosts actually want them:
//
//   - EvalSource runs in a fresh child of Global, so bindings made by the
//     program land in a throwaway scope (sandboxed, script-style runs).
//   - EvalPersistentSource runs in Global itself, so let-bindings persist
//     across calls (REPL-style sessions).
//
// Both return a single joined error when the parser collected diagnostics;
// interactive front-ends that need the raw list (one message per line) use
// Parser directly.
package sprout

// Version is the engine version reported by the CLI.
const Version = "0.3.0"

// Parse tokenizes and parses src, returning the best-effort program and
// any collected diagnostics.
func Parse(src string) (*Program, []*ParseError) {
	p := NewParser(src)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// EvalSource parses and evaluates src in a fresh child of Global. Global
// is unchanged afterwards.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, errs := Parse(src)
	if len(errs) > 0 {
		return Null, joinParseErrors(errs)
	}
	return ip.Eval(prog, NewEnv(ip.Global)), nil
}

// EvalPersistentSource parses and evaluates src in Global, so bindings
// persist across calls.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	prog, errs := Parse(src)
	if len(errs) > 0 {
		return Null, joinParseErrors(errs)
	}
	return ip.Eval(prog, ip.Global), nil
}
