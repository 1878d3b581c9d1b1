// interpreter_test.go
package sprout

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	ip := New()
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("EvalSource error: %v\nsource:\n%s", err, src)
	}
	return v
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.Data.(int64) != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantNum(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != VTNum || v.Data.(float64) != f {
		t.Fatalf("want num %g, got %#v", f, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantNull(t *testing.T, v Value) {
	t.Helper()
	if v.Tag != VTNull || v.Annot != "" {
		t.Fatalf("want plain null, got %#v", v)
	}
}

func wantAnnot(t *testing.T, v Value, sub string) {
	t.Helper()
	if v.Tag != VTNull || v.Annot == "" {
		t.Fatalf("want annotated null, got %#v", v)
	}
	if !strings.Contains(v.Annot, sub) {
		t.Fatalf("want annotation containing %q, got %q", sub, v.Annot)
	}
}

// --- arithmetic ------------------------------------------------------------

func Test_Eval_IntegerArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"5", 5},
		{"-5", -5},
		{"5 + 3", 8},
		{"5 - 3", 2},
		{"4 * 3", 12},
		{"7 / 2", 3},
		{"-7 / 2", -3},
		{"2 * (3 + 4)", 14},
		{"50 / 2 * 2 + 10 - 5", 55},
	}
	for _, tc := range cases {
		wantInt(t, evalSrc(t, tc.src), tc.want)
	}
}

func Test_Eval_NumericPromotion(t *testing.T) {
	wantNum(t, evalSrc(t, "3.5 + 2.5"), 6.0)
	wantNum(t, evalSrc(t, "5 + 2.5"), 7.5)
	wantNum(t, evalSrc(t, "2.5 + 5"), 7.5)
	wantNum(t, evalSrc(t, "7.0 / 2"), 3.5)
	wantNum(t, evalSrc(t, "-3.5"), -3.5)
	wantInt(t, evalSrc(t, "5 + 3"), 8)
}

func Test_Eval_DivisionByZero(t *testing.T) {
	wantAnnot(t, evalSrc(t, "1 / 0"), "division by zero")
	wantAnnot(t, evalSrc(t, "1.5 / 0"), "division by zero")
}

func Test_Eval_Comparisons(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"1 < 2", true},
		{"2 < 1", false},
		{"2 > 1", true},
		{"1 == 1", true},
		{"1 != 1", false},
		{"1 == 1.0", true},
		{"1.5 < 2", true},
		{"true == true", true},
		{"true != false", true},
		{`"a" == "a"`, true},
		{`"a" == "b"`, false},
		// cross-type equality falls back to canonical text: 5 renders as 5,
		// "5" renders quoted, so they differ.
		{`5 == "5"`, false},
		{"[1, 2] == [1, 2]", true},
		{"null == null", true},
	}
	for _, tc := range cases {
		wantBool(t, evalSrc(t, tc.src), tc.want)
	}
}

func Test_Eval_BangOperator(t *testing.T) {
	wantBool(t, evalSrc(t, "!true"), false)
	wantBool(t, evalSrc(t, "!false"), true)
	wantBool(t, evalSrc(t, "!null"), true)
	// bang on non-bool, non-null is false, even for "falsy" values
	wantBool(t, evalSrc(t, "!0"), false)
	wantBool(t, evalSrc(t, `!""`), false)
	wantBool(t, evalSrc(t, "!5"), false)
	wantBool(t, evalSrc(t, "!!true"), true)
}

func Test_Eval_StringConcat(t *testing.T) {
	wantStr(t, evalSrc(t, `"Hello" + ", " + "world!"`), "Hello, world!")
	// '+' on mixed string/number has no rule and resolves to null
	wantNull(t, evalSrc(t, `"a" + 1`))
}

func Test_Eval_TypeMismatchResolvesToNull(t *testing.T) {
	wantNull(t, evalSrc(t, "true + false"))
	wantNull(t, evalSrc(t, "-true"))
	wantNull(t, evalSrc(t, `"a" < "b"`))
}

// --- control flow ----------------------------------------------------------

func Test_Eval_IfTruthiness(t *testing.T) {
	cases := []struct {
		src  string
		want Value
	}{
		{"if (true) { 10 }", Int(10)},
		{"if (false) { 10 }", Null},
		{"if (null) { 10 } else { 20 }", Int(20)},
		{"if (0) { 10 } else { 20 }", Int(20)},
		{"if (0.0) { 10 } else { 20 }", Int(20)},
		{`if ("") { 10 } else { 20 }`, Int(20)},
		{"if (1) { 10 }", Int(10)},
		{`if ("x") { 10 }`, Int(10)},
		{"if ([]) { 10 } else { 20 }", Int(10)},
		{"if ({}) { 10 } else { 20 }", Int(10)},
		{"if (fn() {}) { 10 } else { 20 }", Int(10)},
	}
	for _, tc := range cases {
		got := evalSrc(t, tc.src)
		if got != tc.want && !(got.Tag == VTNull && tc.want.Tag == VTNull) {
			t.Fatalf("source %q: want %#v, got %#v", tc.src, tc.want, got)
		}
	}
}

func Test_Eval_ReturnThroughNestedBlocks(t *testing.T) {
	src := `
if (true) {
  if (true) {
    return 10;
  }
  return 1;
}
`
	wantInt(t, evalSrc(t, src), 10)
}

func Test_Eval_ReturnStopsFunctionBody(t *testing.T) {
	src := `
let f = fn() {
  return 1;
  2;
};
f()
`
	wantInt(t, evalSrc(t, src), 1)
}

// A return signal never leaks out of a call: the caller sees a plain value.
func Test_Eval_ReturnSignalUnwrappedAtCallBoundary(t *testing.T) {
	src := `
let f = fn() { return 7; };
f() + 1
`
	wantInt(t, evalSrc(t, src), 8)
}

// --- bindings --------------------------------------------------------------

func Test_Eval_LetBindsAndYieldsValue(t *testing.T) {
	wantInt(t, evalSrc(t, "let a = 5; a"), 5)
	wantInt(t, evalSrc(t, "let a = 5; let b = a + 1; b"), 6)
	// a let statement evaluates to the bound value
	wantInt(t, evalSrc(t, "let a = 5;"), 5)
}

func Test_Eval_UnresolvedIdentifierIsNull(t *testing.T) {
	wantNull(t, evalSrc(t, "nosuchthing"))
}

func Test_Eval_ShadowingIsLocal(t *testing.T) {
	src := `
let x = 1;
let f = fn() { let x = 2; x };
f() + x
`
	wantInt(t, evalSrc(t, src), 3)
}

// --- functions & closures --------------------------------------------------

func Test_Eval_Closures(t *testing.T) {
	src := `
let makeAdder = fn(x) { fn(y) { x + y } };
let addTwo = makeAdder(2);
addTwo(3)
`
	wantInt(t, evalSrc(t, src), 5)
}

// Rebinding a name after closure creation does not reach into frames the
// closure already owns: addTwo captured the makeAdder call frame, not the
// name makeAdder.
func Test_Eval_ClosureCaptureIsNotRetroactive(t *testing.T) {
	src := `
let makeAdder = fn(x) { fn(y) { x + y } };
let addTwo = makeAdder(2);
let makeAdder = fn(x) { fn(y) { x * y } };
addTwo(3)
`
	wantInt(t, evalSrc(t, src), 5)
}

func Test_Eval_HigherOrderFunctions(t *testing.T) {
	src := `
let twice = fn(f, x) { f(f(x)) };
let inc = fn(n) { n + 1 };
twice(inc, 5)
`
	wantInt(t, evalSrc(t, src), 7)
}

func Test_Eval_Recursion(t *testing.T) {
	src := `
let fib = fn(n) {
  if (n < 2) { n } else { fib(n - 1) + fib(n - 2) }
};
fib(10)
`
	wantInt(t, evalSrc(t, src), 55)
}

func Test_Eval_MissingArgsBindToNull(t *testing.T) {
	src := `
let f = fn(a, b) { b };
f(1)
`
	wantNull(t, evalSrc(t, src))
}

func Test_Eval_CallingNonFunction(t *testing.T) {
	wantAnnot(t, evalSrc(t, "5(1)"), "not a function: int")
	wantAnnot(t, evalSrc(t, `"x"()`), "not a function: string")
}

// --- arrays ----------------------------------------------------------------

func Test_Eval_ArrayIndexing(t *testing.T) {
	wantInt(t, evalSrc(t, "[1, 2, 3][0]"), 1)
	wantInt(t, evalSrc(t, "[1, 2, 3][2]"), 3)
	wantNull(t, evalSrc(t, "[1, 2, 3][3]"))
	wantNull(t, evalSrc(t, "[1, 2, 3][-1]"))
	wantNull(t, evalSrc(t, "[1, 2, 3][10]"))
	// a float index truncates toward zero
	wantInt(t, evalSrc(t, "[1, 2, 3][1.9]"), 2)
	// non-numeric index resolves to null
	wantNull(t, evalSrc(t, `[1, 2, 3]["0"]`))
}

func Test_Eval_IndexingNonIndexable(t *testing.T) {
	wantNull(t, evalSrc(t, "5[0]"))
	wantNull(t, evalSrc(t, "true[0]"))
}

// --- hashes ----------------------------------------------------------------

func Test_Eval_HashLiteralAndLookup(t *testing.T) {
	src := `
let h = {"one": 1, 2: "two", true: 3, 4.5: "f"};
h["one"] + h[true]
`
	wantInt(t, evalSrc(t, src), 4)

	wantStr(t, evalSrc(t, `{2: "two"}[2]`), "two")
	wantStr(t, evalSrc(t, `{4.5: "f"}[4.5]`), "f")
	wantNull(t, evalSrc(t, `{"a": 1}["missing"]`))
}

func Test_Eval_HashKeepsInsertionOrder(t *testing.T) {
	v := evalSrc(t, `{"b": 1, "a": 2, "c": 3}`)
	if got := Inspect(v); got != `{"b": 1, "a": 2, "c": 3}` {
		t.Fatalf("insertion order not preserved: %s", got)
	}
	// replacing a key keeps its original position
	v = evalSrc(t, `
let h = {"b": 1, "a": 2};
let h2 = {"b": 9, "a": 2};
h2
`)
	if got := Inspect(v); got != `{"b": 9, "a": 2}` {
		t.Fatalf("got %s", got)
	}
}

// Keys that are not hashable are dropped without a diagnostic.
func Test_Eval_NonHashableKeysDropped(t *testing.T) {
	v := evalSrc(t, `{[1]: "arr", "ok": 1, fn() {}: 2}`)
	if v.Tag != VTHash {
		t.Fatalf("want hash, got %#v", v)
	}
	h := v.Data.(*HashObject)
	if len(h.Keys) != 1 {
		t.Fatalf("want 1 surviving key, got %d", len(h.Keys))
	}
	if got, ok := h.Get(Str("ok")); !ok || got.Data.(int64) != 1 {
		t.Fatalf("surviving entry wrong: %#v", got)
	}
}

// --- interpreter instances -------------------------------------------------

func Test_Eval_PersistentVsEphemeral(t *testing.T) {
	ip := New()

	if _, err := ip.EvalPersistentSource("let kept = 1;"); err != nil {
		t.Fatalf("persistent eval: %v", err)
	}
	v, err := ip.EvalPersistentSource("kept")
	if err != nil {
		t.Fatalf("persistent eval: %v", err)
	}
	wantInt(t, v, 1)

	// EvalSource runs in a throwaway child: it sees Global but never
	// writes into it.
	if _, err := ip.EvalSource("let gone = 2;"); err != nil {
		t.Fatalf("ephemeral eval: %v", err)
	}
	v, err = ip.EvalPersistentSource("gone")
	if err != nil {
		t.Fatalf("persistent eval: %v", err)
	}
	wantNull(t, v)

	v, err = ip.EvalSource("kept + 1")
	if err != nil {
		t.Fatalf("ephemeral eval: %v", err)
	}
	wantInt(t, v, 2)
}

func Test_Eval_IndependentInterpreters(t *testing.T) {
	a := New()
	b := New()
	if _, err := a.EvalPersistentSource("let only = 1;"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	v, err := b.EvalPersistentSource("only")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	wantNull(t, v)
}

func Test_Eval_RegisterBuiltin(t *testing.T) {
	ip := New()
	ip.RegisterBuiltin("double", func(_ *Interpreter, args []Value) Value {
		if len(args) != 1 || args[0].Tag != VTInt {
			return Null
		}
		return Int(args[0].Data.(int64) * 2)
	})
	v, err := ip.EvalSource("double(21)")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	wantInt(t, v, 42)
}

func Test_Eval_ParseErrorsReported(t *testing.T) {
	ip := New()
	_, err := ip.EvalSource("let x 5;")
	if err == nil {
		t.Fatalf("want error, got none")
	}
	if !strings.Contains(err.Error(), "expected next token to be =, got INT instead") {
		t.Fatalf("unexpected error: %v", err)
	}
}
