// builtins_test.go
package sprout

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Builtin_Print(t *testing.T) {
	ip := New()
	var out bytes.Buffer
	ip.Stdout = &out

	if _, err := ip.EvalSource(`print("Hello,", "world!", 42)`); err != nil {
		t.Fatalf("eval: %v", err)
	}
	// display form: top-level strings lose their quotes
	if got := out.String(); got != "Hello, world! 42\n" {
		t.Fatalf("want %q, got %q", "Hello, world! 42\n", got)
	}

	out.Reset()
	if _, err := ip.EvalSource(`print([1, "x"], {"k": 1})`); err != nil {
		t.Fatalf("eval: %v", err)
	}
	// nested strings stay quoted
	if got := out.String(); got != "[1, \"x\"] {\"k\": 1}\n" {
		t.Fatalf("got %q", got)
	}

	v := evalSrc(t, `print("x")`)
	wantNull(t, v)
}

func Test_Builtin_Len(t *testing.T) {
	wantInt(t, evalSrc(t, `len("hello")`), 5)
	wantInt(t, evalSrc(t, `len("")`), 0)
	// rune count, not byte count
	wantInt(t, evalSrc(t, `len("héllo")`), 5)
	wantInt(t, evalSrc(t, `len([1, 2, 3])`), 3)
	wantInt(t, evalSrc(t, `len([])`), 0)
	wantNull(t, evalSrc(t, `len(5)`))
	wantAnnot(t, evalSrc(t, `len("a", "b")`), "expected 1 argument(s), got 2")
	wantAnnot(t, evalSrc(t, `len()`), "expected 1 argument(s), got 0")
}

func Test_Builtin_FirstLastRest(t *testing.T) {
	wantInt(t, evalSrc(t, `first([7, 8, 9])`), 7)
	wantInt(t, evalSrc(t, `last([7, 8, 9])`), 9)
	wantNull(t, evalSrc(t, `first([])`))
	wantNull(t, evalSrc(t, `last([])`))
	wantNull(t, evalSrc(t, `first("abc")`))

	v := evalSrc(t, `rest([1, 2, 3])`)
	if got := Inspect(v); got != "[2, 3]" {
		t.Fatalf("want [2, 3], got %s", got)
	}
	v = evalSrc(t, `rest([1])`)
	if got := Inspect(v); got != "[]" {
		t.Fatalf("want [], got %s", got)
	}
	v = evalSrc(t, `rest([])`)
	if got := Inspect(v); got != "[]" {
		t.Fatalf("want [], got %s", got)
	}
	wantAnnot(t, evalSrc(t, `rest()`), "expected 1 argument(s)")
}

func Test_Builtin_PushDoesNotMutate(t *testing.T) {
	src := `
let a = [1, 2];
let b = push(a, 3);
[a, b]
`
	v := evalSrc(t, src)
	if got := Inspect(v); got != "[[1, 2], [1, 2, 3]]" {
		t.Fatalf("got %s", got)
	}
	wantNull(t, evalSrc(t, `push(5, 1)`))
	wantAnnot(t, evalSrc(t, `push([1])`), "expected 2 argument(s), got 1")
}

func Test_Builtin_Type(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`type(null)`, "null"},
		{`type(true)`, "bool"},
		{`type(1)`, "int"},
		{`type(1.5)`, "float"},
		{`type("s")`, "string"},
		{`type([1])`, "array"},
		{`type({})`, "hash"},
		{`type(fn() {})`, "fn"},
		{`type(len)`, "builtin"},
	}
	for _, tc := range cases {
		wantStr(t, evalSrc(t, tc.src), tc.want)
	}
}

func Test_Builtin_KeysValuesInsertionOrder(t *testing.T) {
	src := `
let h = {"b": 1, "a": 2, "c": 3};
keys(h)
`
	v := evalSrc(t, src)
	var got []string
	for _, el := range v.Data.([]Value) {
		got = append(got, el.Data.(string))
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	v = evalSrc(t, `values({"b": 1, "a": 2, "c": 3})`)
	if gotv := Inspect(v); gotv != "[1, 2, 3]" {
		t.Fatalf("want [1, 2, 3], got %s", gotv)
	}

	wantNull(t, evalSrc(t, `keys([1])`))
	wantAnnot(t, evalSrc(t, `keys({}, {})`), "expected 1 argument(s), got 2")
}

// Builtins are resolvable names, not syntax: a local binding shadows them.
func Test_Builtin_Shadowable(t *testing.T) {
	src := `
let len = fn(x) { 42 };
len("hello")
`
	wantInt(t, evalSrc(t, src), 42)
}
