// builtins.go
package sprout

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ---- core built-ins ----------------------------------------------------

// registerCoreBuiltins installs the standard native functions into the
// interpreter's Core frame. Misuse (wrong arity) yields an annotated null;
// wrong operand types yield plain null, matching operator semantics.
func registerCoreBuiltins(ip *Interpreter) {
	reg := func(name string, impl BuiltinImpl) {
		ip.RegisterBuiltin(name, impl)
	}

	// print(values...) -> Null: display form of each argument, one line.
	reg("print", func(ip *Interpreter, args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = FormatValue(a)
		}
		fmt.Fprintln(ip.Stdout, strings.Join(parts, " "))
		return Null
	})

	// len(x) -> Int: string length in runes, or array length.
	reg("len", func(_ *Interpreter, args []Value) Value {
		if len(args) != 1 {
			return arityErr("len", 1, len(args))
		}
		switch args[0].Tag {
		case VTStr:
			return Int(int64(utf8.RuneCountInString(args[0].Data.(string))))
		case VTArray:
			return Int(int64(len(args[0].Data.([]Value))))
		default:
			return Null
		}
	})

	// first(array) -> first element, or Null when empty.
	reg("first", func(_ *Interpreter, args []Value) Value {
		xs, errv := oneArray("first", args)
		if !errv.isNull() {
			return errv
		}
		if len(xs) == 0 {
			return Null
		}
		return xs[0]
	})

	// last(array) -> last element, or Null when empty.
	reg("last", func(_ *Interpreter, args []Value) Value {
		xs, errv := oneArray("last", args)
		if !errv.isNull() {
			return errv
		}
		if len(xs) == 0 {
			return Null
		}
		return xs[len(xs)-1]
	})

	// rest(array) -> new array without the first element; empty stays empty.
	reg("rest", func(_ *Interpreter, args []Value) Value {
		xs, errv := oneArray("rest", args)
		if !errv.isNull() {
			return errv
		}
		if len(xs) <= 1 {
			return Arr([]Value{})
		}
		out := make([]Value, len(xs)-1)
		copy(out, xs[1:])
		return Arr(out)
	})

	// push(array, value) -> new array with value appended; the original
	// array is never mutated.
	reg("push", func(_ *Interpreter, args []Value) Value {
		if len(args) != 2 {
			return arityErr("push", 2, len(args))
		}
		if args[0].Tag != VTArray {
			return Null
		}
		xs := args[0].Data.([]Value)
		out := make([]Value, len(xs), len(xs)+1)
		copy(out, xs)
		out = append(out, args[1])
		return Arr(out)
	})

	// type(x) -> Str: the value's tag name.
	reg("type", func(_ *Interpreter, args []Value) Value {
		if len(args) != 1 {
			return arityErr("type", 1, len(args))
		}
		return Str(args[0].Tag.typeName())
	})

	// keys(hash) -> array of keys in insertion order.
	reg("keys", func(_ *Interpreter, args []Value) Value {
		h, errv := oneHash("keys", args)
		if !errv.isNull() {
			return errv
		}
		if h == nil {
			return Null
		}
		out := make([]Value, 0, len(h.Keys))
		for _, hk := range h.Keys {
			out = append(out, h.Entries[hk].Key)
		}
		return Arr(out)
	})

	// values(hash) -> array of values in insertion order.
	reg("values", func(_ *Interpreter, args []Value) Value {
		h, errv := oneHash("values", args)
		if !errv.isNull() {
			return errv
		}
		if h == nil {
			return Null
		}
		out := make([]Value, 0, len(h.Keys))
		for _, hk := range h.Keys {
			out = append(out, h.Entries[hk].Value)
		}
		return Arr(out)
	})
}

func arityErr(name string, want, got int) Value {
	return ErrNull(fmt.Sprintf("%s: expected %d argument(s), got %d", name, want, got))
}

// isNull reports a plain, unannotated null (the "no complaint" sentinel
// used by the argument helpers below).
func (v Value) isNull() bool { return v.Tag == VTNull && v.Annot == "" }

// oneArray validates a single-array argument list. It returns the elements
// and a plain null, or nil and the complaint to surface.
func oneArray(name string, args []Value) ([]Value, Value) {
	if len(args) != 1 {
		return nil, arityErr(name, 1, len(args))
	}
	if args[0].Tag != VTArray {
		return nil, Null
	}
	return args[0].Data.([]Value), Null
}

// oneHash validates a single-hash argument list; same contract as oneArray.
func oneHash(name string, args []Value) (*HashObject, Value) {
	if len(args) != 1 {
		return nil, arityErr(name, 1, len(args))
	}
	if args[0].Tag != VTHash {
		return nil, Null
	}
	return args[0].Data.(*HashObject), Null
}
