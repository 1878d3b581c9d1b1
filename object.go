// object.go — the Sprout runtime value model.
//
// Value is the universal runtime carrier: a tagged sum over null, booleans,
// 64-bit integers and floats, strings, arrays, ordered hashes, closures and
// native builtins. The tag determines which Go type Value.Data holds. The
// Annot field is the soft-error channel: a runtime complaint is delivered as
// a null Value whose Annot carries the message, never as a host panic, so
// evaluation always makes progress.
package sprout

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull    ValueTag = iota // null (no payload)
	VTBool                    // bool
	VTInt                     // int64
	VTNum                     // float64
	VTStr                     // string
	VTArray                   // []Value
	VTHash                    // *HashObject (ordered hash)
	VTFun                     // *Fun (user-defined closure)
	VTBuiltin                 // *Builtin (native function)
	VTReturn                  // Value (internal return signal, never user-visible)
)

// typeName is the tag name surfaced by the `type` builtin.
func (t ValueTag) typeName() string {
	switch t {
	case VTNull:
		return "null"
	case VTBool:
		return "bool"
	case VTInt:
		return "int"
	case VTNum:
		return "float"
	case VTStr:
		return "string"
	case VTArray:
		return "array"
	case VTHash:
		return "hash"
	case VTFun:
		return "fn"
	case VTBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Value is a tagged runtime value. See ValueTag for the Data contract.
type Value struct {
	Tag   ValueTag
	Data  interface{}
	Annot string
}

// Null is the singleton null Value (no annotation, no payload).
var Null = Value{Tag: VTNull}

// Primitive constructors for convenience.
func Bool(b bool) Value    { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value    { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value  { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value   { return Value{Tag: VTStr, Data: s} }
func Arr(xs []Value) Value { return Value{Tag: VTArray, Data: xs} }

// ErrNull builds an annotated null: the runtime's non-fatal error value.
func ErrNull(msg string) Value { return Value{Tag: VTNull, Annot: msg} }

// retVal wraps a value in the internal return signal.
func retVal(v Value) Value { return Value{Tag: VTReturn, Data: v} }

// unwrapReturn removes a return signal, if present.
func unwrapReturn(v Value) Value {
	if v.Tag == VTReturn {
		return v.Data.(Value)
	}
	return v
}

// ---------------------------------------------------------------------------
// Hashes
// ---------------------------------------------------------------------------

// HashKey is the comparable projection of a hashable Value. Only integers,
// floats, booleans and strings may key a hash.
type HashKey struct {
	Tag ValueTag
	I   int64
	F   float64
	B   bool
	S   string
}

// hashKeyOf projects v to a HashKey; ok is false for non-hashable tags.
func hashKeyOf(v Value) (HashKey, bool) {
	switch v.Tag {
	case VTInt:
		return HashKey{Tag: VTInt, I: v.Data.(int64)}, true
	case VTNum:
		return HashKey{Tag: VTNum, F: v.Data.(float64)}, true
	case VTBool:
		return HashKey{Tag: VTBool, B: v.Data.(bool)}, true
	case VTStr:
		return HashKey{Tag: VTStr, S: v.Data.(string)}, true
	default:
		return HashKey{}, false
	}
}

// HashPair keeps the original key Value alongside the stored value so the
// hash can be rendered with its real keys.
type HashPair struct {
	Key   Value
	Value Value
}

// HashObject is an ordered hash: Entries is the lookup table, Keys the
// insertion order. Lookup ignores order; inspection preserves it.
type HashObject struct {
	Entries map[HashKey]HashPair
	Keys    []HashKey
}

// NewHash creates an empty hash.
func NewHash() *HashObject {
	return &HashObject{Entries: make(map[HashKey]HashPair)}
}

// Set inserts or replaces the entry for key. New keys append to the
// insertion order; replaced keys keep their original position.
func (h *HashObject) Set(key, val Value) bool {
	hk, ok := hashKeyOf(key)
	if !ok {
		return false
	}
	if _, exists := h.Entries[hk]; !exists {
		h.Keys = append(h.Keys, hk)
	}
	h.Entries[hk] = HashPair{Key: key, Value: val}
	return true
}

// Get looks up the value stored under key.
func (h *HashObject) Get(key Value) (Value, bool) {
	hk, ok := hashKeyOf(key)
	if !ok {
		return Value{}, false
	}
	pair, ok := h.Entries[hk]
	if !ok {
		return Value{}, false
	}
	return pair.Value, true
}

// HashVal wraps a *HashObject into a Value.
func HashVal(h *HashObject) Value { return Value{Tag: VTHash, Data: h} }

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

// Fun is a user-defined closure: parameter names, body AST, and the
// environment captured at definition time.
type Fun struct {
	Params []string
	Body   *BlockStatement
	Env    *Env
}

// FunVal wraps *Fun into a Value.
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// BuiltinImpl is the implementation signature for native functions. Args are
// already evaluated; implementations return a plain Value (annotated null
// for misuse, never a panic).
type BuiltinImpl func(ip *Interpreter, args []Value) Value

// Builtin is a named native function.
type Builtin struct {
	Name string
	Impl BuiltinImpl
}

// BuiltinVal wraps *Builtin into a Value.
func BuiltinVal(b *Builtin) Value { return Value{Tag: VTBuiltin, Data: b} }
