// printer.go — canonical value rendering.
package sprout

import (
	"strconv"
	"strings"
)

// Inspect renders the canonical textual form of a value: the form printed by
// diagnostics, hash-key rendering, and the generic equality fallback.
// Strings are quoted; arrays and hashes render recursively, hashes in
// insertion order.
func Inspect(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return strconv.Quote(v.Data.(string))
	case VTArray:
		var b strings.Builder
		b.WriteByte('[')
		for i, el := range v.Data.([]Value) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Inspect(el))
		}
		b.WriteByte(']')
		return b.String()
	case VTHash:
		h := v.Data.(*HashObject)
		var b strings.Builder
		b.WriteByte('{')
		for i, hk := range h.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			pair := h.Entries[hk]
			b.WriteString(Inspect(pair.Key))
			b.WriteString(": ")
			b.WriteString(Inspect(pair.Value))
		}
		b.WriteByte('}')
		return b.String()
	case VTFun:
		f := v.Data.(*Fun)
		var b strings.Builder
		b.WriteString("fn(")
		b.WriteString(strings.Join(f.Params, ", "))
		b.WriteString(") { ")
		b.WriteString(f.Body.String())
		b.WriteString(" }")
		return b.String()
	case VTBuiltin:
		return "builtin " + v.Data.(*Builtin).Name
	case VTReturn:
		return Inspect(v.Data.(Value))
	default:
		return "unknown"
	}
}

// FormatValue renders a value for interactive display. It matches Inspect
// except that a top-level string loses its outermost quote pair — only the
// outermost one; strings nested in arrays or hashes stay quoted.
func FormatValue(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return Inspect(v)
}
