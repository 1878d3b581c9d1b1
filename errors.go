// errors.go: user-facing error wrapping and caret-snippet rendering.
//
// Turns lexer/parser diagnostics into readable snippets with a caret under
// the offending column:
//
//	PARSE ERROR at 2:14: expected next token to be ), got ; instead
//
//	   1 | let a = 1;
//	   2 | let b = (a + 2;
//	     |              ^
//
// The snippet shows up to one line of context on each side. Anything that
// is not a *LexError or *ParseError passes through unchanged.
package sprout

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of src. Lex/parse errors are recognized by type; other errors are
// returned as-is.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Col is 0-based internally; render 1-based.
		return fmt.Errorf("%s", caretSnippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// caretSnippet builds the header plus a numbered source excerpt with the
// caret under col. Coordinates are 1-based and clamped to the source.
func caretSnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
