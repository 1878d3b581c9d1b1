// env.go
package sprout

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward without a depth bound; writes always land in the current
// frame (a let-only language has no mutation syntax for outer bindings).
// Closures hold the *Env they were defined in, which keeps the whole chain
// reachable for as long as the function value is.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Define binds name to v in the current frame, shadowing any outer binding,
// and returns v.
func (e *Env) Define(name string, v Value) Value {
	e.table[name] = v
	return v
}
