package interp

import "github.com/dolthub/swiss"

// Environment is one frame of the lexical environment chain. Frames are
// shared objects (always referenced through a pointer) so that closures
// can keep a frame alive after the block or call that created it returns.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment creates a frame enclosed by parent (nil for the globals
// frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{enclosing: parent, values: swiss.NewMap[string, Value](8)}
}

// Define binds name in this frame, overwriting any existing binding. This
// is deliberately permissive at the global scope (redeclaring a global is
// allowed); the resolver is what forbids local redeclaration.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get looks up name starting at this frame and walking outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// GetAt looks up name exactly `distance` frames out from e, as resolved by
// the resolver. Panics if distance is wrong, which would indicate a
// resolver/interpreter desync rather than a user-facing error.
func (e *Environment) GetAt(distance int, name string) Value {
	env := e.ancestor(distance)
	v, ok := env.values.Get(name)
	if !ok {
		panic("interp: resolved variable '" + name + "' missing from its bound scope")
	}
	return v
}

// AssignAt assigns name exactly `distance` frames out from e.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	env := e.ancestor(distance)
	env.values.Put(name, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// Assign sets an existing binding found by walking the chain outward;
// it does not create a new one. Returns false if name is unbound anywhere
// in the chain.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values.Get(name); ok {
			env.values.Put(name, value)
			return true
		}
	}
	return false
}
