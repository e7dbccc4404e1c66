package evaluator

type binding struct {
	value   Object
	mutable bool
}

// Environment is one frame plus a link to the enclosing environment.
// Frames are shared by reference between closures and continuations.
type Environment struct {
	store map[string]*binding
	names []string // declaration order
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]*binding)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Extend creates a frame binding names to values, enclosed by e. Names
// without a value yet are given the unassigned placeholder by the caller.
func (e *Environment) Extend(names []string, values []Object) (*Environment, *Error) {
	if len(names) < len(values) {
		return nil, newError("too many arguments supplied: expected %d, got %d", len(names), len(values))
	}
	if len(names) > len(values) {
		return nil, newError("too few arguments supplied: expected %d, got %d", len(names), len(values))
	}
	frame := NewEnclosedEnvironment(e)
	for i, name := range names {
		if _, exists := frame.store[name]; exists {
			return nil, newError("multiple declarations of: %s", name)
		}
		frame.store[name] = &binding{value: values[i], mutable: true}
		frame.names = append(frame.names, name)
	}
	return frame, nil
}

// extendUnassigned is Extend for a frame of not yet declared locals.
func (e *Environment) extendUnassigned(names []string) (*Environment, *Error) {
	values := make([]Object, len(names))
	for i := range values {
		values[i] = unassigned
	}
	return e.Extend(names, values)
}

// Get looks name up from the innermost frame outward.
func (e *Environment) Get(name string) (Object, *Error) {
	for env := e; env != nil; env = env.outer {
		if b, ok := env.store[name]; ok {
			if b.value == unassigned {
				return nil, newError("name used before declaration: %s", name)
			}
			return b.value, nil
		}
	}
	return nil, newError("unbound name: %s", name)
}

// Define gives a declared name its value in the innermost frame. The name
// must already be present in the frame; running a declaration again after
// backtracking simply overwrites it.
func (e *Environment) Define(name string, val Object, mutable bool) *Error {
	b, ok := e.store[name]
	if !ok {
		return newError("internal error: %s is not declared in this scope", name)
	}
	b.value = val
	b.mutable = mutable
	return nil
}

// Set adds or replaces a mutable binding in this frame.
func (e *Environment) Set(name string, val Object) Object {
	if b, ok := e.store[name]; ok {
		b.value = val
		return val
	}
	e.store[name] = &binding{value: val, mutable: true}
	e.names = append(e.names, name)
	return val
}

// Declare adds names to this frame as unassigned placeholders. It fails if
// any of them is already declared here.
func (e *Environment) Declare(names []string) *Error {
	for _, name := range names {
		if _, exists := e.store[name]; exists {
			return newError("multiple declarations of: %s", name)
		}
	}
	for _, name := range names {
		e.store[name] = &binding{value: unassigned, mutable: true}
		e.names = append(e.names, name)
	}
	return nil
}

// forget removes names from this frame.
func (e *Environment) forget(names []string) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		delete(e.store, name)
		drop[name] = true
	}
	kept := e.names[:0]
	for _, name := range e.names {
		if !drop[name] {
			kept = append(kept, name)
		}
	}
	e.names = kept
}

// Assign changes the nearest binding of name. The returned undo function
// puts the previous value back.
func (e *Environment) Assign(name string, val Object) (undo func(), err *Error) {
	for env := e; env != nil; env = env.outer {
		b, ok := env.store[name]
		if !ok {
			continue
		}
		if b.value == unassigned {
			return nil, newError("name used before declaration: %s", name)
		}
		if !b.mutable {
			return nil, newError("no assignment to constants allowed: %s", name)
		}
		old := b.value
		b.value = val
		return func() { b.value = old }, nil
	}
	return nil, newError("unbound name in assignment: %s", name)
}

// Names returns the names declared in this frame in declaration order.
func (e *Environment) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Outer returns the enclosing environment, nil for the bootstrap frame.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// SetConstant adds or replaces an immutable binding in this frame.
func (e *Environment) SetConstant(name string, val Object) Object {
	e.Set(name, val)
	e.store[name].mutable = false
	return val
}
