// Package symbols implements the lexically scoped type environment: a
// chain of frames holding named types and named variables. Child frames
// shadow parents; lookups walk the parent chain; mutation only ever
// touches the local frame.
package symbols

import (
	"fmt"

	"github.com/lunarlang/lunar/internal/typesystem"
)

// Visibility is the cross-module visibility of a declared type, forwarded
// for use lookups. Enforcement across compilation units is the driver's
// concern.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
	VisibilityModule
	VisibilitySuper
)

// Variable is a named binding in a frame.
type Variable struct {
	Name    string
	Type    typesystem.Type
	Mutable bool
}

// DuplicateTypeError is returned by AddType when the full name already
// exists in the local frame.
type DuplicateTypeError struct {
	FullName string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %s already exists", e.FullName)
}

// Environment is one frame of the lexically scoped type environment.
type Environment struct {
	parent     *Environment
	types      map[string]typesystem.Type
	visibility map[string]Visibility
	variables  map[string]Variable
}

// NewRoot creates a root frame seeded with the built-in primitive types.
func NewRoot() *Environment {
	env := &Environment{
		types:      make(map[string]typesystem.Type),
		visibility: make(map[string]Visibility),
		variables:  make(map[string]Variable),
	}
	for _, p := range typesystem.Primitives {
		env.types[p.FullName()] = p
	}
	return env
}

// NewChild creates a frame whose parent chain points to parent. The child
// never mutates the parent; its lifetime is strictly contained in the
// parent's.
func NewChild(parent *Environment) *Environment {
	return &Environment{
		parent:     parent,
		types:      make(map[string]typesystem.Type),
		visibility: make(map[string]Visibility),
		variables:  make(map[string]Variable),
	}
}

// Parent returns the enclosing frame, or nil for the root.
func (e *Environment) Parent() *Environment { return e.parent }

// AddType inserts a type into the local frame, keyed by its full name.
// Fails when the full name already exists in this frame; shadowing a
// parent frame's type is permitted.
func (e *Environment) AddType(t typesystem.Type) error {
	return e.addNamed(t.FullName(), t)
}

// AddDeclaration inserts a declared type under its declared identifier.
// For generic declarations the identifier is the key, not the
// parameterized full name, so use sites can resolve the bare name.
func (e *Environment) AddDeclaration(name string, t typesystem.Type) error {
	return e.addNamed(name, t)
}

func (e *Environment) addNamed(name string, t typesystem.Type) error {
	if _, exists := e.types[name]; exists {
		return &DuplicateTypeError{FullName: name}
	}
	e.types[name] = t
	return nil
}

// AddDeclarationWithVisibility inserts a declared type and records its
// visibility.
func (e *Environment) AddDeclarationWithVisibility(name string, t typesystem.Type, v Visibility) error {
	if err := e.addNamed(name, t); err != nil {
		return err
	}
	e.visibility[name] = v
	return nil
}

// TypeVisibility returns the recorded visibility of a type, walking the
// parent chain.
func (e *Environment) TypeVisibility(fullName string) Visibility {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.visibility[fullName]; ok {
			return v
		}
	}
	return VisibilityPrivate
}

// AddVariable inserts or overwrites a variable in the local frame.
// Shadowing a parent binding is permitted.
func (e *Environment) AddVariable(name string, t typesystem.Type, mutable bool) {
	e.variables[name] = Variable{Name: name, Type: t, Mutable: mutable}
}

// GetType looks up a type by name, walking parents until found.
func (e *Environment) GetType(name string) (typesystem.Type, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// GetVariable looks up a variable by name, walking parents until found.
func (e *Environment) GetVariable(name string) (Variable, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.variables[name]; ok {
			return v, true
		}
	}
	return Variable{}, false
}

// LookupType reports whether a type with the given full name is visible
// from this frame.
func (e *Environment) LookupType(fullName string) bool {
	_, ok := e.GetType(fullName)
	return ok
}

// LocalTypes returns the local frame's type map. Callers must not mutate
// it; it is exposed for iteration in tests and tooling.
func (e *Environment) LocalTypes() map[string]typesystem.Type { return e.types }

// LocalVariables returns the local frame's variable map. Callers must
// not mutate it.
func (e *Environment) LocalVariables() map[string]Variable { return e.variables }

// EachType walks every visible type, nearest frame first. Shadowed names
// are reported once, at the nearest frame. The walk order within a frame
// is unspecified; callers needing determinism sort the results.
func (e *Environment) EachType(fn func(t typesystem.Type) bool) {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.parent {
		for name, t := range env.types {
			if seen[name] {
				continue
			}
			seen[name] = true
			if !fn(t) {
				return
			}
		}
	}
}
