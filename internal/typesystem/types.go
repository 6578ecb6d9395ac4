// Package typesystem defines the Lunar type model: every value type, the
// full-name identity scheme, assignability, and generic substitution.
package typesystem

import (
	"sort"
	"strings"
)

// Type is the interface for all types in the system. Identity is the full
// name: two types are equal iff their full names are equal.
type Type interface {
	// FullName is the canonical, substitution-applied name of the type,
	// used for equality and environment lookup.
	FullName() string
	String() string
	typeNode()
}

// Equal reports full-name equality.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.FullName() == b.FullName()
}

// Primitive is a built-in nominal type. The value is its source spelling,
// which doubles as its full name.
type Primitive string

const (
	Void   Primitive = "void"
	Unit   Primitive = "()"
	Bool   Primitive = "bool"
	Char   Primitive = "char"
	String Primitive = "string"
	I8     Primitive = "i8"
	I16    Primitive = "i16"
	I32    Primitive = "i32"
	I64    Primitive = "i64"
	I128   Primitive = "i128"
	U8     Primitive = "u8"
	U16    Primitive = "u16"
	U32    Primitive = "u32"
	U64    Primitive = "u64"
	U128   Primitive = "u128"
	F32    Primitive = "f32"
	F64    Primitive = "f64"
)

// Primitives lists every built-in type seeded into a root environment.
var Primitives = []Primitive{
	Void, Unit, Bool, Char, String,
	I8, I16, I32, I64, I128,
	U8, U16, U32, U64, U128,
	F32, F64,
}

func (p Primitive) typeNode()        {}
func (p Primitive) FullName() string { return string(p) }
func (p Primitive) String() string   { return string(p) }

// IsInteger reports whether p is a fixed-width integer type.
func (p Primitive) IsInteger() bool {
	switch p {
	case I8, I16, I32, I64, I128, U8, U16, U32, U64, U128:
		return true
	}
	return false
}

// IsUnsigned reports whether p is an unsigned integer type.
func (p Primitive) IsUnsigned() bool {
	switch p {
	case U8, U16, U32, U64, U128:
		return true
	}
	return false
}

// IsFloat reports whether p is a floating point type.
func (p Primitive) IsFloat() bool { return p == F32 || p == F64 }

// IsNumeric reports whether p is an integer or float type.
func (p Primitive) IsNumeric() bool { return p.IsInteger() || p.IsFloat() }

// Bits returns the width of a numeric primitive, or 0 for non-numerics.
func (p Primitive) Bits() int {
	switch p {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	case I128, U128:
		return 128
	}
	return 0
}

// Array is a homogeneous sequence of Element.
type Array struct {
	Element Type
}

func (a Array) typeNode()        {}
func (a Array) FullName() string { return "[" + a.Element.FullName() + "]" }
func (a Array) String() string   { return a.FullName() }

// Field is a named field of a struct, enum member, or enum shared block.
type Field struct {
	Name    string
	Type    Type
	Mutable bool
}

// Struct is a named product type. Params hold the current generic
// arguments: Generic placeholders in the declared form, concrete types
// after substitution.
type Struct struct {
	Name   string
	Params []Type
	Fields []Field
}

func (s Struct) typeNode()        {}
func (s Struct) FullName() string { return nominalFullName(s.Name, s.Params) }
func (s Struct) String() string   { return s.FullName() }

// FieldNamed returns the field with the given name.
func (s Struct) FieldNamed(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EnumMember is a single variant of an enum. Positional members keep
// their field order; Fields of a positional member have index names.
type EnumMember struct {
	Name       string
	Fields     []Field
	Positional bool
}

// Enum is a tagged sum type. SharedFields are carried by every member.
type Enum struct {
	Name         string
	Params       []Type
	SharedFields []Field
	Members      []EnumMember
}

func (e Enum) typeNode()        {}
func (e Enum) FullName() string { return nominalFullName(e.Name, e.Params) }
func (e Enum) String() string   { return e.FullName() }

// MemberNamed returns the member with the given name.
func (e Enum) MemberNamed(name string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// MemberField returns a field of a member, consulting shared fields first.
func (e Enum) MemberField(member EnumMember, name string) (Field, bool) {
	for _, f := range e.SharedFields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range member.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Union is an ad-hoc sum of literal types under a nominal name.
type Union struct {
	Name     string
	Literals []Literal
}

func (u Union) typeNode()        {}
func (u Union) FullName() string { return u.Name }
func (u Union) String() string {
	parts := make([]string, len(u.Literals))
	for i, l := range u.Literals {
		parts[i] = l.FullName()
	}
	return u.Name + " = " + strings.Join(parts, " | ")
}

// Contains reports whether the union carries a literal equal to l.
func (u Union) Contains(l Literal) bool {
	for _, m := range u.Literals {
		if m.FullName() == l.FullName() {
			return true
		}
	}
	return false
}

// Function is the curried single-parameter function type. Multi-parameter
// functions are nested Function types.
type Function struct {
	Param  Type
	Return Type
}

func (f Function) typeNode() {}
func (f Function) FullName() string {
	return "fun(" + f.Param.FullName() + "): " + f.Return.FullName()
}
func (f Function) String() string { return f.FullName() }

// Curry folds a parameter list into nested Function types. A function of
// no parameters takes unit.
func Curry(params []Type, ret Type) Type {
	if len(params) == 0 {
		return Function{Param: Unit, Return: ret}
	}
	result := ret
	for i := len(params) - 1; i >= 0; i-- {
		result = Function{Param: params[i], Return: result}
	}
	return result
}

// AssociatedType is an associated type declared by a protocol, with an
// optional default.
type AssociatedType struct {
	Name    string
	Default Type
}

// ProtocolFunction is a function signature required (or defaulted) by a
// protocol.
type ProtocolFunction struct {
	Name       string
	Signature  Function
	HasDefault bool
}

// Protocol is an existential/bounded constraint: associated types plus
// required function signatures.
type Protocol struct {
	Name            string
	AssociatedTypes []AssociatedType
	Functions       []ProtocolFunction
}

func (p Protocol) typeNode()        {}
func (p Protocol) FullName() string { return p.Name }
func (p Protocol) String() string   { return p.Name }

// Required returns the protocol functions a conforming type must declare
// itself: the ones without defaults.
func (p Protocol) Required() []ProtocolFunction {
	var req []ProtocolFunction
	for _, f := range p.Functions {
		if !f.HasDefault {
			req = append(req, f)
		}
	}
	return req
}

// FunctionNamed returns the protocol function with the given name.
func (p Protocol) FunctionNamed(name string) (ProtocolFunction, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return ProtocolFunction{}, false
}

// AssociatedNamed returns the associated type with the given name.
func (p Protocol) AssociatedNamed(name string) (AssociatedType, bool) {
	for _, a := range p.AssociatedTypes {
		if a.Name == name {
			return a, true
		}
	}
	return AssociatedType{}, false
}

// Alias is a transparent rename of one or more types.
type Alias struct {
	Name  string
	Types []Type
}

func (a Alias) typeNode()        {}
func (a Alias) FullName() string { return a.Name }
func (a Alias) String() string   { return a.Name }

// Generic is a type-variable bound inside a declaration, with the
// protocol names constraining it.
type Generic struct {
	Name        string
	Constraints []string
}

func (g Generic) typeNode()        {}
func (g Generic) FullName() string { return g.Name }
func (g Generic) String() string   { return g.Name }

// Named is a nominal type handle: a declared name plus concrete generic
// arguments. Recursive type references are stored as handles and
// re-resolved through the environment on use, never as in-memory cycles.
type Named struct {
	Name string
	Args []Type
}

func (n Named) typeNode()        {}
func (n Named) FullName() string { return nominalFullName(n.Name, n.Args) }
func (n Named) String() string   { return n.FullName() }

// Module is a namespace of declarations reachable through member access.
type Module struct {
	Name    string
	Path    []string
	Members map[string]Type
}

func (m Module) typeNode()        {}
func (m Module) FullName() string { return strings.Join(m.Path, "::") }
func (m Module) String() string   { return m.FullName() }

// MemberNames returns the module's member names in sorted order.
func (m Module) MemberNames() []string {
	names := make([]string, 0, len(m.Members))
	for name := range m.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unknown is the sentinel produced when elaboration fails locally but
// must continue. Every type is assignable to it.
type unknown struct{}

func (unknown) typeNode()        {}
func (unknown) FullName() string { return "?" }
func (unknown) String() string   { return "?" }

// Unknown is the single unknown-type sentinel.
var Unknown Type = unknown{}

// IsUnknown reports whether t is the unknown sentinel.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(unknown)
	return ok
}

func nominalFullName(name string, args []Type) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.FullName()
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}
