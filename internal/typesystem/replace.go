package typesystem

// Subst maps generic parameter names to the types substituted for them.
type Subst map[string]Type

// Substitute applies a substitution structurally: every Generic whose
// name appears in the substitution is replaced, recursing through arrays,
// functions, nominal handles, struct and enum fields, aliases, and
// protocol signatures. Substitution never introduces in-memory cycles:
// recursive references stay Named handles.
func Substitute(t Type, s Subst) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	return substitute(t, s, make(map[string]bool))
}

func substitute(t Type, s Subst, visited map[string]bool) Type {
	switch typ := t.(type) {
	case Generic:
		if replacement, ok := s[typ.Name]; ok {
			// Direct self-reference keeps the variable as-is.
			if g, ok := replacement.(Generic); ok && g.Name == typ.Name {
				return typ
			}
			if visited[typ.Name] {
				return typ
			}
			visited[typ.Name] = true
			result := substitute(replacement, s, visited)
			delete(visited, typ.Name)
			return result
		}
		return typ

	case Array:
		return Array{Element: substitute(typ.Element, s, visited)}

	case Function:
		return Function{
			Param:  substitute(typ.Param, s, visited),
			Return: substitute(typ.Return, s, visited),
		}

	case Named:
		if len(typ.Args) == 0 {
			return typ
		}
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = substitute(a, s, visited)
		}
		return Named{Name: typ.Name, Args: args}

	case Struct:
		params := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			params[i] = substitute(p, s, visited)
		}
		fields := make([]Field, len(typ.Fields))
		for i, f := range typ.Fields {
			fields[i] = Field{Name: f.Name, Type: substitute(f.Type, s, visited), Mutable: f.Mutable}
		}
		return Struct{Name: typ.Name, Params: params, Fields: fields}

	case Enum:
		params := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			params[i] = substitute(p, s, visited)
		}
		shared := make([]Field, len(typ.SharedFields))
		for i, f := range typ.SharedFields {
			shared[i] = Field{Name: f.Name, Type: substitute(f.Type, s, visited), Mutable: f.Mutable}
		}
		members := make([]EnumMember, len(typ.Members))
		for i, m := range typ.Members {
			fields := make([]Field, len(m.Fields))
			for j, f := range m.Fields {
				fields[j] = Field{Name: f.Name, Type: substitute(f.Type, s, visited), Mutable: f.Mutable}
			}
			members[i] = EnumMember{Name: m.Name, Fields: fields, Positional: m.Positional}
		}
		return Enum{Name: typ.Name, Params: params, SharedFields: shared, Members: members}

	case Alias:
		types := make([]Type, len(typ.Types))
		for i, a := range typ.Types {
			types[i] = substitute(a, s, visited)
		}
		return Alias{Name: typ.Name, Types: types}

	case Protocol:
		assoc := make([]AssociatedType, len(typ.AssociatedTypes))
		for i, a := range typ.AssociatedTypes {
			var def Type
			if a.Default != nil {
				def = substitute(a.Default, s, visited)
			}
			assoc[i] = AssociatedType{Name: a.Name, Default: def}
		}
		funcs := make([]ProtocolFunction, len(typ.Functions))
		for i, f := range typ.Functions {
			sig := substitute(f.Signature, s, visited).(Function)
			funcs[i] = ProtocolFunction{Name: f.Name, Signature: sig, HasDefault: f.HasDefault}
		}
		return Protocol{Name: typ.Name, AssociatedTypes: assoc, Functions: funcs}

	default:
		// Primitives, literals, unions, modules and Unknown carry no
		// generic positions.
		return t
	}
}

// InferGenerics matches a declared (possibly generic) type against a
// concrete argument type, accumulating parameter bindings into s. The
// first binding of a parameter wins; later conflicting uses are the
// caller's type error to report.
func InferGenerics(declared, actual Type, s Subst) {
	if declared == nil || actual == nil || IsUnknown(actual) {
		return
	}
	switch d := declared.(type) {
	case Generic:
		if _, bound := s[d.Name]; !bound {
			s[d.Name] = actual
		}
	case Array:
		if a, ok := Underlying(actual).(Array); ok {
			InferGenerics(d.Element, a.Element, s)
		}
	case Function:
		if a, ok := Underlying(actual).(Function); ok {
			InferGenerics(d.Param, a.Param, s)
			InferGenerics(d.Return, a.Return, s)
		}
	case Named:
		switch a := Underlying(actual).(type) {
		case Named:
			if a.Name == d.Name && len(a.Args) == len(d.Args) {
				for i := range d.Args {
					InferGenerics(d.Args[i], a.Args[i], s)
				}
			}
		case Struct:
			if a.Name == d.Name && len(a.Params) == len(d.Args) {
				for i := range d.Args {
					InferGenerics(d.Args[i], a.Params[i], s)
				}
			}
		case Enum:
			if a.Name == d.Name && len(a.Params) == len(d.Args) {
				for i := range d.Args {
					InferGenerics(d.Args[i], a.Params[i], s)
				}
			}
		}
	}
}
