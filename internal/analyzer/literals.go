package analyzer

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// integerLiteral elaborates an integer literal. With an integer primitive
// expected, the literal adopts it when the value fits; with a union or
// literal type expected it stays a literal type; without context it
// defaults to the configured width, widening when the value demands it.
func (c *checker) integerLiteral(e *ast.IntegerLiteral, expected typesystem.Type) tast.Expression {
	kind := typesystem.LiteralInt
	if e.Unsigned {
		kind = typesystem.LiteralUInt
	}
	lit := typesystem.Literal{Kind: kind, Int: e.Value}

	if expected != nil {
		switch exp := typesystem.Underlying(expected).(type) {
		case typesystem.Primitive:
			if exp.IsInteger() {
				if lit.FitsIn(exp) {
					return &tast.IntegerLiteral{Value: e.Value, Typ: exp}
				}
				return c.error(diagnostics.ErrTypeMismatch, e.Token,
					"integer "+e.Value.String()+" does not fit in "+exp.FullName())
			}
		case typesystem.Union, typesystem.Literal:
			return &tast.IntegerLiteral{Value: e.Value, Typ: lit}
		}
	}

	for _, p := range c.integerWidening(e.Unsigned) {
		if lit.FitsIn(p) {
			return &tast.IntegerLiteral{Value: e.Value, Typ: p}
		}
	}
	return c.error(diagnostics.ErrTypeMismatch, e.Token,
		"integer "+e.Value.String()+" does not fit any integer type")
}

// integerWidening is the default-then-widen chain for unsuffixed
// literals.
func (c *checker) integerWidening(unsigned bool) []typesystem.Primitive {
	if unsigned {
		return []typesystem.Primitive{c.defaultIntType(true), typesystem.U64, typesystem.U128}
	}
	return []typesystem.Primitive{c.defaultIntType(false), typesystem.I64, typesystem.I128}
}

func (c *checker) floatLiteral(e *ast.FloatLiteral, expected typesystem.Type) tast.Expression {
	if expected != nil {
		switch exp := typesystem.Underlying(expected).(type) {
		case typesystem.Primitive:
			if exp.IsFloat() {
				return &tast.FloatLiteral{Value: e.Value, Typ: exp}
			}
		case typesystem.Union, typesystem.Literal:
			return &tast.FloatLiteral{Value: e.Value, Typ: typesystem.FloatLiteral(e.Value)}
		}
	}
	return &tast.FloatLiteral{Value: e.Value, Typ: c.defaultFloatType()}
}

func (c *checker) stringLiteral(e *ast.StringLiteral, expected typesystem.Type) tast.Expression {
	if expected != nil {
		switch typesystem.Underlying(expected).(type) {
		case typesystem.Union, typesystem.Literal:
			return &tast.StringLiteral{Value: e.Value, Typ: typesystem.StringLiteral(e.Value)}
		}
	}
	return &tast.StringLiteral{Value: e.Value, Typ: typesystem.String}
}

func (c *checker) charLiteral(e *ast.CharLiteral, expected typesystem.Type) tast.Expression {
	if expected != nil {
		switch typesystem.Underlying(expected).(type) {
		case typesystem.Union, typesystem.Literal:
			return &tast.CharLiteral{Value: e.Value, Typ: typesystem.CharLiteral(e.Value)}
		}
	}
	return &tast.CharLiteral{Value: e.Value, Typ: typesystem.Char}
}

func (c *checker) booleanLiteral(e *ast.BooleanLiteral, expected typesystem.Type) tast.Expression {
	if expected != nil {
		switch typesystem.Underlying(expected).(type) {
		case typesystem.Union, typesystem.Literal:
			return &tast.BooleanLiteral{Value: e.Value, Typ: typesystem.BoolLiteral(e.Value)}
		}
	}
	return &tast.BooleanLiteral{Value: e.Value, Typ: typesystem.Bool}
}

// arrayLiteral elaborates an array literal. The element type is the join
// of the elements' types; an empty literal needs context or stays
// Unknown with an AmbiguousType diagnostic.
func (c *checker) arrayLiteral(e *ast.ArrayLiteral, expected typesystem.Type) tast.Expression {
	var elemExpected typesystem.Type
	if expected != nil {
		if arr, ok := typesystem.Underlying(expected).(typesystem.Array); ok {
			elemExpected = arr.Element
		}
	}

	if len(e.Elements) == 0 {
		if elemExpected != nil {
			return &tast.ArrayLiteral{Typ: typesystem.Array{Element: elemExpected}}
		}
		c.diags.Add(diagnostics.NewError(diagnostics.ErrAmbiguousType, e.Token,
			"cannot infer element type of empty array"))
		return &tast.ArrayLiteral{Typ: typesystem.Unknown}
	}

	elements := make([]tast.Expression, len(e.Elements))
	var elem typesystem.Type = elemExpected
	for i, el := range e.Elements {
		elements[i] = c.expression(el, elemExpected)
		t := elements[i].Type()
		joined, ok := typesystem.Join(elem, t)
		if !ok {
			c.error(diagnostics.ErrTypeMismatch, el.GetToken(),
				"array element type "+t.FullName()+" has no common type with "+elem.FullName())
			elem = typesystem.Unknown
			continue
		}
		elem = joined
	}
	return &tast.ArrayLiteral{Elements: elements, Typ: typesystem.Array{Element: elem}}
}

// structLiteral elaborates a struct instantiation, inferring generic
// arguments from the field values when the annotation leaves them open.
func (c *checker) structLiteral(e *ast.StructLiteral, expected typesystem.Type) tast.Expression {
	resolved := c.resolveAnnotation(e.TypeAnnotation)
	if typesystem.IsUnknown(resolved) {
		return &tast.Invalid{}
	}
	st, ok := c.concrete(resolved).(typesystem.Struct)
	if !ok {
		return c.error(diagnostics.ErrTypeMismatch, e.Token,
			resolved.FullName()+" is not a struct type")
	}

	// The expected type can pin open generic arguments before the
	// fields are checked.
	sub := typesystem.Subst{}
	if expected != nil {
		typesystem.InferGenerics(resolved, typesystem.Underlying(expected), sub)
	}

	fields := make([]*tast.FieldInitializer, 0, len(e.Fields))
	seen := make(map[string]bool)
	for _, f := range e.Fields {
		declared, found := st.FieldNamed(f.Name)
		if !found {
			c.error(diagnostics.ErrUnknownMember, f.Token,
				"struct "+st.Name+" has no field "+f.Name)
			continue
		}
		if seen[f.Name] {
			c.error(diagnostics.ErrDuplicateDeclaration, f.Token,
				"field "+f.Name+" initialized twice")
			continue
		}
		seen[f.Name] = true

		hint := typesystem.Substitute(declared.Type, sub)
		var value tast.Expression
		if containsGeneric(hint) {
			value = c.expression(f.Value, nil)
			typesystem.InferGenerics(declared.Type, value.Type(), sub)
			hint = typesystem.Substitute(declared.Type, sub)
		} else {
			value = c.expression(f.Value, hint)
		}
		if !typesystem.AssignableTo(value.Type(), hint) && !typesystem.IsUnknown(value.Type()) {
			c.error(diagnostics.ErrTypeMismatch, f.Value.GetToken(),
				"field "+f.Name+" expects "+hint.FullName()+", got "+value.Type().FullName())
		}
		fields = append(fields, &tast.FieldInitializer{Name: f.Name, Value: value})
	}

	for _, declared := range st.Fields {
		if !seen[declared.Name] {
			c.error(diagnostics.ErrTypeMismatch, e.Token,
				"missing field "+declared.Name+" in literal of "+st.Name)
		}
	}

	typ := typesystem.Substitute(resolved, sub)
	return &tast.StructLiteral{Fields: fields, Typ: typ}
}

// enumLiteral elaborates an enum member instantiation with named fields.
func (c *checker) enumLiteral(e *ast.EnumLiteral) tast.Expression {
	resolved := c.resolveAnnotation(e.TypeAnnotation)
	if typesystem.IsUnknown(resolved) {
		return &tast.Invalid{}
	}
	en, ok := c.concrete(resolved).(typesystem.Enum)
	if !ok {
		return c.error(diagnostics.ErrTypeMismatch, e.Token,
			resolved.FullName()+" is not an enum type")
	}
	member, found := en.MemberNamed(e.Member)
	if !found {
		return c.error(diagnostics.ErrUnknownMember, e.Token,
			"enum "+en.Name+" has no member "+e.Member)
	}

	sub := typesystem.Subst{}
	fields := make([]*tast.FieldInitializer, 0, len(e.Fields))
	seen := make(map[string]bool)
	for _, f := range e.Fields {
		declared, found := en.MemberField(member, f.Name)
		if !found {
			c.error(diagnostics.ErrUnknownMember, f.Token,
				"member "+member.Name+" has no field "+f.Name)
			continue
		}
		seen[f.Name] = true
		hint := typesystem.Substitute(declared.Type, sub)
		var value tast.Expression
		if containsGeneric(hint) {
			value = c.expression(f.Value, nil)
			typesystem.InferGenerics(declared.Type, value.Type(), sub)
		} else {
			value = c.expression(f.Value, hint)
			if !typesystem.AssignableTo(value.Type(), hint) && !typesystem.IsUnknown(value.Type()) {
				c.error(diagnostics.ErrTypeMismatch, f.Value.GetToken(),
					"field "+f.Name+" expects "+hint.FullName()+", got "+value.Type().FullName())
			}
		}
		fields = append(fields, &tast.FieldInitializer{Name: f.Name, Value: value})
	}

	for _, declared := range append(append([]typesystem.Field{}, en.SharedFields...), member.Fields...) {
		if !seen[declared.Name] {
			c.error(diagnostics.ErrTypeMismatch, e.Token,
				"missing field "+declared.Name+" in literal of "+en.Name+"::"+member.Name)
		}
	}

	typ := typesystem.Substitute(resolved, sub)
	return &tast.EnumLiteral{Member: e.Member, Fields: fields, Typ: typ}
}
