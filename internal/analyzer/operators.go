package analyzer

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// unary type rules: identity/negate want a numeric operand, logical not
// wants bool, bitwise not wants an integer; each yields its operand
// type.
func (c *checker) unary(e *ast.Unary, expected typesystem.Type) tast.Expression {
	operand := c.expression(e.Operand, expected)
	t := operand.Type()
	if typesystem.IsUnknown(t) {
		return &tast.Unary{Operator: e.Operator, Operand: operand, Typ: typesystem.Unknown}
	}

	p, isPrimitive := typesystem.Underlying(t).(typesystem.Primitive)
	ok := false
	switch e.Operator {
	case "+", "-":
		ok = isPrimitive && p.IsNumeric()
	case "!":
		ok = isPrimitive && p == typesystem.Bool
	case "~":
		ok = isPrimitive && p.IsInteger()
	}
	if !ok {
		return c.error(diagnostics.ErrUnsupportedOperation, e.Token,
			"operator "+e.Operator+" is not defined for "+t.FullName())
	}
	return &tast.Unary{Operator: e.Operator, Operand: operand, Typ: t}
}

// binary elaborates an infix operation. The left side elaborates first;
// its type becomes the hint for the right side so contextless literals
// agree with their partner.
func (c *checker) binary(e *ast.Binary, expected typesystem.Type) tast.Expression {
	var leftHint typesystem.Type
	if isArithmetic(e.Operator) {
		leftHint = expected
	}
	left := c.expression(e.Left, leftHint)
	right := c.expression(e.Right, left.Type())

	lt, rt := left.Type(), right.Type()
	if typesystem.IsUnknown(lt) || typesystem.IsUnknown(rt) {
		return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: typesystem.Unknown}
	}

	lp, lOk := typesystem.Underlying(lt).(typesystem.Primitive)
	rp, rOk := typesystem.Underlying(rt).(typesystem.Primitive)

	fail := func() tast.Expression {
		return c.error(diagnostics.ErrUnsupportedOperation, e.Token,
			"operator "+e.Operator+" is not defined for "+lt.FullName()+" and "+rt.FullName())
	}

	switch e.Operator {
	case "+", "-", "*", "/", "%":
		// Both sides must be the same numeric primitive.
		if lOk && rOk && lp == rp && lp.IsNumeric() {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: lp}
		}
		return fail()

	case "==", "!=":
		if _, ok := typesystem.Join(lt, rt); ok {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: typesystem.Bool}
		}
		return fail()

	case "<", "<=", ">", ">=":
		numeric := lOk && rOk && lp == rp && lp.IsNumeric()
		chars := lOk && rOk && lp == typesystem.Char && rp == typesystem.Char
		strs := lOk && rOk && lp == typesystem.String && rp == typesystem.String
		if numeric || chars || strs {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: typesystem.Bool}
		}
		return fail()

	case "<<", ">>":
		if lOk && rOk && lp.IsInteger() && rp.IsInteger() {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: lp}
		}
		return fail()

	case "&", "|", "^":
		if lOk && rOk && lp == rp && lp.IsInteger() {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: lp}
		}
		return fail()

	case "&&", "||":
		if lOk && rOk && lp == typesystem.Bool && rp == typesystem.Bool {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right, Typ: typesystem.Bool}
		}
		return fail()

	case "..", "..=":
		// Ranges want integer endpoints of one width; they are iterable
		// as arrays of that integer.
		if lOk && rOk && lp == rp && lp.IsInteger() {
			return &tast.Binary{Operator: e.Operator, Left: left, Right: right,
				Typ: typesystem.Array{Element: lp}}
		}
		return fail()
	}
	return fail()
}

func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}
