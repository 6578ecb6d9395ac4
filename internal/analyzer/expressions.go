package analyzer

import (
	"fmt"
	"sort"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/token"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// expression elaborates one expression. When expected is non-nil it is
// propagated top-down as a hint; otherwise the natural type bubbles up.
// Failures report once and yield an Invalid hole typed Unknown.
func (c *checker) expression(expr ast.Expression, expected typesystem.Type) tast.Expression {
	switch e := expr.(type) {
	case *ast.VariableDeclaration:
		return c.variableDeclaration(e)
	case *ast.If:
		return c.ifExpression(e, expected)
	case *ast.Match:
		return c.matchExpression(e, expected)
	case *ast.Assignment:
		return c.assignment(e)
	case *ast.Identifier:
		return c.identifier(e)
	case *ast.MemberAccess:
		return c.memberAccess(e.Object, e.Member, e.Token, false)
	case *ast.ParamPropagation:
		// Elaborates identically to member access; only the surface
		// form differs.
		return c.memberAccess(e.Object, e.Member, e.Token, true)
	case *ast.UnitLiteral:
		return &tast.UnitLiteral{}
	case *ast.IntegerLiteral:
		return c.integerLiteral(e, expected)
	case *ast.FloatLiteral:
		return c.floatLiteral(e, expected)
	case *ast.StringLiteral:
		return c.stringLiteral(e, expected)
	case *ast.CharLiteral:
		return c.charLiteral(e, expected)
	case *ast.BooleanLiteral:
		return c.booleanLiteral(e, expected)
	case *ast.ArrayLiteral:
		return c.arrayLiteral(e, expected)
	case *ast.StructLiteral:
		return c.structLiteral(e, expected)
	case *ast.EnumLiteral:
		return c.enumLiteral(e)
	case *ast.Closure:
		return c.closure(e, expected)
	case *ast.Call:
		return c.call(e)
	case *ast.Unary:
		return c.unary(e, expected)
	case *ast.Binary:
		return c.binary(e, expected)
	case *ast.Block:
		return c.block(e, expected)
	case *ast.Print:
		return &tast.Print{Expression: c.expression(e.Expression, nil)}
	case *ast.Drop:
		return c.dropExpression(e)
	case *ast.Loop:
		return c.loopExpression(e)
	case *ast.While:
		return c.whileExpression(e)
	case *ast.For:
		return c.forExpression(e)
	case *ast.Break:
		return c.breakExpression(e)
	case *ast.Continue:
		if c.loopDepth == 0 {
			return c.error(diagnostics.ErrUnsupportedOperation, e.Token, "continue outside of a loop")
		}
		return &tast.Continue{}
	case *ast.Return:
		return c.returnExpression(e)
	}
	return c.error(diagnostics.ErrUnsupportedOperation, expr.GetToken(), "unsupported expression")
}

func (c *checker) variableDeclaration(e *ast.VariableDeclaration) tast.Expression {
	var declared typesystem.Type
	if e.TypeAnnotation != nil {
		declared = c.resolveAnnotation(e.TypeAnnotation)
	}
	init := c.expression(e.Initializer, declared)
	initType := init.Type()

	if declared == nil {
		declared = initType
	} else if !typesystem.AssignableTo(initType, declared) && !typesystem.IsUnknown(initType) {
		c.error(diagnostics.ErrTypeMismatch, e.Initializer.GetToken(),
			"cannot assign "+initType.FullName()+" to "+declared.FullName())
	}

	c.env.AddVariable(e.Name, declared, e.Mutable)
	return &tast.VariableDeclaration{
		Mutable:     e.Mutable,
		Name:        e.Name,
		Declared:    declared,
		Initializer: init,
	}
}

// identifier resolves a bare name: a variable first, then a
// zero-argument enum constructor, then a type reference.
func (c *checker) identifier(e *ast.Identifier) tast.Expression {
	if v, found := c.env.GetVariable(e.Value); found {
		return &tast.Identifier{Name: e.Value, Typ: v.Type}
	}
	if lit, ok := c.unitConstructor(e.Value); ok {
		return lit
	}
	if t, found := c.env.GetType(e.Value); found {
		return &tast.TypeReference{Referenced: t}
	}
	return c.error(diagnostics.ErrUnknownVariable, e.Token, "unknown variable: "+e.Value)
}

// unitConstructor finds the enum declaring a unit member with the given
// name. When several enums declare one, the lexicographically first enum
// wins; qualified access disambiguates.
func (c *checker) unitConstructor(name string) (tast.Expression, bool) {
	var candidates []typesystem.Enum
	c.env.EachType(func(t typesystem.Type) bool {
		if en, ok := t.(typesystem.Enum); ok {
			if m, found := en.MemberNamed(name); found && len(m.Fields) == 0 && len(en.SharedFields) == 0 {
				candidates = append(candidates, en)
			}
		}
		return true
	})
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return &tast.EnumLiteral{
		Member: name,
		Typ:    typesystem.Named{Name: candidates[0].Name},
	}, true
}

// memberAccess resolves obj.member for every object shape: enum and
// module references, struct fields, enum shared fields, protocol-bound
// generics, and nominal methods.
func (c *checker) memberAccess(objExpr ast.Expression, member string, tok token.Token, propagation bool) tast.Expression {
	obj := c.expression(objExpr, nil)
	objType := obj.Type()
	if typesystem.IsUnknown(objType) {
		return &tast.Invalid{}
	}

	if tr, ok := obj.(*tast.TypeReference); ok {
		return c.typeMember(tr, member, tok)
	}

	switch t := c.concrete(objType).(type) {
	case typesystem.Struct:
		if f, found := t.FieldNamed(member); found {
			return &tast.MemberAccess{Object: obj, Member: member, Propagation: propagation, Typ: f.Type}
		}
	case typesystem.Enum:
		for _, f := range t.SharedFields {
			if f.Name == member {
				return &tast.MemberAccess{Object: obj, Member: member, Propagation: propagation, Typ: f.Type}
			}
		}
	case typesystem.Generic:
		if sig, found := c.protocolMethod(t, member, objType); found {
			return &tast.MemberAccess{Object: obj, Member: member, Propagation: propagation, Typ: sig}
		}
	case typesystem.Module:
		if mt, found := t.Members[member]; found {
			return &tast.MemberAccess{Object: obj, Member: member, Propagation: propagation, Typ: mt}
		}
	}

	// Nominal method: a function whose first parameter is the object's
	// type; the access applies the receiver.
	if base := c.nominalBaseName(objType); base != "" {
		if fnType, found := c.impls[base][member]; found {
			if fn, ok := fnType.(typesystem.Function); ok {
				return &tast.MemberAccess{Object: obj, Member: member, Propagation: propagation, Typ: fn.Return}
			}
		}
	}

	return c.error(diagnostics.ErrUnknownMember, tok,
		"type "+objType.FullName()+" has no member "+member)
}

// typeMember resolves Member access on a type reference: enum
// constructors and module members.
func (c *checker) typeMember(tr *tast.TypeReference, member string, tok token.Token) tast.Expression {
	switch t := c.concrete(tr.Referenced).(type) {
	case typesystem.Enum:
		m, found := t.MemberNamed(member)
		if !found {
			return c.error(diagnostics.ErrUnknownMember, tok,
				"enum "+t.Name+" has no member "+member)
		}
		handle := enumHandle(tr.Referenced, t)
		fields := append(append([]typesystem.Field{}, t.SharedFields...), m.Fields...)
		if len(fields) == 0 {
			return &tast.EnumLiteral{Member: member, Typ: handle}
		}
		params := make([]typesystem.Type, len(fields))
		for i, f := range fields {
			params[i] = f.Type
		}
		return &tast.MemberAccess{Object: tr, Member: member, Typ: typesystem.Curry(params, handle)}

	case typesystem.Module:
		if mt, found := t.Members[member]; found {
			return &tast.TypeReference{Referenced: mt}
		}
	}
	return c.error(diagnostics.ErrUnknownMember, tok,
		"type "+tr.Referenced.FullName()+" has no member "+member)
}

// enumHandle keeps the use-site handle (with its generic arguments) when
// the reference already is one.
func enumHandle(ref typesystem.Type, en typesystem.Enum) typesystem.Type {
	if n, ok := ref.(typesystem.Named); ok {
		return n
	}
	if len(en.Params) == 0 {
		return typesystem.Named{Name: en.Name}
	}
	return en
}

// protocolMethod looks a member up in the protocols bounding a generic,
// substituting Self with the generic itself.
func (c *checker) protocolMethod(g typesystem.Generic, member string, self typesystem.Type) (typesystem.Type, bool) {
	for _, bound := range g.Constraints {
		declared, found := c.env.GetType(bound)
		if !found {
			continue
		}
		proto, ok := declared.(typesystem.Protocol)
		if !ok {
			continue
		}
		if fn, found := proto.FunctionNamed(member); found {
			sub := typesystem.Subst{"Self": self}
			return typesystem.Substitute(fn.Signature, sub), true
		}
	}
	return nil, false
}

// assignment checks the target is a mutable binding (or a field chain
// rooted at one) and the value is assignable.
func (c *checker) assignment(e *ast.Assignment) tast.Expression {
	var target tast.Expression
	switch t := e.Target.(type) {
	case *ast.Identifier:
		v, found := c.env.GetVariable(t.Value)
		if !found {
			return c.error(diagnostics.ErrUnknownVariable, t.Token, "unknown variable: "+t.Value)
		}
		if !v.Mutable {
			return c.error(diagnostics.ErrImmutableAssignment, e.Token,
				"cannot assign to immutable binding "+t.Value)
		}
		target = &tast.Identifier{Name: t.Value, Typ: v.Type}

	case *ast.MemberAccess:
		if root, ok := rootIdentifier(t); ok {
			if v, found := c.env.GetVariable(root); found && !v.Mutable {
				return c.error(diagnostics.ErrImmutableAssignment, e.Token,
					"cannot assign through immutable binding "+root)
			}
		}
		target = c.memberAccess(t.Object, t.Member, t.Token, false)
		if typesystem.IsUnknown(target.Type()) {
			return &tast.Invalid{}
		}

	default:
		return c.error(diagnostics.ErrUnsupportedOperation, e.Token, "invalid assignment target")
	}

	value := c.expression(e.Value, target.Type())
	if !typesystem.AssignableTo(value.Type(), target.Type()) && !typesystem.IsUnknown(value.Type()) {
		c.error(diagnostics.ErrTypeMismatch, e.Value.GetToken(),
			"cannot assign "+value.Type().FullName()+" to "+target.Type().FullName())
	}
	return &tast.Assignment{Target: target, Value: value}
}

// rootIdentifier walks a member chain to its root binding.
func rootIdentifier(e ast.Expression) (string, bool) {
	for {
		switch t := e.(type) {
		case *ast.Identifier:
			return t.Value, true
		case *ast.MemberAccess:
			e = t.Object
		case *ast.ParamPropagation:
			e = t.Object
		default:
			return "", false
		}
	}
}

// call applies a curried callee type one argument at a time, inferring
// generic parameters from the arguments as they elaborate.
func (c *checker) call(e *ast.Call) tast.Expression {
	callee := c.expression(e.Callee, nil)
	calleeType := callee.Type()
	if typesystem.IsUnknown(calleeType) {
		for _, a := range e.Arguments {
			c.expression(a, nil)
		}
		return &tast.Invalid{}
	}

	sub := typesystem.Subst{}
	cur := typesystem.Underlying(calleeType)
	var args []tast.Expression

	apply := func(argExpr ast.Expression) bool {
		fn, ok := typesystem.Underlying(cur).(typesystem.Function)
		if !ok {
			c.error(diagnostics.ErrArityMismatch, e.Token,
				fmt.Sprintf("too many arguments: %s is not a function", cur.FullName()))
			return false
		}
		declared := fn.Param
		hint := typesystem.Substitute(declared, sub)
		var arg tast.Expression
		if containsGeneric(hint) {
			arg = c.expression(argExpr, nil)
			typesystem.InferGenerics(declared, arg.Type(), sub)
			hint = typesystem.Substitute(declared, sub)
		} else {
			arg = c.expression(argExpr, hint)
		}
		if !typesystem.AssignableTo(arg.Type(), hint) && !typesystem.IsUnknown(arg.Type()) {
			c.error(diagnostics.ErrTypeMismatch, argExpr.GetToken(),
				"expected "+hint.FullName()+", got "+arg.Type().FullName())
		}
		args = append(args, arg)
		cur = fn.Return
		return true
	}

	if len(e.Arguments) == 0 {
		fn, ok := typesystem.Underlying(cur).(typesystem.Function)
		if !ok || !typesystem.Equal(fn.Param, typesystem.Unit) {
			return c.error(diagnostics.ErrArityMismatch, e.Token,
				calleeType.FullName()+" is not callable with no arguments")
		}
		cur = fn.Return
	}
	for _, a := range e.Arguments {
		if !apply(a) {
			return &tast.Invalid{}
		}
	}

	result := typesystem.Substitute(cur, sub)

	// Where-clause bounds of the called declaration are checked as the
	// substitutions are materialized.
	if id, ok := e.Callee.(*ast.Identifier); ok {
		c.checkConstraints(c.declConstraints[id.Value], sub, e.Token)
	}

	return &tast.Call{Callee: callee, Arguments: args, Typ: result}
}

// containsGeneric reports whether any generic position remains in t.
func containsGeneric(t typesystem.Type) bool {
	switch typ := t.(type) {
	case typesystem.Generic:
		return true
	case typesystem.Array:
		return containsGeneric(typ.Element)
	case typesystem.Function:
		return containsGeneric(typ.Param) || containsGeneric(typ.Return)
	case typesystem.Named:
		for _, a := range typ.Args {
			if containsGeneric(a) {
				return true
			}
		}
	case typesystem.Struct:
		for _, p := range typ.Params {
			if containsGeneric(p) {
				return true
			}
		}
	case typesystem.Enum:
		for _, p := range typ.Params {
			if containsGeneric(p) {
				return true
			}
		}
	}
	return false
}

// closure elaborates an anonymous function. Parameter annotations may be
// omitted when the expected function type supplies them.
func (c *checker) closure(e *ast.Closure, expected typesystem.Type) tast.Expression {
	expectedParams, expectedReturn := uncurry(expected, len(e.Params))

	params := make([]tast.Parameter, len(e.Params))
	paramTypes := make([]typesystem.Type, len(e.Params))
	for i, p := range e.Params {
		var t typesystem.Type
		if p.TypeAnnotation != nil {
			t = c.resolveAnnotation(p.TypeAnnotation)
		} else if i < len(expectedParams) && expectedParams[i] != nil {
			t = expectedParams[i]
		} else {
			c.error(diagnostics.ErrAmbiguousType, p.Token,
				"cannot infer type of closure parameter "+p.Name)
			t = typesystem.Unknown
		}
		params[i] = tast.Parameter{Name: p.Name, Typ: t}
		paramTypes[i] = t
	}

	var declaredReturn typesystem.Type
	if e.ReturnType != nil {
		declaredReturn = c.resolveAnnotation(e.ReturnType)
	} else if expectedReturn != nil {
		declaredReturn = expectedReturn
	}

	var body tast.Expression
	c.child(func() {
		for _, p := range params {
			c.env.AddVariable(p.Name, p.Typ, false)
		}
		body = c.expression(e.Body, declaredReturn)
	})

	ret := body.Type()
	if declaredReturn != nil {
		if !typesystem.AssignableTo(ret, declaredReturn) && !typesystem.IsUnknown(ret) {
			c.error(diagnostics.ErrTypeMismatch, e.Body.GetToken(),
				"closure returns "+declaredReturn.FullName()+", body has type "+ret.FullName())
		}
		ret = declaredReturn
	}

	return &tast.Closure{Params: params, Body: body, Typ: typesystem.Curry(paramTypes, ret)}
}

// uncurry splits an expected function type into up to n parameter types
// and the final return type.
func uncurry(t typesystem.Type, n int) ([]typesystem.Type, typesystem.Type) {
	var params []typesystem.Type
	for i := 0; i < n; i++ {
		fn, ok := typesystem.Underlying(t).(typesystem.Function)
		if !ok {
			return params, nil
		}
		params = append(params, fn.Param)
		t = fn.Return
	}
	return params, t
}

func (c *checker) dropExpression(e *ast.Drop) tast.Expression {
	id, ok := e.Expression.(*ast.Identifier)
	if !ok {
		return c.error(diagnostics.ErrUnsupportedOperation, e.Token, "drop target must be a binding")
	}
	v, found := c.env.GetVariable(id.Value)
	if !found {
		return c.error(diagnostics.ErrUnknownVariable, id.Token, "unknown variable: "+id.Value)
	}
	return &tast.Drop{Expression: &tast.Identifier{Name: id.Value, Typ: v.Type}}
}
