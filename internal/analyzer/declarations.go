package analyzer

import (
	"fmt"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/symbols"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// declareTypes materializes every discovered type declaration into the
// environment, in declaration order. Forward references resolve through
// the discovered map as nominal handles, so mutual recursion needs no
// fixpoint.
func (c *checker) declareTypes(program *ast.Program) {
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.StructDeclaration:
			c.declConstraints[s.TypeIdentifier.Name] = c.whereConstraints(s.Where)
			t := c.buildStruct(s)
			c.declTypes[s] = t
			c.addDeclaredType(t.Name, t, s.Access)
		case *ast.EnumDeclaration:
			t := c.buildEnum(s)
			c.declTypes[s] = t
			c.addDeclaredType(t.Name, t, s.Access)
		case *ast.UnionDeclaration:
			t := c.buildUnion(s)
			c.declTypes[s] = t
			c.addDeclaredType(t.Name, t, s.Access)
		case *ast.TypeAliasDeclaration:
			t := c.buildAlias(s)
			c.declTypes[s] = t
			c.addDeclaredType(t.Name, t, s.Access)
		case *ast.ProtocolDeclaration:
			t := c.buildProtocol(s)
			c.declTypes[s] = t
			c.addDeclaredType(t.Name, t, s.Access)
		}
	}
}

// addDeclaredType inserts a built type under its declared identifier,
// translating the access modifier into the environment's visibility.
// Duplicates were already reported by discovery; the insert failure is
// not re-reported.
func (c *checker) addDeclaredType(name string, t typesystem.Type, access ast.AccessModifier) {
	_ = c.env.AddDeclarationWithVisibility(name, t, visibilityOf(access))
}

func visibilityOf(access ast.AccessModifier) symbols.Visibility {
	switch access {
	case ast.AccessPublic:
		return symbols.VisibilityPublic
	case ast.AccessModule:
		return symbols.VisibilityModule
	case ast.AccessSuper:
		return symbols.VisibilitySuper
	}
	return symbols.VisibilityPrivate
}

// genericsInScope pushes the declaration's generic parameters into the
// current (child) frame, with the where clause's constraints attached.
func (c *checker) genericsInScope(params []*ast.GenericParam, where []*ast.GenericConstraint) {
	byParam := make(map[string][]string)
	for _, w := range where {
		for _, p := range w.Protocols {
			byParam[w.Param] = append(byParam[w.Param], p.String())
		}
	}
	for _, p := range params {
		g := typesystem.Generic{Name: p.Name, Constraints: byParam[p.Name]}
		if err := c.env.AddType(g); err != nil {
			c.error(diagnostics.ErrDuplicateDeclaration, p.Token,
				"generic parameter "+p.Name+" is already declared")
		}
	}
}

// whereConstraints lowers a surface where clause.
func (c *checker) whereConstraints(where []*ast.GenericConstraint) []tast.Constraint {
	var out []tast.Constraint
	for _, w := range where {
		protos := make([]string, len(w.Protocols))
		for i, p := range w.Protocols {
			protos[i] = p.String()
		}
		out = append(out, tast.Constraint{Param: w.Param, Protocols: protos})
	}
	return out
}

func (c *checker) buildStruct(s *ast.StructDeclaration) typesystem.Struct {
	st := typesystem.Struct{Name: s.TypeIdentifier.Name}
	c.child(func() {
		c.genericsInScope(s.TypeIdentifier.Params, s.Where)
		for _, p := range s.TypeIdentifier.Params {
			t, _ := c.env.GetType(p.Name)
			st.Params = append(st.Params, t)
		}
		for _, f := range s.Fields {
			st.Fields = append(st.Fields, typesystem.Field{
				Name:    f.Name,
				Type:    c.resolveAnnotation(f.TypeAnnotation),
				Mutable: f.Mutable,
			})
		}
	})
	return st
}

func (c *checker) buildEnum(s *ast.EnumDeclaration) typesystem.Enum {
	en := typesystem.Enum{Name: s.TypeIdentifier.Name}
	c.child(func() {
		c.genericsInScope(s.TypeIdentifier.Params, nil)
		for _, p := range s.TypeIdentifier.Params {
			t, _ := c.env.GetType(p.Name)
			en.Params = append(en.Params, t)
		}
		for _, f := range s.SharedFields {
			en.SharedFields = append(en.SharedFields, typesystem.Field{
				Name:    f.Name,
				Type:    c.resolveAnnotation(f.TypeAnnotation),
				Mutable: f.Mutable,
			})
		}
		for _, m := range s.Members {
			member := typesystem.EnumMember{Name: m.Name}
			for i, f := range m.Fields {
				name := f.Name
				if name == "" {
					member.Positional = true
					name = fmt.Sprintf("%d", i)
				}
				member.Fields = append(member.Fields, typesystem.Field{
					Name: name,
					Type: c.resolveAnnotation(f.TypeAnnotation),
				})
			}
			en.Members = append(en.Members, member)
		}
	})
	return en
}

func (c *checker) buildUnion(s *ast.UnionDeclaration) typesystem.Union {
	un := typesystem.Union{Name: s.TypeIdentifier.Name}
	for _, lit := range s.Literals {
		l, ok := literalFromExpr(lit)
		if !ok {
			c.error(diagnostics.ErrTypeMismatch, lit.GetToken(),
				"union members must be literal types")
			continue
		}
		un.Literals = append(un.Literals, l)
	}
	return un
}

func (c *checker) buildAlias(s *ast.TypeAliasDeclaration) typesystem.Alias {
	al := typesystem.Alias{Name: s.TypeIdentifier.Name}
	c.child(func() {
		c.genericsInScope(s.TypeIdentifier.Params, nil)
		for _, t := range s.Types {
			al.Types = append(al.Types, c.resolveAnnotation(t))
		}
	})
	return al
}

func (c *checker) buildProtocol(s *ast.ProtocolDeclaration) typesystem.Protocol {
	p := typesystem.Protocol{Name: s.TypeIdentifier.Name}
	c.child(func() {
		// Self and the associated types are opaque generics inside the
		// protocol's own signatures.
		_ = c.env.AddType(typesystem.Generic{Name: "Self", Constraints: []string{p.Name}})
		for _, assoc := range s.AssociatedTypes {
			var def typesystem.Type
			if assoc.Default != nil {
				def = c.resolveAnnotation(assoc.Default)
			}
			p.AssociatedTypes = append(p.AssociatedTypes, typesystem.AssociatedType{
				Name:    assoc.Name,
				Default: def,
			})
			_ = c.env.AddType(typesystem.Generic{Name: assoc.Name})
		}
		for _, fn := range s.Functions {
			sig := c.buildFunctionType(fn)
			f, ok := sig.(typesystem.Function)
			if !ok {
				continue
			}
			p.Functions = append(p.Functions, typesystem.ProtocolFunction{
				Name:       fn.Name,
				Signature:  f,
				HasDefault: fn.Body != nil,
			})
		}
	})
	return p
}

// declareFunctions registers every top-level function's curried type as
// an immutable binding, and records nominal implementations: a function
// whose first parameter is a nominal type is that type's method of the
// same name.
func (c *checker) declareFunctions(program *ast.Program) {
	for _, stmt := range program.Statements {
		fn, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		c.declConstraints[fn.Name] = c.whereConstraints(fn.Where)

		var fnType typesystem.Type
		c.child(func() {
			c.genericsInScope(fn.TypeParams, fn.Where)
			fnType = c.buildFunctionType(fn)
		})
		c.env.AddVariable(fn.Name, fnType, false)

		if len(fn.Params) > 0 {
			if base := c.nominalBaseName(c.resolveParamType(fn.Params[0], fn)); base != "" {
				if c.impls[base] == nil {
					c.impls[base] = make(map[string]typesystem.Type)
				}
				c.impls[base][fn.Name] = fnType
			}
		}
	}
}

// resolveParamType resolves a parameter annotation inside the function's
// generic scope without reporting diagnostics twice; used only for the
// implementation registry.
func (c *checker) resolveParamType(p *ast.Parameter, fn *ast.FunctionDeclaration) typesystem.Type {
	var t typesystem.Type
	c.child(func() {
		probe := &checker{
			env:             c.env,
			cfg:             c.cfg,
			diags:           diagnostics.NewList(),
			discovered:      c.discovered,
			impls:           c.impls,
			declConstraints: c.declConstraints,
			declTypes:       c.declTypes,
		}
		probe.genericsInScope(fn.TypeParams, fn.Where)
		t = probe.resolveAnnotation(p.TypeAnnotation)
	})
	return t
}

// buildFunctionType resolves a declaration's parameter and return
// annotations into the curried function type. Caller provides the
// generic scope.
func (c *checker) buildFunctionType(fn *ast.FunctionDeclaration) typesystem.Type {
	params := make([]typesystem.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = c.resolveAnnotation(p.TypeAnnotation)
	}
	var ret typesystem.Type = typesystem.Unit
	if fn.ReturnType != nil {
		ret = c.resolveAnnotation(fn.ReturnType)
	}
	return typesystem.Curry(params, ret)
}

// nominalBaseName returns the declared name a type is registered under
// for method lookup, or "" for structural types and generics.
func (c *checker) nominalBaseName(t typesystem.Type) string {
	switch n := t.(type) {
	case typesystem.Named:
		return n.Name
	case typesystem.Primitive:
		return n.FullName()
	case typesystem.Struct:
		return n.Name
	case typesystem.Enum:
		return n.Name
	case typesystem.Union:
		return n.Name
	case typesystem.Alias:
		return n.Name
	}
	return ""
}

// conforms implements nominal protocol conformance: a type conforms iff
// it declares an implementation of every required (bodyless) protocol
// function. Generics conform through their declared bounds.
func (c *checker) conforms(t typesystem.Type, protoName string) bool {
	if typesystem.IsUnknown(t) {
		return true
	}
	if g, ok := t.(typesystem.Generic); ok {
		for _, bound := range g.Constraints {
			if bound == protoName {
				return true
			}
		}
		return false
	}
	declared, found := c.env.GetType(protoName)
	if !found {
		return false
	}
	proto, ok := declared.(typesystem.Protocol)
	if !ok {
		return false
	}
	base := c.nominalBaseName(t)
	for _, required := range proto.Required() {
		if base == "" {
			return false
		}
		if _, ok := c.impls[base][required.Name]; !ok {
			return false
		}
	}
	return true
}

// concrete chases handles and aliases to the inspectable declared type,
// instantiating generic arguments.
func (c *checker) concrete(t typesystem.Type) typesystem.Type {
	t = typesystem.Underlying(t)
	n, ok := t.(typesystem.Named)
	if !ok {
		return t
	}
	declared, found := c.env.GetType(n.Name)
	if !found {
		return typesystem.Unknown
	}
	switch decl := declared.(type) {
	case typesystem.Struct:
		return instantiate(decl, decl.Params, n.Args)
	case typesystem.Enum:
		return instantiate(decl, decl.Params, n.Args)
	default:
		return typesystem.Underlying(declared)
	}
}

func instantiate(decl typesystem.Type, params, args []typesystem.Type) typesystem.Type {
	if len(args) == 0 || len(params) != len(args) {
		return decl
	}
	sub := typesystem.Subst{}
	for i, p := range params {
		if g, ok := p.(typesystem.Generic); ok {
			sub[g.Name] = args[i]
		}
	}
	return typesystem.Substitute(decl, sub)
}

// literalFromExpr converts a surface literal expression into a literal
// type.
func literalFromExpr(e ast.Expression) (typesystem.Literal, bool) {
	switch lit := e.(type) {
	case *ast.IntegerLiteral:
		kind := typesystem.LiteralInt
		if lit.Unsigned {
			kind = typesystem.LiteralUInt
		}
		return typesystem.Literal{Kind: kind, Int: lit.Value}, true
	case *ast.FloatLiteral:
		return typesystem.FloatLiteral(lit.Value), true
	case *ast.BooleanLiteral:
		return typesystem.BoolLiteral(lit.Value), true
	case *ast.CharLiteral:
		return typesystem.CharLiteral(lit.Value), true
	case *ast.StringLiteral:
		return typesystem.StringLiteral(lit.Value), true
	}
	return typesystem.Literal{}, false
}
