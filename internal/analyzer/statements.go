package analyzer

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// statement elaborates one statement. A statement that fails still
// produces a typed statement with Unknown-typed holes; the diagnostic
// was recorded where the failure happened.
func (c *checker) statement(stmt ast.Statement) tast.Statement {
	switch s := stmt.(type) {
	case *ast.Program:
		typed := &tast.Program{File: s.File}
		for _, inner := range s.Statements {
			typed.Statements = append(typed.Statements, c.statement(inner))
		}
		return typed

	case *ast.ModuleDeclaration:
		return &tast.ModuleDeclaration{Access: s.Access, Path: s.Path}

	case *ast.Use:
		return &tast.Use{Path: s.Path, Alias: s.Alias}

	case *ast.StructDeclaration:
		st, _ := c.declTypes[s].(typesystem.Struct)
		return &tast.StructDeclaration{
			Access: s.Access,
			Struct: st,
			Where:  c.declConstraints[s.TypeIdentifier.Name],
		}

	case *ast.EnumDeclaration:
		en, _ := c.declTypes[s].(typesystem.Enum)
		return &tast.EnumDeclaration{Access: s.Access, Enum: en}

	case *ast.UnionDeclaration:
		un, _ := c.declTypes[s].(typesystem.Union)
		return &tast.UnionDeclaration{Access: s.Access, Union: un}

	case *ast.TypeAliasDeclaration:
		al, _ := c.declTypes[s].(typesystem.Alias)
		return &tast.TypeAliasDeclaration{Access: s.Access, Alias: al}

	case *ast.ProtocolDeclaration:
		return c.protocolDeclaration(s)

	case *ast.FunctionDeclaration:
		return c.functionDeclaration(s)

	case *ast.Semi:
		return &tast.Semi{Expression: c.expression(s.Expression, nil)}

	case *ast.ExpressionStatement:
		return &tast.ExpressionStatement{Expression: c.expression(s.Expression, nil)}
	}

	c.error(diagnostics.ErrUnsupportedOperation, stmt.GetToken(), "unsupported statement")
	return &tast.Semi{Expression: &tast.Invalid{}}
}

// protocolDeclaration elaborates the default implementations of a
// protocol; the protocol type itself was built during declaration.
func (c *checker) protocolDeclaration(s *ast.ProtocolDeclaration) tast.Statement {
	proto, _ := c.declTypes[s].(typesystem.Protocol)
	decl := &tast.ProtocolDeclaration{Access: s.Access, Protocol: proto}

	for _, fn := range s.Functions {
		if fn.Body == nil {
			continue
		}
		var typed *tast.FunctionDeclaration
		c.child(func() {
			// Default bodies see Self, the associated types, and an
			// implicit self binding.
			self := typesystem.Generic{Name: "Self", Constraints: []string{proto.Name}}
			_ = c.env.AddType(self)
			for _, assoc := range proto.AssociatedTypes {
				_ = c.env.AddType(typesystem.Generic{Name: assoc.Name})
			}
			c.env.AddVariable("self", self, false)
			typed = c.elaborateFunction(fn)
		})
		decl.Defaults = append(decl.Defaults, typed)
	}
	return decl
}

// functionDeclaration elaborates a top-level function: its signature was
// registered by declareFunctions, its body is checked here in a child
// frame seeded with the generic parameters and the parameters.
func (c *checker) functionDeclaration(s *ast.FunctionDeclaration) tast.Statement {
	var typed *tast.FunctionDeclaration
	c.child(func() {
		c.genericsInScope(s.TypeParams, s.Where)
		typed = c.elaborateFunction(s)
	})
	typed.Access = s.Access
	typed.TypeParams = paramNames(s.TypeParams)
	typed.Where = c.whereConstraints(s.Where)
	return typed
}

// elaborateFunction resolves the signature and checks the body against
// the declared return type. The generic scope is already in place.
func (c *checker) elaborateFunction(s *ast.FunctionDeclaration) *tast.FunctionDeclaration {
	params := make([]tast.Parameter, len(s.Params))
	paramTypes := make([]typesystem.Type, len(s.Params))
	for i, p := range s.Params {
		t := c.resolveAnnotation(p.TypeAnnotation)
		params[i] = tast.Parameter{Name: p.Name, Typ: t}
		paramTypes[i] = t
	}
	var ret typesystem.Type = typesystem.Unit
	if s.ReturnType != nil {
		ret = c.resolveAnnotation(s.ReturnType)
	}

	typed := &tast.FunctionDeclaration{
		Name:       s.Name,
		Params:     params,
		ReturnType: ret,
		Declared:   typesystem.Curry(paramTypes, ret),
	}
	if s.Body == nil {
		return typed
	}

	c.child(func() {
		for _, p := range params {
			c.env.AddVariable(p.Name, p.Typ, false)
		}
		savedReturn := c.returnType
		c.returnType = ret
		defer func() { c.returnType = savedReturn }()

		typed.Body = c.expression(s.Body, ret)
		bodyType := typed.Body.Type()
		if !typesystem.AssignableTo(bodyType, ret) && !typesystem.IsUnknown(bodyType) {
			c.error(diagnostics.ErrTypeMismatch, s.Body.GetToken(),
				"function "+s.Name+" returns "+ret.FullName()+", body has type "+bodyType.FullName())
		}
	})
	return typed
}
