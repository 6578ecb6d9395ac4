package analyzer

import (
	"fmt"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/token"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// resolveAnnotation resolves a surface type annotation against the
// environment and the discovered map. Failures are reported and yield
// Unknown so elaboration continues.
func (c *checker) resolveAnnotation(ann ast.Annotation) typesystem.Type {
	switch a := ann.(type) {
	case *ast.NamedAnnotation:
		return c.resolveNamed(a.Name, nil, a.GetToken())

	case *ast.ConcreteAnnotation:
		args := make([]typesystem.Type, len(a.Args))
		for i, arg := range a.Args {
			args[i] = c.resolveAnnotation(arg)
		}
		return c.resolveNamed(a.Name, args, a.GetToken())

	case *ast.GenericAnnotation:
		// Declaration-site spelling reached from a use site: the
		// parameters are in scope as generics.
		args := make([]typesystem.Type, len(a.Params))
		for i, p := range a.Params {
			args[i] = c.resolveNamed(p.Name, nil, p.Token)
		}
		return c.resolveNamed(a.Name, args, a.GetToken())

	case *ast.MemberAnnotation:
		return c.resolveMemberAnnotation(a)

	case *ast.ArrayAnnotation:
		return typesystem.Array{Element: c.resolveAnnotation(a.Element)}

	case *ast.FunctionAnnotation:
		return typesystem.Function{
			Param:  c.resolveAnnotation(a.Param),
			Return: c.resolveAnnotation(a.Return),
		}

	case *ast.LiteralAnnotation:
		if lit, ok := literalFromExpr(a.Literal); ok {
			return lit
		}
		c.error(diagnostics.ErrUnknownType, a.GetToken(), "invalid literal type")
		return typesystem.Unknown

	case nil:
		return typesystem.Unit
	}
	c.error(diagnostics.ErrUnknownType, ann.GetToken(), "unresolvable type annotation")
	return typesystem.Unknown
}

// resolveNamed resolves a (possibly generic) nominal reference. User
// structs and enums resolve to handles re-resolved on use; primitives,
// generics and the other environment-held types resolve directly.
func (c *checker) resolveNamed(name string, args []typesystem.Type, tok token.Token) typesystem.Type {
	arity := -1
	if t, found := c.env.GetType(name); found {
		switch decl := t.(type) {
		case typesystem.Struct:
			arity = len(decl.Params)
		case typesystem.Enum:
			arity = len(decl.Params)
		default:
			if len(args) > 0 {
				c.error(diagnostics.ErrArityMismatch, tok,
					fmt.Sprintf("type %s takes no generic arguments", name))
				return typesystem.Unknown
			}
			return t
		}
	} else if d, found := c.discovered[name]; found && d.Kind != DiscoveredFunction {
		arity = d.Params
	} else {
		c.error(diagnostics.ErrUnknownType, tok, "unknown type: "+name)
		return typesystem.Unknown
	}

	if len(args) != arity {
		c.error(diagnostics.ErrArityMismatch, tok,
			fmt.Sprintf("type %s expects %d generic argument(s), got %d", name, arity, len(args)))
		return typesystem.Unknown
	}

	c.checkArgConstraints(name, args, tok)
	return typesystem.Named{Name: name, Args: args}
}

// checkArgConstraints verifies a nominal instantiation against the
// declaration's where clause as the substitutions materialize.
func (c *checker) checkArgConstraints(name string, args []typesystem.Type, tok token.Token) {
	constraints := c.declConstraints[name]
	if len(constraints) == 0 || len(args) == 0 {
		return
	}
	params := c.declParams(name)
	sub := typesystem.Subst{}
	for i, p := range params {
		if i < len(args) {
			sub[p] = args[i]
		}
	}
	c.checkConstraints(constraints, sub, tok)
}

// checkConstraints reports every bound substituted type that fails to
// conform to its protocols.
func (c *checker) checkConstraints(constraints []tast.Constraint, sub typesystem.Subst, tok token.Token) {
	for _, constraint := range constraints {
		bound, ok := sub[constraint.Param]
		if !ok || typesystem.IsUnknown(bound) {
			continue
		}
		for _, proto := range constraint.Protocols {
			if !c.conforms(bound, proto) {
				c.error(diagnostics.ErrProtocolNotSatisfied, tok,
					fmt.Sprintf("type %s does not conform to protocol %s", bound.FullName(), proto))
			}
		}
	}
}

// declParams returns the generic parameter names of a discovered
// declaration, in declaration order.
func (c *checker) declParams(name string) []string {
	d, found := c.discovered[name]
	if !found {
		return nil
	}
	switch decl := d.Decl.(type) {
	case *ast.StructDeclaration:
		return paramNames(decl.TypeIdentifier.Params)
	case *ast.EnumDeclaration:
		return paramNames(decl.TypeIdentifier.Params)
	case *ast.FunctionDeclaration:
		return paramNames(decl.TypeParams)
	}
	return nil
}

func paramNames(params []*ast.GenericParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// resolveMemberAnnotation resolves a nested path: a module member or a
// protocol associated type.
func (c *checker) resolveMemberAnnotation(a *ast.MemberAnnotation) typesystem.Type {
	// Qualified lookup first: the environment may hold the full path.
	full := a.Parent.String() + "::" + a.Name
	if t, found := c.env.GetType(full); found {
		return t
	}
	parent := c.resolveAnnotation(a.Parent)
	switch p := parent.(type) {
	case typesystem.Module:
		if t, ok := p.Members[a.Name]; ok {
			return t
		}
	case typesystem.Protocol:
		if assoc, ok := p.AssociatedNamed(a.Name); ok {
			if assoc.Default != nil {
				return assoc.Default
			}
			return typesystem.Generic{Name: a.Name, Constraints: []string{p.Name}}
		}
	case typesystem.Generic:
		// Self::Item inside a protocol body: an opaque associated type.
		return typesystem.Generic{Name: p.Name + "::" + a.Name}
	}
	if typesystem.IsUnknown(parent) {
		return typesystem.Unknown
	}
	c.error(diagnostics.ErrUnknownType, a.GetToken(), "unknown type: "+full)
	return typesystem.Unknown
}
