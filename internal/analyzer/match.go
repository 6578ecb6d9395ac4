package analyzer

import (
	"fmt"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/patterns"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// matchExpression elaborates every arm in its own frame with the
// pattern's bindings, joins the arm types, and compiles the shared
// decision tree.
func (c *checker) matchExpression(e *ast.Match, expected typesystem.Type) tast.Expression {
	scrutinee := c.expression(e.Scrutinee, nil)
	scrutType := scrutinee.Type()

	arms := make([]*tast.MatchArm, 0, len(e.Arms))
	var typ typesystem.Type
	for _, arm := range e.Arms {
		var body tast.Expression
		c.child(func() {
			c.bindPattern(arm.Pattern, scrutType)
			body = c.expression(arm.Body, expected)
		})
		arms = append(arms, &tast.MatchArm{Pattern: arm.Pattern, Body: body})

		joined, ok := typesystem.Join(typ, body.Type())
		if !ok {
			c.error(diagnostics.ErrTypeMismatch, arm.Body.GetToken(),
				"match arms have no common type: "+typ.FullName()+" and "+body.Type().FullName())
			typ = typesystem.Unknown
			continue
		}
		typ = joined
	}
	if typ == nil {
		typ = typesystem.Unit
	}

	typed := &tast.Match{Scrutinee: scrutinee, Arms: arms, Typ: typ}
	if typesystem.IsUnknown(scrutType) || len(arms) == 0 {
		return typed
	}

	// The compiler reports into a scratch list so disabled warning
	// groups can be filtered without losing the errors.
	scratch := diagnostics.NewList()
	typed.Tree = patterns.Compile(patterns.Input{
		Token:      e.Token,
		Scrutinee:  tast.Variable{Name: "m0", Typ: scrutType},
		Arms:       arms,
		ResultType: typ,
		Env:        c.env,
	}, scratch)
	for _, d := range scratch.Items() {
		if d.Code == diagnostics.ErrUnreachablePattern && !c.cfg.Warnings.Unreachable {
			continue
		}
		c.diags.Add(d)
	}
	return typed
}

// bindPattern extends the current frame with the variables a pattern
// binds, checking the pattern's shape against the scrutinee type.
func (c *checker) bindPattern(p ast.Pattern, t typesystem.Type) {
	switch pat := p.(type) {
	case nil, *ast.WildcardPattern:
		return

	case *ast.VariablePattern:
		c.env.AddVariable(pat.Name, t, false)

	case *ast.UnitPattern:
		c.checkPatternType(typesystem.Unit, t, p)

	case *ast.BoolPattern:
		c.checkPatternLiteral(typesystem.BoolLiteral(pat.Value), t, p)

	case *ast.IntPattern:
		kind := typesystem.LiteralInt
		if pat.Unsigned {
			kind = typesystem.LiteralUInt
		}
		c.checkPatternLiteral(typesystem.Literal{Kind: kind, Int: pat.Value}, t, p)

	case *ast.FloatPattern:
		c.checkPatternLiteral(typesystem.FloatLiteral(pat.Value), t, p)

	case *ast.CharPattern:
		c.checkPatternLiteral(typesystem.CharLiteral(pat.Value), t, p)

	case *ast.StringPattern:
		c.checkPatternLiteral(typesystem.StringLiteral(pat.Value), t, p)

	case *ast.ConstructorPattern:
		c.bindConstructorPattern(pat, t)
	}
}

func (c *checker) checkPatternType(want, got typesystem.Type, p ast.Pattern) {
	if typesystem.IsUnknown(got) {
		return
	}
	if !typesystem.Equal(typesystem.Underlying(got), want) {
		c.error(diagnostics.ErrTypeMismatch, p.GetToken(),
			"pattern of type "+want.FullName()+" cannot match "+got.FullName())
	}
}

func (c *checker) checkPatternLiteral(lit typesystem.Literal, t typesystem.Type, p ast.Pattern) {
	if typesystem.IsUnknown(t) {
		return
	}
	if !typesystem.AssignableTo(lit, typesystem.Underlying(t)) {
		c.error(diagnostics.ErrTypeMismatch, p.GetToken(),
			"pattern "+lit.FullName()+" cannot match "+t.FullName())
	}
}

// bindConstructorPattern destructures a struct or enum member pattern,
// binding named and positional field patterns against the declared field
// types.
func (c *checker) bindConstructorPattern(pat *ast.ConstructorPattern, t typesystem.Type) {
	switch ct := c.concrete(t).(type) {
	case typesystem.Struct:
		for _, fp := range pat.Fields {
			if fp.Identifier == "" {
				c.error(diagnostics.ErrUnknownMember, fp.Token,
					"struct patterns need named fields")
				continue
			}
			field, found := ct.FieldNamed(fp.Identifier)
			if !found {
				c.error(diagnostics.ErrUnknownMember, fp.Token,
					"struct "+ct.Name+" has no field "+fp.Identifier)
				continue
			}
			c.bindFieldPattern(fp, field.Type)
		}

	case typesystem.Enum:
		name := patternConstructorName(pat.TypeAnnotation)
		member, found := ct.MemberNamed(name)
		if !found {
			c.error(diagnostics.ErrUnknownMember, pat.GetToken(),
				"enum "+ct.Name+" has no member "+name)
			return
		}
		fields := append(append([]typesystem.Field{}, ct.SharedFields...), member.Fields...)
		for i, fp := range pat.Fields {
			if fp.Identifier == "" {
				if i < len(fields) {
					c.bindFieldPattern(fp, fields[i].Type)
				} else {
					c.error(diagnostics.ErrArityMismatch, fp.Token,
						fmt.Sprintf("member %s has no field at position %d", member.Name, i))
				}
				continue
			}
			field, found := ct.MemberField(member, fp.Identifier)
			if !found {
				c.error(diagnostics.ErrUnknownMember, fp.Token,
					"member "+member.Name+" has no field "+fp.Identifier)
				continue
			}
			c.bindFieldPattern(fp, field.Type)
		}

	default:
		if !typesystem.IsUnknown(t) {
			c.error(diagnostics.ErrTypeMismatch, pat.GetToken(),
				"constructor pattern cannot match "+t.FullName())
		}
	}
}

// bindFieldPattern binds one field pattern: a bare identifier binds the
// field to its own name; a sub-pattern recurses.
func (c *checker) bindFieldPattern(fp *ast.FieldPattern, fieldType typesystem.Type) {
	if fp.Pattern == nil {
		if fp.Identifier != "" {
			c.env.AddVariable(fp.Identifier, fieldType, false)
		}
		return
	}
	c.bindPattern(fp.Pattern, fieldType)
}

// patternConstructorName extracts the member name a constructor pattern
// matches: the last path segment of its annotation.
func patternConstructorName(ann ast.Annotation) string {
	switch a := ann.(type) {
	case *ast.NamedAnnotation:
		return a.Name
	case *ast.ConcreteAnnotation:
		return a.Name
	case *ast.GenericAnnotation:
		return a.Name
	case *ast.MemberAnnotation:
		return a.Name
	}
	return ""
}
