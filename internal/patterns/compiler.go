// Package patterns compiles the surface patterns of a match expression
// into a shared decision tree over scrutinee fields. The tree is
// exhaustive (a Failure leaf appears iff the arms do not cover the
// scrutinee type) and non-redundant (arms shadowed by earlier arms are
// reported as unreachable warnings).
package patterns

import (
	"fmt"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/symbols"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/token"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// Input is one match expression ready for compilation: the root
// scrutinee variable, the arms with their already-elaborated bodies, and
// the match expression's result type.
type Input struct {
	Token      token.Token
	Scrutinee  tast.Variable
	Arms       []*tast.MatchArm
	ResultType typesystem.Type
	Env        *symbols.Environment
}

// Compile builds the decision tree for a match expression and reports
// exhaustiveness errors and unreachable-arm warnings into diags.
func Compile(in Input, diags *diagnostics.List) tast.Decision {
	c := &compiler{
		env:        in.Env,
		resultType: in.ResultType,
		used:       make(map[int]bool),
	}

	rows := make([]row, len(in.Arms))
	for i, arm := range in.Arms {
		rows[i] = row{
			pairs: []pair{{v: in.Scrutinee, p: arm.Pattern}},
			arm:   i,
			body:  arm.Body,
		}
	}

	tree := c.compileRows(rows, "_")

	if msg, found := firstFailure(tree); found {
		diags.Add(diagnostics.NewError(
			diagnostics.ErrNonExhaustiveMatch,
			in.Token,
			"non-exhaustive match, uncovered example: "+msg,
		))
	}
	for i, arm := range in.Arms {
		if !c.used[i] {
			diags.Add(diagnostics.NewWarning(
				diagnostics.ErrUnreachablePattern,
				arm.Pattern.GetToken(),
				"unreachable pattern",
			))
		}
	}
	return tree
}

// pair is one (path-to-variable, remaining-pattern) frontier entry.
type pair struct {
	v tast.Variable
	p ast.Pattern
}

// row is one arm's frontier plus its chosen body.
type row struct {
	pairs []pair
	arm   int
	body  tast.Expression
}

type compiler struct {
	env        *symbols.Environment
	resultType typesystem.Type
	fresh      int
	used       map[int]bool
}

func (c *compiler) freshVar(t typesystem.Type) tast.Variable {
	c.fresh++
	return tast.Variable{Name: fmt.Sprintf("m%d", c.fresh), Typ: t}
}

// irrefutable reports whether a pattern matches every value without
// inspecting it.
func irrefutable(p ast.Pattern) bool {
	switch p.(type) {
	case nil, *ast.WildcardPattern, *ast.VariablePattern:
		return true
	}
	return false
}

// compileRows is the core recursion. missing describes the value shape
// reaching this matrix, used to build the uncovered example when no row
// remains.
func (c *compiler) compileRows(rows []row, missing string) tast.Decision {
	if len(rows) == 0 {
		return &tast.Failure{Message: missing}
	}

	// If every pattern of the first row is a wildcard, that arm is
	// chosen; later rows reaching here are shadowed.
	col := -1
	for j := range rows[0].pairs {
		if refutableInColumn(rows, j) {
			col = j
			break
		}
	}
	if col == -1 {
		c.used[rows[0].arm] = true
		return &tast.Success{Expression: rows[0].body, Typ: c.resultType}
	}

	v := rows[0].pairs[col].v
	scrutType := c.resolve(v.Typ)

	switch t := scrutType.(type) {
	case typesystem.Primitive:
		switch t {
		case typesystem.Bool:
			return c.switchBool(rows, col, v)
		case typesystem.Unit:
			return c.switchUnit(rows, col, v)
		default:
			return c.guardLadder(rows, col, v, nil, missing)
		}
	case typesystem.Enum:
		return c.switchEnum(rows, col, v, t)
	case typesystem.Struct:
		return c.switchStruct(rows, col, v, t)
	case typesystem.Union:
		return c.guardLadder(rows, col, v, &t, missing)
	default:
		// Refutable patterns over a type with no inspectable shape:
		// only the irrefutable rows can apply.
		return c.compileRows(defaultRows(rows, col), missing)
	}
}

// refutableInColumn reports whether any row's pattern in column j needs
// inspection.
func refutableInColumn(rows []row, j int) bool {
	for _, r := range rows {
		if !irrefutable(r.pairs[j].p) {
			return true
		}
	}
	return false
}

// resolve chases nominal handles and aliases to an inspectable type.
func (c *compiler) resolve(t typesystem.Type) typesystem.Type {
	t = typesystem.Underlying(t)
	if n, ok := t.(typesystem.Named); ok {
		if resolved, found := c.env.GetType(n.Name); found {
			switch decl := resolved.(type) {
			case typesystem.Struct:
				return instantiateStruct(decl, n.Args)
			case typesystem.Enum:
				return instantiateEnum(decl, n.Args)
			default:
				return typesystem.Underlying(resolved)
			}
		}
	}
	return t
}

func instantiateStruct(decl typesystem.Struct, args []typesystem.Type) typesystem.Type {
	if len(args) == 0 || len(decl.Params) != len(args) {
		return decl
	}
	sub := typesystem.Subst{}
	for i, p := range decl.Params {
		if g, ok := p.(typesystem.Generic); ok {
			sub[g.Name] = args[i]
		}
	}
	return typesystem.Substitute(decl, sub)
}

func instantiateEnum(decl typesystem.Enum, args []typesystem.Type) typesystem.Type {
	if len(args) == 0 || len(decl.Params) != len(args) {
		return decl
	}
	sub := typesystem.Subst{}
	for i, p := range decl.Params {
		if g, ok := p.(typesystem.Generic); ok {
			sub[g.Name] = args[i]
		}
	}
	return typesystem.Substitute(decl, sub)
}

// defaultRows keeps only rows whose column-j pattern is irrefutable,
// leaving the column in place as a wildcard.
func defaultRows(rows []row, j int) []row {
	var out []row
	for _, r := range rows {
		if irrefutable(r.pairs[j].p) {
			out = append(out, r)
		}
	}
	return out
}
