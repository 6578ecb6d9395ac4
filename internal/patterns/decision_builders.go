package patterns

import (
	"strings"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// switchBool builds a two-case switch over {true, false}. The case set is
// finite, so there is never a fallback; an uncovered side becomes a
// Failure leaf.
func (c *compiler) switchBool(rows []row, col int, v tast.Variable) tast.Decision {
	cases := make([]tast.Case, 0, 2)
	for _, value := range []bool{true, false} {
		kind := tast.ConstructorTrue
		example := "true"
		if !value {
			kind = tast.ConstructorFalse
			example = "false"
		}
		spec := c.specializeBool(rows, col, value)
		cases = append(cases, tast.Case{
			Constructor: tast.Constructor{Kind: kind},
			Body:        c.compileRows(spec, example),
		})
	}
	return &tast.Switch{Variable: v, Cases: cases, Typ: c.resultType}
}

func (c *compiler) specializeBool(rows []row, col int, value bool) []row {
	var out []row
	for _, r := range rows {
		switch p := r.pairs[col].p.(type) {
		case *ast.BoolPattern:
			if p.Value == value {
				out = append(out, wildcardAt(r, col))
			}
		default:
			if irrefutable(r.pairs[col].p) {
				out = append(out, r)
			}
		}
	}
	return out
}

// switchUnit builds the single-case switch over the unit constructor.
func (c *compiler) switchUnit(rows []row, col int, v tast.Variable) tast.Decision {
	var spec []row
	for _, r := range rows {
		switch r.pairs[col].p.(type) {
		case *ast.UnitPattern:
			spec = append(spec, wildcardAt(r, col))
		default:
			if irrefutable(r.pairs[col].p) {
				spec = append(spec, r)
			}
		}
	}
	return &tast.Switch{
		Variable: v,
		Cases: []tast.Case{{
			Constructor: tast.Constructor{Kind: tast.ConstructorUnit},
			Body:        c.compileRows(spec, "()"),
		}},
		Typ: c.resultType,
	}
}

// switchEnum builds one case per declared member, in declaration order.
// Shared fields precede member fields in the argument variables.
func (c *compiler) switchEnum(rows []row, col int, v tast.Variable, enum typesystem.Enum) tast.Decision {
	cases := make([]tast.Case, 0, len(enum.Members))
	for _, member := range enum.Members {
		fields := append(append([]typesystem.Field{}, enum.SharedFields...), member.Fields...)
		args := make([]tast.Variable, len(fields))
		for i, f := range fields {
			args[i] = c.freshVar(f.Type)
		}
		spec := c.specializeEnum(rows, col, member, fields, args)
		example := member.Name
		if len(fields) > 0 {
			example += " { .. }"
		}
		cases = append(cases, tast.Case{
			Constructor: tast.Constructor{Kind: tast.ConstructorEnumMember, Name: member.Name},
			Arguments:   args,
			Body:        c.compileRows(spec, example),
		})
	}
	return &tast.Switch{Variable: v, Cases: cases, Typ: c.resultType}
}

func (c *compiler) specializeEnum(rows []row, col int, member typesystem.EnumMember, fields []typesystem.Field, args []tast.Variable) []row {
	var out []row
	for _, r := range rows {
		switch p := r.pairs[col].p.(type) {
		case *ast.ConstructorPattern:
			if constructorName(p.TypeAnnotation) != member.Name {
				continue
			}
			out = append(out, expandAt(r, col, args, fieldSubpatterns(p, fields)))
		default:
			if irrefutable(r.pairs[col].p) {
				out = append(out, expandAt(r, col, args, make([]ast.Pattern, len(args))))
			}
		}
	}
	return out
}

// switchStruct builds the single-constructor switch destructuring every
// declared field.
func (c *compiler) switchStruct(rows []row, col int, v tast.Variable, st typesystem.Struct) tast.Decision {
	args := make([]tast.Variable, len(st.Fields))
	for i, f := range st.Fields {
		args[i] = c.freshVar(f.Type)
	}
	var spec []row
	for _, r := range rows {
		switch p := r.pairs[col].p.(type) {
		case *ast.ConstructorPattern:
			out := expandAt(r, col, args, fieldSubpatterns(p, st.Fields))
			spec = append(spec, out)
		default:
			if irrefutable(r.pairs[col].p) {
				spec = append(spec, expandAt(r, col, args, make([]ast.Pattern, len(args))))
			}
		}
	}
	return &tast.Switch{
		Variable: v,
		Cases: []tast.Case{{
			Constructor: tast.Constructor{Kind: tast.ConstructorStruct, Name: st.Name},
			Arguments:   args,
			Body:        c.compileRows(spec, st.Name+" { .. }"),
		}},
		Typ: c.resultType,
	}
}

// guardLadder compiles literal patterns over an open type into a chain
// of equality guards. For a union scrutinee the literal set is finite:
// when the ladder covers every member, the last covered literal supplies
// the final alternative instead of a Failure.
func (c *compiler) guardLadder(rows []row, col int, v tast.Variable, union *typesystem.Union, missing string) tast.Decision {
	heads := literalHeads(rows, col)
	if len(heads) == 0 {
		return c.compileRows(defaultRows(rows, col), missing)
	}

	defaults := defaultRows(rows, col)
	exhaustive := false
	if union != nil && len(defaults) == 0 {
		exhaustive = true
		for _, m := range union.Literals {
			if !containsLiteral(heads, m) {
				exhaustive = false
				break
			}
		}
	}

	// The tail of the ladder: either the irrefutable rows, or the
	// uncovered example for this scrutinee.
	tail := func() tast.Decision {
		if len(defaults) > 0 {
			return c.compileRows(defaults, missing)
		}
		return &tast.Failure{Message: c.uncoveredLiteral(union, heads, missing)}
	}

	var build func(i int) tast.Decision
	build = func(i int) tast.Decision {
		spec := c.specializeLiteral(rows, col, heads[i])
		cons := c.compileRows(spec, heads[i].FullName())
		last := i == len(heads)-1
		if last && exhaustive {
			// Fully covered union: the final comparison is vacuous.
			return cons
		}
		var alt tast.Decision
		if last {
			alt = tail()
		} else {
			alt = build(i + 1)
		}
		return &tast.Guard{
			Condition:   c.literalCondition(v, heads[i]),
			Consequence: cons,
			Alternative: alt,
			Typ:         c.resultType,
		}
	}
	return build(0)
}

func (c *compiler) specializeLiteral(rows []row, col int, lit typesystem.Literal) []row {
	var out []row
	for _, r := range rows {
		if l, ok := literalOf(r.pairs[col].p); ok {
			if l.FullName() == lit.FullName() {
				out = append(out, wildcardAt(r, col))
			}
			continue
		}
		if irrefutable(r.pairs[col].p) {
			out = append(out, r)
		}
	}
	return out
}

// literalCondition builds the typed comparison the Guard tests.
func (c *compiler) literalCondition(v tast.Variable, lit typesystem.Literal) tast.Expression {
	var right tast.Expression
	switch lit.Kind {
	case typesystem.LiteralInt, typesystem.LiteralUInt:
		right = &tast.IntegerLiteral{Value: lit.Int, Typ: v.Typ}
	case typesystem.LiteralFloat:
		right = &tast.FloatLiteral{Value: lit.Float, Typ: v.Typ}
	case typesystem.LiteralChar:
		right = &tast.CharLiteral{Value: lit.Char, Typ: v.Typ}
	case typesystem.LiteralString:
		right = &tast.StringLiteral{Value: lit.Str, Typ: v.Typ}
	case typesystem.LiteralBool:
		right = &tast.BooleanLiteral{Value: lit.Bool, Typ: v.Typ}
	}
	return &tast.Binary{
		Operator: "==",
		Left:     &tast.Identifier{Name: v.Name, Typ: v.Typ},
		Right:    right,
		Typ:      typesystem.Bool,
	}
}

func (c *compiler) uncoveredLiteral(union *typesystem.Union, heads []typesystem.Literal, missing string) string {
	if union == nil {
		return "_"
	}
	var uncovered []string
	for _, m := range union.Literals {
		if !containsLiteral(heads, m) {
			uncovered = append(uncovered, m.FullName())
		}
	}
	if len(uncovered) == 0 {
		return missing
	}
	return strings.Join(uncovered, " | ")
}

// --- row surgery -----------------------------------------------------------

// wildcardAt consumes the column: the pattern is replaced by a wildcard
// so the column never refutes again.
func wildcardAt(r row, col int) row {
	pairs := make([]pair, len(r.pairs))
	copy(pairs, r.pairs)
	pairs[col] = pair{v: pairs[col].v, p: nil}
	return row{pairs: pairs, arm: r.arm, body: r.body}
}

// expandAt replaces column col with one column per constructor argument.
func expandAt(r row, col int, args []tast.Variable, subs []ast.Pattern) row {
	pairs := make([]pair, 0, len(r.pairs)-1+len(args))
	pairs = append(pairs, r.pairs[:col]...)
	for i, a := range args {
		var p ast.Pattern
		if i < len(subs) {
			p = subs[i]
		}
		pairs = append(pairs, pair{v: a, p: p})
	}
	pairs = append(pairs, r.pairs[col+1:]...)
	return row{pairs: pairs, arm: r.arm, body: r.body}
}

// fieldSubpatterns aligns a constructor pattern's field patterns with the
// declared field order. Named field patterns match by identifier;
// positional ones by index. A bare identifier field ({ r }) binds the
// field to its own name and is irrefutable here.
func fieldSubpatterns(p *ast.ConstructorPattern, fields []typesystem.Field) []ast.Pattern {
	subs := make([]ast.Pattern, len(fields))
	for i, fp := range p.Fields {
		if fp.Identifier == "" {
			if i < len(subs) {
				subs[i] = fp.Pattern
			}
			continue
		}
		for j, f := range fields {
			if f.Name == fp.Identifier {
				subs[j] = fp.Pattern
				break
			}
		}
	}
	return subs
}

// --- helpers ---------------------------------------------------------------

// literalHeads collects the distinct literal patterns of a column in
// pattern order (row-major, first occurrence wins).
func literalHeads(rows []row, col int) []typesystem.Literal {
	var heads []typesystem.Literal
	for _, r := range rows {
		if l, ok := literalOf(r.pairs[col].p); ok {
			if !containsLiteral(heads, l) {
				heads = append(heads, l)
			}
		}
	}
	return heads
}

func containsLiteral(heads []typesystem.Literal, l typesystem.Literal) bool {
	for _, h := range heads {
		if h.FullName() == l.FullName() {
			return true
		}
	}
	return false
}

// literalOf extracts the literal type a pattern tests for.
func literalOf(p ast.Pattern) (typesystem.Literal, bool) {
	switch pat := p.(type) {
	case *ast.IntPattern:
		kind := typesystem.LiteralInt
		if pat.Unsigned {
			kind = typesystem.LiteralUInt
		}
		return typesystem.Literal{Kind: kind, Int: pat.Value}, true
	case *ast.FloatPattern:
		return typesystem.FloatLiteral(pat.Value), true
	case *ast.CharPattern:
		return typesystem.CharLiteral(pat.Value), true
	case *ast.StringPattern:
		return typesystem.StringLiteral(pat.Value), true
	case *ast.BoolPattern:
		return typesystem.BoolLiteral(pat.Value), true
	}
	return typesystem.Literal{}, false
}

// constructorName extracts the member or struct name a constructor
// pattern matches: the last path segment of its annotation.
func constructorName(ann ast.Annotation) string {
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

// firstFailure walks the tree for the first Failure leaf, if any.
func firstFailure(d tast.Decision) (string, bool) {
	switch n := d.(type) {
	case *tast.Failure:
		return n.Message, true
	case *tast.Guard:
		if msg, found := firstFailure(n.Consequence); found {
			return msg, true
		}
		return firstFailure(n.Alternative)
	case *tast.Switch:
		for _, cs := range n.Cases {
			if msg, found := firstFailure(cs.Body); found {
				return msg, true
			}
		}
		if n.Fallback != nil {
			return firstFailure(n.Fallback)
		}
	}
	return "", false
}
