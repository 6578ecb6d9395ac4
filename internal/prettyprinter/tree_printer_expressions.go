package prettyprinter

import (
	"strconv"

	"github.com/lunarlang/lunar/internal/tast"
)

func (p *TreePrinter) writeExpr(last bool, label string, e tast.Expression) {
	p.open(last, label, p.exprKind(e))
	p.exprChildren(e)
	p.close()
}

func (p *TreePrinter) exprKind(e tast.Expression) string {
	switch e.(type) {
	case nil, *tast.Invalid:
		return p.kind("invalid")
	case *tast.VariableDeclaration:
		return p.kind("variable declaration")
	case *tast.If:
		return p.kind("if expression")
	case *tast.Match:
		return p.kind("match expression")
	case *tast.Assignment:
		return p.kind("assignment")
	case *tast.Identifier:
		return p.kind("identifier")
	case *tast.TypeReference:
		return p.kind("type reference")
	case *tast.MemberAccess:
		return p.kind("member access")
	case *tast.UnitLiteral:
		return p.kind("unit literal")
	case *tast.IntegerLiteral:
		return p.kind("integer literal")
	case *tast.FloatLiteral:
		return p.kind("float literal")
	case *tast.StringLiteral:
		return p.kind("string literal")
	case *tast.CharLiteral:
		return p.kind("char literal")
	case *tast.BooleanLiteral:
		return p.kind("bool literal")
	case *tast.ArrayLiteral:
		return p.kind("array literal")
	case *tast.StructLiteral:
		return p.kind("struct literal")
	case *tast.EnumLiteral:
		return p.kind("enum literal")
	case *tast.Closure:
		return p.kind("closure")
	case *tast.Call:
		return p.kind("call")
	case *tast.Unary:
		return p.kind("unary expression")
	case *tast.Binary:
		return p.kind("binary expression")
	case *tast.Block:
		return p.kind("block")
	case *tast.Print:
		return p.kind("print")
	case *tast.Drop:
		return p.kind("drop")
	case *tast.Loop:
		return p.kind("loop")
	case *tast.While:
		return p.kind("while")
	case *tast.For:
		return p.kind("for")
	case *tast.Break:
		return p.kind("break")
	case *tast.Continue:
		return p.kind("continue")
	case *tast.Return:
		return p.kind("return")
	}
	return p.kind("expression")
}

func (p *TreePrinter) exprChildren(e tast.Expression) {
	switch n := e.(type) {
	case nil, *tast.Invalid:
		p.scalar(true, "type", "?")

	case *tast.VariableDeclaration:
		p.scalar(false, "mutable", strconv.FormatBool(n.Mutable))
		p.scalar(false, "identifier", n.Name)
		p.writeExpr(false, "initializer", n.Initializer)
		p.scalar(true, "type", typeName(n.Declared))

	case *tast.If:
		p.writeExpr(false, "condition", n.Condition)
		p.writeExpr(false, "then", n.Then)
		if n.Else != nil {
			p.writeExpr(false, "else", n.Else)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Match:
		p.writeExpr(false, "scrutinee", n.Scrutinee)
		for i, arm := range n.Arms {
			p.writeExpr(false, "arm "+strconv.Itoa(i), arm.Body)
		}
		if n.Tree != nil {
			p.writeDecision(false, "decision_tree", n.Tree)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Assignment:
		p.writeExpr(false, "target", n.Target)
		p.writeExpr(false, "value", n.Value)
		p.scalar(true, "type", typeName(n.Type()))

	case *tast.Identifier:
		p.scalar(false, "identifier", n.Name)
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.TypeReference:
		p.scalar(true, "type", typeName(n.Referenced))

	case *tast.MemberAccess:
		p.writeExpr(false, "object", n.Object)
		p.scalar(false, "member", n.Member)
		if n.Propagation {
			p.scalar(false, "propagation", "true")
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.UnitLiteral:
		p.scalar(true, "type", "()")

	case *tast.IntegerLiteral:
		p.scalar(false, "value", n.Value.String())
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.FloatLiteral:
		p.scalar(false, "value", strconv.FormatFloat(n.Value, 'g', -1, 64))
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.StringLiteral:
		p.scalar(false, "value", strconv.Quote(n.Value))
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.CharLiteral:
		p.scalar(false, "value", "'"+string(n.Value)+"'")
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.BooleanLiteral:
		p.scalar(false, "value", strconv.FormatBool(n.Value))
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.ArrayLiteral:
		for i, el := range n.Elements {
			p.writeExpr(false, "element "+strconv.Itoa(i), el)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.StructLiteral:
		for _, f := range n.Fields {
			p.writeExpr(false, "field "+f.Name, f.Value)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.EnumLiteral:
		p.scalar(false, "member", n.Member)
		for _, f := range n.Fields {
			p.writeExpr(false, "field "+f.Name, f.Value)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Closure:
		for _, param := range n.Params {
			p.scalar(false, "param", param.Name+": "+typeName(param.Typ))
		}
		p.writeExpr(false, "body", n.Body)
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Call:
		p.writeExpr(false, "callee", n.Callee)
		for i, a := range n.Arguments {
			p.writeExpr(false, "argument "+strconv.Itoa(i), a)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Unary:
		p.scalar(false, "operator", n.Operator)
		p.writeExpr(false, "operand", n.Operand)
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Binary:
		p.scalar(false, "operator", n.Operator)
		p.writeExpr(false, "left", n.Left)
		p.writeExpr(false, "right", n.Right)
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Block:
		for _, stmt := range n.Statements {
			p.writeStmt(false, "", stmt)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Print:
		p.writeExpr(false, "expression", n.Expression)
		p.scalar(true, "type", "()")

	case *tast.Drop:
		p.writeExpr(false, "expression", n.Expression)
		p.scalar(true, "type", "()")

	case *tast.Loop:
		p.writeExpr(false, "body", n.Body)
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.While:
		p.writeExpr(false, "condition", n.Condition)
		p.writeExpr(false, "body", n.Body)
		if n.ElseBody != nil {
			p.writeExpr(false, "else", n.ElseBody)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.For:
		p.scalar(false, "binding", n.Binding+": "+typeName(n.BindingType))
		p.writeExpr(false, "iterable", n.Iterable)
		p.writeExpr(false, "body", n.Body)
		if n.ElseBody != nil {
			p.writeExpr(false, "else", n.ElseBody)
		}
		p.scalar(true, "type", typeName(n.Typ))

	case *tast.Break:
		if n.Value != nil {
			p.writeExpr(false, "value", n.Value)
		}
		p.scalar(true, "type", "void")

	case *tast.Continue:
		p.scalar(true, "type", "void")

	case *tast.Return:
		if n.Value != nil {
			p.writeExpr(false, "value", n.Value)
		}
		p.scalar(true, "type", "void")
	}
}

// --- decision trees --------------------------------------------------------

func (p *TreePrinter) writeDecision(last bool, label string, d tast.Decision) {
	switch n := d.(type) {
	case *tast.Success:
		p.open(last, label, p.kind("success"))
		p.writeExpr(false, "expression", n.Expression)
		p.scalar(true, "type", typeName(n.Typ))
		p.close()

	case *tast.Failure:
		p.open(last, label, p.kind("failure"))
		p.scalar(true, "message", n.Message)
		p.close()

	case *tast.Guard:
		p.open(last, label, p.kind("guard"))
		p.writeExpr(false, "condition", n.Condition)
		p.writeDecision(false, "consequence", n.Consequence)
		p.writeDecision(false, "alternative", n.Alternative)
		p.scalar(true, "type", typeName(n.Typ))
		p.close()

	case *tast.Switch:
		p.open(last, label, p.kind("switch"))
		p.scalar(false, "variable", n.Variable.Name+": "+typeName(n.Variable.Typ))
		for _, cs := range n.Cases {
			p.writeCase(false, cs)
		}
		if n.Fallback != nil {
			p.writeDecision(false, "fallback", n.Fallback)
		}
		p.scalar(true, "type", typeName(n.Typ))
		p.close()
	}
}

func (p *TreePrinter) writeCase(last bool, cs tast.Case) {
	name := cs.Constructor.Kind.String()
	if cs.Constructor.Name != "" {
		name = cs.Constructor.Name
	}
	p.open(last, "case", name)
	for _, a := range cs.Arguments {
		p.scalar(false, "argument", a.Name+": "+typeName(a.Typ))
	}
	p.writeDecision(true, "body", cs.Body)
	p.close()
}
