package analyzer

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// ifExpression joins both branches; without an else branch the result is
// unit.
func (c *checker) ifExpression(e *ast.If, expected typesystem.Type) tast.Expression {
	cond := c.expression(e.Condition, typesystem.Bool)
	if !typesystem.AssignableTo(cond.Type(), typesystem.Bool) {
		c.error(diagnostics.ErrTypeMismatch, e.Condition.GetToken(),
			"if condition must be bool, got "+cond.Type().FullName())
	}

	var then, els tast.Expression
	c.child(func() { then = c.expression(e.Then, expected) })

	if e.Else == nil {
		return &tast.If{Condition: cond, Then: then, Typ: typesystem.Unit}
	}
	c.child(func() { els = c.expression(e.Else, expected) })

	typ, ok := typesystem.Join(then.Type(), els.Type())
	if !ok {
		c.error(diagnostics.ErrTypeMismatch, e.Token,
			"if branches have no common type: "+then.Type().FullName()+" and "+els.Type().FullName())
		typ = typesystem.Unknown
	}
	return &tast.If{Condition: cond, Then: then, Else: els, Typ: typ}
}

// block elaborates a statement sequence in a child frame. The block type
// is the last expression statement's type, or unit when
// semicolon-terminated or empty.
func (c *checker) block(e *ast.Block, expected typesystem.Type) tast.Expression {
	typed := &tast.Block{Typ: typesystem.Unit}
	c.child(func() {
		for i, stmt := range e.Statements {
			last := i == len(e.Statements)-1
			if es, ok := stmt.(*ast.ExpressionStatement); ok && last {
				inner := c.expression(es.Expression, expected)
				typed.Statements = append(typed.Statements, &tast.ExpressionStatement{Expression: inner})
				typed.Typ = inner.Type()
				continue
			}
			typed.Statements = append(typed.Statements, c.statement(stmt))
		}
	})
	return typed
}

// loopBlock elaborates a loop body without threading an expected type.
func (c *checker) loopBlock(b *ast.Block) *tast.Block {
	inner := c.block(b, nil)
	blk, _ := inner.(*tast.Block)
	return blk
}

// loopExpression types a loop as the join of its break values; a loop
// without breaks is unit.
func (c *checker) loopExpression(e *ast.Loop) tast.Expression {
	c.loopDepth++
	c.breakTypes = append(c.breakTypes, nil)
	body := c.loopBlock(e.Body)
	breaks := c.breakTypes[len(c.breakTypes)-1]
	c.breakTypes = c.breakTypes[:len(c.breakTypes)-1]
	c.loopDepth--

	var typ typesystem.Type = typesystem.Unit
	if len(breaks) > 0 {
		typ = breaks[0]
		for _, bt := range breaks[1:] {
			joined, ok := typesystem.Join(typ, bt)
			if !ok {
				c.error(diagnostics.ErrTypeMismatch, e.Token,
					"break values have no common type: "+typ.FullName()+" and "+bt.FullName())
				typ = typesystem.Unknown
				break
			}
			typ = joined
		}
	}
	return &tast.Loop{Body: body, Typ: typ}
}

// whileExpression types a while loop as its else body's type when
// present, else unit.
func (c *checker) whileExpression(e *ast.While) tast.Expression {
	cond := c.expression(e.Condition, typesystem.Bool)
	if !typesystem.AssignableTo(cond.Type(), typesystem.Bool) {
		c.error(diagnostics.ErrTypeMismatch, e.Condition.GetToken(),
			"while condition must be bool, got "+cond.Type().FullName())
	}

	c.loopDepth++
	c.breakTypes = append(c.breakTypes, nil)
	body := c.loopBlock(e.Body)
	c.breakTypes = c.breakTypes[:len(c.breakTypes)-1]
	c.loopDepth--

	typed := &tast.While{Condition: cond, Body: body, Typ: typesystem.Unit}
	if e.ElseBody != nil {
		typed.ElseBody = c.loopBlock(e.ElseBody)
		typed.Typ = typed.ElseBody.Typ
	}
	return typed
}

// forExpression iterates a binding over an array or range.
func (c *checker) forExpression(e *ast.For) tast.Expression {
	iterable := c.expression(e.Iterable, nil)

	var elem typesystem.Type = typesystem.Unknown
	switch t := typesystem.Underlying(c.concrete(iterable.Type())).(type) {
	case typesystem.Array:
		elem = t.Element
	default:
		if !typesystem.IsUnknown(iterable.Type()) {
			c.error(diagnostics.ErrTypeMismatch, e.Iterable.GetToken(),
				iterable.Type().FullName()+" is not iterable")
		}
	}

	typed := &tast.For{Binding: e.Binding, BindingType: elem, Iterable: iterable, Typ: typesystem.Unit}
	c.loopDepth++
	c.breakTypes = append(c.breakTypes, nil)
	c.child(func() {
		c.env.AddVariable(e.Binding, elem, false)
		typed.Body = c.loopBlock(e.Body)
	})
	c.breakTypes = c.breakTypes[:len(c.breakTypes)-1]
	c.loopDepth--

	if e.ElseBody != nil {
		typed.ElseBody = c.loopBlock(e.ElseBody)
		typed.Typ = typed.ElseBody.Typ
	}
	return typed
}

// breakExpression records the break value's type for the enclosing loop.
func (c *checker) breakExpression(e *ast.Break) tast.Expression {
	if c.loopDepth == 0 {
		return c.error(diagnostics.ErrUnsupportedOperation, e.Token, "break outside of a loop")
	}
	typed := &tast.Break{}
	var bt typesystem.Type = typesystem.Unit
	if e.Value != nil {
		typed.Value = c.expression(e.Value, nil)
		bt = typed.Value.Type()
	}
	top := len(c.breakTypes) - 1
	c.breakTypes[top] = append(c.breakTypes[top], bt)
	return typed
}

// returnExpression checks the value against the enclosing function's
// declared return type.
func (c *checker) returnExpression(e *ast.Return) tast.Expression {
	if c.returnType == nil {
		return c.error(diagnostics.ErrUnsupportedOperation, e.Token, "return outside of a function")
	}
	typed := &tast.Return{}
	var rt typesystem.Type = typesystem.Unit
	if e.Value != nil {
		typed.Value = c.expression(e.Value, c.returnType)
		rt = typed.Value.Type()
	}
	if !typesystem.AssignableTo(rt, c.returnType) && !typesystem.IsUnknown(rt) {
		c.error(diagnostics.ErrTypeMismatch, e.Token,
			"return value "+rt.FullName()+" does not match declared "+c.returnType.FullName())
	}
	return typed
}
