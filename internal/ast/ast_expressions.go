package ast

import (
	"math/big"

	"github.com/lunarlang/lunar/internal/token"
)

// VariableDeclaration binds a name to a value.
// let mut x: i32 = 1
type VariableDeclaration struct {
	Token          token.Token // The 'let' token
	Mutable        bool
	Name           string
	TypeAnnotation Annotation // Optional
	Initializer    Expression
}

func (vd *VariableDeclaration) expressionNode()      {}
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Lexeme }
func (vd *VariableDeclaration) GetToken() token.Token {
	if vd == nil {
		return token.Token{}
	}
	return vd.Token
}

// If is a conditional expression. Without an else branch its type is unit.
type If struct {
	Token     token.Token // The 'if' token
	Condition Expression
	Then      Expression
	Else      Expression // Optional
}

func (i *If) expressionNode()      {}
func (i *If) TokenLiteral() string { return i.Token.Lexeme }
func (i *If) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// MatchArm is a single pattern => body arm.
type MatchArm struct {
	Token   token.Token
	Pattern Pattern
	Body    Expression
}

// Match is an exhaustive pattern match over a scrutinee.
type Match struct {
	Token     token.Token // The 'match' token
	Scrutinee Expression
	Arms      []*MatchArm
}

func (m *Match) expressionNode()      {}
func (m *Match) TokenLiteral() string { return m.Token.Lexeme }
func (m *Match) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// Assignment stores a value into a mutable binding or field.
// x = 2, p.x = 2
type Assignment struct {
	Token  token.Token // The '=' token
	Target Expression  // Identifier or MemberAccess
	Value  Expression
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// Identifier references a variable or a zero-argument enum constructor.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// MemberAccess selects a member of an object: a struct field, an enum
// constructor, or a module member.
type MemberAccess struct {
	Token  token.Token // The '.' or '::' token
	Object Expression
	Member string
}

func (ma *MemberAccess) expressionNode()      {}
func (ma *MemberAccess) TokenLiteral() string { return ma.Token.Lexeme }
func (ma *MemberAccess) GetToken() token.Token {
	if ma == nil {
		return token.Token{}
	}
	return ma.Token
}

// ParamPropagation is the propagation form of member access (obj:member).
// It elaborates identically to MemberAccess; the surface distinction is
// kept for downstream consumers.
type ParamPropagation struct {
	Token  token.Token
	Object Expression
	Member string
}

func (pp *ParamPropagation) expressionNode()      {}
func (pp *ParamPropagation) TokenLiteral() string { return pp.Token.Lexeme }
func (pp *ParamPropagation) GetToken() token.Token {
	if pp == nil {
		return token.Token{}
	}
	return pp.Token
}

// UnitLiteral is the empty-tuple value ().
type UnitLiteral struct {
	Token token.Token
}

func (ul *UnitLiteral) expressionNode()      {}
func (ul *UnitLiteral) TokenLiteral() string { return ul.Token.Lexeme }
func (ul *UnitLiteral) GetToken() token.Token {
	if ul == nil {
		return token.Token{}
	}
	return ul.Token
}

// IntegerLiteral is an integer literal. Unsigned marks a 'u'-suffixed
// literal. Value is arbitrary precision; width is decided by elaboration.
type IntegerLiteral struct {
	Token    token.Token
	Value    *big.Int
	Unsigned bool
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// StringLiteral is a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// CharLiteral is a character literal.
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token {
	if cl == nil {
		return token.Token{}
	}
	return cl.Token
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}

// ArrayLiteral is a homogeneous sequence literal, e.g. [1, 2, 3].
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token {
	if al == nil {
		return token.Token{}
	}
	return al.Token
}

// FieldInitializer is one field: value entry of a struct or enum literal.
type FieldInitializer struct {
	Token token.Token
	Name  string
	Value Expression
}

// StructLiteral instantiates a struct, e.g. Point { x: 1, y: 2 }.
type StructLiteral struct {
	Token          token.Token
	TypeAnnotation Annotation
	Fields         []*FieldInitializer
}

func (sl *StructLiteral) expressionNode()      {}
func (sl *StructLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StructLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// EnumLiteral instantiates an enum member with named fields, e.g.
// Shape::Circle { r: 1.0 }.
type EnumLiteral struct {
	Token          token.Token
	TypeAnnotation Annotation
	Member         string
	Fields         []*FieldInitializer
}

func (el *EnumLiteral) expressionNode()      {}
func (el *EnumLiteral) TokenLiteral() string { return el.Token.Lexeme }
func (el *EnumLiteral) GetToken() token.Token {
	if el == nil {
		return token.Token{}
	}
	return el.Token
}

// ClosureParameter is a single closure parameter; the annotation may be
// omitted when the expected function type supplies it.
type ClosureParameter struct {
	Token          token.Token
	Name           string
	TypeAnnotation Annotation // Optional
}

// Closure is an anonymous function, e.g. |x: i32| => x + 1.
type Closure struct {
	Token      token.Token // The '|' token
	Params     []*ClosureParameter
	ReturnType Annotation // Optional
	Body       Expression
}

func (c *Closure) expressionNode()      {}
func (c *Closure) TokenLiteral() string { return c.Token.Lexeme }
func (c *Closure) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Call applies a callee to arguments. Multi-argument calls apply the
// curried function type one argument at a time.
type Call struct {
	Token     token.Token // The '(' token
	Callee    Expression
	Arguments []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Lexeme }
func (c *Call) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Unary applies a prefix operator: +, -, !, ~.
type Unary struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Lexeme }
func (u *Unary) GetToken() token.Token {
	if u == nil {
		return token.Token{}
	}
	return u.Token
}

// Binary applies an infix operator. Ranges are the operators ".." and
// "..=".
type Binary struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Lexeme }
func (b *Binary) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// Block is a brace-delimited statement sequence. Its value is the last
// expression statement, or unit when semicolon-terminated.
type Block struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (b *Block) expressionNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// Print writes a value to standard output.
type Print struct {
	Token      token.Token
	Expression Expression
}

func (p *Print) expressionNode()      {}
func (p *Print) TokenLiteral() string { return p.Token.Lexeme }
func (p *Print) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// Drop ends a binding's lifetime early.
type Drop struct {
	Token      token.Token
	Expression Expression
}

func (d *Drop) expressionNode()      {}
func (d *Drop) TokenLiteral() string { return d.Token.Lexeme }
func (d *Drop) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// Loop is an infinite loop; its type is the join of all break values.
type Loop struct {
	Token token.Token
	Body  *Block
}

func (l *Loop) expressionNode()      {}
func (l *Loop) TokenLiteral() string { return l.Token.Lexeme }
func (l *Loop) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// While loops while the condition holds; the optional else body runs when
// the condition is false on entry and supplies the result type.
type While struct {
	Token     token.Token
	Condition Expression
	Body      *Block
	ElseBody  *Block // Optional
}

func (w *While) expressionNode()      {}
func (w *While) TokenLiteral() string { return w.Token.Lexeme }
func (w *While) GetToken() token.Token {
	if w == nil {
		return token.Token{}
	}
	return w.Token
}

// For iterates a binding over an iterable (array or range).
type For struct {
	Token    token.Token
	Binding  string
	Iterable Expression
	Body     *Block
	ElseBody *Block // Optional
}

func (f *For) expressionNode()      {}
func (f *For) TokenLiteral() string { return f.Token.Lexeme }
func (f *For) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// Break exits the innermost loop, optionally with a value.
type Break struct {
	Token token.Token
	Value Expression // Optional
}

func (b *Break) expressionNode()      {}
func (b *Break) TokenLiteral() string { return b.Token.Lexeme }
func (b *Break) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// Continue skips to the next iteration of the innermost loop.
type Continue struct {
	Token token.Token
}

func (c *Continue) expressionNode()      {}
func (c *Continue) TokenLiteral() string { return c.Token.Lexeme }
func (c *Continue) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	Token token.Token
	Value Expression // Optional
}

func (r *Return) expressionNode()      {}
func (r *Return) TokenLiteral() string { return r.Token.Lexeme }
func (r *Return) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}
