package tast

import (
	"math/big"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// Invalid is the hole left where elaboration failed. Its type is Unknown;
// the error was already reported at the nearest enclosing statement.
type Invalid struct{}

func (i *Invalid) expressionNode()       {}
func (i *Invalid) Type() typesystem.Type { return typesystem.Unknown }

// VariableDeclaration is a typed let binding. The expression itself
// evaluates to unit; Declared is the binding's type.
type VariableDeclaration struct {
	Mutable     bool
	Name        string
	Declared    typesystem.Type
	Initializer Expression
}

func (vd *VariableDeclaration) expressionNode()       {}
func (vd *VariableDeclaration) Type() typesystem.Type { return typesystem.Unit }

// If is a typed conditional; its type is the join of both branches, or
// unit without an else branch.
type If struct {
	Condition Expression
	Then      Expression
	Else      Expression // nil when absent
	Typ       typesystem.Type
}

func (i *If) expressionNode()       {}
func (i *If) Type() typesystem.Type { return i.Typ }

// MatchArm pairs the surface pattern with its elaborated body.
type MatchArm struct {
	Pattern ast.Pattern
	Body    Expression
}

// Match is a typed match expression together with its compiled decision
// tree.
type Match struct {
	Scrutinee Expression
	Arms      []*MatchArm
	Tree      Decision
	Typ       typesystem.Type
}

func (m *Match) expressionNode()       {}
func (m *Match) Type() typesystem.Type { return m.Typ }

// Assignment stores into a mutable binding or field; it evaluates to
// unit.
type Assignment struct {
	Target Expression
	Value  Expression
}

func (a *Assignment) expressionNode()       {}
func (a *Assignment) Type() typesystem.Type { return typesystem.Unit }

// Identifier is a resolved variable reference.
type Identifier struct {
	Name string
	Typ  typesystem.Type
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) Type() typesystem.Type { return i.Typ }

// TypeReference is an expression position naming a type: the enum in
// Shape::Circle, or a module in a nested path.
type TypeReference struct {
	Referenced typesystem.Type
}

func (tr *TypeReference) expressionNode()       {}
func (tr *TypeReference) Type() typesystem.Type { return tr.Referenced }

// MemberAccess is a resolved field, constructor, or module member
// selection. Propagation marks the surface param-propagation form, which
// elaborates identically.
type MemberAccess struct {
	Object      Expression
	Member      string
	Propagation bool
	Typ         typesystem.Type
}

func (ma *MemberAccess) expressionNode()       {}
func (ma *MemberAccess) Type() typesystem.Type { return ma.Typ }

// UnitLiteral is the typed ().
type UnitLiteral struct{}

func (ul *UnitLiteral) expressionNode()       {}
func (ul *UnitLiteral) Type() typesystem.Type { return typesystem.Unit }

// IntegerLiteral is a typed integer literal; Typ is the elaborated width.
type IntegerLiteral struct {
	Value *big.Int
	Typ   typesystem.Type
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) Type() typesystem.Type { return il.Typ }

// FloatLiteral is a typed float literal.
type FloatLiteral struct {
	Value float64
	Typ   typesystem.Type
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) Type() typesystem.Type { return fl.Typ }

// StringLiteral is a typed string literal.
type StringLiteral struct {
	Value string
	Typ   typesystem.Type
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) Type() typesystem.Type { return sl.Typ }

// CharLiteral is a typed character literal.
type CharLiteral struct {
	Value rune
	Typ   typesystem.Type
}

func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) Type() typesystem.Type { return cl.Typ }

// BooleanLiteral is a typed boolean literal.
type BooleanLiteral struct {
	Value bool
	Typ   typesystem.Type
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) Type() typesystem.Type { return bl.Typ }

// ArrayLiteral is a typed array literal; Typ is the array type whose
// element is the join of the elements.
type ArrayLiteral struct {
	Elements []Expression
	Typ      typesystem.Type
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) Type() typesystem.Type { return al.Typ }

// FieldInitializer is one typed field: value entry.
type FieldInitializer struct {
	Name  string
	Value Expression
}

// StructLiteral is a typed struct instantiation.
type StructLiteral struct {
	Fields []*FieldInitializer
	Typ    typesystem.Type
}

func (sl *StructLiteral) expressionNode()       {}
func (sl *StructLiteral) Type() typesystem.Type { return sl.Typ }

// EnumLiteral is a typed enum member instantiation.
type EnumLiteral struct {
	Member string
	Fields []*FieldInitializer
	Typ    typesystem.Type
}

func (el *EnumLiteral) expressionNode()       {}
func (el *EnumLiteral) Type() typesystem.Type { return el.Typ }

// Closure is a typed anonymous function; Typ is its curried function
// type.
type Closure struct {
	Params []Parameter
	Body   Expression
	Typ    typesystem.Type
}

func (c *Closure) expressionNode()       {}
func (c *Closure) Type() typesystem.Type { return c.Typ }

// Call is a typed application; Typ is the (possibly partial) result of
// applying the curried callee type to the arguments.
type Call struct {
	Callee    Expression
	Arguments []Expression
	Typ       typesystem.Type
}

func (c *Call) expressionNode()       {}
func (c *Call) Type() typesystem.Type { return c.Typ }

// Unary is a typed prefix operation.
type Unary struct {
	Operator string
	Operand  Expression
	Typ      typesystem.Type
}

func (u *Unary) expressionNode()       {}
func (u *Unary) Type() typesystem.Type { return u.Typ }

// Binary is a typed infix operation.
type Binary struct {
	Operator string
	Left     Expression
	Right    Expression
	Typ      typesystem.Type
}

func (b *Binary) expressionNode()       {}
func (b *Binary) Type() typesystem.Type { return b.Typ }

// Block is a typed statement sequence; Typ is the last expression's type
// or unit when semicolon-terminated.
type Block struct {
	Statements []Statement
	Typ        typesystem.Type
}

func (b *Block) expressionNode()       {}
func (b *Block) Type() typesystem.Type { return b.Typ }

// Print writes its value to standard output and evaluates to unit.
type Print struct {
	Expression Expression
}

func (p *Print) expressionNode()       {}
func (p *Print) Type() typesystem.Type { return typesystem.Unit }

// Drop ends a binding's lifetime early and evaluates to unit.
type Drop struct {
	Expression Expression
}

func (d *Drop) expressionNode()       {}
func (d *Drop) Type() typesystem.Type { return typesystem.Unit }

// Loop is a typed infinite loop; Typ is the join of its break values.
type Loop struct {
	Body *Block
	Typ  typesystem.Type
}

func (l *Loop) expressionNode()       {}
func (l *Loop) Type() typesystem.Type { return l.Typ }

// While is a typed while loop; Typ is the else body's type when present,
// else unit.
type While struct {
	Condition Expression
	Body      *Block
	ElseBody  *Block // nil when absent
	Typ       typesystem.Type
}

func (w *While) expressionNode()       {}
func (w *While) Type() typesystem.Type { return w.Typ }

// For is a typed for loop over an iterable.
type For struct {
	Binding     string
	BindingType typesystem.Type
	Iterable    Expression
	Body        *Block
	ElseBody    *Block // nil when absent
	Typ         typesystem.Type
}

func (f *For) expressionNode()       {}
func (f *For) Type() typesystem.Type { return f.Typ }

// Break exits the innermost loop with an optional value.
type Break struct {
	Value Expression // nil when absent
}

func (b *Break) expressionNode()       {}
func (b *Break) Type() typesystem.Type { return typesystem.Void }

// Continue skips to the next iteration.
type Continue struct{}

func (c *Continue) expressionNode()       {}
func (c *Continue) Type() typesystem.Type { return typesystem.Void }

// Return exits the enclosing function with an optional value.
type Return struct {
	Value Expression // nil when absent
}

func (r *Return) expressionNode()       {}
func (r *Return) Type() typesystem.Type { return typesystem.Void }
