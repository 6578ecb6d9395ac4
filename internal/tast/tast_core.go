// Package tast defines the typed intermediate representation: the tree
// the elaborator produces and the renderer and backend consume. It
// parallels the surface AST; every node carries its resolved type.
package tast

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// Node is the base interface for all typed IR nodes.
type Node interface {
	Type() typesystem.Type
}

// Statement is a typed statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a typed expression.
type Expression interface {
	Node
	expressionNode()
}

// Constraint is a resolved where-clause entry.
type Constraint struct {
	Param     string
	Protocols []string
}

// Program is the root of the typed IR.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) statementNode()        {}
func (p *Program) Type() typesystem.Type { return typesystem.Void }

// ModuleDeclaration is the typed module header.
type ModuleDeclaration struct {
	Access ast.AccessModifier
	Path   []string
}

func (md *ModuleDeclaration) statementNode()        {}
func (md *ModuleDeclaration) Type() typesystem.Type { return typesystem.Void }

// Use is the typed use declaration.
type Use struct {
	Path  []string
	Alias string
}

func (u *Use) statementNode()        {}
func (u *Use) Type() typesystem.Type { return typesystem.Void }

// StructDeclaration carries the fully resolved struct type.
type StructDeclaration struct {
	Access ast.AccessModifier
	Struct typesystem.Struct
	Where  []Constraint
}

func (sd *StructDeclaration) statementNode()        {}
func (sd *StructDeclaration) Type() typesystem.Type { return sd.Struct }

// EnumDeclaration carries the fully resolved enum type.
type EnumDeclaration struct {
	Access ast.AccessModifier
	Enum   typesystem.Enum
}

func (ed *EnumDeclaration) statementNode()        {}
func (ed *EnumDeclaration) Type() typesystem.Type { return ed.Enum }

// UnionDeclaration carries the fully resolved union type.
type UnionDeclaration struct {
	Access ast.AccessModifier
	Union  typesystem.Union
}

func (ud *UnionDeclaration) statementNode()        {}
func (ud *UnionDeclaration) Type() typesystem.Type { return ud.Union }

// TypeAliasDeclaration carries the resolved alias.
type TypeAliasDeclaration struct {
	Access ast.AccessModifier
	Alias  typesystem.Alias
}

func (ta *TypeAliasDeclaration) statementNode()        {}
func (ta *TypeAliasDeclaration) Type() typesystem.Type { return ta.Alias }

// ProtocolDeclaration carries the resolved protocol plus the elaborated
// default implementations.
type ProtocolDeclaration struct {
	Access   ast.AccessModifier
	Protocol typesystem.Protocol
	Defaults []*FunctionDeclaration
}

func (pd *ProtocolDeclaration) statementNode()        {}
func (pd *ProtocolDeclaration) Type() typesystem.Type { return pd.Protocol }

// Parameter is a typed function or closure parameter.
type Parameter struct {
	Name string
	Typ  typesystem.Type
}

// FunctionDeclaration is a typed function. Declared is the curried
// function type registered in the environment.
type FunctionDeclaration struct {
	Access     ast.AccessModifier
	Name       string
	TypeParams []string
	Params     []Parameter
	ReturnType typesystem.Type
	Where      []Constraint
	Body       Expression
	Declared   typesystem.Type
}

func (fd *FunctionDeclaration) statementNode()        {}
func (fd *FunctionDeclaration) Type() typesystem.Type { return fd.Declared }

// Semi is a semicolon-terminated expression statement; the value is
// discarded.
type Semi struct {
	Expression Expression
}

func (s *Semi) statementNode()        {}
func (s *Semi) Type() typesystem.Type { return typesystem.Void }

// ExpressionStatement keeps its expression's value; as the last statement
// of a block it supplies the block type.
type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) Type() typesystem.Type { return es.Expression.Type() }
