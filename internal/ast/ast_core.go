package ast

import (
	"github.com/lunarlang/lunar/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// AccessModifier controls visibility of a declaration across modules.
type AccessModifier int

const (
	AccessDefault AccessModifier = iota // private to the declaring scope
	AccessPublic
	AccessModule
	AccessSuper
)

func (a AccessModifier) String() string {
	switch a {
	case AccessPublic:
		return "pub"
	case AccessModule:
		return "pub(mod)"
	case AccessSuper:
		return "pub(super)"
	default:
		return ""
	}
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) statementNode() {}
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// ModuleDeclaration names the module a compilation unit belongs to.
// mod geometry::shapes
type ModuleDeclaration struct {
	Token  token.Token // The 'mod' token
	Access AccessModifier
	Path   []string
}

func (md *ModuleDeclaration) statementNode()       {}
func (md *ModuleDeclaration) TokenLiteral() string { return md.Token.Lexeme }
func (md *ModuleDeclaration) GetToken() token.Token {
	if md == nil {
		return token.Token{}
	}
	return md.Token
}

// Use brings a module path into scope.
// use geometry::shapes as shapes
type Use struct {
	Token token.Token // The 'use' token
	Path  []string
	Alias string // Optional alias; empty if not given
}

func (u *Use) statementNode()       {}
func (u *Use) TokenLiteral() string { return u.Token.Lexeme }
func (u *Use) GetToken() token.Token {
	if u == nil {
		return token.Token{}
	}
	return u.Token
}

// TypeIdentifier is the declaration-site identifier of a nominal type,
// together with its generic parameters.
// Point, Pair<T, U>
type TypeIdentifier struct {
	Token  token.Token
	Name   string
	Params []*GenericParam
}

func (ti *TypeIdentifier) GetToken() token.Token {
	if ti == nil {
		return token.Token{}
	}
	return ti.Token
}

// GenericParam is a single generic parameter in a declaration.
type GenericParam struct {
	Token token.Token
	Name  string
}

// GenericConstraint is one where-clause entry: a generic parameter bounded
// by one or more protocols.
// where T: Eq + Show
type GenericConstraint struct {
	Token     token.Token
	Param     string
	Protocols []Annotation
}

// StructField is a single field of a struct declaration, or a shared field
// of an enum declaration.
type StructField struct {
	Token          token.Token
	Access         AccessModifier
	Mutable        bool
	Name           string
	TypeAnnotation Annotation
}

// StructDeclaration declares a named product type.
// struct Point { x: i32, y: i32 }
type StructDeclaration struct {
	Token          token.Token // The 'struct' token
	Access         AccessModifier
	TypeIdentifier *TypeIdentifier
	Where          []*GenericConstraint
	Fields         []*StructField
}

func (sd *StructDeclaration) statementNode()       {}
func (sd *StructDeclaration) TokenLiteral() string { return sd.Token.Lexeme }
func (sd *StructDeclaration) GetToken() token.Token {
	if sd == nil {
		return token.Token{}
	}
	return sd.Token
}

// EnumMemberField is one field of an enum member. Positional fields have
// an empty Name.
type EnumMemberField struct {
	Token          token.Token
	Name           string
	TypeAnnotation Annotation
}

// EnumMember is a single variant of an enum: unit, positional, or named.
type EnumMember struct {
	Token  token.Token
	Name   string
	Fields []*EnumMemberField
}

// EnumDeclaration declares a tagged sum type. Shared fields are carried by
// every member.
// enum Shape { Circle { r: f64 }, Square { s: f64 } }
type EnumDeclaration struct {
	Token          token.Token // The 'enum' token
	Access         AccessModifier
	TypeIdentifier *TypeIdentifier
	SharedFields   []*StructField
	Members        []*EnumMember
}

func (ed *EnumDeclaration) statementNode()       {}
func (ed *EnumDeclaration) TokenLiteral() string { return ed.Token.Lexeme }
func (ed *EnumDeclaration) GetToken() token.Token {
	if ed == nil {
		return token.Token{}
	}
	return ed.Token
}

// UnionDeclaration declares an ad-hoc sum of literal types.
// union Answer = 0 | 1 | "maybe"
type UnionDeclaration struct {
	Token          token.Token // The 'union' token
	Access         AccessModifier
	TypeIdentifier *TypeIdentifier
	Literals       []Expression // literal expressions only
}

func (ud *UnionDeclaration) statementNode()       {}
func (ud *UnionDeclaration) TokenLiteral() string { return ud.Token.Lexeme }
func (ud *UnionDeclaration) GetToken() token.Token {
	if ud == nil {
		return token.Token{}
	}
	return ud.Token
}

// TypeAliasDeclaration declares a transparent rename of one or more types.
// type Meters = f64
type TypeAliasDeclaration struct {
	Token          token.Token // The 'type' token
	Access         AccessModifier
	TypeIdentifier *TypeIdentifier
	Types          []Annotation
}

func (ta *TypeAliasDeclaration) statementNode()       {}
func (ta *TypeAliasDeclaration) TokenLiteral() string { return ta.Token.Lexeme }
func (ta *TypeAliasDeclaration) GetToken() token.Token {
	if ta == nil {
		return token.Token{}
	}
	return ta.Token
}

// AssociatedType is an associated type declared inside a protocol, with an
// optional default.
type AssociatedType struct {
	Token   token.Token
	Name    string
	Default Annotation // nil when no default is given
}

// ProtocolDeclaration declares a protocol: associated types plus function
// signatures. A function with a non-nil body is a default implementation;
// conforming types only need to implement the bodyless ones.
// protocol Eq { fun eq(other: Self): bool }
type ProtocolDeclaration struct {
	Token           token.Token // The 'protocol' token
	Access          AccessModifier
	TypeIdentifier  *TypeIdentifier
	AssociatedTypes []*AssociatedType
	Functions       []*FunctionDeclaration
}

func (pd *ProtocolDeclaration) statementNode()       {}
func (pd *ProtocolDeclaration) TokenLiteral() string { return pd.Token.Lexeme }
func (pd *ProtocolDeclaration) GetToken() token.Token {
	if pd == nil {
		return token.Token{}
	}
	return pd.Token
}

// Parameter is a single function parameter.
type Parameter struct {
	Token          token.Token
	Name           string
	TypeAnnotation Annotation
}

// FunctionDeclaration declares a top-level or protocol function.
// fun id<T>(x: T): T => x
type FunctionDeclaration struct {
	Token      token.Token // The 'fun' token
	Access     AccessModifier
	Name       string
	TypeParams []*GenericParam
	Params     []*Parameter
	ReturnType Annotation // nil means unit
	Where      []*GenericConstraint
	Body       Expression // nil for protocol requirements
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// Semi is an expression statement terminated by a semicolon; its value is
// discarded.
type Semi struct {
	Token      token.Token
	Expression Expression
}

func (s *Semi) statementNode()       {}
func (s *Semi) TokenLiteral() string { return s.Token.Lexeme }
func (s *Semi) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// ExpressionStatement is an expression in statement position whose value
// is kept; as the last statement of a block it becomes the block's value.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
