package ast

import (
	"math/big"

	"github.com/lunarlang/lunar/internal/token"
)

// Pattern is a surface pattern inside a match arm.
type Pattern interface {
	patternNode()
	GetToken() token.Token
}

// WildcardPattern matches anything without binding: _.
type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode() {}
func (wp *WildcardPattern) GetToken() token.Token {
	if wp == nil {
		return token.Token{}
	}
	return wp.Token
}

// UnitPattern matches the unit value ().
type UnitPattern struct {
	Token token.Token
}

func (up *UnitPattern) patternNode() {}
func (up *UnitPattern) GetToken() token.Token {
	if up == nil {
		return token.Token{}
	}
	return up.Token
}

// BoolPattern matches true or false.
type BoolPattern struct {
	Token token.Token
	Value bool
}

func (bp *BoolPattern) patternNode() {}
func (bp *BoolPattern) GetToken() token.Token {
	if bp == nil {
		return token.Token{}
	}
	return bp.Token
}

// IntPattern matches an integer literal. Unsigned marks a 'u'-suffixed
// literal.
type IntPattern struct {
	Token    token.Token
	Value    *big.Int
	Unsigned bool
}

func (ip *IntPattern) patternNode() {}
func (ip *IntPattern) GetToken() token.Token {
	if ip == nil {
		return token.Token{}
	}
	return ip.Token
}

// FloatPattern matches a float literal.
type FloatPattern struct {
	Token token.Token
	Value float64
}

func (fp *FloatPattern) patternNode() {}
func (fp *FloatPattern) GetToken() token.Token {
	if fp == nil {
		return token.Token{}
	}
	return fp.Token
}

// CharPattern matches a character literal.
type CharPattern struct {
	Token token.Token
	Value rune
}

func (cp *CharPattern) patternNode() {}
func (cp *CharPattern) GetToken() token.Token {
	if cp == nil {
		return token.Token{}
	}
	return cp.Token
}

// StringPattern matches a string literal.
type StringPattern struct {
	Token token.Token
	Value string
}

func (sp *StringPattern) patternNode() {}
func (sp *StringPattern) GetToken() token.Token {
	if sp == nil {
		return token.Token{}
	}
	return sp.Token
}

// VariablePattern matches anything and binds it to a name.
type VariablePattern struct {
	Token token.Token
	Name  string
}

func (vp *VariablePattern) patternNode() {}
func (vp *VariablePattern) GetToken() token.Token {
	if vp == nil {
		return token.Token{}
	}
	return vp.Token
}

// FieldPattern is one field of a constructor pattern: { identifier, pattern }.
// A nil Pattern is shorthand for binding the field to its own name.
type FieldPattern struct {
	Token      token.Token
	Identifier string
	Pattern    Pattern
}

// ConstructorPattern matches a struct or an enum member, destructuring its
// fields. For enum members, TypeAnnotation names the member (Circle or
// Shape::Circle); for structs it names the struct type.
type ConstructorPattern struct {
	Token          token.Token
	TypeAnnotation Annotation
	Fields         []*FieldPattern
}

func (cp *ConstructorPattern) patternNode() {}
func (cp *ConstructorPattern) GetToken() token.Token {
	if cp == nil {
		return token.Token{}
	}
	return cp.Token
}
