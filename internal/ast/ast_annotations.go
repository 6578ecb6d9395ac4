package ast

import (
	"strings"

	"github.com/lunarlang/lunar/internal/token"
)

// Annotation is an unresolved type annotation as written in the source.
// Elaboration resolves annotations against the environment and the
// discovered-type map.
type Annotation interface {
	annotationNode()
	GetToken() token.Token
	String() string
}

// NamedAnnotation is a bare type name: i32, Point, T.
type NamedAnnotation struct {
	Token token.Token
	Name  string
}

func (na *NamedAnnotation) annotationNode() {}
func (na *NamedAnnotation) GetToken() token.Token {
	if na == nil {
		return token.Token{}
	}
	return na.Token
}
func (na *NamedAnnotation) String() string { return na.Name }

// GenericAnnotation is a declaration-site generic name with its
// parameters: Pair<T, U> as declared.
type GenericAnnotation struct {
	Token  token.Token
	Name   string
	Params []*GenericParam
}

func (ga *GenericAnnotation) annotationNode() {}
func (ga *GenericAnnotation) GetToken() token.Token {
	if ga == nil {
		return token.Token{}
	}
	return ga.Token
}
func (ga *GenericAnnotation) String() string {
	if len(ga.Params) == 0 {
		return ga.Name
	}
	names := make([]string, len(ga.Params))
	for i, p := range ga.Params {
		names[i] = p.Name
	}
	return ga.Name + "<" + strings.Join(names, ", ") + ">"
}

// ConcreteAnnotation is a use-site generic application: Pair<i32, string>.
type ConcreteAnnotation struct {
	Token token.Token
	Name  string
	Args  []Annotation
}

func (ca *ConcreteAnnotation) annotationNode() {}
func (ca *ConcreteAnnotation) GetToken() token.Token {
	if ca == nil {
		return token.Token{}
	}
	return ca.Token
}
func (ca *ConcreteAnnotation) String() string {
	if len(ca.Args) == 0 {
		return ca.Name
	}
	args := make([]string, len(ca.Args))
	for i, a := range ca.Args {
		args[i] = a.String()
	}
	return ca.Name + "<" + strings.Join(args, ", ") + ">"
}

// MemberAnnotation is a nested path inside a module or an associated
// type: shapes::Circle, Self::Item.
type MemberAnnotation struct {
	Token  token.Token
	Parent Annotation
	Name   string
}

func (ma *MemberAnnotation) annotationNode() {}
func (ma *MemberAnnotation) GetToken() token.Token {
	if ma == nil {
		return token.Token{}
	}
	return ma.Token
}
func (ma *MemberAnnotation) String() string { return ma.Parent.String() + "::" + ma.Name }

// ArrayAnnotation is the array spelling [T].
type ArrayAnnotation struct {
	Token   token.Token
	Element Annotation
}

func (aa *ArrayAnnotation) annotationNode() {}
func (aa *ArrayAnnotation) GetToken() token.Token {
	if aa == nil {
		return token.Token{}
	}
	return aa.Token
}
func (aa *ArrayAnnotation) String() string { return "[" + aa.Element.String() + "]" }

// FunctionAnnotation is the function spelling fun(T): U.
type FunctionAnnotation struct {
	Token  token.Token
	Param  Annotation
	Return Annotation
}

func (fa *FunctionAnnotation) annotationNode() {}
func (fa *FunctionAnnotation) GetToken() token.Token {
	if fa == nil {
		return token.Token{}
	}
	return fa.Token
}
func (fa *FunctionAnnotation) String() string {
	return "fun(" + fa.Param.String() + "): " + fa.Return.String()
}

// LiteralAnnotation is a literal type as it appears in a union
// declaration: 0, "maybe", true.
type LiteralAnnotation struct {
	Token   token.Token
	Literal Expression
}

func (la *LiteralAnnotation) annotationNode() {}
func (la *LiteralAnnotation) GetToken() token.Token {
	if la == nil {
		return token.Token{}
	}
	return la.Token
}
func (la *LiteralAnnotation) String() string { return la.Literal.TokenLiteral() }
