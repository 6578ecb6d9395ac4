package analyzer

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
)

// DiscoveredKind classifies a discovered declaration.
type DiscoveredKind int

const (
	DiscoveredStruct DiscoveredKind = iota
	DiscoveredEnum
	DiscoveredUnion
	DiscoveredAlias
	DiscoveredProtocol
	DiscoveredFunction
)

func (k DiscoveredKind) String() string {
	switch k {
	case DiscoveredStruct:
		return "struct"
	case DiscoveredEnum:
		return "enum"
	case DiscoveredUnion:
		return "union"
	case DiscoveredAlias:
		return "type alias"
	case DiscoveredProtocol:
		return "protocol"
	case DiscoveredFunction:
		return "function"
	}
	return "declaration"
}

// DiscoveredType is one record of the discovery pass: the declared
// identifier, its generic arity, and the declaration node holding the
// raw, unresolved annotations. Discovery never resolves annotations or
// evaluates expressions; types may reference each other in any order.
type DiscoveredType struct {
	Kind   DiscoveredKind
	Name   string
	Params int
	Decl   ast.Statement
}

// Discover scans the program top to bottom and records every
// user-declared struct, enum, union, type alias, protocol, and top-level
// function. Duplicate names at the same scope raise
// DuplicateDeclaration; every other error is deferred to elaboration.
// Discovery is idempotent: scanning the same program again records the
// same set of names.
func Discover(program *ast.Program, diags *diagnostics.List) map[string]*DiscoveredType {
	discovered := make(map[string]*DiscoveredType)

	record := func(kind DiscoveredKind, name string, params int, decl ast.Statement) {
		if prev, exists := discovered[name]; exists {
			diags.Add(diagnostics.NewError(
				diagnostics.ErrDuplicateDeclaration,
				decl.GetToken(),
				prev.Kind.String()+" "+name+" is already declared",
			))
			return
		}
		discovered[name] = &DiscoveredType{Kind: kind, Name: name, Params: params, Decl: decl}
	}

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.StructDeclaration:
			record(DiscoveredStruct, s.TypeIdentifier.Name, len(s.TypeIdentifier.Params), s)
		case *ast.EnumDeclaration:
			record(DiscoveredEnum, s.TypeIdentifier.Name, len(s.TypeIdentifier.Params), s)
		case *ast.UnionDeclaration:
			record(DiscoveredUnion, s.TypeIdentifier.Name, len(s.TypeIdentifier.Params), s)
		case *ast.TypeAliasDeclaration:
			record(DiscoveredAlias, s.TypeIdentifier.Name, len(s.TypeIdentifier.Params), s)
		case *ast.ProtocolDeclaration:
			record(DiscoveredProtocol, s.TypeIdentifier.Name, len(s.TypeIdentifier.Params), s)
		case *ast.FunctionDeclaration:
			record(DiscoveredFunction, s.Name, len(s.TypeParams), s)
		}
	}
	return discovered
}
