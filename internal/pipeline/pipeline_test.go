package pipeline

import (
	"math/big"
	"testing"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/config"
	"github.com/lunarlang/lunar/internal/symbols"
	"github.com/lunarlang/lunar/internal/token"
	"github.com/lunarlang/lunar/internal/typesystem"
)

func tk(lexeme string, line int) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: lexeme, Line: line, Column: 1}
}

// pointProgram is: struct Point { x: i32 }; Point { x: 1 }.x
func pointProgram() *ast.Program {
	return &ast.Program{Statements: []ast.Statement{
		&ast.StructDeclaration{
			Token:          tk("struct", 1),
			TypeIdentifier: &ast.TypeIdentifier{Token: tk("Point", 1), Name: "Point"},
			Fields: []*ast.StructField{{
				Token:          tk("x", 1),
				Name:           "x",
				TypeAnnotation: &ast.NamedAnnotation{Token: tk("i32", 1), Name: "i32"},
			}},
		},
		&ast.ExpressionStatement{
			Token: tk(".", 2),
			Expression: &ast.MemberAccess{
				Token: tk(".", 2),
				Object: &ast.StructLiteral{
					Token:          tk("{", 2),
					TypeAnnotation: &ast.NamedAnnotation{Token: tk("Point", 2), Name: "Point"},
					Fields: []*ast.FieldInitializer{{
						Token: tk("x", 2),
						Name:  "x",
						Value: &ast.IntegerLiteral{Token: tk("1", 2), Value: big.NewInt(1)},
					}},
				},
				Member: "x",
			},
		},
	}}
}

func TestCheckValidProgram(t *testing.T) {
	result := Check(pointProgram(), config.Default())
	if result.HasErrors() {
		for _, d := range result.Diagnostics {
			t.Logf("diag: %s", d.Error())
		}
		t.Fatalf("valid program reported errors")
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("valid program should have an empty diagnostic list")
	}
	if result.Program == nil || len(result.Program.Statements) != 2 {
		t.Fatalf("typed program shape unexpected: %+v", result.Program)
	}
}

func TestCheckFailingProgramStillProducesTypedTree(t *testing.T) {
	bad := &ast.Program{Statements: []ast.Statement{
		&ast.ExpressionStatement{
			Token:      tk("x", 1),
			Expression: &ast.Identifier{Token: tk("x", 1), Value: "x"},
		},
	}}
	result := Check(bad, config.Default())
	if !result.HasErrors() {
		t.Fatalf("unknown variable should be an error")
	}
	if result.Program == nil || len(result.Program.Statements) != 1 {
		t.Fatalf("failing program should still produce a typed statement per input statement")
	}
}

func TestCheckWithSharedEnvironment(t *testing.T) {
	env := symbols.NewRoot()
	if err := env.AddDeclaration("Prelude", typesystem.Struct{Name: "Prelude"}); err != nil {
		t.Fatalf("seeding environment: %v", err)
	}
	p := &ast.Program{Statements: []ast.Statement{
		&ast.ExpressionStatement{
			Token: tk("{", 1),
			Expression: &ast.StructLiteral{
				Token:          tk("{", 1),
				TypeAnnotation: &ast.NamedAnnotation{Token: tk("Prelude", 1), Name: "Prelude"},
			},
		},
	}}
	result := CheckWithEnvironment(p, config.Default(), env)
	if result.HasErrors() {
		t.Fatalf("pre-seeded declaration should resolve: %v", result.Diagnostics[0])
	}
}

func TestCheckIsPure(t *testing.T) {
	// Checking the same program against fresh roots twice yields the
	// same diagnostics.
	first := Check(pointProgram(), config.Default())
	second := Check(pointProgram(), config.Default())
	if len(first.Diagnostics) != len(second.Diagnostics) {
		t.Errorf("repeated checks diverged: %d vs %d diagnostics",
			len(first.Diagnostics), len(second.Diagnostics))
	}
}
