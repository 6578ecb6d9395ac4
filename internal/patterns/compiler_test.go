package patterns

import (
	"math/big"
	"strings"
	"testing"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/symbols"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/token"
	"github.com/lunarlang/lunar/internal/typesystem"
)

var nextLine int

func tk(lexeme string) token.Token {
	nextLine++
	return token.Token{Type: token.IDENT, Lexeme: lexeme, Line: nextLine, Column: 1}
}

func body(n int64) tast.Expression {
	return &tast.IntegerLiteral{Value: big.NewInt(n), Typ: typesystem.I32}
}

func armOf(p ast.Pattern, n int64) *tast.MatchArm {
	return &tast.MatchArm{Pattern: p, Body: body(n)}
}

func compile(t *testing.T, scrutType typesystem.Type, env *symbols.Environment, arms ...*tast.MatchArm) (tast.Decision, *diagnostics.List) {
	t.Helper()
	if env == nil {
		env = symbols.NewRoot()
	}
	diags := diagnostics.NewList()
	tree := Compile(Input{
		Token:      tk("match"),
		Scrutinee:  tast.Variable{Name: "m0", Typ: scrutType},
		Arms:       arms,
		ResultType: typesystem.I32,
		Env:        env,
	}, diags)
	return tree, diags
}

func findCode(diags *diagnostics.List, code diagnostics.ErrorCode) *diagnostics.Diagnostic {
	for _, d := range diags.Items() {
		if d.Code == code {
			return d
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bool switches
// ---------------------------------------------------------------------------

func TestBoolSwitchCoversBothSides(t *testing.T) {
	tree, diags := compile(t, typesystem.Bool, nil,
		armOf(&ast.BoolPattern{Token: tk("true"), Value: true}, 1),
		armOf(&ast.BoolPattern{Token: tk("false"), Value: false}, 2),
	)
	if diags.Len() != 0 {
		t.Fatalf("covered bool match reported diagnostics")
	}
	sw, ok := tree.(*tast.Switch)
	if !ok {
		t.Fatalf("tree root is %T, want switch", tree)
	}
	if len(sw.Cases) != 2 || sw.Fallback != nil {
		t.Fatalf("bool switch should have exactly the two finite cases, no fallback")
	}
	if sw.Cases[0].Constructor.Kind != tast.ConstructorTrue ||
		sw.Cases[1].Constructor.Kind != tast.ConstructorFalse {
		t.Errorf("case order should be true then false")
	}
}

func TestBoolMatchMissingFalse(t *testing.T) {
	tree, diags := compile(t, typesystem.Bool, nil,
		armOf(&ast.BoolPattern{Token: tk("true"), Value: true}, 1),
	)
	d := findCode(diags, diagnostics.ErrNonExhaustiveMatch)
	if d == nil {
		t.Fatalf("missing false side not reported")
	}
	if !strings.Contains(d.Message, "false") {
		t.Errorf("uncovered example should be false, got: %s", d.Message)
	}
	sw := tree.(*tast.Switch)
	if _, ok := sw.Cases[1].Body.(*tast.Failure); !ok {
		t.Errorf("false case should be a failure leaf, got %T", sw.Cases[1].Body)
	}
}

// ---------------------------------------------------------------------------
// Enum switches
// ---------------------------------------------------------------------------

func shapeEnv() *symbols.Environment {
	env := symbols.NewRoot()
	_ = env.AddDeclaration("Shape", typesystem.Enum{
		Name: "Shape",
		Members: []typesystem.EnumMember{
			{Name: "Circle", Fields: []typesystem.Field{{Name: "r", Type: typesystem.F64}}},
			{Name: "Square", Fields: []typesystem.Field{{Name: "s", Type: typesystem.F64}}},
		},
	})
	return env
}

func ctor(name string, fields ...*ast.FieldPattern) *ast.ConstructorPattern {
	return &ast.ConstructorPattern{
		Token:          tk(name),
		TypeAnnotation: &ast.NamedAnnotation{Token: tk(name), Name: name},
		Fields:         fields,
	}
}

func TestEnumSwitchFollowsDeclarationOrder(t *testing.T) {
	tree, diags := compile(t, typesystem.Named{Name: "Shape"}, shapeEnv(),
		armOf(ctor("Square"), 2),
		armOf(ctor("Circle"), 1),
	)
	if findCode(diags, diagnostics.ErrNonExhaustiveMatch) != nil {
		t.Fatalf("covered enum match reported non-exhaustive")
	}
	sw := tree.(*tast.Switch)
	if sw.Cases[0].Constructor.Name != "Circle" || sw.Cases[1].Constructor.Name != "Square" {
		t.Errorf("cases should follow enum declaration order, not arm order")
	}
	if len(sw.Cases[0].Arguments) != 1 || sw.Cases[0].Arguments[0].Typ.FullName() != "f64" {
		t.Errorf("Circle case should bind one f64 argument")
	}
}

func TestEnumMissingMemberExample(t *testing.T) {
	_, diags := compile(t, typesystem.Named{Name: "Shape"}, shapeEnv(),
		armOf(ctor("Circle"), 1),
	)
	d := findCode(diags, diagnostics.ErrNonExhaustiveMatch)
	if d == nil {
		t.Fatalf("uncovered member not reported")
	}
	if !strings.Contains(d.Message, "Square { .. }") {
		t.Errorf("uncovered example = %q, want it to contain Square { .. }", d.Message)
	}
}

func TestWildcardCoversRemainingMembers(t *testing.T) {
	_, diags := compile(t, typesystem.Named{Name: "Shape"}, shapeEnv(),
		armOf(ctor("Circle"), 1),
		armOf(&ast.WildcardPattern{Token: tk("_")}, 2),
	)
	if findCode(diags, diagnostics.ErrNonExhaustiveMatch) != nil {
		t.Errorf("wildcard should cover the remaining members")
	}
}

// ---------------------------------------------------------------------------
// Guard ladders
// ---------------------------------------------------------------------------

func TestIntegerGuardLadder(t *testing.T) {
	tree, diags := compile(t, typesystem.I32, nil,
		armOf(&ast.IntPattern{Token: tk("0"), Value: big.NewInt(0)}, 1),
		armOf(&ast.IntPattern{Token: tk("1"), Value: big.NewInt(1)}, 2),
		armOf(&ast.WildcardPattern{Token: tk("_")}, 3),
	)
	if diags.Len() != 0 {
		t.Fatalf("defaulted integer match reported diagnostics")
	}
	g, ok := tree.(*tast.Guard)
	if !ok {
		t.Fatalf("tree root is %T, want guard", tree)
	}
	if _, ok := g.Consequence.(*tast.Success); !ok {
		t.Errorf("first guard consequence should be the first arm")
	}
	g2, ok := g.Alternative.(*tast.Guard)
	if !ok {
		t.Fatalf("second ladder step is %T, want guard", g.Alternative)
	}
	if _, ok := g2.Alternative.(*tast.Success); !ok {
		t.Errorf("ladder should fall through to the wildcard arm")
	}
}

func TestOpenLiteralMatchWithoutDefaultFails(t *testing.T) {
	tree, diags := compile(t, typesystem.String, nil,
		armOf(&ast.StringPattern{Token: tk("a"), Value: "a"}, 1),
	)
	if findCode(diags, diagnostics.ErrNonExhaustiveMatch) == nil {
		t.Fatalf("open literal match without default should be non-exhaustive")
	}
	g := tree.(*tast.Guard)
	if _, ok := g.Alternative.(*tast.Failure); !ok {
		t.Errorf("ladder tail should be a failure leaf, got %T", g.Alternative)
	}
}

func TestFullyCoveredUnionNeedsNoDefault(t *testing.T) {
	env := symbols.NewRoot()
	answer := typesystem.Union{Name: "Answer", Literals: []typesystem.Literal{
		typesystem.IntLiteral(0), typesystem.IntLiteral(1),
	}}
	_ = env.AddDeclaration("Answer", answer)

	_, diags := compile(t, answer, env,
		armOf(&ast.IntPattern{Token: tk("0"), Value: big.NewInt(0)}, 1),
		armOf(&ast.IntPattern{Token: tk("1"), Value: big.NewInt(1)}, 2),
	)
	if findCode(diags, diagnostics.ErrNonExhaustiveMatch) != nil {
		t.Errorf("union fully covered by its literals should be exhaustive")
	}
}

func TestPartiallyCoveredUnionNamesMissingLiterals(t *testing.T) {
	env := symbols.NewRoot()
	answer := typesystem.Union{Name: "Answer", Literals: []typesystem.Literal{
		typesystem.IntLiteral(0), typesystem.IntLiteral(1), typesystem.StringLiteral("maybe"),
	}}
	_ = env.AddDeclaration("Answer", answer)

	_, diags := compile(t, answer, env,
		armOf(&ast.IntPattern{Token: tk("0"), Value: big.NewInt(0)}, 1),
	)
	d := findCode(diags, diagnostics.ErrNonExhaustiveMatch)
	if d == nil {
		t.Fatalf("partial union coverage not reported")
	}
	if !strings.Contains(d.Message, "1") || !strings.Contains(d.Message, `"maybe"`) {
		t.Errorf("uncovered example should list the missing literals, got: %s", d.Message)
	}
}

// ---------------------------------------------------------------------------
// Redundancy
// ---------------------------------------------------------------------------

func TestArmAfterWildcardIsUnreachable(t *testing.T) {
	_, diags := compile(t, typesystem.Bool, nil,
		armOf(&ast.WildcardPattern{Token: tk("_")}, 1),
		armOf(&ast.BoolPattern{Token: tk("true"), Value: true}, 2),
	)
	d := findCode(diags, diagnostics.ErrUnreachablePattern)
	if d == nil {
		t.Fatalf("shadowed arm not reported")
	}
	if d.Severity != diagnostics.SeverityWarning {
		t.Errorf("unreachable pattern should be a warning, not an error")
	}
}

func TestDuplicateLiteralArmIsUnreachable(t *testing.T) {
	_, diags := compile(t, typesystem.I32, nil,
		armOf(&ast.IntPattern{Token: tk("0"), Value: big.NewInt(0)}, 1),
		armOf(&ast.IntPattern{Token: tk("0"), Value: big.NewInt(0)}, 2),
		armOf(&ast.WildcardPattern{Token: tk("_")}, 3),
	)
	if findCode(diags, diagnostics.ErrUnreachablePattern) == nil {
		t.Errorf("duplicate literal arm should be unreachable")
	}
}

// ---------------------------------------------------------------------------
// Struct destructuring
// ---------------------------------------------------------------------------

func TestStructSwitchDestructuresFields(t *testing.T) {
	env := symbols.NewRoot()
	_ = env.AddDeclaration("Point", typesystem.Struct{
		Name: "Point",
		Fields: []typesystem.Field{
			{Name: "x", Type: typesystem.I32},
			{Name: "y", Type: typesystem.I32},
		},
	})
	tree, diags := compile(t, typesystem.Named{Name: "Point"}, env,
		armOf(ctor("Point",
			&ast.FieldPattern{Token: tk("x"), Identifier: "x", Pattern: &ast.IntPattern{Token: tk("0"), Value: big.NewInt(0)}},
			&ast.FieldPattern{Token: tk("y"), Identifier: "y"},
		), 1),
		armOf(&ast.WildcardPattern{Token: tk("_")}, 2),
	)
	if findCode(diags, diagnostics.ErrNonExhaustiveMatch) != nil {
		t.Fatalf("wildcard-defaulted struct match reported non-exhaustive")
	}
	sw, ok := tree.(*tast.Switch)
	if !ok {
		t.Fatalf("tree root is %T, want the single-constructor switch", tree)
	}
	if len(sw.Cases) != 1 || len(sw.Cases[0].Arguments) != 2 {
		t.Fatalf("struct case should bind both fields")
	}
	if _, ok := sw.Cases[0].Body.(*tast.Guard); !ok {
		t.Errorf("field literal should refine into a guard, got %T", sw.Cases[0].Body)
	}
}
