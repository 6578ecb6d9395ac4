package analyzer

import (
	"strings"
	"testing"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
)

// ---------------------------------------------------------------------------
// Struct round-trip
// ---------------------------------------------------------------------------

func TestStructFieldAccessElaboratesToFieldType(t *testing.T) {
	// struct Point { x: i32, y: i32 }; Point { x: 1, y: 2 }.x
	typed, diags := analyzeProgram(
		structDecl("Point", field("x", named("i32")), field("y", named("i32"))),
		exprStmt(maccess(structLit(named("Point"), fieldInit("x", intLit(1)), fieldInit("y", intLit(2))), "x")),
	)
	expectNoErrors(t, diags)
	if got := lastExpression(t, typed).Type().FullName(); got != "i32" {
		t.Errorf("field access type = %s, want i32", got)
	}
}

func TestValidProgramHasNoUnknownTypes(t *testing.T) {
	typed, diags := analyzeProgram(
		structDecl("Point", field("x", named("i32")), field("y", named("i32"))),
		exprStmt(structLit(named("Point"), fieldInit("x", intLit(1)), fieldInit("y", intLit(2)))),
	)
	expectNoErrors(t, diags)
	if len(diags) != 0 {
		t.Errorf("valid program should produce an empty diagnostic list, got %d", len(diags))
	}
	for _, stmt := range typed.Statements {
		if stmt.Type().FullName() == "?" {
			t.Errorf("valid program produced an Unknown-typed statement: %T", stmt)
		}
	}
}

// ---------------------------------------------------------------------------
// Enum match
// ---------------------------------------------------------------------------

func shapeEnum() *ast.EnumDeclaration {
	return enumDecl("Shape",
		member("Circle", memberField("r", named("f64"))),
		member("Square", memberField("s", named("f64"))),
	)
}

func TestEnumMatchElaboratesWithExhaustiveTree(t *testing.T) {
	// match s { Circle { r } => r, Square { s } => s }
	typed, diags := analyzeProgram(
		shapeEnum(),
		funDecl("area", []*ast.Parameter{param("s", named("Shape"))}, named("f64"),
			matchExpr(ident("s"),
				arm(ctorPat("Circle", fieldPat("r")), ident("r")),
				arm(ctorPat("Square", fieldPat("s")), ident("s")),
			)),
	)
	expectNoErrors(t, diags)

	fn := typed.Statements[1].(*tast.FunctionDeclaration)
	m, ok := fn.Body.(*tast.Match)
	if !ok {
		t.Fatalf("function body is %T, want match", fn.Body)
	}
	if m.Typ.FullName() != "f64" {
		t.Errorf("match type = %s, want f64", m.Typ.FullName())
	}

	sw, ok := m.Tree.(*tast.Switch)
	if !ok {
		t.Fatalf("decision tree root is %T, want switch", m.Tree)
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("switch has %d cases, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Constructor.Name != "Circle" || sw.Cases[1].Constructor.Name != "Square" {
		t.Errorf("cases out of declaration order: %s, %s",
			sw.Cases[0].Constructor.Name, sw.Cases[1].Constructor.Name)
	}
	if sw.Fallback != nil {
		t.Errorf("covered finite switch should have no fallback")
	}
	for _, cs := range sw.Cases {
		if _, ok := cs.Body.(*tast.Success); !ok {
			t.Errorf("case %s body is %T, want success", cs.Constructor.Name, cs.Body)
		}
	}
}

func TestNonExhaustiveEnumMatchReportsUncoveredMember(t *testing.T) {
	_, diags := analyzeProgram(
		shapeEnum(),
		funDecl("area", []*ast.Parameter{param("s", named("Shape"))}, named("f64"),
			matchExpr(ident("s"),
				arm(ctorPat("Circle", fieldPat("r")), ident("r")),
			)),
	)
	d := expectError(t, diags, diagnostics.ErrNonExhaustiveMatch)
	if !strings.Contains(d.Message, "Square { .. }") {
		t.Errorf("uncovered example should name Square { .. }, got: %s", d.Message)
	}
}

func TestBoolMatchMissingFalse(t *testing.T) {
	_, diags := analyzeProgram(
		exprStmt(matchExpr(boolLit(true),
			arm(boolPat(true), intLit(1)),
		)),
	)
	d := expectError(t, diags, diagnostics.ErrNonExhaustiveMatch)
	if !strings.Contains(d.Message, "false") {
		t.Errorf("uncovered example should be false, got: %s", d.Message)
	}
}

func TestShadowedArmReportedUnreachable(t *testing.T) {
	_, diags := analyzeProgram(
		exprStmt(matchExpr(boolLit(true),
			arm(wildcard(), intLit(1)),
			arm(boolPat(true), intLit(2)),
		)),
	)
	expectError(t, diags, diagnostics.ErrUnreachablePattern)
}

// ---------------------------------------------------------------------------
// Generics
// ---------------------------------------------------------------------------

func TestGenericIdentityResolvesAtCallSite(t *testing.T) {
	// fun id<T>(x: T): T => x; id(5)
	typed, diags := analyzeProgram(
		genericFunDecl("id", []*ast.GenericParam{gparam("T")}, nil,
			[]*ast.Parameter{param("x", named("T"))}, named("T"), ident("x")),
		exprStmt(call(ident("id"), intLit(5))),
	)
	expectNoErrors(t, diags)
	if got := lastExpression(t, typed).Type().FullName(); got != "i32" {
		t.Errorf("id(5) type = %s, want i32", got)
	}
}

func TestGenericStructFieldSubstitution(t *testing.T) {
	// struct Boxed<T> { value: T }; let b: Boxed<string> = Boxed { value: "s" }; b.value
	typed, diags := analyzeProgram(
		genericStructDecl("Boxed", []*ast.GenericParam{gparam("T")}, nil, field("value", named("T"))),
		exprStmt(block(
			semi(letDecl("b", concrete("Boxed", named("string")),
				structLit(concrete("Boxed", named("string")), fieldInit("value", strLit("s"))))),
			exprStmt(maccess(ident("b"), "value")),
		)),
	)
	expectNoErrors(t, diags)
	if got := lastExpression(t, typed).Type().FullName(); got != "string" {
		t.Errorf("b.value type = %s, want string", got)
	}
}

func TestGenericArityMismatch(t *testing.T) {
	_, diags := analyzeProgram(
		genericStructDecl("Boxed", []*ast.GenericParam{gparam("T")}, nil, field("value", named("T"))),
		exprStmt(letDecl("b", concrete("Boxed", named("i32"), named("i32")), intLit(0))),
	)
	expectError(t, diags, diagnostics.ErrArityMismatch)
}

// ---------------------------------------------------------------------------
// Protocols
// ---------------------------------------------------------------------------

func eqProtocol() *ast.ProtocolDeclaration {
	// protocol Eq { fun eq(other: Self): bool }
	return protoDecl("Eq",
		funDecl("eq", []*ast.Parameter{param("other", named("Self"))}, named("bool"), nil),
	)
}

func boundedF() *ast.FunctionDeclaration {
	// fun f<T>(a: T, b: T): bool where T: Eq => a.eq(b)
	return genericFunDecl("f",
		[]*ast.GenericParam{gparam("T")},
		[]*ast.GenericConstraint{whereClause("T", "Eq")},
		[]*ast.Parameter{param("a", named("T")), param("b", named("T"))},
		named("bool"),
		call(maccess(ident("a"), "eq"), ident("b")))
}

func TestProtocolBoundViolationReported(t *testing.T) {
	_, diags := analyzeProgram(
		eqProtocol(),
		boundedF(),
		exprStmt(call(ident("f"), intLit(1), intLit(2))),
	)
	expectError(t, diags, diagnostics.ErrProtocolNotSatisfied)
}

func TestProtocolBoundSatisfiedByNominalImplementation(t *testing.T) {
	// struct Id { n: i32 } plus fun eq(self: Id, other: Id): bool makes
	// Id conform to Eq.
	typed, diags := analyzeProgram(
		eqProtocol(),
		structDecl("Id", field("n", named("i32"))),
		funDecl("eq", []*ast.Parameter{param("self", named("Id")), param("other", named("Id"))},
			named("bool"), boolLit(true)),
		boundedF(),
		exprStmt(call(ident("f"),
			structLit(named("Id"), fieldInit("n", intLit(1))),
			structLit(named("Id"), fieldInit("n", intLit(2))))),
	)
	expectNoErrors(t, diags)
	if got := lastExpression(t, typed).Type().FullName(); got != "bool" {
		t.Errorf("f(...) type = %s, want bool", got)
	}
}

// ---------------------------------------------------------------------------
// Shadowing
// ---------------------------------------------------------------------------

func TestInnerBlockShadowsOuterBinding(t *testing.T) {
	// { let x = 1; { let x = "s"; x }; x }
	typed, diags := analyzeProgram(
		exprStmt(block(
			semi(letDecl("x", nil, intLit(1))),
			semi(block(
				semi(letDecl("x", nil, strLit("s"))),
				exprStmt(ident("x")),
			)),
			exprStmt(ident("x")),
		)),
	)
	expectNoErrors(t, diags)

	outer := lastExpression(t, typed).(*tast.Block)
	if got := outer.Typ.FullName(); got != "i32" {
		t.Errorf("outer x = %s, want i32", got)
	}
	innerBlock := outer.Statements[1].(*tast.Semi).Expression.(*tast.Block)
	if got := innerBlock.Typ.FullName(); got != "string" {
		t.Errorf("inner x = %s, want string", got)
	}
}

// ---------------------------------------------------------------------------
// Blocks, loops, unions
// ---------------------------------------------------------------------------

func TestSemiTerminatedBlockIsUnit(t *testing.T) {
	typed, diags := analyzeProgram(
		exprStmt(block(semi(intLit(1)))),
	)
	expectNoErrors(t, diags)
	if got := lastExpression(t, typed).Type().FullName(); got != "()" {
		t.Errorf("semicolon-terminated block = %s, want ()", got)
	}
}

func TestLoopTypeIsJoinOfBreakValues(t *testing.T) {
	typed, diags := analyzeProgram(
		exprStmt(&ast.Loop{Token: tk("loop"), Body: block(
			semi(&ast.Break{Token: tk("break"), Value: intLit(3)}),
		)}),
	)
	expectNoErrors(t, diags)
	if got := lastExpression(t, typed).Type().FullName(); got != "i32" {
		t.Errorf("loop type = %s, want i32", got)
	}
}

func TestUnionAssignmentAcceptsMemberLiteral(t *testing.T) {
	_, diags := analyzeProgram(
		unionDecl("Answer", intLit(0), intLit(1), strLit("maybe")),
		exprStmt(letDecl("a", named("Answer"), strLit("maybe"))),
	)
	expectNoErrors(t, diags)
}

func TestUnionAssignmentRejectsForeignLiteral(t *testing.T) {
	_, diags := analyzeProgram(
		unionDecl("Answer", intLit(0), intLit(1)),
		exprStmt(letDecl("a", named("Answer"), strLit("never"))),
	)
	expectError(t, diags, diagnostics.ErrTypeMismatch)
}

func TestRangeIsIterable(t *testing.T) {
	// for i in 0..10 { i; }
	_, diags := analyzeProgram(
		exprStmt(&ast.For{
			Token:    tk("for"),
			Binding:  "i",
			Iterable: binary("..", intLit(0), intLit(10)),
			Body:     block(semi(ident("i"))),
		}),
	)
	expectNoErrors(t, diags)
}
