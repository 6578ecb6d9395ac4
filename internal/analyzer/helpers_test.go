package analyzer

// AST construction helpers. The parser is an external collaborator, so
// tests build surface trees directly; positions auto-increment so every
// diagnostic keeps a distinct dedup key.

import (
	"math/big"
	"strings"
	"testing"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/config"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/token"
)

var nextLine int

func tk(lexeme string) token.Token {
	nextLine++
	return token.Token{Type: token.IDENT, Lexeme: lexeme, Line: nextLine, Column: 1}
}

// --- annotations -----------------------------------------------------------

func named(name string) *ast.NamedAnnotation {
	return &ast.NamedAnnotation{Token: tk(name), Name: name}
}

func concrete(name string, args ...ast.Annotation) *ast.ConcreteAnnotation {
	return &ast.ConcreteAnnotation{Token: tk(name), Name: name, Args: args}
}

func arrayAnn(elem ast.Annotation) *ast.ArrayAnnotation {
	return &ast.ArrayAnnotation{Token: tk("["), Element: elem}
}

func gparam(name string) *ast.GenericParam {
	return &ast.GenericParam{Token: tk(name), Name: name}
}

func whereClause(param string, protocols ...string) *ast.GenericConstraint {
	w := &ast.GenericConstraint{Token: tk("where"), Param: param}
	for _, p := range protocols {
		w.Protocols = append(w.Protocols, named(p))
	}
	return w
}

// --- declarations ----------------------------------------------------------

func field(name string, ann ast.Annotation) *ast.StructField {
	return &ast.StructField{Token: tk(name), Name: name, TypeAnnotation: ann}
}

func mutField(name string, ann ast.Annotation) *ast.StructField {
	f := field(name, ann)
	f.Mutable = true
	return f
}

func structDecl(name string, fields ...*ast.StructField) *ast.StructDeclaration {
	return &ast.StructDeclaration{
		Token:          tk("struct"),
		TypeIdentifier: &ast.TypeIdentifier{Token: tk(name), Name: name},
		Fields:         fields,
	}
}

func genericStructDecl(name string, params []*ast.GenericParam, where []*ast.GenericConstraint, fields ...*ast.StructField) *ast.StructDeclaration {
	return &ast.StructDeclaration{
		Token:          tk("struct"),
		TypeIdentifier: &ast.TypeIdentifier{Token: tk(name), Name: name, Params: params},
		Where:          where,
		Fields:         fields,
	}
}

func memberField(name string, ann ast.Annotation) *ast.EnumMemberField {
	return &ast.EnumMemberField{Token: tk(name), Name: name, TypeAnnotation: ann}
}

func member(name string, fields ...*ast.EnumMemberField) *ast.EnumMember {
	return &ast.EnumMember{Token: tk(name), Name: name, Fields: fields}
}

func enumDecl(name string, members ...*ast.EnumMember) *ast.EnumDeclaration {
	return &ast.EnumDeclaration{
		Token:          tk("enum"),
		TypeIdentifier: &ast.TypeIdentifier{Token: tk(name), Name: name},
		Members:        members,
	}
}

func unionDecl(name string, literals ...ast.Expression) *ast.UnionDeclaration {
	return &ast.UnionDeclaration{
		Token:          tk("union"),
		TypeIdentifier: &ast.TypeIdentifier{Token: tk(name), Name: name},
		Literals:       literals,
	}
}

func protoDecl(name string, fns ...*ast.FunctionDeclaration) *ast.ProtocolDeclaration {
	return &ast.ProtocolDeclaration{
		Token:          tk("protocol"),
		TypeIdentifier: &ast.TypeIdentifier{Token: tk(name), Name: name},
		Functions:      fns,
	}
}

func param(name string, ann ast.Annotation) *ast.Parameter {
	return &ast.Parameter{Token: tk(name), Name: name, TypeAnnotation: ann}
}

func funDecl(name string, params []*ast.Parameter, ret ast.Annotation, body ast.Expression) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{
		Token:      tk("fun"),
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Body:       body,
	}
}

func genericFunDecl(name string, typeParams []*ast.GenericParam, where []*ast.GenericConstraint, params []*ast.Parameter, ret ast.Annotation, body ast.Expression) *ast.FunctionDeclaration {
	fn := funDecl(name, params, ret, body)
	fn.TypeParams = typeParams
	fn.Where = where
	return fn
}

// --- expressions -----------------------------------------------------------

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: tk(name), Value: name}
}

func intLit(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: tk("int"), Value: big.NewInt(v)}
}

func floatLit(v float64) *ast.FloatLiteral {
	return &ast.FloatLiteral{Token: tk("float"), Value: v}
}

func strLit(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Token: tk("string"), Value: v}
}

func boolLit(v bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Token: tk("bool"), Value: v}
}

func arrayLit(elements ...ast.Expression) *ast.ArrayLiteral {
	return &ast.ArrayLiteral{Token: tk("["), Elements: elements}
}

func fieldInit(name string, value ast.Expression) *ast.FieldInitializer {
	return &ast.FieldInitializer{Token: tk(name), Name: name, Value: value}
}

func structLit(ann ast.Annotation, fields ...*ast.FieldInitializer) *ast.StructLiteral {
	return &ast.StructLiteral{Token: tk("{"), TypeAnnotation: ann, Fields: fields}
}

func letDecl(name string, ann ast.Annotation, init ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Token: tk("let"), Name: name, TypeAnnotation: ann, Initializer: init}
}

func letMut(name string, ann ast.Annotation, init ast.Expression) *ast.VariableDeclaration {
	d := letDecl(name, ann, init)
	d.Mutable = true
	return d
}

func maccess(obj ast.Expression, memberName string) *ast.MemberAccess {
	return &ast.MemberAccess{Token: tk("."), Object: obj, Member: memberName}
}

func call(callee ast.Expression, args ...ast.Expression) *ast.Call {
	return &ast.Call{Token: tk("("), Callee: callee, Arguments: args}
}

func binary(op string, left, right ast.Expression) *ast.Binary {
	return &ast.Binary{Token: tk(op), Operator: op, Left: left, Right: right}
}

func assign(target, value ast.Expression) *ast.Assignment {
	return &ast.Assignment{Token: tk("="), Target: target, Value: value}
}

func block(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{Token: tk("{"), Statements: stmts}
}

func exprStmt(e ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Token: e.GetToken(), Expression: e}
}

func semi(e ast.Expression) *ast.Semi {
	return &ast.Semi{Token: e.GetToken(), Expression: e}
}

// --- patterns --------------------------------------------------------------

func wildcard() *ast.WildcardPattern {
	return &ast.WildcardPattern{Token: tk("_")}
}

func boolPat(v bool) *ast.BoolPattern {
	return &ast.BoolPattern{Token: tk("bool"), Value: v}
}

func intPat(v int64) *ast.IntPattern {
	return &ast.IntPattern{Token: tk("int"), Value: big.NewInt(v)}
}

func varPat(name string) *ast.VariablePattern {
	return &ast.VariablePattern{Token: tk(name), Name: name}
}

func fieldPat(name string) *ast.FieldPattern {
	return &ast.FieldPattern{Token: tk(name), Identifier: name}
}

func ctorPat(typeName string, fields ...*ast.FieldPattern) *ast.ConstructorPattern {
	return &ast.ConstructorPattern{Token: tk(typeName), TypeAnnotation: named(typeName), Fields: fields}
}

func arm(p ast.Pattern, body ast.Expression) *ast.MatchArm {
	return &ast.MatchArm{Token: p.GetToken(), Pattern: p, Body: body}
}

func matchExpr(scrutinee ast.Expression, arms ...*ast.MatchArm) *ast.Match {
	return &ast.Match{Token: tk("match"), Scrutinee: scrutinee, Arms: arms}
}

// --- analysis helpers ------------------------------------------------------

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

func analyzeProgram(stmts ...ast.Statement) (*tast.Program, []*diagnostics.Diagnostic) {
	return New(config.Default()).Analyze(program(stmts...))
}

// expectNoErrors asserts analysis produces no error-severity
// diagnostics.
func expectNoErrors(t *testing.T, diags []*diagnostics.Diagnostic) {
	t.Helper()
	var msgs []string
	for _, d := range diags {
		if d.Severity == diagnostics.SeverityError {
			msgs = append(msgs, d.Error())
		}
	}
	if len(msgs) > 0 {
		t.Fatalf("expected no errors, got:\n%s", strings.Join(msgs, "\n"))
	}
}

// expectError asserts at least one diagnostic with the given code and
// returns it.
func expectError(t *testing.T, diags []*diagnostics.Diagnostic, code diagnostics.ErrorCode) *diagnostics.Diagnostic {
	t.Helper()
	for _, d := range diags {
		if d.Code == code {
			return d
		}
	}
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Error())
	}
	t.Fatalf("expected diagnostic %s, got:\n%s", code, strings.Join(msgs, "\n"))
	return nil
}

// lastExpression digs the final expression statement out of a typed
// program.
func lastExpression(t *testing.T, typed *tast.Program) tast.Expression {
	t.Helper()
	if len(typed.Statements) == 0 {
		t.Fatalf("typed program has no statements")
	}
	last := typed.Statements[len(typed.Statements)-1]
	es, ok := last.(*tast.ExpressionStatement)
	if !ok {
		t.Fatalf("last statement is %T, want expression statement", last)
	}
	return es.Expression
}
