// Package analyzer implements the two semantic passes: discovery, which
// records every user-declared type and top-level function, and
// elaboration, which folds the surface AST and the discovered map into
// the typed IR.
package analyzer

import (
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/config"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/symbols"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/token"
	"github.com/lunarlang/lunar/internal/typesystem"
)

// Analyzer performs semantic analysis on a program.
type Analyzer struct {
	env *symbols.Environment
	cfg *config.Config
}

// New creates an Analyzer with a fresh root environment.
func New(cfg *config.Config) *Analyzer {
	return NewWithEnvironment(cfg, symbols.NewRoot())
}

// NewWithEnvironment creates an Analyzer over a caller-owned root
// environment, so tests and the driver can pre-seed it.
func NewWithEnvironment(cfg *config.Config, env *symbols.Environment) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{env: env, cfg: cfg}
}

// Analyze runs discovery then elaboration and returns the typed program
// together with every diagnostic, sorted by position. A failing
// statement still yields a typed statement with Unknown-typed holes.
func (a *Analyzer) Analyze(program *ast.Program) (*tast.Program, []*diagnostics.Diagnostic) {
	diags := diagnostics.NewList()

	discovered := Discover(program, diags)

	c := &checker{
		env:             a.env,
		cfg:             a.cfg,
		diags:           diags,
		discovered:      discovered,
		impls:           make(map[string]map[string]typesystem.Type),
		declConstraints: make(map[string][]tast.Constraint),
		declTypes:       make(map[ast.Statement]typesystem.Type),
	}

	c.declareTypes(program)
	c.declareFunctions(program)

	typed := &tast.Program{File: program.File}
	for _, stmt := range program.Statements {
		typed.Statements = append(typed.Statements, c.statement(stmt))
	}

	if a.cfg.Strict {
		promoteWarnings(diags)
	}
	return typed, diags.Items()
}

// promoteWarnings rewrites warning severities to errors under strict
// mode.
func promoteWarnings(diags *diagnostics.List) {
	for _, d := range diags.Items() {
		if d.Severity == diagnostics.SeverityWarning {
			d.Severity = diagnostics.SeverityError
		}
	}
}

// checker is the elaboration context: the current environment frame plus
// the cross-statement state the walk accumulates.
type checker struct {
	env             *symbols.Environment
	cfg             *config.Config
	diags           *diagnostics.List
	discovered      map[string]*DiscoveredType
	impls           map[string]map[string]typesystem.Type // type name -> method -> applied signature
	declConstraints map[string][]tast.Constraint          // declaration name -> where clause
	declTypes       map[ast.Statement]typesystem.Type     // declaration node -> built type

	returnType typesystem.Type       // enclosing function's return type
	loopDepth  int                   // nesting depth of loop/while/for
	breakTypes [][]typesystem.Type   // per-loop collected break value types
}

// error records an error diagnostic and returns the Invalid hole.
func (c *checker) error(code diagnostics.ErrorCode, tok token.Token, msg string) tast.Expression {
	c.diags.Add(diagnostics.NewError(code, tok, msg))
	return &tast.Invalid{}
}

// warn records a warning diagnostic.
func (c *checker) warn(code diagnostics.ErrorCode, tok token.Token, msg string) {
	c.diags.Add(diagnostics.NewWarning(code, tok, msg))
}

// child runs fn inside a fresh child frame, restoring the parent frame
// when fn returns.
func (c *checker) child(fn func()) {
	c.env = symbols.NewChild(c.env)
	defer func() { c.env = c.env.Parent() }()
	fn()
}

// defaultIntType returns the configured type of an unsuffixed integer
// literal with no context.
func (c *checker) defaultIntType(unsigned bool) typesystem.Primitive {
	if unsigned {
		return typesystem.U32
	}
	if t, ok := c.env.GetType(c.cfg.Defaults.Int); ok {
		if p, ok := t.(typesystem.Primitive); ok && p.IsInteger() {
			return p
		}
	}
	return typesystem.I32
}

// defaultFloatType returns the configured type of a float literal with
// no context.
func (c *checker) defaultFloatType() typesystem.Primitive {
	if t, ok := c.env.GetType(c.cfg.Defaults.Float); ok {
		if p, ok := t.(typesystem.Primitive); ok && p.IsFloat() {
			return p
		}
	}
	return typesystem.F64
}
