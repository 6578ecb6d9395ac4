// Package pipeline is the public entry point of the semantic front-end:
// it runs discovery then elaboration over a parser-built program and
// returns the typed program with the full diagnostic list. The pipeline
// is pure; all inputs and outputs are in-memory trees.
package pipeline

import (
	"github.com/lunarlang/lunar/internal/analyzer"
	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/config"
	"github.com/lunarlang/lunar/internal/diagnostics"
	"github.com/lunarlang/lunar/internal/symbols"
	"github.com/lunarlang/lunar/internal/tast"
)

// Result is the outcome of checking one compilation unit. A failing
// program still carries a typed tree with Unknown-typed holes so
// downstream tooling can keep rendering.
type Result struct {
	Program     *tast.Program
	Diagnostics []*diagnostics.Diagnostic
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// Check elaborates a program against a fresh root environment.
func Check(program *ast.Program, cfg *config.Config) *Result {
	return CheckWithEnvironment(program, cfg, symbols.NewRoot())
}

// CheckWithEnvironment elaborates a program against a caller-owned root
// environment; the driver uses this to share prelude declarations across
// compilation units.
func CheckWithEnvironment(program *ast.Program, cfg *config.Config, env *symbols.Environment) *Result {
	typed, diags := analyzer.NewWithEnvironment(cfg, env).Analyze(program)
	return &Result{Program: typed, Diagnostics: diags}
}
