// Package prettyprinter renders the typed IR as a deterministic indented
// tree. Every node begins with <kind> and lists its children as
// label: value lines; ├─ connects non-final children, ╰─ the final one,
// and ┆ continues open levels. The output format is the snapshot-test
// contract.
package prettyprinter

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/lunarlang/lunar/internal/ast"
	"github.com/lunarlang/lunar/internal/tast"
	"github.com/lunarlang/lunar/internal/typesystem"
)

const (
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// TreePrinter renders typed IR trees. It is stateless beyond its indent
// stack: rendering the same node twice yields byte-identical output.
type TreePrinter struct {
	buf    bytes.Buffer
	levels []bool // true = level closed, no continuation pipe
	color  bool
}

// NewTreePrinter creates a printer that colorizes node kinds when stdout
// is a terminal.
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{color: isatty.IsTerminal(os.Stdout.Fd())}
}

// NewPlainTreePrinter creates a printer with color disabled; snapshot
// tests use this form.
func NewPlainTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// Render returns the indented tree of a typed statement.
func (p *TreePrinter) Render(stmt tast.Statement) string {
	p.buf.Reset()
	p.levels = p.levels[:0]
	p.statement(stmt)
	return p.buf.String()
}

// RenderExpression returns the indented tree of a typed expression.
func (p *TreePrinter) RenderExpression(expr tast.Expression) string {
	p.buf.Reset()
	p.levels = p.levels[:0]
	p.header("", p.exprKind(expr))
	p.exprChildren(expr)
	return p.buf.String()
}

// Print writes the rendered tree to stdout.
func Print(stmt tast.Statement) {
	fmt.Print(NewTreePrinter().Render(stmt))
}

// --- indent machinery ------------------------------------------------------

func (p *TreePrinter) kind(k string) string {
	if p.color {
		return ansiCyan + "<" + k + ">" + ansiReset
	}
	return "<" + k + ">"
}

// line writes one connector line at the current depth.
func (p *TreePrinter) line(last bool, text string) {
	for _, closed := range p.levels {
		if closed {
			p.buf.WriteString("  ")
		} else {
			p.buf.WriteString("┆ ")
		}
	}
	if last {
		p.buf.WriteString("╰─")
	} else {
		p.buf.WriteString("├─")
	}
	p.buf.WriteString(text)
	p.buf.WriteByte('\n')
}

// header writes a node header: at the root without a connector, below
// the root the caller goes through open instead.
func (p *TreePrinter) header(label string, kind string) {
	if label != "" {
		p.buf.WriteString(label + ": ")
	}
	p.buf.WriteString(kind)
	p.buf.WriteByte('\n')
}

// scalar writes a label: value leaf line.
func (p *TreePrinter) scalar(last bool, label, value string) {
	p.line(last, label+": "+value)
}

// open writes a labeled node header line and descends one level; close
// ends the level.
func (p *TreePrinter) open(last bool, label, kind string) {
	text := kind
	if label != "" {
		text = label + ": " + kind
	}
	p.line(last, text)
	p.levels = append(p.levels, last)
}

func (p *TreePrinter) close() {
	p.levels = p.levels[:len(p.levels)-1]
}

func typeName(t typesystem.Type) string {
	if t == nil {
		return "?"
	}
	return t.FullName()
}

// --- statements ------------------------------------------------------------

func (p *TreePrinter) statement(s tast.Statement) {
	switch n := s.(type) {
	case *tast.Program:
		p.header("", p.kind("program"))
		for i, stmt := range n.Statements {
			p.writeStmt(i == len(n.Statements)-1, "", stmt)
		}
	default:
		p.header("", p.stmtKind(s))
		p.stmtChildren(s)
	}
}

func (p *TreePrinter) writeStmt(last bool, label string, s tast.Statement) {
	p.open(last, label, p.stmtKind(s))
	p.stmtChildren(s)
	p.close()
}

func (p *TreePrinter) stmtKind(s tast.Statement) string {
	switch s.(type) {
	case *tast.Program:
		return p.kind("program")
	case *tast.ModuleDeclaration:
		return p.kind("module statement")
	case *tast.Use:
		return p.kind("use statement")
	case *tast.StructDeclaration:
		return p.kind("struct declaration")
	case *tast.EnumDeclaration:
		return p.kind("enum declaration")
	case *tast.UnionDeclaration:
		return p.kind("union declaration")
	case *tast.TypeAliasDeclaration:
		return p.kind("type alias declaration")
	case *tast.ProtocolDeclaration:
		return p.kind("protocol declaration")
	case *tast.FunctionDeclaration:
		return p.kind("function declaration")
	case *tast.Semi:
		return p.kind("semi statement")
	case *tast.ExpressionStatement:
		return p.kind("expression statement")
	}
	return p.kind("statement")
}

func (p *TreePrinter) stmtChildren(s tast.Statement) {
	switch n := s.(type) {
	case *tast.Program:
		for i, stmt := range n.Statements {
			p.writeStmt(i == len(n.Statements)-1, "", stmt)
		}

	case *tast.ModuleDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		p.scalar(true, "module_path", strings.Join(n.Path, "::"))

	case *tast.Use:
		if n.Alias != "" {
			p.scalar(false, "use_path", strings.Join(n.Path, "::"))
			p.scalar(true, "alias", n.Alias)
			return
		}
		p.scalar(true, "use_path", strings.Join(n.Path, "::"))

	case *tast.StructDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		last := len(n.Struct.Fields) == 0 && len(n.Where) == 0
		p.scalar(last, "type_identifier", n.Struct.FullName())
		for i, w := range n.Where {
			p.scalar(i == len(n.Where)-1 && len(n.Struct.Fields) == 0, "where",
				w.Param+": "+strings.Join(w.Protocols, " + "))
		}
		for i, f := range n.Struct.Fields {
			p.scalar(i == len(n.Struct.Fields)-1, "field", fieldLine(f))
		}

	case *tast.EnumDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		p.scalar(len(n.Enum.SharedFields) == 0 && len(n.Enum.Members) == 0,
			"type_identifier", n.Enum.FullName())
		for i, f := range n.Enum.SharedFields {
			p.scalar(i == len(n.Enum.SharedFields)-1 && len(n.Enum.Members) == 0,
				"shared_field", fieldLine(f))
		}
		for i, m := range n.Enum.Members {
			p.memberChild(i == len(n.Enum.Members)-1, m)
		}

	case *tast.UnionDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		p.scalar(len(n.Union.Literals) == 0, "type_identifier", n.Union.Name)
		for i, l := range n.Union.Literals {
			p.scalar(i == len(n.Union.Literals)-1, "literal", l.FullName())
		}

	case *tast.TypeAliasDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		p.scalar(len(n.Alias.Types) == 0, "type_identifier", n.Alias.Name)
		for i, t := range n.Alias.Types {
			p.scalar(i == len(n.Alias.Types)-1, "type", typeName(t))
		}

	case *tast.ProtocolDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		last := len(n.Protocol.AssociatedTypes) == 0 && len(n.Protocol.Functions) == 0 && len(n.Defaults) == 0
		p.scalar(last, "type_identifier", n.Protocol.Name)
		for i, a := range n.Protocol.AssociatedTypes {
			value := a.Name
			if a.Default != nil {
				value += " = " + typeName(a.Default)
			}
			p.scalar(i == len(n.Protocol.AssociatedTypes)-1 && len(n.Protocol.Functions) == 0 && len(n.Defaults) == 0,
				"associated_type", value)
		}
		for i, f := range n.Protocol.Functions {
			value := f.Name + ": " + f.Signature.FullName()
			if f.HasDefault {
				value += " (default)"
			}
			p.scalar(i == len(n.Protocol.Functions)-1 && len(n.Defaults) == 0, "function", value)
		}
		for i, d := range n.Defaults {
			p.writeStmt(i == len(n.Defaults)-1, "default", d)
		}

	case *tast.FunctionDeclaration:
		p.scalar(false, "access_modifier", accessName(n.Access))
		p.scalar(false, "identifier", n.Name)
		if len(n.TypeParams) > 0 {
			p.scalar(false, "type_params", strings.Join(n.TypeParams, ", "))
		}
		for _, w := range n.Where {
			p.scalar(false, "where", w.Param+": "+strings.Join(w.Protocols, " + "))
		}
		for _, param := range n.Params {
			p.scalar(false, "param", param.Name+": "+typeName(param.Typ))
		}
		p.scalar(n.Body == nil, "return_type", typeName(n.ReturnType))
		if n.Body != nil {
			p.writeExpr(true, "body", n.Body)
		}

	case *tast.Semi:
		p.writeExpr(true, "expression", n.Expression)

	case *tast.ExpressionStatement:
		p.writeExpr(true, "expression", n.Expression)
	}
}

func (p *TreePrinter) memberChild(last bool, m typesystem.EnumMember) {
	if len(m.Fields) == 0 {
		p.scalar(last, "member", m.Name)
		return
	}
	p.open(last, "member", m.Name)
	for i, f := range m.Fields {
		p.scalar(i == len(m.Fields)-1, "field", fieldLine(f))
	}
	p.close()
}

func fieldLine(f typesystem.Field) string {
	line := f.Name + ": " + typeName(f.Type)
	if f.Mutable {
		line = "mut " + line
	}
	return line
}

func accessName(a ast.AccessModifier) string {
	if s := a.String(); s != "" {
		return s
	}
	return "default"
}
