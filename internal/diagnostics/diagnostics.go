// Package diagnostics defines the error and warning values produced by the
// semantic passes. Diagnostics are plain values: the pipeline returns them
// to the caller, it never prints them itself.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/lunarlang/lunar/internal/token"
)

// ErrorCode identifies a diagnostic kind. Codes are stable across releases
// so tests and tooling can match on them.
type ErrorCode string

const (
	ErrDuplicateDeclaration ErrorCode = "L001"
	ErrUnknownType          ErrorCode = "L002"
	ErrUnknownMember        ErrorCode = "L003"
	ErrUnknownVariable      ErrorCode = "L004"
	ErrArityMismatch        ErrorCode = "L005"
	ErrTypeMismatch         ErrorCode = "L006"
	ErrNonExhaustiveMatch   ErrorCode = "L007"
	ErrUnreachablePattern   ErrorCode = "L008"
	ErrProtocolNotSatisfied ErrorCode = "L009"
	ErrImmutableAssignment  ErrorCode = "L010"
	ErrUnsupportedOperation ErrorCode = "L011"
	ErrAmbiguousType        ErrorCode = "L012"
)

// Severity separates hard errors from warnings. Warnings never mark a
// typed node as Unknown.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is a single reported problem with its source position.
type Diagnostic struct {
	Code     ErrorCode
	Severity Severity
	Token    token.Token
	File     string
	Message  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Token.Pos(), d.Message)
}

// NewError creates an error-severity diagnostic.
func NewError(code ErrorCode, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityError, Token: tok, File: tok.File, Message: message}
}

// NewWarning creates a warning-severity diagnostic.
func NewWarning(code ErrorCode, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityWarning, Token: tok, File: tok.File, Message: message}
}

// List accumulates diagnostics, deduplicating by position and code so the
// same problem reported along two elaboration paths surfaces once.
type List struct {
	set map[string]*Diagnostic
}

func NewList() *List {
	return &List{set: make(map[string]*Diagnostic)}
}

// Add records a diagnostic, keyed by line:col:code.
func (l *List) Add(d *Diagnostic) {
	if l.set == nil {
		l.set = make(map[string]*Diagnostic)
	}
	key := fmt.Sprintf("%d:%d:%s", d.Token.Line, d.Token.Column, d.Code)
	l.set[key] = d
}

// AddAll records every diagnostic in ds.
func (l *List) AddAll(ds []*Diagnostic) {
	for _, d := range ds {
		l.Add(d)
	}
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.set {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of unique diagnostics.
func (l *List) Len() int { return len(l.set) }

// Items returns all unique diagnostics sorted by line, then column, then
// code, for deterministic output.
func (l *List) Items() []*Diagnostic {
	result := make([]*Diagnostic, 0, len(l.set))
	for _, d := range l.set {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		if result[i].Token.Column != result[j].Token.Column {
			return result[i].Token.Column < result[j].Token.Column
		}
		return result[i].Code < result[j].Code
	})
	return result
}
