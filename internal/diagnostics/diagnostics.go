// Package diagnostics defines the error values reported by the front end
// (lexer and parser) and by the execution stage of the pipeline.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funamb/internal/token"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // unterminated string or comment
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // invalid assignment target
	ErrP004 ErrorCode = "P004" // invalid parameter list
	ErrP005 ErrorCode = "P005" // malformed number literal
	ErrP006 ErrorCode = "P006" // expression too complex
	ErrR001 ErrorCode = "R001" // runtime error
)

// DiagnosticError is an error tied to a position in the source.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

// NewError builds a diagnostic. Extra args are used as fmt arguments for message.
func NewError(code ErrorCode, tok token.Token, message string, args ...interface{}) *DiagnosticError {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%serror [%s]: %s", e.Location(), e.Code, e.Message)
}

// Location returns "file:line:col: " with the parts that are known, or "".
func (e *DiagnosticError) Location() string {
	loc := ""
	if e.Token.Line > 0 {
		loc = fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column)
	}
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return loc
}

// IsIncomplete reports whether the diagnostic was caused by the input ending
// early, which the REPL treats as "keep reading".
func (e *DiagnosticError) IsIncomplete() bool {
	return e.Token.Type == token.EOF || e.Code == ErrL002
}
