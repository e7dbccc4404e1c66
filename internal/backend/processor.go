package backend

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/evaluator"
	"github.com/funvibe/funamb/internal/pipeline"
	"github.com/funvibe/funamb/internal/token"
)

// ExecutionProcessor implements pipeline.Processor: it starts a new problem
// in the session with the parsed program.
type ExecutionProcessor struct {
	Session *Session

	// Result is the first result of the problem, set when evaluation
	// did not fail.
	Result *Result
}

func NewExecutionProcessor(s *Session) *ExecutionProcessor {
	return &ExecutionProcessor{Session: s}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrR001, token.Token{}, "unknown statement type: %T", ctx.AstRoot))
		return ctx
	}

	result, err := p.Session.start(prog, ctx.SourceCode, ctx.FilePath)
	if err != nil {
		ctx.Errors = append(ctx.Errors, toDiagnostic(ctx, err))
		return ctx
	}
	p.Result = result
	return ctx
}

func toDiagnostic(ctx *pipeline.PipelineContext, err error) *diagnostics.DiagnosticError {
	d := diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error())
	if errObj, ok := err.(*evaluator.Error); ok {
		d.Token = token.Token{Line: errObj.Line, Column: errObj.Column}
		d.Message = errObj.Message
		d.File = errObj.File
	}
	if d.File == "" {
		d.File = ctx.FilePath
	}
	return d
}
