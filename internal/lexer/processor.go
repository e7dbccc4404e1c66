package lexer

import (
	"github.com/funvibe/funamb/internal/pipeline"
)

// LexerProcessor turns ctx.SourceCode into a token stream. Illegal tokens are
// passed through; the parser reports them with their position.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = NewTokenStream(New(ctx.SourceCode))
	return ctx
}
