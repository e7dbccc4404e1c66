package evaluator

import (
	"context"
	"io"
	"os"
)

// Evaluator holds the global environment and the settings of the runs it
// drives. It is not safe for concurrent use.
type Evaluator struct {
	// Context for cancellation
	Context context.Context

	// Out receives the output of display.
	Out io.Writer

	// MaxSteps bounds the number of control transfers in a single run
	// (Evaluate or Retry). Zero means unlimited.
	MaxSteps int

	// GlobalEnv is the bootstrap frame holding the primitives, plus
	// anything loaded with LoadSource.
	GlobalEnv *Environment

	// CurrentFile is used for error positions.
	CurrentFile string

	steps int
}

func New() *Evaluator {
	env := NewEnvironment()
	RegisterBuiltins(env)
	return &Evaluator{
		Out:       os.Stdout,
		GlobalEnv: env,
	}
}

// Steps returns the number of control transfers made by the last run.
func (e *Evaluator) Steps() int {
	return e.steps
}
