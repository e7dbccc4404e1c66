package evaluator

// Step is what every procedure and continuation hands back to the driver:
// a Thunk holding the next control transfer, an *Error that aborts the
// run, or nil once the run has halted.
type Step interface {
	isStep()
}

// Thunk is a deferred control transfer. Continuations are never called
// directly from a procedure; they are wrapped in a Thunk and called by run,
// so the Go stack unwinds between transfers.
type Thunk func() Step

func (Thunk) isStep()  {}
func (*Error) isStep() {}

// Succeed receives a value and the failure continuation that retries the
// computation which produced it.
type Succeed func(val Object, fail Fail) Step

// Fail resumes the most recent choice point that still has alternatives.
type Fail func() Step

// Proc is an analyzed node.
type Proc func(env *Environment, succeed Succeed, fail Fail) Step

func yield(succeed Succeed, val Object, fail Fail) Step {
	return Thunk(func() Step { return succeed(val, fail) })
}

func backtrack(fail Fail) Step {
	return Thunk(func() Step { return fail() })
}

// contextCheckInterval is how many steps run takes between cancellation checks.
const contextCheckInterval = 1024

// run drives steps until the run halts or fails.
func (e *Evaluator) run(step Step) *Error {
	e.steps = 0
	for step != nil {
		switch s := step.(type) {
		case Thunk:
			e.steps++
			if e.MaxSteps > 0 && e.steps > e.MaxSteps {
				return newError("step limit of %d exceeded", e.MaxSteps)
			}
			if e.Context != nil && e.steps%contextCheckInterval == 0 {
				select {
				case <-e.Context.Done():
					return newError("execution cancelled: %v", e.Context.Err())
				default:
				}
			}
			step = s()
		case *Error:
			return s
		default:
			return newError("internal error: unknown step %T", step)
		}
	}
	return nil
}
