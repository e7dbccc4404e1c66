// Package funamb embeds the amb evaluator in Go programs. Go functions and
// values can be bound into the global scope, and every value of a
// nondeterministic expression can be pulled one at a time.
package funamb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/funvibe/funamb/internal/backend"
	"github.com/funvibe/funamb/internal/evaluator"
)

// ErrExhausted is returned when a problem has no more values.
var ErrExhausted = errors.New("no more values")

// Interpreter wraps a backend session and provides a high-level embedding
// API. It is not safe for concurrent use.
type Interpreter struct {
	session    *backend.Session
	marshaller *Marshaller
}

// Option configures an Interpreter.
type Option func(*backend.Options)

// WithContext cancels running evaluations when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *backend.Options) { o.Context = ctx }
}

// WithMaxSteps bounds every evaluation and retry.
func WithMaxSteps(n int) Option {
	return func(o *backend.Options) { o.MaxSteps = n }
}

// WithOutput redirects display.
func WithOutput(w io.Writer) Option {
	return func(o *backend.Options) { o.Out = w }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *backend.Options) { o.Logger = l }
}

// WithPrelude loads library files before the first evaluation.
func WithPrelude(paths ...string) Option {
	return func(o *backend.Options) { o.Prelude = append(o.Prelude, paths...) }
}

// New creates a new Interpreter.
func New(opts ...Option) (*Interpreter, error) {
	var o backend.Options
	for _, opt := range opts {
		opt(&o)
	}
	sess, err := backend.NewSession(o)
	if err != nil {
		return nil, err
	}
	return &Interpreter{session: sess, marshaller: NewMarshaller()}, nil
}

// Bind makes a Go function or value available to later evaluations under
// name. Functions are called with their arguments converted to the Go
// parameter types.
func (it *Interpreter) Bind(name string, val interface{}) error {
	var obj evaluator.Object
	if fn := reflect.ValueOf(val); fn.Kind() == reflect.Func {
		obj = it.marshaller.funcToBuiltin(name, fn)
	} else {
		var err error
		if obj, err = it.marshaller.ToValue(val); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	it.session.Define(name, obj)
	return nil
}

// Get returns the Go value of a name visible to the session.
func (it *Interpreter) Get(name string) (interface{}, error) {
	obj, err := it.session.Lookup(name)
	if err != nil {
		return nil, err
	}
	return it.marshaller.FromValue(obj, nil)
}

// Eval starts a new problem and returns its first value. Next returns the
// following ones.
func (it *Interpreter) Eval(code string) (interface{}, error) {
	res, err := it.session.Evaluate(code, "<embed>")
	if err != nil {
		return nil, err
	}
	return it.value(res)
}

// Next returns the next value of the current problem.
func (it *Interpreter) Next() (interface{}, error) {
	res, err := it.session.TryAgain()
	if err != nil {
		return nil, err
	}
	return it.value(res)
}

// All evaluates code and collects up to limit of its values. A limit of
// zero or less collects every value.
func (it *Interpreter) All(code string, limit int) ([]interface{}, error) {
	var out []interface{}
	val, err := it.Eval(code)
	for err == nil {
		out = append(out, val)
		if limit > 0 && len(out) >= limit {
			return out, nil
		}
		val, err = it.Next()
	}
	if errors.Is(err, ErrExhausted) {
		return out, nil
	}
	return out, err
}

// Call applies the function bound to funcName to args and returns the
// first value of the call.
func (it *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	names := make([]string, len(args))
	for i, arg := range args {
		obj, err := it.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		names[i] = fmt.Sprintf("$arg%d", i)
		it.session.Define(names[i], obj)
	}
	return it.Eval(funcName + "(" + strings.Join(names, ", ") + ");")
}

// LoadFile evaluates a library file into the global environment.
func (it *Interpreter) LoadFile(path string) error {
	return it.session.Load(path)
}

// Close forgets the current problem.
func (it *Interpreter) Close() {
	it.session.Close()
}

func (it *Interpreter) value(res *backend.Result) (interface{}, error) {
	if res.Exhausted {
		return nil, ErrExhausted
	}
	return it.marshaller.FromValue(res.Value, nil)
}
