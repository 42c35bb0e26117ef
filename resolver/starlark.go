package resolver

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// DefaultMaxSteps bounds the Starlark computation of a single call
const DefaultMaxSteps = 1_000_000

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// StarlarkEvaluator evaluates placeholders against the globals of a
// Starlark module. $name reads a global, ${expr} evaluates an expression,
// and arguments call the value with Starlark strings. The globals are
// frozen after loading, so an evaluator can serve concurrent renders.
type StarlarkEvaluator struct {
	name     string
	globals  starlark.StringDict
	maxSteps uint64
}

// StarlarkOption configures a StarlarkEvaluator
type StarlarkOption func(*StarlarkEvaluator)

// WithMaxSteps limits the execution steps of module loading and of each
// call. Zero means DefaultMaxSteps.
func WithMaxSteps(n uint64) StarlarkOption {
	return func(e *StarlarkEvaluator) {
		if n == 0 {
			n = DefaultMaxSteps
		}
		e.maxSteps = n
	}
}

// NewStarlarkEvaluator executes src as a Starlark module named name. The
// entries of vars are predeclared as strings; module globals shadow them.
func NewStarlarkEvaluator(name, src string, vars map[string]string, opts ...StarlarkOption) (*StarlarkEvaluator, error) {
	e := &StarlarkEvaluator{
		name:     name,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}

	predeclared := make(starlark.StringDict, len(vars))
	for k, v := range vars {
		predeclared[k] = starlark.String(v)
	}

	thread := e.thread("load " + name)
	globals, err := starlark.ExecFileOptions(fileOptions, thread, name, src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	e.globals = make(starlark.StringDict, len(predeclared)+len(globals))
	for k, v := range predeclared {
		e.globals[k] = v
	}
	for k, v := range globals {
		e.globals[k] = v
	}
	e.globals.Freeze()

	return e, nil
}

// Globals returns the names visible to placeholders, sorted
func (e *StarlarkEvaluator) Globals() []string {
	return e.globals.Keys()
}

func (e *StarlarkEvaluator) thread(name string) *starlark.Thread {
	thread := &starlark.Thread{Name: name}
	thread.SetMaxExecutionSteps(e.maxSteps)
	return thread
}

// Evaluate implements Evaluator. Cancelling ctx interrupts the running
// Starlark code.
func (e *StarlarkEvaluator) Evaluate(ctx context.Context, call Call) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	thread := e.thread(call.String())
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	var value starlark.Value
	switch call.Kind {
	case KindFragment:
		v, err := starlark.EvalOptions(fileOptions, thread, e.name, call.Text, e.globals)
		if err != nil {
			return "", err
		}
		value = v
	default:
		v, ok := e.globals[call.Text]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownName, call.Text)
		}
		value = v
	}

	fn, callable := value.(starlark.Callable)
	switch {
	case len(call.Args) > 0:
		if !callable {
			return "", fmt.Errorf("%w: %s is a %s", ErrNotCallable, call.Text, value.Type())
		}
		args := make(starlark.Tuple, len(call.Args))
		for i, a := range call.Args {
			args[i] = starlark.String(a)
		}
		v, err := starlark.Call(thread, fn, args, nil)
		if err != nil {
			return "", err
		}
		value = v
	case callable && call.Kind == KindIdent:
		v, err := starlark.Call(thread, fn, nil, nil)
		if err != nil {
			return "", err
		}
		value = v
	}

	return toText(value), nil
}

// toText converts a Starlark result to placeholder text. Strings are
// unquoted; None becomes empty.
func toText(v starlark.Value) string {
	if v == starlark.None {
		return ""
	}
	if s, ok := starlark.AsString(v); ok {
		return s
	}
	return v.String()
}
