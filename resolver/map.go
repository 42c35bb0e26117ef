package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownName is returned for names an evaluator does not define
	ErrUnknownName = errors.New("unknown name")
	// ErrFragmentsUnsupported is returned by evaluators that cannot run code
	ErrFragmentsUnsupported = errors.New("code fragments are not supported")
	// ErrNotCallable is returned when arguments are applied to a plain value
	ErrNotCallable = errors.New("value is not callable")
)

// Func is a function callable from a placeholder chain
type Func func(args ...string) (string, error)

// MapEvaluator resolves names from Go maps. A bare $name reads Vars, then
// falls back to a zero-argument call of Funcs[name]. A name with arguments,
// and every later link of a chain, calls Funcs.
type MapEvaluator struct {
	Vars  map[string]string
	Funcs map[string]Func
}

// Evaluate implements Evaluator
func (m *MapEvaluator) Evaluate(ctx context.Context, call Call) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch call.Kind {
	case KindFragment:
		return "", ErrFragmentsUnsupported
	case KindIdent:
		if len(call.Args) == 0 {
			if v, ok := m.Vars[call.Text]; ok {
				return v, nil
			}
		}
	}

	fn, ok := m.Funcs[call.Text]
	if !ok {
		if _, isVar := m.Vars[call.Text]; isVar {
			return "", fmt.Errorf("%w: %q", ErrNotCallable, call.Text)
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownName, call.Text)
	}
	return fn(call.Args...)
}

// Builtins returns the default function table: upper, lower, trim and
// title, each applied to its last argument. Title casing follows Unicode
// word boundaries.
func Builtins() map[string]Func {
	unary := func(f func(string) string) Func {
		return func(args ...string) (string, error) {
			if len(args) == 0 {
				return "", errors.New("missing argument")
			}
			return f(args[len(args)-1]), nil
		}
	}

	return map[string]Func{
		"upper": unary(strings.ToUpper),
		"lower": unary(strings.ToLower),
		"trim":  unary(strings.TrimSpace),
		"title": unary(func(s string) string { return cases.Title(language.Und).String(s) }),
	}
}
