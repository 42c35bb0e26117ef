package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tsawler/docmark/model"
)

// Kind tells an evaluator how to interpret Call.Text
type Kind int

const (
	// KindIdent is a placeholder name written $name
	KindIdent Kind = iota
	// KindFragment is raw code written ${code}
	KindFragment
	// KindValue is the result of a previous call, applied to further arguments
	KindValue
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "Ident"
	case KindFragment:
		return "Fragment"
	case KindValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Call is a single request to an evaluator
type Call struct {
	Kind Kind
	Text string
	Args []string
}

// String renders the call for messages, e.g. `$foo("a")`
func (c Call) String() string {
	var sb strings.Builder
	switch c.Kind {
	case KindIdent:
		sb.WriteString("$" + c.Text)
	case KindFragment:
		sb.WriteString("${" + c.Text + "}")
	default:
		sb.WriteString(fmt.Sprintf("%q", c.Text))
	}
	if len(c.Args) > 0 {
		sb.WriteByte('(')
		for i, a := range c.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%q", a))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// Evaluator computes the text of a placeholder call
type Evaluator interface {
	Evaluate(ctx context.Context, call Call) (string, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface
type EvaluatorFunc func(ctx context.Context, call Call) (string, error)

// Evaluate calls f(ctx, call)
func (f EvaluatorFunc) Evaluate(ctx context.Context, call Call) (string, error) {
	return f(ctx, call)
}

// ErrInvalidChain reports a chain that the parser could not have produced
var ErrInvalidChain = errors.New("invalid placeholder chain")

// EvaluationError wraps a failed evaluator call
type EvaluationError struct {
	Call   Call
	Offset int // source offset of the chain containing the call
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating %s at offset %d: %v", e.Call, e.Offset, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Resolver resolves placeholder chains through an evaluator
type Resolver struct {
	eval   Evaluator
	logger *slog.Logger
}

// Option configures the resolver
type Option func(*Resolver)

// WithLogger sets the logger used for per-call debug records
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver that calls eval
func New(eval Evaluator, opts ...Option) *Resolver {
	r := &Resolver{
		eval:   eval,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve computes the value of a chain. Calls are made in order,
// innermost argument first, and the first error stops resolution.
func (r *Resolver) Resolve(ctx context.Context, chain model.Chain) (string, error) {
	if len(chain.Operands) == 0 {
		return "", fmt.Errorf("%w at offset %d: no operands", ErrInvalidChain, chain.Pos)
	}

	base := chain.Base()
	call := Call{Text: base.Text}
	switch base.Kind {
	case model.OperandIdent:
		call.Kind = KindIdent
	case model.OperandFragment:
		call.Kind = KindFragment
	default:
		return "", fmt.Errorf("%w at offset %d: base must be a name or a fragment", ErrInvalidChain, chain.Pos)
	}

	args := chain.Args()
	if len(args) == 0 {
		return r.call(ctx, call, chain.Pos)
	}

	var result string
	for i, op := range args {
		arg, err := r.argument(ctx, op, chain.Pos)
		if err != nil {
			return "", err
		}
		if i > 0 {
			call = Call{Kind: KindValue, Text: result}
		}
		call.Args = []string{arg}

		result, err = r.call(ctx, call, chain.Pos)
		if err != nil {
			return "", err
		}
	}
	return result, nil
}

// argument returns the string passed to an evaluator for op
func (r *Resolver) argument(ctx context.Context, op model.Operand, pos int) (string, error) {
	switch op.Kind {
	case model.OperandIdent, model.OperandFragment, model.OperandString:
		return op.Text, nil
	case model.OperandChain:
		if op.Chain == nil {
			return "", fmt.Errorf("%w at offset %d: empty nested chain", ErrInvalidChain, pos)
		}
		return r.Resolve(ctx, *op.Chain)
	}
	return "", fmt.Errorf("%w at offset %d: unknown operand kind %d", ErrInvalidChain, pos, op.Kind)
}

func (r *Resolver) call(ctx context.Context, call Call, pos int) (string, error) {
	if r.eval == nil {
		return "", &EvaluationError{Call: call, Offset: pos, Err: errors.New("no evaluator configured")}
	}

	out, err := r.eval.Evaluate(ctx, call)
	if err != nil {
		r.logger.DebugContext(ctx, "placeholder call failed", "call", call.String(), "offset", pos, "error", err)
		return "", &EvaluationError{Call: call, Offset: pos, Err: err}
	}
	r.logger.DebugContext(ctx, "placeholder call", "call", call.String(), "offset", pos, "result", out)
	return out, nil
}
