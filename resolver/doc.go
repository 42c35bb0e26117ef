// Package resolver turns placeholder chains into text by calling an
// injected [Evaluator].
//
// # Chains
//
// A chain is a base operand followed by zero or more arguments, written
// with "!" in source:
//
//	$name            one call: {KindIdent, "name", nil}
//	$foo!$a!$b       two calls: {KindIdent, "foo", [a]} then {KindValue, r1, [b]}
//	${1 + 2}         one call: {KindFragment, "1 + 2", nil}
//	$upper!($name)   the nested chain is resolved first, then passed as the argument
//
// Application folds left. The first call receives the base and the first
// argument; each later call receives the previous result as a [KindValue]
// name and the next argument. Identifier arguments pass their name,
// fragments their raw code and strings their literal value.
//
// # Evaluators
//
// Two evaluators are provided. [MapEvaluator] looks names up in Go maps:
//
//	ev := &resolver.MapEvaluator{
//		Vars:  map[string]string{"version": "1.2"},
//		Funcs: resolver.Builtins(),
//	}
//
// [StarlarkEvaluator] runs a Starlark module and evaluates fragments as
// Starlark expressions against its globals:
//
//	ev, err := resolver.NewStarlarkEvaluator("env.star", src, vars,
//		resolver.WithMaxSteps(10000))
//
// # Errors
//
// The first failing call stops resolution. Its error is returned as an
// [*EvaluationError] carrying the call and the chain's source offset;
// errors.Unwrap yields the evaluator's error unchanged.
package resolver
