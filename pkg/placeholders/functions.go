package placeholders

import "strings"

// pipelineFunction is one entry of the closed fn: stage catalog.
type pipelineFunction interface {
	name() string
	apply(r *Resolver, element PipelineElement, args []string) (PipelineElement, error)
}

// pipelineFunctions is the closed registry of fn: stages. No runtime
// registration; see the package comment.
var pipelineFunctions = []pipelineFunction{
	defaultFunction{},
	upperFunction{},
	lowerFunction{},
	trimFunction{},
	substringBeforeFunction{},
	substringAfterFunction{},
	deleteFunction{},
	filterFunction{},
}

func pipelineFunctionForName(name string) (pipelineFunction, bool) {
	for _, fn := range pipelineFunctions {
		if fn.name() == name {
			return fn, true
		}
	}
	return nil, false
}

// resolveArg resolves a stage argument: a quoted string is a literal, a
// <prefix>:<key> reference is resolved against the registered placeholders,
// anything else is taken verbatim. An unresolvable reference yields
// Unresolved.
func resolveArg(r *Resolver, arg string) PipelineElement {
	if isQuoted(arg) {
		return Resolved(unquote(arg))
	}
	if prefix, key, ok := strings.Cut(arg, ":"); ok {
		if ph, registered := r.placeholders[prefix]; registered {
			if candidates := ph.Resolve(key); len(candidates) > 0 {
				return Resolved(candidates[0])
			}
			return Unresolved()
		}
	}
	return Resolved(arg)
}

// defaultFunction substitutes its parameter when the incoming element is
// unresolved. A resolved element passes through untouched.
type defaultFunction struct{}

func (defaultFunction) name() string { return "default" }

func (defaultFunction) apply(r *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	if len(args) != 1 {
		return Unresolved(), &InvalidArgumentCountError{Function: "default", Expected: "exactly 1", Got: len(args)}
	}
	if element.Type() != ElementUnresolved {
		return element, nil
	}
	return resolveArg(r, args[0]), nil
}

// upperFunction maps the resolved value to upper case.
type upperFunction struct{}

func (upperFunction) name() string { return "upper" }

func (upperFunction) apply(_ *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	if len(args) != 0 {
		return Unresolved(), &InvalidArgumentCountError{Function: "upper", Expected: "no", Got: len(args)}
	}
	return element.Map(strings.ToUpper), nil
}

// lowerFunction maps the resolved value to lower case.
type lowerFunction struct{}

func (lowerFunction) name() string { return "lower" }

func (lowerFunction) apply(_ *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	if len(args) != 0 {
		return Unresolved(), &InvalidArgumentCountError{Function: "lower", Expected: "no", Got: len(args)}
	}
	return element.Map(strings.ToLower), nil
}

// trimFunction strips surrounding whitespace from the resolved value.
type trimFunction struct{}

func (trimFunction) name() string { return "trim" }

func (trimFunction) apply(_ *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	if len(args) != 0 {
		return Unresolved(), &InvalidArgumentCountError{Function: "trim", Expected: "no", Got: len(args)}
	}
	return element.Map(strings.TrimSpace), nil
}

// substringBeforeFunction keeps the part of the value before the first
// occurrence of its parameter. A value not containing the parameter becomes
// unresolved.
type substringBeforeFunction struct{}

func (substringBeforeFunction) name() string { return "substring-before" }

func (substringBeforeFunction) apply(r *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	return applySubstring(r, "substring-before", element, args, func(value, sep string) (string, bool) {
		before, _, found := strings.Cut(value, sep)
		return before, found
	})
}

// substringAfterFunction keeps the part of the value after the first
// occurrence of its parameter.
type substringAfterFunction struct{}

func (substringAfterFunction) name() string { return "substring-after" }

func (substringAfterFunction) apply(r *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	return applySubstring(r, "substring-after", element, args, func(value, sep string) (string, bool) {
		_, after, found := strings.Cut(value, sep)
		return after, found
	})
}

func applySubstring(r *Resolver, fnName string, element PipelineElement, args []string,
	cut func(value, sep string) (string, bool)) (PipelineElement, error) {

	if len(args) != 1 {
		return Unresolved(), &InvalidArgumentCountError{Function: fnName, Expected: "exactly 1", Got: len(args)}
	}
	value, ok := element.Value()
	if !ok {
		return element, nil
	}
	sep, ok := resolveArg(r, args[0]).Value()
	if !ok {
		return Unresolved(), nil
	}
	part, found := cut(value, sep)
	if !found {
		return Unresolved(), nil
	}
	return Resolved(part), nil
}

// deleteFunction collapses the element into an explicit deletion.
type deleteFunction struct{}

func (deleteFunction) name() string { return "delete" }

func (deleteFunction) apply(_ *Resolver, _ PipelineElement, args []string) (PipelineElement, error) {
	if len(args) != 0 {
		return Unresolved(), &InvalidArgumentCountError{Function: "delete", Expected: "no", Got: len(args)}
	}
	return Deleted(), nil
}

// filterFunction keeps the incoming value when a FilterFunction predicate
// holds and yields Unresolved otherwise. Accepted forms:
//
//	fn:filter('<fn>')                      predicate over the current value
//	fn:filter('<fn>', <compared>)          current value against compared
//	fn:filter(<value>, '<fn>', <compared>) explicit value against compared
type filterFunction struct{}

func (filterFunction) name() string { return "filter" }

func (filterFunction) apply(r *Resolver, element PipelineElement, args []string) (PipelineElement, error) {
	fnName, params, err := filterInvocation(r, element, args)
	if err != nil {
		return Unresolved(), err
	}
	fn, ok := FromName(fnName)
	if !ok {
		return Unresolved(), &UnknownFunctionError{Name: fnName}
	}
	keep, err := fn.Apply(params...)
	if err != nil {
		return Unresolved(), err
	}
	if !keep {
		return Unresolved(), nil
	}
	return element, nil
}

// filterInvocation normalizes the three accepted argument forms into a
// predicate name and its parameter list. Unresolvable parameters become empty
// strings so predicates observe absence rather than aborting.
func filterInvocation(r *Resolver, element PipelineElement, args []string) (string, []string, error) {
	current, _ := element.Value()

	switch len(args) {
	case 1:
		return unquote(args[0]), []string{current}, nil
	case 2:
		return unquote(args[0]), []string{current, argOrEmpty(r, args[1])}, nil
	case 3:
		return unquote(args[1]), []string{argOrEmpty(r, args[0]), argOrEmpty(r, args[2])}, nil
	default:
		return "", nil, &InvalidArgumentCountError{Function: "filter", Expected: "1 to 3", Got: len(args)}
	}
}

func argOrEmpty(r *Resolver, arg string) string {
	value, _ := resolveArg(r, arg).Value()
	return value
}
