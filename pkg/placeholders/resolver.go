package placeholders

import (
	"strings"

	"github.com/thingbus/thingbus/pkg/expression"
)

// Resolver resolves placeholder expressions against a set of registered
// placeholder sources and the closed pipeline function catalog. A Resolver is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	placeholders map[string]Placeholder
	maxStages    int
}

// NewResolver creates a resolver over the given placeholder sources with the
// default pipeline stage limit. A later source with the same prefix replaces
// an earlier one.
func NewResolver(sources ...Placeholder) *Resolver {
	return NewResolverWithLimit(DefaultMaxPipelineStages, sources...)
}

// NewResolverWithLimit creates a resolver with an explicit pipeline stage
// limit. Limits below one fall back to the default.
func NewResolverWithLimit(maxStages int, sources ...Placeholder) *Resolver {
	if maxStages < 1 {
		maxStages = DefaultMaxPipelineStages
	}
	placeholders := make(map[string]Placeholder, len(sources))
	for _, src := range sources {
		placeholders[src.Prefix()] = src
	}
	return &Resolver{placeholders: placeholders, maxStages: maxStages}
}

// ResolveExpression resolves a single pipeline expression of the form
// <source>:<key> [| fn:<name>(<args>)]*, without any surrounding {{ }}
// delimiters.
//
// An unknown source prefix is a configuration error and returns
// *UnknownPlaceholderError. A key the source does not support, or one it
// cannot supply a value for, yields an Unresolved element, which later
// fn:default stages may still rescue.
func (r *Resolver) ResolveExpression(expr string) (PipelineElement, error) {
	stages := splitStages(expr)
	if len(stages)-1 > r.maxStages {
		return Unresolved(), &TooComplexError{
			Expression: expr,
			Stages:     len(stages) - 1,
			MaxStages:  r.maxStages,
		}
	}

	first := stages[0]
	prefix, key, ok := strings.Cut(first, ":")
	if !ok || prefix == "" || key == "" {
		return Unresolved(), &MalformedExpressionError{
			Expression: expr,
			Reason:     "expression must start with <source>:<key>",
		}
	}
	ph, ok := r.placeholders[prefix]
	if !ok {
		return Unresolved(), &UnknownPlaceholderError{Expression: expr, Prefix: prefix}
	}

	element := Unresolved()
	if ph.Supports(key) {
		if candidates := ph.Resolve(key); len(candidates) > 0 {
			element = Resolved(candidates[0])
		}
	}

	return r.evaluatePipeline(element, stages[1:])
}

// Resolve scans template for placeholder expressions, resolves each through
// ResolveExpression and substitutes the outcomes.
//
// A Deleted expression deletes the whole template result. An Unresolved
// expression aborts resolution unless allowUnresolved is set, in which case
// the original matched text stays in the output unchanged.
func (r *Resolver) Resolve(template string, allowUnresolved bool) (PipelineElement, error) {
	return Substitute(template, allowUnresolved, r.ResolveExpression)
}

// ResolveRequired resolves template and demands a fully resolved string.
// An unresolved expression yields *UnresolvedExpressionError, a deletion
// yields ErrDeleted.
func (r *Resolver) ResolveRequired(template string) (string, error) {
	element, err := r.Resolve(template, false)
	if err != nil {
		return "", err
	}
	switch element.Type() {
	case ElementDeleted:
		return "", ErrDeleted
	case ElementUnresolved:
		return "", &UnresolvedExpressionError{Template: template}
	}
	value, _ := element.Value()
	return value, nil
}

// Validate checks that every placeholder expression in template parses, names
// a registered source and stays within the pipeline stage limit, without
// producing output. Unresolvable values are not a validation failure; they
// depend on runtime data.
func (r *Resolver) Validate(template string) error {
	_, err := Substitute(template, true, func(expr string) (PipelineElement, error) {
		stages := splitStages(expr)
		first := stages[0]
		prefix, key, ok := strings.Cut(first, ":")
		if !ok || prefix == "" || key == "" {
			return Unresolved(), &MalformedExpressionError{
				Expression: expr,
				Reason:     "expression must start with <source>:<key>",
			}
		}
		if _, ok := r.placeholders[prefix]; !ok {
			return Unresolved(), &UnknownPlaceholderError{Expression: expr, Prefix: prefix}
		}
		rest := stages[1:]
		if len(rest) > r.maxStages {
			return Unresolved(), &TooComplexError{Expression: expr, Stages: len(rest), MaxStages: r.maxStages}
		}
		for _, stage := range rest {
			name, _, err := parseStage(stage)
			if err != nil {
				return Unresolved(), err
			}
			if _, ok := pipelineFunctionForName(name); !ok {
				return Unresolved(), &UnknownFunctionError{Name: name}
			}
		}
		return Resolved(""), nil
	})
	return err
}

// Substitute performs one forward scan over input, invoking fn exactly once
// per placeholder occurrence, in order, and threading the outcomes into an
// output buffer:
//
//   - a Deleted element aborts immediately and deletes the whole result,
//   - an Unresolved element aborts unless allowUnresolved is set, in which
//     case the matched text is kept verbatim,
//   - a Resolved value is appended literally, never re-interpreted as a
//     pattern, so resolved content cannot inject further placeholders.
//
// Text outside placeholder occurrences is copied through unchanged.
func Substitute(input string, allowUnresolved bool, fn func(expr string) (PipelineElement, error)) (PipelineElement, error) {
	pattern := expression.Pattern()
	matches := pattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return Resolved(input), nil
	}

	var out strings.Builder
	last := 0
	for _, match := range matches {
		expr, err := matchedExpression(input, match)
		if err != nil {
			return Unresolved(), err
		}
		element, err := fn(expr)
		if err != nil {
			return Unresolved(), err
		}
		switch element.Type() {
		case ElementDeleted:
			return Deleted(), nil
		case ElementUnresolved:
			if !allowUnresolved {
				return Unresolved(), nil
			}
			// keep the literal span and the original matched text
			out.WriteString(input[last:match[1]])
		case ElementResolved:
			out.WriteString(input[last:match[0]])
			value, _ := element.Value()
			out.WriteString(value)
		}
		last = match[1]
	}
	out.WriteString(input[last:])
	return Resolved(out.String()), nil
}

// matchedExpression extracts the inner expression from the single non-empty
// capture group of a match. The grammar guarantees the groups are mutually
// exclusive; more than one non-empty group is an internal-consistency fault,
// reported as ErrAmbiguousMatch rather than resolved by guessing precedence.
func matchedExpression(input string, match []int) (string, error) {
	pattern := expression.Pattern()
	expr := ""
	found := false
	for _, name := range expression.GroupNames() {
		idx := pattern.SubexpIndex(name)
		start, end := match[2*idx], match[2*idx+1]
		if start < 0 {
			continue
		}
		if found {
			return "", ErrAmbiguousMatch
		}
		expr = input[start:end]
		found = true
	}
	return expr, nil
}
