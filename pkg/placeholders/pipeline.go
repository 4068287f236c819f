package placeholders

import (
	"regexp"
	"strings"
)

// DefaultMaxPipelineStages caps the number of chained fn: stages per
// expression. The cap bounds worst-case evaluation cost against pathological
// or adversarial template input and is checked before any stage executes.
const DefaultMaxPipelineStages = 10

// stagePattern matches one pipeline stage: fn:<name> or fn:<name>(<args>).
var stagePattern = regexp.MustCompile(`^fn:([a-z0-9-]+)(?:\((.*)\))?$`)

// splitStages splits an expression on top-level '|' separators, leaving
// separators inside quotes or parentheses intact. Each stage is returned
// trimmed.
func splitStages(expr string) []string {
	var stages []string
	var current strings.Builder
	depth := 0
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case inQuote:
			current.WriteByte(ch)
			if ch == quoteChar {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteChar = ch
			current.WriteByte(ch)
		case ch == '(':
			depth++
			current.WriteByte(ch)
		case ch == ')':
			depth--
			current.WriteByte(ch)
		case ch == '|' && depth == 0:
			stages = append(stages, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	stages = append(stages, strings.TrimSpace(current.String()))
	return stages
}

// splitArgs splits function arguments separated by commas, respecting quoted
// strings.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			current.WriteByte(ch)
			if ch == quoteChar {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteChar = ch
			current.WriteByte(ch)
		case ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	args = append(args, strings.TrimSpace(current.String()))
	return args
}

// parseStage decomposes one pipeline stage into its function name and raw
// argument list.
func parseStage(stage string) (name string, args []string, err error) {
	m := stagePattern.FindStringSubmatch(stage)
	if m == nil {
		return "", nil, &MalformedExpressionError{
			Expression: stage,
			Reason:     "pipeline stage must have the form fn:<name>(<args>)",
		}
	}
	return m[1], splitArgs(m[2]), nil
}

// isQuoted reports whether s is a single- or double-quoted literal.
func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"')
}

// unquote strips the surrounding quotes of a quoted literal.
func unquote(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// evaluatePipeline runs the fn: stages over the first element, left to right.
// The caller has already enforced the stage-count limit. A Deleted element
// aborts the pipeline immediately; an Unresolved element flows on, since
// stages like fn:default exist to rescue it.
func (r *Resolver) evaluatePipeline(element PipelineElement, stages []string) (PipelineElement, error) {
	for _, stage := range stages {
		if element.Type() == ElementDeleted {
			return element, nil
		}
		name, args, err := parseStage(stage)
		if err != nil {
			return Unresolved(), err
		}
		fn, ok := pipelineFunctionForName(name)
		if !ok {
			return Unresolved(), &UnknownFunctionError{Name: name}
		}
		element, err = fn.apply(r, element, args)
		if err != nil {
			return Unresolved(), err
		}
	}
	return element, nil
}
