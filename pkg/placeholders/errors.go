package placeholders

import "fmt"

// Error is a simple error type for resolution errors that carry no data.
// It allows defining sentinel errors as constants.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors.
const (
	// ErrAmbiguousMatch is returned when the shared placeholder pattern,
	// contrary to its contract, produced more than one non-empty capture
	// group for a single occurrence.
	ErrAmbiguousMatch = Error("placeholder pattern matched more than one capture group")

	// ErrDeleted is returned by ResolveRequired when the template resolved
	// to an explicit deletion.
	ErrDeleted = Error("template resolved to deletion")
)

// TooComplexError reports an expression whose pipeline exceeds the configured
// stage limit. It is raised before any stage executes.
type TooComplexError struct {
	Expression string
	Stages     int
	MaxStages  int
}

// Error implements the error interface.
func (e *TooComplexError) Error() string {
	return fmt.Sprintf("expression %q chains %d pipeline stages, at most %d are allowed",
		e.Expression, e.Stages, e.MaxStages)
}

// UnknownPlaceholderError reports an expression whose source prefix matches
// no registered placeholder.
type UnknownPlaceholderError struct {
	Expression string
	Prefix     string
}

// Error implements the error interface.
func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("expression %q references unknown placeholder source %q", e.Expression, e.Prefix)
}

// UnknownFunctionError reports a pipeline stage naming a function outside the
// closed registry.
type UnknownFunctionError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown pipeline function %q", e.Name)
}

// InvalidArgumentCountError reports a function invoked with the wrong number
// of parameters.
type InvalidArgumentCountError struct {
	Function string
	Expected string
	Got      int
}

// Error implements the error interface.
func (e *InvalidArgumentCountError) Error() string {
	return fmt.Sprintf("function %q expects %s parameters, got %d", e.Function, e.Expected, e.Got)
}

// MalformedExpressionError reports an expression or pipeline stage that does
// not follow the <source>:<key> [| fn:<name>(<args>)]* grammar.
type MalformedExpressionError struct {
	Expression string
	Reason     string
}

// Error implements the error interface.
func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed expression %q: %s", e.Expression, e.Reason)
}

// UnresolvedExpressionError reports a template that could not be fully
// resolved where unresolved expressions are disallowed.
type UnresolvedExpressionError struct {
	Template string
}

// Error implements the error interface.
func (e *UnresolvedExpressionError) Error() string {
	return fmt.Sprintf("template %q could not be fully resolved", e.Template)
}
