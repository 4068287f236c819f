package placeholders

// ElementType discriminates the three outcomes of placeholder resolution.
type ElementType int

// Element types.
const (
	// ElementResolved carries a successfully resolved string value.
	ElementResolved ElementType = iota

	// ElementUnresolved signals that no value could be resolved.
	ElementUnresolved

	// ElementDeleted signals that the placeholder explicitly requested
	// deletion of the containing field.
	ElementDeleted
)

// String returns a short name for logging and test output.
func (t ElementType) String() string {
	switch t {
	case ElementResolved:
		return "resolved"
	case ElementUnresolved:
		return "unresolved"
	case ElementDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// PipelineElement is the immutable tri-state result of resolving a
// placeholder or evaluating a pipeline stage. Unresolved and Deleted are
// expected control states, not errors; they are frequent and must be cheaply
// inspectable.
type PipelineElement struct {
	typ   ElementType
	value string
}

// Resolved creates an element carrying a resolved value.
func Resolved(value string) PipelineElement {
	return PipelineElement{typ: ElementResolved, value: value}
}

// Unresolved creates the element signalling resolution failure.
func Unresolved() PipelineElement {
	return PipelineElement{typ: ElementUnresolved}
}

// Deleted creates the element signalling explicit deletion.
func Deleted() PipelineElement {
	return PipelineElement{typ: ElementDeleted}
}

// Type exposes the discriminant for control decisions.
func (e PipelineElement) Type() ElementType { return e.typ }

// Value returns the resolved value. The second return value is false for
// Unresolved and Deleted elements.
func (e PipelineElement) Value() (string, bool) {
	return e.value, e.typ == ElementResolved
}

// Map applies f to the value of a Resolved element and returns the new
// Resolved element. Unresolved and Deleted elements pass through unchanged
// and f is not invoked.
func (e PipelineElement) Map(f func(string) string) PipelineElement {
	if e.typ != ElementResolved {
		return e
	}
	return Resolved(f(e.value))
}

// String renders the element for logging and test output.
func (e PipelineElement) String() string {
	if e.typ == ElementResolved {
		return "resolved(" + e.value + ")"
	}
	return e.typ.String()
}
