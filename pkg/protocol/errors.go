package protocol

import "fmt"

// Segment and value-category names used in parse errors.
const (
	SegmentNamespace    = "namespace"
	SegmentEntityName   = "entity name"
	SegmentGroup        = "group"
	SegmentChannel      = "channel"
	SegmentCriterion    = "criterion"
	SegmentAction       = "action"
	SegmentSearchAction = "search action"
)

// MissingSegmentError reports a topic path that ends before a required
// segment.
type MissingSegmentError struct {
	// Path is the original input string.
	Path string

	// Segment names the missing part.
	Segment string
}

// Error implements the error interface.
func (e *MissingSegmentError) Error() string {
	return fmt.Sprintf("invalid topic path %q: the topic path has no %s part", e.Path, e.Segment)
}

// UnknownValueError reports a segment whose text matches no known enumerator
// of its category.
type UnknownValueError struct {
	// Path is the original input string.
	Path string

	// Value is the raw segment text.
	Value string

	// Category names the expected enumeration (group, channel, ...).
	Category string
}

// Error implements the error interface.
func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("invalid topic path %q: %s name %q is unknown", e.Path, e.Category, e.Value)
}

// InvalidStateError reports a builder invariant violation detected at Build
// time.
type InvalidStateError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return "invalid topic path: " + e.Reason
}
