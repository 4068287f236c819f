package placeholders

import "strings"

// FilterFunction is a named pure predicate usable inside fn:filter pipeline
// stages. The set of functions is closed at build time: templates originate
// from partially trusted configuration, and an open function namespace would
// make evaluation unpredictable.
type FilterFunction interface {
	// Name identifies the function for FromName lookup.
	Name() string

	// Apply evaluates the predicate over the given parameters. A wrong
	// parameter count yields an *InvalidArgumentCountError.
	Apply(parameters ...string) (bool, error)
}

// filterFunctions is the closed registry. No runtime registration.
var filterFunctions = []FilterFunction{
	eqFunction{},
	neFunction{},
	existsFunction{},
	likeFunction{},
}

// FromName looks up a filter function by exact name match. The second return
// value is false when the name is not registered.
func FromName(name string) (FilterFunction, bool) {
	for _, fn := range filterFunctions {
		if fn.Name() == name {
			return fn, true
		}
	}
	return nil, false
}

// eqFunction keeps the value if both parameters are equal.
type eqFunction struct{}

func (eqFunction) Name() string { return "eq" }

func (eqFunction) Apply(parameters ...string) (bool, error) {
	if len(parameters) != 2 {
		return false, &InvalidArgumentCountError{Function: "eq", Expected: "exactly 2", Got: len(parameters)}
	}
	return parameters[0] == parameters[1], nil
}

// neFunction keeps the value if both parameters differ. It is the exact
// negation of eq.
type neFunction struct{}

func (neFunction) Name() string { return "ne" }

func (neFunction) Apply(parameters ...string) (bool, error) {
	if len(parameters) != 2 {
		return false, &InvalidArgumentCountError{Function: "ne", Expected: "exactly 2", Got: len(parameters)}
	}
	return parameters[0] != parameters[1], nil
}

// existsFunction keeps the value if its single parameter is non-empty.
type existsFunction struct{}

func (existsFunction) Name() string { return "exists" }

func (existsFunction) Apply(parameters ...string) (bool, error) {
	if len(parameters) != 1 {
		return false, &InvalidArgumentCountError{Function: "exists", Expected: "exactly 1", Got: len(parameters)}
	}
	return parameters[0] != "", nil
}

// likeFunction keeps the value if it matches a glob pattern where '*' matches
// any run of characters.
type likeFunction struct{}

func (likeFunction) Name() string { return "like" }

func (likeFunction) Apply(parameters ...string) (bool, error) {
	if len(parameters) != 2 {
		return false, &InvalidArgumentCountError{Function: "like", Expected: "exactly 2", Got: len(parameters)}
	}
	return matchWildcard(parameters[1], parameters[0]), nil
}

// matchWildcard performs simple wildcard pattern matching. '*' matches any
// sequence of characters.
func matchWildcard(pattern, value string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == value
	}

	if !strings.HasPrefix(value, parts[0]) {
		return false
	}
	value = value[len(parts[0]):]

	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(value, part)
		if idx < 0 {
			return false
		}
		value = value[idx+len(part):]
	}

	return strings.HasSuffix(value, parts[len(parts)-1])
}
