// Package expression owns the shared grammar that recognizes placeholder
// expressions embedded in arbitrary text. The resolver in pkg/placeholders
// consumes this pattern but does not define it, so every component of the
// platform (header mappings, payload mappings, topic templates) agrees on
// what counts as a placeholder.
//
// Two forms are recognized:
//
//	{{ thing:id }}                     current form
//	${thing:id}                        legacy form, kept for old connector configs
//
// The inner expression of the current form may chain pipeline stages:
//
//	{{ thing:name | fn:substring-before(':') | fn:default(thing:id) }}
package expression

import "regexp"

// Capture group names of Pattern. For any single match exactly one group is
// non-empty; consumers take whichever matched.
const (
	GroupCurrent = "cur"
	GroupLegacy  = "leg"
)

// pattern matches one placeholder occurrence. The current form allows any
// run of non-brace characters between the double braces with optional
// padding; the legacy form is stricter and disallows whitespace.
var pattern = regexp.MustCompile(
	`\{\{\s*(?P<cur>[^{}\s](?:[^{}]*[^{}\s])?)\s*\}\}` + `|` + `\$\{(?P<leg>[^{}\s]+)\}`,
)

// Pattern returns the compiled placeholder pattern. The returned regexp is
// shared and must not be modified.
func Pattern() *regexp.Regexp {
	return pattern
}

// GroupNames enumerates the capture groups of Pattern in declaration order.
func GroupNames() []string {
	return []string{GroupCurrent, GroupLegacy}
}

// ContainsPlaceholder reports whether s contains at least one placeholder
// occurrence in either form.
func ContainsPlaceholder(s string) bool {
	return pattern.MatchString(s)
}
