// Package placeholders resolves {{ ... }} placeholder expressions embedded in
// connector configuration templates: header mappings, payload mappings and
// address templates.
//
// An expression names a placeholder source and key, optionally followed by a
// pipeline of chained functions:
//
//	{{ thing:id }}
//	{{ header:device_id }}
//	{{ thing:name | fn:substring-before(':') | fn:default(thing:name) }}
//	{{ header:unknown | fn:default('fallback') }}
//
// Resolving a placeholder yields a tri-state PipelineElement: a resolved
// value, an explicit deletion, or unresolved. The outcome of a single
// expression propagates through the whole template: a deleted placeholder
// deletes the template result, an unresolved one either aborts resolution or
// is left in place verbatim, depending on the caller.
//
// Templates originate from partially trusted connector configuration, so the
// function namespace is closed (no runtime registration) and the number of
// chained pipeline stages per expression is capped.
//
// All resolution is synchronous and free of shared mutable state; a Resolver
// and the values it produces are safe for concurrent use.
package placeholders
