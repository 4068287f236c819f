// Package config loads and validates connection configuration: the mappings
// that tell a connector which external addresses to consume from, which
// topic-path filters to forward, and how to rewrite headers and target
// addresses using placeholder templates.
package config

// Connection describes one connector instance.
type Connection struct {
	// ID uniquely identifies the connection.
	ID string `json:"id" yaml:"id"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Sources consume messages from external addresses into the platform.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Targets publish platform signals to external addresses.
	Targets []Target `json:"targets,omitempty" yaml:"targets,omitempty"`

	// MaxPipelineStages optionally overrides the per-expression pipeline
	// stage limit for this connection's templates. Zero means the default.
	MaxPipelineStages int `json:"maxPipelineStages,omitempty" yaml:"maxPipelineStages,omitempty"`
}

// Source consumes messages from external addresses.
type Source struct {
	// Addresses are the external addresses to consume from.
	Addresses []string `json:"addresses" yaml:"addresses"`

	// HeaderMapping maps external message headers onto internal ones.
	// Values are placeholder templates.
	HeaderMapping map[string]string `json:"headerMapping,omitempty" yaml:"headerMapping,omitempty"`
}

// Target publishes signals whose topic path matches one of the Topics
// filters to an external address.
type Target struct {
	// Address is the external address to publish to. It is a placeholder
	// template, e.g. "devices/{{ thing:name }}/{{ topic:criterion }}".
	Address string `json:"address" yaml:"address"`

	// Topics filters the forwarded signals by canonical topic path. Each
	// entry must itself be a parseable topic path; entity segments may use
	// the placeholder syntax, e.g. "_/_/things/twin/events/modified" is
	// expressed as a template over the addressed entity.
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty"`

	// HeaderMapping maps internal signal headers onto external ones.
	// Values are placeholder templates.
	HeaderMapping map[string]string `json:"headerMapping,omitempty" yaml:"headerMapping,omitempty"`

	// QoS is the delivery quality of service for brokers that support it.
	QoS int `json:"qos,omitempty" yaml:"qos,omitempty"`
}
