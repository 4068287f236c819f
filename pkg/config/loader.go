package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thingbus/thingbus/pkg/placeholders"
	"github.com/thingbus/thingbus/pkg/protocol"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("connection file not found")
	ErrEmptyFile    = errors.New("connection file is empty")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// LoadFromFile reads a Connection from a JSON or YAML file. The format is
// detected from the file extension (.yaml/.yml for YAML, otherwise JSON).
func LoadFromFile(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML decodes a Connection from YAML.
func ParseYAML(data []byte) (*Connection, error) {
	var conn Connection
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &conn, nil
}

// ParseJSON decodes a Connection from JSON.
func ParseJSON(data []byte) (*Connection, error) {
	var conn Connection
	if err := json.Unmarshal(data, &conn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &conn, nil
}

// ValidationError reports an invalid connection field.
type ValidationError struct {
	// Field locates the offending field, e.g. "targets[0].address".
	Field string

	// Message describes what is wrong.
	Message string

	// Cause optionally carries the underlying template or path error.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("connection validation failed: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("connection validation failed: %s: %s", e.Field, e.Message)
}

// Unwrap exposes the underlying cause for errors.As chains.
func (e *ValidationError) Unwrap() error { return e.Cause }

// Validate checks the connection's structure and every placeholder template
// in it against the given resolver's grammar, registered sources and stage
// limit. Unresolvable values do not fail validation; they depend on runtime
// message data.
func (c *Connection) Validate(resolver *placeholders.Resolver) error {
	if c.ID == "" {
		return &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if len(c.Sources) == 0 && len(c.Targets) == 0 {
		return &ValidationError{Field: "sources", Message: "connection needs at least one source or target"}
	}

	for i, src := range c.Sources {
		if len(src.Addresses) == 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("sources[%d].addresses", i),
				Message: "must not be empty",
			}
		}
		for name, template := range src.HeaderMapping {
			if err := resolver.Validate(template); err != nil {
				return &ValidationError{
					Field:   fmt.Sprintf("sources[%d].headerMapping[%s]", i, name),
					Message: "invalid template",
					Cause:   err,
				}
			}
		}
	}

	for i, tgt := range c.Targets {
		if tgt.Address == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("targets[%d].address", i),
				Message: "must not be empty",
			}
		}
		if err := resolver.Validate(tgt.Address); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("targets[%d].address", i),
				Message: "invalid template",
				Cause:   err,
			}
		}
		for j, topic := range tgt.Topics {
			if err := validateTopicFilter(topic); err != nil {
				return &ValidationError{
					Field:   fmt.Sprintf("targets[%d].topics[%d]", i, j),
					Message: "invalid topic filter",
					Cause:   err,
				}
			}
		}
		for name, template := range tgt.HeaderMapping {
			if err := resolver.Validate(template); err != nil {
				return &ValidationError{
					Field:   fmt.Sprintf("targets[%d].headerMapping[%s]", i, name),
					Message: "invalid template",
					Cause:   err,
				}
			}
		}
	}
	return nil
}

// validateTopicFilter checks a topic filter entry. The namespace and entity
// segments may be the wildcard "_", standing for any entity; the rest must
// form a parseable topic path.
func validateTopicFilter(filter string) error {
	segments := strings.Split(filter, protocol.PathDelimiter)
	for i, seg := range segments {
		if i < 2 && seg == "_" {
			segments[i] = "any"
		}
	}
	_, err := protocol.ParseTopicPath(strings.Join(segments, protocol.PathDelimiter))
	return err
}

// MatchesTopic reports whether the given topic path passes the target's
// Topics filters. A target without filters forwards everything.
func (t Target) MatchesTopic(tp protocol.TopicPath) bool {
	if len(t.Topics) == 0 {
		return true
	}
	for _, filter := range t.Topics {
		if topicFilterMatches(filter, tp) {
			return true
		}
	}
	return false
}

func topicFilterMatches(filter string, tp protocol.TopicPath) bool {
	want := strings.Split(filter, protocol.PathDelimiter)
	got := strings.Split(tp.Path(), protocol.PathDelimiter)
	if len(want) > len(got) {
		return false
	}
	for i, seg := range want {
		if i < 2 && seg == "_" {
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
