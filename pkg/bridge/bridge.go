// Package bridge forwards platform signals to external MQTT brokers.
//
// For every configured target whose topic filters match a signal's topic
// path, the bridge resolves the target's address template and header mapping
// against the signal's placeholders and publishes the enveloped payload.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/thingbus/thingbus/pkg/config"
	"github.com/thingbus/thingbus/pkg/placeholders"
	"github.com/thingbus/thingbus/pkg/protocol"
)

// DefaultPublishTimeout bounds how long a single publish may wait for broker
// acknowledgement.
const DefaultPublishTimeout = 10 * time.Second

// ErrPublishTimeout is returned when the broker does not acknowledge a
// publish within the configured timeout.
var ErrPublishTimeout = errors.New("publish timed out")

// Signal is one outbound platform message.
type Signal struct {
	// Topic is the signal's canonical address.
	Topic protocol.TopicPath

	// Headers are the signal's protocol headers.
	Headers map[string]string

	// Payload is the signal's JSON value, may be nil.
	Payload json.RawMessage
}

// Envelope is the wire form published to external brokers.
type Envelope struct {
	Topic   string            `json:"topic"`
	Headers map[string]string `json:"headers,omitempty"`
	Value   json.RawMessage   `json:"value,omitempty"`
}

// Publisher publishes signals to an external MQTT broker according to a
// connection's targets.
type Publisher struct {
	client  mqtt.Client
	conn    *config.Connection
	logger  *slog.Logger
	timeout time.Duration
}

// NewPublisher creates a publisher over an already configured MQTT client.
// The client's connection lifecycle belongs to the caller.
func NewPublisher(client mqtt.Client, conn *config.Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		client:  client,
		conn:    conn,
		logger:  logger,
		timeout: DefaultPublishTimeout,
	}
}

// SetTimeout overrides the per-publish acknowledgement timeout.
func (p *Publisher) SetTimeout(d time.Duration) { p.timeout = d }

// Publish forwards the signal to every matching target of the connection.
//
// A target address template resolving to Deleted drops the publish for that
// target; an unresolved address is an error, since publishing to a partial
// address would misroute the message. Header mapping entries resolving to
// Deleted or Unresolved are omitted from the published headers.
func (p *Publisher) Publish(signal Signal) error {
	resolver := p.resolverFor(signal)

	for i, target := range p.conn.Targets {
		if !target.MatchesTopic(signal.Topic) {
			continue
		}
		if err := p.publishTo(resolver, target, signal); err != nil {
			return fmt.Errorf("target[%d]: %w", i, err)
		}
	}
	return nil
}

func (p *Publisher) publishTo(resolver *placeholders.Resolver, target config.Target, signal Signal) error {
	address, err := resolver.Resolve(target.Address, false)
	if err != nil {
		return fmt.Errorf("resolving address %q: %w", target.Address, err)
	}
	switch address.Type() {
	case placeholders.ElementDeleted:
		p.logger.Debug("target address resolved to deletion, dropping publish",
			"connection", p.conn.ID, "address", target.Address, "topic", signal.Topic.Path())
		return nil
	case placeholders.ElementUnresolved:
		return &placeholders.UnresolvedExpressionError{Template: target.Address}
	}
	addr, _ := address.Value()

	headers, err := p.resolveHeaders(resolver, target.HeaderMapping)
	if err != nil {
		return err
	}

	envelope := Envelope{
		Topic:   signal.Topic.Path(),
		Headers: headers,
		Value:   signal.Payload,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	token := p.client.Publish(addr, byte(target.QoS), false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("%w: %s", ErrPublishTimeout, addr)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", addr, err)
	}

	p.logger.Debug("published signal",
		"connection", p.conn.ID, "address", addr, "topic", signal.Topic.Path(), "qos", target.QoS)
	return nil
}

// resolveHeaders applies the target's header mapping. Deleted and unresolved
// values drop the header rather than the message; a header is enrichment, not
// routing.
func (p *Publisher) resolveHeaders(resolver *placeholders.Resolver, mapping map[string]string) (map[string]string, error) {
	if len(mapping) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(mapping))
	for name, template := range mapping {
		element, err := resolver.Resolve(template, false)
		if err != nil {
			return nil, fmt.Errorf("resolving header %q: %w", name, err)
		}
		if value, ok := element.Value(); ok {
			headers[name] = value
		}
	}
	return headers, nil
}

// resolverFor builds the placeholder set visible to the signal's templates.
func (p *Publisher) resolverFor(signal Signal) *placeholders.Resolver {
	sources := []placeholders.Placeholder{
		placeholders.NewThingPlaceholder(signal.Topic.Namespace(), signal.Topic.EntityName()),
		placeholders.NewHeadersPlaceholder(signal.Headers),
		placeholders.NewTopicPlaceholder(signal.Topic),
		placeholders.NewTimePlaceholder(),
		placeholders.NewRequestPlaceholder(signal.Headers["requester"], signal.Headers["correlation-id"]),
	}
	if p.conn.MaxPipelineStages > 0 {
		return placeholders.NewResolverWithLimit(p.conn.MaxPipelineStages, sources...)
	}
	return placeholders.NewResolver(sources...)
}
