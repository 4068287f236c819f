package placeholders

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thingbus/thingbus/pkg/protocol"
)

// Placeholder is a named external data source supplying candidate values for
// keys under its prefix. Implementations are independent of the resolver; a
// Resolver composes one or more of them with the pipeline evaluator.
//
// Resolve returns zero or more candidates; the resolver uses the first one.
// Returning no candidates means the key is unresolvable for this source,
// which is an expected state, not an error.
type Placeholder interface {
	// Prefix is the source identifier before the ':' in an expression.
	Prefix() string

	// Names lists the keys this source supports, for diagnostics.
	Names() []string

	// Supports reports whether the key is valid for this source.
	Supports(name string) bool

	// Resolve returns the candidate values for the key, in preference
	// order.
	Resolve(name string) []string
}

// thingPlaceholder resolves thing:* keys against the addressed entity.
type thingPlaceholder struct {
	namespace string
	name      string
}

// NewThingPlaceholder creates the thing: source for the entity identified by
// namespace and name. The thing:id key is the namespaced identifier
// "<namespace>:<name>".
func NewThingPlaceholder(namespace, name string) Placeholder {
	return thingPlaceholder{namespace: namespace, name: name}
}

func (thingPlaceholder) Prefix() string { return "thing" }

func (thingPlaceholder) Names() []string { return []string{"id", "namespace", "name"} }

func (p thingPlaceholder) Supports(name string) bool {
	return name == "id" || name == "namespace" || name == "name"
}

func (p thingPlaceholder) Resolve(name string) []string {
	switch name {
	case "id":
		return []string{p.namespace + ":" + p.name}
	case "namespace":
		return []string{p.namespace}
	case "name":
		return []string{p.name}
	default:
		return nil
	}
}

// headersPlaceholder resolves header:* keys against message headers.
type headersPlaceholder struct {
	headers map[string]string
}

// NewHeadersPlaceholder creates the header: source over the given headers.
// Lookup is case-insensitive; absent and empty headers are unresolvable.
func NewHeadersPlaceholder(headers map[string]string) Placeholder {
	lowered := make(map[string]string, len(headers))
	for k, v := range headers {
		lowered[strings.ToLower(k)] = v
	}
	return headersPlaceholder{headers: lowered}
}

func (headersPlaceholder) Prefix() string { return "header" }

func (p headersPlaceholder) Names() []string {
	names := make([]string, 0, len(p.headers))
	for k := range p.headers {
		names = append(names, k)
	}
	return names
}

// Supports accepts any key; whether a header is present is only known at
// resolution time.
func (headersPlaceholder) Supports(string) bool { return true }

func (p headersPlaceholder) Resolve(name string) []string {
	if v, ok := p.headers[strings.ToLower(name)]; ok && v != "" {
		return []string{v}
	}
	return nil
}

// topicPlaceholder resolves topic:* keys against a parsed topic path.
type topicPlaceholder struct {
	tp protocol.TopicPath
}

// NewTopicPlaceholder creates the topic: source over the given topic path.
func NewTopicPlaceholder(tp protocol.TopicPath) Placeholder {
	return topicPlaceholder{tp: tp}
}

func (topicPlaceholder) Prefix() string { return "topic" }

func (topicPlaceholder) Names() []string {
	return []string{"full", "namespace", "entityName", "group", "channel", "criterion", "action", "subject"}
}

func (p topicPlaceholder) Supports(name string) bool {
	for _, n := range p.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func (p topicPlaceholder) Resolve(name string) []string {
	switch name {
	case "full":
		return []string{p.tp.Path()}
	case "namespace":
		return []string{p.tp.Namespace()}
	case "entityName":
		return []string{p.tp.EntityName()}
	case "group":
		return []string{p.tp.Group().String()}
	case "channel":
		if p.tp.Channel() == protocol.ChannelNone {
			return nil
		}
		return []string{p.tp.Channel().String()}
	case "criterion":
		return []string{p.tp.Criterion().String()}
	case "action":
		if action, ok := p.tp.Action(); ok {
			return []string{action.String()}
		}
		if searchAction, ok := p.tp.SearchAction(); ok {
			return []string{searchAction.String()}
		}
		return nil
	case "subject":
		if subject, ok := p.tp.Subject(); ok {
			return []string{subject}
		}
		return nil
	default:
		return nil
	}
}

// timePlaceholder resolves time:* keys against a clock.
type timePlaceholder struct {
	now func() time.Time
}

// NewTimePlaceholder creates the time: source over the wall clock.
func NewTimePlaceholder() Placeholder {
	return timePlaceholder{now: time.Now}
}

// NewTimePlaceholderAt creates the time: source over a fixed clock, for
// deterministic tests.
func NewTimePlaceholderAt(now func() time.Time) Placeholder {
	return timePlaceholder{now: now}
}

func (timePlaceholder) Prefix() string { return "time" }

func (timePlaceholder) Names() []string { return []string{"now", "now_epoch_millis"} }

func (p timePlaceholder) Supports(name string) bool {
	return name == "now" || name == "now_epoch_millis"
}

func (p timePlaceholder) Resolve(name string) []string {
	switch name {
	case "now":
		return []string{p.now().UTC().Format(time.RFC3339)}
	case "now_epoch_millis":
		return []string{strconv.FormatInt(p.now().UnixMilli(), 10)}
	default:
		return nil
	}
}

// requestPlaceholder resolves request:* keys against the originating request
// context.
type requestPlaceholder struct {
	subjectID     string
	correlationID string
}

// NewRequestPlaceholder creates the request: source. When correlationID is
// empty a fresh UUID is assigned, so request:correlation-id always resolves.
func NewRequestPlaceholder(subjectID, correlationID string) Placeholder {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	return requestPlaceholder{subjectID: subjectID, correlationID: correlationID}
}

func (requestPlaceholder) Prefix() string { return "request" }

func (requestPlaceholder) Names() []string { return []string{"subjectId", "correlation-id"} }

func (p requestPlaceholder) Supports(name string) bool {
	return name == "subjectId" || name == "correlation-id"
}

func (p requestPlaceholder) Resolve(name string) []string {
	switch name {
	case "subjectId":
		if p.subjectID == "" {
			return nil
		}
		return []string{p.subjectID}
	case "correlation-id":
		return []string{p.correlationID}
	default:
		return nil
	}
}
