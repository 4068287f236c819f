package placeholders

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingbus/thingbus/pkg/protocol"
)

func newTestResolver() *Resolver {
	tp := protocol.NewBuilder("org.acme", "device-1").Things().Twin().Commands().Modify().MustBuild()
	return NewResolver(
		NewThingPlaceholder("org.acme", "device-1"),
		NewHeadersPlaceholder(map[string]string{
			"Device-Id":      "dev-42",
			"Content-Type":   "application/json",
			"reply-to":       "org.acme/device-1/things/live/messages/reply",
			"gateway-region": "eu-west",
		}),
		NewTopicPlaceholder(tp),
		NewRequestPlaceholder("subject-1", "corr-99"),
	)
}

func TestSubstituteResolved(t *testing.T) {
	element, err := Substitute("prefix {{ph}} suffix", false, func(expr string) (PipelineElement, error) {
		if expr != "ph" {
			t.Errorf("expr = %q, want %q", expr, "ph")
		}
		return Resolved("X"), nil
	})
	require.NoError(t, err)
	value, ok := element.Value()
	require.True(t, ok)
	assert.Equal(t, "prefix X suffix", value)
}

func TestSubstituteDeletedDiscardsBuffer(t *testing.T) {
	calls := 0
	element, err := Substitute("a {{one}} b {{two}} c", false, func(expr string) (PipelineElement, error) {
		calls++
		if expr == "two" {
			return Deleted(), nil
		}
		return Resolved("1"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, ElementDeleted, element.Type())
	assert.Equal(t, 2, calls)
	_, ok := element.Value()
	assert.False(t, ok, "deleted template must not expose a partial string")
}

func TestSubstituteUnresolvedDisallowed(t *testing.T) {
	element, err := Substitute("a {{one}} b", false, func(string) (PipelineElement, error) {
		return Unresolved(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, ElementUnresolved, element.Type())
}

func TestSubstituteUnresolvedAllowedKeepsMatchedText(t *testing.T) {
	element, err := Substitute("a {{ one }} b {{two}} c", true, func(expr string) (PipelineElement, error) {
		if expr == "one" {
			return Unresolved(), nil
		}
		return Resolved("2"), nil
	})
	require.NoError(t, err)
	value, ok := element.Value()
	require.True(t, ok)
	assert.Equal(t, "a {{ one }} b 2 c", value)
}

func TestSubstituteNoMatchPassesInputThrough(t *testing.T) {
	element, err := Substitute("no placeholders here", false, func(string) (PipelineElement, error) {
		t.Fatal("substitution function invoked without a match")
		return Unresolved(), nil
	})
	require.NoError(t, err)
	value, _ := element.Value()
	assert.Equal(t, "no placeholders here", value)
}

func TestSubstituteResolvedValueIsLiteral(t *testing.T) {
	// resolved content must never be re-scanned for placeholders
	element, err := Substitute("x {{ph}} y", false, func(string) (PipelineElement, error) {
		return Resolved("{{injected}}"), nil
	})
	require.NoError(t, err)
	value, _ := element.Value()
	assert.Equal(t, "x {{injected}} y", value)
}

func TestSubstituteInvokesInOrder(t *testing.T) {
	var seen []string
	_, err := Substitute("{{a}}-{{b}}-{{c}}", false, func(expr string) (PipelineElement, error) {
		seen = append(seen, expr)
		return Resolved(expr), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestResolveSimplePlaceholders(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		template string
		want     string
	}{
		{"{{ thing:id }}", "org.acme:device-1"},
		{"{{ thing:namespace }}", "org.acme"},
		{"{{ thing:name }}", "device-1"},
		{"{{ header:device-id }}", "dev-42"},
		{"{{ header:DEVICE-ID }}", "dev-42"},
		{"{{ topic:full }}", "org.acme/device-1/things/twin/commands/modify"},
		{"{{ topic:action }}", "modify"},
		{"{{ topic:channel }}", "twin"},
		{"{{ request:subjectId }}", "subject-1"},
		{"{{ request:correlation-id }}", "corr-99"},
		{"devices/{{ thing:name }}/state", "devices/device-1/state"},
		{"${thing:name}", "device-1"},
		{"{{ thing:namespace }}:{{ thing:name }}", "org.acme:device-1"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := r.ResolveRequired(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePipelines(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		template string
		want     string
	}{
		{"{{ thing:name | fn:upper() }}", "DEVICE-1"},
		{"{{ header:content-type | fn:upper() | fn:lower() }}", "application/json"},
		{"{{ thing:id | fn:substring-before(':') }}", "org.acme"},
		{"{{ thing:id | fn:substring-after(':') }}", "device-1"},
		{"{{ header:missing | fn:default('fallback') }}", "fallback"},
		{"{{ header:missing | fn:default(thing:name) }}", "device-1"},
		{"{{ thing:name | fn:default('ignored') }}", "device-1"},
		{"{{ thing:name | fn:substring-before(':') | fn:default(thing:name) }}", "device-1"},
		{"{{ header:gateway-region | fn:filter('eq', 'eu-west') }}", "eu-west"},
		{"{{ header:gateway-region | fn:filter('ne', 'us-east') }}", "eu-west"},
		{"{{ thing:name | fn:filter('like', 'device-*') }}", "device-1"},
		{"{{ thing:name | fn:filter(header:device-id, 'eq', 'dev-42') }}", "device-1"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := r.ResolveRequired(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnresolvedOutcomes(t *testing.T) {
	r := newTestResolver()

	templates := []string{
		"{{ header:missing }}",
		"{{ thing:unknown-key }}",
		"{{ thing:id | fn:substring-before('#') }}",
		"{{ header:gateway-region | fn:filter('eq', 'us-east') }}",
		"{{ thing:name | fn:filter('like', 'actuator-*') }}",
	}

	for _, template := range templates {
		t.Run(template, func(t *testing.T) {
			element, err := r.Resolve(template, false)
			require.NoError(t, err)
			assert.Equal(t, ElementUnresolved, element.Type())

			_, err = r.ResolveRequired(template)
			var unresolvedErr *UnresolvedExpressionError
			require.ErrorAs(t, err, &unresolvedErr)
			assert.Equal(t, template, unresolvedErr.Template)
		})
	}
}

// greedyPlaceholder resolves any key but declares support for only one.
type greedyPlaceholder struct{}

func (greedyPlaceholder) Prefix() string            { return "custom" }
func (greedyPlaceholder) Names() []string           { return []string{"known"} }
func (greedyPlaceholder) Supports(name string) bool { return name == "known" }
func (greedyPlaceholder) Resolve(string) []string   { return []string{"value"} }

func TestResolveConsultsSupports(t *testing.T) {
	r := NewResolver(greedyPlaceholder{})

	got, err := r.ResolveRequired("{{ custom:known }}")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	// an unsupported key stays unresolved even when the source would
	// supply a value for it
	element, err := r.Resolve("{{ custom:other }}", false)
	require.NoError(t, err)
	assert.Equal(t, ElementUnresolved, element.Type())

	got, err = r.ResolveRequired("{{ custom:other | fn:default('fallback') }}")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestResolveAllowUnresolvedKeepsExpression(t *testing.T) {
	r := newTestResolver()

	element, err := r.Resolve("id={{ header:missing }}, ns={{ thing:namespace }}", true)
	require.NoError(t, err)
	value, ok := element.Value()
	require.True(t, ok)
	assert.Equal(t, "id={{ header:missing }}, ns=org.acme", value)
}

func TestResolveDelete(t *testing.T) {
	r := newTestResolver()

	element, err := r.Resolve("before {{ thing:name | fn:delete() }} after", false)
	require.NoError(t, err)
	assert.Equal(t, ElementDeleted, element.Type())

	_, err = r.ResolveRequired("{{ thing:name | fn:delete() }}")
	assert.ErrorIs(t, err, ErrDeleted)
}

func TestResolveUnknownPlaceholderSource(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve("{{ feature:id }}", true)
	var unknownErr *UnknownPlaceholderError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "feature", unknownErr.Prefix)
}

func TestResolveMalformedExpression(t *testing.T) {
	r := newTestResolver()

	for _, template := range []string{"{{ noprefix }}", "{{ :nokey }}", "{{ noname: }}"} {
		_, err := r.Resolve(template, true)
		var malformedErr *MalformedExpressionError
		require.ErrorAs(t, err, &malformedErr, "template %q", template)
	}
}

func TestResolveUnknownFunction(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve("{{ thing:name | fn:reverse() }}", true)
	var unknownErr *UnknownFunctionError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "reverse", unknownErr.Name)
}

func TestTooComplexPipelineFailsBeforeExecution(t *testing.T) {
	r := NewResolverWithLimit(3, NewThingPlaceholder("org.acme", "device-1"))

	stages := make([]string, 4)
	for i := range stages {
		stages[i] = "fn:delete()"
	}
	template := "{{ thing:id | " + strings.Join(stages, " | ") + " }}"

	element, err := r.Resolve(template, false)
	var tooComplexErr *TooComplexError
	require.ErrorAs(t, err, &tooComplexErr)
	assert.Equal(t, 4, tooComplexErr.Stages)
	assert.Equal(t, 3, tooComplexErr.MaxStages)
	// fn:delete never ran: the element is not Deleted
	assert.NotEqual(t, ElementDeleted, element.Type())

	// at the limit the pipeline executes normally
	within := "{{ thing:id | fn:upper() | fn:lower() | fn:upper() }}"
	got, err := r.ResolveRequired(within)
	require.NoError(t, err)
	assert.Equal(t, "ORG.ACME:DEVICE-1", got)
}

func TestValidate(t *testing.T) {
	r := newTestResolver()

	require.NoError(t, r.Validate("devices/{{ thing:name }}/{{ header:anything | fn:default('x') }}"))
	require.NoError(t, r.Validate("no placeholders"))
	// unresolvable at runtime is still valid configuration
	require.NoError(t, r.Validate("{{ header:missing }}"))

	assert.Error(t, r.Validate("{{ feature:id }}"))
	assert.Error(t, r.Validate("{{ thing:name | fn:reverse() }}"))
	assert.Error(t, r.Validate("{{ noprefix }}"))
}

func TestInvalidArgumentCounts(t *testing.T) {
	r := newTestResolver()

	templates := []string{
		"{{ thing:name | fn:default() }}",
		"{{ thing:name | fn:default('a', 'b') }}",
		"{{ thing:name | fn:upper('x') }}",
		"{{ thing:name | fn:substring-before() }}",
		"{{ thing:name | fn:filter() }}",
	}

	for _, template := range templates {
		t.Run(template, func(t *testing.T) {
			_, err := r.Resolve(template, true)
			var argErr *InvalidArgumentCountError
			require.ErrorAs(t, err, &argErr)
		})
	}
}

func TestTimePlaceholder(t *testing.T) {
	fixed := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	r := NewResolver(NewTimePlaceholderAt(func() time.Time { return fixed }))

	got, err := r.ResolveRequired("{{ time:now }}")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:26:53Z", got)

	got, err = r.ResolveRequired("{{ time:now_epoch_millis }}")
	require.NoError(t, err)
	assert.Equal(t, "1773480413000", got)
}

func TestRequestPlaceholderGeneratesCorrelationID(t *testing.T) {
	ph := NewRequestPlaceholder("subject-1", "")
	candidates := ph.Resolve("correlation-id")
	require.Len(t, candidates, 1)
	assert.NotEmpty(t, candidates[0])

	// stable across lookups on the same source
	assert.Equal(t, candidates, ph.Resolve("correlation-id"))
}

func TestDeletedShortCircuitsRemainingStages(t *testing.T) {
	r := newTestResolver()

	// fn:upper after fn:delete must not resurrect the element
	element, err := r.Resolve("{{ thing:name | fn:delete() | fn:upper() }}", false)
	require.NoError(t, err)
	assert.Equal(t, ElementDeleted, element.Type())
}

func TestAmbiguousMatchIsInternalFault(t *testing.T) {
	// simulate a pattern-contract violation: both groups non-empty
	match := []int{0, 4, 0, 2, 2, 4}
	_, err := matchedExpression("abcd", match)
	assert.True(t, errors.Is(err, ErrAmbiguousMatch))
}
