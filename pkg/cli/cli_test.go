package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTopicParseCommand(t *testing.T) {
	out, err := runCommand(t, "topic", "parse", "org.acme/machine-7/things/twin/commands/modify")
	require.NoError(t, err)

	assert.Contains(t, out, "namespace:   org.acme")
	assert.Contains(t, out, "entity name: machine-7")
	assert.Contains(t, out, "group:       things")
	assert.Contains(t, out, "channel:     twin")
	assert.Contains(t, out, "action:      modify")
}

func TestTopicParseCommandRejectsBadPath(t *testing.T) {
	_, err := runCommand(t, "topic", "parse", "org.acme/machine-7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group")
}

func TestTopicBuildCommand(t *testing.T) {
	out, err := runCommand(t, "topic", "build", "org.acme", "machine-7",
		"--group", "things", "--channel", "twin", "--criterion", "commands", "--action", "modify")
	require.NoError(t, err)
	assert.Contains(t, out, "org.acme/machine-7/things/twin/commands/modify")
}

func TestTopicBuildCommandPoliciesChannelConflict(t *testing.T) {
	_, err := runCommand(t, "topic", "build", "org.acme", "policy-1",
		"--group", "policies", "--channel", "twin", "--criterion", "errors", "--action", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "policies group requires no channel")
}

func TestResolveCommand(t *testing.T) {
	out, err := runCommand(t, "resolve", "devices/{{ thing:name }}/state",
		"--thing", "org.acme:machine-7")
	require.NoError(t, err)
	assert.Contains(t, out, "devices/machine-7/state")
}

func TestResolveCommandUnresolved(t *testing.T) {
	_, err := runCommand(t, "resolve", "{{ header:missing }}", "--thing", "org.acme:machine-7")
	require.Error(t, err)
}
