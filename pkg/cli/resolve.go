package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thingbus/thingbus/pkg/config"
	"github.com/thingbus/thingbus/pkg/logging"
	"github.com/thingbus/thingbus/pkg/placeholders"
	"github.com/thingbus/thingbus/pkg/protocol"
)

var (
	resolveThingID         string
	resolveTopicPath       string
	resolveHeaders         []string
	resolveAllowUnresolved bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <template>",
	Short: "Resolve a placeholder template against a synthetic message context",
	Long: `Resolve evaluates a placeholder template the way a connector would,
against a context assembled from the --thing, --topic and --header flags.

Examples:
  thingbus resolve 'devices/{{ thing:name }}/state' --thing org.acme:machine-7
  thingbus resolve '{{ header:reply-to | fn:default("fallback") }}' --header reply-to=inbox`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := buildResolver()
		if err != nil {
			return err
		}

		element, err := resolver.Resolve(args[0], resolveAllowUnresolved)
		if err != nil {
			return err
		}
		switch element.Type() {
		case placeholders.ElementDeleted:
			return fmt.Errorf("template resolved to deletion")
		case placeholders.ElementUnresolved:
			return &placeholders.UnresolvedExpressionError{Template: args[0]}
		}
		value, _ := element.Value()
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var validateConnection string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the templates of a connection file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(logging.Config{Level: logging.ParseLevel(logLevel), Output: os.Stderr})

		conn, err := config.LoadFromFile(validateConnection)
		if err != nil {
			return err
		}
		resolver, err := buildResolver()
		if err != nil {
			return err
		}
		if err := conn.Validate(resolver); err != nil {
			return err
		}

		logger.Info("connection is valid", "id", conn.ID,
			"sources", len(conn.Sources), "targets", len(conn.Targets))
		return nil
	},
}

// buildResolver assembles the placeholder sources from the resolve flags.
func buildResolver() (*placeholders.Resolver, error) {
	headers := make(map[string]string, len(resolveHeaders))
	for _, h := range resolveHeaders {
		name, value, err := splitHeaderFlag(h)
		if err != nil {
			return nil, err
		}
		headers[name] = value
	}

	sources := []placeholders.Placeholder{
		placeholders.NewHeadersPlaceholder(headers),
		placeholders.NewTimePlaceholder(),
		placeholders.NewRequestPlaceholder(headers["requester"], headers["correlation-id"]),
	}

	if resolveThingID != "" {
		namespace, name, err := splitThingID(resolveThingID)
		if err != nil {
			return nil, err
		}
		sources = append(sources, placeholders.NewThingPlaceholder(namespace, name))
	}

	if resolveTopicPath != "" {
		tp, err := protocol.ParseTopicPath(resolveTopicPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, placeholders.NewTopicPlaceholder(tp))
	}

	return placeholders.NewResolver(sources...), nil
}

func splitHeaderFlag(h string) (name, value string, err error) {
	for i := 0; i < len(h); i++ {
		if h[i] == '=' {
			return h[:i], h[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("header flag %q must have the form name=value", h)
}

func splitThingID(id string) (namespace, name string, err error) {
	for i := 0; i < len(id); i++ {
		if id[i] == ':' {
			return id[:i], id[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("thing id %q must have the form namespace:name", id)
}

func init() {
	resolveCmd.Flags().StringVar(&resolveThingID, "thing", "", "Thing id as namespace:name")
	resolveCmd.Flags().StringVar(&resolveTopicPath, "topic", "", "Canonical topic path supplying topic:* placeholders")
	resolveCmd.Flags().StringArrayVar(&resolveHeaders, "header", nil, "Header as name=value, repeatable")
	resolveCmd.Flags().BoolVar(&resolveAllowUnresolved, "allow-unresolved", false, "Keep unresolved placeholders in the output")

	validateCmd.Flags().StringVarP(&validateConnection, "connection", "c", "", "Path to the connection file")
	_ = validateCmd.MarkFlagRequired("connection")
}
