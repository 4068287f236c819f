package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thingbus/thingbus/pkg/protocol"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Work with canonical topic paths",
}

var topicParseCmd = &cobra.Command{
	Use:   "parse <path>",
	Short: "Decode a canonical topic path and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tp, err := protocol.ParseTopicPath(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "namespace:   %s\n", tp.Namespace())
		fmt.Fprintf(out, "entity name: %s\n", tp.EntityName())
		fmt.Fprintf(out, "group:       %s\n", tp.Group())
		if tp.Channel() != protocol.ChannelNone {
			fmt.Fprintf(out, "channel:     %s\n", tp.Channel())
		}
		fmt.Fprintf(out, "criterion:   %s\n", tp.Criterion())
		if action, ok := tp.Action(); ok {
			fmt.Fprintf(out, "action:      %s\n", action)
		}
		if searchAction, ok := tp.SearchAction(); ok {
			fmt.Fprintf(out, "search:      %s\n", searchAction)
		}
		if subject, ok := tp.Subject(); ok {
			fmt.Fprintf(out, "subject:     %s\n", subject)
		}
		return nil
	},
}

var (
	topicBuildGroup     string
	topicBuildChannel   string
	topicBuildCriterion string
	topicBuildAction    string
	topicBuildSubject   string
)

var topicBuildCmd = &cobra.Command{
	Use:   "build <namespace> <entityName>",
	Short: "Build a canonical topic path from its fields",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := protocol.NewBuilder(args[0], args[1])

		group, ok := protocol.GroupForName(topicBuildGroup)
		if !ok {
			return fmt.Errorf("unknown group %q", topicBuildGroup)
		}
		if group == protocol.GroupThings {
			b.Things()
		} else {
			b.Policies()
		}

		if topicBuildChannel != "" {
			channel, ok := protocol.ChannelForName(topicBuildChannel)
			if !ok {
				return fmt.Errorf("unknown channel %q", topicBuildChannel)
			}
			switch channel {
			case protocol.ChannelTwin:
				b.Twin()
			case protocol.ChannelLive:
				b.Live()
			case protocol.ChannelNone:
				b.None()
			}
		}

		if err := applyCriterion(b, topicBuildCriterion, topicBuildAction, topicBuildSubject); err != nil {
			return err
		}

		tp, err := b.Build()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tp.Path())
		return nil
	},
}

// applyCriterion routes the criterion and tail flags onto the builder. The
// action flag selects a command/event action or a search action depending on
// the criterion; the subject flag is only meaningful for messages, acks and
// announcements.
func applyCriterion(b *protocol.Builder, criterionName, actionName, subject string) error {
	criterion, ok := protocol.CriterionForName(criterionName)
	if !ok {
		return fmt.Errorf("unknown criterion %q", criterionName)
	}

	switch criterion {
	case protocol.CriterionCommands, protocol.CriterionEvents:
		if criterion == protocol.CriterionCommands {
			b.Commands()
		} else {
			b.Events()
		}
		action, ok := protocol.ActionForName(actionName)
		if !ok {
			return fmt.Errorf("unknown action %q", actionName)
		}
		applyAction(b, action)
	case protocol.CriterionSearch:
		b.Search()
		searchAction, ok := protocol.SearchActionForName(actionName)
		if !ok {
			return fmt.Errorf("unknown search action %q", actionName)
		}
		applySearchAction(b, searchAction)
	case protocol.CriterionMessages:
		b.Messages().Subject(subject)
	case protocol.CriterionAcks:
		b.Acks().Label(subject)
	case protocol.CriterionAnnouncements:
		b.Announcements().Name(subject)
	case protocol.CriterionErrors:
		b.Errors()
	}
	return nil
}

func applyAction(b *protocol.Builder, action protocol.Action) {
	switch action {
	case protocol.ActionCreate:
		b.Create()
	case protocol.ActionRetrieve:
		b.Retrieve()
	case protocol.ActionModify:
		b.Modify()
	case protocol.ActionMerge:
		b.Merge()
	case protocol.ActionDelete:
		b.Delete()
	case protocol.ActionCreated:
		b.Created()
	case protocol.ActionModified:
		b.Modified()
	case protocol.ActionMerged:
		b.Merged()
	case protocol.ActionDeleted:
		b.Deleted()
	}
}

func applySearchAction(b *protocol.Builder, searchAction protocol.SearchAction) {
	switch searchAction {
	case protocol.SearchSubscribe:
		b.Subscribe()
	case protocol.SearchCancel:
		b.Cancel()
	case protocol.SearchRequest:
		b.Request()
	case protocol.SearchComplete:
		b.Complete()
	case protocol.SearchFailed:
		b.Failed()
	case protocol.SearchNext:
		b.HasNext()
	case protocol.SearchGenerated:
		b.Generated()
	case protocol.SearchError:
		b.Error()
	}
}

func init() {
	topicBuildCmd.Flags().StringVar(&topicBuildGroup, "group", "things", "Entity group (things, policies)")
	topicBuildCmd.Flags().StringVar(&topicBuildChannel, "channel", "", "Channel (twin, live); omit for none")
	topicBuildCmd.Flags().StringVar(&topicBuildCriterion, "criterion", "", "Criterion ("+strings.Join(criterionNames(), ", ")+")")
	topicBuildCmd.Flags().StringVar(&topicBuildAction, "action", "", "Action or search action, depending on the criterion")
	topicBuildCmd.Flags().StringVar(&topicBuildSubject, "subject", "", "Subject for messages, acks and announcements")
	_ = topicBuildCmd.MarkFlagRequired("criterion")

	topicCmd.AddCommand(topicParseCmd)
	topicCmd.AddCommand(topicBuildCmd)
}

func criterionNames() []string {
	return []string{"commands", "events", "search", "messages", "acks", "announcements", "errors"}
}
