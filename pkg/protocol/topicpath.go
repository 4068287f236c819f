package protocol

import (
	"fmt"
	"strings"
)

// PathDelimiter separates the segments of a canonical topic path.
const PathDelimiter = "/"

// Group is the entity group segment of a topic path.
type Group int

// Entity groups.
const (
	GroupThings Group = iota + 1
	GroupPolicies
)

// String returns the canonical name of the group.
func (g Group) String() string {
	switch g {
	case GroupThings:
		return "things"
	case GroupPolicies:
		return "policies"
	default:
		return ""
	}
}

// GroupForName resolves a canonical group name. The second return value
// reports whether the name is known.
func GroupForName(name string) (Group, bool) {
	switch name {
	case "things":
		return GroupThings, true
	case "policies":
		return GroupPolicies, true
	default:
		return 0, false
	}
}

// Channel is the channel segment of a topic path. ChannelNone means the path
// carries no channel segment, which is always the case for the policies
// group.
type Channel int

// Channels.
const (
	ChannelNone Channel = iota
	ChannelTwin
	ChannelLive
)

// String returns the canonical name of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelTwin:
		return "twin"
	case ChannelLive:
		return "live"
	case ChannelNone:
		return "none"
	default:
		return ""
	}
}

// ChannelForName resolves a canonical channel name.
func ChannelForName(name string) (Channel, bool) {
	switch name {
	case "twin":
		return ChannelTwin, true
	case "live":
		return ChannelLive, true
	case "none":
		return ChannelNone, true
	default:
		return 0, false
	}
}

// Criterion selects the protocol interaction kind of a topic path.
type Criterion int

// Criteria.
const (
	CriterionCommands Criterion = iota + 1
	CriterionEvents
	CriterionSearch
	CriterionMessages
	CriterionAcks
	CriterionAnnouncements
	CriterionErrors
)

// String returns the canonical name of the criterion.
func (c Criterion) String() string {
	switch c {
	case CriterionCommands:
		return "commands"
	case CriterionEvents:
		return "events"
	case CriterionSearch:
		return "search"
	case CriterionMessages:
		return "messages"
	case CriterionAcks:
		return "acks"
	case CriterionAnnouncements:
		return "announcements"
	case CriterionErrors:
		return "errors"
	default:
		return ""
	}
}

// CriterionForName resolves a canonical criterion name.
func CriterionForName(name string) (Criterion, bool) {
	switch name {
	case "commands":
		return CriterionCommands, true
	case "events":
		return CriterionEvents, true
	case "search":
		return CriterionSearch, true
	case "messages":
		return CriterionMessages, true
	case "acks":
		return CriterionAcks, true
	case "announcements":
		return CriterionAnnouncements, true
	case "errors":
		return CriterionErrors, true
	default:
		return 0, false
	}
}

// Action is the action segment of a commands or events topic path.
type Action int

// Command and event actions. Command paths carry the imperative forms,
// event paths the past-tense forms.
const (
	ActionCreate Action = iota + 1
	ActionRetrieve
	ActionModify
	ActionMerge
	ActionDelete

	ActionCreated
	ActionModified
	ActionMerged
	ActionDeleted
)

// String returns the canonical name of the action.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRetrieve:
		return "retrieve"
	case ActionModify:
		return "modify"
	case ActionMerge:
		return "merge"
	case ActionDelete:
		return "delete"
	case ActionCreated:
		return "created"
	case ActionModified:
		return "modified"
	case ActionMerged:
		return "merged"
	case ActionDeleted:
		return "deleted"
	default:
		return ""
	}
}

// IsCommand reports whether the action is an imperative command form.
func (a Action) IsCommand() bool { return a >= ActionCreate && a <= ActionDelete }

// IsEvent reports whether the action is a past-tense event form.
func (a Action) IsEvent() bool { return a >= ActionCreated && a <= ActionDeleted }

// ActionForName resolves a canonical action name.
func ActionForName(name string) (Action, bool) {
	switch name {
	case "create":
		return ActionCreate, true
	case "retrieve":
		return ActionRetrieve, true
	case "modify":
		return ActionModify, true
	case "merge":
		return ActionMerge, true
	case "delete":
		return ActionDelete, true
	case "created":
		return ActionCreated, true
	case "modified":
		return ActionModified, true
	case "merged":
		return ActionMerged, true
	case "deleted":
		return ActionDeleted, true
	default:
		return 0, false
	}
}

// SearchAction is the action segment of a search topic path.
type SearchAction int

// Search actions.
const (
	SearchSubscribe SearchAction = iota + 1
	SearchCancel
	SearchRequest
	SearchComplete
	SearchFailed
	SearchNext
	SearchGenerated
	SearchError
)

// String returns the canonical name of the search action.
func (s SearchAction) String() string {
	switch s {
	case SearchSubscribe:
		return "subscribe"
	case SearchCancel:
		return "cancel"
	case SearchRequest:
		return "request"
	case SearchComplete:
		return "complete"
	case SearchFailed:
		return "failed"
	case SearchNext:
		return "next"
	case SearchGenerated:
		return "generated"
	case SearchError:
		return "error"
	default:
		return ""
	}
}

// SearchActionForName resolves a canonical search action name.
func SearchActionForName(name string) (SearchAction, bool) {
	switch name {
	case "subscribe":
		return SearchSubscribe, true
	case "cancel":
		return SearchCancel, true
	case "request":
		return SearchRequest, true
	case "complete":
		return SearchComplete, true
	case "failed":
		return SearchFailed, true
	case "next":
		return SearchNext, true
	case "generated":
		return SearchGenerated, true
	case "error":
		return SearchError, true
	default:
		return 0, false
	}
}

// TopicPath is an immutable canonical protocol address. The zero value is not
// a valid path; use NewBuilder or ParseTopicPath.
//
// Exactly one of action, searchAction and subject is populated, determined by
// the criterion: commands and events carry an action, search carries a search
// action, messages, acks and announcements may carry a subject, errors carry
// nothing.
type TopicPath struct {
	namespace    string
	entityName   string
	group        Group
	channel      Channel
	criterion    Criterion
	action       Action
	searchAction SearchAction
	subject      string
}

// Namespace returns the namespace segment.
func (tp TopicPath) Namespace() string { return tp.namespace }

// EntityName returns the entity name segment.
func (tp TopicPath) EntityName() string { return tp.entityName }

// Group returns the entity group.
func (tp TopicPath) Group() Group { return tp.group }

// Channel returns the channel, ChannelNone if the path has no channel
// segment.
func (tp TopicPath) Channel() Channel { return tp.channel }

// Criterion returns the interaction criterion.
func (tp TopicPath) Criterion() Criterion { return tp.criterion }

// Action returns the action segment of a commands or events path. The second
// return value reports whether an action is present.
func (tp TopicPath) Action() (Action, bool) {
	return tp.action, tp.action != 0
}

// SearchAction returns the search action segment of a search path.
func (tp TopicPath) SearchAction() (SearchAction, bool) {
	return tp.searchAction, tp.searchAction != 0
}

// Subject returns the subject of a messages, acks or announcements path. The
// subject may contain the path delimiter.
func (tp TopicPath) Subject() (string, bool) {
	return tp.subject, tp.subject != ""
}

// IsGroup reports whether the path addresses the given group.
func (tp TopicPath) IsGroup(g Group) bool { return tp.group == g }

// IsChannel reports whether the path uses the given channel.
func (tp TopicPath) IsChannel(c Channel) bool { return tp.channel == c }

// IsCriterion reports whether the path has the given criterion.
func (tp TopicPath) IsCriterion(c Criterion) bool { return tp.criterion == c }

// IsAction reports whether the path carries the given action.
func (tp TopicPath) IsAction(a Action) bool { return tp.action == a }

// Path renders the canonical slash-delimited string form. A ChannelNone
// channel is omitted; absent tail segments are omitted.
func (tp TopicPath) Path() string {
	parts := make([]string, 0, 8)
	parts = append(parts, tp.namespace, tp.entityName, tp.group.String())
	if tp.channel != ChannelNone {
		parts = append(parts, tp.channel.String())
	}
	parts = append(parts, tp.criterion.String())
	switch {
	case tp.action != 0:
		parts = append(parts, tp.action.String())
	case tp.searchAction != 0:
		parts = append(parts, tp.searchAction.String())
	case tp.subject != "":
		parts = append(parts, tp.subject)
	}
	return strings.Join(parts, PathDelimiter)
}

// String implements fmt.Stringer; it is the canonical path form.
func (tp TopicPath) String() string { return tp.Path() }

// GoString renders all fields for debugging output.
func (tp TopicPath) GoString() string {
	return fmt.Sprintf("protocol.TopicPath{namespace:%q, entityName:%q, group:%v, channel:%v, criterion:%v, action:%v, searchAction:%v, subject:%q}",
		tp.namespace, tp.entityName, tp.group, tp.channel, tp.criterion, tp.action, tp.searchAction, tp.subject)
}
