package protocol

import "strings"

// Builder assembles a TopicPath step by step. All methods are callable in any
// order and return the builder for chaining; invalid field combinations are
// rejected by Build. A Builder is not safe for concurrent use; the TopicPath
// it produces is.
type Builder struct {
	namespace    string
	entityName   string
	group        Group
	channel      Channel
	criterion    Criterion
	action       Action
	searchAction SearchAction
	subject      string
}

// NewBuilder starts a topic path for the entity identified by namespace and
// entityName. The channel defaults to ChannelNone.
func NewBuilder(namespace, entityName string) *Builder {
	return &Builder{namespace: namespace, entityName: entityName}
}

// Things selects the things group.
func (b *Builder) Things() *Builder {
	b.group = GroupThings
	return b
}

// Policies selects the policies group. Policies paths carry no channel
// segment; Build rejects the combination with Twin or Live.
func (b *Builder) Policies() *Builder {
	b.group = GroupPolicies
	return b
}

// Twin selects the twin channel.
func (b *Builder) Twin() *Builder {
	b.channel = ChannelTwin
	return b
}

// Live selects the live channel.
func (b *Builder) Live() *Builder {
	b.channel = ChannelLive
	return b
}

// None clears the channel.
func (b *Builder) None() *Builder {
	b.channel = ChannelNone
	return b
}

// Commands selects the commands criterion.
func (b *Builder) Commands() *Builder {
	b.criterion = CriterionCommands
	return b
}

// Events selects the events criterion.
func (b *Builder) Events() *Builder {
	b.criterion = CriterionEvents
	return b
}

// Search selects the search criterion.
func (b *Builder) Search() *Builder {
	b.criterion = CriterionSearch
	return b
}

// Messages selects the messages criterion.
func (b *Builder) Messages() *Builder {
	b.criterion = CriterionMessages
	return b
}

// Acks selects the acknowledgements criterion.
func (b *Builder) Acks() *Builder {
	b.criterion = CriterionAcks
	return b
}

// Announcements selects the announcements criterion.
func (b *Builder) Announcements() *Builder {
	b.criterion = CriterionAnnouncements
	return b
}

// Errors selects the errors criterion. Errors paths carry no tail segment.
func (b *Builder) Errors() *Builder {
	b.criterion = CriterionErrors
	return b
}

// Create sets the create command action.
func (b *Builder) Create() *Builder {
	b.action = ActionCreate
	return b
}

// Retrieve sets the retrieve command action.
func (b *Builder) Retrieve() *Builder {
	b.action = ActionRetrieve
	return b
}

// Modify sets the modify command action.
func (b *Builder) Modify() *Builder {
	b.action = ActionModify
	return b
}

// Merge sets the merge command action.
func (b *Builder) Merge() *Builder {
	b.action = ActionMerge
	return b
}

// Delete sets the delete command action.
func (b *Builder) Delete() *Builder {
	b.action = ActionDelete
	return b
}

// Created sets the created event action.
func (b *Builder) Created() *Builder {
	b.action = ActionCreated
	return b
}

// Modified sets the modified event action.
func (b *Builder) Modified() *Builder {
	b.action = ActionModified
	return b
}

// Merged sets the merged event action.
func (b *Builder) Merged() *Builder {
	b.action = ActionMerged
	return b
}

// Deleted sets the deleted event action.
func (b *Builder) Deleted() *Builder {
	b.action = ActionDeleted
	return b
}

// Subscribe sets the subscribe search action.
func (b *Builder) Subscribe() *Builder {
	b.searchAction = SearchSubscribe
	return b
}

// Cancel sets the cancel search action.
func (b *Builder) Cancel() *Builder {
	b.searchAction = SearchCancel
	return b
}

// Request sets the request search action.
func (b *Builder) Request() *Builder {
	b.searchAction = SearchRequest
	return b
}

// Complete sets the complete search action.
func (b *Builder) Complete() *Builder {
	b.searchAction = SearchComplete
	return b
}

// Failed sets the failed search action.
func (b *Builder) Failed() *Builder {
	b.searchAction = SearchFailed
	return b
}

// HasNext sets the next search action.
func (b *Builder) HasNext() *Builder {
	b.searchAction = SearchNext
	return b
}

// Generated sets the generated search action.
func (b *Builder) Generated() *Builder {
	b.searchAction = SearchGenerated
	return b
}

// Error sets the error search action.
func (b *Builder) Error() *Builder {
	b.searchAction = SearchError
	return b
}

// Subject sets the subject of a messages path. The subject may contain the
// path delimiter.
func (b *Builder) Subject(subject string) *Builder {
	b.subject = subject
	return b
}

// Name sets the subject of an announcements path.
func (b *Builder) Name(name string) *Builder {
	b.subject = name
	return b
}

// Label sets the subject of an acknowledgements path to an acknowledgement
// label.
func (b *Builder) Label(label string) *Builder {
	b.subject = label
	return b
}

// AggregatedAcks clears the subject, addressing aggregated acknowledgements.
func (b *Builder) AggregatedAcks() *Builder {
	b.subject = ""
	return b
}

// Build validates the accumulated fields and freezes them into an immutable
// TopicPath. It returns an *InvalidStateError when the namespace or entity
// name is empty or contains the path delimiter, when no group or criterion
// was selected, when the policies group is combined with a channel, or when
// a tail field does not fit the criterion: commands and events take exactly
// one action of the matching tense, search takes exactly one search action,
// messages, acks and announcements take at most a subject, errors take
// nothing.
func (b *Builder) Build() (TopicPath, error) {
	if b.namespace == "" {
		return TopicPath{}, &InvalidStateError{Reason: "namespace must not be empty"}
	}
	if strings.Contains(b.namespace, PathDelimiter) {
		return TopicPath{}, &InvalidStateError{Reason: "namespace must not contain the path delimiter"}
	}
	if b.entityName == "" {
		return TopicPath{}, &InvalidStateError{Reason: "entity name must not be empty"}
	}
	if strings.Contains(b.entityName, PathDelimiter) {
		return TopicPath{}, &InvalidStateError{Reason: "entity name must not contain the path delimiter"}
	}
	if b.group == 0 {
		return TopicPath{}, &InvalidStateError{Reason: "no group selected"}
	}
	if b.criterion == 0 {
		return TopicPath{}, &InvalidStateError{Reason: "no criterion selected"}
	}
	if b.group == GroupPolicies && b.channel != ChannelNone {
		return TopicPath{}, &InvalidStateError{Reason: "the policies group requires no channel"}
	}
	if err := b.validateTail(); err != nil {
		return TopicPath{}, err
	}
	return TopicPath{
		namespace:    b.namespace,
		entityName:   b.entityName,
		group:        b.group,
		channel:      b.channel,
		criterion:    b.criterion,
		action:       b.action,
		searchAction: b.searchAction,
		subject:      b.subject,
	}, nil
}

// validateTail checks that the populated tail field is the one the criterion
// admits.
func (b *Builder) validateTail() error {
	switch b.criterion {
	case CriterionCommands, CriterionEvents:
		if b.searchAction != 0 || b.subject != "" {
			return &InvalidStateError{Reason: "the " + b.criterion.String() + " criterion takes only an action"}
		}
		if b.action == 0 {
			return &InvalidStateError{Reason: "the " + b.criterion.String() + " criterion requires an action"}
		}
		if b.criterion == CriterionCommands && !b.action.IsCommand() {
			return &InvalidStateError{Reason: "action " + b.action.String() + " does not fit the commands criterion"}
		}
		if b.criterion == CriterionEvents && !b.action.IsEvent() {
			return &InvalidStateError{Reason: "action " + b.action.String() + " does not fit the events criterion"}
		}
	case CriterionSearch:
		if b.action != 0 || b.subject != "" {
			return &InvalidStateError{Reason: "the search criterion takes only a search action"}
		}
		if b.searchAction == 0 {
			return &InvalidStateError{Reason: "the search criterion requires a search action"}
		}
	case CriterionMessages, CriterionAcks, CriterionAnnouncements:
		if b.action != 0 || b.searchAction != 0 {
			return &InvalidStateError{Reason: "the " + b.criterion.String() + " criterion takes at most a subject"}
		}
	case CriterionErrors:
		if b.action != 0 || b.searchAction != 0 || b.subject != "" {
			return &InvalidStateError{Reason: "the errors criterion takes no tail segment"}
		}
	}
	return nil
}

// MustBuild is Build for statically known valid field combinations; it panics
// on error. Intended for package-level path constants and tests.
func (b *Builder) MustBuild() TopicPath {
	tp, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tp
}
