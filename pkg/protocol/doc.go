// Package protocol implements the canonical topic-path addressing scheme of
// the thingbus protocol.
//
// A topic path is the hierarchical address carried by every protocol message.
// It identifies the namespace and name of the addressed entity, the entity
// group (things or policies), the channel (twin or live), the interaction
// criterion (commands, events, search, messages, acks, announcements,
// errors), and a criterion-dependent tail: an action for commands and events,
// a search action for search, a free-form subject for messages, acks and
// announcements.
//
// The canonical string form is slash-delimited:
//
//	<namespace>/<entityName>/<group>[/<channel>]/<criterion>[/<action>|<searchAction>|<subject...>]
//
// The channel segment is omitted entirely for the policies group. The subject
// may itself contain slashes; it is always the trailing remainder of the
// path.
//
// TopicPath values are immutable and safe for concurrent use. They are
// created either through the fluent Builder (NewBuilder) or by parsing a
// canonical string (ParseTopicPath). For every path built from valid fields,
// parsing its Path() yields an equal TopicPath.
package protocol
