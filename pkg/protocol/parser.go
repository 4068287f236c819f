package protocol

import (
	"fmt"
	"strings"
)

// ParseTopicPath decodes the canonical string form of a topic path.
//
// Segments are consumed strictly in order: namespace, entity name, group,
// channel (skipped for the policies group), criterion, then a
// criterion-dependent tail. Commands and events require one action segment,
// search requires one search-action segment, errors take nothing, and for
// messages, acks and announcements all remaining segments are rejoined as the
// subject. Surplus segments after a commands, events, search or errors tail
// are ignored.
//
// A path that ends early yields a *MissingSegmentError naming the absent
// part; a segment that matches no enumerator yields an *UnknownValueError
// carrying the raw text. The decoded fields pass through the Builder's
// validation, so ParseTopicPath is the exact inverse of Path() for
// well-formed input.
func ParseTopicPath(s string) (TopicPath, error) {
	p := &topicPathParser{input: s, segments: splitSegments(s)}
	return p.parse()
}

func splitSegments(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, PathDelimiter)
}

// topicPathParser consumes segments of a split topic path as an ordered
// queue.
type topicPathParser struct {
	input    string
	segments []string
}

func (p *topicPathParser) parse() (TopicPath, error) {
	namespace, err := p.pop(SegmentNamespace)
	if err != nil {
		return TopicPath{}, err
	}
	entityName, err := p.pop(SegmentEntityName)
	if err != nil {
		return TopicPath{}, err
	}
	b := NewBuilder(namespace, entityName)

	if err := p.parseGroup(b); err != nil {
		return TopicPath{}, err
	}
	if err := p.parseChannel(b); err != nil {
		return TopicPath{}, err
	}
	if err := p.parseCriterion(b); err != nil {
		return TopicPath{}, err
	}
	if err := p.parseTail(b); err != nil {
		return TopicPath{}, err
	}
	return b.Build()
}

func (p *topicPathParser) parseGroup(b *Builder) error {
	name, err := p.pop(SegmentGroup)
	if err != nil {
		return err
	}
	group, ok := GroupForName(name)
	if !ok {
		return &UnknownValueError{Path: p.input, Value: name, Category: SegmentGroup}
	}
	b.group = group
	return nil
}

// parseChannel consumes the channel segment. The policies group carries no
// channel segment, so nothing is consumed for it.
func (p *topicPathParser) parseChannel(b *Builder) error {
	if b.group == GroupPolicies {
		b.channel = ChannelNone
		return nil
	}
	name, err := p.pop(SegmentChannel)
	if err != nil {
		return err
	}
	channel, ok := ChannelForName(name)
	if !ok {
		return &UnknownValueError{Path: p.input, Value: name, Category: SegmentChannel}
	}
	b.channel = channel
	return nil
}

func (p *topicPathParser) parseCriterion(b *Builder) error {
	name, err := p.pop(SegmentCriterion)
	if err != nil {
		return err
	}
	criterion, ok := CriterionForName(name)
	if !ok {
		return &UnknownValueError{Path: p.input, Value: name, Category: SegmentCriterion}
	}
	b.criterion = criterion
	return nil
}

func (p *topicPathParser) parseTail(b *Builder) error {
	switch b.criterion {
	case CriterionCommands, CriterionEvents:
		name, err := p.pop(SegmentAction)
		if err != nil {
			return err
		}
		action, ok := ActionForName(name)
		if !ok {
			return &UnknownValueError{Path: p.input, Value: name, Category: SegmentAction}
		}
		b.action = action
	case CriterionSearch:
		name, err := p.pop(SegmentSearchAction)
		if err != nil {
			return err
		}
		searchAction, ok := SearchActionForName(name)
		if !ok {
			return &UnknownValueError{Path: p.input, Value: name, Category: SegmentSearchAction}
		}
		b.searchAction = searchAction
	case CriterionErrors:
		// no tail
	case CriterionMessages, CriterionAcks, CriterionAnnouncements:
		b.subject = strings.Join(p.segments, PathDelimiter)
		p.segments = nil
	default:
		// unreachable: parseCriterion only admits known criteria
		panic(fmt.Sprintf("protocol: criterion %d is unhandled", b.criterion))
	}
	return nil
}

// pop consumes the next segment of the queue, failing with a
// *MissingSegmentError naming the expected part when the queue is exhausted.
func (p *topicPathParser) pop(segment string) (string, error) {
	if len(p.segments) == 0 {
		return "", &MissingSegmentError{Path: p.input, Segment: segment}
	}
	head := p.segments[0]
	p.segments = p.segments[1:]
	return head, nil
}
