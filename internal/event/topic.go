package event

import "strings"

// Topic is a hierarchical event name using dot notation.
type Topic string

// Wildcard segments for subscription patterns.
const (
	WildcardSingle = "*"
	WildcardMulti  = "**"
	Separator      = "."
)

// Editor topics.
const (
	TopicScopeChanged     Topic = "scope.changed"
	TopicSelectionChanged Topic = "selection.changed"
	TopicHistoryChanged   Topic = "history.changed"
	TopicLayersChanged    Topic = "layers.changed"
	TopicConfigReloaded   Topic = "config.reloaded"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Matches reports whether the concrete topic t matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(pattern.Segments(), t.Segments())
}

func matchSegments(pattern, topic []string) bool {
	for i, seg := range pattern {
		switch seg {
		case WildcardMulti:
			return true
		case WildcardSingle:
			if i >= len(topic) {
				return false
			}
		default:
			if i >= len(topic) || topic[i] != seg {
				return false
			}
		}
	}
	return len(pattern) == len(topic)
}
