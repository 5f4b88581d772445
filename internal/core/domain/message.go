package domain

import (
	"fmt"
	"time"
)

// Message is a single post in the global feed.
type Message struct {
	ID        string
	Sender    string
	CreatedAt time.Time
	Text      string
}

// StorageKey returns "<epoch-millis>-<sender>" so that a lexicographic
// key listing approximates acceptance order.
func (m *Message) StorageKey() string {
	return MessageKey(m.CreatedAt, m.Sender)
}

// MessageKey builds the messages bucket key for a post accepted at ts.
func MessageKey(ts time.Time, sender string) string {
	return fmt.Sprintf("%d-%s", ts.UnixMilli(), sender)
}
