package ports

// ContentFilter flags offensive usernames and message bodies.
type ContentFilter interface {
	IsOffensive(text string) bool
}
