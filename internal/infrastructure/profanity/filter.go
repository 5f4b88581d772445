// Package profanity adapts go-away to the ports.ContentFilter contract.
package profanity

import goaway "github.com/TwiN/go-away"

type Filter struct {
	detector *goaway.ProfanityDetector
}

func NewFilter() *Filter {
	return &Filter{detector: goaway.NewProfanityDetector()}
}

func (f *Filter) IsOffensive(text string) bool {
	return f.detector.IsProfane(text)
}
