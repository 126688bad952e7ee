// Package session holds the analysis state of one user session and the
// commands that move it forward. State is a value: every command returns a
// new State and failed commands return the prior one unchanged.
package session

import (
	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/analytics"
	"github.com/dtnitsch/keyheat/pkg/bigram"
)

// State is the result of the most recent successful analysis plus the
// layouts available for composition. Handlers never mutate a State they
// are given; slices and counters inside it are treated as read-only.
type State struct {
	Source      string
	Tokens      []string
	Segments    [][]string
	Frequencies *analytics.Counter[string]
	Bigrams     *analytics.Counter[bigram.Key]
	Layouts     []models.Layout
}

// HasAnalysis reports whether a non-empty frequency mapping exists.
func (s State) HasAnalysis() bool {
	return s.Frequencies.Len() > 0
}

// HasLayouts reports whether at least one layout is loaded.
func (s State) HasLayouts() bool {
	return len(s.Layouts) > 0
}

func (s State) withAnalysis(source string, segments [][]string) State {
	total := 0
	for _, seg := range segments {
		total += len(seg)
	}
	tokens := make([]string, 0, total)
	for _, seg := range segments {
		tokens = append(tokens, seg...)
	}

	next := s
	next.Source = source
	next.Tokens = tokens
	next.Segments = segments
	next.Frequencies = analytics.CountTokens(tokens)
	next.Bigrams = bigram.CountSegments(segments)
	return next
}

func (s State) withLayouts(layouts []models.Layout) State {
	next := s
	next.Layouts = append([]models.Layout(nil), layouts...)
	return next
}
