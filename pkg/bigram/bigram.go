// Package bigram counts ordered pairs of adjacent tokens.
package bigram

import (
	"github.com/dtnitsch/keyheat/pkg/analytics"
)

// Key is an ordered pair: First was pressed immediately before Second.
type Key struct {
	First  string
	Second string
}

func (k Key) String() string {
	return k.First + " " + k.Second
}

// Count counts every adjacent pair of one contiguous token sequence.
// The counts sum to len(tokens)-1, or 0 for fewer than two tokens.
func Count(tokens []string) *analytics.Counter[Key] {
	counts := analytics.NewCounter[Key]()
	for i := 0; i+1 < len(tokens); i++ {
		counts.Add(Key{First: tokens[i], Second: tokens[i+1]})
	}
	return counts
}

// CountSegments counts each segment as its own contiguous log, so no pair
// spans two segments, and merges the results in segment order.
func CountSegments(segments [][]string) *analytics.Counter[Key] {
	counts := make([]*analytics.Counter[Key], len(segments))
	for i, tokens := range segments {
		counts[i] = Count(tokens)
	}
	return analytics.Merge(counts...)
}

// Top ranks by count descending, ties in first-seen order, and keeps n.
// Asking for more entries than exist returns all of them.
func Top(counts *analytics.Counter[Key], n int) []analytics.Entry[Key] {
	return counts.Top(n)
}
