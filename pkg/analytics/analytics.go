package analytics

import (
	"strings"
)

// Tokenize splits a key log into tokens on any run of whitespace.
// Tokens are kept verbatim: case, punctuation and bracket markup such as
// <Tab> survive untouched. Empty input yields an empty slice.
func Tokenize(text string) []string {
	tokens := strings.Fields(text)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// CountTokens builds the frequency mapping for a token sequence.
// The sum of all counts equals len(tokens).
func CountTokens(tokens []string) *Counter[string] {
	frequencies := NewCounter[string]()
	for _, token := range tokens {
		frequencies.Add(token)
	}
	return frequencies
}
