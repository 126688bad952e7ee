// Package report renders frequency and bigram rankings for display.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dtnitsch/keyheat/pkg/analytics"
	"github.com/dtnitsch/keyheat/pkg/bigram"
	"gopkg.in/yaml.v3"
)

const (
	FrequencyHeader = "Key Event Frequency Analysis:\n-------------------------------\n"
	bigramRule      = "-------------------------------\n"
)

// Format is an output encoding for reports.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, yaml or json)", s)
	}
}

// Row is one ranked line of a report.
type Row struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Summary is the structured form of a report.
type Summary struct {
	Kind     string `json:"kind" yaml:"kind"`
	Total    int    `json:"total" yaml:"total"`
	Distinct int    `json:"distinct" yaml:"distinct"`
	TopN     int    `json:"top_n,omitempty" yaml:"top_n,omitempty"`
	Rows     []Row  `json:"rows" yaml:"rows"`
}

// FrequencyRows ranks every token by count, ties in first-seen order.
func FrequencyRows(freq *analytics.Counter[string]) []Row {
	ranked := freq.Ranked()
	rows := make([]Row, len(ranked))
	for i, e := range ranked {
		rows[i] = Row{Key: e.Key, Count: e.Count}
	}
	return rows
}

// BigramRows ranks pairs and keeps the top n.
func BigramRows(counts *analytics.Counter[bigram.Key], n int) []Row {
	top := bigram.Top(counts, n)
	rows := make([]Row, len(top))
	for i, e := range top {
		rows[i] = Row{Key: e.Key.String(), Count: e.Count}
	}
	return rows
}

// Frequency renders the "<token>: <count>" report under its fixed header.
func Frequency(freq *analytics.Counter[string]) string {
	var sb strings.Builder
	sb.WriteString(FrequencyHeader)
	writeRows(&sb, FrequencyRows(freq))
	return sb.String()
}

// Bigrams renders the "<a> <b>: <count>" report truncated to n rows.
// n <= 0 lists every pair under an "(all)" header.
func Bigrams(counts *analytics.Counter[bigram.Key], n int) string {
	var sb strings.Builder
	if n <= 0 {
		sb.WriteString("Bigram Frequency Analysis (all):\n")
	} else {
		fmt.Fprintf(&sb, "Bigram Frequency Analysis (top %d):\n", n)
	}
	sb.WriteString(bigramRule)
	writeRows(&sb, BigramRows(counts, n))
	return sb.String()
}

func writeRows(sb *strings.Builder, rows []Row) {
	for _, r := range rows {
		fmt.Fprintf(sb, "%s: %d\n", r.Key, r.Count)
	}
}

func FrequencySummary(freq *analytics.Counter[string]) Summary {
	return Summary{
		Kind:     "frequency",
		Total:    freq.Total(),
		Distinct: freq.Len(),
		Rows:     FrequencyRows(freq),
	}
}

func BigramSummary(counts *analytics.Counter[bigram.Key], n int) Summary {
	return Summary{
		Kind:     "bigrams",
		Total:    counts.Total(),
		Distinct: counts.Len(),
		TopN:     n,
		Rows:     BigramRows(counts, n),
	}
}

// Encode writes a summary in a structured format. Text output goes through
// Frequency or Bigrams instead.
func Encode(s Summary, format Format) (string, error) {
	if format == FormatText || format == "" {
		var sb strings.Builder
		writeRows(&sb, s.Rows)
		return sb.String(), nil
	}
	return Marshal(s, format)
}

// Marshal encodes any value as YAML or JSON.
func Marshal(v any, format Format) (string, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal yaml report: %w", err)
		}
		return string(out), nil
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal json report: %w", err)
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("format %q has no structured encoding", format)
	}
}
