package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dtnitsch/keyheat/pkg/analytics"
	"github.com/dtnitsch/keyheat/pkg/bigram"
	"gopkg.in/yaml.v3"
)

func TestFrequency(t *testing.T) {
	freq := analytics.CountTokens(analytics.Tokenize("a a b\na"))

	got := Frequency(freq)
	want := FrequencyHeader + "a: 3\nb: 1\n"
	if got != want {
		t.Errorf("Frequency() = %q, want %q", got, want)
	}
}

func TestFrequency_TiesInFirstSeenOrder(t *testing.T) {
	freq := analytics.NewCounter[string]()
	freq.Set("x", 3)
	freq.Set("y", 3)
	freq.Set("z", 1)

	got := strings.TrimPrefix(Frequency(freq), FrequencyHeader)
	if got != "x: 3\ny: 3\nz: 1\n" {
		t.Errorf("Frequency() body = %q", got)
	}
}

func TestBigrams(t *testing.T) {
	counts := bigram.Count(analytics.Tokenize("a a b\na"))

	got := Bigrams(counts, 10)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 5 {
		t.Fatalf("Bigrams() has %d lines, want 5: %q", len(lines), got)
	}
	if lines[0] != "Bigram Frequency Analysis (top 10):" {
		t.Errorf("header = %q", lines[0])
	}
	wantRows := []string{"a a: 1", "a b: 1", "b a: 1"}
	for i, w := range wantRows {
		if lines[i+2] != w {
			t.Errorf("line %d = %q, want %q", i+2, lines[i+2], w)
		}
	}
}

func TestBigrams_AllHeader(t *testing.T) {
	counts := bigram.Count([]string{"a", "b", "c", "d"})

	got := Bigrams(counts, 0)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if lines[0] != "Bigram Frequency Analysis (all):" {
		t.Errorf("header = %q, want the (all) header", lines[0])
	}
	if len(lines) != 5 {
		t.Errorf("Bigrams(0) has %d lines, want 5: %q", len(lines), got)
	}
}

func TestBigrams_Truncates(t *testing.T) {
	counts := bigram.Count([]string{"a", "b", "c", "d", "e"})

	rows := BigramRows(counts, 2)
	if len(rows) != 2 {
		t.Errorf("len(BigramRows(2)) = %d, want 2", len(rows))
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "json", want: FormatJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	freq := analytics.CountTokens([]string{"<Tab>", "a", "<Tab>"})
	s := FrequencySummary(freq)

	out, err := Encode(s, FormatYAML)
	if err != nil {
		t.Fatalf("Encode(yaml) error = %v", err)
	}
	var fromYAML Summary
	if err := yaml.Unmarshal([]byte(out), &fromYAML); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if fromYAML.Total != 3 || fromYAML.Rows[0].Key != "<Tab>" {
		t.Errorf("yaml summary = %+v", fromYAML)
	}

	out, err = Encode(BigramSummary(bigram.Count([]string{"a", "b"}), 5), FormatJSON)
	if err != nil {
		t.Fatalf("Encode(json) error = %v", err)
	}
	var fromJSON Summary
	if err := json.Unmarshal([]byte(out), &fromJSON); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if fromJSON.Kind != "bigrams" || fromJSON.TopN != 5 || fromJSON.Rows[0].Key != "a b" {
		t.Errorf("json summary = %+v", fromJSON)
	}
}

func TestMarshal_RejectsText(t *testing.T) {
	if _, err := Marshal(map[string]int{"a": 1}, FormatText); err == nil {
		t.Error("Marshal(text) should fail")
	}
}
