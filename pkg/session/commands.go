package session

import (
	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/heatmap"
	"github.com/dtnitsch/keyheat/pkg/messages"
	"github.com/dtnitsch/keyheat/pkg/report"
)

// Command is one user action handled by Engine.Dispatch.
type Command interface {
	Verb() string
}

// AnalyzeCommand replaces the current analysis with one built from a log.
// Segments, when set, are independent token streams (one per file) and
// win over Text. Source names the log for display.
type AnalyzeCommand struct {
	Source   string
	Text     string
	Segments [][]string
}

// HeatmapCommand composes the loaded layouts against the current
// frequencies.
type HeatmapCommand struct{}

// BigramCommand ranks adjacent token pairs. TopN <= 0 means every pair.
type BigramCommand struct {
	TopN int
}

// LoadLayoutsCommand replaces the loaded layouts. Layouts given directly
// win; otherwise Names are resolved through the engine's layout source.
type LoadLayoutsCommand struct {
	Layouts []models.Layout
	Names   []string
}

func (AnalyzeCommand) Verb() string     { return VerbAnalyze }
func (HeatmapCommand) Verb() string     { return VerbHeatmap }
func (BigramCommand) Verb() string      { return VerbBigrams }
func (LoadLayoutsCommand) Verb() string { return VerbLayouts }

// Result is what a command produced. Err is set for failed commands; Status
// is the message to show the user either way.
type Result struct {
	Report      string
	Summary     *report.Summary
	Composition *heatmap.Composition
	Status      messages.Key
	Args        []any
	Err         error
}

// Message renders Status. An empty locale renders every supported locale.
func (r Result) Message(locale string) string {
	if r.Status == "" {
		return ""
	}
	if locale == "" {
		return messages.Dual(r.Status, r.Args...)
	}
	return messages.Text(locale, r.Status, r.Args...)
}

func failed(err *Error) Result {
	return Result{Status: err.Key, Err: err}
}
