package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/keyheat/pkg/analytics"
	"github.com/dtnitsch/keyheat/pkg/heatmap"
	"github.com/dtnitsch/keyheat/pkg/layout"
	"github.com/dtnitsch/keyheat/pkg/messages"
	"github.com/dtnitsch/keyheat/pkg/report"
)

// Engine binds the configured collaborators to the command handlers.
type Engine struct {
	Compositor *heatmap.Compositor
	Layouts    layout.Source
	Logger     *slog.Logger
}

func NewEngine(c *heatmap.Compositor, src layout.Source, logger *slog.Logger) *Engine {
	if c == nil {
		c = heatmap.NewCompositor(nil, nil, heatmap.DefaultOffset, 0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{Compositor: c, Layouts: src, Logger: logger}
}

// Dispatch runs cmd against state. On failure the returned State is state
// itself.
func (e *Engine) Dispatch(ctx context.Context, state State, cmd Command) (State, Result) {
	switch c := cmd.(type) {
	case AnalyzeCommand:
		return e.analyze(state, c)
	case HeatmapCommand:
		return e.heatmap(state, c)
	case BigramCommand:
		return e.bigrams(state, c)
	case LoadLayoutsCommand:
		return e.loadLayouts(ctx, state, c)
	default:
		return state, Result{
			Status: messages.UnknownCommand,
			Args:   []any{fmt.Sprintf("%T", cmd)},
			Err:    fmt.Errorf("unsupported command %T", cmd),
		}
	}
}

func (e *Engine) analyze(state State, c AnalyzeCommand) (State, Result) {
	if c.Source == "" && c.Text == "" && c.Segments == nil {
		return state, failed(ErrNoLog)
	}

	segments := c.Segments
	if segments == nil {
		segments = [][]string{analytics.Tokenize(c.Text)}
	}

	next := state.withAnalysis(c.Source, segments)
	summary := report.FrequencySummary(next.Frequencies)
	e.Logger.Info("Analysis complete", "source", c.Source, "segments", len(segments), "tokens", len(next.Tokens), "distinct", next.Frequencies.Len())

	return next, Result{
		Report:  report.Frequency(next.Frequencies),
		Summary: &summary,
		Status:  messages.AnalysisDone,
		Args:    []any{len(next.Tokens), next.Frequencies.Len()},
	}
}

func (e *Engine) heatmap(state State, _ HeatmapCommand) (State, Result) {
	if !state.HasAnalysis() {
		return state, failed(ErrNoAnalysis)
	}
	if !state.HasLayouts() {
		return state, failed(ErrNoLayouts)
	}

	comp := e.Compositor.Compose(state.Layouts, state.Frequencies)
	e.Logger.Info("Heatmap composed", "layouts", len(comp.Layouts), "strategy", comp.Strategy)
	return state, Result{
		Composition: &comp,
		Status:      messages.HeatmapDone,
		Args:        []any{len(comp.Layouts)},
	}
}

func (e *Engine) bigrams(state State, c BigramCommand) (State, Result) {
	if len(state.Tokens) == 0 {
		return state, failed(ErrNoTokens)
	}

	summary := report.BigramSummary(state.Bigrams, c.TopN)
	return state, Result{
		Report:  report.Bigrams(state.Bigrams, c.TopN),
		Summary: &summary,
	}
}

func (e *Engine) loadLayouts(ctx context.Context, state State, c LoadLayoutsCommand) (State, Result) {
	layouts := c.Layouts
	if layouts == nil && len(c.Names) > 0 {
		if e.Layouts == nil {
			return state, Result{Status: messages.NoLayouts, Err: fmt.Errorf("no layout source configured")}
		}
		layouts = layout.LoadAll(ctx, e.Layouts, c.Names, e.Logger)
	}
	if len(layouts) == 0 {
		return state, failed(ErrNoLayouts)
	}

	next := state.withLayouts(layouts)
	var missing []string
	if len(c.Names) > 0 && len(layouts) < len(c.Names) {
		loaded := make(map[string]bool, len(layouts))
		for _, l := range layouts {
			loaded[l.Name] = true
		}
		for _, name := range c.Names {
			if !loaded[name] {
				missing = append(missing, name)
			}
		}
	}

	result := Result{}
	if len(missing) > 0 {
		result.Status = messages.LayoutMissing
		result.Args = []any{strings.Join(missing, ", ")}
	}
	return next, result
}
