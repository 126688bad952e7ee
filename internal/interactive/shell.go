package interactive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dtnitsch/keyheat/internal/common"
	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/messages"
	"github.com/dtnitsch/keyheat/pkg/render"
	"github.com/dtnitsch/keyheat/pkg/session"
	"github.com/dtnitsch/keyheat/pkg/storage"
)

const helpText = `Commands:
  analyze <path>     read a key log (file or directory) and show key frequencies
  bigrams [n]        show the n most frequent key pairs (default from config)
  heatmap [out.png]  draw the heatmap to the terminal, or to a PNG file
  layouts [name...]  load layouts by name, or list the loaded ones
  help               show this help
  quit               leave
`

// Shell holds the session state between interactive commands. Each
// command replaces State with the one the engine returns.
type Shell struct {
	Engine *session.Engine
	Config *models.Config
	Logger *slog.Logger
	Out    io.Writer
	State  session.State
}

func NewShell(engine *session.Engine, cfg *models.Config, logger *slog.Logger, out io.Writer) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{Engine: engine, Config: cfg, Logger: logger, Out: out}
}

func (s *Shell) message(res session.Result) {
	if msg := res.Message(s.Config.Locale); msg != "" {
		fmt.Fprintln(s.Out, msg)
	}
}

// Execute runs one input line. It returns false when the user asked to quit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	req, err := session.ParseLine(line)
	var unknown *session.UnknownVerbError
	if errors.As(err, &unknown) {
		fmt.Fprintln(s.Out, messageFor(s.Config.Locale, messages.UnknownCommand, unknown.Verb))
		if unknown.Suggestion != "" {
			fmt.Fprintf(s.Out, "Did you mean %q?\n", unknown.Suggestion)
		}
		return true
	}
	if err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
		return true
	}

	switch req.Verb {
	case "":
		return true
	case session.VerbQuit:
		return false
	case session.VerbHelp:
		fmt.Fprint(s.Out, helpText)
		return true
	case session.VerbAnalyze:
		s.analyze(ctx, req)
	case session.VerbBigrams:
		n := req.TopN
		if !req.HasTopN {
			n = s.Config.TopN
		}
		s.dispatch(ctx, session.BigramCommand{TopN: n})
	case session.VerbHeatmap:
		s.heatmap(ctx, req)
	case session.VerbLayouts:
		if len(req.Layouts) == 0 {
			s.listLayouts()
			return true
		}
		s.dispatch(ctx, session.LoadLayoutsCommand{Names: req.Layouts})
	}
	return true
}

func messageFor(locale string, key messages.Key, args ...any) string {
	if locale == "" {
		return messages.Dual(key, args...)
	}
	return messages.Text(locale, key, args...)
}

// dispatch runs cmd, keeps the new state and prints the outcome.
func (s *Shell) dispatch(ctx context.Context, cmd session.Command) session.Result {
	next, res := s.Engine.Dispatch(ctx, s.State, cmd)
	s.State = next
	if res.Report != "" {
		fmt.Fprint(s.Out, res.Report)
	}
	if res.Err != nil {
		var userErr *session.Error
		if !errors.As(res.Err, &userErr) {
			fmt.Fprintf(s.Out, "Error: %v\n", res.Err)
			return res
		}
	}
	s.message(res)
	return res
}

func (s *Shell) analyze(ctx context.Context, req models.Request) {
	var paths []string
	if req.Path != "" {
		paths = []string{req.Path}
	}
	cmd, err := common.AnalyzeCommand(ctx, s.Config, s.Logger, paths)
	if err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
		return
	}
	s.dispatch(ctx, cmd)
}

func (s *Shell) heatmap(ctx context.Context, req models.Request) {
	res := s.dispatch(ctx, session.HeatmapCommand{})
	if res.Err != nil {
		return
	}

	if req.Output == "" {
		fmt.Fprint(s.Out, render.Terminal(*res.Composition))
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, *res.Composition, render.DefaultPNGOptions()); err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
		return
	}
	st := &storage.Storage{}
	if err := st.SaveFile(req.Output, buf.Bytes()); err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.Out, "Wrote %s\n", req.Output)
}

func (s *Shell) listLayouts() {
	if !s.State.HasLayouts() {
		fmt.Fprintln(s.Out, messageFor(s.Config.Locale, messages.NoLayouts))
		return
	}
	names := make([]string, len(s.State.Layouts))
	for i, l := range s.State.Layouts {
		names[i] = l.Name
	}
	fmt.Fprintf(s.Out, "Loaded layouts: %s\n", strings.Join(names, ", "))
}
