package analyze

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/keyheat/internal/common"
	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/render"
	"github.com/dtnitsch/keyheat/pkg/report"
	"github.com/dtnitsch/keyheat/pkg/session"
	"github.com/dtnitsch/keyheat/pkg/storage"
	"github.com/urfave/cli/v2"
)

// analyzeLogs runs the analyze command for the log paths given as
// arguments and returns the resulting state.
func analyzeLogs(c *cli.Context, cfg *models.Config, logger *slog.Logger, engine *session.Engine) (session.State, session.Result, error) {
	cmd, err := common.AnalyzeCommand(c.Context, cfg, logger, c.Args().Slice())
	if err != nil {
		return session.State{}, session.Result{}, err
	}
	state, res := engine.Dispatch(c.Context, session.State{}, cmd)
	if res.Err != nil {
		return state, res, common.Fail(res, cfg.Locale)
	}
	return state, res, nil
}

func printSummary(c *cli.Context, res session.Result) error {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	if format == report.FormatText {
		fmt.Fprint(c.App.Writer, res.Report)
		return nil
	}
	out, err := report.Encode(*res.Summary, format)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, out)
	return nil
}

// AnalyzeAction prints the key frequency report for one or more logs.
func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	engine := session.NewEngine(nil, nil, logger)
	_, res, err := analyzeLogs(c, cfg, logger, engine)
	if err != nil {
		return err
	}
	if err := printSummary(c, res); err != nil {
		return err
	}
	common.Status(res, cfg.Locale)
	return nil
}

// BigramsAction prints the top-N adjacent key pairs.
func BigramsAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	engine := session.NewEngine(nil, nil, logger)
	state, _, err := analyzeLogs(c, cfg, logger, engine)
	if err != nil {
		return err
	}

	_, res := engine.Dispatch(c.Context, state, session.BigramCommand{TopN: cfg.TopN})
	if res.Err != nil {
		return common.Fail(res, cfg.Locale)
	}
	return printSummary(c, res)
}

// HeatmapAction composes the configured layouts against the logs and
// writes a PNG, a terminal rendering, or the raw composition.
func HeatmapAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	engine, closeFn, err := common.NewEngine(cfg, logger)
	defer closeFn()
	if err != nil {
		return err
	}

	state, _, err := analyzeLogs(c, cfg, logger, engine)
	if err != nil {
		return err
	}

	state, res := engine.Dispatch(c.Context, state, session.LoadLayoutsCommand{Names: cfg.Layouts})
	if res.Err != nil {
		return common.Fail(res, cfg.Locale)
	}
	common.Status(res, cfg.Locale)

	_, res = engine.Dispatch(c.Context, state, session.HeatmapCommand{})
	if res.Err != nil {
		return common.Fail(res, cfg.Locale)
	}

	return WriteComposition(c, res, logger, cfg.Locale)
}

// WriteComposition sends a heatmap result to the outputs selected by
// --png, --format and --terminal. Terminal output is the default.
func WriteComposition(c *cli.Context, res session.Result, logger *slog.Logger, locale string) error {
	wrote := false

	if path := c.String("png"); path != "" {
		var buf bytes.Buffer
		if err := render.PNG(&buf, *res.Composition, render.DefaultPNGOptions()); err != nil {
			return err
		}
		s := &storage.Storage{}
		if err := s.SaveFile(path, buf.Bytes()); err != nil {
			return err
		}
		logger.Info("Heatmap written", "path", path, "layouts", len(res.Composition.Layouts))
		wrote = true
	}

	if f := c.String("format"); f != "" && f != string(report.FormatText) {
		format, err := report.ParseFormat(f)
		if err != nil {
			return err
		}
		out, err := report.Marshal(res.Composition, format)
		if err != nil {
			return err
		}
		fmt.Fprint(c.App.Writer, out)
		wrote = true
	}

	if c.Bool("terminal") || !wrote {
		fmt.Fprint(c.App.Writer, render.Terminal(*res.Composition))
	}

	common.Status(res, locale)
	return nil
}
