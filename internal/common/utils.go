package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/caching"
	"github.com/dtnitsch/keyheat/pkg/db"
	"github.com/dtnitsch/keyheat/pkg/fetcher"
	"github.com/dtnitsch/keyheat/pkg/heatmap"
	"github.com/dtnitsch/keyheat/pkg/keymap"
	"github.com/dtnitsch/keyheat/pkg/layout"
	"github.com/dtnitsch/keyheat/pkg/mapreduce"
	"github.com/dtnitsch/keyheat/pkg/session"
	"github.com/dtnitsch/keyheat/pkg/storage"
	"github.com/urfave/cli/v2"
)

// ExitUserError is the exit code for conditions the user can fix by
// supplying a log or layouts and retrying.
const ExitUserError = 1

func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the config file named by --config and applies any flags
// the user set explicitly.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("locale") {
		cfg.Locale = c.String("locale")
	}
	if c.IsSet("layouts") {
		cfg.Layouts = SplitList(c.String("layouts"))
	}
	if c.IsSet("layout-dir") {
		cfg.LayoutDir = c.String("layout-dir")
	}
	if c.IsSet("layout-url") {
		cfg.LayoutURL = c.String("layout-url")
	}
	if c.IsSet("db") {
		cfg.LayoutDB = c.String("db")
	}
	if c.IsSet("strategy") {
		cfg.Strategy = c.String("strategy")
	}
	if c.IsSet("scope") {
		cfg.Scope = c.String("scope")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("top") {
		cfg.TopN = c.Int("top")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SplitList splits a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LayoutSource chains the configured layout sources: the layout directory,
// the SQLite store (the default one when layout_db is unset), the HTTP
// endpoint, then the built-in layouts. The returned close func releases the
// database, if one was opened.
func LayoutSource(cfg *models.Config, logger *slog.Logger) (layout.Source, func(), error) {
	chain := layout.Chain{layout.NewDirSource(cfg.LayoutDir)}
	closeFn := func() {}

	if dbPath := layoutStorePath(cfg, logger); dbPath != "" {
		database, err := db.Open(dbPath)
		if err != nil {
			return nil, closeFn, fmt.Errorf("failed to open layout database: %w", err)
		}
		chain = append(chain, layout.DBSource{DB: database})
		closeFn = func() { _ = database.Close() }
	}

	if cfg.LayoutURL != "" {
		src := layout.HTTPSource{BaseURL: cfg.LayoutURL, Fetcher: fetcher.NewFetcher()}
		cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			logger.Warn("Layout cache disabled", "cache_dir", cfg.CacheDir, "error", err)
		} else {
			src.Cache = cache
		}
		chain = append(chain, src)
	}

	chain = append(chain, layout.Builtin())
	return chain, closeFn, nil
}

// layoutStorePath is the configured layout database, or the default store
// that `layouts import` writes to. A default store that was never created is
// skipped rather than created; an empty result means no store.
func layoutStorePath(cfg *models.Config, logger *slog.Logger) string {
	if cfg.LayoutDB != "" {
		return cfg.LayoutDB
	}
	path, err := db.DefaultPath()
	if err != nil {
		logger.Warn("Skipping layout store", "error", err)
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("Skipping layout store", "path", path, "error", err)
		return ""
	}
	return path
}

// NewCompositor builds the compositor from the configured alias table,
// color strategy, offset and max scope.
func NewCompositor(cfg *models.Config) (*heatmap.Compositor, error) {
	strategy, err := heatmap.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	scope, err := models.ParseMaxScope(cfg.Scope)
	if err != nil {
		return nil, err
	}
	table := keymap.DefaultTable()
	if cfg.AliasFile != "" {
		table, err = keymap.LoadTable(cfg.AliasFile)
		if err != nil {
			return nil, err
		}
	}
	table = table.WithOverrides(cfg.Aliases)
	return heatmap.NewCompositor(keymap.NewNormalizer(table), strategy, cfg.Offset, scope), nil
}

// NewEngine wires the compositor and layout source into a session engine.
func NewEngine(cfg *models.Config, logger *slog.Logger) (*session.Engine, func(), error) {
	compositor, err := NewCompositor(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	src, closeFn, err := LayoutSource(cfg, logger)
	if err != nil {
		return nil, closeFn, err
	}
	return session.NewEngine(compositor, src, logger), closeFn, nil
}

// AnalyzeCommand reads every log under paths on the worker pool. Files that
// cannot be read are logged and skipped. No paths yields an empty command,
// which the engine reports as no log selected.
func AnalyzeCommand(ctx context.Context, cfg *models.Config, logger *slog.Logger, paths []string) (session.AnalyzeCommand, error) {
	if len(paths) == 0 {
		return session.AnalyzeCommand{}, nil
	}

	s := &storage.Storage{}
	files, err := s.ExpandPaths(paths)
	if err != nil {
		return session.AnalyzeCommand{}, err
	}
	if len(files) == 0 {
		return session.AnalyzeCommand{}, fmt.Errorf("no log files (*.txt, *.log) found under %s", strings.Join(paths, ", "))
	}

	results, err := mapreduce.MapFiles(ctx, logger, s, files, cfg.Workers)
	if err != nil {
		logger.Warn("Some logs could not be read", "error", err)
	}
	segments := mapreduce.Segments(results)
	if len(segments) == 0 {
		return session.AnalyzeCommand{}, fmt.Errorf("no readable logs: %w", err)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		merged := mapreduce.Reduce(mapreduce.Counters(results))
		logger.Debug("Logs read", "files", len(segments), "top_keys", mapreduce.TopKeys(merged, 5))
	}

	return session.AnalyzeCommand{
		Source:   strings.Join(paths, ", "),
		Segments: segments,
	}, nil
}

// Fail turns a failed session result into a user-facing exit error, or
// returns the wrapped internal error.
func Fail(res session.Result, locale string) error {
	var userErr *session.Error
	if errors.As(res.Err, &userErr) {
		return cli.Exit(res.Message(locale), ExitUserError)
	}
	return res.Err
}

// Status prints a non-error status message to stderr.
func Status(res session.Result, locale string) {
	if msg := res.Message(locale); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
