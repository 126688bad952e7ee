package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dtnitsch/keyheat/internal/common"
	"github.com/dtnitsch/keyheat/pkg/session"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
)

const historyFile = "history"

// InteractiveAction starts a prompt that keeps one analysis session alive
// across commands. Configured layouts are loaded up front.
func InteractiveAction(c *cli.Context) error {
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

	shell := NewShell(engine, cfg, logger, c.App.Writer)
	if len(cfg.Layouts) > 0 {
		shell.dispatch(c.Context, session.LoadLayoutsCommand{Names: cfg.Layouts})
	}
	if c.NArg() > 0 {
		shell.Execute(c.Context, "analyze "+c.Args().First())
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeVerb)

	historyPath := filepath.Join(cfg.CacheDir, historyFile)
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer saveHistory(line, historyPath, logger.Warn)

	fmt.Fprintln(c.App.Writer, "keyheat interactive. Type 'help' for commands.")
	for {
		input, err := line.Prompt("keyheat> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(c.App.Writer)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if input != "" {
			line.AppendHistory(input)
		}
		if !shell.Execute(c.Context, input) {
			return nil
		}
		if err := c.Context.Err(); err != nil {
			return nil
		}
	}
}

func completeVerb(input string) []string {
	var out []string
	for _, v := range session.AllVerbs() {
		if len(input) <= len(v) && v[:len(input)] == input {
			out = append(out, v)
		}
	}
	return out
}

func saveHistory(line *liner.State, path string, warn func(msg string, args ...any)) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		warn("Failed to save history", "path", path, "error", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		warn("Failed to save history", "path", path, "error", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		warn("Failed to save history", "path", path, "error", err)
	}
}
