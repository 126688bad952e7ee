package record

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dtnitsch/keyheat/internal/common"
	"github.com/dtnitsch/keyheat/pkg/recorder"
	"github.com/dtnitsch/keyheat/pkg/storage"
	"github.com/urfave/cli/v2"
)

// RecordAction captures key presses into a log until Ctrl+C. Without --out
// each run gets its own file in --dir and an entry in the index there.
func RecordAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	started := time.Now()
	sessionID := recorder.GenerateSessionID(started)
	dir := c.String("dir")
	path := c.String("out")
	if path == "" {
		path = recorder.GetSessionLogPath(dir, sessionID)
	} else {
		dir = filepath.Dir(path)
	}
	if err := common.EnsureDir(dir); err != nil {
		return err
	}

	if (&storage.Storage{}).HasFile(path) {
		logger.Info("Appending to existing log", "path", path)
	}

	rec := recorder.New(path, logger)
	if c.IsSet("flush") {
		rec.FlushInterval = c.Duration("flush")
	}

	fmt.Fprintf(c.App.Writer, "Recording to %s. Press Ctrl+C to stop.\r\n", path)
	logger.Info("Recording started", "path", path, "session_id", sessionID)
	if err := rec.Run(c.Context); err != nil {
		return err
	}

	info := recorder.SessionInfo{
		SessionID: sessionID,
		Started:   started,
		Ended:     time.Now(),
		File:      path,
		KeyCount:  rec.Count(),
	}
	if err := recorder.UpdateSessionIndex(dir, info); err != nil {
		logger.Warn("Failed to update recording index", "dir", dir, "error", err)
	}

	fmt.Fprintf(c.App.Writer, "Recorded %d keys to %s\n", rec.Count(), path)
	return nil
}
