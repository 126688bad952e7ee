package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

const DefaultFlushInterval = time.Second

// Recorder buffers encoded key presses and appends them to Path.
type Recorder struct {
	Path          string
	FlushInterval time.Duration
	Logger        *slog.Logger
	Now           func() time.Time

	mu    sync.Mutex
	buf   strings.Builder
	enc   *Encoder
	count int
}

func New(path string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{
		Path:          path,
		FlushInterval: DefaultFlushInterval,
		Logger:        logger,
		Now:           time.Now,
		enc:           NewEncoder(),
	}
}

// Count is the number of key presses recorded so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Run reads the terminal keyboard until Ctrl+C or ctx is done.
func (r *Recorder) Run(ctx context.Context) error {
	events, err := keyboard.GetKeys(32)
	if err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer func() { _ = keyboard.Close() }()

	return r.Consume(ctx, events)
}

// Consume records events until Ctrl+C, a closed channel, a keyboard error,
// or ctx is done. The buffer is flushed every FlushInterval (DefaultFlushInterval
// when unset or not positive) and on return.
func (r *Recorder) Consume(ctx context.Context, events <-chan keyboard.KeyEvent) error {
	if info, err := os.Stat(r.Path); err == nil && info.Size() > 0 {
		r.mu.Lock()
		r.enc.Resume(r.Now())
		r.mu.Unlock()
	}

	interval := r.FlushInterval
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if err := r.Flush(); err != nil {
				r.Logger.Error("Failed to flush key buffer", "path", r.Path, "error", err)
			}
		case ev, ok := <-events:
			if !ok {
				break loop
			}
			if ev.Err != nil {
				runErr = fmt.Errorf("keyboard error: %w", ev.Err)
				break loop
			}
			if ev.Key == keyboard.KeyCtrlC {
				break loop
			}
			r.record(TokenFor(ev))
		}
	}

	if err := r.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	r.Logger.Info("Recording stopped", "path", r.Path, "keys", r.Count())
	return runErr
}

func (r *Recorder) record(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.WriteString(r.enc.Encode(token, r.Now()))
	r.count++
}

// Flush appends the buffered text to Path.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buf.Len() == 0 {
		return nil
	}

	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	if _, err := f.WriteString(r.buf.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log: %w", err)
	}
	r.buf.Reset()
	return nil
}
