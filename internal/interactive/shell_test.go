package interactive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/layout"
	"github.com/dtnitsch/keyheat/pkg/session"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	src := layout.FSSource{FS: fstest.MapFS{
		"mini.json": {Data: []byte(`[{"key":"a","x":30,"y":60},{"key":"b","x":80,"y":60}]`)},
	}}
	cfg := models.DefaultConfig()
	cfg.Locale = "en"
	var out bytes.Buffer
	return NewShell(session.NewEngine(nil, src, nil), cfg, nil, &out), &out
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestShell_Session(t *testing.T) {
	shell, out := newTestShell(t)
	ctx := context.Background()

	if !shell.Execute(ctx, "analyze "+writeLog(t, "a a b\na")) {
		t.Fatal("analyze should not quit")
	}
	if !strings.Contains(out.String(), "a: 3\nb: 1\n") {
		t.Errorf("missing frequency report in %q", out.String())
	}
	if !strings.Contains(out.String(), "Analyzed 4 key events (2 distinct).") {
		t.Errorf("missing status in %q", out.String())
	}

	out.Reset()
	shell.Execute(ctx, "bigrams 2")
	if !strings.Contains(out.String(), "a a: 1\na b: 1\n") || strings.Contains(out.String(), "b a: 1") {
		t.Errorf("unexpected bigram output %q", out.String())
	}

	out.Reset()
	shell.Execute(ctx, "heatmap")
	if !strings.Contains(out.String(), "Layouts not loaded") {
		t.Errorf("expected no-layouts message, got %q", out.String())
	}

	out.Reset()
	shell.Execute(ctx, "layouts mini")
	shell.Execute(ctx, "heatmap")
	if !strings.Contains(out.String(), "MINI") {
		t.Errorf("expected terminal heatmap, got %q", out.String())
	}

	png := filepath.Join(t.TempDir(), "out", "heat.png")
	shell.Execute(ctx, "heatmap "+png)
	if _, err := os.Stat(png); err != nil {
		t.Errorf("expected PNG at %s: %v", png, err)
	}
}

func TestShell_ErrorsKeepState(t *testing.T) {
	shell, out := newTestShell(t)
	ctx := context.Background()

	shell.Execute(ctx, "heatmap")
	if !strings.Contains(out.String(), "No log data available") {
		t.Errorf("expected no-analysis message, got %q", out.String())
	}

	shell.Execute(ctx, "analyze "+writeLog(t, "x y"))
	before := shell.State

	out.Reset()
	shell.Execute(ctx, "analyze")
	if !strings.Contains(out.String(), "Please select a log file to analyze.") {
		t.Errorf("expected no-log message, got %q", out.String())
	}
	if shell.State.Frequencies != before.Frequencies {
		t.Error("failed analyze replaced the previous analysis")
	}

	out.Reset()
	shell.Execute(ctx, "analyze "+filepath.Join(t.TempDir(), "missing.log"))
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected read error, got %q", out.String())
	}
	if shell.State.Frequencies != before.Frequencies {
		t.Error("unreadable log replaced the previous analysis")
	}
}

func TestShell_UnknownAndQuit(t *testing.T) {
	shell, out := newTestShell(t)
	ctx := context.Background()

	if !shell.Execute(ctx, "heatmpa") {
		t.Fatal("unknown verb should not quit")
	}
	if !strings.Contains(out.String(), `Did you mean "heatmap"?`) {
		t.Errorf("expected suggestion, got %q", out.String())
	}
	if shell.Execute(ctx, "quit") {
		t.Error("quit should return false")
	}
	if !shell.Execute(ctx, "   ") {
		t.Error("blank line should not quit")
	}
}

func TestShell_BigramsZeroShowsAll(t *testing.T) {
	shell, out := newTestShell(t)
	shell.Config.TopN = 1
	ctx := context.Background()
	shell.Execute(ctx, "analyze "+writeLog(t, "a a b\na"))

	out.Reset()
	shell.Execute(ctx, "bigrams")
	if strings.Contains(out.String(), "a b: 1") {
		t.Errorf("bigrams without a count should use top_n = 1, got %q", out.String())
	}

	out.Reset()
	shell.Execute(ctx, "bigrams 0")
	for _, want := range []string{"(all)", "a a: 1", "a b: 1", "b a: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("bigrams 0 output missing %q: %q", want, out.String())
		}
	}
}

func TestShell_DualLocale(t *testing.T) {
	shell, out := newTestShell(t)
	shell.Config.Locale = ""
	shell.Execute(context.Background(), "bigrams")
	if !strings.Contains(out.String(), "キー入力がありません") || !strings.Contains(out.String(), "no key events") {
		t.Errorf("expected both locales, got %q", out.String())
	}
}

func TestCompleteVerb(t *testing.T) {
	got := completeVerb("he")
	if len(got) != 2 {
		t.Errorf("completeVerb(he) = %v, want heatmap and help", got)
	}
}
