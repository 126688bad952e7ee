package common

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/db"
	"github.com/dtnitsch/keyheat/pkg/layout"
	"github.com/dtnitsch/keyheat/pkg/messages"
	"github.com/dtnitsch/keyheat/pkg/session"
	"github.com/urfave/cli/v2"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"qwerty", []string{"qwerty"}},
		{"qwerty, bem", []string{"qwerty", "bem"}},
		{" ,qwerty,, ", []string{"qwerty"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := SplitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFail_UserErrorExitsWithOne(t *testing.T) {
	res := session.Result{Status: messages.NoLogSelected, Err: session.ErrNoLog}

	err := Fail(res, "en")
	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fail() = %T, want cli.ExitCoder", err)
	}
	if exitErr.ExitCode() != ExitUserError {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitUserError)
	}
	if exitErr.Error() != messages.Text("en", messages.NoLogSelected) {
		t.Errorf("message = %q", exitErr.Error())
	}
}

func TestFail_InternalErrorPassesThrough(t *testing.T) {
	internal := errors.New("disk on fire")
	err := Fail(session.Result{Err: internal}, "en")

	if !errors.Is(err, internal) {
		t.Errorf("Fail() = %v, want the wrapped error", err)
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		t.Error("internal error became an ExitCoder")
	}
}

func TestNewCompositor(t *testing.T) {
	cfg := models.DefaultConfig()
	if _, err := NewCompositor(cfg); err != nil {
		t.Fatalf("NewCompositor() failed: %v", err)
	}

	cfg.AliasFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewCompositor(cfg); err == nil {
		t.Error("NewCompositor() with missing alias file succeeded, want error")
	}

	cfg = models.DefaultConfig()
	cfg.Strategy = "plasma"
	if _, err := NewCompositor(cfg); err == nil {
		t.Error("NewCompositor() with unknown strategy succeeded, want error")
	}
}

func writeLayoutFile(t *testing.T, dir, name, label string) {
	t.Helper()
	data := `[{"key":"` + label + `","x":0,"y":0}]`
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(data), 0644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}
}

func firstLabel(t *testing.T, src layout.Source, name string) string {
	t.Helper()
	l, err := src.Load(context.Background(), name)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", name, err)
	}
	if len(l.Keys) == 0 {
		t.Fatalf("Load(%q) returned no keys", name)
	}
	return l.Keys[0].Key
}

func TestLayoutSource_ChainOrder(t *testing.T) {
	dir := t.TempDir()
	writeLayoutFile(t, dir, "shared", "from-dir")
	writeLayoutFile(t, dir, "dironly", "from-dir")

	dbPath := filepath.Join(t.TempDir(), "layouts.db")
	store, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	for _, name := range []string{"shared", "stored"} {
		l := models.Layout{Name: name, Keys: []models.LayoutKey{{Key: "from-db"}}}
		if _, err := store.SaveLayout(l); err != nil {
			t.Fatalf("SaveLayout(%q) error = %v", name, err)
		}
	}
	store.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/remote.json", "/stored.json":
			w.Write([]byte(`[{"key":"from-http","x":0,"y":0}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := models.DefaultConfig()
	cfg.LayoutDir = dir
	cfg.LayoutDB = dbPath
	cfg.LayoutURL = srv.URL
	cfg.CacheDir = t.TempDir()

	src, closeFn, err := LayoutSource(cfg, slog.New(slog.DiscardHandler))
	defer closeFn()
	if err != nil {
		t.Fatalf("LayoutSource() error = %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"shared", "from-dir"},
		{"dironly", "from-dir"},
		{"stored", "from-db"},
		{"remote", "from-http"},
		{"qwerty", "Esc"},
	}
	for _, tt := range tests {
		if got := firstLabel(t, src, tt.name); got != tt.want {
			t.Errorf("Load(%q) first key = %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := src.Load(context.Background(), "dvorak"); !errors.Is(err, layout.ErrNotFound) {
		t.Errorf("Load(dvorak) error = %v, want ErrNotFound", err)
	}
}

func TestLayoutSource_DefaultStore(t *testing.T) {
	path, err := db.DefaultPath()
	if err != nil {
		t.Skipf("no default store path: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Skipf("default store %s already exists", path)
	}

	store, err := db.Open("")
	if err != nil {
		t.Fatalf("db.Open(\"\") error = %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	_, err = store.SaveLayout(models.Layout{Name: "imported", Keys: []models.LayoutKey{{Key: "from-db"}}})
	store.Close()
	if err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	cfg := models.DefaultConfig()
	cfg.LayoutDir = t.TempDir()
	src, closeFn, err := LayoutSource(cfg, slog.New(slog.DiscardHandler))
	defer closeFn()
	if err != nil {
		t.Fatalf("LayoutSource() error = %v", err)
	}

	if got := firstLabel(t, src, "imported"); got != "from-db" {
		t.Errorf("Load(imported) first key = %q, want %q", got, "from-db")
	}
}

func TestLayoutSource_MissingDefaultStoreIsSkipped(t *testing.T) {
	path, err := db.DefaultPath()
	if err != nil {
		t.Skipf("no default store path: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Skipf("default store %s already exists", path)
	}

	cfg := models.DefaultConfig()
	cfg.LayoutDir = t.TempDir()
	src, closeFn, err := LayoutSource(cfg, slog.New(slog.DiscardHandler))
	defer closeFn()
	if err != nil {
		t.Fatalf("LayoutSource() error = %v", err)
	}

	if got := firstLabel(t, src, "qwerty"); got != "Esc" {
		t.Errorf("Load(qwerty) first key = %q, want Esc", got)
	}
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
		t.Error("LayoutSource created the default store")
	}
}
