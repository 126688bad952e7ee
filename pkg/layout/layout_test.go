package layout

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/caching"
	"github.com/dtnitsch/keyheat/pkg/db"
	"github.com/dtnitsch/keyheat/pkg/fetcher"
)

const qwertyJSON = `[{"key":"q","x":10,"y":20},{"key":"Tab","x":0,"y":20}]`

func TestDecode_JSON(t *testing.T) {
	l, err := Decode("q", []byte(qwertyJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []models.LayoutKey{{Key: "q", X: 10, Y: 20}, {Key: "Tab", X: 0, Y: 20}}
	if l.Name != "q" || !reflect.DeepEqual(l.Keys, want) {
		t.Errorf("Decode() = %+v, want keys %+v", l, want)
	}
}

func TestDecode_YAML(t *testing.T) {
	data := "- key: a\n  x: 1\n  y: 2\n- key: b\n  x: 3\n  y: 4\n"
	l, err := Decode("y", []byte(data), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(l.Keys) != 2 || l.Keys[1].Key != "b" || l.Keys[1].X != 3 {
		t.Errorf("Decode() keys = %+v", l.Keys)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"object instead of array", `{"key":"a"}`},
		{"missing label", `[{"x":1,"y":2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode("bad", []byte(tt.data), FormatJSON); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecode_Null(t *testing.T) {
	l, err := Decode("empty", []byte("null"), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if l.Keys == nil || len(l.Keys) != 0 {
		t.Errorf("expected empty non-nil keys, got %#v", l.Keys)
	}
}

func TestFSSource_PrefersJSON(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{
		"qwerty.json": {Data: []byte(`[{"key":"j","x":1,"y":1}]`)},
		"qwerty.yaml": {Data: []byte("- key: y\n  x: 1\n  y: 1\n")},
		"bem.yml":     {Data: []byte("- key: b\n  x: 1\n  y: 1\n")},
	}}

	l, err := src.Load(context.Background(), "qwerty")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if l.Keys[0].Key != "j" {
		t.Errorf("expected JSON definition, got %+v", l.Keys)
	}

	l, err = src.Load(context.Background(), "bem")
	if err != nil {
		t.Fatalf("Load(bem) error = %v", err)
	}
	if l.Keys[0].Key != "b" {
		t.Errorf("expected yml definition, got %+v", l.Keys)
	}

	names, err := src.Names()
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"bem", "qwerty"}) {
		t.Errorf("Names() = %v", names)
	}
}

func TestFSSource_NotFound(t *testing.T) {
	_, err := FSSource{FS: fstest.MapFS{}}.Load(context.Background(), "dvorak")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFSSource_InvalidName(t *testing.T) {
	for _, name := range []string{"", "../etc/passwd", "a/b"} {
		_, err := FSSource{FS: fstest.MapFS{}}.Load(context.Background(), name)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Load(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestNewDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.json"), []byte(qwertyJSON), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	l, err := NewDirSource(dir).Load(context.Background(), "mine")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(l.Keys) != 2 {
		t.Errorf("expected 2 keys, got %d", len(l.Keys))
	}
}

func TestBuiltin_Qwerty(t *testing.T) {
	l, err := Builtin().Load(context.Background(), "qwerty")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	labels := make(map[string]bool)
	for _, k := range l.Keys {
		labels[k.Key] = true
	}
	for _, want := range []string{"q", "Tab", "Space", "Enter", "Shift"} {
		if !labels[want] {
			t.Errorf("builtin qwerty missing %q", want)
		}
	}
}

func TestHTTPSource_FetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/layouts/qwerty.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(qwertyJSON))
	}))
	defer srv.Close()

	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	src := HTTPSource{
		BaseURL: srv.URL + "/layouts/",
		Fetcher: fetcher.NewFetcherWithClient(srv.Client()),
		Cache:   cache,
	}

	for i := 0; i < 2; i++ {
		l, err := src.Load(context.Background(), "qwerty")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(l.Keys) != 2 {
			t.Errorf("expected 2 keys, got %d", len(l.Keys))
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	_, err = src.Load(context.Background(), "dvorak")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for 404, got %v", err)
	}
}

func TestDBSource(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "layouts.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	defer store.Close()

	if _, err := store.SaveLayout(models.Layout{Name: "stored", Keys: []models.LayoutKey{{Key: "a", X: 1, Y: 1}}}); err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	src := DBSource{DB: store}
	l, err := src.Load(context.Background(), "stored")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if l.Keys[0].Key != "a" {
		t.Errorf("unexpected keys %+v", l.Keys)
	}
	if _, err := src.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Load(ctx, "stored"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() with cancelled ctx error = %v, want context.Canceled", err)
	}
}

type failingSource struct{ err error }

func (f failingSource) Load(ctx context.Context, name string) (models.Layout, error) {
	return models.Layout{}, f.err
}

func TestChain(t *testing.T) {
	first := FSSource{FS: fstest.MapFS{"a.json": {Data: []byte(`[{"key":"first","x":0,"y":0}]`)}}}
	second := FSSource{FS: fstest.MapFS{
		"a.json": {Data: []byte(`[{"key":"second","x":0,"y":0}]`)},
		"b.json": {Data: []byte(`[{"key":"b","x":0,"y":0}]`)},
	}}
	chain := Chain{first, second}

	l, err := chain.Load(context.Background(), "a")
	if err != nil || l.Keys[0].Key != "first" {
		t.Errorf("expected first source to win, got %+v, %v", l, err)
	}
	l, err = chain.Load(context.Background(), "b")
	if err != nil || l.Keys[0].Key != "b" {
		t.Errorf("expected fallthrough to second source, got %+v, %v", l, err)
	}
	if _, err := chain.Load(context.Background(), "c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	boom := errors.New("boom")
	stopping := Chain{failingSource{err: boom}, second}
	if _, err := stopping.Load(context.Background(), "b"); !errors.Is(err, boom) {
		t.Errorf("expected non-NotFound error to stop the chain, got %v", err)
	}
}

func TestLoadAll_SkipsMissingAndWarns(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{
		"bem.json":    {Data: []byte(`[{"key":"b","x":0,"y":0}]`)},
		"broken.json": {Data: []byte(`{`)},
		"qwerty.json": {Data: []byte(qwertyJSON)},
	}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	layouts := LoadAll(context.Background(), src, []string{"bem", "missing", "broken", "qwerty"}, logger)
	if len(layouts) != 2 || layouts[0].Name != "bem" || layouts[1].Name != "qwerty" {
		t.Fatalf("LoadAll() = %+v", layouts)
	}
	out := buf.String()
	if strings.Count(out, `"level":"WARN"`) != 2 {
		t.Errorf("expected 2 warnings, got log %s", out)
	}
	if !strings.Contains(out, `"layout":"missing"`) {
		t.Errorf("expected warning naming the missing layout, got %s", out)
	}
}

func TestReadFile_NamesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("- key: z\n  x: 5\n  y: 6\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	l, err := ReadFile(path, "")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if l.Name != "custom" || l.Keys[0].Key != "z" {
		t.Errorf("ReadFile() = %+v", l)
	}
	l, _ = ReadFile(path, "renamed")
	if l.Name != "renamed" {
		t.Errorf("expected override name, got %s", l.Name)
	}
}
