package layout

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/caching"
	"github.com/dtnitsch/keyheat/pkg/db"
	"github.com/dtnitsch/keyheat/pkg/fetcher"
)

var extensions = []struct {
	ext    string
	format Format
}{
	{".json", FormatJSON},
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
}

// FormatForPath picks the decoder from a file extension; unknown
// extensions are read as JSON.
func FormatForPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format
		}
	}
	return FormatJSON
}

// FSSource reads <name>.json, then <name>.yaml, then <name>.yml from a
// file system.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Load(ctx context.Context, name string) (models.Layout, error) {
	if err := validateName(name); err != nil {
		return models.Layout{}, err
	}
	for _, e := range extensions {
		data, err := fs.ReadFile(s.FS, name+e.ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return models.Layout{}, fmt.Errorf("failed to read layout %s: %w", name, err)
		}
		return Decode(name, data, e.format)
	}
	return models.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names lists the layouts available in the file system, sorted and
// without duplicates.
func (s FSSource) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.FS, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, e := range extensions {
			if strings.HasSuffix(entry.Name(), e.ext) {
				name := strings.TrimSuffix(entry.Name(), e.ext)
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// NewDirSource reads layouts from a directory on disk.
func NewDirSource(dir string) FSSource {
	return FSSource{FS: os.DirFS(dir)}
}

//go:embed builtin/*.json
var builtinFS embed.FS

// Builtin returns the layouts compiled into the binary.
func Builtin() FSSource {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return FSSource{FS: sub}
}

// HTTPSource fetches <BaseURL>/<name>.json. Responses are cached on disk
// when Cache is set.
type HTTPSource struct {
	BaseURL string
	Fetcher *fetcher.Fetcher
	Cache   *caching.Cache
}

func (s HTTPSource) url(name string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + url.PathEscape(name) + ".json"
}

func (s HTTPSource) Load(ctx context.Context, name string) (models.Layout, error) {
	if err := validateName(name); err != nil {
		return models.Layout{}, err
	}
	f := s.Fetcher
	if f == nil {
		f = fetcher.NewFetcher()
	}

	target := s.url(name)
	fetch := func() ([]byte, error) { return f.GetBytes(ctx, target) }

	var data []byte
	var err error
	if s.Cache != nil {
		data, _, err = s.Cache.GetOrFill(target, fetch)
	} else {
		data, err = fetch()
	}

	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return models.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return models.Layout{}, fmt.Errorf("failed to fetch layout %s: %w", name, err)
	}
	return Decode(name, data, FormatJSON)
}

// DBSource reads layouts from the SQLite layout store.
type DBSource struct {
	DB *db.DB
}

func (s DBSource) Load(ctx context.Context, name string) (models.Layout, error) {
	l, err := s.DB.GetLayout(ctx, name)
	if errors.Is(err, db.ErrLayoutNotFound) {
		return models.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return l, err
}

// ReadFile decodes a layout file on disk. The layout is named after the
// file unless name is given.
func ReadFile(path, name string) (models.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return Decode(name, data, FormatForPath(path))
}
