// Package layout loads keyboard layout definitions from a directory, an
// HTTP endpoint, the SQLite store, or the layouts built into the binary.
package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/keyheat/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound    = errors.New("layout not found")
	ErrInvalidName = errors.New("invalid layout name")
)

// Source loads a single layout by name.
type Source interface {
	Load(ctx context.Context, name string) (models.Layout, error)
}

// Format of a layout definition file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Decode parses an ordered array of {key, x, y} entries.
func Decode(name string, data []byte, format Format) (models.Layout, error) {
	keys := []models.LayoutKey{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &keys)
	default:
		err = json.Unmarshal(data, &keys)
	}
	if err != nil {
		return models.Layout{}, fmt.Errorf("failed to parse layout %s: %w", name, err)
	}
	if keys == nil {
		keys = []models.LayoutKey{}
	}

	for i, k := range keys {
		if k.Key == "" {
			return models.Layout{}, fmt.Errorf("layout %s: key %d has no label", name, i)
		}
	}

	return models.Layout{Name: name, Keys: keys}, nil
}

// validateName rejects names that could escape a directory or URL path.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Chain tries each source in order. A source reporting ErrNotFound passes
// the name on to the next; any other error stops the search.
type Chain []Source

func (c Chain) Load(ctx context.Context, name string) (models.Layout, error) {
	for _, src := range c {
		l, err := src.Load(ctx, name)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return models.Layout{}, err
		}
	}
	return models.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// LoadAll loads every name in order. A layout that is missing or fails to
// load is logged at Warn and left out; the rest are returned.
func LoadAll(ctx context.Context, src Source, names []string, logger *slog.Logger) []models.Layout {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	layouts := make([]models.Layout, 0, len(names))
	for _, name := range names {
		l, err := src.Load(ctx, name)
		if err != nil {
			logger.Warn("Skipping layout", "layout", name, "error", err)
			continue
		}
		layouts = append(layouts, l)
	}
	return layouts
}
