package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/keyheat/models"
)

var ErrLayoutNotFound = errors.New("layout not found")

// LayoutInfo summarizes a stored layout.
type LayoutInfo struct {
	LayoutID  int64
	Name      string
	KeyCount  int
	UpdatedAt time.Time
}

// SaveLayout inserts a layout or replaces the keys of an existing one with
// the same name. Returns the layout_id.
func (db *DB) SaveLayout(layout models.Layout) (int64, error) {
	if layout.Name == "" {
		return 0, fmt.Errorf("layout name is required")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var layoutID int64
	err = tx.QueryRow("SELECT layout_id FROM layouts WHERE name = ?", layout.Name).Scan(&layoutID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.Exec("INSERT INTO layouts (name) VALUES (?)", layout.Name)
		if err != nil {
			return 0, fmt.Errorf("failed to insert layout: %w", err)
		}
		layoutID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get layout ID: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("failed to check existing layout: %w", err)
	default:
		if _, err := tx.Exec("DELETE FROM layout_keys WHERE layout_id = ?", layoutID); err != nil {
			return 0, fmt.Errorf("failed to clear layout keys: %w", err)
		}
		if _, err := tx.Exec("UPDATE layouts SET updated_at = CURRENT_TIMESTAMP WHERE layout_id = ?", layoutID); err != nil {
			return 0, fmt.Errorf("failed to touch layout: %w", err)
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO layout_keys (layout_id, position, label, x, y)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare key insert: %w", err)
	}
	defer stmt.Close()

	for i, key := range layout.Keys {
		if _, err := stmt.Exec(layoutID, i, key.Key, key.X, key.Y); err != nil {
			return 0, fmt.Errorf("failed to insert key %q: %w", key.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit layout: %w", err)
	}
	return layoutID, nil
}

// GetLayout loads a layout by name with keys in definition order.
func (db *DB) GetLayout(ctx context.Context, name string) (models.Layout, error) {
	var layoutID int64
	err := db.QueryRowContext(ctx, "SELECT layout_id FROM layouts WHERE name = ?", name).Scan(&layoutID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Layout{}, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	if err != nil {
		return models.Layout{}, fmt.Errorf("failed to query layout: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT label, x, y FROM layout_keys
		WHERE layout_id = ?
		ORDER BY position
	`, layoutID)
	if err != nil {
		return models.Layout{}, fmt.Errorf("failed to query layout keys: %w", err)
	}
	defer rows.Close()

	layout := models.Layout{Name: name, Keys: []models.LayoutKey{}}
	for rows.Next() {
		var key models.LayoutKey
		if err := rows.Scan(&key.Key, &key.X, &key.Y); err != nil {
			return models.Layout{}, fmt.Errorf("failed to scan layout key: %w", err)
		}
		layout.Keys = append(layout.Keys, key)
	}
	if err := rows.Err(); err != nil {
		return models.Layout{}, fmt.Errorf("failed to read layout keys: %w", err)
	}

	return layout, nil
}

// ListLayouts returns every stored layout ordered by name.
func (db *DB) ListLayouts() ([]LayoutInfo, error) {
	rows, err := db.Query(`
		SELECT l.layout_id, l.name, COUNT(k.key_id), l.updated_at
		FROM layouts l
		LEFT JOIN layout_keys k ON k.layout_id = l.layout_id
		GROUP BY l.layout_id
		ORDER BY l.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var layouts []LayoutInfo
	for rows.Next() {
		var info LayoutInfo
		if err := rows.Scan(&info.LayoutID, &info.Name, &info.KeyCount, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		layouts = append(layouts, info)
	}
	return layouts, rows.Err()
}

// DeleteLayout removes a layout and, via cascade, its keys.
func (db *DB) DeleteLayout(name string) error {
	result, err := db.Exec("DELETE FROM layouts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	return nil
}
