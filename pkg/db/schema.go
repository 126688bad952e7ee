package db

// Only layout definitions live here; analysis results are never stored.
const schema = `
PRAGMA foreign_keys = ON;

-- Layouts table: one row per named layout
CREATE TABLE IF NOT EXISTS layouts (
    layout_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Layout keys: printed label and position, ordered as in the definition
CREATE TABLE IF NOT EXISTS layout_keys (
    key_id INTEGER PRIMARY KEY AUTOINCREMENT,
    layout_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    x REAL NOT NULL,
    y REAL NOT NULL,
    FOREIGN KEY (layout_id) REFERENCES layouts(layout_id) ON DELETE CASCADE,
    UNIQUE(layout_id, position)
);

CREATE INDEX IF NOT EXISTS idx_layout_keys_layout ON layout_keys(layout_id);
`
