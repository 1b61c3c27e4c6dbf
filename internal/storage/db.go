package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"zhlaw/internal"
)

// DB is a lookup file handed to the downstream lookup service. It is rebuilt
// from scratch on every run.
type DB struct {
	conn *sql.DB
}

// Create removes any previous file at path and opens a fresh lookup database.
func Create(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return Open(path)
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS laws (
  position INTEGER NOT NULL,
  abbreviation TEXT NOT NULL,
  url TEXT NOT NULL,
  title TEXT NOT NULL,
  canton TEXT NOT NULL,
  language TEXT,
  UNIQUE(abbreviation, url)
);
CREATE INDEX IF NOT EXISTS idx_laws_abbreviation ON laws(abbreviation);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRecords stores records in their given order. A record whose
// (abbreviation, url) is already present is ignored, so the first one wins.
func (d *DB) InsertRecords(records []internal.OutputRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position), 0) FROM laws`).Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO laws (position, abbreviation, url, title, canton, language)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(abbreviation, url) DO NOTHING
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		next++
		var language *string
		if r.Language != "" {
			lang := r.Language
			language = &lang
		}
		if _, err := stmt.Exec(next, r.Abbreviation, r.URL, r.Title, r.Canton, language); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListRecords() ([]internal.OutputRecord, error) {
	return d.queryRecords(`SELECT abbreviation, url, title, canton, language FROM laws ORDER BY position`)
}

func (d *DB) LookupAbbreviation(abbreviation string) ([]internal.OutputRecord, error) {
	return d.queryRecords(`SELECT abbreviation, url, title, canton, language FROM laws WHERE abbreviation = ? ORDER BY position`, abbreviation)
}

func (d *DB) queryRecords(query string, args ...any) ([]internal.OutputRecord, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.OutputRecord
	for rows.Next() {
		var r internal.OutputRecord
		var language sql.NullString
		if err := rows.Scan(&r.Abbreviation, &r.URL, &r.Title, &r.Canton, &language); err != nil {
			return nil, err
		}
		r.Language = language.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// WriteLookup creates a fresh lookup file at path holding records and meta.
func WriteLookup(path string, records []internal.OutputRecord, meta map[string]string) error {
	db, err := Create(path)
	if err != nil {
		return err
	}
	if err := db.InsertRecords(records); err != nil {
		_ = db.Close()
		return err
	}
	for k, v := range meta {
		if err := db.SetMetadata(k, v); err != nil {
			_ = db.Close()
			return err
		}
	}
	return db.Close()
}
