package racks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kinvey/kinvey-go-sdk/rack"
	_ "modernc.org/sqlite"
)

// SQLiteCacheRack is a CacheRack backed by a single SQLite table storing one
// JSON blob per pathname, grounded on the same WAL-mode-DSN idiom as the
// teacher's storage/sqlite.Open and the JSON-in-BLOB document shape of
// SQLiteLTM's entry store.
type SQLiteCacheRack struct {
	db *sql.DB
}

// OpenSQLiteCacheRack opens (creating if necessary) a SQLite database at
// path and ensures the documents table exists.
func OpenSQLiteCacheRack(path string) (*SQLiteCacheRack, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	pathname TEXT PRIMARY KEY,
	body     BLOB NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteCacheRack{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteCacheRack) Close() error {
	return s.db.Close()
}

// Execute implements rack.CacheRack against the documents table.
func (s *SQLiteCacheRack) Execute(ctx context.Context, d rack.Descriptor) (rack.Response, error) {
	switch d.Method {
	case "GET":
		return s.get(ctx, d.Pathname)
	case "POST", "PUT", "PATCH":
		return s.upsert(ctx, d)
	case "DELETE":
		return s.delete(ctx, d.Pathname)
	default:
		return rack.Response{}, fmt.Errorf("sqlite cache rack: unsupported method %q", d.Method)
	}
}

func (s *SQLiteCacheRack) get(ctx context.Context, pathname string) (rack.Response, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE pathname = ?`, pathname).Scan(&body)
	if err == sql.ErrNoRows {
		return rack.Response{}, rack.ErrRackNotFound
	}
	if err != nil {
		return rack.Response{}, err
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return rack.Response{}, err
	}
	return rack.Response{StatusCode: 200, Data: data}, nil
}

func (s *SQLiteCacheRack) upsert(ctx context.Context, d rack.Descriptor) (rack.Response, error) {
	body, err := json.Marshal(d.Data)
	if err != nil {
		return rack.Response{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (pathname, body) VALUES (?, ?)
		 ON CONFLICT(pathname) DO UPDATE SET body = excluded.body`,
		d.Pathname, body)
	if err != nil {
		return rack.Response{}, err
	}
	status := 200
	if d.Method == "POST" {
		status = 201
	}
	return rack.Response{StatusCode: status, Data: d.Data}, nil
}

func (s *SQLiteCacheRack) delete(ctx context.Context, pathname string) (rack.Response, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE pathname = ?`, pathname)
	if err != nil {
		return rack.Response{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return rack.Response{}, err
	}
	if n == 0 {
		return rack.Response{}, rack.ErrRackNotFound
	}
	return rack.Response{StatusCode: 204}, nil
}

var _ rack.CacheRack = (*SQLiteCacheRack)(nil)
