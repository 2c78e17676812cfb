// Package iosqlite implements the storage hook on an embedded SQLite
// database. Uses the pure-Go driver, so no cgo is involved.
package iosqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmodel/pkg/conn"
	"github.com/gnames/gnmodel/pkg/store"
	_ "modernc.org/sqlite"
)

const createTable = `
CREATE TABLE IF NOT EXISTS documents (
	kind TEXT NOT NULL,
	id TEXT NOT NULL,
	data TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (kind, id)
)`

// sqliteStore implements store.Store over one SQLite file.
type sqliteStore struct {
	db  *sql.DB
	enc gnfmt.Encoder
}

// Dial opens (creating if needed) an SQLite database at the address
// path and prepares the documents table. The address ":memory:" gives
// an ephemeral database. Dial is a conn.Dialer.
func Dial(ctx context.Context, address string) (store.Store, error) {
	db, err := sql.Open("sqlite", address)
	if err != nil {
		return nil, OpenError(address, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, OpenError(address, err)
	}
	if _, err = db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, TableError(err)
	}
	return &sqliteStore{db: db, enc: gnfmt.GNjson{}}, nil
}

var _ conn.Dialer = Dial

func (s *sqliteStore) Persist(
	ctx context.Context,
	kind, id string,
	fields store.Fields,
) (string, error) {
	if id == "" {
		id = store.NewID()
	}
	data, err := s.enc.Encode(fields)
	if err != nil {
		return "", EncodeError(kind, err)
	}
	q := `
INSERT INTO documents (kind, id, data, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (kind, id)
	DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	_, err = s.db.ExecContext(
		ctx, q, kind, id, string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", PersistError(kind, id, err)
	}
	return id, nil
}

func (s *sqliteStore) Lookup(
	ctx context.Context,
	kind, id string,
) (store.Fields, error) {
	q := `SELECT data FROM documents WHERE kind = ? AND id = ?`
	var data string
	err := s.db.QueryRowContext(ctx, q, kind, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, LookupError(kind, id, err)
	}
	var res store.Fields
	if err = s.enc.Decode([]byte(data), &res); err != nil {
		return nil, DecodeError(kind, id, err)
	}
	return res, nil
}

func (s *sqliteStore) Delete(
	ctx context.Context,
	kind, id string,
) error {
	q := `DELETE FROM documents WHERE kind = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, q, kind, id); err != nil {
		return DeleteError(kind, id, err)
	}
	return nil
}

// Close releases the database handle. Implements store.Closer.
func (s *sqliteStore) Close(_ context.Context) error {
	return s.db.Close()
}
