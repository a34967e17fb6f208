package databases

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	// registers the "postgres" driver
	_ "github.com/lib/pq"
	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	doc TEXT NOT NULL,
	PRIMARY KEY (collection, id)
)`

const upsertRecord = `INSERT INTO records (collection, id, doc) VALUES (?, ?, ?)
ON CONFLICT(collection, id) DO UPDATE SET doc = excluded.doc`

// SQLBackend keeps records as JSON documents in a single table
type SQLBackend struct {
	db *sql.DB
	// rebind rewrites ? placeholders for drivers that number them
	rebind func(string) string
}

// OpenSQLite opens (or creates) a sqlite database file
func OpenSQLite(path string) (*SQLBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	return NewSQLBackend(db)
}

// OpenPostgres connects to postgres and checks the connection
func OpenPostgres(dsn string, maxConns int) (*SQLBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return NewPostgresBackend(db)
}

// NewSQLBackend creates the records table when missing
func NewSQLBackend(db *sql.DB) (*SQLBackend, error) {
	return newSQLBackend(db, func(q string) string { return q })
}

// NewPostgresBackend is NewSQLBackend with $n placeholders
func NewPostgresBackend(db *sql.DB) (*SQLBackend, error) {
	return newSQLBackend(db, dollarPlaceholders)
}

func newSQLBackend(db *sql.DB, rebind func(string) string) (*SQLBackend, error) {
	if _, err := db.Exec(createRecordsTable); err != nil {
		return nil, fmt.Errorf("failed to create records table: %w", err)
	}
	return &SQLBackend{db: db, rebind: rebind}, nil
}

func dollarPlaceholders(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close releases the database
func (s *SQLBackend) Close() error {
	return s.db.Close()
}

// Load reads every record in the collection
func (s *SQLBackend) Load(ctx context.Context, collection string) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT id, doc FROM records WHERE collection = ?`), collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	snapshot := Snapshot{}
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		rec := Record{}
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
		}
		snapshot[id] = rec
	}
	return snapshot, rows.Err()
}

// Put replaces the record
func (s *SQLBackend) Put(ctx context.Context, collection, id string, record Record) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.rebind(upsertRecord), collection, id, string(doc))
	return err
}

// Patch merges the fields into the stored record inside one transaction
func (s *SQLBackend) Patch(ctx context.Context, collection, id string, patch Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	base := Record{}
	var doc string
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT doc FROM records WHERE collection = ? AND id = ?`), collection, id).Scan(&doc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal([]byte(doc), &base); err != nil {
			return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
		}
	}

	merged, err := json.Marshal(merge(base, patch))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.rebind(upsertRecord), collection, id, string(merged)); err != nil {
		return err
	}
	return tx.Commit()
}
