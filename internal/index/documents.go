package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Document is one indexed markdown file.
type Document struct {
	Path       string    `json:"path"`
	Permalink  string    `json:"permalink"`
	Title      string    `json:"title,omitempty"`
	DateSource string    `json:"date_source,omitempty"`
	Date       time.Time `json:"date"`
	HasDate    bool      `json:"has_date"`
	DateError  string    `json:"date_error,omitempty"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// Range bounds a listing by document date. Zero bounds are open. Undated
// documents are only listed when both bounds are open.
type Range struct {
	Since time.Time
	Until time.Time
}

func (r Range) open() bool {
	return r.Since.IsZero() && r.Until.IsZero()
}

const upsertSQL = `
	INSERT INTO documents (path, permalink, title, date_source, date_utc_ms, date_error, indexed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		permalink = excluded.permalink,
		title = excluded.title,
		date_source = excluded.date_source,
		date_utc_ms = excluded.date_utc_ms,
		date_error = excluded.date_error,
		indexed_at = excluded.indexed_at
`

const selectColumns = "path, permalink, title, date_source, date_utc_ms, date_error, indexed_at"

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, doc Document, now time.Time) error {
	var dateMs sql.NullInt64
	if doc.HasDate {
		dateMs = sql.NullInt64{Int64: doc.Date.UTC().UnixMilli(), Valid: true}
	}

	indexedAt := doc.IndexedAt
	if indexedAt.IsZero() {
		indexedAt = now
	}

	_, err := ex.ExecContext(ctx, upsertSQL,
		doc.Path, doc.Permalink, doc.Title, doc.DateSource, dateMs, doc.DateError, indexedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", doc.Path, err)
	}
	return nil
}

// Upsert inserts or updates a single document.
func (d *Database) Upsert(ctx context.Context, doc Document) error {
	return upsert(ctx, d.db, doc, time.Now())
}

// Replace swaps the whole index for docs in one transaction.
func (d *Database) Replace(ctx context.Context, docs []Document) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	now := time.Now()
	for _, doc := range docs {
		if err := upsert(ctx, tx, doc, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index: %w", err)
	}
	return nil
}

// Get returns the document indexed at path.
func (d *Database) Get(ctx context.Context, path string) (Document, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM documents WHERE path = ?", path)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}
	return doc, err
}

// List returns documents in r ordered by date, then path. Undated documents
// sort last.
func (d *Database) List(ctx context.Context, r Range) ([]Document, error) {
	var where []string
	var args []any
	if !r.Since.IsZero() {
		where = append(where, "date_utc_ms >= ?")
		args = append(args, r.Since.UTC().UnixMilli())
	}
	if !r.Until.IsZero() {
		where = append(where, "date_utc_ms <= ?")
		args = append(args, r.Until.UTC().UnixMilli())
	}

	query := "SELECT " + selectColumns + " FROM documents"
	if !r.open() {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date_utc_ms IS NULL, date_utc_ms, path"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Stats summarizes the index.
type Stats struct {
	Documents int `json:"documents"`
	Dated     int `json:"dated"`
	Invalid   int `json:"invalid"`
}

// Stats counts indexed documents.
func (d *Database) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := d.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(date_utc_ms),
			COALESCE(SUM(CASE WHEN date_error != '' THEN 1 ELSE 0 END), 0)
		FROM documents
	`).Scan(&s.Documents, &s.Dated, &s.Invalid)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (Document, error) {
	var doc Document
	var dateMs sql.NullInt64
	var indexedAt int64
	if err := s.Scan(&doc.Path, &doc.Permalink, &doc.Title, &doc.DateSource, &dateMs, &doc.DateError, &indexedAt); err != nil {
		return Document{}, err
	}
	if dateMs.Valid {
		doc.Date = time.UnixMilli(dateMs.Int64).UTC()
		doc.HasDate = true
	}
	doc.IndexedAt = time.Unix(indexedAt, 0).UTC()
	return doc, nil
}

// Count returns the number of indexed documents.
func (d *Database) Count(ctx context.Context) (int, error) {
	s, err := d.Stats(ctx)
	return s.Documents, err
}

// Delete removes the document at path. Deleting a missing path is not an
// error.
func (d *Database) Delete(ctx context.Context, path string) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
