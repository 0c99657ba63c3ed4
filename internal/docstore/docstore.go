// Package docstore provides a hierarchical, path-addressed document store on
// top of the relational database layer. Documents are JSON objects addressed
// by alternating collection/id path segments, e.g. users/<uid>/games/<date>,
// mirroring the layout a hosted document database would use.
package docstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/database"
)

var (
	// ErrInvalidPath is returned for paths with empty segments or the wrong
	// segment parity (documents need an even count, collections an odd one).
	ErrInvalidPath = errors.New("invalid document path")
)

// Document is a decoded JSON object stored at a path.
type Document map[string]interface{}

// Store is the document store backed by the documents table.
type Store struct {
	db *database.DB
}

// New creates a document store over an initialized database.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// validatePath checks segment parity. Document paths alternate
// collection/id, so they always have an even number of non-empty segments;
// collection paths have an odd number.
func validatePath(path string, wantDocument bool) error {
	if path == "" {
		return ErrInvalidPath
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "" {
			return ErrInvalidPath
		}
	}
	isDocument := len(segments)%2 == 0
	if isDocument != wantDocument {
		return ErrInvalidPath
	}
	return nil
}

// collectionOf returns the collection portion of a document path (the path
// minus its final segment).
func collectionOf(path string) string {
	idx := strings.LastIndex(path, "/")
	return path[:idx]
}

// GetDocument fetches the document at path. A missing document returns
// (nil, nil), not an error.
func (s *Store) GetDocument(path string) (Document, error) {
	return getDocument(s.db, path)
}

// SetDocument writes the document at path. With merge set, the given fields
// are shallow-merged into any existing document; fields not named are left
// untouched. Without merge the document is replaced wholesale. The write is
// an upsert either way.
func (s *Store) SetDocument(path string, doc Document, merge bool) error {
	return setDocument(s.db, path, doc, merge)
}

// DeleteDocument removes the document at path. Deleting a missing document
// is not an error.
func (s *Store) DeleteDocument(path string) error {
	if err := validatePath(path, true); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM documents WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", path, err)
	}
	return nil
}

// RunTransaction executes fn against a transactional view of the store.
// Every document written inside fn commits atomically, or not at all.
func (s *Store) RunTransaction(fn func(tx *Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Tx is a transactional handle to the store, passed to RunTransaction callbacks.
type Tx struct {
	tx *database.Tx
}

// GetDocument fetches a document within the transaction.
func (t *Tx) GetDocument(path string) (Document, error) {
	return getDocument(t.tx, path)
}

// SetDocument writes a document within the transaction.
func (t *Tx) SetDocument(path string, doc Document, merge bool) error {
	return setDocument(t.tx, path, doc, merge)
}

// DeleteDocument removes a document within the transaction.
func (t *Tx) DeleteDocument(path string) error {
	if err := validatePath(path, true); err != nil {
		return err
	}
	_, err := t.tx.Exec("DELETE FROM documents WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", path, err)
	}
	return nil
}

func getDocument(q database.DBTX, path string) (Document, error) {
	if err := validatePath(path, true); err != nil {
		return nil, err
	}

	var raw string
	err := q.QueryRow("SELECT data FROM documents WHERE path = ?", path).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", path, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	return doc, nil
}

func decodeDocument(raw string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func setDocument(q database.DBTX, path string, doc Document, merge bool) error {
	if err := validatePath(path, true); err != nil {
		return err
	}

	toWrite := doc
	if merge {
		existing, err := getDocument(q, path)
		if err != nil {
			return err
		}
		if existing != nil {
			for key, value := range doc {
				existing[key] = value
			}
			toWrite = existing
		}
	}

	raw, err := json.Marshal(toWrite)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", path, err)
	}

	now := time.Now().UTC()
	result, err := q.Exec(
		"UPDATE documents SET data = ?, updated_at = ? WHERE path = ?",
		string(raw), now, path,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", path, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of document %s: %w", path, err)
	}
	if affected == 0 {
		_, err = q.Exec(
			"INSERT INTO documents (path, collection, data, updated_at) VALUES (?, ?, ?, ?)",
			path, collectionOf(path), string(raw), now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document %s: %w", path, err)
		}
	}
	return nil
}
