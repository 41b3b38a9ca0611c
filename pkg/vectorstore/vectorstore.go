// Package vectorstore provides a per-session embedding index backed by
// sqlite-vec. Each store is scoped to one document index build; nothing is
// shared across sessions.
package vectorstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Chunk is one indexed text fragment.
type Chunk struct {
	Content string
	Page    int
}

// Store holds chunks and their embeddings for KNN retrieval.
type Store struct {
	db   *sql.DB
	dim  int
	path string // non-empty for the on-disk variant, removed on Close
}

// NewMemory creates an in-memory store for vectors of the given dimension.
func NewMemory(dim int) (*Store, error) {
	return open(":memory:", "", dim)
}

// NewPersistent creates a store backed by a database file at path. The
// file is removed if initialization fails partway, and again on Close.
func NewPersistent(path string, dim int) (*Store, error) {
	s, err := open(path, path, dim)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return s, nil
}

func open(dsn, path string, dim int) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension: %d", dim)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps the :memory: database alive and shared.
	db.SetMaxOpenConns(1)

	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS chunks (
    id INTEGER PRIMARY KEY,
    content TEXT NOT NULL,
    page INTEGER
);
CREATE VIRTUAL TABLE IF NOT EXISTS vec_chunks USING vec0(
    chunk_id INTEGER PRIMARY KEY,
    embedding float[%d]
);`, dim)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, dim: dim, path: path}, nil
}

// Add inserts chunks with their index-aligned embeddings.
func (s *Store) Add(ctx context.Context, chunks []Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, chunk := range chunks {
		if len(embeddings[i]) != s.dim {
			return fmt.Errorf("embedding %d has dimension %d, want %d", i, len(embeddings[i]), s.dim)
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (content, page) VALUES (?, ?)",
			chunk.Content, chunk.Page)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vec_chunks (chunk_id, embedding) VALUES (?, ?)",
			id, serializeFloat32(embeddings[i])); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Search returns the k nearest chunks to the query embedding.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]Chunk, error) {
	if len(query) != s.dim {
		return nil, fmt.Errorf("query has dimension %d, want %d", len(query), s.dim)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.content, c.page
		FROM vec_chunks v
		JOIN chunks c ON c.id = v.chunk_id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`, serializeFloat32(query), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.Content, &c.Page); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Count returns the number of indexed chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

// Close releases the database and deletes the backing file, if any.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.path != "" {
		os.Remove(s.path)
	}
	return err
}

// serializeFloat32 converts a float32 slice to little-endian bytes for
// sqlite-vec.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
