package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docforge/docforge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
)

// Store is a SQLite-backed implementation of driven.DocumentStore.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DocumentStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docforge/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docforge", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertChunks stores chunks keyed by ID within a single transaction.
func (s *Store) UpsertChunks(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, ordinal, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			ordinal = excluded.ordinal,
			content = excluded.content
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Ordinal, chunk.Text); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SearchChunks performs a case-insensitive substring match over chunk text,
// ordered by ascending ordinal and capped at limit.
func (s *Store) SearchChunks(ctx context.Context, keyword string, limit int) ([]domain.Chunk, error) {
	if keyword == "" || limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, ordinal, content
		FROM chunks
		WHERE instr(lower(content), lower(?)) > 0
		ORDER BY ordinal, document_id
		LIMIT ?
	`, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// GetChunk retrieves a specific chunk by ID.
func (s *Store) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, ordinal, content
		FROM chunks WHERE id = ?
	`, id)

	var chunk domain.Chunk
	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Ordinal, &chunk.Text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return &chunk, nil
}

// GetChunks retrieves all chunks for a document, ordered by ordinal.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, ordinal, content
		FROM chunks WHERE document_id = ?
		ORDER BY ordinal
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// UpsertDocument stores or updates a document record and wholesale-replaces
// its sections within one transaction.
func (s *Store) UpsertDocument(ctx context.Context, record domain.DocumentRecord, sections []domain.Section) error {
	pagesJSON, err := json.Marshal(record.LowQualityPages)
	if err != nil {
		return fmt.Errorf("marshalling low-quality pages: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, source_path, title, source_type, chunk_count, low_quality_pages, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_path = excluded.source_path,
			title = excluded.title,
			source_type = excluded.source_type,
			chunk_count = excluded.chunk_count,
			low_quality_pages = excluded.low_quality_pages,
			imported_at = excluded.imported_at
	`, record.ID, record.SourcePath, record.Title, string(record.SourceType),
		record.ChunkCount, string(pagesJSON), record.ImportedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE document_id = ?", record.ID); err != nil {
		return fmt.Errorf("clearing sections: %w", err)
	}

	for _, section := range sections {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sections (document_id, level, title, chunk_start_ordinal)
			VALUES (?, ?, ?, ?)
		`, record.ID, section.Level, section.Title, section.ChunkStartOrdinal)
		if err != nil {
			return fmt.Errorf("saving section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document record by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_path, title, source_type, chunk_count, low_quality_pages, imported_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocumentRow(row)
}

// RecentDocuments returns document records newest-first by import time.
func (s *Store) RecentDocuments(ctx context.Context, limit int) ([]domain.DocumentRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_path, title, source_type, chunk_count, low_quality_pages, imported_at
		FROM documents
		ORDER BY imported_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []domain.DocumentRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return records, nil
}

// Sections returns a document's heading skeleton ordered by chunk start
// ordinal.
func (s *Store) Sections(ctx context.Context, documentID string) ([]domain.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, level, title, chunk_start_ordinal
		FROM sections WHERE document_id = ?
		ORDER BY chunk_start_ordinal
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section //nolint:prealloc // size unknown from query
	for rows.Next() {
		var section domain.Section
		if err := rows.Scan(&section.DocumentID, &section.Level, &section.Title, &section.ChunkStartOrdinal); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}

	return sections, nil
}

// scanChunks scans multiple chunk rows.
func scanChunks(rows *sql.Rows) ([]domain.Chunk, error) {
	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Ordinal, &chunk.Text); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// scanDocumentRow scans a single document record row.
func scanDocumentRow(row *sql.Row) (*domain.DocumentRecord, error) {
	var record domain.DocumentRecord
	var sourceType, pagesJSON string

	if err := row.Scan(&record.ID, &record.SourcePath, &record.Title, &sourceType,
		&record.ChunkCount, &pagesJSON, &record.ImportedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	record.SourceType = domain.SourceType(sourceType)
	if err := json.Unmarshal([]byte(pagesJSON), &record.LowQualityPages); err != nil {
		return nil, fmt.Errorf("unmarshalling low-quality pages: %w", err)
	}

	return &record, nil
}

// scanDocumentRows scans a document record from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.DocumentRecord, error) {
	var record domain.DocumentRecord
	var sourceType, pagesJSON string

	if err := rows.Scan(&record.ID, &record.SourcePath, &record.Title, &sourceType,
		&record.ChunkCount, &pagesJSON, &record.ImportedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	record.SourceType = domain.SourceType(sourceType)
	if err := json.Unmarshal([]byte(pagesJSON), &record.LowQualityPages); err != nil {
		return nil, fmt.Errorf("unmarshalling low-quality pages: %w", err)
	}

	return &record, nil
}
