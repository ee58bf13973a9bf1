// Package sqlite provides the durable vector index store.
//
// One record per video ID, written exactly once inside a transaction.
// Embeddings are stored as little-endian float32 blobs alongside the
// passage text, so a record round-trips byte-identically and a reloaded
// index returns the same neighbour sets as the one built in memory.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Store is the SQLite-backed index store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store under dataDir. If dataDir is empty,
// it defaults to ~/.ytassist/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ytassist", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "indexes.db")

	// WAL mode so concurrent readers are not blocked by a writer.
	// Pragmas go in the DSN because they are per-connection: foreign_keys
	// in particular must hold on every pooled connection or the passage
	// cascade on delete silently stops firing.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
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

// Exists reports whether a record exists for the video.
func (s *Store) Exists(ctx context.Context, videoID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM video_indexes WHERE video_id = ?", videoID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking index existence: %w", err)
	}
	return true, nil
}

// Load retrieves the record for a video, or domain.ErrNotFound.
func (s *Store) Load(ctx context.Context, videoID string) (*domain.IndexRecord, error) {
	rec := domain.IndexRecord{VideoID: videoID}

	err := s.db.QueryRowContext(ctx,
		"SELECT embedding_model, dimensions, created_at FROM video_indexes WHERE video_id = ?",
		videoID).Scan(&rec.EmbeddingModel, &rec.Dimensions, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading index metadata: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, position, content, embedding FROM passages WHERE video_id = ? ORDER BY position",
		videoID)
	if err != nil {
		return nil, fmt.Errorf("loading passages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		chunk := domain.Chunk{VideoID: videoID}
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Position, &chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		chunk.Embedding = bytesToFloat32(blob)
		if len(chunk.Embedding) != rec.Dimensions {
			return nil, fmt.Errorf("passage %s has %d dimensions, index records %d: corrupt store",
				chunk.ID, len(chunk.Embedding), rec.Dimensions)
		}
		rec.Chunks = append(rec.Chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}

	return &rec, nil
}

// Save persists a record in one transaction. The primary key on video_id
// makes the first writer win: a concurrent build for the same unseen video
// observes domain.ErrAlreadyExists instead of overwriting.
func (s *Store) Save(ctx context.Context, rec *domain.IndexRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO video_indexes (video_id, embedding_model, dimensions, created_at)
		 VALUES (?, ?, ?, ?) ON CONFLICT (video_id) DO NOTHING`,
		rec.VideoID, rec.EmbeddingModel, rec.Dimensions, rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting index metadata: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking insert result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyExists
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO passages (id, video_id, position, content, embedding) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing passage insert: %w", err)
	}
	defer stmt.Close()

	for i := range rec.Chunks {
		c := &rec.Chunks[i]
		if _, err := stmt.ExecContext(ctx, c.ID, rec.VideoID, c.Position, c.Content,
			float32ToBytes(c.Embedding)); err != nil {
			return fmt.Errorf("inserting passage %d: %w", c.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// List returns a summary of every record, newest first.
func (s *Store) List(ctx context.Context) ([]domain.IndexInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT v.video_id, v.embedding_model, v.dimensions, v.created_at, COUNT(p.id)
		 FROM video_indexes v LEFT JOIN passages p ON p.video_id = v.video_id
		 GROUP BY v.video_id ORDER BY v.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing indexes: %w", err)
	}
	defer rows.Close()

	var infos []domain.IndexInfo
	for rows.Next() {
		var info domain.IndexInfo
		if err := rows.Scan(&info.VideoID, &info.EmbeddingModel, &info.Dimensions,
			&info.CreatedAt, &info.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning index summary: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes the record for a video, or domain.ErrNotFound.
func (s *Store) Delete(ctx context.Context, videoID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM video_indexes WHERE video_id = ?", videoID)
	if err != nil {
		return fmt.Errorf("deleting index: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// migrate applies any *.up.sql files not yet recorded in schema_migrations.
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
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
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

func float32ToBytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func bytesToFloat32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
