// Package storage provides SQLite-based persistence for session replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/replay"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replays.
type Store struct {
	db *sql.DB
}

// ReplaySummary is a replay row without its frames.
type ReplaySummary struct {
	ID        int64
	Variant   string
	Seed      int64
	Frames    int
	Duration  time.Duration
	CreatedAt time.Time
}

// VariantStats aggregates the stored replays of one variant.
type VariantStats struct {
	Variant      string
	Replays      int
	TotalFrames  int64
	LastRecorded time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			constants_yaml TEXT NOT NULL,
			frame_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_variant ON replays(variant, created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			timestamp_ms REAL NOT NULL,
			pressed INTEGER NOT NULL DEFAULT 0,
			released INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording and its frames in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(rec replay.Recording) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	consts, err := config.Marshal(rec.Constants)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode constants: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO replays (variant, seed, constants_yaml, frame_count, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.Variant, rec.Seed, string(consts), len(rec.Frames), rec.Duration().Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_frames (replay_id, seq, timestamp_ms, pressed, released)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range rec.Frames {
		if _, err := stmt.Exec(id, i, f.TimestampMs, f.Pressed, f.Released); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}

	return id, nil
}

// Replay loads a full recording by ID.
func (s *Store) Replay(id int64) (replay.Recording, error) {
	rec := replay.Recording{ID: id}
	var (
		constsYAML string
		createdAt  any
	)

	err := s.db.QueryRow(
		`SELECT variant, seed, constants_yaml, created_at FROM replays WHERE id = ?`,
		id,
	).Scan(&rec.Variant, &rec.Seed, &constsYAML, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rec.Constants, err = config.Unmarshal([]byte(constsYAML))
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT timestamp_ms, pressed, released
		 FROM replay_frames
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f replay.Frame
		if err := rows.Scan(&f.TimestampMs, &f.Pressed, &f.Released); err != nil {
			return replay.Recording{}, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		rec.Frames = append(rec.Frames, f)
	}

	if err := rows.Err(); err != nil {
		return replay.Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ListReplays returns the newest replays first. An empty variant lists all variants.
func (s *Store) ListReplays(variant string, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, seed, frame_count, duration_ms, created_at
		 FROM replays
		 WHERE ? = '' OR variant = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var (
			e          ReplaySummary
			durationMs int64
			createdAt  any
		)
		if err := rows.Scan(&e.ID, &e.Variant, &e.Seed, &e.Frames, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplays removes the replays of a variant, or every replay when variant is empty.
// Returns the number of replays deleted.
func (s *Store) DeleteReplays(variant string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM replay_frames
		 WHERE replay_id IN (SELECT id FROM replays WHERE ? = '' OR variant = ?)`,
		variant, variant,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot delete frames: %w", err)
	}

	result, err := tx.Exec(
		"DELETE FROM replays WHERE ? = '' OR variant = ?",
		variant, variant,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete replays: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted replays: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return n, nil
}

// Stats returns per-variant replay statistics for every variant with stored replays.
func (s *Store) Stats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), COALESCE(SUM(frame_count), 0), MAX(created_at)
		 FROM replays
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var (
			vs        VariantStats
			lastSaved any
		)
		if err := rows.Scan(&vs.Variant, &vs.Replays, &vs.TotalFrames, &lastSaved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastRecorded = parseTime(lastSaved)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
