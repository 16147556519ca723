package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shunt/internal/config"
	"shunt/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoRuns indicates no fetch run has been recorded for the series.
// It carries the not-found marker so callers can branch generically.
var ErrNoRuns = fmt.Errorf("%w: no fetch runs recorded", services.ErrNotFound)

// FetchRun describes one recorded catalog fetch.
type FetchRun struct {
	ID           string
	Series       string
	SourceURL    string
	FetchedAt    time.Time
	EpisodeCount int
}

// Store caches fetched catalogs in SQLite so the CLI can show the last
// known catalog without hitting the network. The JSON/CSV files remain
// the interchange between pipeline steps.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the catalog cache database.
func OpenStore(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordFetch stores a finalized catalog under a fresh run id and
// returns that id. Episode positions preserve catalog order.
func (s *Store) RecordFetch(ctx context.Context, series, sourceURL string, episodes []Episode) (string, error) {
	runID := uuid.NewString()
	// Fixed-width fraction keeps lexicographic ORDER BY correct.
	fetchedAt := time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z07:00")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin fetch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO fetch_runs (id, series, source_url, fetched_at, episode_count) VALUES (?, ?, ?, ?, ?)`,
		runID, series, sourceURL, fetchedAt, len(episodes),
	); err != nil {
		return "", fmt.Errorf("insert fetch run: %w", err)
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO episodes (
            run_id, position, season_episode_code, season_raw, ep_in_season,
            title, air_date_iso, abs_episode, target_filename
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("prepare episode insert: %w", err)
	}
	defer stmt.Close()

	for i, ep := range episodes {
		if _, err := stmt.ExecContext(
			ctx,
			runID, i, ep.Code, ep.SeasonRaw, ep.EpInSeason,
			ep.Title, ep.AirDateISO, ep.AbsEpisode, ep.TargetFilename,
		); err != nil {
			return "", fmt.Errorf("insert episode %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit fetch run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recent fetch run for a series.
func (s *Store) LatestRun(ctx context.Context, series string) (*FetchRun, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, series, source_url, fetched_at, episode_count
         FROM fetch_runs WHERE series = ? ORDER BY fetched_at DESC LIMIT 1`,
		series,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// Runs lists all fetch runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]*FetchRun, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, series, source_url, fetched_at, episode_count
         FROM fetch_runs ORDER BY fetched_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*FetchRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// EpisodesForRun returns the stored catalog for a run in catalog order.
func (s *Store) EpisodesForRun(ctx context.Context, runID string) ([]Episode, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT season_episode_code, season_raw, ep_in_season, title,
                air_date_iso, abs_episode, target_filename
         FROM episodes WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var ep Episode
		if err := rows.Scan(
			&ep.Code, &ep.SeasonRaw, &ep.EpInSeason, &ep.Title,
			&ep.AirDateISO, &ep.AbsEpisode, &ep.TargetFilename,
		); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*FetchRun, error) {
	var run FetchRun
	var fetchedAt string
	if err := row.Scan(&run.ID, &run.Series, &run.SourceURL, &fetchedAt, &run.EpisodeCount); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parse fetched_at %q: %w", fetchedAt, err)
	}
	run.FetchedAt = parsed
	return &run, nil
}
