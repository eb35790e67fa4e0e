// Package store handles SQLite persistence of round history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/guessnum/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			max_number INTEGER NOT NULL,
			time_limit INTEGER NOT NULL,
			secret INTEGER NOT NULL,
			guesses INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			elapsed_s INTEGER NOT NULL,
			score INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_difficulty ON rounds(difficulty, outcome);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a finished round.
func (s *Store) InsertRound(ctx context.Context, r model.RoundRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (session_id, started_at, ended_at, difficulty, max_number, time_limit, secret, guesses, outcome, elapsed_s, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.StartedAt.Format(time.RFC3339Nano),
		r.EndedAt.Format(time.RFC3339Nano),
		string(r.Difficulty),
		r.MaxNumber,
		r.TimeLimit,
		r.Secret,
		r.Guesses,
		string(r.Outcome),
		r.ElapsedSec,
		r.Score,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns round aggregates filtered by stats config, oldest first.
func (s *Store) ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, string(cfg.Difficulty))
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, session_id, ended_at, difficulty, outcome, time_limit, elapsed_s, guesses, score
		FROM rounds
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var endedAt, difficulty, outcome string
		if err := rows.Scan(&agg.RoundID, &agg.SessionID, &endedAt, &difficulty, &outcome, &agg.TimeLimit, &agg.ElapsedSec, &agg.Guesses, &agg.Score); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Difficulty = model.Difficulty(difficulty)
		agg.Outcome = model.Outcome(outcome)
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// BestElapsed returns the fastest solve for a difficulty, or across all
// difficulties when difficulty is empty.
func (s *Store) BestElapsed(ctx context.Context, difficulty model.Difficulty) (int, bool, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(elapsed_s) FROM rounds
		 WHERE outcome = ? AND (? = '' OR difficulty = ?)`,
		string(model.OutcomeSolved), string(difficulty), string(difficulty),
	).Scan(&best)
	if err != nil {
		return 0, false, err
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}
