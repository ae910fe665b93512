package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

// BoardStore implements wordly.Store on PostgreSQL.
type BoardStore struct {
	pool *pgxpool.Pool
}

// NewBoardStore creates a Postgres-backed ranking store and applies the
// schema.
func NewBoardStore(ctx context.Context, pool *pgxpool.Pool) (*BoardStore, error) {
	if err := Migrate(ctx, pool); err != nil {
		return nil, err
	}
	return &BoardStore{pool: pool}, nil
}

// submitQuery is a conditional upsert: the WHERE clause is the accept-if-better
// rule from wordly.Better evaluated inside the database, so concurrent
// submissions for the same player cannot lose the better result.
const submitQuery = `
INSERT INTO wordly_scores
    (date_key, language, player_key, display_name, attempts, duration_ms, submitted_at, score, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
ON CONFLICT (date_key, language, player_key) DO UPDATE SET
    display_name = EXCLUDED.display_name,
    attempts     = EXCLUDED.attempts,
    duration_ms  = EXCLUDED.duration_ms,
    submitted_at = EXCLUDED.submitted_at,
    score        = EXCLUDED.score,
    updated_at   = NOW()
WHERE EXCLUDED.attempts < wordly_scores.attempts
   OR (EXCLUDED.attempts = wordly_scores.attempts
       AND (wordly_scores.duration_ms IS NULL
            OR (EXCLUDED.duration_ms IS NOT NULL AND EXCLUDED.duration_ms < wordly_scores.duration_ms)))
`

const historyQuery = `
INSERT INTO wordly_history (language, player_key, date_key, attempts, duration_ms, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (language, player_key, date_key) DO UPDATE SET
    attempts     = LEAST(wordly_history.attempts, EXCLUDED.attempts),
    duration_ms  = EXCLUDED.duration_ms,
    submitted_at = EXCLUDED.submitted_at
`

// Submit applies the accept-if-better upsert and records history.
func (s *BoardStore) Submit(ctx context.Context, sub wordly.Submission) (bool, error) {
	tag, err := s.pool.Exec(ctx, submitQuery,
		sub.DateKey,
		string(sub.Language),
		sub.PlayerKey,
		sub.DisplayName,
		sub.Attempts,
		sub.DurationMs,
		sub.SubmittedAt,
		sub.Score(),
	)
	if err != nil {
		return false, fmt.Errorf("postgres: submit: %w", err)
	}

	_, err = s.pool.Exec(ctx, historyQuery,
		string(sub.Language),
		sub.PlayerKey,
		sub.DateKey,
		sub.Attempts,
		sub.DurationMs,
		sub.SubmittedAt,
	)
	if err != nil {
		return false, fmt.Errorf("postgres: record history: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// TopN returns the n best entries. Views are built from the explicit columns,
// not the composite score, so duration and timestamp never pass through the
// decode heuristic.
func (s *BoardStore) TopN(ctx context.Context, dateKey string, language wordly.Language, n int) ([]wordly.ScoreView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT player_key, display_name, attempts, duration_ms, submitted_at
		FROM wordly_scores
		WHERE date_key = $1 AND language = $2
		ORDER BY score ASC, player_key ASC
		LIMIT $3
	`, dateKey, string(language), n)
	if err != nil {
		return nil, fmt.Errorf("postgres: top query: %w", err)
	}
	defer rows.Close()

	views := make([]wordly.ScoreView, 0, n)
	for rows.Next() {
		var (
			player      string
			displayName string
			attempts    int
			durationMs  *int64
			submittedAt int64
		)
		if err := rows.Scan(&player, &displayName, &attempts, &durationMs, &submittedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan top row: %w", err)
		}

		view := wordly.ScoreView{Name: displayName, Attempts: attempts}
		if view.Name == "" {
			view.Name = player
		}
		if durationMs != nil {
			view.DurationMs = durationMs
		} else {
			ts := submittedAt
			view.SubmittedAt = &ts
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: top query: %w", err)
	}
	return views, nil
}

// History returns the per-day records of one player.
func (s *BoardStore) History(ctx context.Context, player string, language wordly.Language) ([]wordly.HistoryRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT date_key, attempts, duration_ms, submitted_at
		FROM wordly_history
		WHERE language = $1 AND player_key = $2
	`, string(language), player)
	if err != nil {
		return nil, fmt.Errorf("postgres: history query: %w", err)
	}
	defer rows.Close()

	var records []wordly.HistoryRecord
	for rows.Next() {
		var record wordly.HistoryRecord
		if err := rows.Scan(&record.DateKey, &record.Attempts, &record.DurationMs, &record.SubmittedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan history row: %w", err)
		}
		if wordly.ValidAttempts(record.Attempts) {
			records = append(records, record)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: history query: %w", err)
	}
	return records, nil
}

// PlayerNames enumerates every display name for a language.
func (s *BoardStore) PlayerNames(ctx context.Context, language wordly.Language) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT display_name FROM wordly_scores WHERE language = $1
	`, string(language))
	if err != nil {
		return nil, fmt.Errorf("postgres: names query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres: scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: names query: %w", err)
	}
	return names, nil
}

// Ping verifies the database connection.
func (s *BoardStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
