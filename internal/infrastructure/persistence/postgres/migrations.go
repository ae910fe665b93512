package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEMA
// ══════════════════════════════════════════════════════════════════════════════

const migrationScores = `
-- One live row per (day, language, player). Attempts, duration and submission
-- time are explicit columns; score is the derived composite used for ordering.
CREATE TABLE IF NOT EXISTS wordly_scores (
    date_key     VARCHAR(10) NOT NULL,
    language     VARCHAR(2)  NOT NULL,
    player_key   TEXT        NOT NULL,
    display_name TEXT        NOT NULL,
    attempts     SMALLINT    NOT NULL,
    duration_ms  BIGINT,
    submitted_at BIGINT      NOT NULL,
    score        BIGINT      NOT NULL,
    updated_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (date_key, language, player_key),

    CONSTRAINT valid_attempts CHECK (attempts >= 1 AND attempts <= 6),
    CONSTRAINT valid_duration CHECK (duration_ms IS NULL OR (duration_ms >= 0 AND duration_ms <= 86400000))
);

CREATE INDEX IF NOT EXISTS idx_wordly_scores_rank ON wordly_scores(date_key, language, score);
CREATE INDEX IF NOT EXISTS idx_wordly_scores_directory ON wordly_scores(language, display_name);
`

const migrationHistory = `
-- Best result per player per day, across all days. Attempts only improve;
-- duration and submission time track the latest attempt.
CREATE TABLE IF NOT EXISTS wordly_history (
    language     VARCHAR(2)  NOT NULL,
    player_key   TEXT        NOT NULL,
    date_key     VARCHAR(10) NOT NULL,
    attempts     SMALLINT    NOT NULL,
    duration_ms  BIGINT,
    submitted_at BIGINT      NOT NULL,

    PRIMARY KEY (language, player_key, date_key),

    CONSTRAINT valid_attempts CHECK (attempts >= 1 AND attempts <= 6)
);
`

// Migrate applies the schema. Statements are idempotent, so this runs on
// every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, migration := range []string{migrationScores, migrationHistory} {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}
