package wordly

import (
	"context"
	"errors"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING STORE CONTRACT
// ══════════════════════════════════════════════════════════════════════════════

// Store errors. Handlers distinguish a missing configuration from a failing
// backend: the former is a deployment problem, the latter a transient one.
var (
	// ErrStoreNotConfigured is returned when no ranking store is wired in.
	ErrStoreNotConfigured = errors.New("wordly: ranking store not configured")
)

// Store is the single contract every ranking backend implements. The scoring
// rules live in this package; backends only decide how the data is kept and
// how atomically a submit can be applied.
type Store interface {
	// Submit applies the accept-if-better rule for the submission's
	// (dateKey, language, playerKey) slot and records the result in the
	// player's history regardless of acceptance. It reports whether the
	// leaderboard entry was created or replaced.
	Submit(ctx context.Context, sub Submission) (accepted bool, err error)

	// TopN returns the n best entries for a day and language, ascending by
	// composite score, resolved to display rows.
	TopN(ctx context.Context, dateKey string, language Language, n int) ([]ScoreView, error)

	// History returns all valid per-day records for a player, unordered and
	// without PR flags. Malformed persisted records are skipped.
	History(ctx context.Context, playerKey string, language Language) ([]HistoryRecord, error)

	// PlayerNames enumerates every display name ever submitted for a
	// language, duplicates included; callers dedupe, filter and sort.
	PlayerNames(ctx context.Context, language Language) ([]string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// NotConfiguredStore is the Store wired in when no backend is configured.
// Every operation fails with ErrStoreNotConfigured.
type NotConfiguredStore struct{}

func (NotConfiguredStore) Submit(context.Context, Submission) (bool, error) {
	return false, ErrStoreNotConfigured
}

func (NotConfiguredStore) TopN(context.Context, string, Language, int) ([]ScoreView, error) {
	return nil, ErrStoreNotConfigured
}

func (NotConfiguredStore) History(context.Context, string, Language) ([]HistoryRecord, error) {
	return nil, ErrStoreNotConfigured
}

func (NotConfiguredStore) PlayerNames(context.Context, Language) ([]string, error) {
	return nil, ErrStoreNotConfigured
}

func (NotConfiguredStore) Ping(context.Context) error {
	return ErrStoreNotConfigured
}
