// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"fmt"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Returns the top three for one (day, language) board.
// ══════════════════════════════════════════════════════════════════════════════

// TopSize is the number of entries a board exposes.
const TopSize = 3

// GetLeaderboardQuery contains the board selection parameters.
type GetLeaderboardQuery struct {
	// DateKey is the game day in YYYY-MM-DD (empty = today in Amsterdam).
	DateKey string

	// Language selects the board; anything other than "nl" means English.
	Language string
}

// GetLeaderboardResult contains one board's ranking.
type GetLeaderboardResult struct {
	// DateKey is the normalized game day.
	DateKey string `json:"dateKey"`

	// Language is the board language.
	Language string `json:"language"`

	// Top3 lists the best entries, lowest score first. Never nil.
	Top3 []wordly.ScoreView `json:"top3"`
}

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	store wordly.Store
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
func NewGetLeaderboardHandler(store wordly.Store) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{store: store}
}

// Handle fetches the top three for the requested board.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*GetLeaderboardResult, error) {
	dateKey := q.DateKey
	if dateKey == "" {
		dateKey = timeutil.TodayKey()
	}
	dateKey, ok := wordly.NormalizeDateKey(dateKey)
	if !ok {
		return nil, wordly.ErrInvalidDateKey
	}

	language := wordly.NormalizeLanguage(q.Language)

	top, err := h.store.TopN(ctx, dateKey, language, TopSize)
	if err != nil {
		return nil, fmt.Errorf("get_leaderboard: %w", err)
	}
	if top == nil {
		top = []wordly.ScoreView{}
	}

	return &GetLeaderboardResult{
		DateKey:  dateKey,
		Language: string(language),
		Top3:     top,
	}, nil
}
