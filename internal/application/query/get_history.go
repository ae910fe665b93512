package query

import (
	"context"
	"fmt"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET HISTORY QUERY
// Returns one player's per-day results, newest first, with personal-record
// flags computed in chronological order.
// ══════════════════════════════════════════════════════════════════════════════

// GetHistoryQuery identifies the player whose history is requested.
type GetHistoryQuery struct {
	// Name is the display name as typed; case-insensitive.
	Name string

	// Language selects the board; anything other than "nl" means English.
	Language string
}

// HistoryEntryDTO is one day in a player's history.
type HistoryEntryDTO struct {
	DateKey     string `json:"dateKey"`
	Attempts    int    `json:"attempts"`
	DurationMs  *int64 `json:"durationMs"`
	SubmittedAt int64  `json:"submittedAt"`
	IsPR        bool   `json:"isPR"`
}

// GetHistoryResult contains the player's recent history.
type GetHistoryResult struct {
	// Name is the normalized display name the lookup was done for.
	Name string `json:"name"`

	// Language is the board language.
	Language string `json:"language"`

	// Records lists up to MaxHistoryRecords days, newest first. Never nil.
	Records []HistoryEntryDTO `json:"records"`
}

// GetHistoryHandler handles the GetHistoryQuery.
type GetHistoryHandler struct {
	store wordly.Store
}

// NewGetHistoryHandler creates a new GetHistoryHandler.
func NewGetHistoryHandler(store wordly.Store) *GetHistoryHandler {
	return &GetHistoryHandler{store: store}
}

// Handle fetches and orders the player's history.
func (h *GetHistoryHandler) Handle(ctx context.Context, q GetHistoryQuery) (*GetHistoryResult, error) {
	name := wordly.NormalizeName(q.Name)
	if len(name) < 2 {
		return nil, wordly.ErrInvalidName
	}

	language := wordly.NormalizeLanguage(q.Language)

	records, err := h.store.History(ctx, wordly.PlayerKey(name), language)
	if err != nil {
		return nil, fmt.Errorf("get_history: %w", err)
	}

	ordered := wordly.BuildHistory(records, wordly.MaxHistoryRecords)

	dtos := make([]HistoryEntryDTO, 0, len(ordered))
	for _, record := range ordered {
		dtos = append(dtos, HistoryEntryDTO{
			DateKey:     record.DateKey,
			Attempts:    record.Attempts,
			DurationMs:  record.DurationMs,
			SubmittedAt: record.SubmittedAt,
			IsPR:        record.IsPR,
		})
	}

	return &GetHistoryResult{
		Name:     name,
		Language: string(language),
		Records:  dtos,
	}, nil
}
