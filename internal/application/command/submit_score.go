// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT SCORE COMMAND
// Records a player's daily result on the ranking board, applying the
// accept-if-better rule so a worse retry never overwrites a good score.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitScoreCommand contains one player's result for one game day.
type SubmitScoreCommand struct {
	// Name is the display name as the player typed it.
	Name string

	// DateKey is the game day in YYYY-MM-DD (empty = today in Amsterdam).
	DateKey string

	// Attempts is the number of guesses used, 1 through 6.
	Attempts int

	// DurationMs is the solve duration in milliseconds; nil when the client
	// did not measure it.
	DurationMs *int64

	// Language selects the board; anything other than "nl" means English.
	Language string
}

// SubmitScoreResult reports whether the board changed.
type SubmitScoreResult struct {
	// Accepted is true when the submission became the player's ranked score.
	Accepted bool `json:"accepted"`

	// DateKey is the normalized game day the score was recorded under.
	DateKey string `json:"dateKey"`

	// Language is the board language the score was recorded under.
	Language string `json:"language"`
}

// SubmitScoreHandler handles the SubmitScoreCommand.
type SubmitScoreHandler struct {
	store wordly.Store

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewSubmitScoreHandler creates a new SubmitScoreHandler.
func NewSubmitScoreHandler(store wordly.Store) *SubmitScoreHandler {
	return &SubmitScoreHandler{store: store, now: time.Now}
}

// WithClock overrides the handler's clock. Test hook.
func (h *SubmitScoreHandler) WithClock(now func() time.Time) *SubmitScoreHandler {
	h.now = now
	return h
}

// Handle validates and records the submission.
//
// Validation order matters for error reporting: name first, then date, then
// attempts, then duration. Messages are user-facing and stay in Dutch to match
// the site.
func (h *SubmitScoreHandler) Handle(ctx context.Context, cmd SubmitScoreCommand) (*SubmitScoreResult, error) {
	name := wordly.NormalizeName(cmd.Name)
	if len(name) < 2 {
		return nil, wordly.ErrInvalidName
	}

	dateKey := cmd.DateKey
	if dateKey == "" {
		dateKey = timeutil.TodayKey()
	}
	dateKey, ok := wordly.NormalizeDateKey(dateKey)
	if !ok {
		return nil, wordly.ErrInvalidDateKey
	}

	if !wordly.ValidAttempts(cmd.Attempts) {
		return nil, wordly.ErrInvalidAttempts
	}

	if cmd.DurationMs != nil && !wordly.ValidDuration(*cmd.DurationMs) {
		return nil, wordly.ErrInvalidDuration
	}

	language := wordly.NormalizeLanguage(cmd.Language)

	sub := wordly.Submission{
		DateKey:     dateKey,
		Language:    language,
		PlayerKey:   wordly.PlayerKey(name),
		DisplayName: name,
		Attempts:    cmd.Attempts,
		DurationMs:  cmd.DurationMs,
		SubmittedAt: h.now().UnixMilli(),
	}

	accepted, err := h.store.Submit(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("submit_score: %w", err)
	}

	return &SubmitScoreResult{
		Accepted: accepted,
		DateKey:  dateKey,
		Language: string(language),
	}, nil
}
