package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/memory"
	"github.com/jaymian-lee/portfolio-api/pkg/timeutil"
)

func TestSubmitScoreHandler_Validation(t *testing.T) {
	handler := NewSubmitScoreHandler(memory.NewBoardStore())

	longDuration := int64(25 * 60 * 60 * 1000)

	tests := []struct {
		name    string
		cmd     SubmitScoreCommand
		wantErr error
	}{
		{
			name:    "name too short after trimming",
			cmd:     SubmitScoreCommand{Name: "  J  ", Attempts: 3},
			wantErr: wordly.ErrInvalidName,
		},
		{
			name:    "malformed date key",
			cmd:     SubmitScoreCommand{Name: "Jay", DateKey: "29-08-2026", Attempts: 3},
			wantErr: wordly.ErrInvalidDateKey,
		},
		{
			name:    "attempts out of range",
			cmd:     SubmitScoreCommand{Name: "Jay", DateKey: "2026-08-29", Attempts: 7},
			wantErr: wordly.ErrInvalidAttempts,
		},
		{
			name:    "zero attempts",
			cmd:     SubmitScoreCommand{Name: "Jay", DateKey: "2026-08-29", Attempts: 0},
			wantErr: wordly.ErrInvalidAttempts,
		},
		{
			name: "duration over a day",
			cmd: SubmitScoreCommand{
				Name: "Jay", DateKey: "2026-08-29", Attempts: 3,
				DurationMs: &longDuration,
			},
			wantErr: wordly.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitScoreHandler_DefaultsToToday(t *testing.T) {
	store := memory.NewBoardStore()
	handler := NewSubmitScoreHandler(store)

	result, err := handler.Handle(context.Background(), SubmitScoreCommand{
		Name:     "Jay",
		Attempts: 3,
		Language: "nl",
	})
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, timeutil.TodayKey(), result.DateKey)
	assert.Equal(t, "nl", result.Language)
}

func TestSubmitScoreHandler_UsesInjectedClock(t *testing.T) {
	store := memory.NewBoardStore()
	fixed := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	handler := NewSubmitScoreHandler(store).WithClock(func() time.Time { return fixed })

	duration := int64(30_000)
	result, err := handler.Handle(context.Background(), SubmitScoreCommand{
		Name:       "Jay",
		DateKey:    "2026-08-29",
		Attempts:   4,
		DurationMs: &duration,
	})
	require.NoError(t, err)
	require.True(t, result.Accepted)

	top, err := store.TopN(context.Background(), "2026-08-29", wordly.LanguageEN, 3)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 4, top[0].Attempts)
	require.NotNil(t, top[0].DurationMs)
	assert.Equal(t, duration, *top[0].DurationMs)
}

func TestSubmitScoreHandler_RejectsWorseRetry(t *testing.T) {
	store := memory.NewBoardStore()
	handler := NewSubmitScoreHandler(store)

	first, err := handler.Handle(context.Background(), SubmitScoreCommand{
		Name: "Jay", DateKey: "2026-08-29", Attempts: 2,
	})
	require.NoError(t, err)
	assert.True(t, first.Accepted)

	retry, err := handler.Handle(context.Background(), SubmitScoreCommand{
		Name: "jay", DateKey: "2026-08-29", Attempts: 5,
	})
	require.NoError(t, err)
	assert.False(t, retry.Accepted, "same player, case-insensitive, worse attempts")
}
