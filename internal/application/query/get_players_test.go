package query

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/memory"
)

func seedPlayers(t *testing.T, store *memory.BoardStore, lang wordly.Language, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := store.Submit(context.Background(), wordly.Submission{
			DateKey:     "2026-08-29",
			Language:    lang,
			PlayerKey:   wordly.PlayerKey(name),
			DisplayName: name,
			Attempts:    3,
			SubmittedAt: int64(1_767_000_000_000 + i),
		})
		require.NoError(t, err)
	}
}

func TestGetPlayersDedupesAndSorts(t *testing.T) {
	store := memory.NewBoardStore()
	seedPlayers(t, store, wordly.LanguageEN, "zara", "Bram", "Anne")

	result, err := NewGetPlayersHandler(store).Handle(context.Background(), GetPlayersQuery{Language: "en"})
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	assert.Equal(t, []string{"Anne", "Bram", "zara"}, result.Players)
}

func TestGetPlayersCollapsesCaseVariants(t *testing.T) {
	store := memory.NewBoardStore()
	seedPlayers(t, store, wordly.LanguageEN, "Bram")

	// Same player resurfaces on another day with different casing.
	_, err := store.Submit(context.Background(), wordly.Submission{
		DateKey:     "2026-08-30",
		Language:    wordly.LanguageEN,
		PlayerKey:   wordly.PlayerKey("BRAM"),
		DisplayName: "BRAM",
		Attempts:    2,
		SubmittedAt: 1_767_100_000_000,
	})
	require.NoError(t, err)

	result, err := NewGetPlayersHandler(store).Handle(context.Background(), GetPlayersQuery{Language: "en"})
	require.NoError(t, err)

	require.Len(t, result.Players, 1)
	assert.True(t, strings.EqualFold("bram", result.Players[0]))
}

func TestGetPlayersFilterIsCaseInsensitive(t *testing.T) {
	store := memory.NewBoardStore()
	seedPlayers(t, store, wordly.LanguageEN, "Anne", "Bram", "Sandra")

	result, err := NewGetPlayersHandler(store).Handle(context.Background(), GetPlayersQuery{
		Language: "en",
		Filter:   "RA",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bram", "Sandra"}, result.Players)
}

func TestGetPlayersCapsResults(t *testing.T) {
	store := memory.NewBoardStore()
	names := make([]string, 0, MaxPlayerResults+20)
	for i := 0; i < MaxPlayerResults+20; i++ {
		names = append(names, fmt.Sprintf("Player%03d", i))
	}
	seedPlayers(t, store, wordly.LanguageEN, names...)

	result, err := NewGetPlayersHandler(store).Handle(context.Background(), GetPlayersQuery{Language: "en"})
	require.NoError(t, err)

	assert.Len(t, result.Players, MaxPlayerResults)
}

func TestGetPlayersEmptyBoardReturnsEmptySlice(t *testing.T) {
	result, err := NewGetPlayersHandler(memory.NewBoardStore()).Handle(context.Background(), GetPlayersQuery{Language: "nl"})
	require.NoError(t, err)

	assert.NotNil(t, result.Players)
	assert.Empty(t, result.Players)
}
