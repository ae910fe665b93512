package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

func TestNewBoardStoreMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordly.json")

	store, err := NewBoardStore(path)
	require.NoError(t, err)

	top, err := store.TopN(context.Background(), "2026-08-29", wordly.LanguageEN, 3)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestNewBoardStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewBoardStore("")
	assert.Error(t, err)
}

func TestNewBoardStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordly.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewBoardStore(path)
	assert.Error(t, err)
}

func TestSubmitSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "wordly.json")

	store, err := NewBoardStore(path)
	require.NoError(t, err)

	duration := int64(42_000)
	accepted, err := store.Submit(ctx, wordly.Submission{
		DateKey:     "2026-08-29",
		Language:    wordly.LanguageNL,
		PlayerKey:   wordly.PlayerKey("Jay"),
		DisplayName: "Jay",
		Attempts:    3,
		DurationMs:  &duration,
		SubmittedAt: 1_767_000_000_000,
	})
	require.NoError(t, err)
	require.True(t, accepted)

	reloaded, err := NewBoardStore(path)
	require.NoError(t, err)

	top, err := reloaded.TopN(ctx, "2026-08-29", wordly.LanguageNL, 3)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Jay", top[0].Name)
	assert.Equal(t, 3, top[0].Attempts)
	require.NotNil(t, top[0].DurationMs)
	assert.Equal(t, duration, *top[0].DurationMs)

	records, err := reloaded.History(ctx, wordly.PlayerKey("Jay"), wordly.LanguageNL)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-08-29", records[0].DateKey)

	names, err := reloaded.PlayerNames(ctx, wordly.LanguageNL)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jay"}, names)

	assert.NoError(t, reloaded.Ping(ctx))
}
