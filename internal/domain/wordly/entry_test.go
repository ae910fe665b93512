package wordly

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Ana", NormalizeName("  Ana  "))
	assert.Equal(t, strings.Repeat("x", MaxNameLength), NormalizeName(strings.Repeat("x", 40)))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeNameCapsByRunes(t *testing.T) {
	// 24 characters but 25 bytes; a byte cap would split the trailing rune.
	name := strings.Repeat("a", MaxNameLength-1) + "é"
	got := NormalizeName(name + "overflow")

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, name, got)
}

func TestPlayerKey(t *testing.T) {
	// Key is derived from the lowercased name, so casing variants share an
	// identity while the display name keeps the original casing.
	assert.Equal(t, PlayerKey("Ana"), PlayerKey("ANA"))
	assert.Equal(t, PlayerKey("ana"), PlayerKey(" Ana "))
	assert.NotEqual(t, PlayerKey("Ana"), PlayerKey("Anna"))

	// base64url without padding, safe for key segments.
	assert.NotContains(t, PlayerKey("Jaymian-Lee"), "=")
	assert.NotContains(t, PlayerKey("Jaymian-Lee"), "/")
}

func TestNormalizeDateKey(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"2024-05-01", "2024-05-01", true},
		{" 2024-05-01 ", "2024-05-01", true},
		{"2024-5-1", "2024-5-1", false},
		{"05-01-2024", "05-01-2024", false},
		{"", "", false},
		{"2024-05-01x", "2024-05-01x", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeDateKey(tt.in)
		assert.Equal(t, tt.valid, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LanguageNL, NormalizeLanguage("nl"))
	assert.Equal(t, LanguageEN, NormalizeLanguage("en"))
	assert.Equal(t, LanguageEN, NormalizeLanguage(""))
	assert.Equal(t, LanguageEN, NormalizeLanguage("de"))
	assert.Equal(t, LanguageEN, NormalizeLanguage("NL"))
}

func TestResolveScoreView(t *testing.T) {
	t.Run("new format exposes duration", func(t *testing.T) {
		score := CompositeScore(3, ptr(42_000), 1_714_000_000_000)
		view := ResolveScoreView("YW5h", "Ana", score)

		assert.Equal(t, "Ana", view.Name)
		assert.Equal(t, 3, view.Attempts)
		require.NotNil(t, view.DurationMs)
		assert.Equal(t, int64(42_000), *view.DurationMs)
		assert.Nil(t, view.SubmittedAt)
	})

	t.Run("legacy format exposes timestamp", func(t *testing.T) {
		view := ResolveScoreView("YW5h", "Ana", 4*ScoreFactor+1_700_000_000_000)

		assert.Equal(t, 4, view.Attempts)
		assert.Nil(t, view.DurationMs)
		require.NotNil(t, view.SubmittedAt)
		assert.Equal(t, int64(1_700_000_000_000), *view.SubmittedAt)
	})

	t.Run("missing display name falls back to player key", func(t *testing.T) {
		view := ResolveScoreView("YW5h", "", CompositeScore(2, ptr(1000), 0))
		assert.Equal(t, "YW5h", view.Name)
	})
}
