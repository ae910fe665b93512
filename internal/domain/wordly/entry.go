package wordly

import (
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ══════════════════════════════════════════════════════════════════════════════
// LANGUAGES
// ══════════════════════════════════════════════════════════════════════════════

// Language selects which daily word and which independent leaderboard a
// submission belongs to.
type Language string

const (
	LanguageEN Language = "en"
	LanguageNL Language = "nl"
)

// NormalizeLanguage maps any input to a supported language. Everything that is
// not the Dutch literal falls back to English, matching the public contract.
func NormalizeLanguage(s string) Language {
	if s == string(LanguageNL) {
		return LanguageNL
	}
	return LanguageEN
}

// ══════════════════════════════════════════════════════════════════════════════
// NORMALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// MaxNameLength caps display names before any further validation.
const MaxNameLength = 24

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeName trims a user-supplied display name and caps it at
// MaxNameLength characters. The cap counts runes, not bytes, so a name with
// accented letters is never cut mid-character. The result keeps the original
// casing.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		trimmed = string([]rune(trimmed)[:MaxNameLength])
	}
	return trimmed
}

// PlayerKey derives the storage-safe identity for a display name: lowercased,
// then base64url-encoded so it is usable as a KV hash field and key segment.
func PlayerKey(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.ToLower(NormalizeName(name))))
}

// NormalizeDateKey validates a calendar-day identifier. It returns the trimmed
// value and whether it matches the YYYY-MM-DD pattern.
func NormalizeDateKey(dateKey string) (string, bool) {
	value := strings.TrimSpace(dateKey)
	return value, dateKeyPattern.MatchString(value)
}

// ValidAttempts reports whether an attempts count is in the allowed range.
func ValidAttempts(attempts int) bool {
	return attempts >= MinAttempts && attempts <= MaxAttempts
}

// ValidDuration reports whether a solve duration is in [0, MaxDurationMs].
func ValidDuration(durationMs int64) bool {
	return durationMs >= 0 && durationMs <= MaxDurationMs
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTRIES
// ══════════════════════════════════════════════════════════════════════════════

// Submission is a validated candidate result for one player on one day.
type Submission struct {
	DateKey     string
	Language    Language
	PlayerKey   string
	DisplayName string
	Attempts    int
	DurationMs  *int64
	SubmittedAt int64 // Unix milliseconds
}

// Score returns the composite score for this submission.
func (s Submission) Score() int64 {
	return CompositeScore(s.Attempts, s.DurationMs, s.SubmittedAt)
}

// ScoreView is one resolved leaderboard row as served to clients. Exactly one
// of DurationMs and SubmittedAt is non-nil, mirroring the score decode rule.
type ScoreView struct {
	Name        string `json:"name"`
	Attempts    int    `json:"attempts"`
	DurationMs  *int64 `json:"durationMs"`
	SubmittedAt *int64 `json:"submittedAt"`
}

// ResolveScoreView builds a ScoreView from a raw leaderboard member. The
// display name falls back to the raw player key when the name lookup has no
// entry, which should not happen in normal operation.
func ResolveScoreView(playerKey, displayName string, score int64) ScoreView {
	name := displayName
	if name == "" {
		name = playerKey
	}
	meta := DecodeScoreMeta(score)
	return ScoreView{
		Name:        name,
		Attempts:    DecodeAttempts(score),
		DurationMs:  meta.DurationMs,
		SubmittedAt: meta.SubmittedAt,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION ERRORS
// ══════════════════════════════════════════════════════════════════════════════

// ValidationError describes malformed input on the API boundary. The message
// is user-facing and names the offending field; handlers map it to HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation errors for the public endpoints. The messages are the Dutch
// strings the site has always served.
var (
	ErrInvalidName     = &ValidationError{Field: "name", Message: "Vul een geldige naam in (minimaal 2 tekens)."}
	ErrInvalidDateKey  = &ValidationError{Field: "dateKey", Message: "Ongeldige datum. Gebruik YYYY-MM-DD."}
	ErrInvalidAttempts = &ValidationError{Field: "attempts", Message: "Ongeldige score."}
	ErrInvalidDuration = &ValidationError{Field: "durationMs", Message: "Ongeldige tijdsduur."}
)
