package wordly

import (
	"encoding/json"
	"sort"
)

// ══════════════════════════════════════════════════════════════════════════════
// PLAYER HISTORY
// ══════════════════════════════════════════════════════════════════════════════

// HistoryRecord is a player's best recorded result for one day. IsPR is a
// derived flag, set only by BuildHistory.
type HistoryRecord struct {
	DateKey     string `json:"dateKey"`
	Attempts    int    `json:"attempts"`
	DurationMs  *int64 `json:"durationMs"`
	SubmittedAt int64  `json:"submittedAt"`
	IsPR        bool   `json:"isPR"`
}

// MaxHistoryRecords caps the number of days returned by a history query.
const MaxHistoryRecords = 30

// MergeHistoryRecord folds a new submission into an existing per-day record.
// Attempts can only improve (running minimum); duration and submission time
// always reflect the latest attempt, so the displayed clock matches the most
// recent solve while the attempts count never regresses.
func MergeHistoryRecord(existing *HistoryRecord, sub Submission) HistoryRecord {
	record := HistoryRecord{
		DateKey:     sub.DateKey,
		Attempts:    sub.Attempts,
		DurationMs:  sub.DurationMs,
		SubmittedAt: sub.SubmittedAt,
	}
	if existing != nil && existing.Attempts < record.Attempts {
		record.Attempts = existing.Attempts
	}
	return record
}

// ParseHistoryRecord deserializes one persisted history value. Malformed
// payloads and out-of-range attempts are discarded rather than failing the
// whole query.
func ParseHistoryRecord(dateKey string, raw []byte) (HistoryRecord, bool) {
	var payload struct {
		Attempts    int    `json:"attempts"`
		DurationMs  *int64 `json:"durationMs"`
		SubmittedAt int64  `json:"submittedAt"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return HistoryRecord{}, false
	}
	if !ValidAttempts(payload.Attempts) {
		return HistoryRecord{}, false
	}
	return HistoryRecord{
		DateKey:     dateKey,
		Attempts:    payload.Attempts,
		DurationMs:  payload.DurationMs,
		SubmittedAt: payload.SubmittedAt,
	}, true
}

// BuildHistory annotates records with personal-record flags and returns the
// most recent days first, capped at limit.
//
// The PR pass walks the records in date order tracking the running minimum of
// attempts: every day that ties or beats the best so far counts as a PR day,
// and the minimum only moves on a strict improvement.
func BuildHistory(records []HistoryRecord, limit int) []HistoryRecord {
	if limit <= 0 {
		limit = MaxHistoryRecords
	}

	out := make([]HistoryRecord, len(records))
	copy(out, records)

	sort.Slice(out, func(i, j int) bool { return out[i].DateKey < out[j].DateKey })

	best := MaxAttempts + 1
	for i := range out {
		out[i].IsPR = out[i].Attempts <= best
		if out[i].Attempts < best {
			best = out[i].Attempts
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DateKey > out[j].DateKey })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
