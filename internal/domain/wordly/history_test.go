package wordly

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistoryRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid with duration", `{"attempts":3,"durationMs":42000,"submittedAt":1714000000000}`, true},
		{"valid without duration", `{"attempts":6,"submittedAt":1714000000000}`, true},
		{"attempts too high", `{"attempts":7,"submittedAt":1714000000000}`, false},
		{"attempts zero", `{"attempts":0,"submittedAt":1714000000000}`, false},
		{"attempts not a number", `{"attempts":"three"}`, false},
		{"not json", `garbage`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := ParseHistoryRecord("2024-05-01", []byte(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, "2024-05-01", record.DateKey)
			}
		})
	}
}

func TestMergeHistoryRecord(t *testing.T) {
	sub := Submission{
		DateKey:     "2024-05-01",
		Attempts:    4,
		DurationMs:  ptr(30_000),
		SubmittedAt: 1_714_000_100_000,
	}

	t.Run("first submission stored as-is", func(t *testing.T) {
		record := MergeHistoryRecord(nil, sub)
		assert.Equal(t, 4, record.Attempts)
		require.NotNil(t, record.DurationMs)
		assert.Equal(t, int64(30_000), *record.DurationMs)
	})

	t.Run("attempts only improve", func(t *testing.T) {
		existing := &HistoryRecord{DateKey: "2024-05-01", Attempts: 2, SubmittedAt: 1_714_000_000_000}
		record := MergeHistoryRecord(existing, sub)
		assert.Equal(t, 2, record.Attempts, "a worse later attempt must not regress the day's best")
		assert.Equal(t, sub.SubmittedAt, record.SubmittedAt, "clock reflects the latest attempt")
	})

	t.Run("better attempts replace", func(t *testing.T) {
		existing := &HistoryRecord{DateKey: "2024-05-01", Attempts: 6, SubmittedAt: 1_714_000_000_000}
		record := MergeHistoryRecord(existing, sub)
		assert.Equal(t, 4, record.Attempts)
	})
}

func TestBuildHistory_PRFlags(t *testing.T) {
	// Attempts [4, 3, 3] in date order: every day that ties or beats the
	// running best counts as a PR day, including the very first.
	records := []HistoryRecord{
		{DateKey: "2024-05-01", Attempts: 4},
		{DateKey: "2024-05-02", Attempts: 3},
		{DateKey: "2024-05-03", Attempts: 3},
	}

	out := BuildHistory(records, MaxHistoryRecords)
	require.Len(t, out, 3)

	// Most recent first.
	assert.Equal(t, "2024-05-03", out[0].DateKey)
	assert.Equal(t, "2024-05-02", out[1].DateKey)
	assert.Equal(t, "2024-05-01", out[2].DateKey)

	for _, record := range out {
		assert.True(t, record.IsPR, "date %s", record.DateKey)
	}
}

func TestBuildHistory_WorseDayIsNotPR(t *testing.T) {
	records := []HistoryRecord{
		{DateKey: "2024-05-01", Attempts: 3},
		{DateKey: "2024-05-02", Attempts: 5},
		{DateKey: "2024-05-03", Attempts: 2},
	}

	out := BuildHistory(records, MaxHistoryRecords)
	require.Len(t, out, 3)

	assert.True(t, out[2].IsPR)  // 2024-05-01, first day
	assert.False(t, out[1].IsPR) // 2024-05-02, regression
	assert.True(t, out[0].IsPR)  // 2024-05-03, new best
}

func TestBuildHistory_CapsAtLimit(t *testing.T) {
	var records []HistoryRecord
	for day := 1; day <= 40; day++ {
		records = append(records, HistoryRecord{
			DateKey:  fmt.Sprintf("2024-05-%02d", day),
			Attempts: 4,
		})
	}

	out := BuildHistory(records, MaxHistoryRecords)
	require.Len(t, out, MaxHistoryRecords)
	assert.Equal(t, "2024-05-40", out[0].DateKey)
	assert.Equal(t, "2024-05-11", out[len(out)-1].DateKey)
}
