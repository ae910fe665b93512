package wordly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestCompositeScore_AttemptsRoundTrip(t *testing.T) {
	durations := []*int64{nil, ptr(0), ptr(42_000), ptr(MaxDurationMs)}
	timestamps := []int64{0, 1_714_000_000_000, 1_714_000_000_999}

	for attempts := MinAttempts; attempts <= MaxAttempts; attempts++ {
		for _, d := range durations {
			for _, ts := range timestamps {
				score := CompositeScore(attempts, d, ts)
				assert.Equal(t, attempts, DecodeAttempts(score),
					"attempts=%d duration=%v ts=%d", attempts, d, ts)
			}
		}
	}
}

func TestCompositeScore_DurationRoundTrip(t *testing.T) {
	for _, duration := range []int64{0, 1, 999, 1000, 60_000, 3_600_000, 10_000_001, MaxDurationMs} {
		score := CompositeScore(3, ptr(duration), 1_714_000_000_123)
		meta := DecodeScoreMeta(score)

		require.NotNil(t, meta.DurationMs, "duration=%d", duration)
		assert.Equal(t, duration, *meta.DurationMs)
		assert.Nil(t, meta.SubmittedAt)
	}
}

func TestCompositeScore_DurationMonotonic(t *testing.T) {
	prev := CompositeScore(4, ptr(0), 0)
	for _, duration := range []int64{1, 500, 90_000, 7_200_000, MaxDurationMs} {
		score := CompositeScore(4, ptr(duration), 0)
		assert.Greater(t, score, prev, "duration=%d", duration)
		prev = score
	}
}

func TestCompositeScore_AttemptsDominate(t *testing.T) {
	// The slowest possible solve in k attempts still beats the fastest solve
	// in k+1 attempts.
	for attempts := MinAttempts; attempts < MaxAttempts; attempts++ {
		worst := CompositeScore(attempts, nil, 1_714_000_000_999)
		best := CompositeScore(attempts+1, ptr(0), 0)
		assert.Less(t, worst, best, "attempts=%d", attempts)
	}

	assert.Less(t, CompositeScore(3, ptr(MaxDurationMs), 0), CompositeScore(4, ptr(0), 0))
}

func TestCompositeScore_MissingDurationScoresWorst(t *testing.T) {
	unknown := CompositeScore(2, nil, 1_714_000_000_000)
	measured := CompositeScore(2, ptr(MaxDurationMs), 1_714_000_000_000)
	assert.Greater(t, unknown, measured)
}

func TestDecodeScoreMeta_LegacyFormat(t *testing.T) {
	// Rows written before durations were tracked carry the raw Unix-ms
	// timestamp in the lower digits.
	submittedAt := int64(1_700_000_000_000)
	legacy := 5*ScoreFactor + submittedAt

	assert.Equal(t, 5, DecodeAttempts(legacy))

	meta := DecodeScoreMeta(legacy)
	require.NotNil(t, meta.SubmittedAt)
	assert.Equal(t, submittedAt, *meta.SubmittedAt)
	assert.Nil(t, meta.DurationMs)
}

func TestCompositeScore_TieBreakerFromTimestamp(t *testing.T) {
	a := CompositeScore(3, ptr(5000), 1_714_000_000_123)
	b := CompositeScore(3, ptr(5000), 1_714_000_000_456)
	assert.Less(t, a, b)

	// Negative timestamps clamp the tie breaker to zero.
	c := CompositeScore(3, ptr(5000), -1)
	assert.Equal(t, 3*ScoreFactor+5000*DurationMultiplier, c)
}

func TestBetter(t *testing.T) {
	now := int64(1_714_000_000_000)

	tests := []struct {
		name         string
		candAttempts int
		candDuration *int64
		existing     int64
		want         bool
	}{
		{"fewer attempts wins", 2, nil, CompositeScore(3, ptr(9000), now), true},
		{"more attempts loses", 5, ptr(100), CompositeScore(3, ptr(9000), now), false},
		{"equal attempts faster duration wins", 2, ptr(5000), CompositeScore(2, ptr(9000), now), true},
		{"equal attempts slower duration loses", 2, ptr(9000), CompositeScore(2, ptr(5000), now), false},
		{"equal attempts equal duration loses", 2, ptr(5000), CompositeScore(2, ptr(5000), now), false},
		{"measured beats unknown duration", 3, ptr(MaxDurationMs), CompositeScore(3, nil, now), true},
		{"unknown duration cannot beat measured", 3, nil, CompositeScore(3, ptr(5000), now), false},
		{"unknown duration replaces unknown", 3, nil, CompositeScore(3, nil, now), true},
		{"legacy row counts as unknown duration", 3, ptr(60_000), 3*ScoreFactor + now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Better(tt.candAttempts, tt.candDuration, tt.existing))
		})
	}
}
