// Package wordly contains the domain model of the Wordly daily word game:
// the composite score codec, submission and history types, and the storage
// contract shared by all ranking backends.
package wordly

// ══════════════════════════════════════════════════════════════════════════════
// COMPOSITE SCORE CODEC
// ══════════════════════════════════════════════════════════════════════════════

// A composite score packs a result into a single integer so that an ascending
// numeric sort yields the canonical ranking: fewer attempts always wins, and for
// equal attempts a faster solve wins. Entries without a measured duration are
// scored as worst-possible duration, so measured entries outrank them.
//
// Layout (new format):
//
//	attempts * ScoreFactor + clampedDurationMs * DurationMultiplier + tieBreaker
//
// A legacy format (attempts * ScoreFactor + submittedAtUnixMs) is still decoded
// for rows written before durations were tracked.
const (
	// ScoreFactor is the attempts digit multiplier. It exceeds the maximum
	// value of the lower-order component, so attempts dominates the ordering.
	ScoreFactor int64 = 10_000_000_000_000 // 1e13

	// DurationMultiplier scales the duration into the mid-order digits,
	// leaving three low-order decimal digits for the tie breaker.
	DurationMultiplier int64 = 1000

	// LegacySubmittedAtThreshold discriminates legacy rows on decode: a lower
	// part above it is a raw Unix-ms submission timestamp (always >= 1.6e12 in
	// practice), below it a scaled duration. The maximum new-format lower part
	// is MaxDurationMs*DurationMultiplier+999 ~= 8.64e10, so the two ranges
	// cannot overlap.
	LegacySubmittedAtThreshold int64 = 100_000_000_000 // 1e11

	// MaxDurationMs caps a solve duration at 24 hours.
	MaxDurationMs int64 = 86_400_000

	// maxClampedDuration keeps the duration component from overflowing into
	// the attempts digit.
	maxClampedDuration = (ScoreFactor - 1) / DurationMultiplier
)

// MinAttempts and MaxAttempts bound the number of guesses in a daily puzzle.
const (
	MinAttempts = 1
	MaxAttempts = 6
)

// ScoreMeta is the decoded lower part of a composite score. Exactly one of
// DurationMs and SubmittedAt is set: new-format scores carry a duration,
// legacy scores carry the raw submission timestamp.
type ScoreMeta struct {
	DurationMs  *int64
	SubmittedAt *int64
}

// CompositeScore encodes attempts, an optional solve duration and the
// submission timestamp into a single sortable integer. A nil or negative
// duration is treated as unknown and scored as the worst possible duration.
func CompositeScore(attempts int, durationMs *int64, submittedAt int64) int64 {
	safeDuration := maxClampedDuration
	if durationMs != nil && *durationMs >= 0 && *durationMs < maxClampedDuration {
		safeDuration = *durationMs
	}

	tieBreaker := submittedAt % DurationMultiplier
	if tieBreaker < 0 {
		tieBreaker = 0
	}

	return int64(attempts)*ScoreFactor + safeDuration*DurationMultiplier + tieBreaker
}

// DecodeAttempts extracts the attempts digit from a composite score.
func DecodeAttempts(score int64) int {
	return int(score / ScoreFactor)
}

// DecodeScoreMeta extracts the duration or legacy submission timestamp from a
// composite score. See LegacySubmittedAtThreshold for the discrimination rule.
func DecodeScoreMeta(score int64) ScoreMeta {
	lower := score % ScoreFactor
	if lower > LegacySubmittedAtThreshold {
		return ScoreMeta{SubmittedAt: &lower}
	}
	duration := lower / DurationMultiplier
	return ScoreMeta{DurationMs: &duration}
}

// Better reports whether a candidate result strictly improves on an existing
// stored score. The rule, shared by every backend:
//
//   - fewer attempts always wins;
//   - for equal attempts, an existing entry without a measured duration is
//     always replaceable;
//   - otherwise the candidate must have a measured duration that is strictly
//     lower than the existing one.
func Better(candAttempts int, candDurationMs *int64, existingScore int64) bool {
	existAttempts := DecodeAttempts(existingScore)
	if candAttempts != existAttempts {
		return candAttempts < existAttempts
	}

	meta := DecodeScoreMeta(existingScore)
	if meta.DurationMs == nil {
		return true
	}
	return candDurationMs != nil && *candDurationMs >= 0 && *candDurationMs < *meta.DurationMs
}
