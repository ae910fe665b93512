package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

// ══════════════════════════════════════════════════════════════════════════════
// KEY LAYOUT
// ══════════════════════════════════════════════════════════════════════════════

// Key patterns, kept compatible with the original deployment:
//
//	wordlee:lb:<dateKey>:<language>     sorted set, member=playerKey score=composite
//	wordlee:names:<dateKey>:<language>  hash, playerKey -> display name
//	wordlee:user:<language>:<playerKey> hash, dateKey -> history record JSON
const (
	keyPrefixBoard = "wordlee:lb:"
	keyPrefixNames = "wordlee:names:"
	keyPrefixUser  = "wordlee:user:"
)

func boardKey(dateKey string, language wordly.Language) string {
	return keyPrefixBoard + dateKey + ":" + string(language)
}

func namesKey(dateKey string, language wordly.Language) string {
	return keyPrefixNames + dateKey + ":" + string(language)
}

func userKey(player string, language wordly.Language) string {
	return keyPrefixUser + string(language) + ":" + player
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT SCRIPT
// ══════════════════════════════════════════════════════════════════════════════

// submitScript applies the accept-if-better rule server-side, so two
// concurrent submissions for the same player cannot clobber each other. The
// comparison mirrors wordly.Better, with the codec constants passed as
// arguments rather than duplicated in the script.
//
// KEYS[1] board zset, KEYS[2] names hash.
// ARGV: playerKey, score, attempts, durationMs (-1 = unknown),
// scoreFactor, durationMultiplier, legacyThreshold, displayName.
var submitScript = redis.NewScript(`
local existing = redis.call('ZSCORE', KEYS[1], ARGV[1])
local accept = false
if not existing then
  accept = true
else
  local factor = tonumber(ARGV[5])
  local ex = tonumber(existing)
  local exAttempts = math.floor(ex / factor)
  local candAttempts = tonumber(ARGV[3])
  if candAttempts < exAttempts then
    accept = true
  elseif candAttempts == exAttempts then
    local lower = ex % factor
    if lower > tonumber(ARGV[7]) then
      accept = true
    else
      local candDuration = tonumber(ARGV[4])
      local exDuration = math.floor(lower / tonumber(ARGV[6]))
      accept = candDuration >= 0 and candDuration < exDuration
    end
  end
end
if accept then
  redis.call('ZADD', KEYS[1], ARGV[2], ARGV[1])
  redis.call('HSET', KEYS[2], ARGV[1], ARGV[8])
  return 1
end
return 0
`)

// ══════════════════════════════════════════════════════════════════════════════
// BOARD STORE
// ══════════════════════════════════════════════════════════════════════════════

// maxPlayerScanLoops bounds the directory SCAN so a pathological keyspace
// cannot stall the request.
const maxPlayerScanLoops = 25

// historyPayload is the persisted history value, identical to the format the
// original deployment wrote.
type historyPayload struct {
	Attempts    int    `json:"attempts"`
	DurationMs  *int64 `json:"durationMs"`
	SubmittedAt int64  `json:"submittedAt"`
}

// BoardStore implements wordly.Store on Redis.
type BoardStore struct {
	client *redis.Client
}

// NewBoardStore creates a Redis-backed ranking store.
func NewBoardStore(client *redis.Client) *BoardStore {
	return &BoardStore{client: client}
}

// Submit runs the accept-if-better script and records the submission in the
// player's history hash.
func (s *BoardStore) Submit(ctx context.Context, sub wordly.Submission) (bool, error) {
	durationArg := int64(-1)
	if sub.DurationMs != nil && *sub.DurationMs >= 0 {
		durationArg = *sub.DurationMs
	}

	result, err := submitScript.Run(ctx, s.client,
		[]string{boardKey(sub.DateKey, sub.Language), namesKey(sub.DateKey, sub.Language)},
		sub.PlayerKey,
		sub.Score(),
		sub.Attempts,
		durationArg,
		wordly.ScoreFactor,
		wordly.DurationMultiplier,
		wordly.LegacySubmittedAtThreshold,
		sub.DisplayName,
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis: submit: %w", err)
	}

	if err := s.recordHistory(ctx, sub); err != nil {
		return false, err
	}

	return result == 1, nil
}

// recordHistory merges the submission into the player's per-day history. The
// read-merge-write here is not atomic; the only contended field is the
// attempts minimum, and a lost update costs one display-only data point.
func (s *BoardStore) recordHistory(ctx context.Context, sub wordly.Submission) error {
	key := userKey(sub.PlayerKey, sub.Language)

	var existing *wordly.HistoryRecord
	raw, err := s.client.HGet(ctx, key, sub.DateKey).Bytes()
	switch {
	case err == nil:
		if record, ok := wordly.ParseHistoryRecord(sub.DateKey, raw); ok {
			existing = &record
		}
	case errors.Is(err, redis.Nil):
		// First submission for this day.
	default:
		return fmt.Errorf("redis: read history: %w", err)
	}

	merged := wordly.MergeHistoryRecord(existing, sub)
	data, err := json.Marshal(historyPayload{
		Attempts:    merged.Attempts,
		DurationMs:  merged.DurationMs,
		SubmittedAt: merged.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("redis: encode history: %w", err)
	}

	if err := s.client.HSet(ctx, key, sub.DateKey, data).Err(); err != nil {
		return fmt.Errorf("redis: write history: %w", err)
	}
	return nil
}

// TopN returns the n lowest-scoring entries with display names resolved.
func (s *BoardStore) TopN(ctx context.Context, dateKey string, language wordly.Language, n int) ([]wordly.ScoreView, error) {
	members, err := s.client.ZRangeWithScores(ctx, boardKey(dateKey, language), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: top query: %w", err)
	}
	if len(members) == 0 {
		return []wordly.ScoreView{}, nil
	}

	fields := make([]string, len(members))
	for i, member := range members {
		fields[i] = fmt.Sprint(member.Member)
	}

	names, err := s.client.HMGet(ctx, namesKey(dateKey, language), fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: resolve names: %w", err)
	}

	views := make([]wordly.ScoreView, 0, len(members))
	for i, member := range members {
		displayName := ""
		if i < len(names) {
			if name, ok := names[i].(string); ok {
				displayName = name
			}
		}
		views = append(views, wordly.ResolveScoreView(fields[i], displayName, int64(member.Score)))
	}
	return views, nil
}

// History reads and defensively parses every per-day record of one player.
func (s *BoardStore) History(ctx context.Context, player string, language wordly.Language) ([]wordly.HistoryRecord, error) {
	raw, err := s.client.HGetAll(ctx, userKey(player, language)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: history query: %w", err)
	}

	records := make([]wordly.HistoryRecord, 0, len(raw))
	for dateKey, value := range raw {
		if record, ok := wordly.ParseHistoryRecord(dateKey, []byte(value)); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// PlayerNames scans every day's names hash for a language. SCAN is bounded by
// maxPlayerScanLoops pages of 200 keys.
func (s *BoardStore) PlayerNames(ctx context.Context, language wordly.Language) ([]string, error) {
	pattern := keyPrefixNames + "*:" + string(language)

	var names []string
	var cursor uint64
	for loops := 0; loops < maxPlayerScanLoops; loops++ {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, fmt.Errorf("redis: scan names: %w", err)
		}

		for _, key := range keys {
			values, err := s.client.HVals(ctx, key).Result()
			if err != nil {
				return nil, fmt.Errorf("redis: read names: %w", err)
			}
			names = append(names, values...)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return names, nil
}

// Ping verifies the Redis connection.
func (s *BoardStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
