// Package memory implements the ranking store on in-process maps. It backs
// tests and local development without external stores, and is the storage
// model the flat-file backend snapshots to disk.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

type boardKey struct {
	DateKey  string
	Language wordly.Language
}

type playerKey struct {
	Language wordly.Language
	Player   string
}

// BoardStore keeps all leaderboard state in memory, guarded by one mutex.
// Submissions are therefore serialized, which closes the read-modify-write
// race by construction.
type BoardStore struct {
	mu      sync.Mutex
	scores  map[boardKey]map[string]int64
	names   map[boardKey]map[string]string
	history map[playerKey]map[string]wordly.HistoryRecord
}

// NewBoardStore creates an empty in-memory store.
func NewBoardStore() *BoardStore {
	return &BoardStore{
		scores:  make(map[boardKey]map[string]int64),
		names:   make(map[boardKey]map[string]string),
		history: make(map[playerKey]map[string]wordly.HistoryRecord),
	}
}

// Submit applies the accept-if-better rule and records history.
func (s *BoardStore) Submit(_ context.Context, sub wordly.Submission) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(sub), nil
}

func (s *BoardStore) submitLocked(sub wordly.Submission) bool {
	bk := boardKey{DateKey: sub.DateKey, Language: sub.Language}

	accepted := true
	if existing, ok := s.scores[bk][sub.PlayerKey]; ok {
		accepted = wordly.Better(sub.Attempts, sub.DurationMs, existing)
	}

	if accepted {
		if s.scores[bk] == nil {
			s.scores[bk] = make(map[string]int64)
			s.names[bk] = make(map[string]string)
		}
		s.scores[bk][sub.PlayerKey] = sub.Score()
		s.names[bk][sub.PlayerKey] = sub.DisplayName
	}

	pk := playerKey{Language: sub.Language, Player: sub.PlayerKey}
	days := s.history[pk]
	if days == nil {
		days = make(map[string]wordly.HistoryRecord)
		s.history[pk] = days
	}
	var existing *wordly.HistoryRecord
	if record, ok := days[sub.DateKey]; ok {
		existing = &record
	}
	days[sub.DateKey] = wordly.MergeHistoryRecord(existing, sub)

	return accepted
}

// TopN returns the n best entries ascending by composite score.
func (s *BoardStore) TopN(_ context.Context, dateKey string, language wordly.Language, n int) ([]wordly.ScoreView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bk := boardKey{DateKey: dateKey, Language: language}
	members := s.scores[bk]

	type ranked struct {
		player string
		score  int64
	}
	order := make([]ranked, 0, len(members))
	for player, score := range members {
		order = append(order, ranked{player: player, score: score})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score < order[j].score
		}
		return order[i].player < order[j].player
	})
	if len(order) > n {
		order = order[:n]
	}

	views := make([]wordly.ScoreView, 0, len(order))
	for _, entry := range order {
		views = append(views, wordly.ResolveScoreView(entry.player, s.names[bk][entry.player], entry.score))
	}
	return views, nil
}

// History returns the per-day records of one player.
func (s *BoardStore) History(_ context.Context, player string, language wordly.Language) ([]wordly.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := s.history[playerKey{Language: language, Player: player}]
	records := make([]wordly.HistoryRecord, 0, len(days))
	for _, record := range days {
		records = append(records, record)
	}
	return records, nil
}

// PlayerNames enumerates every stored display name for a language.
func (s *BoardStore) PlayerNames(_ context.Context, language wordly.Language) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for bk, members := range s.names {
		if bk.Language != language {
			continue
		}
		for _, name := range members {
			names = append(names, name)
		}
	}
	return names, nil
}

// Ping always succeeds; the store lives in-process.
func (s *BoardStore) Ping(context.Context) error { return nil }
