package memory

import (
	"strings"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

// Snapshot is a serializable copy of the full store state. The flat-file
// backend persists it as JSON.
type Snapshot struct {
	// Boards maps "<dateKey>:<language>" to one day's leaderboard.
	Boards map[string]BoardSnapshot `json:"boards"`

	// History maps "<language>:<playerKey>" to dateKey-indexed records.
	History map[string]map[string]wordly.HistoryRecord `json:"history"`
}

// BoardSnapshot is one (dateKey, language) leaderboard.
type BoardSnapshot struct {
	Scores map[string]int64  `json:"scores"`
	Names  map[string]string `json:"names"`
}

// Snapshot copies the current state.
func (s *BoardStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Boards:  make(map[string]BoardSnapshot, len(s.scores)),
		History: make(map[string]map[string]wordly.HistoryRecord, len(s.history)),
	}

	for bk, members := range s.scores {
		board := BoardSnapshot{
			Scores: make(map[string]int64, len(members)),
			Names:  make(map[string]string, len(members)),
		}
		for player, score := range members {
			board.Scores[player] = score
			board.Names[player] = s.names[bk][player]
		}
		snap.Boards[bk.DateKey+":"+string(bk.Language)] = board
	}

	for pk, days := range s.history {
		copied := make(map[string]wordly.HistoryRecord, len(days))
		for dateKey, record := range days {
			copied[dateKey] = record
		}
		snap.History[string(pk.Language)+":"+pk.Player] = copied
	}

	return snap
}

// Restore replaces the store state with a snapshot. Entries with malformed
// composite keys are skipped.
func (s *BoardStore) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = make(map[boardKey]map[string]int64, len(snap.Boards))
	s.names = make(map[boardKey]map[string]string, len(snap.Boards))
	s.history = make(map[playerKey]map[string]wordly.HistoryRecord, len(snap.History))

	for key, board := range snap.Boards {
		idx := strings.LastIndex(key, ":")
		if idx <= 0 {
			continue
		}
		bk := boardKey{DateKey: key[:idx], Language: wordly.Language(key[idx+1:])}
		s.scores[bk] = make(map[string]int64, len(board.Scores))
		s.names[bk] = make(map[string]string, len(board.Names))
		for player, score := range board.Scores {
			s.scores[bk][player] = score
			s.names[bk][player] = board.Names[player]
		}
	}

	for key, days := range snap.History {
		idx := strings.Index(key, ":")
		if idx <= 0 {
			continue
		}
		pk := playerKey{Language: wordly.Language(key[:idx]), Player: key[idx+1:]}
		copied := make(map[string]wordly.HistoryRecord, len(days))
		for dateKey, record := range days {
			record.IsPR = false
			copied[dateKey] = record
		}
		s.history[pk] = copied
	}
}
