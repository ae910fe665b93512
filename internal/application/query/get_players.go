package query

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PLAYERS QUERY
// Returns the directory of everyone who ever appeared on a language's boards,
// deduplicated case-insensitively and sorted with locale-aware collation.
// ══════════════════════════════════════════════════════════════════════════════

// MaxPlayerResults caps the directory response size.
const MaxPlayerResults = 200

// GetPlayersQuery contains the directory parameters.
type GetPlayersQuery struct {
	// Language selects the boards; anything other than "nl" means English.
	Language string

	// Filter is an optional case-insensitive substring match on names.
	Filter string
}

// GetPlayersResult contains the player directory.
type GetPlayersResult struct {
	// Language is the board language.
	Language string `json:"language"`

	// Players lists distinct display names, sorted. Never nil.
	Players []string `json:"players"`
}

// GetPlayersHandler handles the GetPlayersQuery.
type GetPlayersHandler struct {
	store wordly.Store
}

// NewGetPlayersHandler creates a new GetPlayersHandler.
func NewGetPlayersHandler(store wordly.Store) *GetPlayersHandler {
	return &GetPlayersHandler{store: store}
}

// Handle builds the directory for one language.
func (h *GetPlayersHandler) Handle(ctx context.Context, q GetPlayersQuery) (*GetPlayersResult, error) {
	lang := wordly.NormalizeLanguage(q.Language)

	names, err := h.store.PlayerNames(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("get_players: %w", err)
	}

	players := dedupeNames(names)

	if filter := strings.ToLower(strings.TrimSpace(q.Filter)); filter != "" {
		filtered := players[:0]
		for _, name := range players {
			if strings.Contains(strings.ToLower(name), filter) {
				filtered = append(filtered, name)
			}
		}
		players = filtered
	}

	collatorFor(lang).SortStrings(players)

	if len(players) > MaxPlayerResults {
		players = players[:MaxPlayerResults]
	}

	return &GetPlayersResult{
		Language: string(lang),
		Players:  players,
	}, nil
}

// dedupeNames collapses case variants of the same name; the first casing seen
// wins, matching what the boards display.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = wordly.NormalizeName(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func collatorFor(lang wordly.Language) *collate.Collator {
	tag := language.English
	if lang == wordly.LanguageNL {
		tag = language.Dutch
	}
	return collate.New(tag, collate.IgnoreCase)
}
