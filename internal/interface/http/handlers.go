package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jaymian-lee/portfolio-api/internal/application/command"
	"github.com/jaymian-lee/portfolio-api/internal/application/query"
	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/external/openai"
	"github.com/jaymian-lee/portfolio-api/pkg/logger"
	"github.com/jaymian-lee/portfolio-api/pkg/timeutil"
)

// User-facing error strings. These are part of the site contract and stay in
// Dutch, exactly as the frontend expects them.
const (
	msgMethodNotAllowed   = "Method not allowed"
	msgStoreNotConfigured = "KV env vars ontbreken op de server."
	msgLeaderboardFailed  = "Kon scorebord niet verwerken."
	msgHistoryFailed      = "Kon historie niet ophalen."
	msgPlayersFailed      = "Kon spelerslijst niet ophalen."
	msgNoChatHistory      = "Geen geldige chatgeschiedenis ontvangen."
	msgNoUsableMessages   = "Geen bruikbare berichten gevonden."
	msgMissingAPIKey      = "OPENAI_API_KEY ontbreekt op de server. Voeg deze toe aan je environment en herstart de API."
	msgEmptyAnswer        = "Geen antwoord ontvangen van het model."
	msgChatFailed         = "Er ging iets mis bij het ophalen van een AI-antwoord. Probeer het opnieuw."
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH
// ══════════════════════════════════════════════════════════════════════════════

// handleHealth reports service status: the chat model, whether the provider
// key is present, and which ranking store backend is wired.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	model := openai.DefaultModel
	hasKey := false
	if s.deps.Chat != nil {
		model = s.deps.Chat.Model()
		hasKey = s.deps.Chat.Configured()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"model":     model,
		"hasApiKey": hasKey,
		"store":     s.deps.StoreKind,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// CHAT PROXY
// ══════════════════════════════════════════════════════════════════════════════

type chatRequest struct {
	Messages []openai.Message `json:"messages"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// handleChat forwards sanitized chat history to the LLM provider behind the
// fixed portfolio system prompt.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Chat == nil || !s.deps.Chat.Configured() {
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, msgNoChatHistory)
		return
	}

	safe := openai.SanitizeHistory(req.Messages)
	if len(safe) == 0 {
		writeError(w, http.StatusBadRequest, msgNoUsableMessages)
		return
	}

	input := make([]openai.Message, 0, len(safe)+2)
	input = append(input, openai.Message{Role: "system", Content: openai.SystemPrompt})
	if boardContext := s.todayBoardContext(r); boardContext != "" {
		input = append(input, openai.Message{Role: "system", Content: boardContext})
	}
	input = append(input, safe...)

	answer, err := s.deps.Chat.Respond(r.Context(), input)
	if err != nil {
		if errors.Is(err, openai.ErrEmptyAnswer) {
			writeError(w, http.StatusBadGateway, msgEmptyAnswer)
			return
		}
		s.logger.Error("chat request failed",
			logger.Err(err),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, msgChatFailed)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

// todayBoardContext builds a one-line summary of today's leaderboards so the
// assistant can answer "who is winning Wordly today". Best effort only; any
// store problem just omits the context.
func (s *Server) todayBoardContext(r *http.Request) string {
	if s.deps.Store == nil {
		return ""
	}

	ctx, cancel := contextWithShortTimeout(r)
	defer cancel()

	today := timeutil.TodayKey()
	var lines []string
	for _, lang := range []wordly.Language{wordly.LanguageEN, wordly.LanguageNL} {
		top, err := s.deps.Store.TopN(ctx, today, lang, query.TopSize)
		if err != nil || len(top) == 0 {
			continue
		}
		entries := make([]string, 0, len(top))
		for _, view := range top {
			entries = append(entries, fmt.Sprintf("%s (%d/6)", view.Name, view.Attempts))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", lang, strings.Join(entries, ", ")))
	}
	if len(lines) == 0 {
		return ""
	}
	return "Today's Wordly top 3 (" + today + ") - " + strings.Join(lines, "; ")
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD
// ══════════════════════════════════════════════════════════════════════════════

type submitRequest struct {
	Name       string `json:"name"`
	DateKey    string `json:"dateKey"`
	Attempts   int    `json:"attempts"`
	DurationMs *int64 `json:"durationMs"`
	Language   string `json:"language"`
}

type submitResponse struct {
	OK       bool               `json:"ok"`
	Accepted bool               `json:"accepted"`
	DateKey  string             `json:"dateKey"`
	Language string             `json:"language"`
	Top3     []wordly.ScoreView `json:"top3"`
}

// handleLeaderboard dispatches GET (read board) and POST (submit score).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetLeaderboard(w, r)
	case http.MethodPost:
		s.handleSubmitScore(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	dateKey := r.URL.Query().Get("date")
	if _, ok := wordly.NormalizeDateKey(dateKey); !ok {
		writeError(w, http.StatusBadRequest, wordly.ErrInvalidDateKey.Message)
		return
	}

	result, err := s.deps.GetLeaderboardHandler.Handle(r.Context(), query.GetLeaderboardQuery{
		DateKey:  dateKey,
		Language: r.URL.Query().Get("language"),
	})
	if err != nil {
		s.writeStoreError(w, r, err, msgLeaderboardFailed)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, wordly.ErrInvalidName.Message)
		return
	}

	submitted, err := s.deps.SubmitScoreHandler.Handle(r.Context(), command.SubmitScoreCommand{
		Name:       req.Name,
		DateKey:    req.DateKey,
		Attempts:   req.Attempts,
		DurationMs: req.DurationMs,
		Language:   req.Language,
	})
	if err != nil {
		s.writeStoreError(w, r, err, msgLeaderboardFailed)
		return
	}

	// The response carries the updated board so the frontend can render
	// without a second round trip.
	board, err := s.deps.GetLeaderboardHandler.Handle(r.Context(), query.GetLeaderboardQuery{
		DateKey:  submitted.DateKey,
		Language: submitted.Language,
	})
	if err != nil {
		s.writeStoreError(w, r, err, msgLeaderboardFailed)
		return
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveSubmission(submitted.Language, submitted.Accepted)
	}

	s.logger.Info("score submitted",
		logger.Player(wordly.NormalizeName(req.Name)),
		logger.DateKey(submitted.DateKey),
		logger.Language(submitted.Language),
		logger.Attempts(req.Attempts),
		logger.Bool("accepted", submitted.Accepted),
		logger.String("request_id", getRequestID(r.Context())),
	)

	writeJSON(w, http.StatusOK, submitResponse{
		OK:       true,
		Accepted: submitted.Accepted,
		DateKey:  submitted.DateKey,
		Language: submitted.Language,
		Top3:     board.Top3,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// HISTORY
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetHistoryHandler.Handle(r.Context(), query.GetHistoryQuery{
		Name:     r.URL.Query().Get("name"),
		Language: r.URL.Query().Get("language"),
	})
	if err != nil {
		s.writeStoreError(w, r, err, msgHistoryFailed)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// PLAYERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	// The filter obeys the same trim-and-cap rules as names, rune-safe.
	filter := wordly.NormalizeName(r.URL.Query().Get("q"))

	result, err := s.deps.GetPlayersHandler.Handle(r.Context(), query.GetPlayersQuery{
		Language: r.URL.Query().Get("language"),
		Filter:   filter,
	})
	if err != nil {
		s.writeStoreError(w, r, err, msgPlayersFailed)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// writeStoreError maps application errors onto the public contract: validation
// errors become 400 with their own message, an unconfigured store becomes the
// original "KV env vars" 500, everything else the endpoint's generic 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	var validation *wordly.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusBadRequest, validation.Message)
		return
	}

	if errors.Is(err, wordly.ErrStoreNotConfigured) {
		writeError(w, http.StatusInternalServerError, msgStoreNotConfigured)
		return
	}

	s.logger.Error("request failed",
		logger.Err(err),
		logger.String("path", r.URL.Path),
		logger.String("request_id", getRequestID(r.Context())),
	)
	writeError(w, http.StatusInternalServerError, generic)
}

// contextWithShortTimeout derives a bounded context for best-effort lookups.
func contextWithShortTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 2*time.Second)
}
