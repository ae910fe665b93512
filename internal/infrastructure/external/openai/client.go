// Package openai implements the LLM provider client for the portfolio chat
// widget. It talks to the OpenAI Responses API directly over HTTP; there is
// deliberately no retry logic, a failed chat call surfaces to the user.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4.1-mini"

// MaxHistoryMessages caps how much client-side chat history is forwarded.
const MaxHistoryMessages = 12

// ClientConfig contains configuration for the OpenAI client.
type ClientConfig struct {
	// BaseURL is the API base URL, overridable for tests.
	BaseURL string

	// APIKey is the bearer token. Empty means the client is not configured.
	APIKey string

	// Model is the model identifier sent with each request.
	Model string

	// Temperature is the sampling temperature.
	Temperature float64

	// Timeout is the HTTP request timeout.
	Timeout time.Duration
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		BaseURL:     "https://api.openai.com/v1",
		APIKey:      apiKey,
		Model:       DefaultModel,
		Temperature: 0.5,
		Timeout:     60 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("openai: api key not configured")

// ErrEmptyAnswer is returned when the model produced no text output.
var ErrEmptyAnswer = errors.New("openai: empty answer from model")

// Client is the OpenAI Responses API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a new OpenAI client.
func NewClient(config ClientConfig) *Client {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// responsesRequest is the Responses API request payload.
type responsesRequest struct {
	Model       string    `json:"model"`
	Input       []Message `json:"input"`
	Temperature float64   `json:"temperature"`
}

// responsesResponse covers the part of the Responses API payload we read: the
// text content items of each output message.
type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Respond sends the conversation to the model and returns its answer text.
func (c *Client) Respond(ctx context.Context, input []Message) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(responsesRequest{
		Model:       c.config.Model,
		Input:       input,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	var parsed responsesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai: parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("openai: api error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("openai: api error: status %d", resp.StatusCode)
	}

	var sb strings.Builder
	for _, item := range parsed.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" {
				sb.WriteString(content.Text)
			}
		}
	}

	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}

// SanitizeHistory keeps only user/assistant turns with non-empty string
// content and truncates to the last MaxHistoryMessages entries.
func SanitizeHistory(messages []Message) []Message {
	safe := make([]Message, 0, len(messages))
	for _, m := range messages {
		if (m.Role == "user" || m.Role == "assistant") && m.Content != "" {
			safe = append(safe, m)
		}
	}
	if len(safe) > MaxHistoryMessages {
		safe = safe[len(safe)-MaxHistoryMessages:]
	}
	return safe
}
