// Package advisor is the OpenRouter chat-completions client behind the
// financial-advisor chat view. It keeps the whole conversation in memory and
// resends it on every turn; there is no persistence across runs.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the OpenRouter chat completions endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	// DefaultModel matches the model the original tool hardcoded.
	DefaultModel = "openai/gpt-3.5-turbo"

	systemPrompt = "You are a helpful financial advisor. Provide sound financial advice and tips."

	requestTimeout = 30 * time.Second
	maxAttempts    = 3
)

var ErrNoAPIKey = errors.New("advisor: api key not configured")

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation accumulates the chat history, seeded with the advisor system
// prompt. The ID only serves log correlation.
type Conversation struct {
	ID       string
	Messages []Message
}

func NewConversation() *Conversation {
	return &Conversation{
		ID:       uuid.NewString(),
		Messages: []Message{{Role: "system", Content: systemPrompt}},
	}
}

// Client calls the chat completions API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		log:     logger,
	}
}

// SetBaseURL overrides the endpoint, mainly for tests and proxies.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// Chat appends the user input to the conversation, calls the API and appends
// the assistant reply. On failure the user turn is rolled back so a retry
// does not duplicate it.
func (c *Client) Chat(ctx context.Context, conv *Conversation, input string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("advisor: empty message")
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	conv.Messages = append(conv.Messages, Message{Role: "user", Content: input})

	var reply string
	err := retry.Do(
		func() error {
			var callErr error
			reply, callErr = c.call(ctx, conv.Messages)
			return callErr
		},
		retry.Attempts(maxAttempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.Code == http.StatusTooManyRequests || se.Code >= 500
			}
			// network-level failures are worth one more try
			var ae *apiCallError
			return !errors.As(err, &ae) && ctx.Err() == nil
		}),
	)
	if err != nil {
		conv.Messages = conv.Messages[:len(conv.Messages)-1]
		return "", err
	}

	conv.Messages = append(conv.Messages, Message{Role: "assistant", Content: reply})
	c.log.Debug("advisor reply", "conversation", conv.ID, "turns", len(conv.Messages))
	return reply, nil
}

// statusError is a non-2xx HTTP response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("advisor: http %d: %s", e.Code, e.Body)
}

// apiCallError is an error payload returned by the API itself.
type apiCallError struct {
	Message string
}

func (e *apiCallError) Error() string {
	return "advisor: api error: " + e.Message
}

func (c *Client) call(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if out.Error != nil {
		return "", &apiCallError{Message: out.Error.Message}
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("advisor: empty response")
	}
	return out.Choices[0].Message.Content, nil
}
