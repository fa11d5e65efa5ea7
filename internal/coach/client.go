package coach

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/models"
)

var ErrNoAPIKey = errors.New("coach API key not configured")

// Message is one transcript turn as sent to the service.
type Message struct {
	Role    models.MessageRole
	Content string
}

// Completer turns a transcript plus context into a single reply.
type Completer interface {
	Complete(ctx context.Context, history []Message, c Context) (string, error)
}

type Config struct {
	Endpoint    string
	Model       string
	APIKey      string
	Temperature float64
	Timeout     time.Duration
}

// Client talks to an OpenAI-compatible chat completions API. Endpoint is the
// API base URL; a full .../chat/completions URL is accepted as well.
type Client struct {
	cfg Config
	api *openai.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = constants.DefaultCoachEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultCoachModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = constants.DefaultCoachTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultCoachTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = baseURL(cfg.Endpoint)
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{cfg: cfg, api: openai.NewClientWithConfig(oc)}
}

func baseURL(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	return strings.TrimSuffix(endpoint, "/chat/completions")
}

// Complete makes one request with no retry.
func (c *Client) Complete(ctx context.Context, history []Message, cc Context) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(cc)})
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    msgs,
		Temperature: float32(c.cfg.Temperature),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("completion service returned %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("completion service returned no text")
	}
	return resp.Choices[0].Message.Content, nil
}
