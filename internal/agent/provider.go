package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quocvuong92/agentsh/internal/config"
	"github.com/quocvuong92/agentsh/internal/constants"
)

// ModelProvider is the language-model capability behind chat commands
type ModelProvider interface {
	// Name identifies the provider for logging
	Name() string

	// Complete sends a system and user message and returns the reply
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewProvider selects a provider from config: an OpenAI-compatible HTTP
// endpoint when one is configured, otherwise a local echo provider so
// chat works out of the box.
func NewProvider(cfg *config.Config) (ModelProvider, error) {
	if cfg.ModelEndpoint != "" {
		return newHTTPProvider(cfg), nil
	}
	return &echoProvider{}, nil
}

// echoProvider is the no-endpoint fallback; it answers by quoting the
// prompt, which keeps chat usable offline and in tests
type echoProvider struct{}

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) Complete(ctx context.Context, system, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("(echo) %s", user), nil
}

// chatMessage mirrors the chat-completions wire format
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// httpProvider talks to any OpenAI-compatible chat-completions endpoint
type httpProvider struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

func newHTTPProvider(cfg *config.Config) *httpProvider {
	return &httpProvider{
		endpoint: cfg.ModelEndpoint,
		apiKey:   cfg.ModelAPIKey,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: constants.DefaultModelTimeout,
		},
	}
}

func (p *httpProvider) Name() string { return "openai-compatible" }

func (p *httpProvider) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	return withRetry(ctx, func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			p.endpoint+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if p.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.apiKey)
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to send request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var errResp chatErrorResponse
			errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
			if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
				errMsg = errResp.Error.Message
			}
			return "", &providerError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("model provider error: %s", errMsg),
			}
		}

		var chatResp chatResponse
		if err := json.Unmarshal(body, &chatResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if len(chatResp.Choices) == 0 {
			return "", fmt.Errorf("model provider returned no choices")
		}

		return chatResp.Choices[0].Message.Content, nil
	})
}
