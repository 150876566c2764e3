package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/igoryan-dao/ricochet-tutor/internal/protocol"
)

var (
	// ErrMissingUsage is returned when a response carries no usage record.
	ErrMissingUsage = errors.New("response has no usage data")
	// ErrNoChoices is returned when a response carries no completion.
	ErrNoChoices = errors.New("response has no choices")
)

// Provider represents a chat-completion backend
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	Name() string
}

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Model       string             `json:"model"`
	Messages    []protocol.Message `json:"messages"`
	MaxTokens   int                `json:"max_completion_tokens,omitempty"`
	Temperature float64            `json:"temperature"`
}

// ChatResponse represents a chat completion response
type ChatResponse struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	Content    string `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      *Usage `json:"usage,omitempty"` // nil when the backend reported none
}

// Usage represents token usage as reported by the backend
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig holds provider configuration
type ProviderConfig struct {
	Provider     string        `json:"provider"` // openai, openrouter, deepseek, mistral, ...
	APIKey       string        `json:"api_key"`
	Model        string        `json:"model"`
	BaseURL      string        `json:"base_url,omitempty"` // For custom endpoints
	Organization string        `json:"organization,omitempty"`
	Timeout      time.Duration `json:"timeout,omitempty"`
}

// NewProvider creates a provider based on config. Every supported backend speaks
// the OpenAI chat-completions dialect.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	client := newHTTPClient(cfg.Timeout)

	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Organization, client), nil
	case "openrouter":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, withDefault(cfg.BaseURL, "https://openrouter.ai/api/v1"), "", client), nil
	case "deepseek":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, withDefault(cfg.BaseURL, "https://api.deepseek.com/v1"), "", client), nil
	case "mistral":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, withDefault(cfg.BaseURL, "https://api.mistral.ai/v1"), "", client), nil
	case "zhipu", "glm":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, withDefault(cfg.BaseURL, "https://api.z.ai/api/paas/v4"), "", client), nil
	case "ollama":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, withDefault(cfg.BaseURL, "http://localhost:11434/v1"), "", client), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func withDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// DefaultTimeout bounds one remote call, connection setup included.
const DefaultTimeout = 2 * time.Minute

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

// doRequest performs a single HTTP request. Transient failures are not retried.
func doRequest(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return client.Do(req)
}
