package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Provider for OpenAI and compatible APIs
type OpenAIProvider struct {
	apiKey       string
	model        string
	baseURL      string
	organization string
	client       *http.Client
}

// NewOpenAIProvider creates a new OpenAI-compatible provider.
// A nil client gets one with DefaultTimeout.
func NewOpenAIProvider(apiKey, model, baseURL, organization string, client *http.Client) *OpenAIProvider {
	if model == "" {
		model = "gpt-5.1"
	}
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	} else if !strings.HasSuffix(baseURL, "/chat/completions") {
		// Ensure the URL ends with /chat/completions
		baseURL = strings.TrimSuffix(baseURL, "/") + "/chat/completions"
	}
	if client == nil {
		client = newHTTPClient(0)
	}
	return &OpenAIProvider{
		apiKey:       apiKey,
		model:        model,
		baseURL:      baseURL,
		organization: organization,
		client:       client,
	}
}

func (p *OpenAIProvider) Name() string {
	if strings.Contains(p.baseURL, "openrouter") {
		return "openrouter"
	}
	return "openai"
}

// openaiRequest is the OpenAI API request format
type openaiRequest struct {
	Model               string          `json:"model"`
	Messages            []openaiMessage `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	Temperature         float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type openaiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// openaiResponse is the OpenAI API response format
type openaiResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int           `json:"index"`
		Message      openaiMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage *openaiUsage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Chat performs a single non-streaming chat completion
func (p *OpenAIProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := doRequest(ctx, p.client, http.MethodPost, p.baseURL, p.headers(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[OpenAI] API returned %d", resp.StatusCode)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var openaiResp openaiResponse
	if err := json.Unmarshal(respBody, &openaiResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if openaiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", openaiResp.Error.Message)
	}

	return p.parseResponse(&openaiResp)
}

func (p *OpenAIProvider) headers() map[string]string {
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + p.apiKey,
	}
	if p.organization != "" {
		headers["OpenAI-Organization"] = p.organization
	}

	// OpenRouter specific headers
	if strings.Contains(p.baseURL, "openrouter") {
		headers["X-Title"] = "Ricochet Tutor"
	}

	return headers
}

func (p *OpenAIProvider) buildRequest(req *ChatRequest) *openaiRequest {
	messages := make([]openaiMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		content := msg.Content
		messages = append(messages, openaiMessage{
			Role:    string(msg.Role),
			Content: &content,
		})
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	return &openaiRequest{
		Model:               model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         req.Temperature,
	}
}

func (p *OpenAIProvider) parseResponse(resp *openaiResponse) (*ChatResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	if resp.Usage == nil {
		return nil, ErrMissingUsage
	}

	choice := resp.Choices[0]

	// A null content is a legitimately empty completion.
	var content string
	if choice.Message.Content != nil {
		content = *choice.Message.Content
	}

	return &ChatResponse{
		ID:         resp.ID,
		Model:      resp.Model,
		Content:    content,
		StopReason: choice.FinishReason,
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Compile-time check
var _ Provider = (*OpenAIProvider)(nil)
