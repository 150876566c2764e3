// Package tutor turns a student utterance into a metered model reply.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/igoryan-dao/ricochet-tutor/internal/agent"
	"github.com/igoryan-dao/ricochet-tutor/internal/modes"
	"github.com/igoryan-dao/ricochet-tutor/internal/protocol"
	"github.com/igoryan-dao/ricochet-tutor/internal/session"
	"github.com/igoryan-dao/ricochet-tutor/internal/tokenizer"
)

const (
	// MaxCompletionTokens caps every reply.
	MaxCompletionTokens = 600
	// Temperature is the sampling temperature of every call.
	Temperature = 0.25
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-5.1"
)

// FallbackReply replaces an empty or whitespace-only model reply.
const FallbackReply = "[Tutor Warning] The model returned an empty response.\n" +
	"Let’s try again! Here is a fresh explanation:\n\n" +
	"Concept Explanation:\nWhile loops run repeatedly while a condition is True.\n\n" +
	"Code Example:\nwhile x < 5:\n    print(x)\n    x += 1\n\n" +
	"Practice Exercise:\nWrite a loop that counts down from 10 to 1.\n\n" +
	"Feedback:\nGreat question! Loops are core to Python—keep experimenting!"

// ErrorPrefix starts every reply produced by a failed remote call.
const ErrorPrefix = "[Tutor Error:"

// Metadata is the token and cost accounting of one turn.
// The zero value marks a failed turn.
type Metadata struct {
	Mode             modes.Mode `json:"mode"`
	PromptTokens     int        `json:"prompt_tokens"`
	CompletionTokens int        `json:"completion_tokens"`
	TotalTokens      int        `json:"total_tokens"`
	EstimatedCost    float64    `json:"estimated_cost"`
}

// IsEmpty reports whether m carries no accounting, i.e. the turn failed.
func (m Metadata) IsEmpty() bool {
	return m == Metadata{}
}

// Config holds the fixed parameters of every call.
type Config struct {
	Model               string
	MaxCompletionTokens int
	Temperature         float64
	SystemPrompt        string
	Pricing             tokenizer.Pricing
	// RollbackOnFailure removes the templated user message when the remote call fails.
	RollbackOnFailure bool
}

// DefaultConfig returns the built-in call parameters.
func DefaultConfig() Config {
	return Config{
		Model:               DefaultModel,
		MaxCompletionTokens: MaxCompletionTokens,
		Temperature:         Temperature,
		SystemPrompt:        modes.SystemPrompt,
	}
}

// Option customizes a Tutor.
type Option func(*Tutor)

// WithModel sets the model ID sent with every request.
func WithModel(model string) Option {
	return func(t *Tutor) {
		if model != "" {
			t.cfg.Model = model
		}
	}
}

// WithPricing sets the per-1000-token rates.
func WithPricing(p tokenizer.Pricing) Option {
	return func(t *Tutor) { t.cfg.Pricing = p }
}

// WithRollbackOnFailure toggles removal of the user message after a failed call.
func WithRollbackOnFailure(on bool) Option {
	return func(t *Tutor) { t.cfg.RollbackOnFailure = on }
}

// WithSystemPrompt replaces the persona used to seed new sessions.
func WithSystemPrompt(prompt string) Option {
	return func(t *Tutor) { t.cfg.SystemPrompt = prompt }
}

// WithClassifier replaces the intent classifier.
func WithClassifier(c *modes.Classifier) Option {
	return func(t *Tutor) { t.classifier = c }
}

// WithTemplater replaces the prompt templater.
func WithTemplater(tp *modes.Templater) Option {
	return func(t *Tutor) { t.templater = tp }
}

// WithCounter replaces the token counter.
func WithCounter(c tokenizer.Counter) Option {
	return func(t *Tutor) { t.counter = c }
}

// Tutor ties classification, templating, counting and the remote call together.
// It holds no conversation state; sessions are threaded by the caller.
type Tutor struct {
	provider   agent.Provider
	cfg        Config
	classifier *modes.Classifier
	templater  *modes.Templater
	counter    tokenizer.Counter
}

// New creates a Tutor backed by provider.
func New(provider agent.Provider, opts ...Option) *Tutor {
	t := &Tutor{
		provider:   provider,
		cfg:        DefaultConfig(),
		classifier: modes.NewClassifier(),
		templater:  modes.NewTemplater(nil),
		counter:    tokenizer.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config returns the active call parameters.
func (t *Tutor) Config() Config {
	return t.cfg
}

// NewSession starts a conversation seeded with the tutor persona.
func (t *Tutor) NewSession() *session.Session {
	return session.New(t.cfg.SystemPrompt)
}

// Ask runs one turn. A nil or unseeded sess starts a new conversation.
//
// Ask never returns an error: a failed remote call yields a reply starting with
// ErrorPrefix, empty Metadata, and the session without an assistant message.
func (t *Tutor) Ask(ctx context.Context, text string, sess *session.Session) (string, Metadata, *session.Session) {
	if sess == nil || sess.Len() == 0 {
		sess = t.NewSession()
	}

	mode := t.classifier.Classify(text)
	prompt := t.templater.Build(text, mode)

	before := sess.Len()
	if err := sess.Append(protocol.UserMessage(prompt)); err != nil {
		// unreachable: user-role messages are always accepted
		return errorReply(err), Metadata{}, sess
	}

	messages := sess.Messages()
	promptTokens := t.counter.CountTokens(messages)

	resp, err := t.call(ctx, messages)
	if err != nil {
		log.Printf("[Tutor] session=%s mode=%s remote call failed: %v", sess.ID(), mode, err)
		if t.cfg.RollbackOnFailure {
			sess.Truncate(before)
		}
		return errorReply(err), Metadata{}, sess
	}

	reply := resp.Content
	if strings.TrimSpace(reply) == "" {
		log.Printf("[Tutor] session=%s mode=%s empty completion, substituting fallback", sess.ID(), mode)
		reply = FallbackReply
	}

	meta := Metadata{
		Mode:             mode,
		PromptTokens:     promptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		EstimatedCost:    t.cfg.Pricing.Estimate(promptTokens, resp.Usage.CompletionTokens),
	}

	if err := sess.Append(protocol.AssistantMessage(reply)); err != nil {
		return errorReply(err), Metadata{}, sess
	}

	log.Printf("[Tutor] session=%s mode=%s prompt=%d completion=%d total=%d cost=%.6f",
		sess.ID(), meta.Mode, meta.PromptTokens, meta.CompletionTokens, meta.TotalTokens, meta.EstimatedCost)

	return reply, meta, sess
}

func (t *Tutor) call(ctx context.Context, messages []protocol.Message) (*agent.ChatResponse, error) {
	if t.provider == nil {
		return nil, errors.New("no model provider configured")
	}

	resp, err := t.provider.Chat(ctx, &agent.ChatRequest{
		Model:       t.cfg.Model,
		Messages:    messages,
		MaxTokens:   t.cfg.MaxCompletionTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, agent.ErrNoChoices
	}
	if resp.Usage == nil {
		return nil, agent.ErrMissingUsage
	}
	return resp, nil
}

func errorReply(err error) string {
	return fmt.Sprintf("%s %v]", ErrorPrefix, err)
}

// ErrorDetail extracts the error text from a failed-turn reply.
// The boolean is false for ordinary replies.
func ErrorDetail(reply string) (string, bool) {
	if !strings.HasPrefix(reply, ErrorPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(reply, ErrorPrefix), "]")), true
}
