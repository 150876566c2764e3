package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/igoryan-dao/ricochet-tutor/internal/agent"
	"github.com/igoryan-dao/ricochet-tutor/internal/format"
	"github.com/igoryan-dao/ricochet-tutor/internal/protocol"
	"github.com/igoryan-dao/ricochet-tutor/internal/tokenizer"
	"github.com/igoryan-dao/ricochet-tutor/internal/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLines feeds fixed input lines, then reports EOF like a closed stdin.
type scriptedLines struct {
	lines   []string
	history []string
}

func (s *scriptedLines) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedLines) AppendHistory(item string) {
	s.history = append(s.history, item)
}

type chatProvider struct {
	calls   int
	noUsage bool
	onChat  func()
}

func (p *chatProvider) Name() string { return "chat" }

func (p *chatProvider) Chat(ctx context.Context, req *agent.ChatRequest) (*agent.ChatResponse, error) {
	p.calls++
	if p.onChat != nil {
		p.onChat()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.noUsage {
		return &agent.ChatResponse{Content: "Loops repeat."}, nil
	}
	return &agent.ChatResponse{
		Content: "Concept Explanation: loops repeat.",
		Usage:   &agent.Usage{CompletionTokens: 4, TotalTokens: 14},
	}, nil
}

func runScripted(t *testing.T, ctx context.Context, p agent.Provider, lines ...string) (string, *scriptedLines) {
	t.Helper()
	tt := tutor.New(p, tutor.WithCounter(tokenizer.CounterFunc(func(m []protocol.Message) int { return 10 })))
	in := &scriptedLines{lines: lines}
	var out bytes.Buffer
	require.NoError(t, runChat(ctx, tt, in, format.NewRenderer(&out, false), &out))
	return out.String(), in
}

func TestRunChat_TurnsUntilQuit(t *testing.T) {
	p := &chatProvider{}
	out, in := runScripted(t, context.Background(), p, "explain loops", "explain lists", "quit", "explain dicts")

	assert.Equal(t, 2, p.calls)
	assert.Equal(t, 2, strings.Count(out, "Concept Explanation: loops repeat."))
	assert.Contains(t, out, "Mode: explain")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
	assert.Equal(t, []string{"explain loops", "explain lists", "quit"}, in.history)
}

func TestRunChat_CancelledContextStopsBeforeAnyTurn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &chatProvider{}
	out, _ := runScripted(t, ctx, p, "explain loops", "explain lists", "explain dicts", "quit")

	assert.Zero(t, p.calls)
	assert.NotContains(t, out, tutor.ErrorPrefix)
	assert.Contains(t, out, "Goodbye!")
}

func TestRunChat_InterruptDuringTurnEndsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &chatProvider{onChat: cancel}
	out, _ := runScripted(t, ctx, p, "explain loops", "explain lists", "explain dicts", "quit")

	assert.Equal(t, 1, p.calls)
	assert.NotContains(t, out, "context canceled")
	assert.Contains(t, out, "Goodbye!")
}

func TestRunChat_EOFSaysGoodbye(t *testing.T) {
	out, _ := runScripted(t, context.Background(), &chatProvider{})
	assert.Contains(t, out, "Python Tutor (CLI)")
	assert.Contains(t, out, "Goodbye!")
}

func TestRunChat_ResetAndIncompleteResponseHint(t *testing.T) {
	p := &chatProvider{noUsage: true}
	out, _ := runScripted(t, context.Background(), p, "/reset", "explain loops", "exit")

	assert.Contains(t, out, "Tutor memory cleared! Start a new conversation.")
	assert.Contains(t, out, "[Tutor Error: response has no usage data]")
	assert.Contains(t, out, "Incomplete response")
	assert.Equal(t, 1, p.calls)
}
