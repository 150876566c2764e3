// Package tokenizer counts conversation tokens and turns token counts into cost estimates.
package tokenizer

import (
	"log"
	"strings"
	"sync"

	"github.com/igoryan-dao/ricochet-tutor/internal/protocol"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// Encoding is the BPE encoding used for all counts.
const Encoding = "cl100k_base"

// Counter counts the tokens of an ordered message sequence.
type Counter interface {
	CountTokens(messages []protocol.Message) int
}

// CounterFunc adapts a plain function to Counter.
type CounterFunc func(messages []protocol.Message) int

func (f CounterFunc) CountTokens(messages []protocol.Message) int {
	return f(messages)
}

var (
	tkm     *tiktoken.Tiktoken
	tkmOnce sync.Once
)

func init() {
	// BPE ranks are embedded in the binary; counting never touches the network.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

func getTokenizer() *tiktoken.Tiktoken {
	tkmOnce.Do(func() {
		var err error
		tkm, err = tiktoken.GetEncoding(Encoding)
		if err != nil {
			log.Panicf("[Tokenizer] failed to load embedded %s encoding: %v", Encoding, err)
		}
	})
	return tkm
}

// EstimateTokens returns the cl100k_base token count of text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}

// Flatten joins role and content of every message with no separators.
func Flatten(messages []protocol.Message) string {
	var sb strings.Builder
	for _, msg := range messages {
		sb.WriteString(string(msg.Role))
		sb.WriteString(msg.Content)
	}
	return sb.String()
}

// CountTokens counts tokens for the whole ordered sequence.
// The count is for accounting only; nothing is truncated.
func CountTokens(messages []protocol.Message) int {
	return EstimateTokens(Flatten(messages))
}

// Default returns the tiktoken-backed counter.
func Default() Counter {
	return CounterFunc(CountTokens)
}
