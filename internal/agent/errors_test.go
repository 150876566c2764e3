package agent

import (
	"errors"
	"fmt"
	"testing"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Nil",
			err:      nil,
			expected: "",
		},
		{
			name:     "Authentication 401",
			err:      errors.New("API error 401: Unauthorized"),
			expected: "⚠️ Authentication error: Please check OPENAI_API_KEY in your environment or .env file.",
		},
		{
			name:     "Rate Limit 429",
			err:      errors.New("API error 429: Too many requests"),
			expected: "⏳ Rate limit exceeded: Please wait a moment before asking again.",
		},
		{
			name:     "Timeout",
			err:      errors.New("context deadline exceeded"),
			expected: "🌐 Connection timeout: Check your internet connection or the AI provider's status page.",
		},
		{
			name:     "Connection Refused",
			err:      errors.New("dial tcp: lookup api.openai.com: no such host"),
			expected: "🌐 Network error: Cannot reach the AI server. Check your internet or proxy settings.",
		},
		{
			name:     "Missing Usage",
			err:      fmt.Errorf("parse: %w", ErrMissingUsage),
			expected: "🛠 Incomplete response: The model answered without the expected data. Please try again.",
		},
		{
			name:     "Missing Usage From Reply Text",
			err:      errors.New(ErrMissingUsage.Error()),
			expected: "🛠 Incomplete response: The model answered without the expected data. Please try again.",
		},
		{
			name:     "No Choices From Reply Text",
			err:      errors.New("response has no choices"),
			expected: "🛠 Incomplete response: The model answered without the expected data. Please try again.",
		},
		{
			name:     "Unknown",
			err:      errors.New("boom"),
			expected: "❌ An error occurred: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			if got != tt.expected {
				t.Errorf("TranslateError() = %q, want %q", got, tt.expected)
			}
		})
	}
}
