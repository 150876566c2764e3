package agent

import (
	"errors"
	"fmt"
	"strings"
)

// TranslateError converts raw provider errors into a short hint for the student.
func TranslateError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	// Front ends only see the reply text, so match the sentinel messages too.
	if errors.Is(err, ErrMissingUsage) || errors.Is(err, ErrNoChoices) ||
		strings.Contains(errMsg, ErrMissingUsage.Error()) || strings.Contains(errMsg, ErrNoChoices.Error()) {
		return "🛠 Incomplete response: The model answered without the expected data. Please try again."
	}

	if strings.Contains(errMsg, "401") || strings.Contains(errMsg, "Unauthorized") || strings.Contains(errMsg, "invalid_api_key") {
		return "⚠️ Authentication error: Please check OPENAI_API_KEY in your environment or .env file."
	}

	if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "Rate limit") || strings.Contains(errMsg, "Too Many Requests") {
		return "⏳ Rate limit exceeded: Please wait a moment before asking again."
	}

	if strings.Contains(errMsg, "model_not_found") || strings.Contains(errMsg, "404") && strings.Contains(errMsg, "model") {
		return "🔍 Model not found: Check the MODEL setting or ensure it's available for your API key."
	}

	if strings.Contains(errMsg, "deadline exceeded") || strings.Contains(errMsg, "timeout") {
		return "🌐 Connection timeout: Check your internet connection or the AI provider's status page."
	}
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host") {
		return "🌐 Network error: Cannot reach the AI server. Check your internet or proxy settings."
	}

	if strings.Contains(errMsg, "insufficient_quota") || strings.Contains(errMsg, "credit") {
		return "💰 Insufficient quota: Please check your AI provider account credits."
	}

	if strings.Contains(errMsg, "API error 500") || strings.Contains(errMsg, "Internal Server Error") {
		return "🛠 Internal AI Server Error: The provider is temporarily unavailable. Please try again later."
	}

	return fmt.Sprintf("❌ An error occurred: %s", errMsg)
}
