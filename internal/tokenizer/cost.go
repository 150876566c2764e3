package tokenizer

// Pricing holds per-1000-token rates. Zero rates yield zero cost.
type Pricing struct {
	PromptPer1K     float64 `yaml:"prompt_per_1k" json:"prompt_per_1k"`
	CompletionPer1K float64 `yaml:"completion_per_1k" json:"completion_per_1k"`
}

// EstimateCost converts token counts into an estimated monetary cost.
func EstimateCost(promptTokens, completionTokens int, promptPer1K, completionPer1K float64) float64 {
	return float64(promptTokens)*promptPer1K/1000 + float64(completionTokens)*completionPer1K/1000
}

// Estimate applies the pricing to a single turn.
func (p Pricing) Estimate(promptTokens, completionTokens int) float64 {
	return EstimateCost(promptTokens, completionTokens, p.PromptPer1K, p.CompletionPer1K)
}

// IsZero reports whether both rates are unset.
func (p Pricing) IsZero() bool {
	return p.PromptPer1K == 0 && p.CompletionPer1K == 0
}
