package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Mode
	}{
		{"empty", "", Feedback},
		{"whitespace", "   \n\t", Feedback},
		{"explain keyword", "Explain Python loops", Explain},
		{"what is", "What is a while loop?", Explain},
		{"what's", "what's a dictionary", Explain},
		{"show me", "SHOW ME a list comprehension", Explain},
		{"example", "give me an example of slicing", Explain},
		{"exercise", "Give me an exercise on lists", Exercise},
		{"practice", "I want to practice strings", Exercise},
		{"problem", "a problem about loops please", Exercise},
		{"error", "Why is my code giving an error?", Debug},
		{"traceback", "Traceback (most recent call last):", Debug},
		{"doesn't work", "my loop doesn't work", Debug},
		{"bug", "there is a bug here", Debug},
		{"def", "def add(a, b):\n    a + b", CodeFeedback},
		{"return", "return x", CodeFeedback},
		{"print call", "print(\"hi\")", CodeFeedback},
		{"multiline assignment", "x = 1\ny = 2", CodeFeedback},
		{"single line assignment", "x = 1", Feedback},
		{"thanks", "thanks, that helped!", Feedback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassify_RuleOrder(t *testing.T) {
	// exercise precedes debug
	assert.Equal(t, Exercise, Classify("practice exercise about error handling"))
	// explain precedes everything
	assert.Equal(t, Explain, Classify("explain this error:\ndef f():\n  return 1"))
	// debug precedes code feedback
	assert.Equal(t, Debug, Classify("def f():\n    retrun 1\nSyntaxError"))
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()
	in := "Can you EXPLAIN recursion?"
	first := c.Classify(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(in))
	}
}

func TestClassifier_PrependTakesPriority(t *testing.T) {
	c := NewClassifier()
	c.Prepend(Rule{Mode: Debug, Keywords: []string{"exception"}})
	assert.Equal(t, Debug, c.Classify("explain this exception"))

	c.Append(Rule{Mode: Exercise, Keywords: []string{"quiz"}})
	assert.Equal(t, Exercise, c.Classify("quiz me"))
	assert.Len(t, c.Rules(), 6)
}

func TestClassifier_CustomMatch(t *testing.T) {
	c := NewClassifier(Rule{Mode: CodeFeedback, Match: func(s string) bool { return len(s) > 20 }})
	assert.Equal(t, CodeFeedback, c.Classify("this sentence is clearly long enough"))
	assert.Equal(t, Feedback, c.Classify("short"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("code_feedback")
	assert.NoError(t, err)
	assert.Equal(t, CodeFeedback, m)

	_, err = ParseMode("poetry")
	assert.Error(t, err)
}
