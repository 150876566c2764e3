package modes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_HeadersPerMode(t *testing.T) {
	for _, mode := range []Mode{Explain, Exercise, Debug, CodeFeedback} {
		t.Run(string(mode), func(t *testing.T) {
			out := BuildPrompt("loops", mode)
			assert.Contains(t, out, "loops")
			for _, h := range RequiredHeaders(mode) {
				assert.Contains(t, out, h)
			}
		})
	}
}

func TestBuildPrompt_Exercise(t *testing.T) {
	out := BuildPrompt("Give me a list exercise", Exercise)
	for _, h := range []string{"Exercise:", "Difficulty: Beginner", "Hint:", "Solution:", "Challenge Variants:"} {
		assert.Contains(t, out, h)
	}
	assert.True(t, strings.HasPrefix(out, "Student request: Give me a list exercise\n\n"))
}

func TestBuildPrompt_Explain(t *testing.T) {
	want := "Student question: What is a while loop?\n\n" +
		"Provide a full explanation with ALL required sections:\n\n" +
		"Concept Explanation:\n" +
		"Code Example:\n" +
		"Practice Exercise:\n" +
		"Feedback:\n"
	assert.Equal(t, want, BuildPrompt("What is a while loop?", Explain))
}

func TestBuildPrompt_CodeFeedbackEmbedsCodeOnOwnLine(t *testing.T) {
	out := BuildPrompt("x = 1\nprint(x)", CodeFeedback)
	assert.True(t, strings.HasPrefix(out, "Student submitted code:\nx = 1\nprint(x)\n\n"))
}

func TestBuildPrompt_FeedbackIsFreeForm(t *testing.T) {
	out := BuildPrompt("", Feedback)
	assert.Equal(t, "Student message: \n\nGive encouragement and helpful next steps.", out)
	assert.Empty(t, RequiredHeaders(Feedback))
	for _, h := range RequiredHeaders(Explain) {
		assert.NotContains(t, out, h)
	}
}

func TestBuildPrompt_UnknownModeFallsBack(t *testing.T) {
	assert.Equal(t, BuildPrompt("hi", Feedback), BuildPrompt("hi", Mode("poetry")))
}

func TestTemplater_Override(t *testing.T) {
	tp := NewTemplater(map[Mode]Template{Debug: func(s string) string { return "DEBUG " + s }})
	assert.Equal(t, "DEBUG x", tp.Build("x", Debug))
	assert.Equal(t, BuildPrompt("x", Explain), tp.Build("x", Explain))
}

func TestSystemPrompt_FourSections(t *testing.T) {
	for _, h := range RequiredHeaders(Explain) {
		assert.Contains(t, SystemPrompt, h)
	}
}
