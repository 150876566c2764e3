package modes

import "strings"

// Template turns raw student text into the instruction sent as the user message.
type Template func(text string) string

var requiredHeaders = map[Mode][]string{
	Explain:      {"Concept Explanation:", "Code Example:", "Practice Exercise:", "Feedback:"},
	Exercise:     {"Exercise:", "Difficulty: Beginner", "Hint:", "Solution:", "Challenge Variants:"},
	Debug:        {"Error Explanation:", "Corrected Code:", "Why This Fix Works:", "Practice Exercise:"},
	CodeFeedback: {"What the Code Does:", "Corrections / Improvements:", "Improved Version:", "Explanation:"},
}

// RequiredHeaders returns the section headers the model must fill in for mode.
// Feedback mode is free-form and has none.
func RequiredHeaders(mode Mode) []string {
	return append([]string(nil), requiredHeaders[mode]...)
}

func sectioned(lead, instruction string, mode Mode) Template {
	return func(text string) string {
		var sb strings.Builder
		sb.WriteString(lead)
		sb.WriteString(text)
		sb.WriteString("\n\n")
		sb.WriteString(instruction)
		sb.WriteString("\n")
		for _, h := range requiredHeaders[mode] {
			sb.WriteString(h)
			sb.WriteString("\n")
		}
		return sb.String()
	}
}

func encouragement(text string) string {
	return "Student message: " + text + "\n\nGive encouragement and helpful next steps."
}

// DefaultTemplates returns one template per built-in mode.
func DefaultTemplates() map[Mode]Template {
	return map[Mode]Template{
		Explain:      sectioned("Student question: ", "Provide a full explanation with ALL required sections:\n", Explain),
		Exercise:     sectioned("Student request: ", "Create a beginner-friendly Python exercise. Use this structure:", Exercise),
		Debug:        sectioned("Student code or error: ", "Analyze the code and respond using:", Debug),
		CodeFeedback: sectioned("Student submitted code:\n", "Provide analysis using:", CodeFeedback),
		Feedback:     encouragement,
	}
}

// Templater dispatches from Mode to Template.
type Templater struct {
	templates map[Mode]Template
}

// NewTemplater builds a templater from the defaults, with overrides replacing individual modes.
func NewTemplater(overrides map[Mode]Template) *Templater {
	templates := DefaultTemplates()
	for mode, tmpl := range overrides {
		if tmpl != nil {
			templates[mode] = tmpl
		}
	}
	return &Templater{templates: templates}
}

// Build renders the instruction for mode. Unknown modes use the feedback template.
func (t *Templater) Build(text string, mode Mode) string {
	tmpl, ok := t.templates[mode]
	if !ok {
		tmpl = t.templates[Feedback]
	}
	return tmpl(text)
}

var defaultTemplater = NewTemplater(nil)

// BuildPrompt renders the built-in template for mode.
func BuildPrompt(text string, mode Mode) string {
	return defaultTemplater.Build(text, mode)
}
