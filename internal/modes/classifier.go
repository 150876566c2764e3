package modes

import "strings"

// Rule maps a predicate over normalized text to a mode.
// A rule matches when any keyword is a substring of the text or Match returns true.
type Rule struct {
	Mode     Mode
	Keywords []string
	Match    func(text string) bool
}

func (r Rule) matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return r.Match != nil && r.Match(text)
}

// DefaultRules returns the built-in rules. Order matters: the first match wins.
func DefaultRules() []Rule {
	return []Rule{
		{Mode: Explain, Keywords: []string{"explain", "example", "show me", "what is", "what's"}},
		{Mode: Exercise, Keywords: []string{"exercise", "practice", "problem"}},
		{Mode: Debug, Keywords: []string{"error", "traceback", "doesn't work", "bug"}},
		{Mode: CodeFeedback, Keywords: []string{"def ", "return", "print("}, Match: looksLikeCode},
	}
}

// looksLikeCode catches multi-line snippets with an assignment.
func looksLikeCode(text string) bool {
	return strings.Contains(text, "\n") && strings.Contains(text, "=")
}

// Classifier assigns a Mode to raw student text.
type Classifier struct {
	rules    []Rule
	fallback Mode
}

// NewClassifier builds a classifier over rules. With no rules the defaults are used.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{
		rules:    append([]Rule(nil), rules...),
		fallback: Feedback,
	}
}

// Prepend inserts rules ahead of the existing ones so they take priority.
func (c *Classifier) Prepend(rules ...Rule) {
	c.rules = append(append([]Rule(nil), rules...), c.rules...)
}

// Append adds lower-priority rules, still evaluated before the fallback.
func (c *Classifier) Append(rules ...Rule) {
	c.rules = append(c.rules, rules...)
}

// Rules returns a copy of the rule list in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify lower-cases and trims text, then returns the mode of the first matching rule.
func (c *Classifier) Classify(text string) Mode {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return c.fallback
	}
	for _, rule := range c.rules {
		if rule.matches(s) {
			return rule.Mode
		}
	}
	return c.fallback
}

var defaultClassifier = NewClassifier()

// Classify runs the built-in rules.
func Classify(text string) Mode {
	return defaultClassifier.Classify(text)
}
