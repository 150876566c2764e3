package modes

import "fmt"

// Mode is the label assigned to a student turn. It selects the instruction template.
type Mode string

const (
	Explain      Mode = "explain"
	Exercise     Mode = "exercise"
	Debug        Mode = "debug"
	CodeFeedback Mode = "code_feedback"
	Feedback     Mode = "feedback"
)

// All lists every mode in classification priority order.
var All = []Mode{Explain, Exercise, Debug, CodeFeedback, Feedback}

func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is one of the built-in modes
func (m Mode) Valid() bool {
	for _, mode := range All {
		if mode == m {
			return true
		}
	}
	return false
}

// ParseMode converts a slug into a Mode
func ParseMode(slug string) (Mode, error) {
	m := Mode(slug)
	if !m.Valid() {
		return "", fmt.Errorf("mode %s not found", slug)
	}
	return m, nil
}
