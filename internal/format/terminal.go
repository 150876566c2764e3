package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/igoryan-dao/ricochet-tutor/internal/tutor"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Colors
var (
	BurntOrange = lipgloss.Color("#DA702C")
	MutedGray   = lipgloss.Color("245")
	Red         = lipgloss.Color("196")
	Yellow      = lipgloss.Color("#F1C40F")
)

var (
	TutorStyle   = lipgloss.NewStyle().Foreground(BurntOrange).Bold(true)
	MetaStyle    = lipgloss.NewStyle().Foreground(MutedGray)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red)
	WarningStyle = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	PromptStyle  = lipgloss.NewStyle().Foreground(BurntOrange)
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Renderer prints tutor replies, with Markdown styling when writing to a terminal.
type Renderer struct {
	out   io.Writer
	glam  *glamour.TermRenderer
	color bool
}

// NewRenderer creates a renderer for out. Styling is enabled only when color is true.
func NewRenderer(out io.Writer, color bool) *Renderer {
	r := &Renderer{out: out, color: color}
	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
		return r
	}

	glam, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		r.glam = glam
	}
	return r
}

// NewStdoutRenderer creates a renderer for os.Stdout, styled if it is a terminal.
func NewStdoutRenderer() *Renderer {
	return NewRenderer(os.Stdout, IsTerminal(os.Stdout))
}

// Render formats reply text, falling back to the raw text on error.
func (r *Renderer) Render(reply string) string {
	if r.glam == nil {
		return reply
	}
	out, err := r.glam.Render(reply)
	if err != nil {
		return reply
	}
	return out
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Prompt returns the input prompt label
func (r *Renderer) Prompt() string {
	// liner measures the prompt, so it stays unstyled
	return "You: "
}

// PrintReply writes the reply followed by the metadata block.
func (r *Renderer) PrintReply(reply string, meta tutor.Metadata) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.style(TutorStyle, "Tutor:"))
	if strings.HasPrefix(reply, tutor.ErrorPrefix) {
		fmt.Fprintln(r.out, r.style(ErrorStyle, reply))
	} else {
		fmt.Fprintln(r.out, r.Render(reply))
	}
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, r.style(MetaStyle, Metadata(meta)))
	fmt.Fprintln(r.out)
}

// PrintHint writes a warning line, e.g. a translated error.
func (r *Renderer) PrintHint(hint string) {
	fmt.Fprintln(r.out, r.style(WarningStyle, hint))
}

// Metadata formats the usage block shown under every reply.
// A failed turn has empty metadata and prints only the frame.
func Metadata(meta tutor.Metadata) string {
	var sb strings.Builder
	sb.WriteString("--- Meta Information ---\n")
	if !meta.IsEmpty() {
		sb.WriteString(fmt.Sprintf("Mode: %s\n", meta.Mode))
		sb.WriteString(fmt.Sprintf("Prompt Tokens: %d\n", meta.PromptTokens))
		sb.WriteString(fmt.Sprintf("Completion Tokens: %d\n", meta.CompletionTokens))
		sb.WriteString(fmt.Sprintf("Total Tokens: %d\n", meta.TotalTokens))
		sb.WriteString(fmt.Sprintf("Estimated Cost: $%.6f\n", meta.EstimatedCost))
	}
	sb.WriteString("------------------------\n")
	return sb.String()
}
