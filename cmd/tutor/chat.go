package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/igoryan-dao/ricochet-tutor/internal/agent"
	"github.com/igoryan-dao/ricochet-tutor/internal/format"
	"github.com/igoryan-dao/ricochet-tutor/internal/session"
	"github.com/igoryan-dao/ricochet-tutor/internal/tutor"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, _, err := buildTutor()
		if err != nil {
			return err
		}
		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)

		return runChat(cmd.Context(), t, line, format.NewStdoutRenderer(), os.Stdout)
	},
}

// lineSource is the prompt side of the REPL; *liner.State satisfies it.
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// isQuit reports whether the student asked to leave
func isQuit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit":
		return true
	}
	return false
}

func runChat(ctx context.Context, t *tutor.Tutor, in lineSource, r *format.Renderer, out io.Writer) error {
	fmt.Fprintln(out, "Python Tutor (CLI)")
	fmt.Fprintln(out, "Type 'quit' to exit, '/reset' to start over.")
	fmt.Fprintln(out)

	var sess *session.Session // created by the first turn
	for {
		// An interrupt delivered mid-turn cancels ctx for good.
		if ctx.Err() != nil {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		input, err := in.Prompt(r.Prompt())
		if err != nil {
			// Ctrl+C, Ctrl+D or a closed stdin
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if strings.TrimSpace(input) != "" {
			in.AppendHistory(input)
		}

		if isQuit(input) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if strings.TrimSpace(input) == "/reset" {
			sess = nil
			fmt.Fprintln(out, "Tutor memory cleared! Start a new conversation.")
			continue
		}

		var (
			reply string
			meta  tutor.Metadata
		)
		reply, meta, sess = t.Ask(ctx, input, sess)
		if ctx.Err() != nil {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		r.PrintReply(reply, meta)

		if detail, failed := tutor.ErrorDetail(reply); failed {
			r.PrintHint(agent.TranslateError(errors.New(detail)))
		}
	}
}
