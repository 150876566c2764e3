package main

import (
	"fmt"
	"strings"

	"github.com/igoryan-dao/ricochet-tutor/internal/config"
	"github.com/igoryan-dao/ricochet-tutor/internal/modes"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Show the detected mode and instruction without calling the model",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		classifier, err := modes.LoadClassifier(cfg.RulesFile)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}

		text := strings.Join(args, " ")
		mode := classifier.Classify(text)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mode: %s\n", mode)
		fmt.Fprintf(out, "Rules checked: %d\n", len(classifier.Rules()))
		if headers := modes.RequiredHeaders(mode); len(headers) > 0 {
			fmt.Fprintf(out, "Required sections: %s\n", strings.Join(headers, " | "))
		}
		fmt.Fprintln(out, strings.Repeat("─", 50))
		fmt.Fprintln(out, modes.BuildPrompt(text, mode))
		return nil
	},
}
