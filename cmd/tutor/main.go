package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/igoryan-dao/ricochet-tutor/internal/agent"
	"github.com/igoryan-dao/ricochet-tutor/internal/config"
	"github.com/igoryan-dao/ricochet-tutor/internal/modes"
	"github.com/igoryan-dao/ricochet-tutor/internal/tokenizer"
	"github.com/igoryan-dao/ricochet-tutor/internal/tutor"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "AI Python tutor for absolute beginners",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetPrefix("[tutor] ")
		if verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a tutor.yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every turn to stderr")
	rootCmd.AddCommand(chatCmd, serveCmd, classifyCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildTutor wires configuration, provider and classifier into a Tutor
func buildTutor() (*tutor.Tutor, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasAPIKey() {
		log.Printf("Warning: no API key configured; set OPENAI_API_KEY")
	}

	provider, err := agent.NewProvider(agent.ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}

	classifier, err := modes.LoadClassifier(cfg.RulesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load rules: %w", err)
	}

	pricing := tokenizer.Pricing{
		PromptPer1K:     cfg.PricePer1KPrompt,
		CompletionPer1K: cfg.PricePer1KCompletion,
	}
	if pricing.IsZero() {
		log.Printf("Warning: no pricing configured; estimated cost will be $0")
	}

	t := tutor.New(provider,
		tutor.WithModel(cfg.Model),
		tutor.WithClassifier(classifier),
		tutor.WithRollbackOnFailure(cfg.RollbackOnFailure),
		tutor.WithPricing(pricing),
	)
	return t, cfg, nil
}
