package main

import (
	"fmt"
	"time"

	"github.com/dage/karaoke/internal/llm"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Vérifie la connectivité avec l'API LLM configurée",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// .env facultatif pour la clé API
		_ = godotenv.Load()

		client := llm.NewClient(cfg.LLM.Endpoint, cfg.LLM.Model)
		report, err := client.Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("ping LLM : %w", err)
		}

		fmt.Printf("✅ %s a répondu %q en %s (tokens : %d prompt / %d completion)\n",
			report.Model, report.Reply, report.Latency.Round(time.Millisecond),
			report.PromptTokens, report.CompletionTokens)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
