// Package main is the checkin command: the interview server plus a few
// offline commands over the stored interviews.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/checkin/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Team check-in interviews and leadership summaries",
	Long: "checkin runs short staged interviews with team members about their projects, " +
		"progress, challenges and plans, and aggregates completed interviews into a leadership summary.",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cfg = config.Load()
		setupLogging(cfg.LogLevel)
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
