package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/checkin/internal/agent"
	"github.com/MikeSquared-Agency/checkin/internal/insight"
	"github.com/MikeSquared-Agency/checkin/internal/processor"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the completed interviews",
	Long: "Runs the summary agent over every completed interview in the store and prints the report as JSON. " +
		"With --save the report replaces the stored summary, which requires the configured minimum of completed interviews.",
	RunE: runSummarize,
}

var summarizeSave bool

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeSave, "save", false, "Store the report as the latest summary")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeGen()
	proc := processor.New(st,
		agent.NewConductor(gen, cfg.AgentTimeout, slog.Default()),
		agent.NewAggregator(gen, cfg.AgentTimeout, slog.Default()),
		processor.Options{MinCompleted: cfg.MinCompletedForSummary},
		slog.Default(),
	)

	var out any
	if summarizeSave {
		res, err := proc.GenerateSummary(ctx)
		if err != nil {
			return err
		}
		out = res.Report
	} else {
		recs, err := st.Completed(ctx)
		if err != nil {
			return err
		}
		transcripts := make([]insight.Transcript, 0, len(recs))
		for _, r := range recs {
			transcripts = append(transcripts, insight.Transcript{Name: r.SubjectName, Text: r.Transcript})
		}
		sum, err := proc.Analyze(ctx, transcripts)
		if err != nil {
			return fmt.Errorf("analyze %d interviews: %w", len(transcripts), err)
		}
		out = sum.Report
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
