package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/checkin/internal/agent"
	"github.com/MikeSquared-Agency/checkin/internal/api"
	"github.com/MikeSquared-Agency/checkin/internal/hermes"
	"github.com/MikeSquared-Agency/checkin/internal/processor"
	"github.com/MikeSquared-Agency/checkin/internal/slack"
	"github.com/MikeSquared-Agency/checkin/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and web UI",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	slog.Info("checkin starting", "port", cfg.Port, "store", cfg.StoreDriver)

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
	if gen == nil {
		slog.Info("no agent provider configured, using scripted replies")
	}

	opts := processor.Options{MinCompleted: cfg.MinCompletedForSummary}
	info := api.StatusInfo{StoreDriver: cfg.StoreDriver, AgentProvider: cfg.AgentProvider}

	// NATS/Hermes (optional)
	var hermesClient *hermes.Client
	if cfg.NatsURL != "" {
		hermesClient, err = hermes.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer hermesClient.Close()
		opts.Publisher = hermesClient
		info.EventsConnected = hermesClient.Connected
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	// Slack poster (optional)
	if cfg.SlackToken != "" && cfg.SlackChannel != "" {
		opts.Notifier = slack.NewPoster(cfg.SlackToken, cfg.SlackChannel, slog.Default())
		slog.Info("slack poster ready", "channel", cfg.SlackChannel)
	}

	proc := processor.New(st,
		agent.NewConductor(gen, cfg.AgentTimeout, slog.Default()),
		agent.NewAggregator(gen, cfg.AgentTimeout, slog.Default()),
		opts,
		slog.Default(),
	)

	if cfg.AutoSummary {
		if hermesClient == nil {
			slog.Warn("AUTO_SUMMARY needs NATS_URL, skipping")
		} else if err := hermesClient.Subscribe(hermes.SubjectInterviewCompleted, proc.HandleInterviewCompleted); err != nil {
			return fmt.Errorf("subscribe to %s: %w", hermes.SubjectInterviewCompleted, err)
		}
	}

	srv := api.NewServer(cfg.Port, st, proc, info, slog.Default())
	ui, err := web.New(st, proc, slog.Default())
	if err != nil {
		return err
	}
	ui.Routes(srv.Router())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	slog.Info("checkin ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	slog.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "error", err)
	}
	slog.Info("checkin stopped")
	return nil
}
