package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/billfold/internal/config"
	"github.com/Veraticus/billfold/internal/delivery"
	"github.com/Veraticus/billfold/internal/fetch"
	"github.com/Veraticus/billfold/internal/model"
	"github.com/Veraticus/billfold/internal/pdf"
	"github.com/Veraticus/billfold/internal/pipeline"
	"github.com/Veraticus/billfold/internal/server"
	"github.com/Veraticus/billfold/internal/stripe"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	accounts := make([]pipeline.AccountSource, 0, len(cfg.Accounts))
	for _, account := range cfg.Accounts {
		secret, err := account.Secret()
		if err != nil {
			return err
		}
		client, err := stripe.NewClient(stripe.Config{AccountKey: account.Key, Secret: secret})
		if err != nil {
			return fmt.Errorf("failed to create client for account %s: %w", account.Key, err)
		}
		accounts = append(accounts, pipeline.AccountSource{Key: account.Key, Lister: client})
	}

	fetcher := fetch.NewFetcher(fetch.NewLimiter(cfg.FetchRateLimit))
	orchestrator := pipeline.NewOrchestrator(accounts, fetcher, pdf.NewConsolidator(), cfg.ScratchRoot)

	uploader, err := delivery.NewS3Uploader(cfg.S3.Bucket, cfg.S3.Region)
	if err != nil {
		return err
	}
	mailer := delivery.NewSMTPMailer(cfg.SMTP, cfg.AdminEmail)
	stage := delivery.NewStage(uploader, mailer)

	handler := server.NewHandler(&app{orchestrator: orchestrator, stage: stage})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", cfg.ListenAddr, "accounts", len(accounts))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// app glues the pipeline and the delivery stage into the single
// operation the HTTP handler exposes.
type app struct {
	orchestrator *pipeline.Orchestrator
	stage        *delivery.Stage
}

func (a *app) Consolidate(ctx context.Context, period model.Period, email string) error {
	files, err := a.orchestrator.Run(ctx, period)
	if err != nil {
		return err
	}
	return a.stage.Deliver(ctx, files, email)
}
