package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/examtrainer/internal/app"
	"github.com/abhisek/examtrainer/internal/config"
	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/prompts"
	"github.com/abhisek/examtrainer/internal/store"
	"github.com/abhisek/examtrainer/internal/telemetry"
	"github.com/spf13/cobra"
)

// deps are the long-lived objects shared by the TUI and the one-shot
// commands.
type deps struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	client  *llm.Client
	trainer *exam.Trainer
	closers []func() error
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.logger.Warn("shutdown", "error", err)
		}
	}
}

// buildDeps loads configuration and wires the generation stack. A missing
// credential is returned as an error before anything is opened.
func buildDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load(cmd, version)
	if err != nil {
		return nil, err
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	logger, closeLog, err := config.SetupLogging(cfg)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	if err := telemetry.Init(ctx, cfg.Telemetry); err != nil {
		d.Close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	d.closers = append(d.closers, func() error { return telemetry.Shutdown(context.Background()) })

	dbPath, err := eventsDBPath(cfg.EventsDB)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve events database: %w", err)
	}
	if dbPath != "" {
		d.store, err = store.Open(dbPath)
	} else {
		d.store, err = store.OpenMemory("events")
	}
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, d.store.Close)

	eventRepo := d.store.EventRepo()
	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo, logger)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("create provider: %w", err)
	}
	d.client = llm.NewClient(provider)
	d.trainer = exam.NewTrainer(d.client, prompts.New(cfg.Prompts),
		exam.WithEventRepo(eventRepo),
		exam.WithLogger(logger),
	)

	logger.Info("examtrainer starting",
		"version", version,
		"provider", cfg.LLM.Provider,
		"model", d.client.ModelID(),
		"events_db", dbPath,
	)
	return d, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(exam.NewSession(nil), d.trainer)
}
