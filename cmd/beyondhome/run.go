package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/derichenko12/BeyondHomeV3/internal/config"
	"github.com/derichenko12/BeyondHomeV3/internal/server"
	"github.com/derichenko12/BeyondHomeV3/internal/tui"
	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
	"github.com/derichenko12/BeyondHomeV3/pkg/recommend"
	"github.com/derichenko12/BeyondHomeV3/pkg/validation"
)

// env is everything a command needs after configuration is resolved.
type env struct {
	cfg    config.Config
	cat    *catalog.Catalog
	logger *slog.Logger
	report *validation.Report
}

// loadEnv resolves configuration, installs the logger and loads the
// catalog with its validation report.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		logger.Debug("catalog loaded", "path", cfg.CatalogPath, "regions", len(cat.Regions))
	}
	return &env{cfg: cfg, cat: cat, logger: logger, report: validation.ValidateCatalog(cat)}, nil
}

// loadValidEnv is loadEnv for commands that cannot run on a broken catalog.
func loadValidEnv() (*env, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, err
	}
	if !e.report.Valid {
		printValidationReport(e.report)
		return nil, errors.New("catalog validation failed")
	}
	return e, nil
}

// silence discards all logging. Log lines written to stderr while the
// alternate screen is active corrupt the display.
func (e *env) silence() {
	e.logger = slog.New(slog.DiscardHandler)
	slog.SetDefault(e.logger)
}

// newJourney builds a journey for the named pipeline, falling back to the
// configured one when name is empty.
func (e *env) newJourney(name string) (*journey.Journey, error) {
	if name == "" {
		name = e.cfg.Pipeline
	}
	p, err := journey.ParsePipeline(name)
	if err != nil {
		return nil, err
	}
	return journey.New(e.cat,
		journey.WithPipeline(p),
		journey.WithLogger(e.logger),
		journey.WithDefaultMode(e.cfg.DefaultMode),
	), nil
}

func runRegions(tags []string) error {
	e, err := loadValidEnv()
	if err != nil {
		return err
	}
	printRegions(e.cat, recommend.Rank(e.cat.Regions, tags), tags)
	return nil
}

func runValidate(planPath string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	report := e.report

	if planPath != "" && report.Valid {
		planReport, err := runPlan(e, planPath)
		if planReport != nil {
			report.Merge(planReport)
		}
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelJourney,
				Message: err.Error(),
				Path:    planPath,
			})
		}
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runPlan(e *env, planPath string) (*validation.Report, error) {
	_, report, err := planJourney(e, planPath)
	return report, err
}

// planJourney loads a plan file and drives a fresh journey through it.
// The plan's pipeline wins over the configured one.
func planJourney(e *env, planPath string) (*journey.Journey, *validation.Report, error) {
	plan, err := journey.LoadPlan(afero.NewOsFs(), planPath)
	if err != nil {
		return nil, nil, err
	}
	j, err := e.newJourney(plan.Pipeline)
	if err != nil {
		return nil, nil, err
	}
	report, err := journey.Run(j, plan)
	return j, report, err
}

func runEstimate(planPath, format string, export bool) error {
	f, err := receipt.ParseFormat(format)
	if err != nil {
		return err
	}
	e, err := loadValidEnv()
	if err != nil {
		return err
	}

	j, report, err := planJourney(e, planPath)
	if err != nil {
		if report != nil {
			printValidationReport(report)
		}
		return err
	}
	for _, w := range report.Warnings {
		e.logger.Warn(w.Message, "path", w.Path)
	}
	if !report.Valid {
		printValidationReport(report)
		return errors.New("plan validation failed")
	}

	b := receipt.Build(receipt.FromJourney(j))
	if err := receipt.Write(os.Stdout, b, f); err != nil {
		return fmt.Errorf("writing receipt: %w", err)
	}

	if export {
		path, err := receipt.Export(afero.NewOsFs(), e.cfg.ExportDir, b, f)
		if err != nil {
			return err
		}
		e.logger.Info("receipt saved", "path", path)
	}
	return nil
}

func runServe() error {
	e, err := loadValidEnv()
	if err != nil {
		return err
	}
	p, err := journey.ParsePipeline(e.cfg.Pipeline)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Port:         e.cfg.Server.Port,
		Catalog:      e.cat,
		CatalogPath:  e.cfg.CatalogPath,
		WatchCatalog: e.cfg.Server.WatchCatalog,
		Pipeline:     p,
		DefaultMode:  e.cfg.DefaultMode,
		Logger:       e.logger,
	})
	return srv.Start(ctx)
}

func runTUI() error {
	e, err := loadValidEnv()
	if err != nil {
		return err
	}
	e.silence()
	j, err := e.newJourney("")
	if err != nil {
		return err
	}
	return tui.Run(j, tui.Options{Fs: afero.NewOsFs(), ExportDir: e.cfg.ExportDir})
}
