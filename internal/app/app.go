package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"BlogAuditor/internal/audit"
	"BlogAuditor/internal/config"
	"BlogAuditor/internal/infrastructure/llm"
	"BlogAuditor/internal/infrastructure/queue"
	"BlogAuditor/internal/infrastructure/scheduler"
	"BlogAuditor/internal/infrastructure/source"
	"BlogAuditor/internal/infrastructure/storage"
	"BlogAuditor/internal/infrastructure/telegram"
	"BlogAuditor/internal/logging"
	"BlogAuditor/internal/ports"
	"BlogAuditor/internal/remedy"
	"BlogAuditor/internal/usecase"
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *queue.Store
	pipeline  *usecase.Pipeline
	processor *remedy.Processor
	db        *sql.DB
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	auditCfg := auditConfigFrom(cfg.Audit)
	store := queue.NewStore(cfg.Queue.Path)
	articles := source.NewFileSource(cfg.Source.Dir)

	var db *sql.DB
	var history ports.ReportHistory
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		history = storage.NewPostgresHistory(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var rewriter ports.Rewriter
	if cfg.Rewriter.APIKey != "" {
		rewriter = llm.NewRewriteClient(cfg.Rewriter)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:      articles,
		History:     history,
		Queue:       store,
		Notifier:    notifier,
		AuditConfig: auditCfg,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	processor := remedy.NewProcessor(remedy.ProcessorDeps{
		Store:       store,
		Source:      articles,
		Updater:     source.NewFileUpdater(cfg.Source.Dir),
		Registry:    remedy.DefaultRegistry(auditCfg, rewriter),
		AuditConfig: auditCfg,
		MaxAttempts: cfg.Queue.MaxAttempts,
		Logger:      baseLogger.With("component", "remedy"),
	})

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		store:     store,
		pipeline:  pipeline,
		processor: processor,
		db:        db,
	}, nil
}

// Pipeline exposes the audit use case to command handlers.
func (a *Application) Pipeline() *usecase.Pipeline {
	return a.pipeline
}

// Processor exposes the remediation pass to command handlers.
func (a *Application) Processor() *remedy.Processor {
	return a.processor
}

// Queue exposes the queue store to command handlers.
func (a *Application) Queue() *queue.Store {
	return a.store
}

// Run performs a single audit pass followed by one remediation pass.
func (a *Application) Run(ctx context.Context) error {
	summary, err := a.pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("audit pass: %w", err)
	}
	a.logger.Info("audit pass complete",
		"audited", summary.Audited,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"enqueued", summary.Enqueued)

	pass, err := a.processor.Run(ctx)
	if err != nil {
		return fmt.Errorf("remediation pass: %w", err)
	}
	a.logger.Info("remediation pass complete",
		"run", pass.RunCounter,
		"processed", pass.Processed,
		"fixed", pass.Fixed,
		"manual_review", pass.ManualReview)
	return nil
}

// RunDaemon keeps executing remediation passes on the configured interval
// until the context is cancelled.
func (a *Application) RunDaemon(ctx context.Context) error {
	driver := scheduler.NewTickerScheduler(time.Duration(a.cfg.Runner.IntervalMinutes) * time.Minute)

	job := func() {
		if _, err := a.processor.Run(ctx); err != nil {
			a.logger.Error("remediation pass failed", "error", err)
		}
	}

	if err := driver.Start(ctx, job); err != nil {
		return err
	}
	<-ctx.Done()
	return driver.Stop(context.Background())
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func auditConfigFrom(cfg config.AuditConfig) audit.Config {
	out := audit.Config{
		MinWords:        cfg.MinWords,
		MinImages:       cfg.MinImages,
		GenericPhrases:  cfg.GenericPhrases,
		ValuedHosts:     cfg.ValuedHosts,
		SiteDomain:      cfg.SiteDomain,
		TitleStopwords:  cfg.TitleStopwords,
		SourcesKeywords: cfg.SourcesKeywords,
	}

	defaults := audit.DefaultConfig()
	if out.MinWords <= 0 {
		out.MinWords = defaults.MinWords
	}
	if out.MinImages <= 0 {
		out.MinImages = defaults.MinImages
	}
	if len(out.GenericPhrases) == 0 {
		out.GenericPhrases = defaults.GenericPhrases
	}
	if len(out.ValuedHosts) == 0 {
		out.ValuedHosts = defaults.ValuedHosts
	}
	if len(out.TitleStopwords) == 0 {
		out.TitleStopwords = defaults.TitleStopwords
	}
	if len(out.SourcesKeywords) == 0 {
		out.SourcesKeywords = defaults.SourcesKeywords
	}
	return out
}
