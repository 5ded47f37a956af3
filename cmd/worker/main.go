package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"vnnews/internal/domain/entity"
	"vnnews/internal/handler/http/respond"
	pgRepo "vnnews/internal/infra/adapter/persistence/postgres"
	"vnnews/internal/infra/db"
	"vnnews/internal/infra/mailer"
	"vnnews/internal/observability/logging"
	"vnnews/internal/observability/metrics"
	"vnnews/internal/repository"
	newsUC "vnnews/internal/usecase/newsletter"
	"vnnews/pkg/config"
)

// sites lists every edition the scheduled jobs iterate over.
var sites = []entity.Site{entity.SiteVN, entity.SiteEN}

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	artRepo := pgRepo.NewArticleRepo(database)
	tokenRepo := pgRepo.NewTokenRepo(database)
	subRepo := pgRepo.NewSubscriptionRepo(database)
	settingsRepo := pgRepo.NewSettingsRepo(database)

	resolver := &mailer.Resolver{Settings: settingsRepo}
	smtp := mailer.NewSMTP(resolver, cfg.Server.BaseURL)
	newsSvc := &newsUC.Service{Subs: subRepo, Articles: artRepo, Mailer: smtp}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startMetricsServer(ctx, logger, cfg.Worker.Addr, resolver)

	c, err := startScheduler(logger, cfg.Worker, newsSvc, tokenRepo)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	go refreshStats(ctx, logger, cfg.Worker.StatsInterval, artRepo, subRepo)

	logger.Info("worker started",
		slog.String("digest_schedule", cfg.Worker.DigestSchedule),
		slog.String("purge_schedule", cfg.Worker.PurgeSchedule),
		slog.String("timezone", cfg.Worker.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	cancel()
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.Worker.JobTimeout):
		logger.Warn("running jobs did not finish before shutdown deadline")
	}
	logger.Info("worker stopped")
}

// waitForMigrations blocks until the api binary has applied the schema.
// Both containers start together; the worker just has to lose the race.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM articles LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// startScheduler registers the cron jobs and starts the scheduler.
func startScheduler(logger *slog.Logger, cfg config.WorkerConfig, newsSvc *newsUC.Service, tokens repository.TokenRepository) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.PurgeSchedule, func() {
		runTokenPurge(logger, cfg.JobTimeout, tokens)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(cfg.DigestSchedule, func() {
		runDigest(logger, cfg.JobTimeout, newsSvc)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// runTokenPurge removes expired password reset tokens.
func runTokenPurge(logger *slog.Logger, timeout time.Duration, tokens repository.TokenRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := tokens.PurgeExpired(ctx, time.Now())
	if err != nil {
		logger.Error("token purge failed", slog.String("error", respond.SanitizeError(err)))
		return
	}
	metrics.ResetTokensPurgedTotal.Add(float64(n))
	if n > 0 {
		logger.Info("expired reset tokens purged", slog.Int64("purged", n))
	}
}

// runDigest sends the newsletter digest for every edition.
func runDigest(logger *slog.Logger, timeout time.Duration, svc *newsUC.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, site := range sites {
		start := time.Now()
		sent, failed, err := svc.SendDigest(ctx, site)
		if err != nil {
			logger.Error("digest failed",
				slog.String("site", string(site)),
				slog.String("error", respond.SanitizeError(err)))
			continue
		}
		logger.Info("digest sent",
			slog.String("site", string(site)),
			slog.Int("sent", sent),
			slog.Int("failed", failed),
			slog.Duration("duration", time.Since(start)))
	}
}

// refreshStats periodically republishes the business gauges so the
// scrape reflects the database, not just in-process counters.
func refreshStats(ctx context.Context, logger *slog.Logger, interval time.Duration, articles repository.ArticleRepository, subs repository.SubscriptionRepository) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, site := range sites {
			counts, err := articles.CountByStatus(ctx, site)
			if err != nil {
				logger.Warn("article stats refresh failed",
					slog.String("site", string(site)),
					slog.Any("error", err))
				continue
			}
			byStatus := make(map[string]int64, len(counts))
			for status, n := range counts {
				byStatus[string(status)] = n
			}
			metrics.UpdateArticlesByStatus(string(site), byStatus)
		}

		active, err := subs.ListActive(ctx)
		if err != nil {
			logger.Warn("subscription stats refresh failed", slog.Any("error", err))
			continue
		}
		metrics.SubscriptionsActive.Set(float64(len(active)))
	}
}
