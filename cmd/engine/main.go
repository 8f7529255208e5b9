// Package main provides the entry point for the confidence engine daemon.
package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/datasource"
	"github.com/yourusername/bet-insight/internal/health"
	"github.com/yourusername/bet-insight/internal/logger"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/repository"
	"github.com/yourusername/bet-insight/internal/resultsfeed"
	"github.com/yourusername/bet-insight/internal/scheduler"
	"github.com/yourusername/bet-insight/internal/service"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			stdlog.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			stdlog.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Confidence engine starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		appLog.WithError(err).Fatal("Failed to ensure database schema")
	}
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	metrics.InitRegistry()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
		Logger:      appLog,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	profileCache := service.NewProfileCache(cfg.ProfileCacheTTL())
	reconciliationSvc := service.NewReconciliationService(
		repos, profileCache, logger.NewReconciliationLogger(appLog),
	)

	httpLogger := stdlog.New(os.Stdout, "standings-http: ", stdlog.LstdFlags)
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.StandingsTimeout()
	httpCfg.MaxRetries = cfg.Standings.RetryAttempts
	httpCfg.RateLimit = cfg.Standings.RequestsPerSecond
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, httpLogger)
	defer httpClient.Close()

	standingsClient := datasource.NewStandingsClient(
		httpClient,
		cfg.Standings.BaseURL,
		cfg.Standings.APIKey,
		cfg.Features.StandingsSyncEnabled,
		httpLogger,
	)
	standingsSvc := service.NewStandingsService(standingsClient, repos.Record, cfg.Standings.Leagues, appLog)

	sched := scheduler.NewScheduler(standingsSvc, reconciliationSvc, appLog)
	jobs := 0
	if cfg.Features.StandingsSyncEnabled {
		if err := sched.ScheduleStandingsSync(cfg.Scheduler.StandingsSync); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule standings sync")
		}
		jobs++
	}
	if cfg.Features.ReconciliationEnabled {
		if err := sched.ScheduleReconciliationSweep(cfg.Scheduler.ReconciliationSweep); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule reconciliation sweep")
		}
		jobs++
	}
	if jobs > 0 {
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		defer sched.Stop()
	}

	if cfg.Features.ReconciliationEnabled {
		feedLogger := stdlog.New(os.Stdout, "results-feed: ", stdlog.LstdFlags)
		feed := resultsfeed.NewFeedClient(cfg.ResultsFeed, reconciliationSvc.HandleSettledResult, feedLogger)
		go func() {
			if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
				appLog.WithError(err).Error("Results feed stopped")
			}
		}()
	}

	healthServer.SetReady(true)
	appLog.WithFields(logrus.Fields{
		"standings_sync": cfg.Features.StandingsSyncEnabled,
		"reconciliation": cfg.Features.ReconciliationEnabled,
		"next_job":       sched.NextRun().Format(time.RFC3339),
	}).Info("Confidence engine running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	appLog.WithField("signal", sig).Info("Shutdown signal received")
	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	time.Sleep(time.Second)
	appLog.Info("Confidence engine shut down")
}
