// Package main provides the entry point for the batch analysis CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/logger"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/models"
	"github.com/yourusername/bet-insight/internal/repository"
	"github.com/yourusername/bet-insight/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		inputPath  = flag.String("input", "", "Path to a JSON file of candidate bets")
		outputPath = flag.String("output", "", "Optional path for the JSON results (defaults to stdout)")
		workers    = flag.Int("workers", 0, "Override the configured worker count")
	)
	flag.Parse()

	appLog := newLogger()

	if *inputPath == "" {
		appLog.Fatal("-input is required")
	}

	cfg := loadConfigWithSecrets(*configPath, appLog)
	candidates := loadCandidates(*inputPath, appLog)

	ctx := context.Background()
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		appLog.Fatalf("Failed to ensure database schema: %v", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.Fatalf("Failed to initialize repositories: %v", err)
	}

	metrics.InitRegistry()

	workerCount := cfg.Engine.WorkerCount
	if *workers > 0 {
		workerCount = *workers
	}

	svc := service.NewAnalysisService(
		repos,
		service.NewProfileCache(cfg.ProfileCacheTTL()),
		cfg.Engine.Blacklist,
		time.Duration(cfg.Engine.HistoryWindowDays)*24*time.Hour,
		workerCount,
		logger.NewEngineLogger(appLog),
	)

	appLog.WithField("candidates", len(candidates)).Info("Starting batch analysis")

	recommendations, err := svc.AnalyzeBatch(ctx, candidates)
	if err != nil {
		appLog.Fatalf("Batch analysis failed: %v", err)
	}

	writeResults(recommendations, *outputPath, appLog)

	counts := map[string]int{}
	for _, rec := range recommendations {
		counts[rec.Recommendation]++
	}
	appLog.WithFields(logrus.Fields{
		"analyzed": len(recommendations),
		"by_label": counts,
	}).Info("Batch analysis completed")
}

func newLogger() *logrus.Logger {
	appLog := logrus.New()
	appLog.SetFormatter(&logrus.JSONFormatter{})
	return appLog
}

func loadConfigWithSecrets(path string, appLog *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		appLog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			appLog.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			appLog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		appLog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func loadCandidates(path string, appLog *logrus.Logger) []*models.CandidateBet {
	data, err := os.ReadFile(path)
	if err != nil {
		appLog.Fatalf("Failed to read input file: %v", err)
	}

	var candidates []*models.CandidateBet
	if err := json.Unmarshal(data, &candidates); err != nil {
		appLog.Fatalf("Failed to parse candidates: %v", err)
	}
	if len(candidates) == 0 {
		appLog.Fatal("Input file contains no candidates")
	}
	return candidates
}

func writeResults(recommendations []*models.Recommendation, path string, appLog *logrus.Logger) {
	data, err := json.MarshalIndent(recommendations, "", "  ")
	if err != nil {
		appLog.Fatalf("Failed to encode results: %v", err)
	}

	if path == "" {
		os.Stdout.Write(append(data, '\n'))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		appLog.Fatalf("Failed to write results: %v", err)
	}
	appLog.WithField("output", path).Info("Results written")
}
