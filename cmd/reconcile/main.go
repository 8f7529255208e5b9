// Package main provides the reconciliation CLI: it sweeps pending
// reconciliations and can ingest a settled result from a file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/logger"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/models"
	"github.com/yourusername/bet-insight/internal/repository"
	"github.com/yourusername/bet-insight/internal/service"
)

var (
	configFile string
	resultFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
	svc        *service.ReconciliationService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&resultFile, "result-file", "", "JSON file holding one settled result to reconcile")
}

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile settled results against stored recommendations",
	Long: `Runs one pass over pending reconciliations, resolving every one whose
betslip has settled. With --result-file, reconciles the given settled result
directly instead.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		if resultFile != "" {
			return reconcileFromFile(ctx)
		}
		return runSweep(ctx)
	},
}

func main() {
	defer func() {
		if db != nil {
			db.Close()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		stdlog.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return err
		}
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	metrics.InitRegistry()

	svc = service.NewReconciliationService(
		repos,
		service.NewProfileCache(cfg.ProfileCacheTTL()),
		logger.NewReconciliationLogger(appLog),
	)
	return nil
}

func runSweep(ctx context.Context) error {
	resolved, err := svc.SweepPending(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	appLog.WithField("resolved", resolved).Info("Reconciliation sweep completed")
	fmt.Printf("Resolved %d reconciliation(s)\n", resolved)

	counts, err := repos.Reconciliation.ClassificationCounts(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to summarize classifications: %w", err)
	}
	if len(counts) > 0 {
		fmt.Println("Classifications (last 24h):")
		for class, n := range counts {
			fmt.Printf("  %-40s %d\n", class, n)
		}
	}
	return nil
}

func reconcileFromFile(ctx context.Context) error {
	data, err := os.ReadFile(resultFile)
	if err != nil {
		return fmt.Errorf("failed to read result file: %w", err)
	}

	var result models.HistoricalRecord
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse result file: %w", err)
	}

	if err := svc.HandleSettledResult(ctx, &result); err != nil {
		return fmt.Errorf("failed to reconcile result: %w", err)
	}

	appLog.WithFields(logrus.Fields{
		"home_team": result.HomeTeam,
		"away_team": result.AwayTeam,
		"result":    result.Result,
	}).Info("Result reconciled")
	fmt.Printf("Reconciled %s vs %s (%s)\n", result.HomeTeam, result.AwayTeam, result.Result)
	return nil
}
