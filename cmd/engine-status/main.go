package main

import (
	"context"
	"fmt"
	stdlog "log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	sinceDays  int
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVar(&sinceDays, "since-days", 30, "Window for recommendation and outcome counts")
}

var rootCmd = &cobra.Command{
	Use:   "engine-status",
	Short: "Check confidence engine status",
	Long:  `Displays recommendation volume, outcome classifications and configuration for the confidence engine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		displayStatus(cmd.Context())
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
	return err
}

func setupDependencies(ctx context.Context) error {
	appLog = logrus.New()
	appLog.SetLevel(logrus.WarnLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func displayStatus(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	since := time.Now().Add(-time.Duration(sinceDays) * 24 * time.Hour)

	fmt.Println()
	fmt.Println("Confidence Engine Status")
	fmt.Println("========================")

	fmt.Print("Database: ")
	if err := db.HealthCheck(ctx); err != nil {
		fmt.Printf("UNAVAILABLE (%v)\n", err)
		return
	}
	fmt.Println("OK")

	fmt.Printf("\nRecommendations (last %d days):\n", sinceDays)
	counts, err := repos.Recommendation.CountByCategory(ctx, since)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	} else if len(counts) == 0 {
		fmt.Println("  none")
	} else {
		for label, n := range counts {
			fmt.Printf("  %-40s %d\n", label, n)
		}
	}

	fmt.Printf("\nResolved Outcomes (last %d days):\n", sinceDays)
	outcomes, err := repos.Reconciliation.ClassificationCounts(ctx, since)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	} else if len(outcomes) == 0 {
		fmt.Println("  none")
	} else {
		for class, n := range outcomes {
			fmt.Printf("  %-40s %d\n", class, n)
		}
	}

	fmt.Printf("\nConfidence Failures by Signal (last %d days):\n", sinceDays)
	failures, err := repos.Reconciliation.ConfidenceFailureCounts(ctx, since)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	} else if len(failures) == 0 {
		fmt.Println("  none")
	} else {
		for signal, n := range failures {
			fmt.Printf("  %-40s %d\n", signal, n)
		}
	}

	pending, err := repos.Reconciliation.GetPending(ctx, 1000)
	if err == nil {
		fmt.Printf("\nPending Reconciliations: %d", len(pending))
		if len(pending) == 1000 {
			fmt.Print("+")
		}
		fmt.Println()
	}

	fmt.Println("\nConfiguration:")
	fmt.Printf("  Environment: %s\n", cfg.App.Environment)
	fmt.Printf("  Workers: %d\n", cfg.Engine.WorkerCount)
	fmt.Printf("  History Window: %d days\n", cfg.Engine.HistoryWindowDays)
	fmt.Printf("  Profile Cache TTL: %d seconds\n", cfg.Engine.ProfileCacheTTLSeconds)
	fmt.Printf("  Blacklisted Teams: %d\n", len(cfg.Engine.Blacklist))
	fmt.Printf("  Scoreline Model: %v\n", cfg.Features.ScorelineModelEnabled)
	fmt.Printf("  Reconciliation: %v\n", cfg.Features.ReconciliationEnabled)
	fmt.Printf("  Standings Sync: %v\n", cfg.Features.StandingsSyncEnabled)
	fmt.Printf("  Version: %s (%s)\n", Version, GitCommit)
	fmt.Println()
}
