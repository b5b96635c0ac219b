package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nordalpha/fiindostats/database"
	"github.com/nordalpha/fiindostats/fiindo"
	"github.com/nordalpha/fiindostats/ingest"
)

var runCMD = &cobra.Command{
	Use:   "run",
	Short: "Run the ingestion pipeline once",
	Long: `Fetch fundamentals from the Fiindo API for every symbol in the allowed
industries, derive per-ticker ratios and industry statistics using parallel
workers and store the results in PostgreSQL.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Fiindo.FirstName == "" || cfg.Fiindo.LastName == "" {
			log.Fatal("Fiindo credentials missing: set fiindo.first_name and fiindo.last_name")
		}

		log.Println("Initializing database...")
		if err := database.InitDB(cfg.Database); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := []fiindo.ClientOption{
			fiindo.WithBaseURL(cfg.Fiindo.BaseURL),
			fiindo.WithTimeout(time.Duration(cfg.Fiindo.TimeoutSec) * time.Second),
		}
		if cfg.Fiindo.RequestsPerSecond > 0 {
			opts = append(opts, fiindo.WithRateLimit(cfg.Fiindo.RequestsPerSecond, cfg.Fiindo.Burst))
		}
		client := fiindo.NewClient(cfg.Fiindo.FirstName, cfg.Fiindo.LastName, opts...)

		processor := ingest.NewProcessor(client, cfg.Pipeline)

		log.Println("Starting ingestion pipeline...")
		if err := processor.Run(ctx); err != nil {
			log.Fatalf("Failed to run pipeline: %v", err)
		}

		fmt.Println("Ingestion completed successfully!")
	},
}

func init() {
	rootCMD.AddCommand(runCMD)
}
