package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nordalpha/fiindostats/config"
)

var cfg *config.Config

var rootCMD = &cobra.Command{
	Use:   "fiindostats",
	Short: "Fiindo Fundamentals Ingestion and Statistics Tool",
	Long: `A CLI application for ingesting company fundamentals from the Fiindo API.
This tool reconciles quarterly financial statements, derives per-ticker
ratios and industry statistics, and serves them through a REST API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	err := rootCMD.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCMD.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
}
