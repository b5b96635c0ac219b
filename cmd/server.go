package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/nordalpha/fiindostats/api"
	"github.com/nordalpha/fiindostats/database"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the HTTP API server to serve stored ticker metrics and industry statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Initializing database...")
		if err := database.InitDB(cfg.Database); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		r := api.SetupRoutes()

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCMD.AddCommand(serverCMD)
}
