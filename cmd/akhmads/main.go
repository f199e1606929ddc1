package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/cli/migrate"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/cli/server"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "akhmads",
		Short: "akhmads.net advertising exchange backend",
		Long:  `Backend for the akhmads.net Telegram advertising exchange: API server and database migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
