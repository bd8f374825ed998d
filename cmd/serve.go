package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Eutropios/WarMAC/api"
	"github.com/Eutropios/WarMAC/config"
	"github.com/Eutropios/WarMAC/storage"
	"github.com/Eutropios/WarMAC/utils"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the statistic pipeline. Averages are
computed on demand per request; when history persistence is enabled,
every computed result is stored and can be queried back.`,
	RunE: runServe,
}

func init() {
	rootCMD.AddCommand(serveCMD)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := utils.NewLogger(true)

	var history *storage.PostgresWriter
	if cfg.HistoryEnabled {
		w, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			return err
		}
		history = w
		defer history.Close()
		logger.Info("History persistence enabled (db: %s)", cfg.PostgresDB)
	}

	server := api.NewServer(cfg, logger, history)
	r := server.SetupRoutes()

	logger.Info("Starting server on %s", cfg.ServerAddr)
	return r.Run(cfg.ServerAddr)
}
