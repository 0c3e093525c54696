package cmd

import (
	"database/sql"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/turboindex/turboindex/pkg/db"
	"github.com/turboindex/turboindex/pkg/logger"
	"github.com/turboindex/turboindex/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rewrite and analysis engines over HTTP",
	Long: `Start an HTTP server exposing the rewrite engine and plan analysis as
JSON endpoints. Endpoints that need a live database (recommend, profile)
are only available when connection parameters are configured.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addConnectionFlags(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
}

func runServe(cmd *cobra.Command, _ []string) error {
	initLogging()

	// The server announces itself at info level regardless of --verbose.
	log := logger.New()

	listen, _ := cmd.Flags().GetString("listen")

	cfg, err := connectionConfig(cmd)
	if err != nil {
		return err
	}

	var conn *sql.DB
	if cfg.Database != "" {
		conn, err = db.Open(db.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			Database: cfg.Database,
		})
		if err != nil {
			return err
		}
		defer conn.Close()
	} else {
		log.Warn("no database configured; only /api/rewrite will be available")
	}

	log.Info("listening", "addr", listen)
	return http.ListenAndServe(listen, server.New(conn).Router())
}
