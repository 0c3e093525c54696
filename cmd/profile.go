package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/turboindex/turboindex/pkg/db"
	"github.com/turboindex/turboindex/pkg/profiler"
	"github.com/turboindex/turboindex/pkg/report"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile a SQL query against a MySQL database",
	Long: `Profile a SQL query by executing it repeatedly, timing each run and
collecting EXPLAIN output for plan-level metrics.`,
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	addConnectionFlags(profileCmd)
	profileCmd.Flags().String("query", "", "SQL query to profile")
	profileCmd.Flags().Int("iterations", 3, "number of times to run the query for timing")
	profileCmd.Flags().String("format", "table", "output format (table, json, yaml, csv, html)")
	profileCmd.Flags().String("mysql-version", "", "logical MySQL/MariaDB version label, e.g. mysql_8.0")
	_ = profileCmd.MarkFlagRequired("query")
}

func runProfile(cmd *cobra.Command, _ []string) error {
	initLogging()

	query, _ := cmd.Flags().GetString("query")
	iterations, _ := cmd.Flags().GetInt("iterations")
	format, _ := cmd.Flags().GetString("format")
	mysqlVersion, _ := cmd.Flags().GetString("mysql-version")

	cfg, err := connectionConfig(cmd)
	if err != nil {
		return err
	}
	if mysqlVersion == "" {
		mysqlVersion = cfg.MySQLVersion
	}

	conn, err := db.Open(db.Config{
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

	result, err := profiler.Profile(context.Background(), conn, query, iterations, mysqlVersion)
	if err != nil {
		return err
	}

	recordHistory(cmd, "profile", query, result.ToMap())
	return report.WriteProfile(os.Stdout, result, format)
}
