package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/turboindex/turboindex/pkg/db"
	"github.com/turboindex/turboindex/pkg/recommender"
	"github.com/turboindex/turboindex/pkg/report"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend-indexes",
	Short: "Analyze a query and recommend indexes",
	Long: `Run EXPLAIN for a query and analyze the execution plan for index
problems. Produces index recommendations plus a 0-100 health score with
the detected issues.`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	addConnectionFlags(recommendCmd)
	recommendCmd.Flags().String("query", "", "SQL query to analyze")
	recommendCmd.Flags().String("format", "table", "output format (table, json, yaml, csv, html)")
	recommendCmd.Flags().String("mysql-version", "", "logical MySQL/MariaDB version label, e.g. mysql_8.0")
	_ = recommendCmd.MarkFlagRequired("query")
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	initLogging()

	query, _ := cmd.Flags().GetString("query")
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

	ctx := context.Background()
	rows, err := db.Explain(ctx, conn, query)
	if err != nil {
		return err
	}

	result := recommender.Analyze(query, rows, mysqlVersion, db.ServerVersion(ctx, conn))
	recordHistory(cmd, "recommend-indexes", query, result)
	return report.WriteAnalysis(os.Stdout, result, format)
}
