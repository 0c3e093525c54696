package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/turboindex/turboindex/pkg/db"
	"github.com/turboindex/turboindex/pkg/report"
	"github.com/turboindex/turboindex/pkg/rewriter"
	"github.com/turboindex/turboindex/pkg/schema"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a SQL query using optimization rules",
	Long: `Rewrite a SQL query by applying heuristic optimization rules.

Rules are gated by a safety mode (safe, moderate, aggressive). Safe rules
are purely syntactic; moderate and above additionally enable schema-aware
rewrites such as SELECT * expansion when connection parameters are
available.`,
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	addConnectionFlags(rewriteCmd)
	rewriteCmd.Flags().String("query", "", "SQL query to rewrite")
	rewriteCmd.Flags().String("mode", "safe", "rewrite safety mode (safe, moderate, aggressive)")
	rewriteCmd.Flags().String("format", "diff", "output format (diff, json)")
	_ = rewriteCmd.MarkFlagRequired("query")
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	initLogging()

	query, _ := cmd.Flags().GetString("query")
	mode, _ := cmd.Flags().GetString("mode")
	format, _ := cmd.Flags().GetString("format")

	tier, err := rewriter.ParseTier(mode)
	if err != nil {
		return err
	}

	cfg, err := connectionConfig(cmd)
	if err != nil {
		return err
	}

	engine := rewriter.New()
	var result *rewriter.Result

	// Schema-aware rules need both a tier that enables them and a way to
	// reach the server. Resolution failures inside the rules fail open, but
	// an unreachable server is still reported here.
	if tier.AtLeast(rewriter.TierModerate) && cfg.HasDSN() && cfg.Database != "" {
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

		resolver := schema.NewCached(schema.NewMySQLResolver(conn))
		result, err = engine.RewriteWithSchema(query, tier, resolver)
		if err != nil {
			return err
		}
	} else {
		result, err = engine.Rewrite(query, tier)
		if err != nil {
			return err
		}
	}

	slog.Debug("rewrite complete", "changes", len(result.Changes), "mode", string(result.Mode))
	recordHistory(cmd, "rewrite", query, result)
	return report.WriteRewrite(os.Stdout, result, format)
}
