package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/turboindex/turboindex/pkg/config"
	"github.com/turboindex/turboindex/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "turboindex",
	Short: "MySQL query optimization toolkit",
	Long: `TurboIndex inspects and transforms SQL queries against a MySQL-compatible
database to surface performance problems and safe rewrites.

It can rewrite queries using heuristic optimization rules, profile query
execution timings, and analyze EXPLAIN output to recommend indexes and
score plan health.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./turboindex.toml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().Bool("history", false, "record this run in the local history database")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initLogging installs the default logger at the level selected by
// --debug/--verbose.
func initLogging() {
	level := slog.LevelWarn
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	} else if viper.GetBool("verbose") {
		level = slog.LevelInfo
	}
	slog.SetDefault(logger.NewWithLevel(level).GetSlogLogger())
}

// addConnectionFlags registers the MySQL connection flags shared by the
// commands that may talk to a server.
func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("host", "", "MySQL host")
	cmd.Flags().Int("port", 0, "MySQL port")
	cmd.Flags().String("user", "", "MySQL user")
	cmd.Flags().String("password", "", "MySQL password")
	cmd.Flags().String("database", "", "MySQL database name")
}

// connectionConfig merges connection flags over the config file (--config, or
// turboindex.toml in the working directory) and the TURBOINDEX_* environment.
// Flags win.
func connectionConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return nil, err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.User = user
	}
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		cfg.Password = password
	}
	if database, _ := cmd.Flags().GetString("database"); database != "" {
		cfg.Database = database
	}
	return cfg, nil
}
