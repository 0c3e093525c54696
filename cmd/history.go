package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turboindex/turboindex/pkg/history"
	"github.com/turboindex/turboindex/pkg/logger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently recorded runs",
	Long: `List runs recorded in the local history database. Runs are recorded
when a command is invoked with --history.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	initLogging()

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tCOMMAND\tQUERY")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", run.CreatedAt.Format("2006-01-02 15:04:05"), run.Command, run.Query)
	}
	return tw.Flush()
}

// recordHistory persists a run when --history was passed. History is a
// convenience; failures are logged and never fail the command.
func recordHistory(cmd *cobra.Command, command, query string, payload any) {
	enabled, _ := cmd.Flags().GetBool("history")
	if !enabled {
		return
	}

	store, err := history.Open(history.DefaultPath())
	if err != nil {
		slog.Warn("failed to open history database", logger.Error(err))
		return
	}
	defer store.Close()

	if _, err := store.Record(command, query, payload); err != nil {
		slog.Warn("failed to record run history", logger.Error(err))
	}
}
