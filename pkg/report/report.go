// Package report renders rewrite, profile and index analysis results in the
// formats the CLI exposes (diff, table, json, yaml, csv, html). The
// canonical field names of each result's structured form are preserved
// across every format.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/turboindex/turboindex/pkg/profiler"
	"github.com/turboindex/turboindex/pkg/recommender"
	"github.com/turboindex/turboindex/pkg/rewriter"
)

// WriteRewrite renders a rewrite result as a textual diff or as JSON.
func WriteRewrite(w io.Writer, result *rewriter.Result, format string) error {
	switch format {
	case "json":
		return writeJSON(w, result)
	case "diff":
		fmt.Fprintln(w, "Original SQL:")
		fmt.Fprintln(w, result.OriginalSQL)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rewritten SQL:")
		fmt.Fprintln(w, result.RewrittenSQL)
		fmt.Fprintln(w)
		if result.Changed() {
			fmt.Fprintln(w, "Changes applied:")
			for _, change := range result.Changes {
				fmt.Fprintf(w, "- %s\n", change.Description)
			}
		} else {
			fmt.Fprintln(w, "No changes were applied; query already conforms to rules for this mode.")
		}
		return nil
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

// WriteAnalysis renders an index analysis result.
func WriteAnalysis(w io.Writer, result *recommender.Analysis, format string) error {
	switch format {
	case "json":
		return writeJSON(w, result)
	case "yaml":
		return writeYAML(w, result)
	case "csv":
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"table", "index_name", "columns", "reason"}); err != nil {
			return errors.Wrap(err, "failed to write csv header")
		}
		for _, rec := range result.Recommendations {
			record := []string{rec.Table, rec.SuggestedIndexName, strings.Join(rec.Columns, ", "), rec.Reason}
			if err := writer.Write(record); err != nil {
				return errors.Wrap(err, "failed to write csv record")
			}
		}
		writer.Flush()
		return errors.Wrap(writer.Error(), "failed to flush csv output")
	case "html":
		return analysisHTMLTemplate.Execute(w, result)
	case "table":
		if len(result.Recommendations) == 0 {
			fmt.Fprintln(w, "No index recommendations based on current heuristics.")
		} else {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tINDEX NAME\tCOLUMNS\tREASON")
			for _, rec := range result.Recommendations {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Table, rec.SuggestedIndexName, strings.Join(rec.Columns, ", "), rec.Reason)
			}
			if err := tw.Flush(); err != nil {
				return errors.Wrap(err, "failed to flush table output")
			}
		}
		fmt.Fprintf(w, "Index Health: %d/100\n", result.HealthScore)
		if len(result.Issues) > 0 {
			fmt.Fprintln(w, "Issues detected:")
			for _, issue := range result.Issues {
				fmt.Fprintf(w, "- %s\n", issue)
			}
		}
		return nil
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

// WriteProfile renders a profile result.
func WriteProfile(w io.Writer, result *profiler.Result, format string) error {
	switch format {
	case "json":
		return writeJSON(w, result.ToMap())
	case "yaml":
		return writeYAML(w, result.ToMap())
	case "csv":
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"iteration", "execution_time_ms", "rows_returned"}); err != nil {
			return errors.Wrap(err, "failed to write csv header")
		}
		for _, sample := range result.Samples {
			rowsReturned := ""
			if sample.RowsReturned != nil {
				rowsReturned = strconv.Itoa(*sample.RowsReturned)
			}
			record := []string{
				strconv.Itoa(sample.Iteration),
				strconv.FormatFloat(sample.ExecutionTimeMs, 'f', 4, 64),
				rowsReturned,
			}
			if err := writer.Write(record); err != nil {
				return errors.Wrap(err, "failed to write csv record")
			}
		}
		writer.Flush()
		return errors.Wrap(writer.Error(), "failed to flush csv output")
	case "html":
		return profileHTMLTemplate.Execute(w, result)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ITERATION\tTIME (MS)\tROWS RETURNED")
		for _, sample := range result.Samples {
			rowsReturned := "-"
			if sample.RowsReturned != nil {
				rowsReturned = strconv.Itoa(*sample.RowsReturned)
			}
			fmt.Fprintf(tw, "%d\t%.2f\t%s\n", sample.Iteration, sample.ExecutionTimeMs, rowsReturned)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "failed to flush table output")
		}
		fmt.Fprintf(w, "Average time: %.2f ms\n", result.AverageTimeMs())
		fmt.Fprintf(w, "Estimated rows examined (from EXPLAIN): %d\n", result.EstimatedRowsExamined())
		var flags []string
		if result.UsesFilesort() {
			flags = append(flags, "filesort")
		}
		if result.UsesTemporary() {
			flags = append(flags, "temporary table")
		}
		if len(flags) > 0 {
			fmt.Fprintf(w, "Execution flags: %s\n", strings.Join(flags, ", "))
		}
		return nil
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(v), "failed to encode json output")
}

// writeYAML round-trips through JSON so every format shares the canonical
// field names declared in the json tags.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode yaml output")
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return errors.Wrap(err, "failed to encode yaml output")
	}
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return errors.Wrap(encoder.Encode(generic), "failed to encode yaml output")
}

var analysisHTMLTemplate = template.Must(template.New("analysis").Parse(
	`<table><thead><tr><th>Table</th><th>Index Name</th><th>Columns</th><th>Reason</th></tr></thead><tbody>{{range .Recommendations}}<tr><td>{{.Table}}</td><td>{{.SuggestedIndexName}}</td><td>{{range $i, $c := .Columns}}{{if $i}}, {{end}}{{$c}}{{end}}</td><td>{{.Reason}}</td></tr>{{end}}</tbody></table>
`))

var profileHTMLTemplate = template.Must(template.New("profile").Parse(
	`<table><thead><tr><th>Iteration</th><th>Time (ms)</th><th>Rows Returned</th></tr></thead><tbody>{{range .Samples}}<tr><td>{{.Iteration}}</td><td>{{printf "%.4f" .ExecutionTimeMs}}</td><td>{{if .RowsReturned}}{{.RowsReturned}}{{end}}</td></tr>{{end}}</tbody></table>
`))
