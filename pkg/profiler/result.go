// Package profiler times query executions and derives plan-level metrics.
//
// Result is the pure half: all statistics are computed on demand from the
// stored samples and plan rows, so they are always consistent with the
// current contents. Profile is the I/O half that actually runs the query
// against a database.
package profiler

import (
	"strings"

	"github.com/turboindex/turboindex/pkg/plan"
)

// Sample is one timed execution attempt. RowsReturned is nil when the result
// set could not be fetched.
type Sample struct {
	Iteration       int     `json:"iteration"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
	RowsReturned    *int    `json:"rows_returned"`
}

// IndexUsage summarizes one plan step that used an index.
type IndexUsage struct {
	Index string `json:"index"`
	Type  string `json:"type"`
	Rows  int64  `json:"rows"`
}

// Result aggregates the execution samples and EXPLAIN output for one query.
type Result struct {
	Query         string
	Samples       []Sample
	ExplainRows   []plan.Row
	MySQLVersion  string
	ServerVersion string
}

// AverageTimeMs returns the mean execution time across samples, 0 when there
// are none.
func (r *Result) AverageTimeMs() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	var total float64
	for _, s := range r.Samples {
		total += s.ExecutionTimeMs
	}
	return total / float64(len(r.Samples))
}

// AverageRowsReturned returns the mean row count across samples that
// reported one, nil when no sample did.
func (r *Result) AverageRowsReturned() *float64 {
	var total, count int
	for _, s := range r.Samples {
		if s.RowsReturned == nil {
			continue
		}
		total += *s.RowsReturned
		count++
	}
	if count == 0 {
		return nil
	}
	avg := float64(total) / float64(count)
	return &avg
}

// EstimatedRowsExamined sums the optimizer row estimates across plan rows.
func (r *Result) EstimatedRowsExamined() int64 {
	var total int64
	for _, row := range r.ExplainRows {
		total += row.EstimatedRows()
	}
	return total
}

// UsesFilesort reports whether any plan row mentions a filesort.
func (r *Result) UsesFilesort() bool {
	for _, row := range r.ExplainRows {
		if strings.Contains(strings.ToLower(row.Extra()), "filesort") {
			return true
		}
	}
	return false
}

// UsesTemporary reports whether any plan row mentions a temporary table.
func (r *Result) UsesTemporary() bool {
	for _, row := range r.ExplainRows {
		if strings.Contains(strings.ToLower(row.Extra()), "temporary") {
			return true
		}
	}
	return false
}

// IndexUsageSummary lists the plan steps that used an index.
func (r *Result) IndexUsageSummary() []IndexUsage {
	summary := []IndexUsage{}
	for _, row := range r.ExplainRows {
		key := row.Key()
		if key == "" {
			continue
		}
		summary = append(summary, IndexUsage{
			Index: key,
			Type:  row.AccessType(),
			Rows:  row.EstimatedRows(),
		})
	}
	return summary
}

// ToMap returns the canonical structured serialization of the profile,
// preserving the field names downstream consumers rely on.
func (r *Result) ToMap() map[string]any {
	samples := r.Samples
	if samples == nil {
		samples = []Sample{}
	}
	explain := r.ExplainRows
	if explain == nil {
		explain = []plan.Row{}
	}

	tempTables := 0
	if r.UsesTemporary() {
		tempTables = 1
	}
	filesorts := 0
	if r.UsesFilesort() {
		filesorts = 1
	}

	indexUsage := r.IndexUsageSummary()
	var averageRows any
	if avg := r.AverageRowsReturned(); avg != nil {
		averageRows = *avg
	}

	return map[string]any{
		"query":                   r.Query,
		"samples":                 samples,
		"average_time_ms":         r.AverageTimeMs(),
		"average_rows_returned":   averageRows,
		"estimated_rows_examined": r.EstimatedRowsExamined(),
		"uses_filesort":           r.UsesFilesort(),
		"uses_temporary":          r.UsesTemporary(),
		"index_usage":             indexUsage,
		"query_metrics": map[string]any{
			"execution_time_ms":   r.AverageTimeMs(),
			"rows_examined":       r.EstimatedRowsExamined(),
			"rows_returned":       averageRows,
			"temp_tables_created": tempTables,
			"filesort_operations": filesorts,
			"index_usage":         indexUsage,
		},
		"mysql_version":  r.MySQLVersion,
		"server_version": r.ServerVersion,
		"explain":        explain,
	}
}
