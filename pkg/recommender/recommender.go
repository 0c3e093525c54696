// Package recommender analyzes query execution plans for index problems.
//
// It consumes normalized plan rows (see pkg/plan) and produces index
// recommendations plus a 0-100 health score summarizing plan-quality
// issues. Both computations are pure functions of the rows; they perform no
// I/O and never fail on malformed rows, which are simply skipped.
package recommender

import (
	"strings"

	"github.com/turboindex/turboindex/pkg/plan"
)

// PlaceholderColumn is emitted when a full scan is flagged but the filter
// column cannot be determined without parsing the statement. It signals
// "review manually" rather than guessing a column.
const PlaceholderColumn = "<choose_filter_column>"

// Recommendation suggests one index on one table, derived purely from the
// plan rows.
type Recommendation struct {
	Table              string   `json:"table"`
	SuggestedIndexName string   `json:"suggested_index_name"`
	Columns            []string `json:"columns"`
	Reason             string   `json:"reason"`
}

// Recommend flags plan rows performing a full table scan with WHERE
// filtering, no chosen index, and no alternative candidate indexes. When
// possible_keys is populated the optimizer already had options and chose not
// to use them, which points at a different problem, so the row is skipped.
func Recommend(rows []plan.Row) []Recommendation {
	var recommendations []Recommendation
	for _, row := range rows {
		if row.AccessType() != "all" || row.Key() != "" {
			continue
		}
		if !strings.Contains(row.Extra(), "Using where") {
			continue
		}
		if row.PossibleKeys() != "" {
			continue
		}
		table, ok := row.Table()
		if !ok {
			continue
		}

		columns := []string{PlaceholderColumn}
		recommendations = append(recommendations, Recommendation{
			Table:              table,
			SuggestedIndexName: suggestIndexName(table, columns),
			Columns:            columns,
			Reason: "Full table scan detected with WHERE filtering and no index; " +
				"consider adding an index on the main filter column.",
		})
	}
	return recommendations
}

// suggestIndexName derives a deterministic index name from the table and up
// to the first three filter columns.
func suggestIndexName(table string, columns []string) string {
	if len(columns) > 3 {
		columns = columns[:3]
	}
	return "idx_" + table + "_" + strings.Join(columns, "_")
}
