package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turboindex/turboindex/pkg/plan"
)

func intPtr(v int) *int { return &v }

func TestResult_ToMapMetrics(t *testing.T) {
	result := &Result{
		Query: "SELECT * FROM t",
		Samples: []Sample{
			{Iteration: 1, ExecutionTimeMs: 10.0, RowsReturned: intPtr(5)},
			{Iteration: 2, ExecutionTimeMs: 20.0, RowsReturned: intPtr(15)},
		},
		ExplainRows: []plan.Row{
			{"rows": 42, "Extra": "Using filesort; Using temporary"},
		},
	}

	data := result.ToMap()
	assert.Equal(t, int64(42), data["estimated_rows_examined"])
	assert.Equal(t, true, data["uses_filesort"])
	assert.Equal(t, true, data["uses_temporary"])
	assert.Equal(t, 15.0, data["average_time_ms"])
	assert.Equal(t, 10.0, data["average_rows_returned"])

	metrics, ok := data["query_metrics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, metrics["filesort_operations"])
	assert.Equal(t, 1, metrics["temp_tables_created"])
	assert.Equal(t, int64(42), metrics["rows_examined"])
	assert.Equal(t, 15.0, metrics["execution_time_ms"])
}

func TestResult_AveragesOnEmpty(t *testing.T) {
	result := &Result{Query: "SELECT 1"}

	assert.Equal(t, 0.0, result.AverageTimeMs())
	assert.Nil(t, result.AverageRowsReturned())
	assert.Equal(t, int64(0), result.EstimatedRowsExamined())
	assert.False(t, result.UsesFilesort())
	assert.False(t, result.UsesTemporary())
}

func TestResult_AverageRowsIgnoresMissingCounts(t *testing.T) {
	result := &Result{
		Samples: []Sample{
			{Iteration: 1, ExecutionTimeMs: 5, RowsReturned: intPtr(10)},
			{Iteration: 2, ExecutionTimeMs: 5, RowsReturned: nil},
		},
	}

	avg := result.AverageRowsReturned()
	require.NotNil(t, avg)
	assert.Equal(t, 10.0, *avg)
}

func TestResult_EstimatedRowsSkipsNonNumeric(t *testing.T) {
	result := &Result{
		ExplainRows: []plan.Row{
			{"rows": "100"},
			{"rows": "not-a-number"},
			{"rows": nil},
			{"rows": 23},
		},
	}
	assert.Equal(t, int64(123), result.EstimatedRowsExamined())
}

func TestResult_IndexUsageSummary(t *testing.T) {
	result := &Result{
		ExplainRows: []plan.Row{
			{"table": "a", "type": "ref", "key": "idx_a_status", "rows": "12"},
			{"table": "b", "type": "ALL", "key": nil, "rows": "9000"},
		},
	}

	usage := result.IndexUsageSummary()
	require.Len(t, usage, 1)
	assert.Equal(t, "idx_a_status", usage[0].Index)
	assert.Equal(t, "ref", usage[0].Type)
	assert.Equal(t, int64(12), usage[0].Rows)
}

func TestResult_ToMapCanonicalKeys(t *testing.T) {
	data := (&Result{Query: "SELECT 1"}).ToMap()
	for _, key := range []string{
		"query", "samples", "average_time_ms", "average_rows_returned",
		"estimated_rows_examined", "uses_filesort", "uses_temporary",
		"index_usage", "query_metrics", "mysql_version", "server_version",
		"explain",
	} {
		assert.Contains(t, data, key)
	}
}
