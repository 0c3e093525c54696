package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turboindex/turboindex/pkg/plan"
	"github.com/turboindex/turboindex/pkg/profiler"
	"github.com/turboindex/turboindex/pkg/recommender"
	"github.com/turboindex/turboindex/pkg/rewriter"
)

func sampleRewrite() *rewriter.Result {
	return &rewriter.Result{
		OriginalSQL:  "SELECT * FROM t WHERE a != NULL",
		RewrittenSQL: "SELECT * FROM t WHERE a IS NOT NULL",
		Mode:         rewriter.TierSafe,
		Changes:      []rewriter.Change{{Description: "Replaced `!= NULL` with `IS NOT NULL`"}},
	}
}

func sampleAnalysis() *recommender.Analysis {
	return recommender.Analyze(
		"SELECT * FROM orders WHERE x = 1",
		[]plan.Row{{"table": "orders", "type": "ALL", "Extra": "Using where"}},
		"", "8.0.36",
	)
}

func TestWriteRewrite_Diff(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRewrite(&buf, sampleRewrite(), "diff"))

	out := buf.String()
	assert.Contains(t, out, "Original SQL:")
	assert.Contains(t, out, "Rewritten SQL:")
	assert.Contains(t, out, "Changes applied:")
	assert.Contains(t, out, "- Replaced `!= NULL` with `IS NOT NULL`")
}

func TestWriteRewrite_DiffNoChanges(t *testing.T) {
	var buf bytes.Buffer
	result := &rewriter.Result{OriginalSQL: "SELECT 1", RewrittenSQL: "SELECT 1", Mode: rewriter.TierSafe, Changes: []rewriter.Change{}}
	require.NoError(t, WriteRewrite(&buf, result, "diff"))
	assert.Contains(t, buf.String(), "No changes were applied")
}

func TestWriteRewrite_JSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRewrite(&buf, sampleRewrite(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "original_sql")
	assert.Contains(t, decoded, "rewritten_sql")
	assert.Contains(t, decoded, "mode")
	assert.Contains(t, decoded, "changes")
}

func TestWriteRewrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteRewrite(&buf, sampleRewrite(), "xml"))
}

func TestWriteAnalysis_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), "table"))

	out := buf.String()
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "Index Health: 75/100")
	assert.Contains(t, out, "Full table scan on orders")
}

func TestWriteAnalysis_TableNoRecommendations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, recommender.Analyze("SELECT 1", nil, "", ""), "table"))

	out := buf.String()
	assert.Contains(t, out, "No index recommendations")
	assert.Contains(t, out, "Index Health: 100/100")
}

func TestWriteAnalysis_JSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"query", "recommendations", "explain", "health_score", "issues"} {
		assert.Contains(t, decoded, key)
	}
}

func TestWriteAnalysis_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "table,index_name,columns,reason", lines[0])
	assert.Contains(t, lines[1], "orders")
}

func TestWriteAnalysis_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), "html"))

	out := buf.String()
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>orders</td>")
}

func TestWriteAnalysis_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), "yaml"))

	out := buf.String()
	assert.Contains(t, out, "health_score: 75")
	assert.Contains(t, out, "query:")
}

func sampleProfile() *profiler.Result {
	rows := 5
	return &profiler.Result{
		Query: "SELECT * FROM t",
		Samples: []profiler.Sample{
			{Iteration: 1, ExecutionTimeMs: 10.5, RowsReturned: &rows},
			{Iteration: 2, ExecutionTimeMs: 12.5, RowsReturned: nil},
		},
		ExplainRows: []plan.Row{{"rows": "42", "key": "PRIMARY", "type": "ref", "Extra": "Using filesort"}},
	}
}

func TestWriteProfile_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfile(&buf, sampleProfile(), "table"))

	out := buf.String()
	assert.Contains(t, out, "Average time: 11.50 ms")
	assert.Contains(t, out, "Estimated rows examined (from EXPLAIN): 42")
	assert.Contains(t, out, "Execution flags: filesort")
}

func TestWriteProfile_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfile(&buf, sampleProfile(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "iteration,execution_time_ms,rows_returned", lines[0])
	assert.Equal(t, "1,10.5000,5", lines[1])
	assert.Equal(t, "2,12.5000,", lines[2])
}

func TestWriteProfile_JSONCanonicalKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfile(&buf, sampleProfile(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"query", "samples", "query_metrics", "explain", "uses_filesort"} {
		assert.Contains(t, decoded, key)
	}
}

func TestWriteProfile_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteProfile(&buf, sampleProfile(), "pdf"))
}
