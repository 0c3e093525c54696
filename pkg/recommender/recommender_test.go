package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turboindex/turboindex/pkg/plan"
)

func fullScanRow(table string) plan.Row {
	return plan.Row{"table": table, "type": "ALL", "Extra": "Using where"}
}

func TestRecommend_FlagsFullScan(t *testing.T) {
	recs := Recommend([]plan.Row{fullScanRow("orders")})

	require.Len(t, recs, 1)
	assert.Equal(t, "orders", recs[0].Table)
	assert.Equal(t, "idx_orders_"+PlaceholderColumn, recs[0].SuggestedIndexName)
	assert.Equal(t, []string{PlaceholderColumn}, recs[0].Columns)
	assert.Contains(t, recs[0].Reason, "Full table scan")
}

func TestRecommend_SkipConditions(t *testing.T) {
	tests := []struct {
		name string
		row  plan.Row
	}{
		{
			name: "index chosen",
			row:  plan.Row{"table": "t", "type": "ALL", "key": "PRIMARY", "Extra": "Using where"},
		},
		{
			name: "not a full scan",
			row:  plan.Row{"table": "t", "type": "ref", "Extra": "Using where"},
		},
		{
			name: "no filter condition",
			row:  plan.Row{"table": "t", "type": "ALL", "Extra": ""},
		},
		{
			name: "optimizer had candidate indexes",
			row:  plan.Row{"table": "t", "type": "ALL", "possible_keys": "idx_a", "Extra": "Using where"},
		},
		{
			name: "missing table",
			row:  plan.Row{"type": "ALL", "Extra": "Using where"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Recommend([]plan.Row{tt.row}))
		})
	}
}

func TestRecommend_OnePerMatchingTable(t *testing.T) {
	recs := Recommend([]plan.Row{fullScanRow("a"), fullScanRow("b")})
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Table)
	assert.Equal(t, "b", recs[1].Table)
}

func TestHealth_PenalizesFullScan(t *testing.T) {
	score, issues := Health([]plan.Row{fullScanRow("orders")}, nil)

	assert.Less(t, score, 100)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "Full table scan")
	assert.Contains(t, issues[0], "orders")
}

func TestHealth_Penalties(t *testing.T) {
	tests := []struct {
		name      string
		row       plan.Row
		wantScore int
		wantIssue string
	}{
		{
			name:      "full scan",
			row:       plan.Row{"table": "t", "type": "ALL"},
			wantScore: 80,
			wantIssue: "Full table scan on t (type=ALL)",
		},
		{
			name:      "sequential index scan",
			row:       plan.Row{"table": "t", "type": "index"},
			wantScore: 95,
			wantIssue: "Sequential index scan on t (type=index)",
		},
		{
			name:      "filesort",
			row:       plan.Row{"table": "t", "type": "ref", "Extra": "Using filesort"},
			wantScore: 90,
			wantIssue: "Filesort required for t",
		},
		{
			name:      "temporary table",
			row:       plan.Row{"table": "t", "type": "ref", "Extra": "Using temporary"},
			wantScore: 90,
			wantIssue: "Temporary table used for t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := Health([]plan.Row{tt.row}, nil)
			assert.Equal(t, tt.wantScore, score)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantIssue, issues[0])
		})
	}
}

func TestHealth_PenaltiesAccumulateAcrossRows(t *testing.T) {
	rows := []plan.Row{fullScanRow("a"), fullScanRow("b"), fullScanRow("c")}
	score, issues := Health(rows, nil)

	assert.Equal(t, 40, score)
	require.Len(t, issues, 3)
	assert.Contains(t, issues[0], "a")
	assert.Contains(t, issues[1], "b")
	assert.Contains(t, issues[2], "c")
}

func TestHealth_RecommendationPenaltyCapped(t *testing.T) {
	recs := make([]Recommendation, 6)
	score, issues := Health(nil, recs)

	assert.Equal(t, 80, score)
	require.Len(t, issues, 1)
	assert.Equal(t, "6 index recommendation(s) suggested", issues[0])
}

func TestHealth_RecommendationIssueAppendedLast(t *testing.T) {
	rows := []plan.Row{fullScanRow("orders")}
	recs := Recommend(rows)
	score, issues := Health(rows, recs)

	assert.Equal(t, 75, score)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], "Full table scan")
	assert.Equal(t, "1 index recommendation(s) suggested", issues[1])
}

func TestHealth_ScoreNeverBelowZero(t *testing.T) {
	var rows []plan.Row
	for i := 0; i < 20; i++ {
		rows = append(rows, plan.Row{"table": "t", "type": "ALL", "Extra": "Using filesort; Using temporary"})
	}
	score, _ := Health(rows, Recommend(rows))
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestHealth_SkipsRowsWithoutTable(t *testing.T) {
	rows := []plan.Row{
		{"type": "ALL", "Extra": "Using filesort"},
		fullScanRow("orders"),
	}
	score, issues := Health(rows, nil)

	assert.Equal(t, 80, score)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "orders")
}

func TestAnalyze_AssemblesResult(t *testing.T) {
	rows := []plan.Row{fullScanRow("orders")}
	result := Analyze("SELECT * FROM orders WHERE x = 1", rows, "mysql_8.0", "8.0.36")

	assert.Equal(t, "SELECT * FROM orders WHERE x = 1", result.Query)
	assert.Len(t, result.Recommendations, 1)
	assert.Equal(t, rows, result.ExplainRows)
	assert.Equal(t, "mysql_8.0", result.MySQLVersion)
	assert.Equal(t, "8.0.36", result.ServerVersion)
	assert.Equal(t, 75, result.HealthScore)
	assert.Len(t, result.Issues, 2)
}

func TestAnalyze_NoRecommendationsIsEmptyNotNil(t *testing.T) {
	result := Analyze("SELECT 1", nil, "", "")
	assert.NotNil(t, result.Recommendations)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 100, result.HealthScore)
	assert.Empty(t, result.Issues)
}
