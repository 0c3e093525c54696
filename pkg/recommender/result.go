package recommender

import "github.com/turboindex/turboindex/pkg/plan"

// Analysis bundles everything derived from one query's execution plan. Field
// names are part of the output contract consumed by the report layer.
type Analysis struct {
	Query           string           `json:"query"`
	Recommendations []Recommendation `json:"recommendations"`
	ExplainRows     []plan.Row       `json:"explain"`
	MySQLVersion    string           `json:"mysql_version,omitempty"`
	ServerVersion   string           `json:"server_version,omitempty"`
	HealthScore     int              `json:"health_score"`
	Issues          []string         `json:"issues"`
}

// Analyze runs the recommendation heuristic and health scoring over the plan
// rows and assembles the combined result.
func Analyze(query string, rows []plan.Row, mysqlVersion, serverVersion string) *Analysis {
	recommendations := Recommend(rows)
	score, issues := Health(rows, recommendations)
	if recommendations == nil {
		recommendations = []Recommendation{}
	}
	return &Analysis{
		Query:           query,
		Recommendations: recommendations,
		ExplainRows:     rows,
		MySQLVersion:    mysqlVersion,
		ServerVersion:   serverVersion,
		HealthScore:     score,
		Issues:          issues,
	}
}
