package recommender

import (
	"fmt"
	"strings"

	"github.com/turboindex/turboindex/pkg/plan"
)

// Health computes a 0-100 plan health score and the list of detected issues.
// The score starts at 100 and only decreases; penalties are additive across
// rows. Issues follow row iteration order, with the recommendation-count
// issue appended last. Rows without a table are skipped.
func Health(rows []plan.Row, recommendations []Recommendation) (int, []string) {
	score := 100
	issues := []string{}

	for _, row := range rows {
		table, ok := row.Table()
		if !ok {
			continue
		}
		extra := strings.ToLower(row.Extra())

		switch row.AccessType() {
		case "all":
			score -= 20
			issues = append(issues, fmt.Sprintf("Full table scan on %s (type=ALL)", table))
		case "index":
			score -= 5
			issues = append(issues, fmt.Sprintf("Sequential index scan on %s (type=index)", table))
		}

		if strings.Contains(extra, "filesort") {
			score -= 10
			issues = append(issues, fmt.Sprintf("Filesort required for %s", table))
		}
		if strings.Contains(extra, "temporary") {
			score -= 10
			issues = append(issues, fmt.Sprintf("Temporary table used for %s", table))
		}
	}

	if count := len(recommendations); count > 0 {
		penalty := 5 * count
		if penalty > 20 {
			penalty = 20
		}
		score -= penalty
		issues = append(issues, fmt.Sprintf("%d index recommendation(s) suggested", count))
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, issues
}
