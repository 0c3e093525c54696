package rewriter

import (
	"fmt"
	"regexp"
	"strconv"
)

var yearEqualityPattern = regexp.MustCompile(`(?i)YEAR\s*\(\s*([\w.]+)\s*\)\s*=\s*(\d{4})`)

// YearEqualityRule rewrites `YEAR(col) = 2024` into the half-open range
// `col >= '2024-01-01' AND col < '2025-01-01'`. The function call defeats
// index use on the column; the equivalent range predicate is sargable and
// preserves correctness for DATE/DATETIME/TIMESTAMP columns.
type YearEqualityRule struct{}

// NewYearEqualityRule creates a new YEAR() equality rule.
func NewYearEqualityRule() *YearEqualityRule {
	return &YearEqualityRule{}
}

// Name returns the rule name.
func (*YearEqualityRule) Name() string {
	return "YearEqualityRule"
}

// MinTier returns the lowest tier at which the rule runs.
func (*YearEqualityRule) MinTier() Tier {
	return TierSafe
}

// Apply rewrites YEAR() equality predicates. Year 9999 is skipped: its upper
// bound would need the non-existent year 10000.
func (*YearEqualityRule) Apply(sql string) (string, []Change) {
	var changes []Change
	rewritten := yearEqualityPattern.ReplaceAllStringFunc(sql, func(match string) string {
		m := yearEqualityPattern.FindStringSubmatch(match)
		column := m[1]
		year, err := strconv.Atoi(m[2])
		if err != nil || year >= 9999 {
			return match
		}
		changes = append(changes, Change{Description: "Rewrote YEAR() equality to date range predicate to allow index usage"})
		return fmt.Sprintf("%s >= '%04d-01-01' AND %s < '%04d-01-01'", column, year, column, year+1)
	})
	return rewritten, changes
}
