package rewriter

import "regexp"

var (
	notEqualNullPattern = regexp.MustCompile(`(?i)!=\s*NULL`)
	equalNullPattern    = regexp.MustCompile(`(?i)=\s*NULL`)
)

// NullComparisonRule rewrites `!= NULL` to `IS NOT NULL` and `= NULL` to
// `IS NULL`. Equality against NULL never matches under three-valued logic,
// so this is a pure syntactic safety fix.
type NullComparisonRule struct{}

// NewNullComparisonRule creates a new NULL comparison normalization rule.
func NewNullComparisonRule() *NullComparisonRule {
	return &NullComparisonRule{}
}

// Name returns the rule name.
func (*NullComparisonRule) Name() string {
	return "NullComparisonRule"
}

// MinTier returns the lowest tier at which the rule runs.
func (*NullComparisonRule) MinTier() Tier {
	return TierSafe
}

// Apply rewrites NULL equality comparisons. The != form is handled first so
// the bare = pattern does not consume its trailing half.
func (*NullComparisonRule) Apply(sql string) (string, []Change) {
	var changes []Change
	if notEqualNullPattern.MatchString(sql) {
		sql = notEqualNullPattern.ReplaceAllString(sql, "IS NOT NULL")
		changes = append(changes, Change{Description: "Replaced `!= NULL` with `IS NOT NULL`"})
	}
	if equalNullPattern.MatchString(sql) {
		sql = equalNullPattern.ReplaceAllString(sql, "IS NULL")
		changes = append(changes, Change{Description: "Replaced `= NULL` with `IS NULL`"})
	}
	return sql, changes
}
