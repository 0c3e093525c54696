package rewriter

import (
	"regexp"
	"strings"
)

var selectStarPattern = regexp.MustCompile(`(?is)^\s*SELECT\s+\*\s+FROM\s+([A-Za-z0-9_]+)\b(.*)$`)

// SelectStarExpansionRule replaces `SELECT * FROM table ...` with an explicit
// column list resolved through the supplied ColumnResolver. It only matches a
// statement anchored on a single target table. The rule fails open: a
// resolver error or an empty column set leaves the statement unchanged and
// records nothing.
type SelectStarExpansionRule struct {
	resolver ColumnResolver
}

// NewSelectStarExpansionRule creates a schema-aware SELECT * expansion rule.
func NewSelectStarExpansionRule(resolver ColumnResolver) *SelectStarExpansionRule {
	return &SelectStarExpansionRule{resolver: resolver}
}

// Name returns the rule name.
func (*SelectStarExpansionRule) Name() string {
	return "SelectStarExpansionRule"
}

// MinTier returns the lowest tier at which the rule runs.
func (*SelectStarExpansionRule) MinTier() Tier {
	return TierModerate
}

// Apply expands the column list when the statement shape matches and the
// resolver succeeds.
func (r *SelectStarExpansionRule) Apply(sql string) (rewritten string, changes []Change) {
	rewritten = sql
	if r.resolver == nil {
		return rewritten, nil
	}

	m := selectStarPattern.FindStringSubmatch(sql)
	if m == nil {
		return rewritten, nil
	}
	table, tail := m[1], m[2]

	// The resolver is caller-supplied; a panic inside it must not escape
	// the rule any more than an error would.
	defer func() {
		if recover() != nil {
			rewritten = sql
			changes = nil
		}
	}()

	columns, err := r.resolver.Columns(table)
	if err != nil || len(columns) == 0 {
		return rewritten, nil
	}

	changes = append(changes, Change{Description: "Replaced SELECT * with explicit column list"})
	rewritten = "SELECT " + strings.Join(columns, ", ") + " FROM " + table + tail
	return rewritten, changes
}
