package rewriter

import (
	"regexp"
	"strings"
)

var (
	orChainPattern  = regexp.MustCompile(`(?i)WHERE\s+([\w.]+)\s*=\s*(\S+)((?:\s+OR\s+[\w.]+\s*=\s*\S+)+)`)
	orSplitPattern  = regexp.MustCompile(`(?i)\s+OR\s+`)
	disjunctPattern = regexp.MustCompile(`^([\w.]+)\s*=\s*(\S+)$`)
)

// OrChainToInRule folds `WHERE col = v1 OR col = v2 OR ...` into
// `WHERE col IN (v1, v2, ...)`. The fold only applies when every disjunct
// compares the identical left-hand column; mixed-direction chains
// (`v = col OR col = v`) are unsupported. Values are carried over verbatim.
type OrChainToInRule struct{}

// NewOrChainToInRule creates a new OR chain folding rule.
func NewOrChainToInRule() *OrChainToInRule {
	return &OrChainToInRule{}
}

// Name returns the rule name.
func (*OrChainToInRule) Name() string {
	return "OrChainToInRule"
}

// MinTier returns the lowest tier at which the rule runs.
func (*OrChainToInRule) MinTier() Tier {
	return TierSafe
}

// Apply folds matching OR chains. The regexp engine has no backreferences,
// so the chain is matched with a generic column in each disjunct and the
// identical-column requirement is enforced here.
func (*OrChainToInRule) Apply(sql string) (string, []Change) {
	var changes []Change
	rewritten := orChainPattern.ReplaceAllStringFunc(sql, func(match string) string {
		m := orChainPattern.FindStringSubmatch(match)
		column := m[1]
		values := []string{m[2]}
		for _, part := range orSplitPattern.Split(m[3], -1) {
			if part == "" {
				continue
			}
			disjunct := disjunctPattern.FindStringSubmatch(part)
			if disjunct == nil || !strings.EqualFold(disjunct[1], column) {
				// Not a uniform chain; leave the whole clause alone.
				return match
			}
			values = append(values, disjunct[2])
		}
		changes = append(changes, Change{Description: "Converted OR chain to IN() list"})
		return "WHERE " + column + " IN (" + strings.Join(values, ", ") + ")"
	})
	return rewritten, changes
}
