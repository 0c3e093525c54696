package rewriter

import (
	"strings"

	"github.com/pkg/errors"
)

// Tier is the rewrite safety tier gating which rules are eligible to run.
// Tiers are strictly ordered: safe < moderate < aggressive, and each tier
// runs every rule of the tiers below it.
type Tier string

const (
	// TierSafe runs only transformations that preserve query semantics for
	// any input (NULL comparison fixes, OR chain folding, YEAR() ranges).
	TierSafe Tier = "safe"
	// TierModerate additionally enables schema-aware transformations such
	// as SELECT * expansion.
	TierModerate Tier = "moderate"
	// TierAggressive is a superset of moderate. No aggressive-only rules
	// exist yet; the tier is accepted and recorded so they can be added
	// without changing the contract.
	TierAggressive Tier = "aggressive"
)

var tierRank = map[Tier]int{
	TierSafe:       0,
	TierModerate:   1,
	TierAggressive: 2,
}

// ParseTier parses a tier token case-insensitively. An unrecognized token is
// a caller configuration bug and is reported loudly rather than defaulted.
func ParseTier(s string) (Tier, error) {
	tier := Tier(strings.ToLower(s))
	if _, ok := tierRank[tier]; !ok {
		return "", errors.Errorf("unsupported rewrite tier: %s (expected safe, moderate or aggressive)", s)
	}
	return tier, nil
}

// AtLeast reports whether t grants the capabilities of min.
func (t Tier) AtLeast(min Tier) bool {
	return tierRank[t] >= tierRank[min]
}

func (t Tier) valid() bool {
	_, ok := tierRank[t]
	return ok
}
