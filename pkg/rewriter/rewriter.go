// Package rewriter applies heuristic, pattern-based optimization rules to
// MySQL statements.
//
// The engine runs an ordered pipeline of rules over the raw SQL text. Each
// rule is an independent pure function that either transforms the statement
// and records why, or leaves it alone. Rules are gated by a safety tier
// (safe < moderate < aggressive); higher tiers run every rule of the tiers
// below.
//
//	engine := rewriter.New()
//	result, err := engine.Rewrite("SELECT * FROM t WHERE deleted != NULL", rewriter.TierSafe)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.RewrittenSQL)
//
// The engine is total over all string inputs: malformed SQL is never an
// error, it simply matches no rule. The only loud failure is an invalid
// tier, which indicates a caller configuration bug.
package rewriter

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Engine applies the rewrite rule pipeline. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	rules []Rule
}

// New creates an Engine with the standard rule pipeline.
func New() *Engine {
	return &Engine{
		rules: []Rule{
			NewNullComparisonRule(),
			NewOrChainToInRule(),
			NewYearEqualityRule(),
		},
	}
}

// Rewrite applies every rule eligible at the given tier, in pipeline order.
// Identical input and tier always produce an identical Result.
func (e *Engine) Rewrite(sql string, tier Tier) (*Result, error) {
	return e.run(sql, tier, e.rules)
}

// RewriteWithSchema behaves like Rewrite but additionally enables
// schema-aware rules backed by the supplied column resolver. Resolver
// failures never surface; the affected rule leaves the statement unchanged.
func (e *Engine) RewriteWithSchema(sql string, tier Tier, resolver ColumnResolver) (*Result, error) {
	rules := e.rules
	if resolver != nil {
		rules = append(append([]Rule{}, e.rules...), NewSelectStarExpansionRule(resolver))
	}
	return e.run(sql, tier, rules)
}

func (*Engine) run(sql string, tier Tier, rules []Rule) (*Result, error) {
	if !tier.valid() {
		return nil, errors.Errorf("unsupported rewrite tier: %s (expected safe, moderate or aggressive)", string(tier))
	}

	rewritten := sql
	changes := []Change{}
	for _, rule := range rules {
		if !tier.AtLeast(rule.MinTier()) {
			continue
		}
		var applied []Change
		rewritten, applied = rule.Apply(rewritten)
		if len(applied) > 0 {
			slog.Debug("rewrite rule applied", "rule", rule.Name(), "changes", len(applied))
		}
		changes = append(changes, applied...)
	}

	return &Result{
		OriginalSQL:  sql,
		RewrittenSQL: rewritten,
		Mode:         tier,
		Changes:      changes,
	}, nil
}
