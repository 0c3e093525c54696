package rewriter

// Change records one applied transformation in application order.
type Change struct {
	Description string `json:"description"`
}

// Rule is a single rewrite transformation. Rules are pure functions over the
// SQL text: Apply returns the (possibly unchanged) statement and the change
// records it produced, and must never fail on malformed input. Keeping the
// interface at the text level allows rules to be swapped for AST-based
// implementations later without touching the engine contract.
type Rule interface {
	// Name returns a stable identifier for the rule.
	Name() string

	// MinTier returns the lowest tier at which the rule runs.
	MinTier() Tier

	// Apply transforms the statement, returning it unchanged with no
	// change records when the rule's pattern does not match.
	Apply(sql string) (string, []Change)
}

// ColumnResolver maps a table name to its ordered column list. It is a
// capability supplied by the caller, typically backed by a SHOW COLUMNS
// query; tests inject stubs. Any error is treated by the engine as "leave
// the statement unchanged" and never propagated.
type ColumnResolver interface {
	Columns(table string) ([]string, error)
}

// ColumnResolverFunc adapts a plain function to the ColumnResolver interface.
type ColumnResolverFunc func(table string) ([]string, error)

// Columns implements ColumnResolver.
func (f ColumnResolverFunc) Columns(table string) ([]string, error) {
	return f(table)
}
