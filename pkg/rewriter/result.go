package rewriter

// Result is the outcome of one rewrite invocation. It is immutable after
// construction; Changes lists applied transformations in application order.
type Result struct {
	OriginalSQL  string   `json:"original_sql"`
	RewrittenSQL string   `json:"rewritten_sql"`
	Mode         Tier     `json:"mode"`
	Changes      []Change `json:"changes"`
}

// Changed reports whether any rule modified the statement.
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}
