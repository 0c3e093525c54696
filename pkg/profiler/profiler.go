package profiler

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/turboindex/turboindex/pkg/db"
)

// Profile executes the query iterations times sequentially against conn,
// timing each run and counting returned rows, and collects EXPLAIN output
// once up front. The mysqlVersion label is carried through for
// version-aware reporting.
func Profile(ctx context.Context, conn *sql.DB, query string, iterations int, mysqlVersion string) (*Result, error) {
	if iterations <= 0 {
		iterations = 1
	}

	serverVersion := db.ServerVersion(ctx, conn)

	explainRows, err := db.Explain(ctx, conn, query)
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return nil, errors.Wrapf(err, "query execution failed on iteration %d", i+1)
		}

		var rowsReturned *int
		count := 0
		for rows.Next() {
			count++
		}
		if err := rows.Err(); err == nil {
			rowsReturned = &count
		}
		rows.Close()
		elapsed := time.Since(start)

		samples = append(samples, Sample{
			Iteration:       i + 1,
			ExecutionTimeMs: float64(elapsed) / float64(time.Millisecond),
			RowsReturned:    rowsReturned,
		})
	}

	return &Result{
		Query:         query,
		Samples:       samples,
		ExplainRows:   explainRows,
		MySQLVersion:  mysqlVersion,
		ServerVersion: serverVersion,
	}, nil
}
