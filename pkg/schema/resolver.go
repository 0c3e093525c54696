// Package schema resolves table column lists for schema-aware rewrites.
//
// Resolvers satisfy the rewriter's ColumnResolver capability. The MySQL
// resolver introspects a live connection with SHOW COLUMNS; Cached wraps any
// resolver with an in-memory cache so repeated rewrites of the same table do
// not re-query the server.
package schema

import (
	"database/sql"
	"regexp"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Resolver maps a table name to its ordered column list.
type Resolver interface {
	Columns(table string) ([]string, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(table string) ([]string, error)

// Columns calls f(table).
func (f ResolverFunc) Columns(table string) ([]string, error) {
	return f(table)
}

// MySQLResolver resolves columns from a live MySQL connection.
type MySQLResolver struct {
	db *sql.DB
}

// NewMySQLResolver creates a resolver backed by the given connection pool.
func NewMySQLResolver(conn *sql.DB) *MySQLResolver {
	return &MySQLResolver{db: conn}
}

// Columns returns the table's columns in definition order. The table name is
// validated before interpolation since SHOW COLUMNS cannot take a
// placeholder.
func (r *MySQLResolver) Columns(table string) ([]string, error) {
	if !identifierPattern.MatchString(table) {
		return nil, errors.Errorf("unsafe table identifier: %q", table)
	}

	rows, err := r.db.Query("SHOW COLUMNS FROM `" + table + "`")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list columns for table %s", table)
	}
	defer rows.Close()

	resultColumns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SHOW COLUMNS result shape")
	}

	var columns []string
	for rows.Next() {
		values := make([]any, len(resultColumns))
		for i := range values {
			values[i] = new(sql.RawBytes)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, errors.Wrap(err, "failed to scan SHOW COLUMNS row")
		}
		// Field is the first column of SHOW COLUMNS output.
		columns = append(columns, string(*values[0].(*sql.RawBytes)))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate SHOW COLUMNS rows")
	}
	return columns, nil
}

// Cached wraps a resolver with an in-memory cache. Concurrent lookups of the
// same table are collapsed into a single upstream call.
type Cached struct {
	inner Resolver

	mu    sync.RWMutex
	cache map[string][]string
	sf    singleflight.Group
}

// NewCached creates a caching wrapper around inner.
func NewCached(inner Resolver) *Cached {
	return &Cached{
		inner: inner,
		cache: make(map[string][]string),
	}
}

// Columns returns the cached column list, resolving through the inner
// resolver on the first lookup. Failed lookups are not cached.
func (c *Cached) Columns(table string) ([]string, error) {
	c.mu.RLock()
	if columns, ok := c.cache[table]; ok {
		c.mu.RUnlock()
		return columns, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(table, func() (any, error) {
		c.mu.RLock()
		if columns, ok := c.cache[table]; ok {
			c.mu.RUnlock()
			return columns, nil
		}
		c.mu.RUnlock()

		columns, err := c.inner.Columns(table)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[table] = columns
		c.mu.Unlock()
		return columns, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}
