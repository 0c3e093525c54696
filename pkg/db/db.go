// Package db handles MySQL connections and EXPLAIN collection for the CLI
// collaborators. The core analysis packages never import it; they only
// consume the plan rows it produces.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"github.com/turboindex/turboindex/pkg/plan"
)

// Config carries MySQL connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN builds a driver DSN from the config, defaulting host and port.
func (c Config) DSN() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 3306
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.DBName = c.Database
	return cfg.FormatDSN()
}

// Open opens and pings a MySQL connection pool.
func Open(cfg Config) (*sql.DB, error) {
	conn, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mysql connection")
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "failed to connect to mysql at %s", cfg.DSN())
	}
	return conn, nil
}

// Explain runs EXPLAIN for the query and maps each result row to a plan.Row
// keyed by the EXPLAIN column names. NULL values are kept as nil.
func Explain(ctx context.Context, conn *sql.DB, query string) ([]plan.Row, error) {
	rows, err := conn.QueryContext(ctx, "EXPLAIN "+query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run EXPLAIN")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read EXPLAIN columns")
	}

	var planRows []plan.Row
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(sql.RawBytes)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, errors.Wrap(err, "failed to scan EXPLAIN row")
		}

		row := plan.Row{}
		for i, column := range columns {
			raw := *values[i].(*sql.RawBytes)
			if raw == nil {
				row[column] = nil
				continue
			}
			row[column] = string(raw)
		}
		planRows = append(planRows, row)
	}
	return planRows, errors.Wrap(rows.Err(), "failed to iterate EXPLAIN rows")
}

// ServerVersion probes the server version. It is best effort and returns an
// empty string when the probe fails.
func ServerVersion(ctx context.Context, conn *sql.DB) string {
	var version string
	if err := conn.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version); err != nil {
		return ""
	}
	return version
}
