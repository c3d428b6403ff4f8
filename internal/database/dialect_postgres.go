package database

import (
	"github.com/cdtdelta/typedsql/query"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresDialect implements Dialect for PostgreSQL through pgx's
// database/sql adapter.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string                            { return "postgres" }
func (d *PostgresDialect) DriverName() string                      { return "pgx" }
func (d *PostgresDialect) DSN(pathOrConnStr string) string         { return pathOrConnStr }
func (d *PostgresDialect) Placeholder(index int) query.Placeholder { return query.Numbered(index) }
func (d *PostgresDialect) SupportsTruncate() bool                  { return true }
