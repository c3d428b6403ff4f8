package database

import (
	"github.com/cdtdelta/typedsql/query"

	_ "modernc.org/sqlite"
)

// SQLiteDialect implements Dialect for SQLite through the pure Go
// modernc.org/sqlite driver.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string                            { return "sqlite" }
func (d *SQLiteDialect) DriverName() string                      { return "sqlite" }
func (d *SQLiteDialect) DSN(pathOrConnStr string) string         { return pathOrConnStr }
func (d *SQLiteDialect) Placeholder(index int) query.Placeholder { return query.Positional() }

// SupportsTruncate is false: SQLite has no TRUNCATE, an unqualified DELETE
// is its equivalent.
func (d *SQLiteDialect) SupportsTruncate() bool { return false }
