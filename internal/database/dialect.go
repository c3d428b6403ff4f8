package database

import "github.com/cdtdelta/typedsql/query"

// Dialect captures what differs between database backends when running
// statements produced by a query.Builder.
type Dialect interface {
	// Name is the name used in configuration ("sqlite", "postgres", "mysql").
	Name() string

	// DriverName returns the database/sql driver name.
	DriverName() string

	// DSN returns the data source name for opening a connection.
	// For SQLite this is the file path; for the others a connection string.
	DSN(pathOrConnStr string) string

	// Placeholder returns the parameter marker for the given 1-based index.
	// SQLite and MySQL: "?" (ignoring index), PostgreSQL: "$1", "$2", etc.
	Placeholder(index int) query.Placeholder

	// SupportsTruncate reports whether TRUNCATE TABLE is available.
	SupportsTruncate() bool
}
