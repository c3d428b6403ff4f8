package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUnsupportedDriver is returned for a driver name with no dialect.
var ErrUnsupportedDriver = errors.New("unsupported driver")

// DialectFor returns the dialect registered under name. "pgx" and
// "postgresql" are accepted for PostgreSQL, "sqlite3" for SQLite.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "sqlite", "sqlite3":
		return &SQLiteDialect{}, nil
	case "postgres", "postgresql", "pgx":
		return &PostgresDialect{}, nil
	case "mysql":
		return &MySQLDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, name)
	}
}

// Open opens a database for the named driver and verifies the connection.
// For SQLite, pathOrConnStr is the file path to the .db file.
// For PostgreSQL and MySQL it is a connection string.
func Open(driver, pathOrConnStr string, opts ...Option) (*Store, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(d.DriverName(), d.DSN(pathOrConnStr))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Verify the connection works
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return NewStore(conn, d, opts...), nil
}
