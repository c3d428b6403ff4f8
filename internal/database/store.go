package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/cdtdelta/typedsql/query"
)

// DefaultSlowThreshold is the duration above which a statement is logged
// as slow.
const DefaultSlowThreshold = 100 * time.Millisecond

// Store runs rendered statements against a database/sql connection.
type Store struct {
	conn          *sql.DB
	dialect       Dialect
	logger        *slog.Logger
	slowThreshold time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger statements are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSlowThreshold sets the threshold for slow statement warnings.
// Zero or negative disables them.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *Store) {
		s.slowThreshold = d
	}
}

// NewStore wraps an open connection.
func NewStore(conn *sql.DB, d Dialect, opts ...Option) *Store {
	s := &Store{
		conn:          conn,
		dialect:       d,
		logger:        slog.Default(),
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect { return s.dialect }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Render builds b for this store's dialect. A TRUNCATE is rewritten to an
// unqualified DELETE when the dialect has no TRUNCATE.
func (s *Store) Render(b *query.Builder) (string, error) {
	if b.Kind() == query.TruncateStatement && !s.dialect.SupportsTruncate() && b.LastError() == nil {
		b = query.NewWithConfig(b.Config()).DeleteFrom(b.Table())
	}
	stmt, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("rendering statement: %w", err)
	}
	return stmt, nil
}

// Exec runs a non-SELECT builder and returns the number of affected rows.
// Builder errors are returned without touching the connection.
func (s *Store) Exec(ctx context.Context, b *query.Builder, args ...any) (int64, error) {
	stmt, err := s.Render(b)
	if err != nil {
		return 0, err
	}
	res, err := s.ExecSQL(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

// ExecSQL runs a raw statement such as DDL.
func (s *Store) ExecSQL(ctx context.Context, stmt string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.conn.ExecContext(ctx, stmt, args...)
	s.observe(ctx, "exec", stmt, args, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("executing statement: %w", err)
	}
	return res, nil
}

// ApplySchema runs the DDL statements in a single transaction.
func (s *Store) ApplySchema(ctx context.Context, stmts ...string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		start := time.Now()
		_, err := tx.ExecContext(ctx, stmt)
		s.observe(ctx, "schema", stmt, nil, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return tx.Commit()
}

// Query runs a SELECT builder and returns every row.
func (s *Store) Query(ctx context.Context, b *query.Builder, args ...any) ([]Row, error) {
	stmt, err := s.Render(b)
	if err != nil {
		return nil, err
	}
	return s.QuerySQL(ctx, stmt, args...)
}

// QuerySQL runs a raw SELECT and returns every row.
func (s *Store) QuerySQL(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		s.observe(ctx, "query", stmt, args, time.Since(start), err)
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	s.observe(ctx, "query", stmt, args, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) observe(ctx context.Context, op, stmt string, args []any, d time.Duration, err error) {
	if err != nil {
		s.logger.ErrorContext(ctx, "statement failed", "op", op, "sql", stmt, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "statement", "op", op, "sql", stmt, "args", args, "duration", d)
	if s.slowThreshold > 0 && d > s.slowThreshold {
		s.logger.WarnContext(ctx, "slow query detected", "duration", d, "sql", stmt, "args", args)
	}
}
