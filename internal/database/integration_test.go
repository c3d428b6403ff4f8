//go:build integration

package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cdtdelta/typedsql/internal/model"
	"github.com/cdtdelta/typedsql/query"
)

// postgresDSN returns DATABASE_URL when set, otherwise starts a throwaway
// PostgreSQL container.
func postgresDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("typedsql"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgresRoundTrip(t *testing.T) {
	s, err := Open("postgres", postgresDSN(t))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.ApplySchema(ctx, model.SchemaSQL...))
	_, err = s.Exec(ctx, query.Truncate(model.Users))
	require.NoError(t, err)

	for i, name := range []string{"Ann", "O'Brien"} {
		_, err := s.Exec(ctx, query.Insert(model.Users).
			Value(model.Users.ID, i+1).
			Value(model.Users.Name, name).
			Value(model.Users.Active, i == 0).
			Value(model.Users.Status, model.StatusActive))
		require.NoError(t, err)
	}

	pg := s.Dialect()
	rows, err := s.Query(ctx,
		query.Select(model.Users.Name).
			From(model.Users).
			Where(model.Users.Active.Eq(false)).
			Where(model.Users.Status.Compare(query.Equal, pg.Placeholder(1))),
		int64(model.StatusActive))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	name, _ := rows[0].Get("name")
	assert.Equal(t, "O'Brien", name)

	n, err := s.Exec(ctx, query.Truncate(model.Users))
	require.NoError(t, err)
	assert.Zero(t, n)
}
