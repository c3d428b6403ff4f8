package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/typedsql/internal/model"
	"github.com/cdtdelta/typedsql/query"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", tempDBPath(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.ApplySchema(context.Background(), model.SchemaSQL...))
	return s
}

func seedUsers(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	users := []struct {
		id     int64
		name   string
		email  any
		status model.UserStatus
	}{
		{1, "Ann", "ann@example.com", model.StatusActive},
		{2, "O'Brien", nil, model.StatusInactive},
		{3, "Zoe", "zoe@example.com", model.StatusPending},
	}
	for _, u := range users {
		n, err := s.Exec(ctx, query.Insert(model.Users).
			Value(model.Users.ID, u.id).
			Value(model.Users.Name, u.name).
			Value(model.Users.Email, u.email).
			Value(model.Users.Active, u.status == model.StatusActive).
			Value(model.Users.Status, u.status))
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestInsertAndQuery(t *testing.T) {
	s := createTestStore(t)
	seedUsers(t, s)

	rows, err := s.Query(context.Background(),
		query.Select(model.Users.ID, model.Users.Name).
			From(model.Users).
			Where(model.Users.Status.Ne(model.StatusPending)).
			OrderBy(model.Users.ID, true))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"id", "name"}, rows[0].Columns())
	name, ok := rows[1].Get("name")
	require.True(t, ok)
	assert.Equal(t, "O'Brien", name)

	_, ok = rows[0].Get("missing")
	assert.False(t, ok)
}

func TestUpdateAndDelete(t *testing.T) {
	s := createTestStore(t)
	seedUsers(t, s)
	ctx := context.Background()

	n, err := s.Exec(ctx, query.Update(model.Users).
		Set(model.Users.Email, "obrien@example.com").
		Where(model.Users.Email.IsNull()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Exec(ctx, query.DeleteFrom(model.Users).Where(model.Users.ID.In(1, 3)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err := s.Query(ctx, query.Select(model.Users.Email).From(model.Users))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	email, _ := rows[0].Get("email")
	assert.Equal(t, "obrien@example.com", email)
}

func TestPlaceholderArgs(t *testing.T) {
	s := createTestStore(t)
	seedUsers(t, s)

	rows, err := s.Query(context.Background(),
		query.Select(query.Count("*").As("n")).
			From(model.Users).
			Where(model.Users.Status.Compare(query.GreaterOrEqual, s.Dialect().Placeholder(1))),
		int64(model.StatusActive))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	n, _ := rows[0].Get("n")
	assert.EqualValues(t, 2, n)
}

func TestTruncateRewrittenForSQLite(t *testing.T) {
	s := createTestStore(t)
	seedUsers(t, s)

	stmt, err := s.Render(query.Truncate(model.Users))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users", stmt)

	_, err = s.Exec(context.Background(), query.Truncate(model.Users))
	require.NoError(t, err)

	rows, err := s.Query(context.Background(), query.Select().From(model.Users))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBuilderErrorSkipsDatabase(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Exec(context.Background(), query.Update("").Set("a", 1))
	assert.ErrorIs(t, err, query.ErrEmptyTable)

	_, err = s.Query(context.Background(), query.Insert("users"))
	assert.ErrorIs(t, err, query.ErrInvalidCondition)
}

func TestSQLErrorIsWrapped(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Query(context.Background(), query.Select("nope").From("missing_table"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying")
}

// Every sample statement except the deliberately broken one executes on
// SQLite. join_typed selects bare id from a join, which SQLite rejects as
// ambiguous.
func TestSamplesExecute(t *testing.T) {
	s := createTestStore(t)
	seedUsers(t, s)
	ctx := context.Background()

	for _, sample := range model.Samples(time.Now()) {
		if sample.Name == "error_handling" || sample.Name == "join_typed" {
			continue
		}
		t.Run(sample.Name, func(t *testing.T) {
			var err error
			if sample.Builder.Kind() == query.SelectStatement {
				_, err = s.Query(ctx, sample.Builder)
			} else {
				_, err = s.Exec(ctx, sample.Builder)
			}
			assert.NoError(t, err)
		})
	}
}
