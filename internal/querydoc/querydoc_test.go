package querydoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/typedsql/query"
)

func render(t *testing.T, src string) string {
	t.Helper()
	docs, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	b, err := docs[0].Builder(query.DefaultConfig())
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	return sql
}

func TestSelectDocument(t *testing.T) {
	src := `
name: active users
select: [id, name]
from: users
where:
  - column: active
    op: "="
    value: true
order_by:
  - column: name
limit: 10
`
	assert.Equal(t, "SELECT id, name FROM users WHERE active = 1 ORDER BY name ASC LIMIT 10", render(t, src))
}

func TestFullSelectDocument(t *testing.T) {
	src := `
select:
  - u.name
  - {column: o.id, agg: count, as: orders}
distinct: true
from: users u
joins:
  - kind: left
    table: orders o
    on: u.id = o.user_id
  - kind: cross
    table: regions
where:
  - between: {column: u.age, low: 18, high: 65}
  - in: {column: u.status, values: [1, 2]}
  - not_in: {column: u.name, values: ["root"]}
  - like: {column: u.email, pattern: "%@example.com"}
  - is_not_null: u.email
  - column: u.score
    op: ge
    value: 2.5
  - any:
      - is_null: u.deleted_at
      - all:
          - raw: u.deleted_at > '2024-01-01'
          - not: {column: u.banned, op: eq, value: true}
  - exists: SELECT 1 FROM payments p WHERE p.user_id = u.id
group_by: [u.name]
having: COUNT(o.id) > 1
order_by:
  - {column: orders, desc: true}
limit: 5
offset: 10
`
	want := "SELECT DISTINCT u.name, COUNT(o.id) AS orders FROM users u " +
		"LEFT JOIN orders o ON u.id = o.user_id CROSS JOIN regions " +
		"WHERE u.age BETWEEN 18 AND 65 AND u.status IN (1, 2) AND u.name NOT IN ('root') " +
		"AND u.email LIKE '%@example.com' AND u.email IS NOT NULL AND u.score >= 2.5 " +
		"AND (u.deleted_at IS NULL) OR ((u.deleted_at > '2024-01-01') AND (NOT (u.banned = 1))) " +
		"AND EXISTS (SELECT 1 FROM payments p WHERE p.user_id = u.id) " +
		"GROUP BY u.name HAVING COUNT(o.id) > 1 ORDER BY orders DESC LIMIT 5 OFFSET 10"
	assert.Equal(t, want, render(t, src))
}

func TestInsertKeepsColumnOrder(t *testing.T) {
	src := `
insert: users
values:
  name: O'Brien
  email: null
  age: 30
  id: {param: id}
`
	assert.Equal(t, "INSERT INTO users (name, email, age, id) VALUES ('O''Brien', NULL, 30, :id)", render(t, src))
}

func TestOtherStatements(t *testing.T) {
	assert.Equal(t, "UPDATE t SET x = 1, y = 'z' WHERE id = 42",
		render(t, "update: t\nset: {x: 1, y: z}\nwhere: [{column: id, op: '=', value: 42}]\n"))
	assert.Equal(t, "DELETE FROM t WHERE (a = 1) AND ((b = 2) OR (c IS NULL))",
		render(t, `
delete: t
where:
  - all:
      - {column: a, op: "=", value: 1}
      - any:
          - {column: b, op: "=", value: 2}
          - is_null: c
`))
	assert.Equal(t, "TRUNCATE TABLE logs", render(t, "truncate: logs\n"))
	assert.Equal(t, "INSERT OR REPLACE INTO kv (k) VALUES ('a')", render(t, "insert_or_replace: kv\nvalues: {k: a}\n"))
	assert.Equal(t, "SELECT * FROM t", render(t, "select: '*'\nfrom: t\n"))
	assert.Equal(t, "SELECT * FROM t", render(t, "select: []\nfrom: t\n"))
}

func TestDecodeStream(t *testing.T) {
	src := "select: [a]\nfrom: t\n---\ndelete: t\n---\ntruncate: t\n"
	docs, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	kind, err := docs[1].Kind()
	require.NoError(t, err)
	assert.Equal(t, query.DeleteStatement, kind)
}

func TestStatementCount(t *testing.T) {
	for _, src := range []string{"from: t\n", "insert: a\nupdate: b\n"} {
		docs, err := Decode(strings.NewReader(src))
		require.NoError(t, err)
		err = docs[0].Apply(query.New())
		assert.ErrorIs(t, err, ErrUnknownStatement, src)
	}
}

func TestBuilderErrorsSurface(t *testing.T) {
	docs, err := Decode(strings.NewReader("update: t\nwhere: [{column: id, op: '<>', value: 1}]\nset: {a: 1}\n"))
	require.NoError(t, err)
	err = docs[0].Apply(query.New())
	assert.ErrorIs(t, err, query.ErrInvalidCondition)

	docs, err = Decode(strings.NewReader("insert: t\n"))
	require.NoError(t, err)
	b := query.New()
	require.NoError(t, docs[0].Apply(b))
	_, err = b.Build()
	assert.ErrorIs(t, err, query.ErrInvalidCondition)
}

func TestCapacityFromConfig(t *testing.T) {
	docs, err := Decode(strings.NewReader("select: [a, b, c]\nfrom: t\n"))
	require.NoError(t, err)
	_, err = docs[0].Builder(query.Config{MaxColumns: 2})
	assert.ErrorIs(t, err, query.ErrTooManyColumns)
}

func TestBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown join", "select: [a]\nfrom: t\njoins: [{kind: sideways, table: u}]\n"},
		{"unknown aggregate", "select: [{column: a, agg: median}]\nfrom: t\n"},
		{"empty where node", "delete: t\nwhere: [{}]\n"},
		{"nested bad op", "delete: t\nwhere: [{not: {column: a, op: '~', value: 1}}]\n"},
		{"values not mapping", "insert: t\nvalues: [1, 2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := Decode(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Error(t, docs[0].Apply(query.New()))
		})
	}
}

func TestBadValueMapping(t *testing.T) {
	_, err := Decode(strings.NewReader("update: t\nwhere: [{column: a, op: '=', value: {nope: 1}}]\n"))
	assert.Error(t, err)
}

func TestCompileErrors(t *testing.T) {
	c := Cond{Column: "a"}
	_, err := c.Compile()
	assert.ErrorIs(t, err, ErrBadCondition)

	_, err = (&Cond{}).Compile()
	assert.ErrorIs(t, err, ErrBadCondition)
}

func TestDocumentColumns(t *testing.T) {
	docs, err := Decode(strings.NewReader(`
delete: t
where:
  - {column: a, op: "=", value: 1}
  - in: {column: b, values: [1, 2]}
  - any:
      - is_null: c
      - {column: a, op: gt, value: 0}
  - raw: d > 1
  - {column: e}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, docs[0].Columns())
}
