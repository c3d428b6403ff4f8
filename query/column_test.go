package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	users := NewTable("users")
	assert.Equal(t, "users", users.String())
	assert.Equal(t, "users", users.Qualifier())

	u := AliasedTable("users", "u")
	assert.Equal(t, "users AS u", u.String())
	assert.Equal(t, "u", u.Qualifier())
	assert.Equal(t, "users", u.Name())
	assert.Equal(t, users.As("u"), u)
}

func TestColumnNames(t *testing.T) {
	users := NewTable("users")
	id := NewColumn[int64](users, "id")
	assert.Equal(t, "id", id.Name())
	assert.Equal(t, "id", id.String())
	assert.Equal(t, "users.id", id.QualifiedName())
	assert.Equal(t, "users", id.TableName())

	aliased := NewColumn[int64](AliasedTable("users", "u"), "id")
	assert.Equal(t, "u.id", aliased.QualifiedName())

	assert.Equal(t, "score", Col("score").QualifiedName())
}

func TestColumnAliasIsIdempotent(t *testing.T) {
	name := NewColumn[string](NewTable("users"), "name")
	once := Select(name.As("n")).From("users").SQL()
	twice := Select(name.As("n").As("n")).From("users").SQL()
	assert.Equal(t, "SELECT name AS n FROM users", once)
	assert.Equal(t, once, twice)

	ref := NewRef("x").As("y")
	assert.Equal(t, ref.String(), ref.As("y").String())
}

func TestColumnAsDoesNotMutate(t *testing.T) {
	name := Col("name")
	_ = name.As("n")
	assert.Equal(t, "", name.Alias())
}

func TestTypedComparisons(t *testing.T) {
	age := NewColumn[int](NewTable("users"), "age")
	assert.Equal(t, "age BETWEEN 18 AND 65", age.Between(18, 65).String())
	assert.Equal(t, "age IN (1, 2)", age.In(1, 2).String())
	assert.Equal(t, "age NOT IN (3)", age.NotIn(3).String())

	active := NewColumn[bool](NewTable("users"), "active")
	assert.Equal(t, "active = 1", active.Eq(true).String())
	assert.Equal(t, "active != 0", active.Ne(false).String())

	name := NewColumn[string](NewTable("users"), "name")
	assert.Equal(t, "name LIKE 'A%'", name.Like("A%").String())
	assert.Equal(t, "name = 'O''Hara'", name.Eq("O'Hara").String())
}

func TestColumnRefRender(t *testing.T) {
	users := NewTable("users")
	id := NewColumn[int64](users, "id")

	tests := []struct {
		name string
		ref  ColumnRef
		want string
	}{
		{"bare", NewRef("id"), "id"},
		{"aliased", NewRef("id").As("user_id"), "id AS user_id"},
		{"count", Count("*"), "COUNT(*)"},
		{"count column", Count(id).As("n"), "COUNT(id) AS n"},
		{"sum", Sum("amount"), "SUM(amount)"},
		{"avg", Avg("score"), "AVG(score)"},
		{"min", Min("age"), "MIN(age)"},
		{"max", Max("age"), "MAX(age)"},
		{"group concat", GroupConcat("name"), "GROUP_CONCAT(name)"},
		{"as aggregate", As(Sum("amount"), "total"), "SUM(amount) AS total"},
		{"as column", As(id, "key"), "id AS key"},
		{"all", AllOf(users), "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}

func TestJoinRender(t *testing.T) {
	j := Join{Kind: LeftJoin, Table: "orders o", On: "u.id = o.user_id"}
	assert.Equal(t, "LEFT JOIN orders o ON u.id = o.user_id", j.String())

	assert.Equal(t, "CROSS JOIN tags", Join{Kind: CrossJoin, Table: "tags"}.String())
	assert.Equal(t, "FULL JOIN", FullJoin.String())
	assert.Equal(t, "RIGHT JOIN", RightJoin.String())
	assert.Equal(t, "INNER JOIN", InnerJoin.String())
}
