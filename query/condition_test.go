package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionRender(t *testing.T) {
	users := NewTable("users")
	orders := NewTable("orders")
	userID := NewColumn[int64](users, "id")
	orderUser := NewColumn[int64](orders, "user_id")
	loose := NewColumn[int64](NewTable(""), "owner")

	tests := []struct {
		name string
		cond Condition
		want string
	}{
		{"invalid", Condition{}, "INVALID CONDITION"},
		{"raw", Raw("score > 2 * bonus"), "score > 2 * bonus"},
		{"eq", Col("a").Eq(1), "a = 1"},
		{"ne text", Col("name").Ne("x"), "name != 'x'"},
		{"lt", Col("a").Lt(2), "a < 2"},
		{"le", Col("a").Le(2), "a <= 2"},
		{"gt", Col("a").Gt(2.5), "a > 2.5"},
		{"ge", Col("a").Ge(2), "a >= 2"},
		{"like", Col("name").Like("J%"), "name LIKE 'J%'"},
		{"not like", Col("name").NotLike("%tmp%"), "name NOT LIKE '%tmp%'"},
		{"is null", Col("c").IsNull(), "c IS NULL"},
		{"is not null", Col("c").IsNotNull(), "c IS NOT NULL"},
		{"between", Col("x").Between(1, 5), "x BETWEEN 1 AND 5"},
		{"in", Col("y").In(10, 20, 30), "y IN (10, 20, 30)"},
		{"not in", Col("s").NotIn("a", "b"), "s NOT IN ('a', 'b')"},
		{"empty in", Col("y").In(), "y IN ()"},
		{"columns qualified", userID.EqCol(orderUser), "users.id = orders.user_id"},
		{"columns one side bare", userID.GeCol(loose), "id >= owner"},
		{"compare placeholder", Col("id").Compare(Equal, Numbered(1)), "id = $1"},
		{"and", Col("a").Eq(1).And(Col("b").Eq(2)), "(a = 1) AND (b = 2)"},
		{"or", Or(Col("a").Eq(1), Col("b").IsNull()), "(a = 1) OR (b IS NULL)"},
		{"not", Col("a").Eq(1).Not(), "NOT (a = 1)"},
		{"not compound", Col("a").Eq(1).And(Col("b").Eq(2)).Not(), "NOT ((a = 1) AND (b = 2))"},
		{
			"nested",
			Col("a").Eq(1).And(Col("b").Eq(2).Or(Col("c").IsNull())),
			"(a = 1) AND ((b = 2) OR (c IS NULL))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.String())
		})
	}
}

func TestDoubleNegationRendersIdentically(t *testing.T) {
	conds := []Condition{
		Col("a").Eq(1),
		Col("a").Eq(1).Or(Col("b").In(1, 2)),
		Raw("1 = 1"),
		Col("c").IsNull().Not(),
	}
	for _, c := range conds {
		assert.Equal(t, c.String(), c.Not().Not().String())
		assert.Equal(t, c.String(), Not(Not(c)).String())
	}
}

func TestCompareRejectsUnknownOperator(t *testing.T) {
	c := Col("a").Compare(Operator("<>"), 1)
	assert.False(t, c.IsValid())
	assert.Equal(t, "INVALID CONDITION", c.String())
}

func TestInDropsOverflow(t *testing.T) {
	vals := make([]any, 40)
	for i := range vals {
		vals[i] = i
	}
	c := Col("y").In(vals...)
	list := strings.TrimSuffix(strings.TrimPrefix(c.String(), "y IN ("), ")")
	assert.Len(t, strings.Split(list, ", "), DefaultMaxInValues)
	assert.True(t, strings.HasSuffix(c.String(), "15)"))
}

func TestInDoesNotAliasCallerSlice(t *testing.T) {
	vals := []any{1, 2, 3}
	c := Col("y").In(vals...)
	vals[0] = 99
	assert.Equal(t, "y IN (1, 2, 3)", c.String())
}

func TestCombine(t *testing.T) {
	a, b, c := Col("a").Eq(1), Col("b").Eq(2), Col("c").Eq(3)

	got := Combine([]Condition{a, {}, b, c}, AND)
	assert.Equal(t, "((a = 1) AND (b = 2)) AND (c = 3)", got.String())

	got = Combine([]Condition{a, b}, OR)
	assert.Equal(t, "(a = 1) OR (b = 2)", got.String())

	got = Combine([]Condition{b}, AND)
	assert.Equal(t, b.String(), got.String())

	assert.False(t, Combine(nil, AND).IsValid())
	assert.False(t, Combine([]Condition{{}, {}}, OR).IsValid())
}

func TestCompoundChildrenAreShared(t *testing.T) {
	left := Col("a").Eq(1)
	both := left.And(Col("b").Eq(2))
	left = left.Not()

	assert.Equal(t, "(a = 1) AND (b = 2)", both.String())
	assert.Equal(t, "NOT (a = 1)", left.String())
}

func TestConditionColumns(t *testing.T) {
	users := NewTable("users")
	orders := NewTable("orders")
	c := Col("a").Eq(1).
		And(Col("b").Between(1, 2)).
		Or(Col("a").IsNull()).
		And(NewColumn[int](users, "id").EqCol(NewColumn[int](orders, "user_id"))).
		And(Raw("z = 1"))

	assert.Equal(t, []string{"a", "b", "users.id", "orders.user_id"}, c.Columns())
	assert.Empty(t, Condition{}.Columns())
}

func TestRebind(t *testing.T) {
	vals := make([]any, 20)
	for i := range vals {
		vals[i] = i
	}
	c := Col("y").In(vals...).And(Col("z").Eq("q"))

	small := DefaultConfig()
	small.MaxInValues = 4
	rebound := c.Rebind(small)
	require.True(t, rebound.IsValid())
	assert.Equal(t, c.String(), rebound.String())
	assert.Empty(t, rebound.Columns(), "rebound condition is raw text")

	same := c.Rebind(DefaultConfig())
	assert.Equal(t, c.String(), same.String())
	assert.Equal(t, []string{"y", "z"}, same.Columns())

	plain := Col("a").Eq(1)
	assert.Equal(t, []string{"a"}, plain.Rebind(small).Columns())
}

func TestOperatorValid(t *testing.T) {
	for _, op := range []Operator{Equal, NotEqual, Less, LessOrEqual, Greater, GreaterOrEqual, Like, NotLike} {
		assert.True(t, op.Valid(), string(op))
	}
	assert.False(t, Operator("DROP").Valid())
	assert.False(t, Operator("").Valid())
}
