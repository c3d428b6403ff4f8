package model

import (
	"time"

	"github.com/cdtdelta/typedsql/query"
)

// Sample is a named example statement over the sample schema.
type Sample struct {
	Name    string
	Title   string
	Builder *query.Builder
}

// WideConfig is a roomier configuration that raises errors instead of
// recording them.
var WideConfig = query.Config{
	MaxColumns:    64,
	MaxConditions: 32,
	MaxJoins:      8,
	MaxOrderBy:    16,
	MaxGroupBy:    16,
	MaxInValues:   query.DefaultMaxInValues,
	RaiseOnError:  true,
}

const specialTitle = `Test's query with "quotes" and other's special chars`

// Samples returns the example statements, each written once with plain
// names and once with the typed schema. now anchors the time-based samples.
func Samples(now time.Time) []Sample {
	since := now.AddDate(0, 0, -7)

	return []Sample{
		{
			Name:  "default_string",
			Title: "Default configuration (string-based)",
			Builder: query.Select("id", "name", "email").
				From("users").
				Where(query.Col("active").Eq(true)).
				OrderBy("created_at", false).
				Limit(10),
		},
		{
			Name:  "default_typed",
			Title: "Default configuration (typed)",
			Builder: query.Select(Users.ID, Users.Name, Users.Email).
				From(Users).
				Where(Users.Active.Eq(true)).
				OrderBy(Users.CreatedAt, false).
				Limit(10),
		},
		{
			Name:  "custom_string",
			Title: "Custom configuration (string-based)",
			Builder: query.NewWithConfig(WideConfig).
				Select("id", "name", "email").
				From("users").
				Where(query.Col("status").Eq(StatusActive)).
				OrderBy("created_at", false).
				Limit(10),
		},
		{
			Name:  "custom_typed",
			Title: "Custom configuration (typed)",
			Builder: query.NewWithConfig(WideConfig).
				Select(Users.ID, Users.Name, Users.Email).
				From(Users).
				Where(Users.Status.Eq(StatusActive)).
				OrderBy(Users.CreatedAt, false).
				Limit(10),
		},
		{
			Name:  "complex_string",
			Title: "Complex conditions (string-based)",
			Builder: query.Select("*").
				From("tasks").
				Where(query.Col("status").Eq(PriorityHigh).And(
					query.Col("assigned_to").Eq("admin").Or(query.Col("created_at").Ge("2023-01-01")),
				)).
				OrderBy("priority", false),
		},
		{
			Name:  "complex_typed",
			Title: "Complex conditions (typed)",
			Builder: query.Select(query.AllOf(Tasks.Table)).
				From(Tasks).
				Where(Tasks.Status.Eq(PriorityHigh).And(
					Tasks.AssignedTo.Eq("admin").Or(Tasks.CreatedAt.Ge(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))),
				)).
				OrderBy(Tasks.Priority, false),
		},
		{
			Name:  "join_string",
			Title: "Complex join (string-based)",
			Builder: query.Select("u.id", "u.name", "COUNT(o.id) as order_count").
				From("users u").
				LeftJoin("orders o", "u.id = o.user_id").
				InnerJoin("user_profiles up", "u.id = up.user_id").
				Where(query.Col("u.status").Eq(StatusActive)).
				WhereNotNull("u.email").
				GroupBy("u.id").
				GroupBy("u.name").
				Having("COUNT(o.id) > 5").
				OrderBy("order_count", false).
				Limit(100),
		},
		{
			Name:  "join_typed",
			Title: "Complex join (typed)",
			Builder: query.Select(Users.ID, Users.Name, query.Count(Orders.ID.QualifiedName()).As("order_count")).
				From(Users).
				LeftJoin(Orders, Users.ID.EqCol(Orders.UserID)).
				InnerJoin(UserProfiles, Users.ID.EqCol(UserProfiles.UserID)).
				Where(Users.Status.Eq(StatusActive)).
				WhereNotNull(Users.Email).
				GroupBy(Users.ID, Users.Name).
				Having("COUNT(orders.id) > 5").
				OrderBy("order_count", false).
				Limit(100),
		},
		{
			Name:  "join_aliased",
			Title: "Complex join (aliased tables)",
			Builder: aliasedJoin(),
		},
		{
			Name:    "error_handling",
			Title:   "Error handling",
			Builder: query.Update("").Set(Users.Name, "nobody"),
		},
		{
			Name:  "insert_string",
			Title: "Insert (string-based)",
			Builder: query.Insert("users").
				Value("name", "John Doe").
				Value("email", "john@example.com").
				Value("active", true).
				Value("status", StatusActive),
		},
		{
			Name:  "insert_typed",
			Title: "Insert (typed)",
			Builder: query.Insert(Users).
				Value(Users.Name, "John Doe").
				Value(Users.Email, "john@example.com").
				Value(Users.Active, true).
				Value(Users.Status, StatusActive),
		},
		{
			Name:  "update_string",
			Title: "Update (string-based)",
			Builder: query.Update("users").
				Set("name", "Jane Doe").
				Set("status", StatusActive).
				Where(query.Col("id").Eq(42)),
		},
		{
			Name:  "update_typed",
			Title: "Update (typed)",
			Builder: query.Update(Users).
				Set(Users.Name, "Jane Doe").
				Set(Users.Status, StatusActive).
				Where(Users.ID.Eq(42)),
		},
		{
			Name:  "delete_string",
			Title: "Delete (string-based)",
			Builder: query.DeleteFrom("users").
				Where(query.Col("status").Eq(StatusInactive)),
		},
		{
			Name:  "delete_typed",
			Title: "Delete (typed)",
			Builder: query.DeleteFrom(Users).
				Where(Users.Status.Eq(StatusInactive)),
		},
		{
			Name:  "special_string",
			Title: "Special string handling (string-based)",
			Builder: query.Select("id", "title").
				From("tasks").
				Where(query.Col("title").Eq(specialTitle)),
		},
		{
			Name:  "special_typed",
			Title: "Special string handling (typed)",
			Builder: query.Select(Tasks.ID, Tasks.Title).
				From(Tasks).
				Where(Tasks.Title.Eq(specialTitle)),
		},
		{
			Name:  "time_typed",
			Title: "Timestamps (typed)",
			Builder: query.Select(Tasks.ID, Tasks.Title, Tasks.CreatedAt).
				From(Tasks).
				Where(Tasks.CreatedAt.Ge(since).And(Tasks.Title.Eq(specialTitle))).
				OrderBy(Tasks.CreatedAt, true),
		},
	}
}

func aliasedJoin() *query.Builder {
	u := Users.As("u")
	o := Orders.As("o")
	up := UserProfiles.As("up")

	return query.Select(u.ID.QualifiedName(), u.Name.QualifiedName(), query.Count(o.ID.QualifiedName()).As("order_count")).
		From(u).
		LeftJoin(o, u.ID.EqCol(o.UserID)).
		InnerJoin(up, u.ID.EqCol(up.UserID)).
		Where(query.Col(u.Status.QualifiedName()).Eq(StatusActive)).
		WhereNotNull(u.Email.QualifiedName()).
		GroupBy(u.ID.QualifiedName(), u.Name.QualifiedName()).
		Having(query.Count(o.ID.QualifiedName()).String() + " > 5").
		OrderBy("order_count", false).
		Limit(100)
}
