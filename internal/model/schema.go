package model

import (
	"time"

	"github.com/cdtdelta/typedsql/query"
)

// UsersTable describes the users table.
type UsersTable struct {
	query.Table
	ID        query.Column[int64]
	Name      query.Column[string]
	Email     query.Column[string]
	Active    query.Column[bool]
	Status    query.Column[UserStatus]
	CreatedAt query.Column[string]
}

// OrdersTable describes the orders table.
type OrdersTable struct {
	query.Table
	ID     query.Column[int64]
	UserID query.Column[int64]
	Total  query.Column[float64]
}

// TasksTable describes the tasks table.
type TasksTable struct {
	query.Table
	ID         query.Column[int64]
	Title      query.Column[string]
	Status     query.Column[Priority]
	AssignedTo query.Column[string]
	CreatedAt  query.Column[time.Time]
	Priority   query.Column[int]
}

// UserProfilesTable describes the user_profiles table.
type UserProfilesTable struct {
	query.Table
	UserID      query.Column[int64]
	ProfileData query.Column[string]
}

var (
	Users        = newUsers(query.NewTable("users"))
	Orders       = newOrders(query.NewTable("orders"))
	Tasks        = newTasks(query.NewTable("tasks"))
	UserProfiles = newUserProfiles(query.NewTable("user_profiles"))
)

func newUsers(t query.Table) UsersTable {
	return UsersTable{
		Table:     t,
		ID:        query.NewColumn[int64](t, "id"),
		Name:      query.NewColumn[string](t, "name"),
		Email:     query.NewColumn[string](t, "email"),
		Active:    query.NewColumn[bool](t, "active"),
		Status:    query.NewColumn[UserStatus](t, "status"),
		CreatedAt: query.NewColumn[string](t, "created_at"),
	}
}

func newOrders(t query.Table) OrdersTable {
	return OrdersTable{
		Table:  t,
		ID:     query.NewColumn[int64](t, "id"),
		UserID: query.NewColumn[int64](t, "user_id"),
		Total:  query.NewColumn[float64](t, "total"),
	}
}

func newTasks(t query.Table) TasksTable {
	return TasksTable{
		Table:      t,
		ID:         query.NewColumn[int64](t, "id"),
		Title:      query.NewColumn[string](t, "title"),
		Status:     query.NewColumn[Priority](t, "status"),
		AssignedTo: query.NewColumn[string](t, "assigned_to"),
		CreatedAt:  query.NewColumn[time.Time](t, "created_at"),
		Priority:   query.NewColumn[int](t, "priority"),
	}
}

func newUserProfiles(t query.Table) UserProfilesTable {
	return UserProfilesTable{
		Table:       t,
		UserID:      query.NewColumn[int64](t, "user_id"),
		ProfileData: query.NewColumn[string](t, "profile_data"),
	}
}

// As returns the users table under alias; its columns are qualified with
// the alias.
func (t UsersTable) As(alias string) UsersTable { return newUsers(t.Table.As(alias)) }

// As returns the orders table under alias.
func (t OrdersTable) As(alias string) OrdersTable { return newOrders(t.Table.As(alias)) }

// As returns the tasks table under alias.
func (t TasksTable) As(alias string) TasksTable { return newTasks(t.Table.As(alias)) }

// As returns the user_profiles table under alias.
func (t UserProfilesTable) As(alias string) UserProfilesTable {
	return newUserProfiles(t.Table.As(alias))
}

// SchemaSQL creates the sample tables. The statements are portable across
// SQLite, PostgreSQL and MySQL; booleans and enums are stored as integers,
// matching how they render.
var SchemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		active INTEGER NOT NULL DEFAULT 0,
		status INTEGER NOT NULL DEFAULT 0,
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		total DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		status INTEGER NOT NULL DEFAULT 0,
		assigned_to TEXT,
		created_at TEXT,
		priority INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id INTEGER PRIMARY KEY,
		profile_data TEXT
	)`,
}
