// Package query builds SQL statements from typed, composable fragments.
//
// Client code creates tables and typed columns once, combines columns and
// values into conditions, and feeds them to a Builder:
//
//	users := query.NewTable("users")
//	id := query.NewColumn[int64](users, "id")
//	active := query.NewColumn[bool](users, "active")
//
//	sql, err := query.Select(id).
//		From(users).
//		Where(active.Eq(true)).
//		OrderBy(id, false).
//		Limit(10).
//		Build()
//
// A Builder keeps its fragments in slots bounded by a Config. Adding past a
// bound records a typed *Error on the builder and leaves the slot untouched.
// With Config.RaiseOnError set the same error is raised with panic.
//
// Text values are rendered as single-quoted literals with embedded quotes
// doubled. Raw fragments (Raw, WhereRaw, Having, join ON text) are emitted
// verbatim and are never validated.
//
// The package does not execute statements or bind parameters. A Builder is
// not safe for concurrent use; distinct builders need no coordination.
package query
