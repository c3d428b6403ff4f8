package query

import (
	"fmt"
)

// Statement is the kind of statement a Builder produces.
type Statement uint8

const (
	SelectStatement Statement = iota
	InsertStatement
	InsertOrReplaceStatement
	UpdateStatement
	DeleteStatement
	TruncateStatement
)

var statementNames = [...]string{
	SelectStatement:          "SELECT",
	InsertStatement:          "INSERT",
	InsertOrReplaceStatement: "INSERT OR REPLACE",
	UpdateStatement:          "UPDATE",
	DeleteStatement:          "DELETE",
	TruncateStatement:        "TRUNCATE",
}

func (s Statement) String() string {
	if int(s) < len(statementNames) {
		return statementNames[s]
	}
	return "UNKNOWN"
}

type assignment struct {
	column string
	value  Value
}

type orderTerm struct {
	column string
	asc    bool
}

type cte struct {
	name string
	sql  string
}

// Builder accumulates the fragments of one statement. Methods return the
// builder so calls can be chained. An operation that cannot be applied
// records an *Error (see LastError) and leaves the builder unchanged.
//
// Clauses that do not apply to the current statement kind, such as WHERE on
// an INSERT, are accepted and ignored when rendering.
type Builder struct {
	cfg   Config
	kind  Statement
	table string

	columns []ColumnRef
	values  []assignment
	where   []Condition
	joins   []Join
	orderBy []orderTerm
	groupBy []string
	ctes    []cte

	having   string
	limit    int
	offset   int
	distinct bool

	err *Error
}

// New returns an empty builder using DefaultConfig.
func New() *Builder {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns an empty builder bounded by cfg. Non-positive
// bounds are replaced with the defaults.
func NewWithConfig(cfg Config) *Builder {
	cfg = cfg.normalized()
	return &Builder{
		cfg:     cfg,
		columns: make([]ColumnRef, 0, cfg.MaxColumns),
		values:  make([]assignment, 0, cfg.MaxColumns),
		where:   make([]Condition, 0, cfg.MaxConditions),
		joins:   make([]Join, 0, cfg.MaxJoins),
		orderBy: make([]orderTerm, 0, cfg.MaxOrderBy),
		groupBy: make([]string, 0, cfg.MaxGroupBy),
		limit:   -1,
		offset:  -1,
	}
}

// Select starts a SELECT statement on a new default builder.
func Select(cols ...any) *Builder { return New().Select(cols...) }

// Insert starts an INSERT statement on a new default builder.
func Insert(table any) *Builder { return New().Insert(table) }

// InsertOrReplace starts an INSERT OR REPLACE statement on a new default
// builder.
func InsertOrReplace(table any) *Builder { return New().InsertOrReplace(table) }

// Update starts an UPDATE statement on a new default builder.
func Update(table any) *Builder { return New().Update(table) }

// DeleteFrom starts a DELETE statement on a new default builder.
func DeleteFrom(table any) *Builder { return New().DeleteFrom(table) }

// Truncate starts a TRUNCATE statement on a new default builder.
func Truncate(table any) *Builder { return New().Truncate(table) }

// Config returns the bounds the builder was created with.
func (b *Builder) Config() Config { return b.cfg }

// Kind returns the statement kind.
func (b *Builder) Kind() Statement { return b.kind }

// Table returns the target table as it will be rendered.
func (b *Builder) Table() string { return b.table }

// LastError returns the most recent error, or nil. Errors stay visible
// until Reset.
func (b *Builder) LastError() error {
	if b.err == nil {
		return nil
	}
	return b.err
}

// Reset returns the builder to its freshly constructed state. Slot
// capacity is kept for reuse.
func (b *Builder) Reset() *Builder {
	b.kind = SelectStatement
	b.table = ""
	b.columns = b.columns[:0]
	b.values = b.values[:0]
	b.where = b.where[:0]
	b.joins = b.joins[:0]
	b.orderBy = b.orderBy[:0]
	b.groupBy = b.groupBy[:0]
	b.ctes = b.ctes[:0]
	b.having = ""
	b.limit = -1
	b.offset = -1
	b.distinct = false
	b.err = nil
	return b
}

// fail records err and raises it when the builder is configured to.
func (b *Builder) fail(err *Error) *Builder {
	b.err = err
	if b.cfg.RaiseOnError {
		panic(err)
	}
	return b
}

func (b *Builder) failf(kind ErrorKind, format string, args ...any) *Builder {
	return b.fail(newError(kind, fmt.Sprintf(format, args...)))
}

// Select switches to a SELECT statement and appends cols to the select
// list. Each column is a name, a ColumnRef or a Selector such as a
// Column. With no columns the statement selects "*".
func (b *Builder) Select(cols ...any) *Builder {
	if len(b.columns)+len(cols) > b.cfg.MaxColumns {
		return b.failf(TooManyColumns, "too many columns (max %d)", b.cfg.MaxColumns)
	}
	refs := make([]ColumnRef, 0, len(cols))
	for _, c := range cols {
		r, ok := refOf(c)
		if !ok {
			return b.failf(InvalidColumn, "unsupported column type %T", c)
		}
		refs = append(refs, r)
	}
	b.kind = SelectStatement
	b.columns = append(b.columns, refs...)
	return b
}

// Distinct makes a SELECT return distinct rows.
func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// From sets the table a SELECT reads from. table is a name, a Table or a
// fmt.Stringer.
func (b *Builder) From(table any) *Builder {
	return b.setTable(b.kind, table)
}

// Insert switches to an INSERT INTO table statement.
func (b *Builder) Insert(table any) *Builder {
	return b.setTable(InsertStatement, table)
}

// InsertOrReplace switches to an INSERT OR REPLACE INTO table statement.
func (b *Builder) InsertOrReplace(table any) *Builder {
	return b.setTable(InsertOrReplaceStatement, table)
}

// Update switches to an UPDATE table statement.
func (b *Builder) Update(table any) *Builder {
	return b.setTable(UpdateStatement, table)
}

// DeleteFrom switches to a DELETE FROM table statement.
func (b *Builder) DeleteFrom(table any) *Builder {
	return b.setTable(DeleteStatement, table)
}

// Truncate switches to a TRUNCATE TABLE table statement.
func (b *Builder) Truncate(table any) *Builder {
	return b.setTable(TruncateStatement, table)
}

func (b *Builder) setTable(kind Statement, table any) *Builder {
	name, ok := tableOf(table)
	if !ok {
		return b.failf(EmptyTable, "unsupported table type %T", table)
	}
	b.kind = kind
	b.table = name
	return b
}

func tableOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case Table:
		return x.String(), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

// Value appends a column value to an INSERT. v is converted with ValueOf.
func (b *Builder) Value(col any, v any) *Builder {
	return b.assign(col, v)
}

// Set appends a "column = value" assignment to an UPDATE. v is converted
// with ValueOf.
func (b *Builder) Set(col any, v any) *Builder {
	return b.assign(col, v)
}

func (b *Builder) assign(col any, v any) *Builder {
	if len(b.values) >= b.cfg.MaxColumns {
		return b.failf(TooManyColumns, "too many values (max %d)", b.cfg.MaxColumns)
	}
	name, ok := nameOf(col)
	if !ok {
		return b.failf(InvalidColumn, "unsupported column type %T", col)
	}
	b.values = append(b.values, assignment{column: name, value: ValueOf(v)})
	return b
}

// InnerJoin appends an INNER JOIN. on is the ON text, a Condition or a
// fmt.Stringer; it is inserted literally.
func (b *Builder) InnerJoin(table, on any) *Builder { return b.join(InnerJoin, table, on) }

// LeftJoin appends a LEFT JOIN.
func (b *Builder) LeftJoin(table, on any) *Builder { return b.join(LeftJoin, table, on) }

// RightJoin appends a RIGHT JOIN.
func (b *Builder) RightJoin(table, on any) *Builder { return b.join(RightJoin, table, on) }

// FullJoin appends a FULL JOIN.
func (b *Builder) FullJoin(table, on any) *Builder { return b.join(FullJoin, table, on) }

// CrossJoin appends a CROSS JOIN, which has no ON part.
func (b *Builder) CrossJoin(table any) *Builder { return b.join(CrossJoin, table, "") }

func (b *Builder) join(kind JoinKind, table, on any) *Builder {
	if len(b.joins) >= b.cfg.MaxJoins {
		return b.failf(TooManyJoins, "too many joins (max %d)", b.cfg.MaxJoins)
	}
	name, ok := tableOf(table)
	if !ok || name == "" {
		return b.failf(EmptyTable, "unsupported join table %v", table)
	}
	text, ok := fragmentOf(on)
	if !ok {
		return b.failf(InvalidCondition, "unsupported join condition type %T", on)
	}
	b.joins = append(b.joins, Join{Kind: kind, Table: name, On: text})
	return b
}

// fragmentOf converts a literal SQL fragment argument to text.
func fragmentOf(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

// Where appends a condition. Conditions are joined with AND.
func (b *Builder) Where(c Condition) *Builder {
	if !c.IsValid() {
		return b.failf(InvalidCondition, "invalid condition")
	}
	return b.addCondition(c.Rebind(b.cfg))
}

func (b *Builder) addCondition(c Condition) *Builder {
	if len(b.where) >= b.cfg.MaxConditions {
		return b.failf(TooManyConditions, "too many conditions (max %d)", b.cfg.MaxConditions)
	}
	b.where = append(b.where, c)
	return b
}

func (b *Builder) column(col any) (string, bool) {
	name, ok := nameOf(col)
	if !ok {
		b.failf(InvalidColumn, "unsupported column type %T", col)
	}
	return name, ok
}

// WhereOp appends "col op value". An unknown operator records
// InvalidCondition.
func (b *Builder) WhereOp(col any, op Operator, v any) *Builder {
	if !op.Valid() {
		return b.failf(InvalidCondition, "unsupported operator %q", string(op))
	}
	name, ok := b.column(col)
	if !ok {
		return b
	}
	return b.addCondition(compare(name, op, ValueOf(v)))
}

// WhereIn appends "col IN (values...)", keeping at most MaxInValues values.
func (b *Builder) WhereIn(col any, values ...any) *Builder {
	return b.whereIn(col, false, values)
}

// WhereNotIn appends "col NOT IN (values...)", keeping at most MaxInValues
// values.
func (b *Builder) WhereNotIn(col any, values ...any) *Builder {
	return b.whereIn(col, true, values)
}

func (b *Builder) whereIn(col any, negate bool, values []any) *Builder {
	name, ok := b.column(col)
	if !ok {
		return b
	}
	return b.addCondition(in(name, negate, valuesOf(values), b.cfg.MaxInValues))
}

// WhereBetween appends "col BETWEEN lo AND hi".
func (b *Builder) WhereBetween(col any, lo, hi any) *Builder {
	name, ok := b.column(col)
	if !ok {
		return b
	}
	return b.addCondition(between(name, ValueOf(lo), ValueOf(hi)))
}

// WhereLike appends "col LIKE 'pattern'".
func (b *Builder) WhereLike(col any, pattern string) *Builder {
	return b.WhereOp(col, Like, pattern)
}

// WhereNull appends "col IS NULL".
func (b *Builder) WhereNull(col any) *Builder {
	name, ok := b.column(col)
	if !ok {
		return b
	}
	return b.addCondition(isNull(name))
}

// WhereNotNull appends "col IS NOT NULL".
func (b *Builder) WhereNotNull(col any) *Builder {
	name, ok := b.column(col)
	if !ok {
		return b
	}
	return b.addCondition(isNotNull(name))
}

// WhereExists appends "EXISTS (subquery)". subquery is SQL text or a
// *Builder; a builder that fails to build records its error here.
func (b *Builder) WhereExists(subquery any) *Builder {
	var text string
	switch x := subquery.(type) {
	case *Builder:
		if x == nil {
			return b.failf(InvalidCondition, "nil subquery")
		}
		s, err := x.Build()
		if err != nil {
			return b.fail(err.(*Error))
		}
		text = s
	default:
		s, ok := fragmentOf(subquery)
		if !ok {
			return b.failf(InvalidCondition, "unsupported subquery type %T", subquery)
		}
		text = s
	}
	return b.addCondition(Raw("EXISTS (" + text + ")"))
}

// WhereRaw appends text verbatim as a condition.
func (b *Builder) WhereRaw(text string) *Builder {
	return b.addCondition(Raw(text))
}

// GroupBy appends columns to the GROUP BY list.
func (b *Builder) GroupBy(cols ...any) *Builder {
	if len(b.groupBy)+len(cols) > b.cfg.MaxGroupBy {
		return b.failf(TooManyGroupBy, "too many GROUP BY columns (max %d)", b.cfg.MaxGroupBy)
	}
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		name, ok := nameOf(c)
		if !ok {
			return b.failf(InvalidColumn, "unsupported column type %T", c)
		}
		names = append(names, name)
	}
	b.groupBy = append(b.groupBy, names...)
	return b
}

// Having sets the HAVING text. cond is SQL text or a Condition. HAVING is
// rendered only together with GROUP BY.
func (b *Builder) Having(cond any) *Builder {
	text, ok := fragmentOf(cond)
	if !ok {
		return b.failf(InvalidCondition, "unsupported HAVING type %T", cond)
	}
	b.having = text
	return b
}

// OrderBy appends an ORDER BY term.
func (b *Builder) OrderBy(col any, ascending bool) *Builder {
	if len(b.orderBy) >= b.cfg.MaxOrderBy {
		return b.failf(TooManyOrderBy, "too many ORDER BY columns (max %d)", b.cfg.MaxOrderBy)
	}
	name, ok := b.column(col)
	if !ok {
		return b
	}
	b.orderBy = append(b.orderBy, orderTerm{column: name, asc: ascending})
	return b
}

// Limit sets LIMIT. A negative n removes it.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// Offset sets OFFSET. A negative n removes it.
func (b *Builder) Offset(n int) *Builder {
	b.offset = n
	return b
}

// With prefixes a SELECT with "WITH name AS (subquery)". The subquery is
// rendered immediately; a subquery error is recorded on b.
func (b *Builder) With(name string, sub *Builder) *Builder {
	if sub == nil {
		return b.failf(InvalidCondition, "nil subquery for %s", name)
	}
	s, err := sub.Build()
	if err != nil {
		return b.fail(err.(*Error))
	}
	b.ctes = append(b.ctes, cte{name: name, sql: s})
	return b
}
