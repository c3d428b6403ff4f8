package query

import "reflect"

// Column is a column of a table whose values have Go type T. T is never
// rendered; it restricts which values the comparison methods accept.
//
//	age := query.NewColumn[int](users, "age")
//	age.Between(18, 65) // ok
//	age.Eq("eighteen")  // does not compile
type Column[T any] struct {
	table string
	name  string
	alias string
}

// NewColumn returns the column name of table t.
func NewColumn[T any](t Table, name string) Column[T] {
	return Column[T]{table: t.Qualifier(), name: name}
}

// Col returns an untyped column with no owning table.
func Col(name string) Column[any] {
	return Column[any]{name: name}
}

// Name returns the bare column name.
func (c Column[T]) Name() string { return c.name }

// TableName returns the qualifier of the owning table, or "".
func (c Column[T]) TableName() string { return c.table }

// Alias returns the output alias used when the column is selected.
func (c Column[T]) Alias() string { return c.alias }

// As returns a copy of c that is selected as alias.
func (c Column[T]) As(alias string) Column[T] {
	c.alias = alias
	return c
}

// QualifiedName returns "table.column", or the bare name when the column
// has no table.
func (c Column[T]) QualifiedName() string {
	return qualify(c.table, c.name, c.table != "")
}

// Ref implements Selector.
func (c Column[T]) Ref() ColumnRef {
	return ColumnRef{name: c.name, alias: c.alias}
}

// String returns the bare column name.
func (c Column[T]) String() string { return c.name }

func (c Column[T]) Eq(v T) Condition { return compare(c.name, Equal, ValueOf(v)) }
func (c Column[T]) Ne(v T) Condition { return compare(c.name, NotEqual, ValueOf(v)) }
func (c Column[T]) Lt(v T) Condition { return compare(c.name, Less, ValueOf(v)) }
func (c Column[T]) Le(v T) Condition { return compare(c.name, LessOrEqual, ValueOf(v)) }
func (c Column[T]) Gt(v T) Condition { return compare(c.name, Greater, ValueOf(v)) }
func (c Column[T]) Ge(v T) Condition { return compare(c.name, GreaterOrEqual, ValueOf(v)) }

// Like returns "column LIKE 'pattern'".
func (c Column[T]) Like(pattern string) Condition {
	return compare(c.name, Like, Text(pattern))
}

// NotLike returns "column NOT LIKE 'pattern'".
func (c Column[T]) NotLike(pattern string) Condition {
	return compare(c.name, NotLike, Text(pattern))
}

// Compare returns "column op value" for any value, including placeholders.
// An unsupported operator yields an invalid condition.
func (c Column[T]) Compare(op Operator, v any) Condition {
	if !op.Valid() {
		return Condition{}
	}
	return compare(c.name, op, ValueOf(v))
}

// Between returns "column BETWEEN lo AND hi".
func (c Column[T]) Between(lo, hi T) Condition {
	return between(c.name, ValueOf(lo), ValueOf(hi))
}

// In returns "column IN (...)". Values past DefaultMaxInValues are dropped.
func (c Column[T]) In(vs ...T) Condition {
	return in(c.name, false, valuesOf(vs), DefaultMaxInValues)
}

// NotIn returns "column NOT IN (...)". Values past DefaultMaxInValues are
// dropped.
func (c Column[T]) NotIn(vs ...T) Condition {
	return in(c.name, true, valuesOf(vs), DefaultMaxInValues)
}

func (c Column[T]) IsNull() Condition    { return isNull(c.name) }
func (c Column[T]) IsNotNull() Condition { return isNotNull(c.name) }

// EqCol compares two columns of the same type. Both sides are qualified
// with their table when both have one.
func (c Column[T]) EqCol(o Column[T]) Condition { return c.cmpCol(Equal, o) }
func (c Column[T]) NeCol(o Column[T]) Condition { return c.cmpCol(NotEqual, o) }
func (c Column[T]) LtCol(o Column[T]) Condition { return c.cmpCol(Less, o) }
func (c Column[T]) LeCol(o Column[T]) Condition { return c.cmpCol(LessOrEqual, o) }
func (c Column[T]) GtCol(o Column[T]) Condition { return c.cmpCol(Greater, o) }
func (c Column[T]) GeCol(o Column[T]) Condition { return c.cmpCol(GreaterOrEqual, o) }

func (c Column[T]) cmpCol(op Operator, o Column[T]) Condition {
	return compareColumns(c.table, c.name, op, o.table, o.name)
}

// valuesOf converts list operands. A single slice or array argument other
// than a byte slice is the list itself.
func valuesOf[T any](vs []T) []Value {
	if len(vs) == 1 {
		if list, ok := expandList(vs[0]); ok {
			return list
		}
	}
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = ValueOf(v)
	}
	return out
}

func expandList(v any) ([]Value, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	default:
		return nil, false
	}
	out := make([]Value, rv.Len())
	for i := range out {
		out[i] = ValueOf(rv.Index(i).Interface())
	}
	return out, true
}
