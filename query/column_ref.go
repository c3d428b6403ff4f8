package query

import (
	"fmt"
	"strings"
)

// Aggregate is the function wrapped around a selected column.
type Aggregate uint8

const (
	AggNone Aggregate = iota
	AggCount
	AggSum
	AggAvg
	AggMin
	AggMax
	AggGroupConcat
)

var aggregateNames = [...]string{
	AggNone:        "",
	AggCount:       "COUNT",
	AggSum:         "SUM",
	AggAvg:         "AVG",
	AggMin:         "MIN",
	AggMax:         "MAX",
	AggGroupConcat: "GROUP_CONCAT",
}

// String returns the SQL function name, or "" for AggNone.
func (a Aggregate) String() string {
	if int(a) < len(aggregateNames) {
		return aggregateNames[a]
	}
	return ""
}

// Selector is anything that can appear in a select list.
type Selector interface {
	Ref() ColumnRef
}

// ColumnRef is a select-list item: a column, an optional aggregate function
// and an optional output alias.
type ColumnRef struct {
	name  string
	agg   Aggregate
	alias string
}

// NewRef returns a bare column reference.
func NewRef(name string) ColumnRef { return ColumnRef{name: name} }

// Ref implements Selector.
func (r ColumnRef) Ref() ColumnRef { return r }

// Name returns the referenced column.
func (r ColumnRef) Name() string { return r.name }

// Aggregate returns the wrapping function.
func (r ColumnRef) Aggregate() Aggregate { return r.agg }

// Alias returns the output alias, or "".
func (r ColumnRef) Alias() string { return r.alias }

// As returns a copy of r with the output alias set.
func (r ColumnRef) As(alias string) ColumnRef {
	r.alias = alias
	return r
}

// String renders "FN(column) AS alias" with the optional parts omitted.
func (r ColumnRef) String() string {
	var sb strings.Builder
	r.writeTo(&sb)
	return sb.String()
}

func (r ColumnRef) writeTo(sb *strings.Builder) {
	if r.agg != AggNone {
		sb.WriteString(r.agg.String())
		sb.WriteByte('(')
		sb.WriteString(r.name)
		sb.WriteByte(')')
	} else {
		sb.WriteString(r.name)
	}
	if r.alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(r.alias)
	}
}

// Count returns COUNT(col). col is a column name, a ColumnRef or a Selector.
func Count(col any) ColumnRef { return aggregate(AggCount, col) }

// Sum returns SUM(col).
func Sum(col any) ColumnRef { return aggregate(AggSum, col) }

// Avg returns AVG(col).
func Avg(col any) ColumnRef { return aggregate(AggAvg, col) }

// Min returns MIN(col).
func Min(col any) ColumnRef { return aggregate(AggMin, col) }

// Max returns MAX(col).
func Max(col any) ColumnRef { return aggregate(AggMax, col) }

// GroupConcat returns GROUP_CONCAT(col).
func GroupConcat(col any) ColumnRef { return aggregate(AggGroupConcat, col) }

// As returns expr aliased. expr is a column name, a ColumnRef or a Selector.
func As(expr any, alias string) ColumnRef {
	r, ok := refOf(expr)
	if !ok {
		r = NewRef(fmt.Sprint(expr))
	}
	return r.As(alias)
}

// AllOf returns the "*" select-list item.
func AllOf(Table) ColumnRef { return NewRef("*") }

func aggregate(agg Aggregate, col any) ColumnRef {
	r, ok := refOf(col)
	if !ok {
		r = NewRef(fmt.Sprint(col))
	}
	return ColumnRef{name: r.name, agg: agg}
}

// refOf converts a select-list argument to a ColumnRef.
func refOf(v any) (ColumnRef, bool) {
	switch x := v.(type) {
	case string:
		return NewRef(x), true
	case Selector:
		return x.Ref(), true
	}
	return ColumnRef{}, false
}

// nameOf converts a column argument to its bare column name.
func nameOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case Selector:
		r := x.Ref()
		if r.agg != AggNone {
			r.alias = ""
			return r.String(), true
		}
		return r.name, true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
