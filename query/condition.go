package query

import (
	"strings"
)

// Logic determines how two conditions are combined.
type Logic int

const (
	AND Logic = iota
	OR
)

// String returns the SQL keyword.
func (l Logic) String() string {
	if l == OR {
		return "OR"
	}
	return "AND"
}

// Operator represents a SQL comparison operator.
type Operator string

const (
	Equal          Operator = "="
	NotEqual       Operator = "!="
	Less           Operator = "<"
	LessOrEqual    Operator = "<="
	Greater        Operator = ">"
	GreaterOrEqual Operator = ">="
	Like           Operator = "LIKE"
	NotLike        Operator = "NOT LIKE"
)

// validOperators is the set of allowed operators for validation.
var validOperators = map[Operator]bool{
	Equal: true, NotEqual: true, Less: true, LessOrEqual: true,
	Greater: true, GreaterOrEqual: true, Like: true, NotLike: true,
}

// Valid reports whether op is one of the supported comparison operators.
func (op Operator) Valid() bool { return validOperators[op] }

type conditionKind uint8

const (
	condInvalid conditionKind = iota
	condRaw
	condIsNull
	condIsNotNull
	condValue
	condColumns
	condBetween
	condIn
	condNotIn
	condCompound
)

// Condition is one WHERE-clause fragment. Conditions are immutable values;
// combining them with And, Or and Not builds a tree whose children are
// shared, never modified.
//
// The zero Condition is invalid and renders as "INVALID CONDITION".
type Condition struct {
	kind    conditionKind
	column  string // column name, or the text of a raw condition
	table   string // left qualifier of a column comparison
	op      Operator
	rtable  string
	rcolumn string
	values  []Value
	left    *Condition
	right   *Condition
	logic   Logic
	negated bool
	// inCap is the MaxInValues regime an IN list was clamped under; zero
	// when the condition does not depend on it.
	inCap int
}

// Raw creates a condition emitted verbatim.
func Raw(text string) Condition {
	return Condition{kind: condRaw, column: text}
}

// compare creates a "column OP value" condition.
func compare(column string, op Operator, v Value) Condition {
	return Condition{kind: condValue, column: column, op: op, values: []Value{v}}
}

func isNull(column string) Condition {
	return Condition{kind: condIsNull, column: column}
}

func isNotNull(column string) Condition {
	return Condition{kind: condIsNotNull, column: column}
}

func between(column string, lo, hi Value) Condition {
	return Condition{kind: condBetween, column: column, values: []Value{lo, hi}}
}

// in creates an IN (or NOT IN) condition keeping at most limit values.
func in(column string, negate bool, values []Value, limit int) Condition {
	if len(values) > limit {
		values = values[:limit]
	}
	kind := condIn
	if negate {
		kind = condNotIn
	}
	return Condition{
		kind:   kind,
		column: column,
		values: append([]Value(nil), values...),
		inCap:  limit,
	}
}

func compareColumns(ltable, lcolumn string, op Operator, rtable, rcolumn string) Condition {
	return Condition{
		kind:    condColumns,
		table:   ltable,
		column:  lcolumn,
		op:      op,
		rtable:  rtable,
		rcolumn: rcolumn,
	}
}

// And combines two conditions with AND.
func And(a, b Condition) Condition { return compound(a, b, AND) }

// Or combines two conditions with OR.
func Or(a, b Condition) Condition { return compound(a, b, OR) }

// Not returns c with its negation toggled.
func Not(c Condition) Condition {
	c.negated = !c.negated
	return c
}

func compound(a, b Condition, logic Logic) Condition {
	inCap := a.inCap
	if inCap == 0 {
		inCap = b.inCap
	}
	return Condition{kind: condCompound, left: &a, right: &b, logic: logic, inCap: inCap}
}

// And returns (c) AND (other).
func (c Condition) And(other Condition) Condition { return And(c, other) }

// Or returns (c) OR (other).
func (c Condition) Or(other Condition) Condition { return Or(c, other) }

// Not returns NOT (c).
func (c Condition) Not() Condition { return Not(c) }

// IsValid reports whether c was built by a constructor.
func (c Condition) IsValid() bool { return c.kind != condInvalid }

// Combine joins conditions with the given logic into a left-leaning tree.
// Invalid conditions are skipped. It returns the zero Condition when
// nothing is left, and the single condition unchanged when one is left.
func Combine(conds []Condition, logic Logic) Condition {
	var result Condition
	for _, c := range conds {
		if !c.IsValid() {
			continue
		}
		if !result.IsValid() {
			result = c
			continue
		}
		result = compound(result, c, logic)
	}
	return result
}

// Rebind adapts c to a builder configured with cfg. A condition whose IN
// lists were clamped under a different MaxInValues is re-rendered into a
// Raw condition, so its text is unchanged.
func (c Condition) Rebind(cfg Config) Condition {
	cfg = cfg.normalized()
	if c.inCap == 0 || c.inCap == cfg.MaxInValues {
		return c
	}
	r := Raw(c.String())
	r.inCap = cfg.MaxInValues
	return r
}

// Columns returns the column names referenced by c, deduplicated, in the
// order they first appear. Raw conditions reference no known columns.
func (c Condition) Columns() []string {
	seen := make(map[string]bool)
	var result []string
	c.collectColumns(seen, &result)
	return result
}

func (c Condition) collectColumns(seen map[string]bool, out *[]string) {
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			*out = append(*out, name)
		}
	}
	switch c.kind {
	case condInvalid, condRaw:
	case condCompound:
		c.left.collectColumns(seen, out)
		c.right.collectColumns(seen, out)
	case condColumns:
		add(qualify(c.table, c.column, c.table != "" && c.rtable != ""))
		add(qualify(c.rtable, c.rcolumn, c.table != "" && c.rtable != ""))
	default:
		add(c.column)
	}
}

// String renders the condition.
func (c Condition) String() string {
	var sb strings.Builder
	c.writeTo(&sb)
	return sb.String()
}

func (c Condition) writeTo(sb *strings.Builder) {
	if c.negated {
		sb.WriteString("NOT (")
	}

	switch c.kind {
	case condRaw:
		sb.WriteString(c.column)

	case condValue:
		sb.WriteString(c.column)
		sb.WriteByte(' ')
		sb.WriteString(string(c.op))
		sb.WriteByte(' ')
		c.values[0].writeTo(sb)

	case condIsNull:
		sb.WriteString(c.column)
		sb.WriteString(" IS NULL")

	case condIsNotNull:
		sb.WriteString(c.column)
		sb.WriteString(" IS NOT NULL")

	case condBetween:
		sb.WriteString(c.column)
		sb.WriteString(" BETWEEN ")
		c.values[0].writeTo(sb)
		sb.WriteString(" AND ")
		c.values[1].writeTo(sb)

	case condIn, condNotIn:
		sb.WriteString(c.column)
		if c.kind == condNotIn {
			sb.WriteString(" NOT IN (")
		} else {
			sb.WriteString(" IN (")
		}
		for i, v := range c.values {
			if i > 0 {
				sb.WriteString(", ")
			}
			v.writeTo(sb)
		}
		sb.WriteByte(')')

	case condColumns:
		both := c.table != "" && c.rtable != ""
		sb.WriteString(qualify(c.table, c.column, both))
		sb.WriteByte(' ')
		sb.WriteString(string(c.op))
		sb.WriteByte(' ')
		sb.WriteString(qualify(c.rtable, c.rcolumn, both))

	case condCompound:
		sb.WriteByte('(')
		c.left.writeTo(sb)
		sb.WriteString(") ")
		sb.WriteString(c.logic.String())
		sb.WriteString(" (")
		c.right.writeTo(sb)
		sb.WriteByte(')')

	default:
		sb.WriteString("INVALID CONDITION")
	}

	if c.negated {
		sb.WriteByte(')')
	}
}

func qualify(table, column string, withTable bool) string {
	if withTable {
		return table + "." + column
	}
	return column
}
