package query

import (
	"strconv"
	"strings"
)

// Build renders the statement. It never panics: a recorded error, a
// missing target table on a non-SELECT statement, or an INSERT or UPDATE
// without values is returned as an *Error. Render errors are recorded
// like any other and stay visible through LastError.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.kind != SelectStatement && b.table == "" {
		b.err = newError(EmptyTable, "table name is empty")
		return "", b.err
	}
	if (b.kind == InsertStatement || b.kind == InsertOrReplaceStatement || b.kind == UpdateStatement) && len(b.values) == 0 {
		b.err = newError(InvalidCondition, b.kind.String()+" without values")
		return "", b.err
	}

	var sb strings.Builder
	sb.Grow(b.estimateSize())

	switch b.kind {
	case SelectStatement:
		b.writeSelect(&sb)
	case InsertStatement, InsertOrReplaceStatement:
		b.writeInsert(&sb)
	case UpdateStatement:
		b.writeUpdate(&sb)
	case DeleteStatement:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
		b.writeWhere(&sb)
	case TruncateStatement:
		sb.WriteString("TRUNCATE TABLE ")
		sb.WriteString(b.table)
	}
	return sb.String(), nil
}

// SQL renders the statement. On error it panics with the *Error when the
// builder raises errors, and otherwise returns a comment of the form
// "/* ERROR: message */".
func (b *Builder) SQL() string {
	s, err := b.Build()
	if err != nil {
		e := err.(*Error)
		if b.cfg.RaiseOnError {
			panic(e)
		}
		return "/* ERROR: " + e.Message + " */"
	}
	return s
}

// String implements fmt.Stringer; it is the same as SQL.
func (b *Builder) String() string { return b.SQL() }

func (b *Builder) writeSelect(sb *strings.Builder) {
	if len(b.ctes) > 0 {
		sb.WriteString("WITH ")
		for i, c := range b.ctes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.name)
			sb.WriteString(" AS (")
			sb.WriteString(c.sql)
			sb.WriteByte(')')
		}
		sb.WriteByte(' ')
	}

	sb.WriteString("SELECT ")
	if b.distinct {
		sb.WriteString("DISTINCT ")
	}
	if len(b.columns) == 0 {
		sb.WriteByte('*')
	}
	for i, c := range b.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.writeTo(sb)
	}

	if b.table != "" {
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	}
	for _, j := range b.joins {
		sb.WriteByte(' ')
		j.writeTo(sb)
	}

	b.writeWhere(sb)

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
		if b.having != "" {
			sb.WriteString(" HAVING ")
			sb.WriteString(b.having)
		}
	}

	for i, o := range b.orderBy {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.column)
		if o.asc {
			sb.WriteString(" ASC")
		} else {
			sb.WriteString(" DESC")
		}
	}

	if b.limit >= 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset >= 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(b.offset))
	}
}

func (b *Builder) writeInsert(sb *strings.Builder) {
	if b.kind == InsertOrReplaceStatement {
		sb.WriteString("INSERT OR REPLACE INTO ")
	} else {
		sb.WriteString("INSERT INTO ")
	}
	sb.WriteString(b.table)
	sb.WriteString(" (")
	for i, a := range b.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.column)
	}
	sb.WriteString(") VALUES (")
	for i, a := range b.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.value.writeTo(sb)
	}
	sb.WriteByte(')')
}

func (b *Builder) writeUpdate(sb *strings.Builder) {
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	for i, a := range b.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.column)
		sb.WriteString(" = ")
		a.value.writeTo(sb)
	}
	b.writeWhere(sb)
}

func (b *Builder) writeWhere(sb *strings.Builder) {
	for i, c := range b.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		c.writeTo(sb)
	}
}

// estimateSize is a rough upper bound of the rendered length, used to size
// the output buffer.
func (b *Builder) estimateSize() int {
	n := 64 + len(b.table) + len(b.having)
	n += 24 * len(b.columns)
	n += 32 * len(b.values)
	n += 48 * len(b.where)
	n += 48 * len(b.joins)
	n += 16 * (len(b.orderBy) + len(b.groupBy))
	for _, c := range b.ctes {
		n += len(c.name) + len(c.sql) + 8
	}
	return n
}
