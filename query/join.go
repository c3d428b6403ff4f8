package query

import "strings"

// JoinKind is the type of a JOIN clause.
type JoinKind uint8

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

var joinKeywords = [...]string{
	InnerJoin: "INNER JOIN",
	LeftJoin:  "LEFT JOIN",
	RightJoin: "RIGHT JOIN",
	FullJoin:  "FULL JOIN",
	CrossJoin: "CROSS JOIN",
}

// String returns the SQL keyword pair, e.g. "LEFT JOIN".
func (k JoinKind) String() string {
	if int(k) < len(joinKeywords) {
		return joinKeywords[k]
	}
	return joinKeywords[InnerJoin]
}

// Join is a JOIN clause. The ON text is inserted literally.
type Join struct {
	Kind  JoinKind
	Table string
	On    string
}

// String renders "<KIND> JOIN <table> ON <on>". The ON part is omitted
// when the ON text is empty.
func (j Join) String() string {
	var sb strings.Builder
	j.writeTo(&sb)
	return sb.String()
}

func (j Join) writeTo(sb *strings.Builder) {
	sb.WriteString(j.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(j.Table)
	if j.On != "" {
		sb.WriteString(" ON ")
		sb.WriteString(j.On)
	}
}
