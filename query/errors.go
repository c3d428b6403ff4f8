package query

import "errors"

// ErrorKind classifies builder errors.
type ErrorKind uint8

const (
	NoError ErrorKind = iota
	TooManyColumns
	TooManyConditions
	TooManyJoins
	TooManyOrderBy
	TooManyGroupBy
	EmptyTable
	InvalidColumn
	InvalidCondition
)

var errorKindNames = [...]string{
	NoError:           "None",
	TooManyColumns:    "TooManyColumns",
	TooManyConditions: "TooManyConditions",
	TooManyJoins:      "TooManyJoins",
	TooManyOrderBy:    "TooManyOrderBy",
	TooManyGroupBy:    "TooManyGroupBy",
	EmptyTable:        "EmptyTable",
	InvalidColumn:     "InvalidColumn",
	InvalidCondition:  "InvalidCondition",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "Unknown"
}

// Error is a builder error: a kind and a short message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return "query: " + e.Message }

// Is matches any *Error of the same kind, so errors.Is(err, ErrEmptyTable)
// holds regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrTooManyColumns    = &Error{Kind: TooManyColumns, Message: "too many columns"}
	ErrTooManyConditions = &Error{Kind: TooManyConditions, Message: "too many conditions"}
	ErrTooManyJoins      = &Error{Kind: TooManyJoins, Message: "too many joins"}
	ErrTooManyOrderBy    = &Error{Kind: TooManyOrderBy, Message: "too many ORDER BY columns"}
	ErrTooManyGroupBy    = &Error{Kind: TooManyGroupBy, Message: "too many GROUP BY columns"}
	ErrEmptyTable        = &Error{Kind: EmptyTable, Message: "table name is empty"}
	ErrInvalidColumn     = &Error{Kind: InvalidColumn, Message: "invalid column"}
	ErrInvalidCondition  = &Error{Kind: InvalidCondition, Message: "invalid condition"}
)

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the kind of err when it is an *Error, NoError otherwise.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}
