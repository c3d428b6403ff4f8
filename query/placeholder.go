package query

import "strconv"

// PlaceholderStyle identifies the parameter marker syntax.
type PlaceholderStyle byte

const (
	// StylePositional is the anonymous "?" marker.
	StylePositional PlaceholderStyle = '?'
	// StyleNumbered is the "$N" marker used by PostgreSQL.
	StyleNumbered PlaceholderStyle = '$'
	// StyleColon is the ":name" marker.
	StyleColon PlaceholderStyle = ':'
	// StyleAt is the "@name" marker.
	StyleAt PlaceholderStyle = '@'
)

// Placeholder is a parameter marker. It is rendered as-is, never quoted.
type Placeholder struct {
	name  string
	style PlaceholderStyle
}

// NewPlaceholder creates a placeholder from its name. An empty name gives
// the positional "?" marker. A name starting with ':', '@' or '$' keeps that
// style and is stored verbatim; any other name is prefixed with ':'.
func NewPlaceholder(name string) Placeholder {
	if name == "" {
		return Placeholder{style: StylePositional}
	}
	switch s := PlaceholderStyle(name[0]); s {
	case StyleColon, StyleAt, StyleNumbered:
		return Placeholder{name: name, style: s}
	}
	return Placeholder{name: ":" + name, style: StyleColon}
}

// Positional returns the "?" placeholder.
func Positional() Placeholder { return Placeholder{style: StylePositional} }

// Numbered returns the "$n" placeholder.
func Numbered(n int) Placeholder {
	return Placeholder{name: "$" + strconv.Itoa(n), style: StyleNumbered}
}

// Name returns the stored marker name including its prefix. It is empty for
// positional placeholders.
func (p Placeholder) Name() string { return p.name }

// Style returns the marker syntax.
func (p Placeholder) Style() PlaceholderStyle {
	if p.style == 0 {
		return StylePositional
	}
	return p.style
}

// String renders the marker.
func (p Placeholder) String() string {
	if p.Style() == StylePositional {
		return "?"
	}
	return p.name
}
