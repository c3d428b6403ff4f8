package query

// Default capacity bounds.
const (
	DefaultMaxColumns    = 32
	DefaultMaxConditions = 16
	DefaultMaxJoins      = 4
	DefaultMaxOrderBy    = 8
	DefaultMaxGroupBy    = 8
	DefaultMaxInValues   = 16
)

// Config bounds the slots of a Builder and selects how errors surface.
type Config struct {
	MaxColumns    int // select list, and the INSERT/UPDATE value list
	MaxConditions int
	MaxJoins      int
	MaxOrderBy    int
	MaxGroupBy    int
	MaxInValues   int

	// RaiseOnError makes a rejected operation panic with its *Error in
	// addition to recording it.
	RaiseOnError bool
}

// DefaultConfig returns the default bounds with errors recorded silently.
func DefaultConfig() Config {
	return Config{
		MaxColumns:    DefaultMaxColumns,
		MaxConditions: DefaultMaxConditions,
		MaxJoins:      DefaultMaxJoins,
		MaxOrderBy:    DefaultMaxOrderBy,
		MaxGroupBy:    DefaultMaxGroupBy,
		MaxInValues:   DefaultMaxInValues,
	}
}

// normalized replaces non-positive bounds with their defaults.
func (c Config) normalized() Config {
	fix := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fix(&c.MaxColumns, DefaultMaxColumns)
	fix(&c.MaxConditions, DefaultMaxConditions)
	fix(&c.MaxJoins, DefaultMaxJoins)
	fix(&c.MaxOrderBy, DefaultMaxOrderBy)
	fix(&c.MaxGroupBy, DefaultMaxGroupBy)
	fix(&c.MaxInValues, DefaultMaxInValues)
	return c
}
