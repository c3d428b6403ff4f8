package query

// Table is a table name with an optional alias.
type Table struct {
	name  string
	alias string
}

// NewTable returns an unaliased table.
func NewTable(name string) Table { return Table{name: name} }

// AliasedTable returns a table rendered as "name AS alias".
func AliasedTable(name, alias string) Table { return Table{name: name, alias: alias} }

// Name returns the table name.
func (t Table) Name() string { return t.name }

// Alias returns the alias, or "" when the table is not aliased.
func (t Table) Alias() string { return t.alias }

// As returns a copy of t with the alias set.
func (t Table) As(alias string) Table {
	t.alias = alias
	return t
}

// Qualifier is the prefix columns of this table use: the alias when set,
// the table name otherwise.
func (t Table) Qualifier() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// String renders the table as a FROM-list item.
func (t Table) String() string {
	if t.alias == "" {
		return t.name
	}
	return t.name + " AS " + t.alias
}
