package types

import "strings"

// Condition is a WHERE predicate. The set of conditions is closed: the SQL
// renderer switches over the concrete types below.
type Condition interface {
	conditionNode()
}

// Eq compares a column with a value. A list value (any slice except []byte)
// becomes membership; an empty list matches nothing.
type Eq struct {
	Column string // "column" or "table.column"
	Value  any
}

// Raw is a SQL fragment with ? placeholders supplied by custom filters.
type Raw struct {
	SQL  string
	Args []any
}

// IncludedEq is Eq on a column of an eagerly joined association. Path is
// the dotted association path from the relation's model; the renderer
// qualifies Column with the alias the join for Path was given.
type IncludedEq struct {
	Path   string
	Column string
	Value  any
}

func (Eq) conditionNode()         {}
func (Raw) conditionNode()        {}
func (IncludedEq) conditionNode() {}

func NewRaw(sql string, args ...any) Raw {
	return Raw{SQL: sql, Args: args}
}

// ColumnRef names a column, optionally qualified by a table or alias.
type ColumnRef struct {
	Table  string
	Column string
}

// ParseColumnRef splits "table.column" at the last dot.
func ParseColumnRef(name string) ColumnRef {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return ColumnRef{Table: name[:i], Column: name[i+1:]}
	}
	return ColumnRef{Column: name}
}

func (c ColumnRef) String() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}
