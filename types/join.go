package types

type JoinKind string

const (
	InnerJoin JoinKind = "INNER JOIN"
	LeftJoin  JoinKind = "LEFT JOIN"
)

// ColumnPair is one equality of a join condition.
type ColumnPair struct {
	Left  ColumnRef
	Right ColumnRef
}

// Join is a structured JOIN clause. The relation renders and quotes it, and
// drops a join whose Name is already present.
type Join struct {
	Kind  JoinKind
	Table string
	Alias string
	On    []ColumnPair
}

// Name is the identifier the joined table is visible under.
func (j Join) Name() string {
	if j.Alias != "" {
		return j.Alias
	}
	return j.Table
}
