package types

import (
	"fmt"
	"strings"
)

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// ParseDirection accepts asc/ascending and desc/descending in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return ASC, nil
	case "desc", "descending":
		return DESC, nil
	default:
		return "", fmt.Errorf("invalid sort direction: %q", s)
	}
}

// OrderField is one entry of an order specification. Field may be dotted
// ("author.name") to order by a column reached through associations.
type OrderField struct {
	Field     string
	Direction Direction
}

// OrderSpec is an ordered field to direction mapping; later entries break
// ties of earlier ones.
type OrderSpec []OrderField

func (o OrderSpec) Any() bool {
	return len(o) > 0
}

// Add appends field unless it is already present, keeping the first
// direction given for it.
func (o OrderSpec) Add(field string, direction Direction) OrderSpec {
	for _, f := range o {
		if f.Field == field {
			return o
		}
	}
	return append(o, OrderField{Field: field, Direction: direction})
}

// OrderTerm orders by an explicitly qualified column.
type OrderTerm struct {
	Column    ColumnRef
	Direction Direction
}
