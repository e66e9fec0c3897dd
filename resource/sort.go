package resource

import (
	"errors"
	"strings"

	"github.com/rediwo/redi-records/types"
)

// SortCriterion is one requested ordering. Field may be dotted to order by
// a field of a related resource ("author.name").
type SortCriterion struct {
	Field     string
	Direction types.Direction
}

// ParseSort parses a sort expression. A sort expression is a list of fields
// separated by comas. A field sort is reverse if preceded by a minus sign (-).
func ParseSort(sort string) ([]SortCriterion, error) {
	var criteria []SortCriterion
	for _, f := range strings.Split(sort, ",") {
		name := strings.TrimSpace(f)
		sc := SortCriterion{Field: name, Direction: types.ASC}
		if strings.HasPrefix(name, "-") {
			sc.Field = strings.TrimSpace(name[1:])
			sc.Direction = types.DESC
		}
		if sc.Field == "" {
			return nil, errors.New("empty sort field")
		}
		criteria = append(criteria, sc)
	}
	return criteria, nil
}

// ConstructOrderOptions turns sort criteria into an order specification,
// keeping their order. "id" stands for the primary key. Nil criteria fall
// back to DefaultSort; an empty, non-nil slice means no ordering.
func (r *Resource) ConstructOrderOptions(criteria []SortCriterion) types.OrderSpec {
	if criteria == nil {
		criteria = r.DefaultSort
	}

	order := types.OrderSpec{}
	for _, sc := range criteria {
		field := sc.Field
		if field == "id" && r.PrimaryKey != "" {
			field = r.PrimaryKey
		}
		direction := sc.Direction
		if direction == "" {
			direction = types.ASC
		}
		order = order.Add(field, direction)
	}
	return order
}
