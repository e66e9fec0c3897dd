// Package paginator provides the pagination strategies handed to record
// accessors.
package paginator

import (
	"fmt"
	"strconv"

	"github.com/rediwo/redi-records/types"
)

// Offset bounds records with an offset and a limit. A zero Limit means no
// limit.
type Offset struct {
	Offset int
	Limit  int
}

func (p Offset) Apply(records types.Relation, _ types.OrderSpec) types.Relation {
	if p.Offset > 0 {
		records = records.Offset(p.Offset)
	}
	if p.Limit > 0 {
		records = records.Limit(p.Limit)
	}
	return records
}

// Paged selects page Number (1-based) of Size records. Size <= 0 returns
// every record; Number < 1 is treated as the first page.
type Paged struct {
	Number int
	Size   int
}

func (p Paged) Apply(records types.Relation, _ types.OrderSpec) types.Relation {
	if p.Size <= 0 {
		return records
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	records = records.Limit(p.Size)
	if offset := (number - 1) * p.Size; offset > 0 {
		records = records.Offset(offset)
	}
	return records
}

// FromParams builds a paginator from page[offset]/page[limit] or
// page[number]/page[size] query parameters. It returns nil when none are
// present.
func FromParams(params map[string]string) (types.Paginator, error) {
	_, hasOffset := params["page[offset]"]
	_, hasLimit := params["page[limit]"]
	_, hasNumber := params["page[number]"]
	_, hasSize := params["page[size]"]

	switch {
	case (hasOffset || hasLimit) && (hasNumber || hasSize):
		return nil, fmt.Errorf("cannot combine offset and paged pagination parameters")
	case hasOffset || hasLimit:
		offset, err := intParam(params, "page[offset]")
		if err != nil {
			return nil, err
		}
		limit, err := intParam(params, "page[limit]")
		if err != nil {
			return nil, err
		}
		return Offset{Offset: offset, Limit: limit}, nil
	case hasNumber || hasSize:
		number, err := intParam(params, "page[number]")
		if err != nil {
			return nil, err
		}
		size, err := intParam(params, "page[size]")
		if err != nil {
			return nil, err
		}
		return Paged{Number: number, Size: size}, nil
	default:
		return nil, nil
	}
}

func intParam(params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return v, nil
}
