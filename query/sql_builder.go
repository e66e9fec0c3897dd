package query

import (
	"fmt"
	"strings"

	"github.com/rediwo/redi-records/types"
	"github.com/rediwo/redi-records/utils"
)

// mysqlMaxLimit is the row count MySQL documents for "no limit".
const mysqlMaxLimit = "18446744073709551615"

// sqlBuilder renders AST nodes for one statement, collecting bind arguments
// in placeholder order. included resolves IncludedEq paths and is nil when
// the statement has no include joins.
type sqlBuilder struct {
	caps     types.DriverCapabilities
	included *JoinBuilder
	args     []any
}

func newSQLBuilder(caps types.DriverCapabilities, included *JoinBuilder) *sqlBuilder {
	return &sqlBuilder{caps: caps, included: included}
}

func (b *sqlBuilder) bind(value any) string {
	b.args = append(b.args, value)
	return b.caps.GetPlaceholder(len(b.args))
}

func (b *sqlBuilder) quote(name string) string {
	return b.caps.QuoteIdentifier(name)
}

func (b *sqlBuilder) column(ref types.ColumnRef) string {
	if ref.Table == "" {
		return b.quote(ref.Column)
	}
	return b.quote(ref.Table) + "." + b.quote(ref.Column)
}

// qualify puts bare column references on table.
func qualify(ref types.ColumnRef, table string) types.ColumnRef {
	if ref.Table == "" {
		ref.Table = table
	}
	return ref
}

func (b *sqlBuilder) condition(c types.Condition, table string) (string, error) {
	switch cond := c.(type) {
	case types.Eq:
		return b.eq(cond, table), nil
	case types.Raw:
		return b.raw(cond)
	case types.IncludedEq:
		alias, ok := b.included.IncludeAlias(cond.Path)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrPathNotJoined, cond.Path)
		}
		return b.eq(types.Eq{Column: alias + "." + cond.Column, Value: cond.Value}, table), nil
	default:
		return "", fmt.Errorf("unsupported condition type %T", c)
	}
}

func (b *sqlBuilder) eq(cond types.Eq, table string) string {
	col := b.column(qualify(types.ParseColumnRef(cond.Column), table))

	if values, ok := utils.ExpandList(cond.Value); ok {
		if len(values) == 0 {
			return "1=0"
		}
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = b.bind(v)
		}
		return fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", "))
	}

	if cond.Value == nil {
		return col + " IS NULL"
	}
	return fmt.Sprintf("%s = %s", col, b.bind(cond.Value))
}

// raw rewrites ? placeholders into the dialect's placeholders.
func (b *sqlBuilder) raw(cond types.Raw) (string, error) {
	var sb strings.Builder
	next := 0
	for _, ch := range cond.SQL {
		if ch != '?' {
			sb.WriteRune(ch)
			continue
		}
		if next >= len(cond.Args) {
			return "", fmt.Errorf("raw condition %q has more placeholders than arguments", cond.SQL)
		}
		sb.WriteString(b.bind(cond.Args[next]))
		next++
	}
	if next != len(cond.Args) {
		return "", fmt.Errorf("raw condition %q expects %d arguments, got %d", cond.SQL, next, len(cond.Args))
	}
	return "(" + sb.String() + ")", nil
}

func (b *sqlBuilder) join(j types.Join) string {
	target := b.quote(j.Table)
	if j.Alias != "" && j.Alias != j.Table {
		target += " AS " + b.quote(j.Alias)
	}

	kind := j.Kind
	if kind == "" {
		kind = types.InnerJoin
	}

	on := make([]string, len(j.On))
	for i, pair := range j.On {
		on[i] = fmt.Sprintf("%s = %s", b.column(pair.Left), b.column(pair.Right))
	}
	if len(on) == 0 {
		return fmt.Sprintf("%s %s", kind, target)
	}
	return fmt.Sprintf("%s %s ON %s", kind, target, strings.Join(on, " AND "))
}

func (b *sqlBuilder) limitOffset(limit, offset *int) string {
	var sb strings.Builder
	switch {
	case limit != nil:
		fmt.Fprintf(&sb, " LIMIT %d", *limit)
	case offset != nil:
		switch b.caps.GetDriverType() {
		case types.DriverSQLite:
			sb.WriteString(" LIMIT -1")
		case types.DriverMySQL:
			sb.WriteString(" LIMIT " + mysqlMaxLimit)
		}
	}
	if offset != nil {
		fmt.Fprintf(&sb, " OFFSET %d", *offset)
	}
	return sb.String()
}
