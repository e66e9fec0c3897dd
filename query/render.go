package query

import (
	"fmt"
	"strings"

	"github.com/rediwo/redi-records/types"
)

// plan is the join layout of one statement.
type plan struct {
	eager    []types.Join
	joins    []types.Join
	included *JoinBuilder
}

func (p plan) all() []types.Join {
	return append(append([]types.Join(nil), p.eager...), p.joins...)
}

func (r *Relation) plan() (plan, error) {
	p := plan{joins: r.joins}
	if r.includeMode != types.IncludeEager || r.includes.Empty() {
		return p, nil
	}

	reserved := []string{r.TableName()}
	for _, j := range r.joins {
		reserved = append(reserved, j.Name())
	}

	builder := NewJoinBuilder(r.store.Schemas(), reserved...)
	eager, err := builder.IncludeJoins(r.ModelName(), r.includes)
	if err != nil {
		return plan{}, fmt.Errorf("failed to build include joins: %w", err)
	}
	p.eager = eager
	p.included = builder
	return p, nil
}

// ToSQL renders the SELECT statement.
//
// When include joins are present the rows are made DISTINCT. Ordering
// columns of other tables are then added to the select list under
// generated names, which Load strips again.
func (r *Relation) ToSQL() (string, []any, error) {
	sql, args, _, err := r.buildSelect()
	return sql, args, err
}

func (r *Relation) buildSelect() (string, []any, []string, error) {
	if r.err != nil {
		return "", nil, nil, r.err
	}

	p, err := r.plan()
	if err != nil {
		return "", nil, nil, err
	}

	b := newSQLBuilder(r.store.GetCapabilities(), p.included)
	table := r.TableName()
	joins := p.all()
	distinct := len(p.eager) > 0

	var extra []string
	selectList := b.quote(table) + ".*"
	if distinct {
		for _, term := range r.orders {
			ref := qualify(term.Column, table)
			if ref.Table == table {
				continue
			}
			name := ref.Table + "_" + ref.Column
			selectList += ", " + b.column(ref) + " AS " + b.quote(name)
			extra = append(extra, name)
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(selectList)
	sb.WriteString(" FROM " + b.quote(table))

	for _, j := range joins {
		sb.WriteString(" " + b.join(j))
	}

	where, err := r.whereClause(b)
	if err != nil {
		return "", nil, nil, err
	}
	sb.WriteString(where)

	if len(r.orders) > 0 {
		terms := make([]string, len(r.orders))
		for i, term := range r.orders {
			ref := term.Column
			if len(joins) > 0 {
				ref = qualify(ref, table)
			}
			terms[i] = b.column(ref) + " " + string(term.Direction)
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}

	sb.WriteString(b.limitOffset(r.limit, r.offset))

	return sb.String(), b.args, extra, nil
}

// CountSQL renders the COUNT statement. Ordering is ignored; limit and
// offset bound the counted rows.
func (r *Relation) CountSQL() (string, []any, error) {
	if r.err != nil {
		return "", nil, r.err
	}

	p, err := r.plan()
	if err != nil {
		return "", nil, err
	}

	b := newSQLBuilder(r.store.GetCapabilities(), p.included)
	table := r.TableName()
	pk := b.column(types.ColumnRef{Table: table, Column: r.schema.PrimaryKeyColumn()})
	distinct := len(p.eager) > 0
	bounded := r.limit != nil || r.offset != nil

	var from strings.Builder
	from.WriteString(" FROM " + b.quote(table))
	for _, j := range p.all() {
		from.WriteString(" " + b.join(j))
	}
	where, err := r.whereClause(b)
	if err != nil {
		return "", nil, err
	}
	from.WriteString(where)

	switch {
	case bounded:
		inner := "SELECT " + pk
		if distinct {
			inner = "SELECT DISTINCT " + pk
		}
		inner += from.String() + b.limitOffset(r.limit, r.offset)
		return "SELECT COUNT(*) FROM (" + inner + ") AS " + b.quote("counted"), b.args, nil
	case distinct:
		return "SELECT COUNT(DISTINCT " + pk + ")" + from.String(), b.args, nil
	default:
		return "SELECT COUNT(*)" + from.String(), b.args, nil
	}
}

func (r *Relation) whereClause(b *sqlBuilder) (string, error) {
	if len(r.conditions) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(r.conditions))
	for _, c := range r.conditions {
		s, err := b.condition(c, r.TableName())
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}
