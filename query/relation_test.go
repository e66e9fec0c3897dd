package query

import (
	"context"
	"testing"

	"github.com/rediwo/redi-records/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authorSortingJoin = types.Join{
	Kind:  types.LeftJoin,
	Table: "people",
	Alias: "author_sorting",
	On: []types.ColumnPair{{
		Left:  types.ColumnRef{Table: "author_sorting", Column: "id"},
		Right: types.ColumnRef{Table: "posts", Column: "author_id"},
	}},
}

func TestRelationToSQL(t *testing.T) {
	store := newTestStore(t, backtickCapabilities{})
	posts := model(t, store, "Post")
	people := model(t, store, "Person")

	tests := []struct {
		name string
		rel  types.Relation
		sql  string
		args []any
	}{
		{
			name: "all rows",
			rel:  posts,
			sql:  "SELECT `posts`.* FROM `posts`",
		},
		{
			name: "equality",
			rel:  posts.Where(types.Eq{Column: "title", Value: "Hello"}),
			sql:  "SELECT `posts`.* FROM `posts` WHERE `posts`.`title` = ?",
			args: []any{"Hello"},
		},
		{
			name: "list becomes IN",
			rel:  posts.Where(types.Eq{Column: "id", Value: []int{1, 2}}),
			sql:  "SELECT `posts`.* FROM `posts` WHERE `posts`.`id` IN (?, ?)",
			args: []any{1, 2},
		},
		{
			name: "empty list matches nothing",
			rel:  posts.Where(types.Eq{Column: "id", Value: []int{}}),
			sql:  "SELECT `posts`.* FROM `posts` WHERE 1=0",
		},
		{
			name: "nil is IS NULL",
			rel:  posts.Where(types.Eq{Column: "section_id", Value: nil}),
			sql:  "SELECT `posts`.* FROM `posts` WHERE `posts`.`section_id` IS NULL",
		},
		{
			name: "qualified column",
			rel:  posts.Where(types.Eq{Column: "comments.id", Value: 5}),
			sql:  "SELECT `posts`.* FROM `posts` WHERE `comments`.`id` = ?",
			args: []any{5},
		},
		{
			name: "conditions are joined with AND",
			rel: posts.Where(
				types.NewRaw("title LIKE ?", "%Go%"),
				types.Eq{Column: "section_id", Value: 2},
			),
			sql:  "SELECT `posts`.* FROM `posts` WHERE (title LIKE ?) AND `posts`.`section_id` = ?",
			args: []any{"%Go%", 2},
		},
		{
			name: "order without joins stays bare",
			rel:  posts.Order("title", types.ASC).Order("id", types.DESC),
			sql:  "SELECT `posts`.* FROM `posts` ORDER BY `title` ASC, `id` DESC",
		},
		{
			name: "order with joins is qualified",
			rel: posts.Joins(authorSortingJoin).
				Order("title", types.ASC).
				OrderBy(types.OrderTerm{Column: types.ColumnRef{Table: "author_sorting", Column: "name"}, Direction: types.DESC}),
			sql: "SELECT `posts`.* FROM `posts` LEFT JOIN `people` AS `author_sorting` ON `author_sorting`.`id` = `posts`.`author_id`" +
				" ORDER BY `posts`.`title` ASC, `author_sorting`.`name` DESC",
		},
		{
			name: "duplicate joins are dropped",
			rel:  posts.Joins(authorSortingJoin).Joins(authorSortingJoin),
			sql:  "SELECT `posts`.* FROM `posts` LEFT JOIN `people` AS `author_sorting` ON `author_sorting`.`id` = `posts`.`author_id`",
		},
		{
			name: "limit and offset",
			rel:  posts.Limit(10).Offset(20),
			sql:  "SELECT `posts`.* FROM `posts` LIMIT 10 OFFSET 20",
		},
		{
			name: "offset only",
			rel:  posts.Offset(5),
			sql:  "SELECT `posts`.* FROM `posts` LIMIT -1 OFFSET 5",
		},
		{
			name: "preload adds no join",
			rel:  posts.Includes(types.NewIncludeTree("comments"), types.IncludePreload),
			sql:  "SELECT `posts`.* FROM `posts`",
		},
		{
			name: "eager include joins and deduplicates rows",
			rel: posts.Where(types.Eq{Column: "comments.id", Value: 5}).
				Includes(types.NewIncludeTree("comments"), types.IncludeEager),
			sql:  "SELECT DISTINCT `posts`.* FROM `posts` LEFT JOIN `comments` ON `comments`.`post_id` = `posts`.`id` WHERE `comments`.`id` = ?",
			args: []any{5},
		},
		{
			name: "eager include selects foreign ordering columns",
			rel: posts.Joins(authorSortingJoin).
				Includes(types.NewIncludeTree("comments"), types.IncludeEager).
				OrderBy(types.OrderTerm{Column: types.ColumnRef{Table: "author_sorting", Column: "name"}, Direction: types.ASC}),
			sql: "SELECT DISTINCT `posts`.*, `author_sorting`.`name` AS `author_sorting_name` FROM `posts`" +
				" LEFT JOIN `comments` ON `comments`.`post_id` = `posts`.`id`" +
				" LEFT JOIN `people` AS `author_sorting` ON `author_sorting`.`id` = `posts`.`author_id`" +
				" ORDER BY `author_sorting`.`name` ASC",
		},
		{
			name: "included condition uses the alias of its path",
			rel: people.Where(types.IncludedEq{Path: "posts", Column: "id", Value: 4}).
				Includes(types.IncludeTree{"comments": types.NewIncludeTree("post"), "posts": {}}, types.IncludeEager),
			sql: "SELECT DISTINCT `people`.* FROM `people`" +
				" LEFT JOIN `comments` ON `comments`.`author_id` = `people`.`id`" +
				" LEFT JOIN `posts` ON `posts`.`id` = `comments`.`post_id`" +
				" LEFT JOIN `posts` AS `posts_people` ON `posts_people`.`author_id` = `people`.`id`" +
				" WHERE `posts_people`.`id` = ?",
			args: []any{4},
		},
		{
			name: "included path matches case-insensitively",
			rel: posts.Where(types.IncludedEq{Path: "Comments", Column: "id", Value: 5}).
				Includes(types.NewIncludeTree("comments"), types.IncludeEager),
			sql:  "SELECT DISTINCT `posts`.* FROM `posts` LEFT JOIN `comments` ON `comments`.`post_id` = `posts`.`id` WHERE `comments`.`id` = ?",
			args: []any{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.rel.ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			if tt.args == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestRelationCountSQL(t *testing.T) {
	store := newTestStore(t, backtickCapabilities{})
	posts := model(t, store, "Post")

	tests := []struct {
		name string
		rel  types.Relation
		sql  string
	}{
		{
			name: "plain",
			rel:  posts.Where(types.Eq{Column: "author_id", Value: 1}).Order("title", types.ASC),
			sql:  "SELECT COUNT(*) FROM `posts` WHERE `posts`.`author_id` = ?",
		},
		{
			name: "eager",
			rel:  posts.Includes(types.NewIncludeTree("comments"), types.IncludeEager),
			sql:  "SELECT COUNT(DISTINCT `posts`.`id`) FROM `posts` LEFT JOIN `comments` ON `comments`.`post_id` = `posts`.`id`",
		},
		{
			name: "bounded",
			rel:  posts.Limit(2),
			sql:  "SELECT COUNT(*) FROM (SELECT `posts`.`id` FROM `posts` LIMIT 2) AS `counted`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := tt.rel.CountSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
		})
	}
}

func TestRelationPostgresPlaceholders(t *testing.T) {
	store := newTestStore(t, dollarCapabilities{})
	rel := model(t, store, "Post").
		Where(types.Eq{Column: "id", Value: []int{1, 2}}, types.NewRaw("title <> ?", "x")).
		Offset(3)

	sql, args, err := rel.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "posts".* FROM "posts" WHERE "posts"."id" IN ($1, $2) AND (title <> $3) OFFSET 3`, sql)
	assert.Equal(t, []any{1, 2, "x"}, args)
}

func TestRelationIsImmutable(t *testing.T) {
	store := newTestStore(t, backtickCapabilities{})
	posts := model(t, store, "Post")

	filtered := posts.Where(types.Eq{Column: "id", Value: 1})
	_ = filtered.Order("title", types.ASC).Limit(1)

	sql, _, err := posts.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `posts`.* FROM `posts`", sql)

	sql, _, err = filtered.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `posts`.* FROM `posts` WHERE `posts`.`id` = ?", sql)
}

func TestRelationDeferredErrors(t *testing.T) {
	store := newTestStore(t, backtickCapabilities{})
	posts := model(t, store, "Post")

	tests := []struct {
		name string
		rel  types.Relation
	}{
		{"negative limit", posts.Limit(-1)},
		{"negative offset", posts.Offset(-1)},
		{"bad direction", posts.Order("title", types.Direction("sideways"))},
		{"empty order field", posts.Order("", types.ASC)},
		{"raw argument mismatch", posts.Where(types.NewRaw("a = ? AND b = ?", 1))},
		{"unknown eager association", posts.Includes(types.NewIncludeTree("tags"), types.IncludeEager)},
		{"included condition without include", posts.Where(types.IncludedEq{Path: "comments", Column: "id", Value: 5})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.rel.ToSQL()
			assert.Error(t, err)
			_, err = tt.rel.Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestStoreModelUnknown(t *testing.T) {
	store := newTestStore(t, backtickCapabilities{})
	_, err := store.Model("Tag")
	assert.Error(t, err)
}
