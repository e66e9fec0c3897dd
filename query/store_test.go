package query

import (
	"context"
	"testing"

	"github.com/rediwo/redi-records/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationLoad(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	records, err := model(t, store, "Post").Order("id", types.ASC).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(records))
	assert.Equal(t, "Go tips", records[0]["title"])
	assert.Nil(t, records[2]["section_id"])

	records, err = model(t, store, "Post").
		Where(types.Eq{Column: "author_id", Value: 1}).
		Order("title", types.DESC).
		Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids(records))
}

func TestRelationFirstAndCount(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	posts := model(t, store, "Post")

	rec, err := posts.Where(types.Eq{Column: "id", Value: 99}).First(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = posts.Order("title", types.ASC).First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Another Go post", rec["title"])

	count, err := posts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	count, err = posts.Offset(1).Limit(2).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRelationPreload(t *testing.T) {
	store := newSQLiteStore(t)

	tree := types.IncludeTree{
		"author":   {},
		"section":  {},
		"comments": {"author": {}},
	}
	records, err := model(t, store, "Post").
		Order("id", types.ASC).
		Includes(tree, types.IncludePreload).
		Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Bob", records[0].One("author")["name"])
	assert.Equal(t, "Tech", records[0].One("section")["name"])
	assert.Nil(t, records[2]["section"])

	comments := records[0].Many("comments")
	assert.Equal(t, []int64{1, 2, 3}, ids(comments))
	assert.Equal(t, "Carol", comments[1].One("author")["name"])

	assert.NotNil(t, records[2]["comments"])
	assert.Empty(t, records[2].Many("comments"))
}

func TestRelationEagerInclude(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	rel := model(t, store, "Post").
		Where(types.Eq{Column: "comments.author_id", Value: []int{1, 3}}).
		Includes(types.NewIncludeTree("comments"), types.IncludeEager).
		Order("id", types.ASC)

	records, err := rel.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 4}, ids(records))
	assert.Len(t, records[0].Many("comments"), 3)

	count, err := rel.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRelationEagerIncludeWithForeignOrder(t *testing.T) {
	store := newSQLiteStore(t)

	records, err := model(t, store, "Post").
		Joins(authorSortingJoin).
		Includes(types.NewIncludeTree("comments"), types.IncludeEager).
		OrderBy(
			types.OrderTerm{Column: types.ColumnRef{Table: "author_sorting", Column: "name"}, Direction: types.ASC},
			types.OrderTerm{Column: types.ColumnRef{Column: "id"}, Direction: types.ASC},
		).
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3, 1, 4}, ids(records))
	assert.NotContains(t, records[0], "author_sorting_name")
}

func TestStoreAssociation(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	post, err := model(t, store, "Post").Where(types.Eq{Column: "id", Value: 2}).First(ctx)
	require.NoError(t, err)

	comments, err := store.Association("Post", post, "comments")
	require.NoError(t, err)
	records, err := comments.Order("id", types.ASC).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, ids(records))

	author, err := store.Association("Post", post, "Author")
	require.NoError(t, err)
	rec, err := author.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", rec["name"])

	_, err = store.Association("Post", post, "tags")
	assert.ErrorIs(t, err, ErrAssociationNotFound)

	_, err = store.Association("Post", types.Record{"title": "x"}, "author")
	assert.Error(t, err)
}

func TestRelationBackendError(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := model(t, store, "Post").Where(types.Eq{Column: "missing", Value: 1}).Load(context.Background())
	assert.ErrorContains(t, err, "failed to execute query")
}
