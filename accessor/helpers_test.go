package accessor

import (
	"context"
	"testing"

	"github.com/rediwo/redi-records/drivers/sqlite"
	"github.com/rediwo/redi-records/internal/testutil"
	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/types"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db   *sqlite.SQLiteDB
	blog testutil.BlogResources
}

// newFixture returns the blog resources over a seeded in-memory database.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { db.Close() })

	for _, s := range testutil.BlogSchemas() {
		require.NoError(t, db.RegisterSchema(s))
	}
	require.NoError(t, testutil.SeedBlog(ctx, db))

	return &fixture{db: db, blog: testutil.NewBlogResources()}
}

func (f *fixture) accessor(t *testing.T, res *resource.Resource, opts ...Option) *RelationalRecordAccessor {
	t.Helper()
	a, err := NewRelationalRecordAccessor(res, f.db, opts...)
	require.NoError(t, err)
	return a
}

func sortBy(t *testing.T, expr string) []resource.SortCriterion {
	t.Helper()
	criteria, err := resource.ParseSort(expr)
	require.NoError(t, err)
	return criteria
}

func includes(t *testing.T, res *resource.Resource, paths ...string) *resource.IncludeDirectives {
	t.Helper()
	d, err := resource.NewIncludeDirectives(res, paths, false)
	require.NoError(t, err)
	return d
}

func ids(records []types.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r["id"].(int64)
	}
	return out
}
