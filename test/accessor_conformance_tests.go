package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rediwo/redi-records/accessor"
	"github.com/rediwo/redi-records/internal/testutil"
	"github.com/rediwo/redi-records/paginator"
	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/types"
)

// AccessorConformanceTests runs the record accessor against a real
// database. Every driver must produce the same records.
type AccessorConformanceTests struct {
	DriverName string
	NewDriver  func(uri string) (types.Database, error)
	URI        string
	SkipTests  map[string]bool // For driver-specific test skipping
}

// RunAll runs all conformance tests
func (act *AccessorConformanceTests) RunAll(t *testing.T) {
	t.Run("Filters", func(t *testing.T) {
		t.Run("Filters", act.TestFilters)
		t.Run("CountMatchesFind", act.TestCountMatchesFind)
	})

	t.Run("Sorting", func(t *testing.T) {
		t.Run("SortByRelatedField", act.TestSortByRelatedField)
		t.Run("SortEagerLoadedByRelatedField", act.TestSortEagerLoadedByRelatedField)
	})

	t.Run("Pagination", func(t *testing.T) {
		t.Run("Paged", act.TestPaged)
		t.Run("OffsetWithoutLimit", act.TestOffsetWithoutLimit)
	})

	t.Run("Loading", func(t *testing.T) {
		t.Run("Includes", act.TestIncludes)
		t.Run("FindByKey", act.TestFindByKey)
		t.Run("FindByRelationship", act.TestFindByRelationship)
	})
}

func (act *AccessorConformanceTests) shouldSkip(testName string) bool {
	return act.SkipTests[testName]
}

type conformanceFixture struct {
	db   types.Database
	blog testutil.BlogResources
}

var blogTables = []string{"comments", "posts", "sections", "people"}

// setup connects, recreates the blog tables and registers the blog models.
func (act *AccessorConformanceTests) setup(t *testing.T) *conformanceFixture {
	t.Helper()
	ctx := context.Background()

	db, err := act.NewDriver(act.URI)
	require.NoError(t, err)
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { db.Close() })

	for _, table := range blogTables {
		_, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+table)
		require.NoError(t, err)
	}
	require.NoError(t, testutil.SeedBlog(ctx, db))

	for _, s := range testutil.BlogSchemas() {
		require.NoError(t, db.RegisterSchema(s))
	}

	return &conformanceFixture{db: db, blog: testutil.NewBlogResources()}
}

func (f *conformanceFixture) accessor(t *testing.T, res *resource.Resource) *accessor.RelationalRecordAccessor {
	t.Helper()
	a, err := accessor.NewRelationalRecordAccessor(res, f.db)
	require.NoError(t, err)
	return a
}

// keys renders the primary keys of records. Drivers disagree on the Go
// type of integer columns, so keys are compared as strings.
func keys(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = fmt.Sprint(r["id"])
	}
	return out
}

func sortBy(t *testing.T, expr string) []resource.SortCriterion {
	t.Helper()
	criteria, err := resource.ParseSort(expr)
	require.NoError(t, err)
	return criteria
}

var filterCases = []struct {
	name     string
	filters  resource.Filters
	expected []string
}{
	{"column", resource.Filters{"title": "Hello"}, []string{"2"}},
	{"belongs to", resource.Filters{"author": 1}, []string{"2", "3"}},
	{"to many", resource.Filters{"comments": 5}, []string{"2"}},
	{"to many list", resource.Filters{"comments": []int{1, 2, 6}}, []string{"1", "4"}},
	{"inline strategy", resource.Filters{"search": "Go"}, []string{"1", "4"}},
	{"named strategy", resource.Filters{"tagged": "Tech"}, []string{"1", "4"}},
	{"empty list", resource.Filters{"id": []int{}}, []string{}},
}

func (act *AccessorConformanceTests) TestFilters(t *testing.T) {
	if act.shouldSkip("TestFilters") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)

	for _, tt := range filterCases {
		t.Run(tt.name, func(t *testing.T) {
			records, err := posts.Find(context.Background(), tt.filters, accessor.Options{SortCriteria: sortBy(t, "id")})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys(records))
		})
	}
}

func (act *AccessorConformanceTests) TestCountMatchesFind(t *testing.T) {
	if act.shouldSkip("TestCountMatchesFind") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)
	ctx := context.Background()

	for _, tt := range filterCases {
		t.Run(tt.name, func(t *testing.T) {
			count, err := posts.Count(ctx, tt.filters, accessor.Options{})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.expected)), count)
		})
	}
}

func (act *AccessorConformanceTests) TestSortByRelatedField(t *testing.T) {
	if act.shouldSkip("TestSortByRelatedField") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)

	tests := []struct {
		sort     string
		expected []string
	}{
		{"author.name,title", []string{"2", "3", "1", "4"}},
		{"-author.name,title", []string{"4", "1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			records, err := posts.Find(context.Background(), nil, accessor.Options{SortCriteria: sortBy(t, tt.sort)})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys(records))
		})
	}
}

// TestSortEagerLoadedByRelatedField orders a DISTINCT select by a column of
// a sort join, which PostgreSQL and MySQL only accept when the column is
// selected.
func (act *AccessorConformanceTests) TestSortEagerLoadedByRelatedField(t *testing.T) {
	if act.shouldSkip("TestSortEagerLoadedByRelatedField") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)

	records, err := posts.Find(context.Background(),
		resource.Filters{"comments": []int{1, 2, 3, 4, 5, 6}},
		accessor.Options{SortCriteria: sortBy(t, "-author.name")},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "1", "2"}, keys(records))
	for _, r := range records {
		assert.NotContains(t, r, "author_sorting_name")
	}
}

func (act *AccessorConformanceTests) TestPaged(t *testing.T) {
	if act.shouldSkip("TestPaged") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)

	records, err := posts.Find(context.Background(), nil, accessor.Options{
		SortCriteria: sortBy(t, "id"),
		Paginator:    paginator.Paged{Number: 2, Size: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, keys(records))
}

func (act *AccessorConformanceTests) TestOffsetWithoutLimit(t *testing.T) {
	if act.shouldSkip("TestOffsetWithoutLimit") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)

	records, err := posts.Find(context.Background(), nil, accessor.Options{
		SortCriteria: sortBy(t, "id"),
		Paginator:    paginator.Offset{Offset: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "4"}, keys(records))
}

func (act *AccessorConformanceTests) TestIncludes(t *testing.T) {
	if act.shouldSkip("TestIncludes") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)

	directives, err := resource.NewIncludeDirectives(f.blog.Posts, []string{"author", "comments.author"}, false)
	require.NoError(t, err)

	records, err := posts.Find(context.Background(), resource.Filters{"id": 1}, accessor.Options{IncludeDirectives: directives})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Bob", records[0].One("author")["name"])
	comments := records[0].Many("comments")
	assert.Equal(t, []string{"1", "2", "3"}, keys(comments))
	assert.Equal(t, "Carol", comments[1].One("author")["name"])
}

func (act *AccessorConformanceTests) TestFindByKey(t *testing.T) {
	if act.shouldSkip("TestFindByKey") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	people := f.accessor(t, f.blog.People)
	ctx := context.Background()

	record, err := people.FindByKey(ctx, 3, accessor.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Carol", record["name"])
	assert.Nil(t, record["email"])

	_, err = people.FindByKey(ctx, 42, accessor.Options{})
	assert.ErrorIs(t, err, accessor.ErrRecordNotFound)
}

func (act *AccessorConformanceTests) TestFindByRelationship(t *testing.T) {
	if act.shouldSkip("TestFindByRelationship") {
		t.Skip("Test skipped by driver")
	}
	f := act.setup(t)
	posts := f.accessor(t, f.blog.Posts)
	ctx := context.Background()

	post, err := posts.FindByKey(ctx, 1, accessor.Options{})
	require.NoError(t, err)
	inst := resource.NewInstance(f.blog.Posts, post, nil)

	opts := accessor.Options{
		SortCriteria: sortBy(t, "author.name"),
		Paginator:    paginator.Paged{Number: 1, Size: 2},
	}
	records, err := posts.FindByRelationship(ctx, inst, "comments", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, keys(records))

	count, err := posts.CountForRelationship(ctx, inst, "comments", opts)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
