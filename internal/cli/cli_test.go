package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rediwo/redi-records/config"
	"github.com/rediwo/redi-records/drivers/sqlite"
	"github.com/rediwo/redi-records/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDatabase writes the blog fixture to a file database and points the
// configuration at it.
func seedDatabase(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.db")

	db, err := sqlite.NewSQLiteDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Connect(context.Background()))
	require.NoError(t, testutil.SeedBlog(context.Background(), db))
	require.NoError(t, db.Close())

	t.Setenv(config.EnvDatabase, "sqlite://"+path)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", "testdata/blog.yaml"))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestExplain(t *testing.T) {
	out, _, err := execute(t, "explain",
		"--resource", "posts",
		"--filter", "comments=5",
		"--filter", "title=Hello",
		"--sort", "-author.name",
		"--include", "author",
		"--page", "number=1,size=10",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "SELECT DISTINCT `posts`.*"), lines[0])
	assert.Contains(t, lines[0], "LEFT JOIN `people` AS `author_sorting`")
	assert.True(t, strings.HasSuffix(lines[0], "LIMIT 10"), lines[0])
	assert.Equal(t, "-- args: [5 Hello]", lines[1])
}

func TestExplainErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing resource flag", []string{"explain"}, `"resource" not set`},
		{"unknown resource", []string{"explain", "-r", "tags"}, "resource tags not found"},
		{"bad filter", []string{"explain", "-r", "posts", "-f", "title"}, "expected name=value"},
		{"bad include", []string{"explain", "-r", "posts", "-i", "likes"}, "likes"},
		{"mixed pagination", []string{"explain", "-r", "posts", "--page", "offset=1,size=2"}, "cannot combine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFind(t *testing.T) {
	seedDatabase(t)

	out, _, err := execute(t, "find", "-r", "posts", "-f", "author=1", "-s", "title", "-i", "comments")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Hello", records[0]["title"])
	assert.Equal(t, "Zebra facts", records[1]["title"])
	assert.Len(t, records[0]["comments"], 2)
	assert.Empty(t, records[1]["comments"])
}

func TestFindListFilter(t *testing.T) {
	seedDatabase(t)

	out, _, err := execute(t, "find", "-r", "comments", "-f", "post=1,4", "--page", "offset=1,limit=2")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	// comments sort by -id by default
	require.Len(t, records, 2)
	assert.EqualValues(t, 3, records[0]["id"])
	assert.EqualValues(t, 2, records[1]["id"])
}

func TestCount(t *testing.T) {
	seedDatabase(t)

	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"count", "-r", "posts"}, "4"},
		{[]string{"count", "-r", "posts", "-f", "comments=1,2,6"}, "2"},
		{[]string{"count", "-r", "people", "-f", "name=Carol"}, "1"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strings.TrimSpace(out))
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	seedDatabase(t)

	_, stderr, err := execute(t, "count", "-r", "sections", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "SELECT COUNT(*)")
}

func TestDelegateFiltersAreSkipped(t *testing.T) {
	seedDatabase(t)

	out, stderr, err := execute(t, "count", "-r", "posts", "-f", "title=Hello", "--log-level", "warn")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, stderr, "Skipping filter posts.tagged")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "redi-records version "+Version+"\n", out)
}
