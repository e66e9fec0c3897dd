package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"firstName", "first_name"},
		{"createdAt", "created_at"},
		{"authorID", "author_id"},
		{"XMLHttpRequest", "xml_http_request"},
		{"HTTPStatusCode", "http_status_code"},
		{"id", "id"},
		{"CamelCase", "camel_case"},
		{"BlogPost", "blog_post"},
		{"a", "a"},
		{"A", "a"},
		{"version2Name", "version2_name"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, ToSnakeCase(test.input))
		})
	}
}

func TestToPascalCase(t *testing.T) {
	assert.Equal(t, "", ToPascalCase(""))
	assert.Equal(t, "BlogPost", ToPascalCase("blog_post"))
	assert.Equal(t, "BlogPost", ToPascalCase("blogPost"))
	assert.Equal(t, "Author", ToPascalCase("author"))
}

func TestPluralizeAndSingularize(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		{"post", "posts"},
		{"comment", "comments"},
		{"category", "categories"},
		{"box", "boxes"},
		{"class", "classes"},
		{"church", "churches"},
		{"leaf", "leaves"},
		{"day", "days"},
	}

	for _, tt := range tests {
		t.Run(tt.singular, func(t *testing.T) {
			assert.Equal(t, tt.plural, Pluralize(tt.singular))
			assert.Equal(t, tt.singular, Singularize(tt.plural))
		})
	}

	assert.Equal(t, "", Pluralize(""))
}

func TestTableNameAndForeignKey(t *testing.T) {
	assert.Equal(t, "posts", TableName("Post"))
	assert.Equal(t, "blog_categories", TableName("BlogCategory"))
	assert.Equal(t, "author_id", ForeignKey("Author"))
	assert.Equal(t, "blog_post_id", ForeignKey("BlogPost"))
}

func TestExpandList(t *testing.T) {
	list, ok := ExpandList([]int{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, []any{1, 2, 3}, list)

	list, ok = ExpandList([]any{"a", 2})
	assert.True(t, ok)
	assert.Equal(t, []any{"a", 2}, list)

	list, ok = ExpandList([2]string{"x", "y"})
	assert.True(t, ok)
	assert.Equal(t, []any{"x", "y"}, list)

	_, ok = ExpandList("scalar")
	assert.False(t, ok)
	_, ok = ExpandList([]byte("raw"))
	assert.False(t, ok)
	_, ok = ExpandList(nil)
	assert.False(t, ok)

	list, ok = ExpandList([]string{})
	assert.True(t, ok)
	assert.Empty(t, list)
}
