package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnRef(t *testing.T) {
	assert.Equal(t, ColumnRef{Column: "title"}, ParseColumnRef("title"))
	assert.Equal(t, ColumnRef{Table: "comments", Column: "id"}, ParseColumnRef("comments.id"))
	assert.Equal(t, "comments.id", ParseColumnRef("comments.id").String())
	assert.Equal(t, "title", ParseColumnRef("title").String())
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
	}{
		{"asc", ASC},
		{"ASC", ASC},
		{"ascending", ASC},
		{"", ASC},
		{"desc", DESC},
		{"Descending", DESC},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDirection(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestOrderSpecAddKeepsInsertionOrder(t *testing.T) {
	var spec OrderSpec
	assert.False(t, spec.Any())

	spec = spec.Add("b", DESC).Add("a", ASC).Add("b", ASC)
	assert.True(t, spec.Any())
	assert.Equal(t, OrderSpec{{"b", DESC}, {"a", ASC}}, spec)
}

func TestIncludeTreeMergeIsPure(t *testing.T) {
	left := IncludeTree{"comments": {"author": {}}}
	right := IncludeTree{"comments": {"post": {}}, "author": {}}

	merged := left.Merge(right)

	assert.Equal(t, IncludeTree{
		"comments": {"author": {}, "post": {}},
		"author":   {},
	}, merged)
	assert.Equal(t, IncludeTree{"comments": {"author": {}}}, left, "receiver must not change")
	assert.Equal(t, []string{"author", "comments"}, merged.Names())
}

func TestNewIncludeTree(t *testing.T) {
	tree := NewIncludeTree("comments", "author")
	assert.Equal(t, IncludeTree{"comments": {}, "author": {}}, tree)
	assert.True(t, IncludeTree{}.Empty())
}

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"id":       int64(1),
		"comments": []Record{{"id": int64(2)}},
		"author":   Record{"id": int64(3)},
	}
	assert.Equal(t, int64(1), r.Get("id"))
	assert.Len(t, r.Many("comments"), 1)
	assert.Equal(t, int64(3), r.One("author")["id"])
	assert.Nil(t, r.One("missing"))
	assert.Nil(t, r.Many("author"))
}
