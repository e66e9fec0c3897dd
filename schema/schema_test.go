package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_GetColumnName(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		expected string
	}{
		{"explicit mapping", Field{Name: "firstName", Map: "custom_first_name"}, "custom_first_name"},
		{"camelCase conversion", Field{Name: "firstName"}, "first_name"},
		{"simple name", Field{Name: "id"}, "id"},
		{"acronym suffix", Field{Name: "authorID"}, "author_id"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.field.GetColumnName())
		})
	}
}

func TestNewDerivesTableName(t *testing.T) {
	assert.Equal(t, "posts", New("Post").TableName)
	assert.Equal(t, "blog_categories", New("BlogCategory").TableName)
	assert.Equal(t, "people", New("Person").WithTableName("people").GetTableName())
}

func TestSchemaValidate(t *testing.T) {
	valid := New("Post").
		AddField(NewField("id").Int64().PrimaryKey().Build()).
		AddField(NewField("title").Build())
	require.NoError(t, valid.Validate())

	assert.Error(t, New("").Validate())
	assert.Error(t, New("Empty").Validate(), "no fields")
	assert.Error(t, New("NoKey").AddField(NewField("title").Build()).Validate())

	dup := New("Dup").
		AddField(NewField("id").PrimaryKey().Build()).
		AddAssociation(NewHasMany("comments", "Comment", "")).
		AddAssociation(NewHasMany("comments", "Comment", ""))
	assert.ErrorContains(t, dup.Validate(), "duplicate association")
}

func TestFindAssociationIsCaseInsensitive(t *testing.T) {
	s := New("Post").
		AddField(NewField("id").PrimaryKey().Build()).
		AddAssociation(NewBelongsTo("author", "Person", "author_id"))

	a, ok := s.FindAssociation("Author")
	require.True(t, ok)
	assert.Equal(t, "author", a.Name)

	_, ok = s.FindAssociation("editor")
	assert.False(t, ok)

	_, err := s.GetAssociation("Author")
	assert.Error(t, err, "GetAssociation is exact")
}

func TestPrimaryKeyColumn(t *testing.T) {
	s := New("Post").AddField(NewField("postID").PrimaryKey().Build())
	assert.Equal(t, "post_id", s.PrimaryKeyColumn())
	assert.Equal(t, "id", New("Bare").PrimaryKeyColumn())
}

func TestJoinKeys(t *testing.T) {
	post := New("Post").AddField(NewField("id").PrimaryKey().Build()).AddField(NewField("authorId").Build())
	person := New("Person").AddField(NewField("id").PrimaryKey().Build())
	comment := New("Comment").AddField(NewField("id").PrimaryKey().Build()).AddField(NewField("postId").Build())

	author := NewBelongsTo("author", "Person", "")
	ownerCol, targetCol, err := JoinKeys(&author, post, person)
	require.NoError(t, err)
	assert.Equal(t, "author_id", ownerCol)
	assert.Equal(t, "id", targetCol)

	comments := NewHasMany("comments", "Comment", "")
	ownerCol, targetCol, err = JoinKeys(&comments, post, comment)
	require.NoError(t, err)
	assert.Equal(t, "id", ownerCol)
	assert.Equal(t, "post_id", targetCol)

	bad := Association{Name: "x", Kind: "manyToMany", Model: "Person"}
	_, _, err = JoinKeys(&bad, post, person)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	post := New("Post").
		AddField(NewField("id").PrimaryKey().Build()).
		AddField(NewField("authorId").Build()).
		AddAssociation(NewBelongsTo("author", "Person", "author_id"))
	require.NoError(t, reg.Register(post))

	assert.ErrorContains(t, reg.Validate(), "Person")

	person := New("Person").WithTableName("people").
		AddField(NewField("id").PrimaryKey().Build()).
		AddAssociation(NewHasMany("posts", "Post", "author_id"))
	require.NoError(t, reg.Register(person))
	require.NoError(t, reg.Validate())

	assert.Equal(t, []string{"Person", "Post"}, reg.Models())

	got, err := reg.Get("Post")
	require.NoError(t, err)
	assert.Same(t, post, got)

	_, err = reg.Get("Missing")
	assert.Error(t, err)
	assert.Error(t, reg.Register(nil))
}
