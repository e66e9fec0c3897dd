package testutil

import (
	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/types"
)

// BlogResources are the uncompiled resources over the blog models.
type BlogResources struct {
	People   *resource.Resource
	Sections *resource.Resource
	Posts    *resource.Resource
	Comments *resource.Resource
}

// NewBlogResources wires people, sections, posts and comments together.
// Posts declare a "search" filter (inline LIKE on title) and a "tagged"
// filter delegating to the "by_section_name" delegate.
func NewBlogResources() BlogResources {
	people := resource.New("people", "Person")
	sections := resource.New("sections", "Section")
	posts := resource.New("posts", "Post")
	comments := resource.New("comments", "Comment")

	people.
		HasMany("posts", posts).
		HasMany("comments", comments)

	sections.HasMany("posts", posts)

	posts.
		BelongsTo("author", people, "author_id").
		BelongsTo("section", sections, "section_id").
		HasMany("comments", comments).
		Filter("title", resource.DefaultPredicate()).
		Filter("search", resource.InlineFunc(func(records types.Relation, value any, _ resource.Context) (types.Relation, error) {
			return records.Where(types.NewRaw("posts.title LIKE ?", "%"+value.(string)+"%")), nil
		})).
		Filter("tagged", resource.NamedDelegate("by_section_name")).
		Delegate("by_section_name", func(records types.Relation, value any, _ resource.Context) (types.Relation, error) {
			return records.Where(types.NewRaw("posts.section_id IN (SELECT id FROM sections WHERE name = ?)", value)), nil
		})

	comments.
		BelongsTo("post", posts, "post_id").
		BelongsTo("author", people, "author_id")

	return BlogResources{People: people, Sections: sections, Posts: posts, Comments: comments}
}

// All returns the resources in registration order.
func (b BlogResources) All() []*resource.Resource {
	return []*resource.Resource{b.People, b.Sections, b.Posts, b.Comments}
}
