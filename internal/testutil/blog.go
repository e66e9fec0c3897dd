// Package testutil provides the blog fixture shared by package tests.
package testutil

import (
	"context"
	"database/sql"

	"github.com/rediwo/redi-records/schema"
)

// BlogRegistry returns a registry with the Person, Section, Post and Comment
// models wired together.
func BlogRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	for _, s := range BlogSchemas() {
		if err := reg.Register(s); err != nil {
			panic(err)
		}
	}
	return reg
}

func BlogSchemas() []*schema.Schema {
	person := schema.New("Person").WithTableName("people").
		AddField(schema.NewField("id").Int64().PrimaryKey().Build()).
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("email").String().Nullable().Build()).
		AddAssociation(schema.NewHasMany("posts", "Post", "author_id")).
		AddAssociation(schema.NewHasMany("comments", "Comment", "author_id"))

	section := schema.New("Section").
		AddField(schema.NewField("id").Int64().PrimaryKey().Build()).
		AddField(schema.NewField("name").String().Build()).
		AddAssociation(schema.NewHasMany("posts", "Post", "section_id"))

	post := schema.New("Post").
		AddField(schema.NewField("id").Int64().PrimaryKey().Build()).
		AddField(schema.NewField("title").String().Build()).
		AddField(schema.NewField("body").String().Nullable().Build()).
		AddField(schema.NewField("authorId").Int64().Build()).
		AddField(schema.NewField("sectionId").Int64().Nullable().Build()).
		AddAssociation(schema.NewBelongsTo("author", "Person", "author_id")).
		AddAssociation(schema.NewBelongsTo("section", "Section", "")).
		AddAssociation(schema.NewHasMany("comments", "Comment", "post_id"))

	comment := schema.New("Comment").
		AddField(schema.NewField("id").Int64().PrimaryKey().Build()).
		AddField(schema.NewField("body").String().Build()).
		AddField(schema.NewField("postId").Int64().Build()).
		AddField(schema.NewField("authorId").Int64().Build()).
		AddAssociation(schema.NewBelongsTo("post", "Post", "")).
		AddAssociation(schema.NewBelongsTo("author", "Person", "author_id"))

	return []*schema.Schema{person, section, post, comment}
}

// BlogDDL creates the fixture tables. It is portable across SQLite, MySQL
// and PostgreSQL.
var BlogDDL = []string{
	`CREATE TABLE people (id INTEGER PRIMARY KEY, name VARCHAR(255) NOT NULL, email VARCHAR(255))`,
	`CREATE TABLE sections (id INTEGER PRIMARY KEY, name VARCHAR(255) NOT NULL)`,
	`CREATE TABLE posts (id INTEGER PRIMARY KEY, title VARCHAR(255) NOT NULL, body TEXT, author_id INTEGER NOT NULL, section_id INTEGER)`,
	`CREATE TABLE comments (id INTEGER PRIMARY KEY, body TEXT NOT NULL, post_id INTEGER NOT NULL, author_id INTEGER NOT NULL)`,
}

// BlogSeed inserts a small, fully known data set:
//
//	people:   1 Alice, 2 Bob, 3 Carol
//	sections: 1 News, 2 Tech
//	posts:    1 "Go tips" (Bob, Tech), 2 "Hello" (Alice, News),
//	          3 "Zebra facts" (Alice, none), 4 "Another Go post" (Carol, Tech)
//	comments: 1..3 on post 1, 4..5 on post 2, 6 on post 4
var BlogSeed = []string{
	`INSERT INTO people (id, name, email) VALUES (1, 'Alice', 'alice@example.com'), (2, 'Bob', 'bob@example.com'), (3, 'Carol', NULL)`,
	`INSERT INTO sections (id, name) VALUES (1, 'News'), (2, 'Tech')`,
	`INSERT INTO posts (id, title, body, author_id, section_id) VALUES
		(1, 'Go tips', 'Use gofmt', 2, 2),
		(2, 'Hello', 'First post', 1, 1),
		(3, 'Zebra facts', 'Stripes', 1, NULL),
		(4, 'Another Go post', 'Channels', 3, 2)`,
	`INSERT INTO comments (id, body, post_id, author_id) VALUES
		(1, 'Nice', 1, 1),
		(2, 'Agreed', 1, 3),
		(3, 'Thanks', 1, 2),
		(4, 'Welcome', 2, 2),
		(5, 'Hi', 2, 3),
		(6, 'Buffered?', 4, 1)`,
}

// Execer runs a single statement.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SeedBlog creates and fills the fixture tables.
func SeedBlog(ctx context.Context, db Execer) error {
	for _, stmt := range BlogDDL {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	for _, stmt := range BlogSeed {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
