package handler

import (
	"murmur/internal/note"
	"murmur/internal/post"
)

// View models handed to the renderer.

type PostsPage struct {
	Posts []post.View
}

type PostPage struct {
	Post     post.View
	ViewerID uint64
}

type PostForm struct {
	Post *post.Post
}

type NotesPage struct {
	Notes []note.Note
}

type NotePage struct {
	Note *note.Note
}
