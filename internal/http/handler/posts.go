package handler

import (
	"errors"
	"fmt"
	"net/http"

	"murmur/internal/auth"
	"murmur/internal/post"
)

// PostHandler serves the feed. Update and delete do not check that the
// caller owns the post.
type PostHandler struct {
	Responder
	Posts *post.Store
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request, s auth.Session) {
	uid, ok := h.optionalViewer(w, r, s)
	if !ok {
		return
	}
	posts, err := h.Posts.All(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	views, err := h.Posts.Views(r.Context(), posts, uid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "posts", PostsPage{Posts: views})
}

func (h *PostHandler) Mine(w http.ResponseWriter, r *http.Request, s auth.Session) {
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	posts, err := h.Posts.ByUser(r.Context(), uid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	views, err := h.Posts.Views(r.Context(), posts, uid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "my-posts", PostsPage{Posts: views})
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	uid, ok := h.optionalViewer(w, r, s)
	if !ok {
		return
	}
	p, ok := h.find(w, r, id)
	if !ok {
		return
	}
	v, err := h.Posts.View(r.Context(), *p, uid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "post", PostPage{Post: v, ViewerID: uid})
}

func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request, s auth.Session) {
	h.render(w, r, "add_post", nil)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request, s auth.Session) {
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	f, ok := formFields(w, r, "content")
	if !ok {
		return
	}
	if _, err := h.Posts.Create(r.Context(), uid, f[0]); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, ok := h.find(w, r, id)
	if !ok {
		return
	}
	h.render(w, r, "update_post", PostForm{Post: p})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, ok := formFields(w, r, "content")
	if !ok {
		return
	}
	if err := h.Posts.Update(r.Context(), id, f[0]); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Posts.Delete(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	if err := h.Posts.AddLike(r.Context(), id, uid); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, postPath(id), http.StatusSeeOther)
}

func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	f, ok := formFields(w, r, "content")
	if !ok {
		return
	}
	if err := h.Posts.AddComment(r.Context(), id, uid, f[0]); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, postPath(id), http.StatusSeeOther)
}

func (h *PostHandler) find(w http.ResponseWriter, r *http.Request, id uint64) (*post.Post, bool) {
	p, err := h.Posts.ByID(r.Context(), id)
	if errors.Is(err, post.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	return p, true
}

func postPath(id uint64) string {
	return fmt.Sprintf("/posts/%d", id)
}
