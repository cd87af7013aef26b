package handler

import (
	"errors"
	"net/http"
	"strconv"

	"murmur/internal/auth"
	"murmur/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Responder carries what every handler needs to answer a request.
type Responder struct {
	Views view.Renderer
	Log   *zap.Logger
}

func (h Responder) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.Views.Render(w, http.StatusOK, name, data); err != nil {
		h.serverError(w, r, err)
	}
}

func (h Responder) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	http.Error(w, "server error", http.StatusInternalServerError)
}

// viewer resolves the session user id. A session whose user no longer
// exists is sent back to the login page; ok is false whenever a response
// has already been written.
func (h Responder) viewer(w http.ResponseWriter, r *http.Request, s auth.Session) (uint64, bool) {
	id, err := s.UserID(r.Context())
	if errors.Is(err, auth.ErrUserNotFound) {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return 0, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return 0, false
	}
	return id, true
}

// optionalViewer is viewer for read-only pages: an unresolvable user is
// just an anonymous viewer (id 0).
func (h Responder) optionalViewer(w http.ResponseWriter, r *http.Request, s auth.Session) (uint64, bool) {
	id, err := s.UserID(r.Context())
	if errors.Is(err, auth.ErrUserNotFound) {
		return 0, true
	}
	if err != nil {
		h.serverError(w, r, err)
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// formFields returns the named POST fields in order. A missing field is
// a 400, an empty one is accepted.
func formFields(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return nil, false
	}
	out := make([]string, len(names))
	for i, n := range names {
		vs, ok := r.PostForm[n]
		if !ok || len(vs) == 0 {
			http.Error(w, "missing form field: "+n, http.StatusBadRequest)
			return nil, false
		}
		out[i] = vs[0]
	}
	return out, true
}
