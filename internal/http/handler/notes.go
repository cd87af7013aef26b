package handler

import (
	"errors"
	"net/http"

	"murmur/internal/auth"
	"murmur/internal/note"
)

// NoteHandler lists only the caller's notes, but single-note routes load
// any note by id.
type NoteHandler struct {
	Responder
	Notes *note.Store
}

const notesPath = "/notes"

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request, s auth.Session) {
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	notes, err := h.Notes.ByUser(r.Context(), uid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "notes", NotesPage{Notes: notes})
}

func (h *NoteHandler) Show(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, ok := h.find(w, r, id)
	if !ok {
		return
	}
	h.render(w, r, "view_note", NotePage{Note: n})
}

func (h *NoteHandler) NewForm(w http.ResponseWriter, r *http.Request, s auth.Session) {
	h.render(w, r, "add_note", nil)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request, s auth.Session) {
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	f, ok := formFields(w, r, "title", "content")
	if !ok {
		return
	}
	if _, err := h.Notes.Create(r.Context(), uid, f[0], f[1]); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, notesPath, http.StatusSeeOther)
}

func (h *NoteHandler) EditForm(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, ok := h.find(w, r, id)
	if !ok {
		return
	}
	h.render(w, r, "update_note", NotePage{Note: n})
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, ok := formFields(w, r, "title", "content")
	if !ok {
		return
	}
	if err := h.Notes.Update(r.Context(), id, f[0], f[1]); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, notesPath, http.StatusSeeOther)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request, s auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Notes.Delete(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, notesPath, http.StatusSeeOther)
}

func (h *NoteHandler) find(w http.ResponseWriter, r *http.Request, id uint64) (*note.Note, bool) {
	n, err := h.Notes.ByID(r.Context(), id)
	if errors.Is(err, note.ErrNotFound) {
		http.Error(w, "Note not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	return n, true
}
