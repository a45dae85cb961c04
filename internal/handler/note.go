package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/projectpad/internal/service"
)

// NoteHandler handles note HTTP requests, scoped under a project.
type NoteHandler struct {
	notes *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// HandleList returns a project's notes, filtered by the q parameter when
// present.
// GET /projects/{id}/notes[?q=term]
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	actor := UserFromContext(r.Context())
	var notes []NoteDTO
	if term := r.URL.Query().Get("q"); term != "" {
		found, err := h.notes.Search(r.Context(), actor, projectID, term)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		notes = toNoteDTOs(found)
	} else {
		all, err := h.notes.ListForProject(r.Context(), actor, projectID)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		notes = toNoteDTOs(all)
	}

	if notes == nil {
		notes = []NoteDTO{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// HandleCreate attaches a note to a project.
// POST /projects/{id}/notes with message.
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	_, err = h.notes.Create(r.Context(), UserFromContext(r.Context()), projectID, r.PostFormValue("message"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	http.Redirect(w, r, "/projects/"+strconv.FormatInt(projectID, 10), http.StatusSeeOther)
}

// HandleDelete removes a note.
// POST /notes/{id}/delete
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid note ID.")
		return
	}

	if err := h.notes.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		respondDomainError(w, r, err)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}
