package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/msomdec/projectpad/internal/service"
)

// ProjectHandler handles project CRUD HTTP requests. Mutations are form
// posts answered with redirects; reads return JSON.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// HandleList returns the acting user's projects.
// GET /projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListForOwner(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects": toProjectDTOs(projects, time.Now()),
	})
}

// HandleShow returns a single project.
// GET /projects/{id}
func (h *ProjectHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	project, err := h.projects.Get(r.Context(), UserFromContext(r.Context()), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project": toProjectDTO(project, time.Now()),
	})
}

// HandleCreate processes project creation from a form.
// POST /projects with name, description, due_on (YYYY-MM-DD).
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	attrs, ok := parseProjectForm(w, r)
	if !ok {
		return
	}

	project, err := h.projects.Create(r.Context(), UserFromContext(r.Context()), attrs)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	http.Redirect(w, r, "/projects/"+strconv.FormatInt(project.ID, 10), http.StatusSeeOther)
}

// HandleUpdate processes a project edit form.
// POST /projects/{id}
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	attrs, ok := parseProjectForm(w, r)
	if !ok {
		return
	}

	project, err := h.projects.Update(r.Context(), UserFromContext(r.Context()), id, attrs)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	http.Redirect(w, r, "/projects/"+strconv.FormatInt(project.ID, 10), http.StatusSeeOther)
}

// HandleDelete destroys a project and its notes.
// POST /projects/{id}/delete
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	if err := h.projects.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		respondDomainError(w, r, err)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func parseProjectForm(w http.ResponseWriter, r *http.Request) (service.ProjectAttrs, bool) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data.")
		return service.ProjectAttrs{}, false
	}

	attrs := service.ProjectAttrs{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}

	if raw := r.PostFormValue("due_on"); raw != "" {
		dueOn, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"errors": map[string][]string{"due_on": {"must be a date in YYYY-MM-DD format"}},
			})
			return service.ProjectAttrs{}, false
		}
		attrs.DueOn = dueOn
	}

	return attrs, true
}
