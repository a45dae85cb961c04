package handler

import (
	"net/http"

	"github.com/msomdec/projectpad/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	projects *service.ProjectService,
	notes *service.NoteService,
	loginLimiter *service.TokenBucket,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, loginLimiter, cookieSecure)
	projectHandler := NewProjectHandler(projects)
	noteHandler := NewNoteHandler(notes)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /{$}", OptionalAuth(auth, http.HandlerFunc(HandleRoot)))

	mux.HandleFunc("GET /users/sign_in", authHandler.HandleSignInPage)
	mux.HandleFunc("POST /users", authHandler.HandleRegister)
	mux.HandleFunc("POST /users/sign_in", authHandler.HandleSignIn)
	mux.HandleFunc("POST /users/sign_out", authHandler.HandleSignOut)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.Handle("GET /projects", protected(projectHandler.HandleList))
	mux.Handle("POST /projects", protected(projectHandler.HandleCreate))
	mux.Handle("GET /projects/{id}", protected(projectHandler.HandleShow))
	mux.Handle("POST /projects/{id}", protected(projectHandler.HandleUpdate))
	mux.Handle("POST /projects/{id}/delete", protected(projectHandler.HandleDelete))

	mux.Handle("GET /projects/{id}/notes", protected(noteHandler.HandleList))
	mux.Handle("POST /projects/{id}/notes", protected(noteHandler.HandleCreate))
	mux.Handle("POST /notes/{id}/delete", protected(noteHandler.HandleDelete))
}

// HandleRoot is the dashboard entry point: signed-in users land on their
// project list, everyone else on the sign-in page.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/projects", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users/sign_in", http.StatusSeeOther)
}
