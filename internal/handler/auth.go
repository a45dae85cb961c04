package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/msomdec/projectpad/internal/domain"
	"github.com/msomdec/projectpad/internal/service"
)

// AuthHandler handles registration and session HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	loginLimiter *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, loginLimiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, loginLimiter: loginLimiter, cookieSecure: cookieSecure}
}

// HandleSignInPage is the target of unauthenticated redirects.
// GET /users/sign_in
func (h *AuthHandler) HandleSignInPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sign in to continue."})
}

// HandleRegister processes a registration form.
// POST /users with email, first_name, last_name, password.
// Redirects to the sign-in page on success.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	_, err := h.auth.Register(r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("first_name"),
		r.PostFormValue("last_name"),
		r.PostFormValue("password"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"errors": map[string][]string{"email": {"has already been taken"}},
			})
			return
		}
		if ve, ok := domain.AsValidationError(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": ve.Fields})
			return
		}
		slog.Error("register user", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.Redirect(w, r, "/users/sign_in", http.StatusSeeOther)
}

// HandleSignIn processes a sign-in form, rate limited per client address.
// POST /users/sign_in with email, password.
// Sets the auth cookie and redirects to the project list.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	if !h.loginLimiter.Allow(clientAddr(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many sign-in attempts. Please wait and try again.")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	token, err := h.auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		slog.Error("sign in user", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours, matching the token lifetime
	})

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// HandleSignOut clears the auth cookie.
// POST /users/sign_out
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/users/sign_in", http.StatusSeeOther)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
