package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/auth"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/service"
)

const stateCookieName = "oauth_state"

// GitHubAuthenticator is the OAuth flow the callback drives.
// *auth.GitHubProvider implements it.
type GitHubAuthenticator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GitHubUser, error)
}

// AuthHandler signs editors in and out.
//
//   - HandleLogin          → shared admin password
//   - HandleGitHubLogin    → redirect to GitHub's consent page
//   - HandleGitHubCallback → exchange the code, check the allow-list, set the session
//   - HandleLogout         → clear the session cookie
//   - HandleMe             → the signed-in editor
type AuthHandler struct {
	auth       *service.AuthService
	github     GitHubAuthenticator
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthHandler creates an AuthHandler. github may be nil when GitHub
// sign-in is not configured.
func NewAuthHandler(
	authService *service.AuthService,
	github GitHubAuthenticator,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:       authService,
		github:     github,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type loginResponse struct {
	Editor *model.Editor `json:"editor"`
	Token  string        `json:"token"`
}

// HandleLogin checks the admin password and starts a session.
//
// HTTP: POST /auth/login   {"password": "..."}
//
// The token is returned in the body as well as the cookie so scripts can
// send it as a bearer token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decodeBody(w, r, &body, func(f url.Values) { body.Password = f.Get("password") }); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.LoginWithPassword(r.Context(), body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSession(w, result.Token)
	writeJSON(w, http.StatusOK, loginResponse{Editor: result.Editor, Token: result.Token})
}

// HandleGitHubLogin redirects to GitHub's authorization page.
//
// HTTP: GET /auth/github/login
//
// A random state is kept in a short-lived cookie and must come back on the
// callback, which ties the callback to a login this server started.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the GitHub sign-in.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || q.Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: invalid state")
		writeError(w, apperror.ValidationFailed("state", "invalid OAuth state"))
		return
	}

	// The state is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   stateCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := q.Get("error"); errParam != "" {
		h.logger.Info("auth callback: authorization denied", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := q.Get("code")
	if code == "" {
		writeError(w, apperror.ValidationFailed("code", "missing OAuth code"))
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_error",
			Message: "GitHub sign-in failed",
		})
		return
	}

	result, err := h.auth.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSession(w, result.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie. The token itself stays valid
// until it expires.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the signed-in editor.
//
// HTTP: GET /api/me   (behind RequireEditor)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	editorID, _ := auth.EditorIDFromContext(r.Context())

	editor, err := h.auth.GetEditor(r.Context(), editorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editor)
}

// setSession stores the token in an HttpOnly cookie that lives as long as
// the token.
func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
