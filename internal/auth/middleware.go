package auth

import (
	"context"
	"net/http"
	"strings"
)

// CookieName is the session cookie set on sign-in.
const CookieName = "token"

type contextKey string

const editorIDKey contextKey = "editorID"

// RequireEditor rejects requests without a valid session with 401 and puts
// the editor id on the context of the rest.
func RequireEditor(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			editorID, err := extractEditorID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"editor sign-in required"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEditorID(r.Context(), editorID)))
		})
	}
}

// OptionalEditor records the editor id when a valid session is present and
// lets anonymous requests through untouched.
func OptionalEditor(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if editorID, err := extractEditorID(r, tokens); err == nil {
				r = r.WithContext(WithEditorID(r.Context(), editorID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithEditorID(ctx context.Context, editorID string) context.Context {
	return context.WithValue(ctx, editorIDKey, editorID)
}

// EditorIDFromContext returns ("", false) for anonymous requests.
func EditorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(editorIDKey).(string)
	return id, ok && id != ""
}

// extractEditorID prefers the cookie and falls back to a bearer token so
// scripts can call the API without a cookie jar.
func extractEditorID(r *http.Request, tokens *TokenService) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		return tokens.Validate(cookie.Value)
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return tokens.Validate(strings.TrimSpace(token))
	}
	return "", http.ErrNoCookie
}
