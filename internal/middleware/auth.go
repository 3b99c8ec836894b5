package middleware

import (
	"context"
	"net/http"

	"lessonhub/internal/auth"
	"lessonhub/internal/models"
	"lessonhub/internal/utils"
)

type contextKey string

// IdentityKey holds the verified models.Identity for the request.
const IdentityKey contextKey = "identity"

// FailureMode decides what an unauthenticated request gets back. Page
// routes redirect, API routes answer JSON; the verification itself is
// identical either way.
type FailureMode func(w http.ResponseWriter, r *http.Request)

func RedirectTo(path string) FailureMode {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}

func JSON401() FailureMode {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Unauthorized",
		})
	}
}

// RequireSession gates a route group behind session verification. Whether a
// route is public or protected is decided here, at registration time; there
// is no path allow-list to keep in sync.
func RequireSession(v *auth.Verifier, sources auth.Source, onFail FailureMode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := v.Verify(r, sources)
			if ident == nil {
				onFail(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, *ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity attached by RequireSession.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(IdentityKey).(models.Identity)
	return ident, ok
}
