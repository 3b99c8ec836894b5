package session

import (
	"net/http"

	authn "lessonhub/internal/auth"
	authh "lessonhub/internal/handlers/auth"
	"lessonhub/internal/models"
	"lessonhub/internal/utils"
)

type VerifyHandler struct {
	Verifier      *authn.Verifier
	Secret        string
	SessionTTLHrs int
}

type verifyResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *models.Identity `json:"user,omitempty"`
}

// ServeHTTP handles POST /api/verify-session. The route does its own
// verification instead of sitting behind the guard because its negative
// answer is a 200-shaped contract with the frontend, not a 401 redirect.
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ident := h.Verifier.Verify(r, authn.SourceHeader|authn.SourceCookie)
	if ident == nil {
		utils.Raw(w, http.StatusUnauthorized, verifyResponse{Authenticated: false})
		return
	}

	// Refresh the cookie so an active user keeps a rolling 7-day window.
	token, err := utils.GenerateSessionJWT(ident.ID, h.Secret, h.SessionTTLHrs)
	if err == nil {
		authh.SetSessionCookie(w, token, h.SessionTTLHrs)
	}

	utils.Raw(w, http.StatusOK, verifyResponse{
		Authenticated: true,
		User:          ident,
	})
}
