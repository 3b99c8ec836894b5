package auth

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"lessonhub/internal/models"
	"lessonhub/internal/utils"
)

// CookieName is the cookie the frontend stores the session token under.
const CookieName = "authToken"

// Source selects which request locations a verifier call accepts the
// bearer credential from.
type Source uint8

const (
	SourceHeader Source = 1 << iota
	SourceCookie
)

// Verifier resolves an inbound request to an Identity. One routine serves
// every guarded surface; callers only vary the accepted credential sources.
type Verifier struct {
	DB     *sql.DB
	Secret string
}

func NewVerifier(db *sql.DB, secret string) *Verifier {
	return &Verifier{DB: db, Secret: secret}
}

// Verify returns the Identity for the request's credential, or nil. A nil
// result covers missing token, malformed token, unknown user, and an
// unverified account alike; callers cannot tell these apart and a failure
// here is never a server fault.
func (v *Verifier) Verify(r *http.Request, sources Source) *models.Identity {
	tokenStr := extractToken(r, sources)
	if tokenStr == "" {
		return nil
	}

	userID, err := utils.ParseSessionJWT(tokenStr, v.Secret)
	if err != nil {
		logrus.WithError(err).Debug("session token rejected")
		return nil
	}

	var ident models.Identity
	var isVerified bool
	err = v.DB.QueryRow(
		"SELECT id, email, name, is_verified FROM users WHERE id=?",
		userID,
	).Scan(&ident.ID, &ident.Email, &ident.Name, &isVerified)
	if err != nil {
		if err != sql.ErrNoRows {
			logrus.WithError(err).Error("session verification query failed")
		}
		return nil
	}
	if !isVerified {
		return nil
	}

	return &ident
}

func extractToken(r *http.Request, sources Source) string {
	if sources&SourceHeader != 0 {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if sources&SourceCookie != 0 {
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}
