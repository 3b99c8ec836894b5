package auth

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authn "lessonhub/internal/auth"
	"lessonhub/internal/utils"
)

func newLoginHandler(t *testing.T) (*LoginHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &LoginHandler{DB: db, Secret: testSecret, SessionTTLHrs: 168}, mock
}

func loginRows(t *testing.T, password string, verified bool) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "name", "password_hash", "is_verified"}).
		AddRow(1, "User", hash, verified)
}

func doLogin(h *LoginHandler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestLogin_Success(t *testing.T) {
	h, mock := newLoginHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password_hash, is_verified FROM users WHERE email=?")).
		WithArgs("user@example.com").
		WillReturnRows(loginRows(t, "s3cret", true))

	rec := doLogin(h, `{"email":"user@example.com","password":"s3cret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login successful")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, authn.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 168*3600, cookies[0].MaxAge)

	userID, err := utils.ParseSessionJWT(cookies[0].Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, mock := newLoginHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password_hash, is_verified FROM users WHERE email=?")).
		WillReturnError(sql.ErrNoRows)

	rec := doLogin(h, `{"email":"nobody@example.com","password":"s3cret"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLogin_WrongPassword(t *testing.T) {
	h, mock := newLoginHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password_hash, is_verified FROM users WHERE email=?")).
		WillReturnRows(loginRows(t, "s3cret", true))

	rec := doLogin(h, `{"email":"user@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

// A correct password on an unverified account gets its own error, not the
// generic credential one.
func TestLogin_UnverifiedAccount(t *testing.T) {
	h, mock := newLoginHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password_hash, is_verified FROM users WHERE email=?")).
		WillReturnRows(loginRows(t, "s3cret", false))

	rec := doLogin(h, `{"email":"user@example.com","password":"s3cret"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please verify your email")
	assert.NotContains(t, rec.Body.String(), "Invalid email or password")
}
