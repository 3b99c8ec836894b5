package auth

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForgotHandler(t *testing.T) (*ForgotPasswordHandler, sqlmock.Sqlmock, *fakeMailer) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mailer := &fakeMailer{}
	return &ForgotPasswordHandler{DB: db, Mailer: mailer, BaseURL: "http://localhost:8080"}, mock, mailer
}

func doForgot(h *ForgotPasswordHandler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/forgot-password", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// The response must be byte-identical whether or not the account exists.
func TestForgotPassword_NoEnumerationSignal(t *testing.T) {
	h, mock, mailer := newForgotHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE email=?")).
		WithArgs("exists@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "User"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET reset_token=?, reset_token_expiry=? WHERE id=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	existing := doForgot(h, `{"email":"exists@example.com"}`)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE email=?")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)
	missing := doForgot(h, `{"email":"nobody@example.com"}`)

	assert.Equal(t, http.StatusOK, existing.Code)
	assert.Equal(t, http.StatusOK, missing.Code)
	assert.Equal(t, existing.Body.String(), missing.Body.String())

	// but only the real account got mail
	require.Len(t, mailer.resetTo, 1)
	assert.Equal(t, "exists@example.com", mailer.resetTo[0])
}

// A mail dispatch failure must not change the response either.
func TestForgotPassword_MailFailureStaysGeneric(t *testing.T) {
	h, mock, mailer := newForgotHandler(t)
	mailer.err = assert.AnError

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE email=?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "User"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET reset_token=?, reset_token_expiry=? WHERE id=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doForgot(h, `{"email":"exists@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), forgotMessage)
}

func newResetRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := &ResetPasswordHandler{DB: db}
	r := chi.NewRouter()
	r.Post("/api/reset-password/{token}", h.ServeHTTP)
	return r, mock
}

func doReset(router chi.Router, token, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/reset-password/"+token, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestResetPassword_Success(t *testing.T) {
	router, mock := newResetRouter(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=?, reset_token=NULL, reset_token_expiry=NULL WHERE reset_token=? AND reset_token_expiry > ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doReset(router, "sometoken", `{"password":"newpass"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset successfully")
}

// The consuming UPDATE matches zero rows the second time around.
func TestResetPassword_SingleUse(t *testing.T) {
	router, mock := newResetRouter(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=?")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	first := doReset(router, "sometoken", `{"password":"newpass"}`)
	second := doReset(router, "sometoken", `{"password":"otherpass"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "Invalid or expired reset token")
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	router, mock := newResetRouter(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=?")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := doReset(router, "expiredtoken", `{"password":"newpass"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPassword_EmptyPassword(t *testing.T) {
	router, _ := newResetRouter(t)

	rec := doReset(router, "sometoken", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
