package review

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeReviewer struct {
	feedback string
	err      error
	gotCode  string
}

func (f *fakeReviewer) Review(_ context.Context, code string) (string, error) {
	f.gotCode = code
	return f.feedback, f.err
}

func doReview(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/ai/code-review", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestReview_Success(t *testing.T) {
	f := &fakeReviewer{feedback: "Looks good, consider naming the variable."}
	h := &Handler{Reviewer: f}

	rec := doReview(h, `{"code":"print(1)"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"feedback":"Looks good, consider naming the variable."}`, rec.Body.String())
	assert.Equal(t, "print(1)", f.gotCode)
}

// Upstream failures are terminal 500s carrying the upstream message.
func TestReview_UpstreamFailure(t *testing.T) {
	h := &Handler{Reviewer: &fakeReviewer{err: errors.New("quota exceeded")}}

	rec := doReview(h, `{"code":"print(1)"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"quota exceeded"}`, rec.Body.String())
}

func TestReview_EmptyCode(t *testing.T) {
	h := &Handler{Reviewer: &fakeReviewer{feedback: "unused"}}

	rec := doReview(h, `{"code":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReview_CodeTooLarge(t *testing.T) {
	f := &fakeReviewer{feedback: "unused"}
	h := &Handler{Reviewer: f}

	big := strings.Repeat("a", MaxCodeBytes+1)
	rec := doReview(h, `{"code":"`+big+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.gotCode)
}

func TestReview_InvalidBody(t *testing.T) {
	h := &Handler{Reviewer: &fakeReviewer{}}

	rec := doReview(h, `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
