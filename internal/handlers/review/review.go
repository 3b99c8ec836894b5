package review

import (
	"context"
	"encoding/json"
	"net/http"

	"lessonhub/internal/utils"
)

// MaxCodeBytes bounds a submission. Anything a lesson produces fits well
// under this; the cap keeps upstream token spend bounded.
const MaxCodeBytes = 64 * 1024

// Reviewer produces tutor feedback for a code snippet.
type Reviewer interface {
	Review(ctx context.Context, code string) (string, error)
}

type Handler struct {
	Reviewer Reviewer
}

type reviewRequest struct {
	Code string `json:"code"`
}

// ServeHTTP handles POST /api/ai/code-review
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Raw(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Code == "" {
		utils.Raw(w, http.StatusBadRequest, map[string]string{"error": "code is required"})
		return
	}
	if len(req.Code) > MaxCodeBytes {
		utils.Raw(w, http.StatusBadRequest, map[string]string{"error": "code exceeds the 64KiB limit"})
		return
	}

	feedback, err := h.Reviewer.Review(r.Context(), req.Code)
	if err != nil {
		// No retry, no backoff: an upstream failure is terminal for the
		// request and its message is relayed as-is.
		utils.Raw(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	utils.Raw(w, http.StatusOK, map[string]string{"feedback": feedback})
}
