package auth

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"lessonhub/internal/utils"
)

type VerifyEmailHandler struct {
	DB     *sql.DB
	Secret string
}

// ServeHTTP handles GET /api/verify-email/{token}
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	email, err := utils.ParseEmailToken(tokenStr, h.Secret)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid or expired verification link",
		})
		return
	}

	// The presented token must also match the stored one. Re-registering
	// reissues the token, so an older link for the same email dies here.
	var id int64
	var stored sql.NullString
	err = h.DB.QueryRow(
		"SELECT id, verification_token FROM users WHERE email=?",
		email,
	).Scan(&id, &stored)
	if err == sql.ErrNoRows {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid or expired verification link",
		})
		return
	} else if err != nil {
		logrus.WithError(err).Error("verify-email: lookup failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Database error",
		})
		return
	}

	if !stored.Valid || !utils.TokensEqual(stored.String, tokenStr) {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid or expired verification link",
		})
		return
	}

	if _, err := h.DB.Exec(
		"UPDATE users SET is_verified=TRUE, verification_token=NULL WHERE id=?",
		id,
	); err != nil {
		logrus.WithError(err).Error("verify-email: update failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Database error",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Email verified successfully. You can now log in.",
	})
}
