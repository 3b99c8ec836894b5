package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"lessonhub/internal/mail"
	"lessonhub/internal/utils"
)

// forgotMessage is returned whether or not the email exists, so responses
// carry no enumeration signal.
const forgotMessage = "If an account exists for that email, a reset link has been sent."

type ForgotPasswordHandler struct {
	DB      *sql.DB
	Mailer  mail.Sender
	BaseURL string
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ServeHTTP handles POST /api/forgot-password
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	var id int64
	var name string
	err := h.DB.QueryRow("SELECT id, name FROM users WHERE email=?", req.Email).Scan(&id, &name)
	if err == sql.ErrNoRows {
		utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: forgotMessage})
		return
	} else if err != nil {
		logrus.WithError(err).Error("forgot-password: lookup failed")
		utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: forgotMessage})
		return
	}

	token, err := utils.RandomTokenHex(32)
	if err != nil {
		logrus.WithError(err).Error("forgot-password: token generation failed")
		utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: forgotMessage})
		return
	}

	expiry := time.Now().Add(EmailTokenTTL)
	if _, err := h.DB.Exec(
		"UPDATE users SET reset_token=?, reset_token_expiry=? WHERE id=?",
		token, expiry, id,
	); err != nil {
		logrus.WithError(err).Error("forgot-password: update failed")
		utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: forgotMessage})
		return
	}

	link := h.BaseURL + "/reset-password/" + token
	if err := h.Mailer.SendPasswordReset(r.Context(), req.Email, name, link); err != nil {
		// Surfacing the dispatch failure would reveal the account exists.
		logrus.WithError(err).Error("forgot-password: mail failed")
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: forgotMessage})
}

type ResetPasswordHandler struct {
	DB *sql.DB
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ServeHTTP handles POST /api/reset-password/{token}
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Password == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "password is required",
		})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to hash password",
		})
		return
	}

	// Single statement: the password update and the token consumption
	// either both happen or neither does, and an expired or already-used
	// token matches zero rows.
	res, err := h.DB.Exec(
		"UPDATE users SET password_hash=?, reset_token=NULL, reset_token_expiry=NULL WHERE reset_token=? AND reset_token_expiry > ?",
		hash, tokenStr, time.Now(),
	)
	if err != nil {
		logrus.WithError(err).Error("reset-password: update failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Database error",
		})
		return
	}
	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid or expired reset token",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password reset successfully. You can now log in.",
	})
}
