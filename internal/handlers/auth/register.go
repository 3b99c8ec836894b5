package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"lessonhub/internal/mail"
	"lessonhub/internal/utils"
)

// EmailTokenTTL bounds both the verification and the reset token.
const EmailTokenTTL = 24 * time.Hour

type RegisterHandler struct {
	DB      *sql.DB
	Secret  string
	Mailer  mail.Sender
	BaseURL string
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ServeHTTP handles POST /api/register
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "email, name and password are required",
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

	verifyToken, err := utils.GenerateEmailToken(req.Email, h.Secret, EmailTokenTTL)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to generate verification token",
		})
		return
	}

	// The unique index on email is the real duplicate check; 1062 is
	// MySQL's duplicate-entry error.
	_, err = h.DB.Exec(
		"INSERT INTO users (name, email, password_hash, verification_token) VALUES (?, ?, ?, ?)",
		req.Name, req.Email, hash, verifyToken,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Email already registered",
			})
			return
		}
		logrus.WithError(err).Error("register: insert failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Could not create user",
		})
		return
	}

	link := h.BaseURL + "/api/verify-email/" + verifyToken
	if err := h.Mailer.SendVerification(r.Context(), req.Email, req.Name, link); err != nil {
		logrus.WithError(err).Error("register: verification mail failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to send verification email: " + err.Error(),
		})
		return
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful. Please check your email to verify your account.",
	})
}
