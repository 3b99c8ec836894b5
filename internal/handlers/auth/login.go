package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"

	authn "lessonhub/internal/auth"
	"lessonhub/internal/utils"
)

type LoginHandler struct {
	DB            *sql.DB
	Secret        string
	SessionTTLHrs int
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ServeHTTP handles POST /api/login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	// 1. Find user
	var id int64
	var name, passwordHash string
	var isVerified bool
	err := h.DB.QueryRow(
		"SELECT id, name, password_hash, is_verified FROM users WHERE email=?",
		req.Email,
	).Scan(&id, &name, &passwordHash, &isVerified)
	if err == sql.ErrNoRows {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	} else if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Database error",
		})
		return
	}

	// 2. Verify password
	if !utils.CheckPassword(req.Password, passwordHash) {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}

	// 3. Correct password but unverified email gets its own error
	if !isVerified {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Please verify your email before logging in",
		})
		return
	}

	// 4. Establish session
	token, err := utils.GenerateSessionJWT(id, h.Secret, h.SessionTTLHrs)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to generate token",
		})
		return
	}

	SetSessionCookie(w, token, h.SessionTTLHrs)

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: LoginResponse{
			Token: token,
			Email: req.Email,
			Name:  name,
		},
	})
}

// SetSessionCookie attaches the session token as the authToken cookie the
// frontend expects: HTTP-only, SameSite=Lax.
func SetSessionCookie(w http.ResponseWriter, token string, ttlHours int) {
	http.SetCookie(w, &http.Cookie{
		Name:     authn.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   ttlHours * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
