package models

import "time"

type User struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	IsVerified        bool       `json:"is_verified"`
	VerificationToken *string    `json:"-"`
	ResetToken        *string    `json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Identity is what a successful session verification yields. Handlers see
// this in the request context, never the full User row.
type Identity struct {
	ID    int64  `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
