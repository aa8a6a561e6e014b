// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is an argon2id PHC string; the plaintext is never stored.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity bound to a session.
type Principal struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
