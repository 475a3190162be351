package auth

import "time"

// Claims is the structured data carried inside a credential. Tokens are
// immutable once issued and there is no server-side revocation store, so
// acceptance is a pure function of these fields.
type Claims struct {
	UserID    string `json:"userId"`
	IsAdmin   bool   `json:"isAdmin"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
