package models

import (
	"time"
)

// RevokedTokensCollection holds admin tokens invalidated by logout
const RevokedTokensCollection = "revokedTokens"

type RevokedToken struct {
	ID        string    `json:"id,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Admin is the authenticated principal of the admin area
type Admin struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
