package models

import "github.com/golang-jwt/jwt/v5"

// TokenRequest holds the identity claims presented for token issuance.
// Authentication itself happens upstream; the API only mints the session.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse returns the issued session token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// SessionClaims is the JWT payload carried on every authenticated request.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
