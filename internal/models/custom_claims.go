package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims carries the application claims inside issued JWTs.
// TokenType distinguishes access tokens from anything else presented
// at the bearer-auth boundary.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
}
