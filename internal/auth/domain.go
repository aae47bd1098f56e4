package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/pedizone/pedizone-crm/internal/shared"
	"github.com/pedizone/pedizone-crm/internal/users"
)

// Claims is the JWT payload. Subject carries the user id.
type Claims struct {
	Role shared.Role `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and public user projection.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        users.User `json:"user"`
}
