// Package models — JWT token claim yapıları.
package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token'ın içinde taşınan claim'ler.
// jwt.RegisteredClaims standart alanları (exp, iat, iss) sağlar.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
