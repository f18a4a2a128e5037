package models

import "github.com/golang-jwt/jwt/v5"

// FarmClaims are the JWT claims inspected to attach the farm context to
// a request. Tokens are issued by the surrounding auth platform; this
// service only verifies them when present.
type FarmClaims struct {
	UserID string `json:"user_id"`
	FarmID string `json:"farm_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
