package models

import "time"

// TokenWithExpiry : le JWT signé et sa date d'expiration (RFC3339 en JSON).
type TokenWithExpiry struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens est la forme renvoyée au client après register/login.
// Seul un access token est émis — pas de refresh token.
type AuthTokens struct {
	Access TokenWithExpiry `json:"access"`
}
