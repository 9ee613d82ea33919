package auth

import "time"

// AccessClaims represents the claims stored in a PASETO access token.
// The claims identify the account only; the admin flag is deliberately NOT a
// claim. Privilege is re-read from the store on every request, so a token
// minted before a revocation can never grant admin access.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
