package dto

import "time"

// LoginResponse represents the response for a successful login. The raw
// refresh token is also set as an HTTP-only cookie; it is echoed here for
// non-browser clients.
type LoginResponse struct {
	Token          string       `json:"token"`
	TokenExpiresAt time.Time    `json:"tokenExpiresAt"`
	RefreshToken   string       `json:"refreshToken,omitempty"`
	User           UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
	RefreshToken   string    `json:"refreshToken,omitempty"`
}
