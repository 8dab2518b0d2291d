package models

import (
	"database/sql"
	"time"
)

// User represents a user row, including authentication state.
type User struct {
	UserID         string `db:"user_id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
	PasswordHash   string `db:"password_hash"`
	AuthProvider   string `db:"auth_provider"`
	ProviderUserID string `db:"provider_user_id"`
	EmailVerified  bool   `db:"email_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token columns, only the hash is stored.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
