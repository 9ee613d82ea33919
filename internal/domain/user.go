package domain

import "time"

// UserStatus represents the account status of a user.
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

// User is a registered account with a streaming profile.
// IsAdmin is the global mutable privilege flag: it is re-read from the store
// on every request so that revocation takes effect immediately. Authorization
// decisions must never trust a previously issued token claim for it.
type User struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Country   string     `json:"country,omitempty"`
	Language  string     `json:"language,omitempty"`
	IsAdmin   bool       `json:"is_admin"`
	Status    UserStatus `json:"status"`

	// PasswordHash is the argon2id hash; never serialized.
	PasswordHash string `json:"-"`

	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

// IsBanned reports whether the account has been banned.
func (u *User) IsBanned() bool {
	return u.Status == UserStatusBanned
}
