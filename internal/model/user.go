package model

import "time"

// User is the profile record served by the details endpoint.
// AvatarKey is the object storage key of the user's avatar and is never serialised.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDetails is the response body of GET /api/user/.
type UserDetails struct {
	User
	AvatarURL string `json:"avatar_url,omitempty"`
}
