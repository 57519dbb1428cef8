// Package v1 holds the wire types shared between the server and the
// client SDK.
package v1

import "time"

type Employee struct {
	ID          uint64    `json:"id"`
	ImageURL    string    `json:"image_url"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Designation string    `json:"designation"`
	Gender      string    `json:"gender"`
	Course      string    `json:"course"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	Username string `json:"username"`
}

// TokenGrant is the login response body. Tokens also travel as HTTP-only
// cookies; the body copy lets the client persist its own session state.
type TokenGrant struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         User   `json:"user"`
}

// AccessGrant is the refresh response body: a renewed access token only.
type AccessGrant struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}
