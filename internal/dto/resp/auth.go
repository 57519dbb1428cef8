package resp

type UserInfo struct {
	Username string `json:"username"`
}

// TokenResp is returned from login. Tokens are duplicated in the body so
// a client that cannot read the HTTP-only cookies can still manage its
// own session state.
type TokenResp struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int64    `json:"expiresIn"` // seconds
	User         UserInfo `json:"user"`
}

// RefreshResp is returned from refresh: a new access token only, the
// refresh token is never rotated.
type RefreshResp struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}
