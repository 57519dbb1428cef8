package service

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/dto/req"
	"staffhub/internal/dto/resp"
	"staffhub/internal/identity"
	"staffhub/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthService issues and renews the token pair. It is stateless: there is
// no session registry, so concurrent logins by the same operator produce
// independent, non-interfering pairs and revocation before natural expiry
// is not supported.
type AuthService struct {
	provider        identity.Provider
	accessSecret    []byte
	refreshSecret   []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(provider identity.Provider, accessSecret, refreshSecret []byte, accessTokenTTL, refreshTokenTTL time.Duration) *AuthService {
	return &AuthService{
		provider:        provider,
		accessSecret:    accessSecret,
		refreshSecret:   refreshSecret,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (s *AuthService) AccessTokenTTL() time.Duration  { return s.accessTokenTTL }
func (s *AuthService) RefreshTokenTTL() time.Duration { return s.refreshTokenTTL }

// Login authenticates the operator and returns a fresh token pair, both
// carrying the same username claim.
func (s *AuthService) Login(ctx context.Context, body req.LoginReq) (*resp.TokenResp, error) {
	if err := s.provider.Authenticate(ctx, body.Username, body.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := token.Issue(body.Username, s.accessSecret, s.accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := token.Issue(body.Username, s.refreshSecret, s.refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &resp.TokenResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		User:         resp.UserInfo{Username: body.Username},
	}, nil
}

// Refresh verifies the refresh token and mints a new access token only.
// The username claim is copied from the refresh token; nothing external is
// consulted, and the refresh token itself is never rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*resp.RefreshResp, error) {
	claims, err := token.Verify(refreshToken, s.refreshSecret)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	accessToken, err := token.Issue(claims.Username, s.accessSecret, s.accessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &resp.RefreshResp{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.accessTokenTTL.Seconds()),
	}, nil
}
