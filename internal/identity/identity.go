package identity

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider authenticates an operator. The directory ships with a single
// configured credential pair; a real user store can be dropped in behind
// this interface without touching token or middleware code.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) error
}

// StaticProvider holds the one operator credential pair from config and
// compares by exact equality. No hashing, nothing is persisted.
type StaticProvider struct {
	username string
	password string
}

func NewStaticProvider(username, password string) *StaticProvider {
	return &StaticProvider{username: username, password: password}
}

func (p *StaticProvider) Authenticate(_ context.Context, username, password string) error {
	if username != p.username || password != p.password {
		return ErrInvalidCredentials
	}
	return nil
}
