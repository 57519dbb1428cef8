package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	v1 "staffhub/pkg/api/v1"
	"staffhub/pkg/logger"

	"go.uber.org/zap"
)

// State is the client session lifecycle.
type State int

const (
	StateLoggedOut State = iota
	StateRestoring
	StateActive
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateRestoring:
		return "restoring"
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
)

const (
	maxImageBytes = 5 << 20
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// StaffClient manages the operator session against a staffhub server: it
// holds the token pair, silently renews the access token on a timer, and
// attaches credentials to every outgoing request.
type StaffClient struct {
	addr         string
	httpClient   *http.Client
	store        Store
	refreshEvery time.Duration

	mu           sync.RWMutex
	state        State
	username     string
	accessToken  string
	refreshToken string

	ctx           context.Context
	cancel        context.CancelFunc
	sessionCancel context.CancelFunc
}

// NewStaffClient builds a client. refreshEvery must be shorter than the
// server's access token lifetime; 10 minutes suits the default 15m TTL.
func NewStaffClient(addr string, store Store, refreshEvery time.Duration) *StaffClient {
	if refreshEvery <= 0 {
		refreshEvery = 10 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &StaffClient{
		addr:         addr,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		store:        store,
		refreshEvery: refreshEvery,
		state:        StateLoggedOut,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (c *StaffClient) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *StaffClient) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// Restore optimistically loads a persisted session without a server round
// trip. The next authenticated call resolves StateRestoring to Active or
// Expired.
func (c *StaffClient) Restore() (State, error) {
	state, err := c.store.Load()
	if err != nil {
		return StateLoggedOut, err
	}
	if state == nil {
		return StateLoggedOut, nil
	}

	c.mu.Lock()
	c.username = state.Username
	c.refreshToken = state.RefreshToken
	c.accessToken = ""
	c.state = StateRestoring
	c.mu.Unlock()

	c.startRefreshLoop()
	return StateRestoring, nil
}

// Login authenticates and starts the silent-refresh timer.
func (c *StaffClient) Login(ctx context.Context, username, password string) error {
	payload, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	var grant v1.TokenGrant
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return err
	}

	c.mu.Lock()
	c.username = grant.User.Username
	c.accessToken = grant.AccessToken
	c.refreshToken = grant.RefreshToken
	c.state = StateActive
	c.mu.Unlock()

	if err := c.store.Save(&SessionState{Username: grant.User.Username, RefreshToken: grant.RefreshToken}); err != nil {
		logger.Warn("failed to persist session", zap.Error(err))
	}

	c.startRefreshLoop()
	return nil
}

// Logout clears local state first, then best-effort notifies the server so
// the cookies get expired. Always leaves the client logged out.
func (c *StaffClient) Logout(ctx context.Context) {
	c.mu.Lock()
	if c.sessionCancel != nil {
		c.sessionCancel()
		c.sessionCancel = nil
	}
	c.username = ""
	c.accessToken = ""
	c.refreshToken = ""
	c.state = StateLoggedOut
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		logger.Warn("failed to clear persisted session", zap.Error(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/logout", nil)
	if err != nil {
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("logout request failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}

// Close stops the refresh loop and releases the client.
func (c *StaffClient) Close() {
	c.cancel()
}

// startRefreshLoop replaces any running loop with a fresh one bound to the
// current session. The ticker must die with the session so it never fires
// against cleared state.
func (c *StaffClient) startRefreshLoop() {
	c.mu.Lock()
	if c.sessionCancel != nil {
		c.sessionCancel()
	}
	sessionCtx, cancel := context.WithCancel(c.ctx)
	c.sessionCancel = cancel
	c.mu.Unlock()

	go c.runRefreshLoop(sessionCtx)
}

func (c *StaffClient) runRefreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.refreshNow(ctx); err != nil {
				logger.Warn("silent refresh failed, logging out", zap.Error(err))
				c.Logout(context.Background())
				return
			}
		}
	}
}

// refreshNow exchanges the refresh token for a new access token. The
// refresh token itself never changes.
func (c *StaffClient) refreshNow(ctx context.Context) error {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()
	if refreshToken == "" {
		return ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/refresh-token", nil)
	if err != nil {
		return err
	}
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: refreshToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrNotAuthenticated
	case http.StatusForbidden:
		return ErrSessionExpired
	default:
		return serverError(resp)
	}

	var grant v1.AccessGrant
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = grant.AccessToken
	c.state = StateActive
	c.mu.Unlock()
	return nil
}

// do sends an authenticated request and decodes the JSON response into out.
// A restored session lazily renews its access token on the first call; that
// call's outcome resolves StateRestoring.
func (c *StaffClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	c.mu.RLock()
	state := c.state
	accessToken := c.accessToken
	refreshToken := c.refreshToken
	c.mu.RUnlock()

	if state == StateLoggedOut {
		return ErrNotAuthenticated
	}
	if accessToken == "" && refreshToken != "" {
		if err := c.refreshNow(ctx); err != nil {
			c.expire()
			return err
		}
		c.mu.RLock()
		accessToken = c.accessToken
		c.mu.RUnlock()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.addr+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.AddCookie(&http.Cookie{Name: accessCookie, Value: accessToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expire()
		return ErrNotAuthenticated
	case resp.StatusCode == http.StatusForbidden:
		c.expire()
		return ErrSessionExpired
	case resp.StatusCode >= 400:
		return serverError(resp)
	}

	c.mu.Lock()
	if c.state == StateRestoring {
		c.state = StateActive
	}
	c.mu.Unlock()

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *StaffClient) expire() {
	c.mu.Lock()
	if c.state == StateRestoring || c.state == StateActive {
		c.state = StateExpired
	}
	c.mu.Unlock()
}

func serverError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			return fmt.Errorf("server: %s", body.Error)
		}
		if body.Message != "" {
			return fmt.Errorf("server: %s", body.Message)
		}
	}
	return fmt.Errorf("server: unexpected status %d", resp.StatusCode)
}
