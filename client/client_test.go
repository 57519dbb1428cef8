package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"staffhub/pkg/logger"
)

func init() {
	logger.InitLogger("test")
}

type fakeServer struct {
	mux          *http.ServeMux
	srv          *httptest.Server
	hits         int64
	refreshFails bool
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{mux: http.NewServeMux()}

	f.mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.hits, 1)
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "admin" || body.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
			"expiresIn":    900,
			"user":         map[string]string{"username": "admin"},
		})
	})

	f.mux.HandleFunc("POST /refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.hits, 1)
		if f.refreshFails {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "refresh token expired"})
			return
		}
		cookie, err := r.Cookie("refreshToken")
		if err != nil || cookie.Value != "refresh-1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "refresh token is required"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "access-2",
			"expiresIn":   900,
		})
	})

	f.mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.hits, 1)
		json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	})

	f.mux.HandleFunc("GET /employees", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.hits, 1)
		auth := r.Header.Get("Authorization")
		if auth != "Bearer access-1" && auth != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "access denied, no token provided"})
			return
		}
		json.NewEncoder(w).Encode([]any{})
	})

	f.srv = httptest.NewServer(f.mux)
	t.Cleanup(f.srv.Close)
	return f
}

func newTestClient(t *testing.T, f *fakeServer, refreshEvery time.Duration) *StaffClient {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	c := NewStaffClient(f.srv.URL, store, refreshEvery)
	t.Cleanup(c.Close)
	return c
}

func TestLoginActivatesSession(t *testing.T) {
	f := newFakeServer(t)
	c := newTestClient(t, f, time.Hour)

	if err := c.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if c.State() != StateActive {
		t.Errorf("state = %v, want active", c.State())
	}
	if c.Username() != "admin" {
		t.Errorf("username = %q, want admin", c.Username())
	}

	// The access token rides every outgoing request.
	if _, err := c.ListEmployees(context.Background(), ""); err != nil {
		t.Fatalf("ListEmployees() error: %v", err)
	}

	// Identity and refresh token survive in the store.
	state, err := c.store.Load()
	if err != nil || state == nil {
		t.Fatalf("store.Load() = %v, %v", state, err)
	}
	if state.Username != "admin" || state.RefreshToken != "refresh-1" {
		t.Errorf("persisted state = %+v", state)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFakeServer(t)
	c := newTestClient(t, f, time.Hour)

	err := c.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if c.State() != StateLoggedOut {
		t.Errorf("state = %v, want logged_out", c.State())
	}
}

func TestCallsWhileLoggedOut(t *testing.T) {
	f := newFakeServer(t)
	c := newTestClient(t, f, time.Hour)

	if _, err := c.ListEmployees(context.Background(), ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("ListEmployees() error = %v, want ErrNotAuthenticated", err)
	}
	if hits := atomic.LoadInt64(&f.hits); hits != 0 {
		t.Errorf("server hit %d times for a logged-out client", hits)
	}
}

func TestOptimisticRestore(t *testing.T) {
	f := newFakeServer(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(&SessionState{Username: "admin", RefreshToken: "refresh-1"}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	c := NewStaffClient(f.srv.URL, store, time.Hour)
	defer c.Close()

	state, err := c.Restore()
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if state != StateRestoring {
		t.Fatalf("state after restore = %v, want restoring", state)
	}
	// Restore itself makes no server round trip.
	if hits := atomic.LoadInt64(&f.hits); hits != 0 {
		t.Errorf("server hit %d times during restore", hits)
	}

	// The first authenticated call resolves the session.
	if _, err := c.ListEmployees(context.Background(), ""); err != nil {
		t.Fatalf("ListEmployees() after restore: %v", err)
	}
	if c.State() != StateActive {
		t.Errorf("state = %v, want active", c.State())
	}
}

func TestRestoreOfDeadSession(t *testing.T) {
	f := newFakeServer(t)
	f.refreshFails = true
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(&SessionState{Username: "admin", RefreshToken: "refresh-1"}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	c := NewStaffClient(f.srv.URL, store, time.Hour)
	defer c.Close()

	if _, err := c.Restore(); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	_, err := c.ListEmployees(context.Background(), "")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("ListEmployees() error = %v, want ErrSessionExpired", err)
	}
	if c.State() != StateExpired {
		t.Errorf("state = %v, want expired", c.State())
	}
}

func TestRestoreWithEmptyStore(t *testing.T) {
	f := newFakeServer(t)
	c := newTestClient(t, f, time.Hour)

	state, err := c.Restore()
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if state != StateLoggedOut {
		t.Errorf("state = %v, want logged_out", state)
	}
}

func TestSilentRefreshFailureLogsOut(t *testing.T) {
	f := newFakeServer(t)
	c := newTestClient(t, f, 20*time.Millisecond)

	if err := c.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	// Kill the session server-side; the next tick must tear it down.
	f.refreshFails = true

	deadline := time.After(2 * time.Second)
	for c.State() != StateLoggedOut {
		select {
		case <-deadline:
			t.Fatalf("client never logged out, state = %v", c.State())
		case <-time.After(10 * time.Millisecond):
		}
	}

	state, err := c.store.Load()
	if err != nil {
		t.Fatalf("store.Load() error: %v", err)
	}
	if state != nil {
		t.Errorf("persisted session not cleared: %+v", state)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFakeServer(t)
	c := newTestClient(t, f, time.Hour)

	c.Logout(context.Background())
	c.Logout(context.Background())

	if c.State() != StateLoggedOut {
		t.Errorf("state = %v, want logged_out", c.State())
	}
}

func TestCheckImage(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}
	gif := []byte("GIF89a trailer bytes")
	oversize := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, maxImageBytes)...)

	if err := checkImage(jpeg); err != nil {
		t.Errorf("jpeg rejected: %v", err)
	}
	if err := checkImage(gif); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("gif error = %v, want ErrUnsupportedImage", err)
	}
	if err := checkImage(oversize); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("oversize error = %v, want ErrImageTooLarge", err)
	}
}
