package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type loginStub struct {
	calls  int
	token  string
	expiry time.Time
	err    error
}

func (l *loginStub) login(context.Context) (string, time.Time, error) {
	l.calls++
	return l.token, l.expiry, l.err
}

func TestGuestSession_LogsInOnceAndCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	stub := &loginStub{token: " abc123 ", expiry: time.Now().Add(time.Hour)}
	s := NewGuestSession(path, stub.login, nil)

	for i := 0; i < 3; i++ {
		got, err := s.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("access token failed: %v", err)
		}
		if got != "abc123" {
			t.Fatalf("unexpected token: %q", got)
		}
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single login, got %d", stub.calls)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected session persisted: %v", err)
	}
}

func TestGuestSession_ReusesPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	first := &loginStub{token: "persisted", expiry: time.Now().Add(time.Hour)}
	if _, err := NewGuestSession(path, first.login, nil).AccessToken(context.Background()); err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	second := &loginStub{token: "fresh", expiry: time.Now().Add(time.Hour)}
	got, err := NewGuestSession(path, second.login, nil).AccessToken(context.Background())
	if err != nil {
		t.Fatalf("access token failed: %v", err)
	}
	if got != "persisted" || second.calls != 0 {
		t.Fatalf("expected persisted token without login, got %q calls=%d", got, second.calls)
	}
}

func TestGuestSession_RenewsExpiredSession(t *testing.T) {
	stub := &loginStub{token: "t1", expiry: time.Now().Add(time.Minute)}
	s := NewGuestSession("", stub.login, nil)
	if _, err := s.AccessToken(context.Background()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !s.IsValid() {
		t.Fatalf("fresh session must be valid")
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	stub.token = "t2"
	stub.expiry = time.Now().Add(time.Hour)
	got, err := s.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if got != "t2" || stub.calls != 2 {
		t.Fatalf("expected renewed token, got %q calls=%d", got, stub.calls)
	}
}

func TestGuestSession_LoginErrors(t *testing.T) {
	boom := errors.New("boom")
	s := NewGuestSession("", (&loginStub{err: boom}).login, nil)
	if _, err := s.AccessToken(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped login error, got %v", err)
	}

	s = NewGuestSession("", (&loginStub{token: "  ", expiry: time.Now().Add(time.Hour)}).login, nil)
	if _, err := s.AccessToken(context.Background()); err == nil {
		t.Fatalf("expected empty-token error")
	}
}

func TestGuestSession_CorruptFileFallsBackToLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt session failed: %v", err)
	}
	stub := &loginStub{token: "ok", expiry: time.Now().Add(time.Hour)}
	got, err := NewGuestSession(path, stub.login, nil).AccessToken(context.Background())
	if err != nil || got != "ok" {
		t.Fatalf("expected login fallback, got %q err=%v", got, err)
	}
}
