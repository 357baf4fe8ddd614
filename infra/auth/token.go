package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TokenProvider supplies a session token for API requests.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// LoginFunc obtains a fresh guest token and its expiry.
type LoginFunc func(ctx context.Context) (string, time.Time, error)

type storedSession struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// GuestSession caches a guest token on disk and logs in again once it expired.
type GuestSession struct {
	path   string
	login  LoginFunc
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	current storedSession
	loaded  bool
}

// NewGuestSession creates a TokenProvider persisting its token at path.
// An empty path keeps the session in memory only.
func NewGuestSession(path string, login LoginFunc, logger *zap.Logger) *GuestSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuestSession{
		path:   path,
		login:  login,
		logger: logger,
		now:    time.Now,
	}
}

// AccessToken returns the cached token, performing a guest login when the
// session is missing or expired.
func (s *GuestSession) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loaded = true
		if stored, err := readSession(s.path); err == nil {
			s.current = stored
		} else if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("ignoring stored session", zap.String("path", s.path), zap.Error(err))
		}
	}

	if s.valid() {
		return s.current.Token, nil
	}

	token, expiry, err := s.login(ctx)
	if err != nil {
		return "", fmt.Errorf("guest login: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("guest login returned an empty token")
	}
	s.current = storedSession{Token: token, Expiry: expiry}
	s.logger.Info("guest session renewed", zap.Time("expiry", expiry))

	if err := writeSession(s.path, s.current); err != nil {
		s.logger.Warn("persisting session failed", zap.String("path", s.path), zap.Error(err))
	}
	return token, nil
}

// IsValid reports whether a usable token is cached.
func (s *GuestSession) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valid()
}

func (s *GuestSession) valid() bool {
	if s.current.Token == "" || s.current.Expiry.IsZero() {
		return false
	}
	return s.now().Before(s.current.Expiry)
}

func readSession(path string) (storedSession, error) {
	if path == "" {
		return storedSession{}, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return storedSession{}, err
	}
	var st storedSession
	if err := json.Unmarshal(data, &st); err != nil {
		return storedSession{}, fmt.Errorf("parsing session %s: %w", path, err)
	}
	return st, nil
}

func writeSession(path string, st storedSession) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
