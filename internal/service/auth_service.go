package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/logger"
	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrAdminExists        = errors.New("admin user already exists")
	ErrUsernameTaken      = errors.New("username already taken")
)

// sessionTokenBytes is the entropy of a session token before hex encoding.
const sessionTokenBytes = 32

// AuthService handles admin accounts and opaque session tokens.
type AuthService struct {
	users      repository.AdminUserStore
	sessions   repository.SessionStore
	ttl        time.Duration
	bcryptCost int
	now        Clock
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users repository.AdminUserStore, sessions repository.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		ttl:        cfg.SessionTTL,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
		log:        log.With().Str("component", "auth").Logger(),
	}
}

// WithClock replaces the time source.
func (s *AuthService) WithClock(now Clock) *AuthService {
	s.now = now
	return s
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// NewSessionToken returns 32 random bytes, hex encoded.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueSession creates a session for username valid for the configured TTL.
func (s *AuthService) IssueSession(ctx context.Context, username string) (*model.AdminSession, error) {
	token, err := NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	now := s.now()
	session := &model.AdminSession{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.log.Info().Str("username", username).Str("token", logger.TokenPrefix(token)).Msg("Session issued")
	return session, nil
}

// ValidateSession returns the session bound to token while it is unexpired.
// Missing and expired tokens both yield ErrSessionNotFound.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*model.AdminSession, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !s.now().Before(session.ExpiresAt) {
		if _, err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Str("token", logger.TokenPrefix(token)).Msg("Failed to remove expired session")
		}
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// RevokeSession deletes the session and reports whether it existed.
func (s *AuthService) RevokeSession(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	removed, err := s.sessions.Delete(ctx, token)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return removed, nil
}

// Login checks the credentials and issues a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.AdminSession, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, user.Username)
}

// CreateAdmin creates an admin account.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*model.AdminUser, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.AdminUser{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return user, nil
}

// CreateFirstAdmin creates an admin only while no admin account exists.
func (s *AuthService) CreateFirstAdmin(ctx context.Context, username, password string) (*model.AdminUser, error) {
	if n, err := s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	} else if n > 0 {
		return nil, ErrAdminExists
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.AdminUser{Username: username, PasswordHash: hash}
	created, err := s.users.CreateFirst(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	if !created {
		return nil, ErrAdminExists
	}
	return user, nil
}
