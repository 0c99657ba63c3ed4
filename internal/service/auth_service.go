package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/models"
	"github.com/EscoLessgo/word-craft-arena/internal/repository"
	"github.com/EscoLessgo/word-craft-arena/internal/security"
	"github.com/EscoLessgo/word-craft-arena/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenLifetime = 1 * time.Hour

// AuthStateListener is invoked with the signed-in identity after a sign-in,
// and with nil after a sign-out.
type AuthStateListener func(*models.Identity)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	tokens          *security.TokenIssuer
	emailService    *EmailService
	sessionDuration time.Duration

	mu        sync.Mutex
	listeners []AuthStateListener
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, emailService *EmailService, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokens:          tokens,
		emailService:    emailService,
		sessionDuration: sessionDuration,
	}
}

// OnAuthStateChange registers a listener for sign-in and sign-out events
func (s *AuthService) OnAuthStateChange(listener AuthStateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *AuthService) notifyAuthState(identity *models.Identity) {
	s.mu.Lock()
	listeners := make([]AuthStateListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(identity)
	}
}

// Register creates a new user account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(security.GenerateSessionID(), email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user, creates a session and issues an API token
func (s *AuthService) Login(email, password string) (*models.Session, *models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, "", ErrInvalidCredentials
	}

	session, token, err := s.startSession(user)
	if err != nil {
		return nil, nil, "", err
	}

	s.notifyAuthState(user.Identity())
	return session, user, token, nil
}

// OAuthLogin authenticates or creates a user using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.User, string, error) {
	if provider == "" || subject == "" {
		return nil, nil, "", errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, "", err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existingUser, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			if existingUser.OAuthProvider != "" && existingUser.OAuthProvider != provider {
				return nil, nil, "", ErrEmailTaken
			}
			if err := s.userRepo.LinkOAuthProvider(existingUser.ID, provider, subject); err != nil {
				return nil, nil, "", fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = existingUser
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			// OAuth accounts never log in with a password, but the column is
			// NOT NULL; store a hash of a throwaway random value.
			randomPasswordHash, err := security.HashPassword(security.GenerateSessionID())
			if err != nil {
				return nil, nil, "", fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			newUser, err := s.userRepo.CreateUser(security.GenerateSessionID(), email, randomPasswordHash, name)
			if err != nil {
				return nil, nil, "", fmt.Errorf("failed to create oauth user: %w", err)
			}
			if err := s.userRepo.LinkOAuthProvider(newUser.ID, provider, subject); err != nil {
				return nil, nil, "", fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = newUser
		}
	}

	session, token, err := s.startSession(user)
	if err != nil {
		return nil, nil, "", err
	}

	s.notifyAuthState(user.Identity())
	return session, user, token, nil
}

func (s *AuthService) startSession(user *models.User) (*models.Session, string, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.Issue(user.UID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return session, token, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		// Clean up expired session
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// ValidateToken checks an API access token and returns the user it names
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	uid, _, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	user, err := s.userRepo.GetUserByUID(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// CurrentUser returns the identity behind a session, or nil when signed out
func (s *AuthService) CurrentUser(sessionID string) *models.Identity {
	user, err := s.ValidateSession(sessionID)
	if err != nil {
		return nil
	}
	return user.Identity()
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	s.notifyAuthState(nil)
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// RequestPasswordReset creates a reset token and emails it to the user.
// A missing account is not reported to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	token := security.GenerateResetToken()
	if err := s.userRepo.CreatePasswordResetToken(token, user.ID, time.Now().Add(resetTokenLifetime)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.emailService.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		log.Printf("Failed to send reset email to %s: %v", user.Email, err)
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	resetToken, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.userRepo.MarkResetTokenUsed(token); err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	return nil
}
