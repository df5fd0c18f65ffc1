package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/credentials"
	"medtrack/internal/models"
	"medtrack/internal/repository"
	"medtrack/internal/security"
	"medtrack/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// TokenPair is one issued access/refresh token set. The refresh token is the
// raw value; only its hash is stored.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  int64 // seconds
	RefreshExpiresAt time.Time
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     *repository.UserRepository
	elderRepo    *repository.ElderRepository
	tokenRepo    *repository.TokenRepository
	emailService *EmailService
	jwtSecret    string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, elderRepo *repository.ElderRepository,
	tokenRepo *repository.TokenRepository, emailService *EmailService,
	jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		elderRepo:    elderRepo,
		tokenRepo:    tokenRepo,
		emailService: emailService,
		jwtSecret:    jwtSecret,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// Register creates a new caretaker account
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, *TokenPair, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateCaretaker(email, passwordHash, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	// Welcome email failure must not fail registration
	if err := s.emailService.SendWelcomeEmail(ctx, user.Email, user.DisplayName); err != nil {
		log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
	}

	return user, tokens, nil
}

// Login authenticates a caretaker and issues a token pair
func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// ElderSignIn creates a fresh anonymous elder account with its profile and
// pairing code. The device keeps the session alive through token refresh,
// so each call is a new elder.
func (s *AuthService) ElderSignIn(name string) (*models.User, *models.Elder, *TokenPair, error) {
	if name == "" {
		name = "Elder"
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, nil, nil, err
	}

	id := uuid.New().String()
	user, err := s.userRepo.CreateElder(id, name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create elder user: %w", err)
	}

	code, err := s.uniquePairingCode()
	if err != nil {
		return nil, nil, nil, err
	}

	elder, err := s.elderRepo.CreateElder(id, name, code)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create elder profile: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, nil, err
	}

	return user, elder, tokens, nil
}

// OAuthLogin signs a caretaker in via an external identity provider, creating
// the account on first sight. A matching email links the provider to the
// existing account instead of creating a duplicate.
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	if user == nil && email != "" {
		user, err = s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
		if user != nil {
			if err := s.userRepo.LinkOAuth(user.ID, provider, subject); err != nil {
				return nil, nil, err
			}
			user.OAuthProvider = provider
			user.OAuthSubject = subject
		}
	}

	if user == nil {
		if name == "" {
			name = email
		}
		user, err = s.userRepo.CreateOAuthCaretaker(provider, subject, email, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
		}
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Refresh rotates a refresh token and mints a new access token
func (s *AuthService) Refresh(rawToken string) (*models.User, *TokenPair, error) {
	hash := security.HashRefreshToken(rawToken)

	stored, err := s.tokenRepo.GetRefreshTokenByHash(hash)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored == nil || stored.Revoked || stored.IsExpired() {
		return nil, nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(stored.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidToken
	}

	if err := s.tokenRepo.RevokeRefreshToken(stored.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Logout revokes all refresh tokens for the user
func (s *AuthService) Logout(userID string) error {
	if err := s.tokenRepo.RevokeAllForUser(userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// ValidateAccessToken parses a bearer token and loads the current user
func (s *AuthService) ValidateAccessToken(raw string) (*models.User, error) {
	claims, err := security.ParseAccessToken(raw, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, security.ErrBadToken
	}
	return user, nil
}

// LinkedElders returns the elder ids a caretaker is paired with
func (s *AuthService) LinkedElders(caretakerID string) ([]string, error) {
	ids, err := s.userRepo.GetLinkedElderIDs(caretakerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get linked elders: %w", err)
	}
	return ids, nil
}

// CleanupExpiredTokens removes expired and revoked refresh tokens
func (s *AuthService) CleanupExpiredTokens() error {
	return s.tokenRepo.DeleteExpired()
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := security.MakeAccessToken(user.ID, user.Role, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	raw, hash, err := security.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	if _, err := s.tokenRepo.CreateRefreshToken(user.ID, hash, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     raw,
		AccessExpiresIn:  int64(s.accessTTL.Seconds()),
		RefreshExpiresAt: expiresAt,
	}, nil
}

// uniquePairingCode generates a pairing code not already held by another
// elder. Collisions are rare with a million-value space, so a short retry
// loop is enough.
func (s *AuthService) uniquePairingCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := credentials.GeneratePairingCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate pairing code: %w", err)
		}
		existing, err := s.elderRepo.GetElderByPairingCode(code)
		if err != nil {
			return "", fmt.Errorf("failed to check pairing code: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique pairing code")
}
