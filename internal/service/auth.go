package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/repository"
	"sainath-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo        repository.UserRepository
	tokens          security.TokenManager
	emails          EmailService
	defaultPassword string
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, emails EmailService, defaultPassword string) AuthService {
	return &authService{
		userRepo:        userRepo,
		tokens:          tokens,
		emails:          emails,
		defaultPassword: defaultPassword,
	}
}

// RequestToJoin creates a member account in pending state. A blank
// password falls back to the configured shared default so the host can
// pre-register people who sign in later and change it.
func (s *authService) RequestToJoin(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, &domain.ValidationError{Field: "email", Reason: "valid email required"}
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, &domain.ValidationError{Field: "email", Reason: "already registered"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if password == "" {
		password = s.defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		Status:       domain.UserStatusPending,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("join request received", "user_id", user.ID, "email", email)

	// Notify the host; a mail failure must not undo the signup.
	if host, err := s.userRepo.GetHost(ctx); err == nil {
		if err := s.emails.SendJoinRequestNotification(ctx, host.Email, user.Name, user.Email); err != nil {
			logger.Warn("join request notification failed", "error", err)
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if !user.IsApproved() {
		return nil, "", "", domain.ErrAccountPending
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	if !user.IsApproved() {
		return "", "", domain.ErrAccountPending
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return fetchActor(ctx, s.userRepo, userID)
}

func (s *authService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 6 {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	logger.Info("password changed", "user_id", userID)
	return nil
}

// ChangeEmail requires proof of the current password and rejects an
// address already used by another account.
func (s *authService) ChangeEmail(ctx context.Context, userID, newEmail, currentPassword string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	if newEmail == "" || !strings.Contains(newEmail, "@") {
		return &domain.ValidationError{Field: "email", Reason: "valid email required"}
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if existing, err := s.userRepo.GetByEmail(ctx, newEmail); err == nil && existing.ID != user.ID {
		return &domain.ValidationError{Field: "email", Reason: "already registered"}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	user.Email = newEmail
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	logger.Info("email changed", "user_id", userID)
	return nil
}
