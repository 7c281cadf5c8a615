package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptvault/internal/auth"
	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
	"promptvault/internal/domain/services"
)

// authService implements the AuthService interface
type authService struct {
	userRepo repositories.UserRepository
	issuer   *auth.TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepository,
	issuer *auth.TokenIssuer,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// Register validates and creates a new account, then establishes a session
func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*services.Session, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Field-specific uniqueness feedback: registration names the taken
	// field, unlike login which stays generic.
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, &domain.ConflictError{
			Message:      "username already exists",
			ResourceType: "user",
			Field:        "username",
		}
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, &domain.ConflictError{
			Message:      "email already exists",
			ResourceType: "user",
			Field:        "email",
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// The unique constraints are the real guard; the lookups above only
	// improve the error message under normal operation.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, false)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user registered",
		"id", user.ID,
		"username", user.Username,
	)

	return &services.Session{Token: token, User: user}, nil
}

// Login verifies credentials and establishes a session. The failure message
// never reveals whether the username exists.
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.Session, error) {
	req.Username = strings.TrimSpace(req.Username)

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}

	token, err := s.issuer.Issue(user.ID, req.Remember)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in",
		"id", user.ID,
		"username", user.Username,
		"remember", req.Remember,
	)

	return &services.Session{Token: token, User: user}, nil
}

// validateRegisterRequest validates a registration request
func (s *authService) validateRegisterRequest(req *services.RegisterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Username, usernameRules()...),
		validation.Field(&req.Email, emailRules()...),
		validation.Field(&req.Password, passwordRules()...),
		validation.Field(&req.ConfirmPassword,
			matchRule(req.Password, "passwords do not match"),
		),
	)
}
