package service

import (
	"context"
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

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers retrieves all users (admin only)
func (s *userService) ListUsers(ctx context.Context, who models.Identity) ([]models.User, error) {
	if !who.IsAdmin {
		return nil, fmt.Errorf("%w: administrator access required", domain.ErrForbidden)
	}

	return s.userRepo.List(ctx)
}

// GetUser retrieves a user. Non-admins may only read themselves; asking for
// anyone else reads as not found so existence is never leaked.
func (s *userService) GetUser(ctx context.Context, who models.Identity, id string) (*models.User, error) {
	if !who.IsAdmin && who.UserID != id {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return s.userRepo.GetByID(ctx, id)
}

// CreateUser creates a user with an explicit admin flag (admin only)
func (s *userService) CreateUser(ctx context.Context, who models.Identity, req *services.CreateUserRequest) (*models.User, error) {
	if !who.IsAdmin {
		return nil, fmt.Errorf("%w: administrator access required", domain.ErrForbidden)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"id", user.ID,
		"username", user.Username,
		"is_admin", user.IsAdmin,
		"actor_id", who.UserID,
	)

	return user, nil
}

// UpdateUser updates a user's profile. Admins may update anyone; others only
// themselves. The admin flag changes only when the actor is an admin.
func (s *userService) UpdateUser(ctx context.Context, who models.Identity, id string, req *services.UpdateUserRequest) (*models.User, error) {
	if !who.IsAdmin && who.UserID != id {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := (validation.Errors{
		"username": validation.Validate(req.Username, usernameRules()...),
		"email":    validation.Validate(req.Email, emailRules()...),
	}).Filter(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Uniqueness excludes the record being updated itself
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil && existing.ID != id {
		return nil, &domain.ConflictError{
			Message:      "username already taken",
			ResourceType: "user",
			Field:        "username",
		}
	}
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing.ID != id {
		return nil, &domain.ConflictError{
			Message:      "email already registered",
			ResourceType: "user",
			Field:        "email",
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	if req.IsAdmin != nil && who.IsAdmin {
		user.IsAdmin = *req.IsAdmin
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated",
		"id", user.ID,
		"username", user.Username,
		"actor_id", who.UserID,
	)

	return user, nil
}

// ChangePassword replaces a user's password. The current password is
// verified unless an admin is changing someone else's.
func (s *userService) ChangePassword(ctx context.Context, who models.Identity, id string, req *services.ChangePasswordRequest) error {
	if !who.IsAdmin && who.UserID != id {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !who.IsAdmin && !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrValidation)
	}

	if err := validation.Validate(req.NewPassword, passwordRules()...); err != nil {
		return fmt.Errorf("%w: new %v", domain.ErrValidation, err)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("%w: new passwords do not match", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed",
		"id", user.ID,
		"actor_id", who.UserID,
	)

	return nil
}

// DeleteUser deletes a user (admin only). Self-deletion is rejected.
func (s *userService) DeleteUser(ctx context.Context, who models.Identity, id string) error {
	if !who.IsAdmin {
		return fmt.Errorf("%w: administrator access required", domain.ErrForbidden)
	}

	if who.UserID == id {
		return fmt.Errorf("%w: you cannot delete your own account", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		"id", user.ID,
		"username", user.Username,
		"actor_id", who.UserID,
	)

	return nil
}

// validateCreateRequest validates an admin create-user request
func (s *userService) validateCreateRequest(req *services.CreateUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Username, usernameRules()...),
		validation.Field(&req.Email, emailRules()...),
		validation.Field(&req.Password, passwordRules()...),
		validation.Field(&req.ConfirmPassword,
			matchRule(req.Password, "passwords do not match"),
		),
	)
}
