package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/repository"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

// UserService user profile use cases
type UserService interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// EnsureAdmin creates the seed admin account when no user owns its email
	EnsureAdmin(ctx context.Context, seed *config.SeedConfig) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get user", zap.String("user_id", id), zap.Error(err))
		return nil, pkgerrors.Storage("get user", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get user", zap.String("user_id", id), zap.Error(err))
		return nil, pkgerrors.Storage("get user", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.NewValidationError("name", "the name field is required")
	}
	user.Name = name
	user.Phone = req.Phone

	if req.Password != nil && *req.Password != "" {
		if req.PasswordConfirmation == nil || *req.PasswordConfirmation != *req.Password {
			return nil, ErrPasswordMismatch
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("failed to hash password", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return nil, pkgerrors.Storage("update user", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── EnsureAdmin ──────────────────────

func (s *userService) EnsureAdmin(ctx context.Context, seed *config.SeedConfig) error {
	if seed.AdminEmail == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Storage("get user by email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		UserID:       uuid.NewString(),
		Name:         seed.AdminName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return pkgerrors.Storage("create admin", err)
	}

	s.logger.Info("admin account seeded", zap.String("email", email))
	return nil
}
