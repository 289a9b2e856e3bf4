package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/repository"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
	"github.com/leandrovr13/onfly/pkg/jwt"
)

// TokenBlacklist revoked access tokens, keyed by jti
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService authentication use cases
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token identified by jti until it would have expired anyway
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	tokens TokenBlacklist
	logger *zap.Logger
}

// NewAuthService creates an AuthService; tokens may be nil
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	tokens TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		tokens: tokens,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to look up user by email", zap.Error(err))
		return nil, pkgerrors.Storage("get user by email", err)
	}

	if req.Password != req.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, pkgerrors.Storage("create user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.UserID))
	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user by email", zap.Error(err))
		return nil, pkgerrors.Storage("get user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.tokens == nil || jti == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.tokens.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("failed to blacklist token", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) issueToken(user *model.User) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("failed to generate access token", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:      toUserResponse(user),
	}, nil
}
