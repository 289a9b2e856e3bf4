package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUserService_GetByID(t *testing.T) {
	repos := newMockRepos()
	repos.addUser("alice", "Alice", model.RoleUser)
	svc := NewUserService(repos.repo, zap.NewNop())

	resp, err := svc.GetByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Name)

	_, err = svc.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	repos := newMockRepos()
	repos.addUser("alice", "Alice", model.RoleUser)
	svc := NewUserService(repos.repo, zap.NewNop())

	resp, err := svc.UpdateProfile(context.Background(), "alice", &dto.UpdateProfileRequest{
		Name:                 " Alice Doe ",
		Phone:                strPtr("+55 11 99999-0000"),
		Password:             strPtr("newsecret"),
		PasswordConfirmation: strPtr("newsecret"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", resp.Name)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, "+55 11 99999-0000", *resp.Phone)

	stored := repos.users.users["alice"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")))
	assert.Equal(t, model.RoleUser, stored.Role, "profile updates never touch the role")
}

func TestUserService_UpdateProfile_PasswordMismatch(t *testing.T) {
	repos := newMockRepos()
	repos.addUser("alice", "Alice", model.RoleUser)
	svc := NewUserService(repos.repo, zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), "alice", &dto.UpdateProfileRequest{
		Name:     "Alice",
		Password: strPtr("newsecret"),
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, repos.users.users["alice"].PasswordHash)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	repos := newMockRepos()
	svc := NewUserService(repos.repo, zap.NewNop())
	seed := &config.SeedConfig{AdminName: "Admin", AdminEmail: "Admin@Onfly.com", AdminPassword: "admin123"}

	require.NoError(t, svc.EnsureAdmin(context.Background(), seed))
	require.NoError(t, svc.EnsureAdmin(context.Background(), seed))
	require.Len(t, repos.users.users, 1)

	for _, u := range repos.users.users {
		assert.Equal(t, model.RoleAdmin, u.Role)
		assert.Equal(t, "admin@onfly.com", u.Email)
	}

	assert.NoError(t, svc.EnsureAdmin(context.Background(), &config.SeedConfig{}))
	assert.Len(t, repos.users.users, 1)
}
