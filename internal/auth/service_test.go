// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type fakeUserProvider struct {
	byEmail    map[string]*UserInfo
	byUsername map[string]*UserInfo
	createErr  error
	nextID     int64
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		byEmail:    make(map[string]*UserInfo),
		byUsername: make(map[string]*UserInfo),
		nextID:     1,
	}
}

func (f *fakeUserProvider) add(user *UserInfo) {
	f.byEmail[user.Email] = user
	f.byUsername[user.Username] = user
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserProvider) GetByUsername(
	_ context.Context,
	username string,
) (*UserInfo, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byEmail[params.Email]; exists {
		return nil, fmt.Errorf("create user: %w", core.DuplicateError("email"))
	}

	user := &UserInfo{
		ID:           f.nextID,
		Email:        params.Email,
		Username:     params.Username,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: params.PasswordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.add(user)
	return user, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserProvider) {
	t.Helper()

	manager := newTestJWTManager(t, 30*time.Minute)
	provider := newFakeUserProvider()
	return NewService(manager, provider), provider
}

func seedUser(t *testing.T, provider *fakeUserProvider, password string, active bool) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	user := &UserInfo{
		ID:           42,
		Email:        "maria@example.com",
		Username:     "maria",
		FirstName:    "Maria",
		LastName:     "Lopez",
		PasswordHash: hash,
		IsActive:     active,
		CreatedAt:    time.Now(),
	}
	provider.add(user)
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, provider := newTestService(t)
		seedUser(t, provider, "hunter2hunter2", true)

		resp, err := svc.Login(ctx, LoginRequest{
			Email:    "maria@example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, int(30*time.Minute/time.Second), resp.ExpiresIn)
	})

	t.Run("unknown email and wrong password are identical", func(t *testing.T) {
		svc, provider := newTestService(t)
		seedUser(t, provider, "hunter2hunter2", true)

		_, unknownErr := svc.Login(ctx, LoginRequest{
			Email:    "nobody@example.com",
			Password: "hunter2hunter2",
		})
		_, wrongErr := svc.Login(ctx, LoginRequest{
			Email:    "maria@example.com",
			Password: "not-the-password",
		})

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr, wrongErr)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, provider := newTestService(t)
		seedUser(t, provider, "hunter2hunter2", false)

		_, err := svc.Login(ctx, LoginRequest{
			Email:    "maria@example.com",
			Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, core.ErrInactiveAccount)
	})

	t.Run("inactive requires the correct password first", func(t *testing.T) {
		svc, provider := newTestService(t)
		seedUser(t, provider, "hunter2hunter2", false)

		_, err := svc.Login(ctx, LoginRequest{
			Email:    "maria@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token and stores hash", func(t *testing.T) {
		svc, provider := newTestService(t)

		resp, err := svc.Register(ctx, RegisterRequest{
			Email:     "nuevo@example.com",
			Username:  "nuevo",
			Password:  "hunter2hunter2",
			FirstName: "Nuevo",
			LastName:  "Usuario",
		})
		require.NoError(t, err)

		assert.Equal(t, "nuevo", resp.User.Username)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)

		stored := provider.byUsername["nuevo"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
		assert.True(t, core.VerifyPassword("hunter2hunter2", stored.PasswordHash))
	})

	t.Run("token fields sit at the top level of the envelope", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.Register(ctx, RegisterRequest{
			Email:     "nuevo@example.com",
			Username:  "nuevo",
			Password:  "hunter2hunter2",
			FirstName: "Nuevo",
			LastName:  "Usuario",
		})
		require.NoError(t, err)

		body, err := json.Marshal(resp)
		require.NoError(t, err)

		var envelope map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Contains(t, envelope, "access_token")
		assert.Contains(t, envelope, "token_type")
		assert.Contains(t, envelope, "expires_in")
		assert.Contains(t, envelope, "user")
		assert.NotContains(t, envelope, "tokens")
	})

	t.Run("duplicate email passes through", func(t *testing.T) {
		svc, provider := newTestService(t)
		seedUser(t, provider, "hunter2hunter2", true)

		_, err := svc.Register(ctx, RegisterRequest{
			Email:     "maria@example.com",
			Username:  "otra",
			Password:  "hunter2hunter2",
			FirstName: "Otra",
			LastName:  "Persona",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrDuplicateKey))
	})
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, provider := newTestService(t)
	seedUser(t, provider, "hunter2hunter2", true)

	resp, err := svc.GetCurrentUser(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "maria@example.com", resp.Email)

	_, err = svc.GetCurrentUser(ctx, "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
