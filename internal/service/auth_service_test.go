package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tumentor/tumentor-api/internal/models"
)

type mockUserRepo struct {
	users     map[string]*models.User
	lastLogin map[string]time.Time
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if m.lastLogin == nil {
		m.lastLogin = make(map[string]time.Time)
	}
	m.lastLogin[id] = ts
	return nil
}

func authFixture(t *testing.T) (*AuthService, *mockUserRepo) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "coord@tumentor.pe", FullName: "Coordinación", PasswordHash: string(hash), Role: "ADMIN", Active: true},
		"u2": {ID: "u2", Email: "baja@tumentor.pe", PasswordHash: string(hash), Role: "ADMIN", Active: false},
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "tumentor-api"})
	return svc, repo
}

func TestAuthServiceLogin(t *testing.T) {
	svc, repo := authFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "coord@tumentor.pe", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "u1", res.User.ID)
	assert.Contains(t, repo.lastLogin, "u1")
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "coord@tumentor.pe", Password: "nope"})
	assert.Error(t, err)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@tumentor.pe", Password: "s3cret"})
	assert.Error(t, err)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "baja@tumentor.pe", Password: "s3cret"})
	assert.Error(t, err)
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc, _ := authFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "coord@tumentor.pe", Password: "s3cret"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewAuthService(&mockUserRepo{}, nil, nil, AuthConfig{Secret: "other-secret", Expiration: time.Hour})
	_, err = other.ValidateToken(res.AccessToken)
	assert.Error(t, err)
}
