package service

import (
	"Revamp/config"
	"Revamp/dao"
	"Revamp/pkg/jwt"
	"Revamp/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	conf := config.Default()
	conf.Jwt.Secret = "test-secret"
	return &AuthService{Config: conf, UsersRepo: dao.NewUsers(newTestDB(t))}
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, &types.RegisterRequest{Email: "a@ucdavis.edu", Username: "a@ucdavis.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.HashedPassword)

	_, err = s.Register(ctx, &types.RegisterRequest{Email: "a@ucdavis.edu", Username: "other", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserExists)

	got, err := s.Authenticate(ctx, "a@ucdavis.edu", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate(ctx, "a@ucdavis.edu", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectLogin)
	_, err = s.Authenticate(ctx, "nobody@ucdavis.edu", "secret123")
	assert.ErrorIs(t, err, ErrIncorrectLogin)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()
	u, err := s.Register(ctx, &types.RegisterRequest{Email: "a@ucdavis.edu", Username: "aggie", Password: "secret123"})
	require.NoError(t, err)

	tok, err := s.IssueToken(u)
	require.NoError(t, err)
	claims, err := jwt.ParseToken([]byte("test-secret"), tok)
	require.NoError(t, err)

	me, err := s.CurrentUser(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "aggie", me.Username)

	guest, err := s.IssueGuestToken()
	require.NoError(t, err)
	claims, err = jwt.ParseToken([]byte("test-secret"), guest)
	require.NoError(t, err)
	_, err = s.CurrentUser(ctx, claims)
	assert.ErrorIs(t, err, ErrGuest)
}

func TestAuthService_InactiveUser(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()
	u, err := s.Register(ctx, &types.RegisterRequest{Email: "a@ucdavis.edu", Username: "aggie", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, s.UsersRepo.Update(ctx, u.ID, map[string]any{"is_active": false}))

	_, err = s.Authenticate(ctx, "aggie", "secret123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthService_UpdateMe(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()
	a, err := s.Register(ctx, &types.RegisterRequest{Email: "a@ucdavis.edu", Username: "a", Password: "secret123"})
	require.NoError(t, err)
	_, err = s.Register(ctx, &types.RegisterRequest{Email: "b@ucdavis.edu", Username: "b", Password: "secret123"})
	require.NoError(t, err)

	zones := []string{"A1", "B2"}
	off := false
	got, err := s.UpdateMe(ctx, a, &types.UpdateMeRequest{
		FullName:            strPtr("Aggie"),
		PreferredZones:      &zones,
		NotificationEnabled: &off,
		Password:            strPtr("newpass1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Aggie", *got.FullName)
	assert.Equal(t, zones, PreferredZones(got))
	assert.False(t, got.NotificationEnabled)

	_, err = s.Authenticate(ctx, "a", "newpass1")
	require.NoError(t, err)

	_, err = s.UpdateMe(ctx, a, &types.UpdateMeRequest{Username: strPtr("b")})
	assert.ErrorIs(t, err, ErrUserTaken)
}
