package service

import (
	"context"
	"testing"
	"time"

	"quizmaker/internal/config"
	"quizmaker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestConfig() *config.Config {
	cfg := testConfig()
	cfg.JWT = config.JWTConfig{
		SecretKey:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return cfg
}

func TestNewAuthService_ShortSecret(t *testing.T) {
	cfg := authTestConfig()
	cfg.JWT.SecretKey = "too-short"

	_, err := NewAuthService(&fakeUserRepo{}, cfg)
	assert.Error(t, err)
}

func TestCreateAndValidateJWT(t *testing.T) {
	svc, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), "user1", 15*time.Minute, "access")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "quizmaker", claims.Issuer)
}

func TestValidateJWT_Expired(t *testing.T) {
	svc, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), "user1", -time.Minute, "access")
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateJWT_Garbage(t *testing.T) {
	svc, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	issuer, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	otherCfg := authTestConfig()
	otherCfg.JWT.SecretKey = "ffffffffffffffffffffffffffffffff"
	verifier, err := NewAuthService(&fakeUserRepo{}, otherCfg)
	require.NoError(t, err)

	token, err := issuer.CreateJWT(context.Background(), "user1", time.Minute, "access")
	require.NoError(t, err)

	_, err = verifier.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestRefreshToken(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetUserByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: "test@example.com"}, nil
		},
	}
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	refresh, err := svc.CreateJWT(context.Background(), "user1", time.Hour, "refresh")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), newAccess)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "user1", claims.UserID)

	claims, err = svc.ValidateJWT(context.Background(), newRefresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	access, err := svc.CreateJWT(context.Background(), "user1", time.Hour, "access")
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	assert.Error(t, err)
}

func TestRefreshToken_DeletedUser(t *testing.T) {
	svc, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	refresh, err := svc.CreateJWT(context.Background(), "ghost", time.Hour, "refresh")
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), refresh)
	assert.Error(t, err)
}

func TestGetGoogleLoginURL(t *testing.T) {
	cfg := authTestConfig()
	cfg.GoogleOAuth = config.GoogleOAuthConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8000/api/auth/google/callback",
	}
	svc, err := NewAuthService(&fakeUserRepo{}, cfg)
	require.NoError(t, err)

	url := svc.GetGoogleLoginURL("state123")
	assert.Contains(t, url, "state=state123")
	assert.Contains(t, url, "client-id")
}

func TestHandleGoogleCallback_StateMismatch(t *testing.T) {
	svc, err := NewAuthService(&fakeUserRepo{}, authTestConfig())
	require.NoError(t, err)

	_, _, _, err = svc.HandleGoogleCallback(context.Background(), "code", "stateA", "stateB")
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}
