package token

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/models"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))

	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
}

func TestRotateToken(t *testing.T) {
	svc := newTestService(t)

	refresh, err := SignRefreshToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, refresh, 7, "user"))

	newAccess, newRefresh, err := svc.RotateToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)
	require.NotEqual(t, refresh, newRefresh)

	parsed, err := jwt.Parse(newAccess, func(*jwt.Token) (interface{}, error) { return svc.JWTSecret, nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, "user", claims["role"])

	// the used refresh token is revoked; a second rotation with it fails
	var stored models.RefreshToken
	require.NoError(t, svc.DB.Where("token = ?", refresh).First(&stored).Error)
	require.True(t, stored.Revoked)

	_, _, err = svc.RotateToken(refresh)
	require.Error(t, err)
}

func TestRotateTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService(t)

	access, err := SignAccessToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)

	_, _, err = svc.RotateToken(access)
	require.Error(t, err, "a token without typ=refresh must be rejected")
}

func TestValidateRefreshUnknownToken(t *testing.T) {
	svc := newTestService(t)

	refresh, err := SignRefreshToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)

	// valid signature but never persisted
	_, err = ValidateRefresh(refresh, svc.RefreshSecret, svc.DB)
	require.Error(t, err)
}
