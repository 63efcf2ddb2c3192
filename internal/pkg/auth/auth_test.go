package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "surfshop-test"},
		JWT:      config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", AccessTokenExpiry: time.Hour},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Admin:    config.AdminConfig{Email: "admin@example.com"},
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	jwtManager := NewJWTManager(testConfig())

	token, expiresAt, err := jwtManager.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := jwtManager.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestValidateToken_Expired(t *testing.T) {
	jwtManager := NewJWTManager(testConfig())
	jwtManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := jwtManager.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	jwtManager.now = time.Now
	_, err = jwtManager.ValidateAdminToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager(testConfig()).GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = NewJWTManager(other).ValidateAdminToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}

func TestCheckAdmin(t *testing.T) {
	cfg := testConfig()
	pm := NewPasswordManager(cfg)

	assert.ErrorIs(t, pm.CheckAdmin("admin@example.com", "whatever"), ErrInvalidCredentials)

	hash, err := pm.HashPassword("longboard2024")
	require.NoError(t, err)
	cfg.Admin.PasswordHash = hash
	pm = NewPasswordManager(cfg)

	assert.NoError(t, pm.CheckAdmin(" Admin@Example.com", "longboard2024"))
	assert.ErrorIs(t, pm.CheckAdmin("admin@example.com", "shortboard2024"), ErrInvalidCredentials)
	assert.ErrorIs(t, pm.CheckAdmin("kook@example.com", "longboard2024"), ErrInvalidCredentials)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlylettershere"))
	assert.NoError(t, ValidatePassword("longboard2024"))
}
