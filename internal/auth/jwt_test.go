package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitch-backend/internal/config"
	"stitch-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "stitch-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	user := &models.User{ID: 42, Email: "buyer@example.com", Role: models.RoleBuyer}

	token, err := mgr.GenerateToken(user)
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, models.RoleBuyer, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	user := &models.User{ID: 1, Email: "a@b.com", Role: models.RoleAdmin}

	token, err := mgr.GenerateToken(user)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	user := &models.User{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin}

	temp, err := mgr.GenerateTempToken(user)
	require.NoError(t, err)

	claims, err := mgr.ValidateTempToken(temp)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "2fa_pending", claims.Type)

	// A session token must not pass temp validation.
	session, err := mgr.GenerateToken(user)
	require.NoError(t, err)
	_, err = mgr.ValidateTempToken(session)
	assert.Error(t, err)
}

func TestSessionValidationRejectsTempToken(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	user := &models.User{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin}

	// Password step passed, TOTP not verified yet. If this token validated
	// as a session token, 2FA would be optional for the attacker.
	temp, err := mgr.GenerateTempToken(user)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(temp)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}
