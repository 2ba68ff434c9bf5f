package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, claims, err := m.GenerateAdminToken()
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := m.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.ID, got.ID)
	assert.Equal(t, RoleAdmin, got.Role)
}

func TestUniqueJTI(t *testing.T) {
	m := NewManager("secret", time.Hour)
	_, a, err := m.GenerateAdminToken()
	require.NoError(t, err)
	_, b, err := m.GenerateAdminToken()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := NewManager("secret", time.Hour).GenerateAdminToken()
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := m.GenerateAdminToken()
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsForeignClaims(t *testing.T) {
	claims := &Claims{
		Role: "editor",
		Type: TypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	m := NewManager("secret", time.Hour)
	_, err = m.ValidateToken(token)
	require.NoError(t, err)
	_, err = m.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{Role: RoleAdmin, Type: TypeAdmin, RegisteredClaims: jwt.RegisteredClaims{ID: "x", Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
