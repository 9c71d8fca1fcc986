package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr), "expected *TokenError, got %v", err)
	return tokenErr.Reason
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("zram_manager", "secret", time.Minute)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "zram_manager", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestNewIssuerDefaultsTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewIssuer("zram_manager", "secret", 0).TTL())
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("zram_manager", "secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = NewIssuer("zram_manager", "secret", time.Minute).Verify(token)
	require.Error(t, err)
	assert.Equal(t, ReasonExpired, reasonOf(t, err))
}

func TestVerifyRejects(t *testing.T) {
	issuer := NewIssuer("zram_manager", "secret", time.Minute)

	wrongSecret, err := NewIssuer("zram_manager", "other", time.Minute).Issue("admin")
	require.NoError(t, err)
	wrongIssuer, err := NewIssuer("other_app", "secret", time.Minute).Issue("admin")
	require.NoError(t, err)

	claims := &Claims{
		Username: "admin",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "zram_manager",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		reason Reason
	}{
		{"wrong secret", wrongSecret, ReasonRejected},
		{"wrong issuer", wrongIssuer, ReasonRejected},
		{"hs512", hs512, ReasonRejected},
		{"alg none", unsigned, ReasonRejected},
		{"garbage", "not-a-token", ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			require.Error(t, err)
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}
