package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("kitchen-secret")

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)
	token, err := iss.Issue("user-1", "Ana", "ana@example.com")
	require.NoError(t, err)

	sub, err := NewVerifier(secret).VerifyHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestVerifyHeader_SchemeIsCaseInsensitive(t *testing.T) {
	token, err := NewIssuer(secret, time.Hour).Issue("user-1", "", "")
	require.NoError(t, err)

	sub, err := NewVerifier(secret).VerifyHeader("bearer   " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestVerify_Rejects(t *testing.T) {
	valid, err := NewIssuer(secret, time.Hour).Issue("user-1", "", "")
	require.NoError(t, err)

	otherSecret, err := NewIssuer([]byte("other"), time.Hour).Issue("user-1", "", "")
	require.NoError(t, err)

	expiredIssuer := NewIssuer(secret, time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("user-1", "", "")
	require.NoError(t, err)

	noSubject, err := NewIssuer(secret, time.Hour).Issue("", "", "")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(secret)
	require.NoError(t, err)

	other, err := NewIssuer(secret, time.Hour).Issue("user-2", "", "")
	require.NoError(t, err)
	vp, op := strings.Split(valid, "."), strings.Split(other, ".")
	tampered := vp[0] + "." + op[1] + "." + vp[2]

	tests := map[string]string{
		"missing header":   "",
		"no scheme":        valid,
		"wrong scheme":     "Basic " + valid,
		"empty token":      "Bearer ",
		"garbage":          "Bearer not.a.token",
		"wrong secret":     "Bearer " + otherSecret,
		"expired":          "Bearer " + expired,
		"missing subject":  "Bearer " + noSubject,
		"alg none":         "Bearer " + unsigned,
		"unexpected alg":   "Bearer " + hs512,
		"tampered payload": "Bearer " + tampered,
	}

	v := NewVerifier(secret)
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			sub, err := v.VerifyHeader(header)
			require.ErrorIs(t, err, ErrUnauthenticated)
			assert.Empty(t, sub)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	require.NoError(t, CheckPassword(hash, "hunter22"))
	require.ErrorIs(t, CheckPassword(hash, "hunter23"), ErrPasswordMismatch)
}
