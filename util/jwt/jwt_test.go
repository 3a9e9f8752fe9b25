package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndParseAuth(t *testing.T) {
	token, err := Issue(secret, 42, "gestor", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+token, secret)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims["sub"])
	require.Equal(t, "gestor", claims["role"])
}

func TestParseAuth_BareToken(t *testing.T) {
	token, err := Issue(secret, 7, "admin", 1)
	require.NoError(t, err)

	claims, err := ParseAuth(token, secret)
	require.NoError(t, err)
	require.Equal(t, "admin", claims["role"])
}

func TestParseAuth_WrongSecret(t *testing.T) {
	token, err := Issue(secret, 1, "gestor", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+token, "other-secret")
	require.Error(t, err)
}

func TestParseAuth_Missing(t *testing.T) {
	_, err := ParseAuth("", secret)
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", secret)
	require.Error(t, err)
}
