package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "Ana", "supervisor", "bb-inventory", 5)
	require.NoError(t, err)

	claims, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "supervisor", claims.Role)
	assert.Equal(t, "bb-inventory", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "Ana", "admin", "bb", 5)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "Ana", "admin", "bb", -1)
	require.NoError(t, err)

	_, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "n", "worker", "bb", 5)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
