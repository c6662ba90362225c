package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", "caja1", "operator", "pos", 5)
	require.NoError(t, err)

	sub, role, err := Parse("secret", "pos", token)
	require.NoError(t, err)
	assert.Equal(t, "caja1", sub)
	assert.Equal(t, "operator", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secret", "caja1", "operator", "pos", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", "pos", token)
	assert.Error(t, err)
}

func TestParse_WrongIssuer(t *testing.T) {
	token, err := Generate("secret", "caja1", "operator", "pos", 5)
	require.NoError(t, err)

	_, _, err = Parse("secret", "otro-emisor", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "caja1", "operator", "pos", 5)
	assert.Error(t, err)
}
