package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "ana", "ADMIN", "bodegas", 5)
	require.NoError(t, err)

	username, rol, err := jwt.Parse("s3cr3t", tok)
	require.NoError(t, err)
	assert.Equal(t, "ana", username)
	assert.Equal(t, "ADMIN", rol)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "ana", "ADMIN", "bodegas", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "ana", "ADMIN", "bodegas", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("s3cr3t", tok)
	assert.Error(t, err)
}

func TestDecodeUnverified_NoNecesitaSecret(t *testing.T) {
	// incluso expirado: el cliente solo lo usa para mostrar y enrutar
	tok, err := jwt.Generate("s3cr3t", "luis", "OPERADOR", "bodegas", -1)
	require.NoError(t, err)

	username, rol, err := jwt.DecodeUnverified(tok)
	require.NoError(t, err)
	assert.Equal(t, "luis", username)
	assert.Equal(t, "OPERADOR", rol)
}

func TestDecodeUnverified_TokenIlegible(t *testing.T) {
	_, _, err := jwt.DecodeUnverified("abc.def")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "ana", "ADMIN", "bodegas", 5)
	assert.Error(t, err)
}
