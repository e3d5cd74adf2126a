package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/bancassurance-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "bancassurance-test"
)

func testIdentity() pkgjwt.Identity {
	return pkgjwt.Identity{SessionID: "sess-1", EmployeeID: "1", Company: "Guardian Insurance", Role: "insurance"}
}

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	tok, exp, err := pkgjwt.Generate(testSecret, testIssuer, testIdentity(), 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id.SessionID)
	assert.Equal(t, "1", id.EmployeeID)
	assert.Equal(t, "Guardian Insurance", id.Company)
	assert.Equal(t, "insurance", id.Role)
	assert.WithinDuration(t, exp, id.ExpiresAt, 1e9)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testIssuer, testIdentity(), -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testIssuer, testIdentity(), 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio_RetornaError(t *testing.T) {
	_, _, err := pkgjwt.Generate("", testIssuer, testIdentity(), 60)
	assert.Error(t, err)
}
