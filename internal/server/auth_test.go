package server

import (
	"io"
	"testing"

	"expedientes/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Service{
		logger: logger,
		config: &types.Config{
			JWTSecret:   "test-secret-for-signing",
			TokenTTLMin: 60,
		},
	}
}

func TestPasswordMatchesBcrypt(t *testing.T) {

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	matched, legacy := passwordMatches(string(hashed), "hunter2")
	assert.True(t, matched)
	assert.False(t, legacy)

	matched, _ = passwordMatches(string(hashed), "wrong")
	assert.False(t, matched)
}

func TestPasswordMatchesLegacyPlaintext(t *testing.T) {

	matched, legacy := passwordMatches("hunter2", "hunter2")
	assert.True(t, matched)
	assert.True(t, legacy)

	matched, legacy = passwordMatches("hunter2", "wrong")
	assert.False(t, matched)
	assert.True(t, legacy)

	// An empty stored credential never matches anything.
	matched, _ = passwordMatches("", "")
	assert.False(t, matched)
}

func TestTokenRoundTrip(t *testing.T) {

	s := testService(t)

	usuario := &types.Usuario{
		ID:     42,
		Nombre: "Ana Torres",
		Email:  "ana@estudio.pe",
		Rol:    types.RolAbogado,
	}

	raw, err := s.issueToken(usuario)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	identity, err := s.parseToken(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "Ana Torres", identity.Nombre)
	assert.Equal(t, "ana@estudio.pe", identity.Email)
	assert.Equal(t, types.RolAbogado, identity.Rol)
}

func TestParseTokenRejectsGarbage(t *testing.T) {

	s := testService(t)

	_, err := s.parseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {

	s := testService(t)

	raw, err := s.issueToken(&types.Usuario{ID: 1, Email: "x@y.pe", Rol: types.RolUsuario})
	require.NoError(t, err)

	other := testService(t)
	other.config.JWTSecret = "a-different-secret-entirely"

	_, err = other.parseToken(raw)
	assert.Error(t, err)
}
