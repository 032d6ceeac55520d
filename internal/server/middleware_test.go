package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"expedientes/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEcho(t *testing.T) (http.Handler, *Identity) {
	t.Helper()

	var seen Identity
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity := identityFromContext(r.Context()); identity != nil {
			seen = *identity
		}
		w.WriteHeader(http.StatusOK)
	}), &seen
}

func TestRequireAuthWithoutToken(t *testing.T) {

	s := testService(t)
	next, _ := identityEcho(t)

	rec := httptest.NewRecorder()
	s.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No autorizado", body["message"])
}

func TestRequireAuthWithValidToken(t *testing.T) {

	s := testService(t)
	next, seen := identityEcho(t)

	raw, err := s.issueToken(&types.Usuario{ID: 7, Nombre: "Luis", Email: "luis@estudio.pe", Rol: types.RolAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	rec := httptest.NewRecorder()
	s.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), seen.ID)
	assert.Equal(t, "luis@estudio.pe", seen.Email)
	assert.Equal(t, types.RolAdmin, seen.Rol)
}

func TestRequireAuthWithBadToken(t *testing.T) {

	s := testService(t)
	next, _ := identityEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	s.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthSwallowsBadToken(t *testing.T) {

	s := testService(t)
	next, seen := identityEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/expedientes", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	s.OptionalAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, seen.ID)
}

func TestOptionalAuthAttachesIdentity(t *testing.T) {

	s := testService(t)
	next, seen := identityEcho(t)

	raw, err := s.issueToken(&types.Usuario{ID: 3, Email: "maria@estudio.pe", Rol: types.RolUsuario})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/expedientes", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	rec := httptest.NewRecorder()
	s.OptionalAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), seen.ID)
}

func TestRequireRole(t *testing.T) {

	s := testService(t)
	next, _ := identityEcho(t)
	guarded := s.RequireAuth(s.RequireRole(types.RolAdmin)(next))

	adminToken, err := s.issueToken(&types.Usuario{ID: 1, Email: "admin@estudio.pe", Rol: types.RolAdmin})
	require.NoError(t, err)

	userToken, err := s.issueToken(&types.Usuario{ID: 2, Email: "user@estudio.pe", Rol: types.RolUsuario})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/expedientes/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/expedientes/1", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No tienes permisos", body["message"])
}

func TestBearerToken(t *testing.T) {

	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"bearer abc123", "abc123", true},
		{"Basic abc123", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}

		got, ok := bearerToken(req)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.want, got, "header %q", tc.header)
	}
}
