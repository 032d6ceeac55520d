package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"expedientes/internal/reniec"

	"github.com/alexedwards/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reniecMux(s *Service) *flow.Mux {
	mux := flow.New()
	mux.HandleFunc("/api/reniec/:doc", s.handleReniecLookup, http.MethodGet)
	return mux
}

func TestReniecLookupInvalidDocument(t *testing.T) {

	upstreamCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	}))
	defer upstream.Close()

	s := testService(t)
	s.reniec = reniec.New(upstream.URL, "token")

	rec := httptest.NewRecorder()
	reniecMux(s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reniec/12AB", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, upstreamCalls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Documento inválido", body["message"])
}

func TestReniecLookupPassesUpstreamStatus(t *testing.T) {

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	s := testService(t)
	s.reniec = reniec.New(upstream.URL, "token")

	rec := httptest.NewRecorder()
	reniecMux(s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reniec/12345678", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReniecLookupSuccess(t *testing.T) {

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reniec/dni", r.URL.Path)
		assert.Equal(t, "12345678", r.URL.Query().Get("numero"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"full_name":"Juan Perez Quispe","address":"Av. Lima 123"}`))
	}))
	defer upstream.Close()

	s := testService(t)
	s.reniec = reniec.New(upstream.URL, "token")

	rec := httptest.NewRecorder()
	reniecMux(s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reniec/12345678", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Juan Perez Quispe", body["nombre"])
	assert.Equal(t, "Av. Lima 123", body["direccion"])
}
