package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"expedientes/pkg/types"

	"github.com/alexedwards/flow"
)

const maxUploadMemory = 32 << 20

// Every response, success or failure, travels in the same envelope the
// frontend already understands: {"success":true,...} / {"success":false,"message":...}.
func (s *Service) respondOK(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message}); err != nil {
		s.logger.WithError(err).Error("failed to encode error response")
	}
}

// respondRepoError maps repository sentinels to 404/400 and logs anything
// unexpected before answering with a generic 500. Internal detail never
// reaches the client.
func (s *Service) respondRepoError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, types.ErrExpedienteNotFound),
		errors.Is(err, types.ErrEventoNotFound),
		errors.Is(err, types.ErrReporteNotFound),
		errors.Is(err, types.ErrArchivoNotFound),
		errors.Is(err, types.ErrUsuarioNotFound):
		s.respondError(w, http.StatusNotFound, "No encontrado")
	case errors.Is(err, types.ErrEmailEnUso):
		s.respondError(w, http.StatusBadRequest, "Email ya registrado")
	default:
		s.logger.WithError(err).Error(operation)
		s.respondError(w, http.StatusInternalServerError, "Error en servidor")
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := flow.Param(r.Context(), name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identificador inválido: %q", raw)
	}
	return id, nil
}

// decodeRequest accepts either a JSON body or an (optionally multipart)
// form, which is how the SPA submits depending on the page.
func decodeRequest(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return err
		}
	} else if err := r.ParseForm(); err != nil {
		return err
	}

	return decoder.Decode(dst, r.Form)
}

// parseFecha reads the date formats the frontend produces: bare dates from
// <input type="date"> and full RFC 3339 stamps from re-submitted rows.
// Empty means "not set".
func parseFecha(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	return nil, fmt.Errorf("fecha inválida: %q", value)
}
