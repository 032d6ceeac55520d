package server

import (
	"errors"
	"net/http"

	"expedientes/internal/reniec"

	"github.com/alexedwards/flow"
)

func (s *Service) handleReniecLookup(w http.ResponseWriter, r *http.Request) {

	doc := flow.Param(r.Context(), "doc")

	persona, err := s.reniec.Lookup(r.Context(), doc)
	if err != nil {
		var upstream *reniec.UpstreamError
		switch {
		case errors.Is(err, reniec.ErrDocumentoInvalido):
			s.respondError(w, http.StatusBadRequest, "Documento inválido")
		case errors.As(err, &upstream):
			s.respondError(w, upstream.StatusCode, "Error consultando RENIEC")
		default:
			s.logger.WithError(err).Error("reniec lookup failed")
			s.respondError(w, http.StatusInternalServerError, "Error consultando RENIEC")
		}
		return
	}

	s.respondOK(w, map[string]any{
		"nombre":           persona.Nombre,
		"fecha_nacimiento": persona.FechaNacimiento,
		"direccion":        persona.Direccion,
		"raw":              persona.Raw,
	})
}
