package server

import (
	"net/http"
	"strings"

	"expedientes/internal/utils"
	"expedientes/pkg/types"
)

type reporteForm struct {
	Contenido string `json:"contenido" form:"contenido"`
}

func (s *Service) handleListReportes(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	reportes, err := s.reportes.ReportesByExpediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to list reportes")
		return
	}

	s.respondOK(w, map[string]any{"reportes": reportes})
}

func (s *Service) handleCreateReporte(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if _, err := s.expedientes.Expediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to fetch expediente for reporte")
		return
	}

	var form reporteForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.Contenido = strings.TrimSpace(form.Contenido)
	if form.Contenido == "" {
		s.respondError(w, http.StatusBadRequest, "El contenido es obligatorio")
		return
	}

	reporte := &types.Reporte{
		ExpedienteID: id,
		Contenido:    form.Contenido,
		GeneradoPor:  utils.StringPtr(s.resolveGenerador(r)),
	}

	if err := s.reportes.CreateReporte(r.Context(), reporte); err != nil {
		s.respondRepoError(w, err, "failed to create reporte")
		return
	}

	s.respondOK(w, map[string]any{"reporte": reporte})
}

func (s *Service) handleUpdateReporte(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var form reporteForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.Contenido = strings.TrimSpace(form.Contenido)
	if form.Contenido == "" {
		s.respondError(w, http.StatusBadRequest, "El contenido es obligatorio")
		return
	}

	if err := s.reportes.UpdateReporte(r.Context(), id, form.Contenido); err != nil {
		s.respondRepoError(w, err, "failed to update reporte")
		return
	}

	s.respondOK(w, map[string]any{"message": "Reporte actualizado"})
}

func (s *Service) handleDeleteReporte(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := s.reportes.DeleteReporte(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to delete reporte")
		return
	}

	s.respondOK(w, map[string]any{"message": "Reporte eliminado"})
}
