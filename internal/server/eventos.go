package server

import (
	"net/http"
	"strings"

	"expedientes/internal/utils"
	"expedientes/pkg/types"
)

type eventoForm struct {
	TipoEvento  string `json:"tipo_evento" form:"tipo_evento"`
	Descripcion string `json:"descripcion" form:"descripcion"`
	FechaEvento string `json:"fecha_evento" form:"fecha_evento"`
}

func (s *Service) handleListEventos(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	eventos, err := s.eventos.EventosByExpediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to list eventos")
		return
	}

	s.respondOK(w, map[string]any{"eventos": eventos})
}

func (s *Service) handleCreateEvento(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if _, err := s.expedientes.Expediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to fetch expediente for evento")
		return
	}

	var form eventoForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.TipoEvento = strings.TrimSpace(form.TipoEvento)
	if form.TipoEvento == "" {
		s.respondError(w, http.StatusBadRequest, "El tipo de evento es obligatorio")
		return
	}

	fechaEvento, err := parseFecha(form.FechaEvento)
	if err != nil || fechaEvento == nil {
		s.respondError(w, http.StatusBadRequest, "La fecha del evento es obligatoria")
		return
	}

	evento := &types.Evento{
		ExpedienteID: id,
		TipoEvento:   form.TipoEvento,
		Descripcion:  utils.NullableString(strings.TrimSpace(form.Descripcion)),
		FechaEvento:  fechaEvento,
	}

	if err := s.eventos.CreateEvento(r.Context(), evento); err != nil {
		s.respondRepoError(w, err, "failed to create evento")
		return
	}

	s.respondOK(w, map[string]any{"evento": evento})
}

func (s *Service) handleUpdateEvento(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var form eventoForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.TipoEvento = strings.TrimSpace(form.TipoEvento)
	if form.TipoEvento == "" {
		s.respondError(w, http.StatusBadRequest, "El tipo de evento es obligatorio")
		return
	}

	fechaEvento, err := parseFecha(form.FechaEvento)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha de evento inválida")
		return
	}

	evento := &types.Evento{
		TipoEvento:  form.TipoEvento,
		Descripcion: utils.NullableString(strings.TrimSpace(form.Descripcion)),
		FechaEvento: fechaEvento,
	}

	if err := s.eventos.UpdateEvento(r.Context(), id, evento); err != nil {
		s.respondRepoError(w, err, "failed to update evento")
		return
	}

	s.respondOK(w, map[string]any{"evento": evento})
}

func (s *Service) handleDeleteEvento(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := s.eventos.DeleteEvento(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to delete evento")
		return
	}

	s.respondOK(w, map[string]any{"message": "Evento eliminado"})
}
