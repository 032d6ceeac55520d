package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"expedientes/internal/ia"
	"expedientes/internal/store"
	"expedientes/internal/utils"
	"expedientes/pkg/types"
)

type expedienteForm struct {
	NumeroExpediente string `json:"numero_expediente" form:"numero_expediente"`
	Demandante       string `json:"demandante" form:"demandante"`
	DemandanteDoc    string `json:"demandante_doc" form:"demandante_doc"`
	Demandado        string `json:"demandado" form:"demandado"`
	DemandadoDoc     string `json:"demandado_doc" form:"demandado_doc"`
	Estado           string `json:"estado" form:"estado"`
	FechaInicio      string `json:"fecha_inicio" form:"fecha_inicio"`
	FechaFin         string `json:"fecha_fin" form:"fecha_fin"`
	CreadoPor        string `json:"creado_por" form:"creado_por"`
}

func (s *Service) handleListExpedientes(w http.ResponseWriter, r *http.Request) {

	q := r.URL.Query()

	from, err := parseFecha(q.Get("from"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha 'from' inválida")
		return
	}

	to, err := parseFecha(q.Get("to"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha 'to' inválida")
		return
	}

	filter := store.ExpedienteFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Estado: strings.TrimSpace(q.Get("estado")),
		From:   from,
		To:     to,
	}

	expedientes, err := s.expedientes.Expedientes(r.Context(), filter)
	if err != nil {
		s.respondRepoError(w, err, "failed to list expedientes")
		return
	}

	s.respondOK(w, map[string]any{"expedientes": expedientes})
}

func (s *Service) handleCreateExpediente(w http.ResponseWriter, r *http.Request) {

	var form expedienteForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.NumeroExpediente = strings.TrimSpace(form.NumeroExpediente)
	form.Demandante = strings.TrimSpace(form.Demandante)
	form.DemandanteDoc = strings.TrimSpace(form.DemandanteDoc)

	if form.NumeroExpediente == "" || form.Demandante == "" || form.DemandanteDoc == "" {
		s.respondError(w, http.StatusBadRequest, "Faltan campos: numero_expediente, demandante y demandante_doc son obligatorios")
		return
	}

	fechaInicio, err := parseFecha(form.FechaInicio)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha de inicio inválida")
		return
	}

	fechaFin, err := parseFecha(form.FechaFin)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha de fin inválida")
		return
	}

	if fechaInicio != nil && fechaFin != nil && fechaFin.Before(*fechaInicio) {
		s.respondError(w, http.StatusBadRequest, "La fecha de fin no puede ser anterior a la de inicio")
		return
	}

	estado := form.Estado
	if estado == "" {
		estado = types.EstadoAbierto
	}

	expediente := &types.Expediente{
		NumeroExpediente: form.NumeroExpediente,
		Demandante:       form.Demandante,
		DemandanteDoc:    form.DemandanteDoc,
		Demandado:        utils.NullableString(strings.TrimSpace(form.Demandado)),
		DemandadoDoc:     utils.NullableString(strings.TrimSpace(form.DemandadoDoc)),
		Estado:           estado,
		FechaInicio:      fechaInicio,
		FechaFin:         fechaFin,
		CreadoPor:        s.resolveCreador(r, form.CreadoPor),
	}

	// The intake form may carry one file alongside the fields.
	stored, archivoErr := s.storeIntakeArchivo(r)
	if archivoErr != nil {
		s.respondError(w, http.StatusBadRequest, "No se pudo guardar el archivo adjunto")
		return
	}
	expediente.Archivo = stored

	if err := s.expedientes.CreateExpediente(r.Context(), expediente); err != nil {
		s.discardIntakeArchivo(stored)
		s.respondRepoError(w, err, "failed to create expediente")
		return
	}

	if stored != nil {
		s.recordIntakeArchivo(r, expediente)
	}

	s.respondOK(w, map[string]any{"expediente": expediente})
}

func (s *Service) handleGetExpediente(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	expediente, err := s.expedientes.Expediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to fetch expediente")
		return
	}

	s.respondOK(w, map[string]any{"expediente": expediente})
}

func (s *Service) handleUpdateExpediente(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var form expedienteForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.NumeroExpediente = strings.TrimSpace(form.NumeroExpediente)
	form.Demandante = strings.TrimSpace(form.Demandante)
	form.DemandanteDoc = strings.TrimSpace(form.DemandanteDoc)

	if form.NumeroExpediente == "" || form.Demandante == "" || form.DemandanteDoc == "" {
		s.respondError(w, http.StatusBadRequest, "Faltan campos: numero_expediente, demandante y demandante_doc son obligatorios")
		return
	}

	fechaInicio, err := parseFecha(form.FechaInicio)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha de inicio inválida")
		return
	}

	fechaFin, err := parseFecha(form.FechaFin)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Fecha de fin inválida")
		return
	}

	if fechaInicio != nil && fechaFin != nil && fechaFin.Before(*fechaInicio) {
		s.respondError(w, http.StatusBadRequest, "La fecha de fin no puede ser anterior a la de inicio")
		return
	}

	expediente := &types.Expediente{
		NumeroExpediente: form.NumeroExpediente,
		Demandante:       form.Demandante,
		DemandanteDoc:    form.DemandanteDoc,
		Demandado:        utils.NullableString(strings.TrimSpace(form.Demandado)),
		DemandadoDoc:     utils.NullableString(strings.TrimSpace(form.DemandadoDoc)),
		Estado:           form.Estado,
		FechaInicio:      fechaInicio,
		FechaFin:         fechaFin,
	}

	if err := s.expedientes.UpdateExpediente(r.Context(), id, expediente); err != nil {
		s.respondRepoError(w, err, "failed to update expediente")
		return
	}

	updated, err := s.expedientes.Expediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to fetch updated expediente")
		return
	}

	s.respondOK(w, map[string]any{"expediente": updated})
}

// handleDeleteExpediente cascades: sub-resources go first so no orphan
// rows survive, then the physical files, then the expediente itself.
func (s *Service) handleDeleteExpediente(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if _, err := s.expedientes.Expediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to fetch expediente for delete")
		return
	}

	if err := s.eventos.DeleteEventosByExpediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to delete eventos")
		return
	}

	if err := s.reportes.DeleteReportesByExpediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to delete reportes")
		return
	}

	paths, err := s.archivos.DeleteArchivosByExpediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to delete archivos")
		return
	}

	for _, path := range paths {
		if err := s.uploads.Remove(path); err != nil {
			s.logger.WithError(err).WithField("archivo_path", path).Warn("failed to remove physical file")
		}
	}

	if err := s.expedientes.DeleteExpediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to delete expediente")
		return
	}

	s.respondOK(w, map[string]any{"message": "Expediente eliminado"})
}

func (s *Service) handleAnalizarExpediente(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if _, err := s.expedientes.Expediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to fetch expediente for analysis")
		return
	}

	archivos, err := s.archivos.ArchivosByExpediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to list archivos for analysis")
		return
	}

	if len(archivos) == 0 {
		s.respondError(w, http.StatusBadRequest, "No hay archivos para analizar")
		return
	}

	var contenido strings.Builder
	for _, archivo := range archivos {
		texto, err := s.extractor.ArchivoText(r.Context(), archivo)
		if err != nil {
			s.logger.WithError(err).WithField("archivo_id", archivo.ID).Warn("skipping unreadable archivo")
			continue
		}
		fmt.Fprintf(&contenido, "\n--- %s ---\n%s", archivo.NombreOriginal, texto)
	}

	resultado, err := s.ia.Complete(r.Context(), ia.PromptAnalisisExpediente, contenido.String())
	if err != nil {
		s.logger.WithError(err).Error("completion request failed")
		s.respondError(w, http.StatusInternalServerError, "Error analizando expediente")
		return
	}

	reporte := &types.Reporte{
		ExpedienteID: id,
		Contenido:    resultado,
		GeneradoPor:  utils.StringPtr(s.resolveGenerador(r)),
	}

	if err := s.reportes.CreateReporte(r.Context(), reporte); err != nil {
		s.respondRepoError(w, err, "failed to persist analysis reporte")
		return
	}

	s.respondOK(w, map[string]any{"reporte": reporte})
}

// resolveCreador picks the creator identity: authenticated caller first,
// then the submitted creado_por, then the anonymous marker.
func (s *Service) resolveCreador(r *http.Request, submitted string) string {
	if identity := identityFromContext(r.Context()); identity != nil {
		switch {
		case identity.Email != "":
			return identity.Email
		case identity.Nombre != "":
			return identity.Nombre
		default:
			return strconv.FormatInt(identity.ID, 10)
		}
	}

	if submitted = strings.TrimSpace(submitted); submitted != "" {
		return submitted
	}

	return "anónimo"
}

// discardIntakeArchivo unlinks a stored intake file whose expediente row
// never made it to the database.
func (s *Service) discardIntakeArchivo(stored *string) {
	if stored == nil {
		return
	}

	if err := s.uploads.Remove(*stored); err != nil {
		s.logger.WithError(err).WithField("archivo_path", *stored).Warn("failed to remove orphaned intake file")
	}
}

func (s *Service) resolveGenerador(r *http.Request) string {
	if identity := identityFromContext(r.Context()); identity != nil && identity.Email != "" {
		return identity.Email
	}
	return "sistema"
}
