package server

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"expedientes/internal/ia"
	"expedientes/internal/utils"
	"expedientes/pkg/types"
)

func (s *Service) handleListArchivos(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	archivos, err := s.archivos.ArchivosByExpediente(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to list archivos")
		return
	}

	s.respondOK(w, map[string]any{"archivos": archivos})
}

func (s *Service) handleUploadArchivos(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if _, err := s.expedientes.Expediente(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "failed to fetch expediente for upload")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(w, http.StatusBadRequest, "Formulario multipart inválido")
		return
	}

	headers := r.MultipartForm.File["archivos"]
	if len(headers) == 0 {
		s.respondError(w, http.StatusBadRequest, "No se enviaron archivos")
		return
	}

	subidoPor := s.resolveSubidoPor(r)

	archivos := make([]*types.Archivo, 0, len(headers))
	for _, header := range headers {
		archivo, err := s.saveArchivo(r, id, header, subidoPor)
		if err != nil {
			s.logger.WithError(err).WithField("archivo", header.Filename).Error("failed to store uploaded file")
			s.respondError(w, http.StatusInternalServerError, "Error guardando archivos")
			return
		}
		archivos = append(archivos, archivo)
	}

	s.respondOK(w, map[string]any{"archivos": archivos})
}

func (s *Service) handleDownloadArchivo(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	archivo, err := s.archivos.Archivo(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to fetch archivo for download")
		return
	}

	if !s.uploads.Exists(archivo.ArchivoPath) {
		s.respondError(w, http.StatusNotFound, "Archivo físico no encontrado")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archivo.NombreOriginal))
	w.Header().Set("Content-Type", archivo.TipoMime)
	http.ServeFile(w, r, s.uploads.Path(archivo.ArchivoPath))
}

// handleDeleteArchivo removes the metadata row first; unlinking the
// physical file is best effort.
func (s *Service) handleDeleteArchivo(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	archivo, err := s.archivos.DeleteArchivo(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to delete archivo")
		return
	}

	if err := s.uploads.Remove(archivo.ArchivoPath); err != nil {
		s.logger.WithError(err).WithField("archivo_path", archivo.ArchivoPath).Warn("failed to remove physical file")
	}

	s.respondOK(w, map[string]any{"message": "Archivo eliminado"})
}

func (s *Service) handleAnalizarArchivo(w http.ResponseWriter, r *http.Request) {

	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	archivo, err := s.archivos.Archivo(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "failed to fetch archivo for analysis")
		return
	}

	texto, err := s.extractor.ArchivoText(r.Context(), archivo)
	if err != nil {
		s.logger.WithError(err).WithField("archivo_id", archivo.ID).Error("failed to extract archivo text")
		s.respondError(w, http.StatusInternalServerError, "Error leyendo el archivo")
		return
	}

	resumen, err := s.ia.Complete(r.Context(), ia.PromptResumenArchivo, texto)
	if err != nil {
		s.logger.WithError(err).Error("completion request failed")
		s.respondError(w, http.StatusInternalServerError, "Error analizando archivo")
		return
	}

	reporte := &types.Reporte{
		ExpedienteID: archivo.ExpedienteID,
		Contenido:    resumen,
		GeneradoPor:  utils.StringPtr(s.resolveGenerador(r)),
	}

	if err := s.reportes.CreateReporte(r.Context(), reporte); err != nil {
		s.respondRepoError(w, err, "failed to persist archivo analysis")
		return
	}

	s.respondOK(w, map[string]any{"reporte": reporte, "archivo": archivo.NombreOriginal})
}

// resolveSubidoPor attributes an upload: authenticated caller first, then
// the submitted subido_por field, else unattributed.
func (s *Service) resolveSubidoPor(r *http.Request) *string {
	if identity := identityFromContext(r.Context()); identity != nil && identity.Email != "" {
		return utils.StringPtr(identity.Email)
	}

	if v := strings.TrimSpace(r.FormValue("subido_por")); v != "" {
		return utils.StringPtr(v)
	}

	return nil
}

// saveArchivo streams one multipart part to disk and records its metadata
// row. The stored name is always server generated.
func (s *Service) saveArchivo(r *http.Request, expedienteID int64, header *multipart.FileHeader, subidoPor *string) (*types.Archivo, error) {

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open multipart file %s: %w", header.Filename, err)
	}
	defer file.Close()

	stored := s.uploads.StoredName(header.Filename)
	if err := s.uploads.Save(r.Context(), stored, file); err != nil {
		return nil, fmt.Errorf("save file %s: %w", header.Filename, err)
	}

	archivo := &types.Archivo{
		ExpedienteID:   expedienteID,
		NombreOriginal: header.Filename,
		ArchivoPath:    stored,
		TipoMime:       header.Header.Get("Content-Type"),
		SubidoPor:      subidoPor,
	}

	if err := s.archivos.CreateArchivo(r.Context(), archivo); err != nil {
		return nil, err
	}

	return archivo, nil
}

// intakeFileHeader returns the single optional attachment of the
// expediente intake form, when the request is multipart and carries one.
func intakeFileHeader(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil || len(r.MultipartForm.File["archivo"]) == 0 {
		return nil
	}
	return r.MultipartForm.File["archivo"][0]
}

func (s *Service) storeIntakeArchivo(r *http.Request) (*string, error) {

	header := intakeFileHeader(r)
	if header == nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open intake file %s: %w", header.Filename, err)
	}
	defer file.Close()

	stored := s.uploads.StoredName(header.Filename)
	if err := s.uploads.Save(r.Context(), stored, file); err != nil {
		return nil, fmt.Errorf("save intake file %s: %w", header.Filename, err)
	}

	return &stored, nil
}

// recordIntakeArchivo mirrors the intake attachment into the archivos
// table so it shows up alongside later uploads. The expediente row already
// carries the stored name, so a failure here only costs the listing entry.
func (s *Service) recordIntakeArchivo(r *http.Request, expediente *types.Expediente) {

	header := intakeFileHeader(r)
	if header == nil || expediente.Archivo == nil {
		return
	}

	archivo := &types.Archivo{
		ExpedienteID:   expediente.ID,
		NombreOriginal: header.Filename,
		ArchivoPath:    *expediente.Archivo,
		TipoMime:       header.Header.Get("Content-Type"),
		SubidoPor:      utils.StringPtr(expediente.CreadoPor),
	}

	if err := s.archivos.CreateArchivo(r.Context(), archivo); err != nil {
		s.logger.WithError(err).WithField("expediente_id", expediente.ID).Warn("failed to record intake archivo")
	}
}
