package types

import "errors"

var (
	ErrExpedienteNotFound = errors.New("expediente no encontrado")
	ErrEventoNotFound     = errors.New("evento no encontrado")
	ErrReporteNotFound    = errors.New("reporte no encontrado")
	ErrArchivoNotFound    = errors.New("archivo no encontrado")
	ErrUsuarioNotFound    = errors.New("usuario no encontrado")
	ErrEmailEnUso         = errors.New("email ya registrado")
)
