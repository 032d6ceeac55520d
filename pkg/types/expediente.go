package types

import "time"

// Estados known to the frontend. The column is free text; anything else is
// kept verbatim and normalized to EstadoSinEstado for aggregation only.
const (
	EstadoAbierto   = "Abierto"
	EstadoEnProceso = "En Proceso"
	EstadoCerrado   = "Cerrado"
	EstadoSinEstado = "Sin estado"
)

type Expediente struct {
	ID               int64      `db:"id" json:"id"`
	NumeroExpediente string     `db:"numero_expediente" json:"numero_expediente"`
	Demandante       string     `db:"demandante" json:"demandante"`
	DemandanteDoc    string     `db:"demandante_doc" json:"demandante_doc"`
	Demandado        *string    `db:"demandado" json:"demandado"`
	DemandadoDoc     *string    `db:"demandado_doc" json:"demandado_doc"`
	Estado           string     `db:"estado" json:"estado"`
	FechaInicio      *time.Time `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin         *time.Time `db:"fecha_fin" json:"fecha_fin"`
	CreadoPor        string     `db:"creado_por" json:"creado_por"`
	Archivo          *string    `db:"archivo" json:"archivo"`
	CreadoEn         time.Time  `db:"creado_en" json:"creado_en"`
}
