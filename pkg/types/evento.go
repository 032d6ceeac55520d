package types

import "time"

type Evento struct {
	ID           int64      `db:"id" json:"id"`
	ExpedienteID int64      `db:"expediente_id" json:"expediente_id"`
	TipoEvento   string     `db:"tipo_evento" json:"tipo_evento"`
	Descripcion  *string    `db:"descripcion" json:"descripcion"`
	FechaEvento  *time.Time `db:"fecha_evento" json:"fecha_evento"`
	CreadoEn     time.Time  `db:"creado_en" json:"creado_en"`
}
