package types

import "time"

type Reporte struct {
	ID           int64     `db:"id" json:"id"`
	ExpedienteID int64     `db:"expediente_id" json:"expediente_id"`
	Contenido    string    `db:"contenido" json:"contenido"`
	GeneradoPor  *string   `db:"generado_por" json:"generado_por"`
	GeneradoEn   time.Time `db:"generado_en" json:"generado_en"`
}
