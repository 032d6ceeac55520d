package types

import "time"

// Archivo is the metadata row for an uploaded file. ArchivoPath is the
// server-generated storage name under the upload root, never a client value.
type Archivo struct {
	ID             int64     `db:"id" json:"id"`
	ExpedienteID   int64     `db:"expediente_id" json:"expediente_id"`
	NombreOriginal string    `db:"nombre_original" json:"nombre_original"`
	ArchivoPath    string    `db:"archivo_path" json:"archivo_path"`
	TipoMime       string    `db:"tipo_mime" json:"tipo_mime"`
	SubidoPor      *string   `db:"subido_por" json:"subido_por"`
	SubidoEn       time.Time `db:"subido_en" json:"subido_en"`
}
