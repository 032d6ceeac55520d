package types

import "time"

const (
	RolAdmin   = "admin"
	RolAbogado = "abogado"
	RolUsuario = "usuario"
)

type Usuario struct {
	ID       int64  `db:"id" json:"id"`
	Nombre   string `db:"nombre" json:"nombre"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
	Rol      string `db:"rol" json:"rol"`

	CreadoEn time.Time `db:"creado_en" json:"creado_en"`
}
