package types

type ConteoEstado struct {
	Estado string `db:"estado" json:"estado"`
	Total  int    `db:"total" json:"total"`
}

type ConteoUsuario struct {
	Usuario string `db:"usuario" json:"usuario"`
	Total   int    `db:"total" json:"total"`
}

type ConteoMes struct {
	Mes   string `db:"mes" json:"mes"`
	Total int    `db:"total" json:"total"`
}

// Resumen carries the headline counters shown on the dashboard.
type Resumen struct {
	Total     int `db:"total" json:"total"`
	MesActual int `db:"mes_actual" json:"mesActual"`
	Cerrados  int `db:"cerrados" json:"cerrados"`
}
