package store

import (
	"context"
	"fmt"

	"expedientes/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Aggregation queries stay as raw SQL: the grouping expressions
// (COALESCE/NULLIF, to_char, the creator join) read better whole than
// assembled piecewise, and nothing in them is caller-controlled.
const (
	totalQuery = `SELECT COUNT(*)::int FROM expedientes`

	porEstadoQuery = `
		SELECT COALESCE(NULLIF(estado, ''), 'Sin estado') AS estado, COUNT(*)::int AS total
		FROM expedientes
		GROUP BY COALESCE(NULLIF(estado, ''), 'Sin estado')
		ORDER BY estado`

	porUsuarioQuery = `
		SELECT COALESCE(u.nombre, e.creado_por, 'Desconocido') AS usuario, COUNT(*)::int AS total
		FROM expedientes e
		LEFT JOIN usuarios u ON u.email = e.creado_por OR u.nombre = e.creado_por OR u.id::text = e.creado_por
		GROUP BY usuario
		ORDER BY total DESC`

	porMesQuery = `
		SELECT to_char(fecha_inicio, 'YYYY-MM') AS mes, COUNT(*)::int AS total
		FROM expedientes
		WHERE fecha_inicio IS NOT NULL
		GROUP BY to_char(fecha_inicio, 'YYYY-MM')
		ORDER BY mes`

	mesActualQuery = `
		SELECT COUNT(*)::int FROM expedientes
		WHERE date_trunc('month', creado_en) = date_trunc('month', now())`

	cerradosQuery = `SELECT COUNT(*)::int FROM expedientes WHERE LOWER(estado) = 'cerrado'`
)

type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

func (r *DashboardRepository) Total(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, totalQuery).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count expedientes: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) PorEstado(ctx context.Context) ([]types.ConteoEstado, error) {
	var conteos = make([]types.ConteoEstado, 0)
	if err := pgxscan.Select(ctx, r.pool, &conteos, porEstadoQuery); err != nil {
		return nil, fmt.Errorf("failed to count expedientes by estado: %w", err)
	}
	return conteos, nil
}

func (r *DashboardRepository) PorUsuario(ctx context.Context) ([]types.ConteoUsuario, error) {
	var conteos = make([]types.ConteoUsuario, 0)
	if err := pgxscan.Select(ctx, r.pool, &conteos, porUsuarioQuery); err != nil {
		return nil, fmt.Errorf("failed to count expedientes by usuario: %w", err)
	}
	return conteos, nil
}

func (r *DashboardRepository) PorMes(ctx context.Context) ([]types.ConteoMes, error) {
	var conteos = make([]types.ConteoMes, 0)
	if err := pgxscan.Select(ctx, r.pool, &conteos, porMesQuery); err != nil {
		return nil, fmt.Errorf("failed to count expedientes by mes: %w", err)
	}
	return conteos, nil
}

// Resumen recomputes the headline counters on every call. The three counts
// are independent statements; there is no transaction tying them together.
func (r *DashboardRepository) Resumen(ctx context.Context) (*types.Resumen, error) {

	resumen := new(types.Resumen)

	if err := r.pool.QueryRow(ctx, totalQuery).Scan(&resumen.Total); err != nil {
		return nil, fmt.Errorf("failed to count expedientes: %w", err)
	}

	if err := r.pool.QueryRow(ctx, mesActualQuery).Scan(&resumen.MesActual); err != nil {
		return nil, fmt.Errorf("failed to count expedientes for current month: %w", err)
	}

	if err := r.pool.QueryRow(ctx, cerradosQuery).Scan(&resumen.Cerrados); err != nil {
		return nil, fmt.Errorf("failed to count cerrados: %w", err)
	}

	return resumen, nil
}
