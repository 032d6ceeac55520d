package store

import (
	"context"
	"fmt"
	"time"

	"expedientes/internal/utils"
	"expedientes/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reporteTableName = "reportes"

var reporteColumns = utils.StructTagValues(types.Reporte{})

type ReporteRepository struct {
	pool *pgxpool.Pool
}

func NewReporteRepository(pool *pgxpool.Pool) *ReporteRepository {
	return &ReporteRepository{pool: pool}
}

func (r *ReporteRepository) ReportesByExpediente(ctx context.Context, expedienteID int64) ([]*types.Reporte, error) {

	query, args, err := psql().Select(reporteColumns...).From(reporteTableName).
		Where(sq.Eq{"expediente_id": expedienteID}).
		OrderBy("generado_en DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reportes query: %w", err)
	}

	var reportes = make([]*types.Reporte, 0)
	if err := pgxscan.Select(ctx, r.pool, &reportes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch reportes for expediente %d: %w", expedienteID, err)
	}

	return reportes, nil
}

func (r *ReporteRepository) CreateReporte(ctx context.Context, reporte *types.Reporte) error {

	reporte.GeneradoEn = time.Now()

	query, args, err := psql().Insert(reporteTableName).
		SetMap(utils.StructToMap(reporte, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert reporte query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&reporte.ID); err != nil {
		return fmt.Errorf("failed to create reporte: %w", err)
	}

	return nil
}

func (r *ReporteRepository) UpdateReporte(ctx context.Context, reporteID int64, contenido string) error {

	query, args, err := psql().Update(reporteTableName).
		Set("contenido", contenido).
		Where(sq.Eq{"id": reporteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update reporte query for %d: %w", reporteID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update reporte %d: %w", reporteID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrReporteNotFound
	}

	return nil
}

func (r *ReporteRepository) DeleteReporte(ctx context.Context, reporteID int64) error {

	query, args, err := psql().Delete(reporteTableName).
		Where(sq.Eq{"id": reporteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete reporte query for %d: %w", reporteID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete reporte %d: %w", reporteID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrReporteNotFound
	}

	return nil
}

func (r *ReporteRepository) DeleteReportesByExpediente(ctx context.Context, expedienteID int64) error {

	query, args, err := psql().Delete(reporteTableName).
		Where(sq.Eq{"expediente_id": expedienteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete reportes query for expediente %d: %w", expedienteID, err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete reportes for expediente %d: %w", expedienteID, err)
	}

	return nil
}
