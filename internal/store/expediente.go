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

const expedienteTableName = "expedientes"

// listLimit caps unpaginated listings.
const listLimit = 200

var expedienteColumns = utils.StructTagValues(types.Expediente{})

// ExpedienteFilter describes the optional list filters. All set filters
// combine with AND; Query matches case-insensitively against the case
// number and both party names.
type ExpedienteFilter struct {
	Query  string
	Estado string
	From   *time.Time
	To     *time.Time
}

func (f ExpedienteFilter) apply(builder sq.SelectBuilder) sq.SelectBuilder {
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"numero_expediente": pattern},
			sq.ILike{"demandante": pattern},
			sq.ILike{"demandado": pattern},
		})
	}

	if f.Estado != "" {
		builder = builder.Where(sq.Eq{"estado": f.Estado})
	}

	if f.From != nil {
		builder = builder.Where(sq.GtOrEq{"fecha_inicio": *f.From})
	}

	// The effective end of a case falls back to its start date while the
	// case is still open.
	if f.To != nil {
		builder = builder.Where(sq.Expr("COALESCE(fecha_fin, fecha_inicio) <= ?", *f.To))
	}

	return builder
}

type ExpedienteRepository struct {
	pool *pgxpool.Pool
}

func NewExpedienteRepository(pool *pgxpool.Pool) *ExpedienteRepository {
	return &ExpedienteRepository{pool: pool}
}

func (r *ExpedienteRepository) Expedientes(ctx context.Context, filter ExpedienteFilter) ([]*types.Expediente, error) {

	query, args, err := filter.apply(psql().Select(expedienteColumns...).From(expedienteTableName)).
		OrderBy("id DESC").
		Limit(listLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate expedientes query: %w", err)
	}

	var expedientes = make([]*types.Expediente, 0)
	if err := pgxscan.Select(ctx, r.pool, &expedientes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch expedientes: %w", err)
	}

	return expedientes, nil
}

func (r *ExpedienteRepository) Expediente(ctx context.Context, expedienteID int64) (*types.Expediente, error) {

	query, args, err := psql().Select(expedienteColumns...).From(expedienteTableName).
		Where(sq.Eq{"id": expedienteID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate expediente query: %w", err)
	}

	var expediente = new(types.Expediente)
	err = pgxscan.Get(ctx, r.pool, expediente, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrExpedienteNotFound
		}
		return nil, fmt.Errorf("failed to fetch expediente %d: %w", expedienteID, err)
	}

	return expediente, nil
}

func (r *ExpedienteRepository) CreateExpediente(ctx context.Context, expediente *types.Expediente) error {

	expediente.CreadoEn = time.Now()

	expedienteMap := utils.StructToMap(expediente, "id")

	query, args, err := psql().Insert(expedienteTableName).
		SetMap(expedienteMap).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert expediente query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&expediente.ID); err != nil {
		return fmt.Errorf("failed to create expediente: %w", err)
	}

	return nil
}

// UpdateExpediente overwrites the full mutable field set. creado_por,
// archivo and creado_en are immutable after intake.
func (r *ExpedienteRepository) UpdateExpediente(ctx context.Context, expedienteID int64, expediente *types.Expediente) error {

	expediente.ID = expedienteID

	query, args, err := psql().Update(expedienteTableName).
		SetMap(map[string]any{
			"numero_expediente": expediente.NumeroExpediente,
			"demandante":        expediente.Demandante,
			"demandante_doc":    expediente.DemandanteDoc,
			"demandado":         expediente.Demandado,
			"demandado_doc":     expediente.DemandadoDoc,
			"estado":            expediente.Estado,
			"fecha_inicio":      expediente.FechaInicio,
			"fecha_fin":         expediente.FechaFin,
		}).
		Where(sq.Eq{"id": expedienteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update expediente query for %d: %w", expedienteID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update expediente %d: %w", expedienteID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrExpedienteNotFound
	}

	return nil
}

func (r *ExpedienteRepository) DeleteExpediente(ctx context.Context, expedienteID int64) error {

	query, args, err := psql().Delete(expedienteTableName).
		Where(sq.Eq{"id": expedienteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete expediente query for %d: %w", expedienteID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete expediente %d: %w", expedienteID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrExpedienteNotFound
	}

	return nil
}
