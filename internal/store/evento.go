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

const eventoTableName = "eventos"

var eventoColumns = utils.StructTagValues(types.Evento{})

type EventoRepository struct {
	pool *pgxpool.Pool
}

func NewEventoRepository(pool *pgxpool.Pool) *EventoRepository {
	return &EventoRepository{pool: pool}
}

func (r *EventoRepository) EventosByExpediente(ctx context.Context, expedienteID int64) ([]*types.Evento, error) {

	query, args, err := psql().Select(eventoColumns...).From(eventoTableName).
		Where(sq.Eq{"expediente_id": expedienteID}).
		OrderBy("fecha_evento DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate eventos query: %w", err)
	}

	var eventos = make([]*types.Evento, 0)
	if err := pgxscan.Select(ctx, r.pool, &eventos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch eventos for expediente %d: %w", expedienteID, err)
	}

	return eventos, nil
}

func (r *EventoRepository) CreateEvento(ctx context.Context, evento *types.Evento) error {

	evento.CreadoEn = time.Now()

	query, args, err := psql().Insert(eventoTableName).
		SetMap(utils.StructToMap(evento, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert evento query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&evento.ID); err != nil {
		return fmt.Errorf("failed to create evento: %w", err)
	}

	return nil
}

func (r *EventoRepository) UpdateEvento(ctx context.Context, eventoID int64, evento *types.Evento) error {

	evento.ID = eventoID

	query, args, err := psql().Update(eventoTableName).
		SetMap(map[string]any{
			"tipo_evento":  evento.TipoEvento,
			"descripcion":  evento.Descripcion,
			"fecha_evento": evento.FechaEvento,
		}).
		Where(sq.Eq{"id": eventoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update evento query for %d: %w", eventoID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update evento %d: %w", eventoID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrEventoNotFound
	}

	return nil
}

func (r *EventoRepository) DeleteEvento(ctx context.Context, eventoID int64) error {

	query, args, err := psql().Delete(eventoTableName).
		Where(sq.Eq{"id": eventoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete evento query for %d: %w", eventoID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete evento %d: %w", eventoID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrEventoNotFound
	}

	return nil
}

func (r *EventoRepository) DeleteEventosByExpediente(ctx context.Context, expedienteID int64) error {

	query, args, err := psql().Delete(eventoTableName).
		Where(sq.Eq{"expediente_id": expedienteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete eventos query for expediente %d: %w", expedienteID, err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete eventos for expediente %d: %w", expedienteID, err)
	}

	return nil
}
