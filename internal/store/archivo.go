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

const archivoTableName = "archivos"

var archivoColumns = utils.StructTagValues(types.Archivo{})

type ArchivoRepository struct {
	pool *pgxpool.Pool
}

func NewArchivoRepository(pool *pgxpool.Pool) *ArchivoRepository {
	return &ArchivoRepository{pool: pool}
}

func (r *ArchivoRepository) Archivo(ctx context.Context, archivoID int64) (*types.Archivo, error) {

	query, args, err := psql().Select(archivoColumns...).From(archivoTableName).
		Where(sq.Eq{"id": archivoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate archivo query: %w", err)
	}

	var archivo = new(types.Archivo)
	err = pgxscan.Get(ctx, r.pool, archivo, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrArchivoNotFound
		}
		return nil, fmt.Errorf("failed to fetch archivo %d: %w", archivoID, err)
	}

	return archivo, nil
}

func (r *ArchivoRepository) ArchivosByExpediente(ctx context.Context, expedienteID int64) ([]*types.Archivo, error) {

	query, args, err := psql().Select(archivoColumns...).From(archivoTableName).
		Where(sq.Eq{"expediente_id": expedienteID}).
		OrderBy("subido_en DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate archivos query: %w", err)
	}

	var archivos = make([]*types.Archivo, 0)
	if err := pgxscan.Select(ctx, r.pool, &archivos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch archivos for expediente %d: %w", expedienteID, err)
	}

	return archivos, nil
}

func (r *ArchivoRepository) CreateArchivo(ctx context.Context, archivo *types.Archivo) error {

	archivo.SubidoEn = time.Now()

	query, args, err := psql().Insert(archivoTableName).
		SetMap(utils.StructToMap(archivo, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert archivo query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&archivo.ID); err != nil {
		return fmt.Errorf("failed to create archivo: %w", err)
	}

	return nil
}

// DeleteArchivo removes the metadata row and returns it so the caller can
// unlink the physical file afterwards.
func (r *ArchivoRepository) DeleteArchivo(ctx context.Context, archivoID int64) (*types.Archivo, error) {

	query, args, err := psql().Delete(archivoTableName).
		Where(sq.Eq{"id": archivoID}).
		Suffix("RETURNING " + joinColumns(archivoColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delete archivo query for %d: %w", archivoID, err)
	}

	var archivo = new(types.Archivo)
	err = pgxscan.Get(ctx, r.pool, archivo, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrArchivoNotFound
		}
		return nil, fmt.Errorf("failed to delete archivo %d: %w", archivoID, err)
	}

	return archivo, nil
}

// DeleteArchivosByExpediente removes every metadata row for the expediente
// and returns the stored names of the files that now need unlinking.
func (r *ArchivoRepository) DeleteArchivosByExpediente(ctx context.Context, expedienteID int64) ([]string, error) {

	query, args, err := psql().Delete(archivoTableName).
		Where(sq.Eq{"expediente_id": expedienteID}).
		Suffix("RETURNING archivo_path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delete archivos query for expediente %d: %w", expedienteID, err)
	}

	var paths = make([]string, 0)
	if err := pgxscan.Select(ctx, r.pool, &paths, query, args...); err != nil {
		return nil, fmt.Errorf("failed to delete archivos for expediente %d: %w", expedienteID, err)
	}

	return paths, nil
}
