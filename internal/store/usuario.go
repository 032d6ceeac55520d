package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expedientes/internal/utils"
	"expedientes/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usuarioTableName = "usuarios"

var usuarioColumns = utils.StructTagValues(types.Usuario{})

type UsuarioRepository struct {
	pool *pgxpool.Pool
}

func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepository {
	return &UsuarioRepository{pool: pool}
}

func (r *UsuarioRepository) Usuarios(ctx context.Context) ([]*types.Usuario, error) {

	query, args, err := psql().Select(usuarioColumns...).From(usuarioTableName).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate usuarios query: %w", err)
	}

	var usuarios = make([]*types.Usuario, 0)
	if err := pgxscan.Select(ctx, r.pool, &usuarios, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch usuarios: %w", err)
	}

	return usuarios, nil
}

// UsuarioByEmail does a case-sensitive exact match, which is what login
// expects.
func (r *UsuarioRepository) UsuarioByEmail(ctx context.Context, email string) (*types.Usuario, error) {

	query, args, err := psql().Select(usuarioColumns...).From(usuarioTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate usuario query: %w", err)
	}

	var usuario = new(types.Usuario)
	err = pgxscan.Get(ctx, r.pool, usuario, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("failed to fetch usuario by email: %w", err)
	}

	return usuario, nil
}

func (r *UsuarioRepository) CreateUsuario(ctx context.Context, usuario *types.Usuario) error {

	usuario.CreadoEn = time.Now()

	query, args, err := psql().Insert(usuarioTableName).
		SetMap(utils.StructToMap(usuario, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert usuario query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&usuario.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return types.ErrEmailEnUso
		}
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	return nil
}

// UpdatePassword rewrites the stored credential. Used to upgrade legacy
// plaintext rows to bcrypt after a successful login.
func (r *UsuarioRepository) UpdatePassword(ctx context.Context, usuarioID int64, hashed string) error {

	query, args, err := psql().Update(usuarioTableName).
		Set("password", hashed).
		Where(sq.Eq{"id": usuarioID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update password query for usuario %d: %w", usuarioID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update password for usuario %d: %w", usuarioID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrUsuarioNotFound
	}

	return nil
}
