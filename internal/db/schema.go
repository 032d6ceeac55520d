package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is intentionally idempotent. There is no migration engine here;
// the seed command applies it before inserting bootstrap rows.
const Schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	id        BIGSERIAL PRIMARY KEY,
	nombre    TEXT NOT NULL,
	email     TEXT NOT NULL UNIQUE,
	password  TEXT NOT NULL,
	rol       TEXT NOT NULL DEFAULT 'usuario',
	creado_en TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS expedientes (
	id                BIGSERIAL PRIMARY KEY,
	numero_expediente TEXT NOT NULL,
	demandante        TEXT NOT NULL,
	demandante_doc    TEXT NOT NULL,
	demandado         TEXT,
	demandado_doc     TEXT,
	estado            TEXT NOT NULL DEFAULT 'Abierto',
	fecha_inicio      DATE,
	fecha_fin         DATE,
	creado_por        TEXT NOT NULL,
	archivo           TEXT,
	creado_en         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS eventos (
	id            BIGSERIAL PRIMARY KEY,
	expediente_id BIGINT NOT NULL REFERENCES expedientes(id) ON DELETE CASCADE,
	tipo_evento   TEXT NOT NULL,
	descripcion   TEXT,
	fecha_evento  DATE,
	creado_en     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reportes (
	id            BIGSERIAL PRIMARY KEY,
	expediente_id BIGINT NOT NULL REFERENCES expedientes(id) ON DELETE CASCADE,
	contenido     TEXT NOT NULL,
	generado_por  TEXT,
	generado_en   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS archivos (
	id              BIGSERIAL PRIMARY KEY,
	expediente_id   BIGINT NOT NULL REFERENCES expedientes(id) ON DELETE CASCADE,
	nombre_original TEXT NOT NULL,
	archivo_path    TEXT NOT NULL,
	tipo_mime       TEXT NOT NULL,
	subido_por      TEXT,
	subido_en       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
