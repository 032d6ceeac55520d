package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listQuery(t *testing.T, filter ExpedienteFilter) (string, []any) {
	t.Helper()

	query, args, err := filter.apply(psql().Select(expedienteColumns...).From(expedienteTableName)).
		OrderBy("id DESC").
		Limit(listLimit).
		ToSql()
	require.NoError(t, err)

	return query, args
}

func TestExpedienteFilterEmpty(t *testing.T) {
	query, args := listQuery(t, ExpedienteFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY id DESC")
	assert.Contains(t, query, "LIMIT 200")
	assert.Empty(t, args)
}

func TestExpedienteFilterQueryMatchesAllParties(t *testing.T) {
	query, args := listQuery(t, ExpedienteFilter{Query: "EXP-001"})

	assert.Contains(t, query, "numero_expediente ILIKE $1")
	assert.Contains(t, query, "demandante ILIKE $2")
	assert.Contains(t, query, "demandado ILIKE $3")
	assert.Contains(t, query, " OR ")
	assert.Equal(t, []any{"%EXP-001%", "%EXP-001%", "%EXP-001%"}, args)
}

func TestExpedienteFilterEstadoExact(t *testing.T) {
	query, args := listQuery(t, ExpedienteFilter{Estado: "Abierto"})

	assert.Contains(t, query, "estado = $1")
	assert.Equal(t, []any{"Abierto"}, args)
}

func TestExpedienteFilterDateRangeUsesEffectiveEnd(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	query, args := listQuery(t, ExpedienteFilter{From: &from, To: &to})

	assert.Contains(t, query, "fecha_inicio >= $1")
	assert.Contains(t, query, "COALESCE(fecha_fin, fecha_inicio) <= $2")
	assert.Equal(t, []any{from, to}, args)
}

func TestExpedienteFilterCombinesWithAnd(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	query, args := listQuery(t, ExpedienteFilter{Query: "doe", Estado: "Cerrado", From: &from})

	assert.Contains(t, query, "AND estado = $4")
	assert.Contains(t, query, "AND fecha_inicio >= $5")
	assert.Len(t, args, 5)
}
