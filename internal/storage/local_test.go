package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredNameSanitizesWhitespace(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	name := store.StoredName("mi demanda  final.pdf")
	assert.True(t, strings.HasSuffix(name, "mi_demanda_final.pdf"), name)
	assert.NotContains(t, name, " ")
}

func TestStoredNameStripsDirectories(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	name := store.StoredName("../../etc/passwd")
	assert.True(t, strings.HasSuffix(name, "-passwd"), name)
	assert.NotContains(t, name, "/")
}

func TestStoredNamesDiffer(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for range 50 {
		name := store.StoredName("escrito.txt")
		_, dup := seen[name]
		require.False(t, dup, "duplicate stored name %s", name)
		seen[name] = struct{}{}
	}
}

func TestSaveOpenRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := "contenido del escrito"

	name := store.StoredName("escrito.txt")
	require.NoError(t, store.Save(ctx, name, strings.NewReader(content)))
	assert.True(t, store.Exists(name))

	rc, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestOpenMissingFileFails(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "no-existe.txt")
	assert.Error(t, err)
	assert.False(t, store.Exists("no-existe.txt"))
}

func TestRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	name := store.StoredName("borrar.txt")
	require.NoError(t, store.Save(ctx, name, strings.NewReader("x")))

	require.NoError(t, store.Remove(name))
	assert.False(t, store.Exists(name))
	assert.Error(t, store.Remove(name))
}
