package ia

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"expedientes/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	files map[string]string
}

func (f *fakeStorage) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	content, ok := f.files[storedName]
	if !ok {
		return nil, errors.New("open file: no such file")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestArchivoTextPlainText(t *testing.T) {
	extractor := NewExtractor(&fakeStorage{files: map[string]string{
		"123-abc-demanda.txt": "texto de la demanda",
	}})

	got, err := extractor.ArchivoText(context.Background(), &types.Archivo{
		NombreOriginal: "demanda.txt",
		ArchivoPath:    "123-abc-demanda.txt",
		TipoMime:       "text/plain",
	})

	require.NoError(t, err)
	assert.Equal(t, "texto de la demanda", got)
}

func TestArchivoTextUnsupportedMime(t *testing.T) {
	extractor := NewExtractor(&fakeStorage{})

	got, err := extractor.ArchivoText(context.Background(), &types.Archivo{
		NombreOriginal: "resolucion.pdf",
		ArchivoPath:    "123-abc-resolucion.pdf",
		TipoMime:       "application/pdf",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "no soportado")
	assert.Contains(t, got, "resolucion.pdf")
}

func TestArchivoTextMissingFile(t *testing.T) {
	extractor := NewExtractor(&fakeStorage{})

	_, err := extractor.ArchivoText(context.Background(), &types.Archivo{
		NombreOriginal: "perdido.txt",
		ArchivoPath:    "123-abc-perdido.txt",
		TipoMime:       "text/plain",
	})

	assert.Error(t, err)
}
