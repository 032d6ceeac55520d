package ia

import (
	"context"
	"fmt"
	"io"
	"strings"

	"expedientes/pkg/types"
)

// Storage is the slice of the upload store the extractor needs.
type Storage interface {
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
}

// Extractor pulls analyzable text out of stored attachments. Only plain
// text is actually read; other MIME types degrade to a placeholder line so
// the analysis still mentions them.
type Extractor struct {
	storage Storage
}

func NewExtractor(storage Storage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) ArchivoText(ctx context.Context, archivo *types.Archivo) (string, error) {

	if !strings.HasPrefix(archivo.TipoMime, "text/plain") {
		return fmt.Sprintf("Tipo de archivo no soportado aún: %s", archivo.NombreOriginal), nil
	}

	rc, err := e.storage.Open(ctx, archivo.ArchivoPath)
	if err != nil {
		return "", fmt.Errorf("open archivo %s: %w", archivo.ArchivoPath, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read archivo %s: %w", archivo.ArchivoPath, err)
	}

	return string(raw), nil
}
