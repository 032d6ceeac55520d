// Package reniec proxies document lookups against the national identity
// registry service.
package reniec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrDocumentoInvalido rejects documents before any outbound call is made.
var ErrDocumentoInvalido = errors.New("documento inválido")

// UpstreamError carries the registry's HTTP status so handlers can pass it
// through.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("reniec upstream returned status %d", e.StatusCode)
}

// Persona is the reshaped lookup result. Raw preserves the registry payload
// verbatim for the frontend.
type Persona struct {
	Nombre          string          `json:"nombre"`
	FechaNacimiento string          `json:"fecha_nacimiento"`
	Direccion       string          `json:"direccion"`
	Raw             json.RawMessage `json:"raw"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// DocumentoTipo classifies a document number by length: 8 digits is a DNI,
// 9 a carné de extranjería. Anything else is invalid.
func DocumentoTipo(doc string) (string, error) {
	for _, r := range doc {
		if r < '0' || r > '9' {
			return "", ErrDocumentoInvalido
		}
	}

	switch len(doc) {
	case 8:
		return "dni", nil
	case 9:
		return "ce", nil
	default:
		return "", ErrDocumentoInvalido
	}
}

func (c *Client) Lookup(ctx context.Context, doc string) (*Persona, error) {

	tipo, err := DocumentoTipo(doc)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/reniec/%s?numero=%s", c.baseURL, tipo, url.QueryEscape(doc))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build reniec request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call reniec: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// No retry: the caller surfaces the upstream status as-is.
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read reniec response: %w", err)
	}

	var payload struct {
		FullName       string `json:"full_name"`
		FirstName      string `json:"first_name"`
		FirstLastName  string `json:"first_last_name"`
		SecondLastName string `json:"second_last_name"`
		BirthDate      string `json:"birth_date"`
		Address        string `json:"address"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode reniec response: %w", err)
	}

	nombre := payload.FullName
	if nombre == "" {
		nombre = strings.TrimSpace(fmt.Sprintf("%s %s %s",
			payload.FirstLastName, payload.SecondLastName, payload.FirstName))
	}

	return &Persona{
		Nombre:          nombre,
		FechaNacimiento: payload.BirthDate,
		Direccion:       payload.Address,
		Raw:             raw,
	}, nil
}
