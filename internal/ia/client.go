// Package ia talks to an OpenAI-compatible chat-completion endpoint to
// generate legal summaries and analyses.
package ia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sentinel texts returned instead of calling out. They end up stored as
// reporte content, so they are user-facing.
const (
	NotConfiguredMessage = "IA no configurada. Define OPENAI_API_KEY en el entorno."
	emptyResponseMessage = "Respuesta vacía del modelo"
)

// Fixed system prompts for the two analysis operations.
const (
	PromptAnalisisExpediente = "Eres un abogado experto en derecho procesal. Genera un análisis jurídico breve de los documentos del siguiente expediente."
	PromptResumenArchivo     = "Eres un abogado experto en derecho procesal. Haz un resumen jurídico breve de este archivo."
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func New(baseURL, apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends one blocking chat-completion request. Without a credential
// it short-circuits to NotConfiguredMessage so the rest of the pipeline
// still produces a reporte.
func (c *Client) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {

	if !c.Configured() {
		return NotConfiguredMessage, nil
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		"max_tokens": 1200,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	if len(payload.Choices) == 0 || strings.TrimSpace(payload.Choices[0].Message.Content) == "" {
		return emptyResponseMessage, nil
	}

	return strings.TrimSpace(payload.Choices[0].Message.Content), nil
}
