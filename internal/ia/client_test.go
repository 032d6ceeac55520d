package ia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteNotConfigured(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := New(srv.URL, "", "gpt-4o-mini")
	got, err := client.Complete(context.Background(), "system", "texto")

	require.NoError(t, err)
	assert.Equal(t, NotConfiguredMessage, got)
	assert.Zero(t, calls.Load())
}

func TestCompleteParsesFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model     string        `json:"model"`
			Messages  []chatMessage `json:"messages"`
			MaxTokens int           `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, 1200, body.MaxTokens)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  análisis breve  "}}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "sk-test", "")
	got, err := client.Complete(context.Background(), "instrucción", "texto del expediente")

	require.NoError(t, err)
	assert.Equal(t, "análisis breve", got)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "sk-test", "gpt-4o-mini")
	got, err := client.Complete(context.Background(), "s", "u")

	require.NoError(t, err)
	assert.Equal(t, emptyResponseMessage, got)
}

func TestCompleteUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(srv.URL, "sk-test", "gpt-4o-mini")
	_, err := client.Complete(context.Background(), "s", "u")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
