package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/docugen/internal/generation"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), Config{
		APIKey:     "test-key",
		Model:      "test-model",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_Generate(t *testing.T) {
	var gotPrompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		gotPrompt = body.Contents[0].Parts[0].Text

		writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"SÉQUENCE 1"}]}}]}`)
	})

	text, err := client.Generate(context.Background(), "Rédige le séquencier")
	require.NoError(t, err)
	require.Equal(t, "SÉQUENCE 1", text)
	require.Equal(t, "Rédige le séquencier", gotPrompt)
	require.Equal(t, "gemini:test-model", client.Name())
}

func TestClient_Generate_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "quota", status: http.StatusTooManyRequests, want: generation.ErrModelUnavailable},
		{name: "overloaded", status: http.StatusServiceUnavailable, want: generation.ErrModelUnavailable},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, want: generation.ErrModelTimeout},
		{name: "bad request", status: http.StatusBadRequest, want: generation.ErrModelRejected},
		{name: "forbidden", status: http.StatusForbidden, want: generation.ErrModelRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, `{"error":{"code":`+strconv.Itoa(tt.status)+`,"message":"nope","status":"FAILED"}}`)
			})

			_, err := client.Generate(context.Background(), "prompt")
			require.ErrorIs(t, err, tt.want)
			require.Contains(t, err.Error(), "nope")
		})
	}
}

func TestClient_Generate_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"candidates":[]}`)
	})

	_, err := client.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, generation.ErrModelUnavailable)
}

func TestClient_Generate_BlockedPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := client.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, generation.ErrModelRejected)
}

func TestClient_Generate_Deadline(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "prompt")
	require.ErrorIs(t, err, generation.ErrModelTimeout)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{Model: "m"})
	require.Error(t, err)
}
