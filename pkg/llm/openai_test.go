package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatBody(content string) string {
	return `{"choices": [{"message": {"content": ` + mustQuote(content) + `}}]}`
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClient_Complete(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(chatBody("the verdict")))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/v1", APIKey: "test-key", Model: "default-model"})

	content, err := client.Complete(context.Background(), Request{
		Model:       "analysis-model",
		System:      "you are an analyst",
		User:        "analyze this",
		Temperature: 0.7,
		MaxTokens:   600,
		Format:      JSONObject(),
	})
	require.NoError(t, err)
	assert.Equal(t, "the verdict", content)

	assert.Equal(t, "analysis-model", captured["model"])
	assert.EqualValues(t, 0.7, captured["temperature"])
	assert.EqualValues(t, 600, captured["max_tokens"])
	format, ok := captured["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "you are an analyst", system["content"])
}

func TestClient_DefaultsModel(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(chatBody("ok")))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "fallback-model"})
	_, err := client.Complete(context.Background(), Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "fallback-model", captured["model"])
}

func TestClient_JSONSchemaFormat(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(chatBody("{}")))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"})
	schema := map[string]any{"type": "object"}
	_, err := client.Complete(context.Background(), Request{
		User:   "hi",
		Format: JSONSchema("verdict", schema),
	})
	require.NoError(t, err)

	format := captured["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	inner := format["json_schema"].(map[string]any)
	assert.Equal(t, "verdict", inner["name"])
	assert.Equal(t, true, inner["strict"])
}

func TestClient_SchemaWithoutBodyRejected(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused", Model: "m"})
	_, err := client.Complete(context.Background(), Request{
		User:   "hi",
		Format: ResponseFormat{Kind: FormatJSONSchema},
	})
	require.ErrorIs(t, err, ErrSchemaRejected)
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Run("response_format rejection maps to ErrSchemaRejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"message": "Invalid parameter: 'response_format'"}}`))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, Model: "m"})
		_, err := client.Complete(context.Background(), Request{User: "hi", Format: JSONObject()})
		require.ErrorIs(t, err, ErrSchemaRejected)
	})

	t.Run("server errors map to ErrTransport", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, Model: "m"})
		_, err := client.Complete(context.Background(), Request{User: "hi"})
		require.ErrorIs(t, err, ErrTransport)
	})

	t.Run("error body maps to ErrTransport", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": {"message": "model overloaded", "type": "server_error"}}`))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, Model: "m"})
		_, err := client.Complete(context.Background(), Request{User: "hi"})
		require.ErrorIs(t, err, ErrTransport)
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("empty choices map to ErrTransport", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, Model: "m"})
		_, err := client.Complete(context.Background(), Request{User: "hi"})
		require.ErrorIs(t, err, ErrTransport)
	})

	t.Run("timeouts map to ErrTimeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, Model: "m"})
		_, err := client.Complete(context.Background(), Request{User: "hi", Timeout: 50 * time.Millisecond})
		require.ErrorIs(t, err, ErrTimeout)
	})
}

func TestClient_RetriesTransportOnce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(chatBody("recovered")))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"})
	content, err := client.Complete(context.Background(), Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://llm.internal/v1")
	t.Setenv("OPENAI_API_KEY", "secret")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("INFECTION_MODEL", "")
	t.Setenv("ANALYSIS_MODEL", "gpt-4o-mini")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, "http://llm.internal/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.Model)
	// Phase models default to the base model when unset.
	assert.Equal(t, "gpt-4o", cfg.InfectionModel)
	assert.Equal(t, "gpt-4o-mini", cfg.AnalysisModel)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
