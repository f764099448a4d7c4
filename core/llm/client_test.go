package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/brochurepipe/core"
)

const completionResponse = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 0,
	"model": "llama3.2",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}
	]
}`

func TestComplete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "llama3.2", zerolog.Nop())

	got, err := c.Complete(context.Background(), core.CompletionRequest{
		System:      "be helpful",
		User:        "say hello",
		Temperature: 0.7,
		MaxTokens:   100,
	})

	require.NoError(t, err)
	assert.Equal(t, "hello there", got)

	assert.Equal(t, "llama3.2", gotBody["model"])
	assert.InDelta(t, 0.7, gotBody["temperature"].(float64), 0.001)
	assert.EqualValues(t, 100, gotBody["max_completion_tokens"])
	assert.Nil(t, gotBody["response_format"], "free-text requests must not set a response format")

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestCompleteJSONMode(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "llama3.2", zerolog.Nop())

	_, err := c.Complete(context.Background(), core.CompletionRequest{
		System:   "pick links",
		User:     "links",
		JSONMode: true,
	})

	require.NoError(t, err)
	rf, ok := gotBody["response_format"].(map[string]any)
	require.True(t, ok, "expected a response_format object")
	assert.Equal(t, "json_object", rf["type"])
}

func TestCompleteServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "llama3.2", zerolog.Nop())

	_, err := c.Complete(context.Background(), core.CompletionRequest{System: "s", User: "u"})
	assert.Error(t, err)
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, "llama3.2", zerolog.Nop())

	_, err := c.Complete(context.Background(), core.CompletionRequest{System: "s", User: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
