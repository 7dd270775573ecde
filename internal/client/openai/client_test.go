package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planpay/planpay-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	assert.Error(t, err)

	client, err := NewClient(Config{APIKey: "key"}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultModel, client.Model())

	client, err = NewClient(Config{APIKey: "key", Model: "gpt-4o"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.Model())
}

func TestComplete_Success(t *testing.T) {
	var captured struct {
		Authorization string
		Body          map[string]interface{}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Authorization = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.Body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"title":"Groceries"}`}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	content, err := client.Complete(context.Background(), CompletionParams{
		SystemPrompt: "You extract structured data.",
		UserPrompt:   "pay $50 weekly",
		Temperature:  0.1,
		MaxTokens:    200,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Groceries"}`, content)

	assert.Equal(t, "Bearer test-key", captured.Authorization)
	assert.Equal(t, defaultModel, captured.Body["model"])
	assert.Equal(t, 0.1, captured.Body["temperature"])
	messages := captured.Body["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "user", messages[1].(map[string]interface{})["role"])
}

func TestComplete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), CompletionParams{UserPrompt: "hi"})
	assert.Error(t, err)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), CompletionParams{UserPrompt: "hi"})
	assert.Error(t, err)
}
