package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	httpclient "github.com/planpay/planpay-api/internal/client/http"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

func TestHTTPClient_DefaultAndRequestHeaders(t *testing.T) {
	var gotAuth, gotIdem, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("x-idempotency-key")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(
		httpclient.WithBaseURL(server.URL),
		httpclient.WithDefaultHeader("Authorization", "Bearer secret"),
	)

	resp, err := client.Post(context.Background(), "/things", map[string]string{"a": "b"},
		httpclient.WithHeader("x-idempotency-key", "key-1"))
	require.NoError(t, err)

	var out map[string]bool
	require.NoError(t, client.ProcessJSONResponse(resp, &out))
	assert.True(t, out["ok"])
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "key-1", gotIdem)
	assert.Equal(t, "application/json", gotContentType)
}

func TestHTTPClient_NonSuccessBecomesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Account already exists"}`))
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(httpclient.WithBaseURL(server.URL))

	_, err := client.Post(context.Background(), "/customers", map[string]string{})
	require.Error(t, err)

	var httpErr *httpclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "Account already exists")
}

func TestHTTPClient_NoRetriesByDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(httpclient.WithBaseURL(server.URL))

	_, err := client.Get(context.Background(), "/flaky")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPClient_QueryParam(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("email")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(httpclient.WithBaseURL(server.URL))

	resp, err := client.Get(context.Background(), "/customers",
		httpclient.WithQueryParam("email", "user@example.com"))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "user@example.com", gotQuery)
}
