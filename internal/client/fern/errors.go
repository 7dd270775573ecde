package fern

import (
	"errors"
	"fmt"
	"strings"

	httpclient "github.com/planpay/planpay-api/internal/client/http"
)

// ProviderError is any non-2xx response from the settlement provider,
// carrying the HTTP status and the response body text.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fern provider error: status %d: %s", e.Status, e.Message)
}

// asProviderError normalizes transport-level HTTP errors into
// ProviderError; other errors pass through unchanged.
func asProviderError(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return &ProviderError{Status: httpErr.StatusCode, Message: httpErr.Body}
	}
	return err
}

// isAlreadyExists reports whether the provider rejected a create because
// the resource already exists. This is the only failure the customer
// resolver recovers from locally.
func isAlreadyExists(err error) bool {
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		return false
	}
	return strings.Contains(strings.ToLower(provErr.Message), "already exists")
}
