// Package handlers exposes the HTTP API: plan parsing and management,
// KYC, funding flows and supporting debug endpoints.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planpay/planpay-api/internal/client/fern"
	"github.com/planpay/planpay-api/internal/funding"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/planner"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors onto HTTP statuses: validation and
// parse failures are the caller's fault, unknown plans are 404, and
// provider failures surface as a bad gateway with the underlying
// message.
func respondError(c *gin.Context, summary string, err error) {
	var valErr *funding.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: summary, Details: valErr.Error()})
		return
	}
	var parseErr *planner.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: summary, Details: parseErr.Error()})
		return
	}
	var notFound *funding.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: summary, Details: notFound.Error()})
		return
	}
	var provErr *fern.ProviderError
	if errors.As(err, &provErr) {
		logger.Error("provider call failed", zap.Int("status", provErr.Status), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: summary, Details: provErr.Message})
		return
	}

	logger.Error(summary, zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: summary, Details: err.Error()})
}
