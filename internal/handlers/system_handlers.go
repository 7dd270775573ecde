package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/config"
	"github.com/planpay/planpay-api/internal/logger"
)

// SystemHandler serves health, testing-config and debug endpoints.
type SystemHandler struct {
	cfg   *config.Config
	store *cache.Store
}

// NewSystemHandler wires a system handler.
func NewSystemHandler(cfg *config.Config, store *cache.Store) *SystemHandler {
	return &SystemHandler{cfg: cfg, store: store}
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health returns a simple "ok" status.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetTestingConfig exposes the active testing bypasses so integration
// scripts can tell which shortcuts are on.
func (h *SystemHandler) GetTestingConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bypassKyc":         h.cfg.Testing.BypassKYC,
		"bypassBankAccount": h.cfg.Testing.BypassBankAccount,
		"mockKycStatus":     h.cfg.Testing.MockKYCStatus,
		"testingMode":       h.cfg.IsTestingMode(),
	})
}

// ClearCache wipes all cached provider identifiers and plans.
func (h *SystemHandler) ClearCache(c *gin.Context) {
	h.store.ClearAll()
	logger.Warn("resource cache cleared")
	c.JSON(http.StatusOK, SuccessResponse{Message: "cache cleared"})
}
