package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planpay/planpay-api/internal/chains"
)

// ChainHandler serves chain compatibility endpoints.
type ChainHandler struct{}

// NewChainHandler wires a chain handler.
func NewChainHandler() *ChainHandler {
	return &ChainHandler{}
}

// ListSupportedChains returns the fast bridge allow-list.
func (h *ChainHandler) ListSupportedChains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": chains.FastBridgeSupported()})
}

// ValidateChainsRequest carries the chain choices to validate.
type ValidateChainsRequest struct {
	SenderSourceChain chains.Chain `json:"senderSourceChain,omitempty"`
	ReceiverDestChain chains.Chain `json:"receiverDestChain" binding:"required"`
}

// ValidateChains checks the supplied chains against the fast bridge
// allow-list.
func (h *ChainHandler) ValidateChains(c *gin.Context) {
	var req ValidateChainsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "receiverDestChain is required"})
		return
	}

	result := chains.ValidateCompatibility(chains.CompatibilityParams{
		SenderSourceChain: req.SenderSourceChain,
		ReceiverDestChain: req.ReceiverDestChain,
	})
	c.JSON(http.StatusOK, result)
}
