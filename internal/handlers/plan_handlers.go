package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/client/dynamic"
	"github.com/planpay/planpay-api/internal/funding"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/planner"
	"github.com/planpay/planpay-api/internal/plans"
)

// PlanHandler serves plan parsing and lifecycle endpoints.
type PlanHandler struct {
	parser  *planner.Parser
	wallets dynamic.WalletProvisioner
	store   *cache.Store
}

// NewPlanHandler wires a plan handler.
func NewPlanHandler(parser *planner.Parser, wallets dynamic.WalletProvisioner, store *cache.Store) *PlanHandler {
	return &PlanHandler{
		parser:  parser,
		wallets: wallets,
		store:   store,
	}
}

// ParsePlanRequest carries the free-text description to parse.
type ParsePlanRequest struct {
	Description string `json:"description" binding:"required"`
}

// ParsePlanResponse returns the structured schedule plus any fields the
// description could not determine.
type ParsePlanResponse struct {
	Parsed           plans.ParsedPlan `json:"parsed"`
	UnresolvedFields []string         `json:"unresolvedFields,omitempty"`
}

// ParsePlan converts a natural-language description into a structured
// schedule.
func (h *PlanHandler) ParsePlan(c *gin.Context) {
	var req ParsePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "description is required"})
		return
	}

	parsed, err := h.parser.ParseOrDefault(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, "failed to parse description", err)
		return
	}

	c.JSON(http.StatusOK, ParsePlanResponse{
		Parsed:           parsed,
		UnresolvedFields: parsed.UnresolvedFields(),
	})
}

// CreatePlanRequest creates a plan from either a free-text description
// or an already parsed schedule. The agent wallet is provisioned unless
// an address is supplied.
type CreatePlanRequest struct {
	Description        string            `json:"description,omitempty"`
	Parsed             *plans.ParsedPlan `json:"parsed,omitempty"`
	SenderEmail        string            `json:"senderEmail" binding:"required"`
	ReceiverEmail      string            `json:"receiverEmail" binding:"required"`
	AgentChain         chains.Chain      `json:"agentChain" binding:"required"`
	AgentWalletAddress string            `json:"agentWalletAddress,omitempty"`
	ReceiverDestChain  chains.Chain      `json:"receiverDestChain" binding:"required"`
	AutoCashOut        bool              `json:"autoCashOut"`
}

// CreatePlan parses the description when needed, provisions the agent
// wallet and stores the plan.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	var parsed plans.ParsedPlan
	switch {
	case req.Parsed != nil:
		parsed = *req.Parsed
	case req.Description != "":
		var err error
		parsed, err = h.parser.ParseOrDefault(c.Request.Context(), req.Description)
		if err != nil {
			respondError(c, "failed to parse description", err)
			return
		}
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "either description or parsed plan is required"})
		return
	}

	planID := plans.NewPlanID()

	agentAddress := req.AgentWalletAddress
	if agentAddress == "" {
		wallet, err := h.wallets.ProvisionWallet(c.Request.Context(), dynamic.ProvisionParams{
			Chain:    strings.ToLower(string(req.AgentChain)),
			PlanID:   planID,
			PlanName: parsed.Title,
		})
		if err != nil {
			respondError(c, "failed to provision agent wallet", err)
			return
		}
		agentAddress = wallet.Address
	}

	plan, err := plans.FromParsed(plans.FromParsedParams{
		PlanID:             planID,
		Parsed:             parsed,
		SenderEmail:        req.SenderEmail,
		ReceiverEmail:      req.ReceiverEmail,
		AgentChain:         req.AgentChain,
		AgentWalletAddress: agentAddress,
		ReceiverDestChain:  req.ReceiverDestChain,
		AutoCashOut:        req.AutoCashOut,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan parameters", Details: err.Error()})
		return
	}

	h.store.SetPlan(*plan)
	logger.Info("plan created",
		zap.String("plan_id", plan.PlanID),
		zap.String("chain", string(plan.AgentWallet.Chain)))

	c.JSON(http.StatusCreated, plan)
}

// UpdatePlanRequest carries the mutable plan fields. Absent fields are
// left unchanged.
type UpdatePlanRequest struct {
	Title             string        `json:"title,omitempty"`
	AmountUsd         string        `json:"amountUsd,omitempty"`
	ReceiverDestChain *chains.Chain `json:"receiverDestChain,omitempty"`
	AutoCashOut       *bool         `json:"autoCashOut,omitempty"`
}

// UpdatePlan merges the supplied fields into a stored plan.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID := c.Param("plan_id")
	plan, ok := h.store.Plan(planID)
	if !ok {
		respondError(c, "plan not found", &funding.NotFoundError{PlanID: planID})
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	if req.Title != "" {
		plan.Title = req.Title
	}
	if req.AmountUsd != "" {
		plan.AmountUsd = req.AmountUsd
	}
	if plan.Receiver != nil {
		if req.ReceiverDestChain != nil {
			plan.Receiver.ChosenDestChain = *req.ReceiverDestChain
		}
		if req.AutoCashOut != nil {
			plan.Receiver.AutoCashOut = *req.AutoCashOut
		}
	}

	h.store.SetPlan(plan)
	c.JSON(http.StatusOK, plan)
}

// GetPlan returns a stored plan by ID.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID := c.Param("plan_id")
	plan, ok := h.store.Plan(planID)
	if !ok {
		respondError(c, "plan not found", &funding.NotFoundError{PlanID: planID})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListPlans returns all stored plans.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.store.Plans()})
}

// DeletePlan removes a stored plan.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID := c.Param("plan_id")
	if _, ok := h.store.Plan(planID); !ok {
		respondError(c, "plan not found", &funding.NotFoundError{PlanID: planID})
		return
	}
	h.store.DeletePlan(planID)
	c.JSON(http.StatusOK, SuccessResponse{Message: "plan deleted"})
}
