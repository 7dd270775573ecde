package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/client/fern"
	"github.com/planpay/planpay-api/internal/funding"
	"github.com/planpay/planpay-api/internal/plans"
)

// FundingHandler serves KYC, on-ramp, off-ramp and transaction
// endpoints.
type FundingHandler struct {
	service *funding.Service
	store   *cache.Store
}

// NewFundingHandler wires a funding handler.
func NewFundingHandler(service *funding.Service, store *cache.Store) *FundingHandler {
	return &FundingHandler{service: service, store: store}
}

// StartKycRequest identifies the customer to verify.
type StartKycRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// StartKyc resolves the customer and reports verification state with
// the hosted verification link.
func (h *FundingHandler) StartKyc(c *gin.Context) {
	var req StartKycRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		return
	}

	outcome, err := h.service.StartKyc(c.Request.Context(), funding.KycParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, "failed to start KYC", err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GetCustomer returns the provider customer record.
func (h *FundingHandler) GetCustomer(c *gin.Context) {
	customer, err := h.service.GetCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		respondError(c, "failed to fetch customer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateBankAccountRequest registers a sender-owned bank account.
type CreateBankAccountRequest struct {
	CustomerID     string `json:"customerId" binding:"required"`
	AccountNumber  string `json:"accountNumber" binding:"required"`
	RoutingNumber  string `json:"routingNumber" binding:"required"`
	BankName       string `json:"bankName" binding:"required"`
	OwnerEmail     string `json:"ownerEmail" binding:"required"`
	OwnerFirstName string `json:"ownerFirstName" binding:"required"`
	OwnerLastName  string `json:"ownerLastName" binding:"required"`
}

// CreateBankAccount registers the bank account so a halted on-ramp can
// be completed.
func (h *FundingHandler) CreateBankAccount(c *gin.Context) {
	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	account, err := h.service.CreateBankAccount(c.Request.Context(), fern.ExternalBankAccountParams{
		CustomerID:     req.CustomerID,
		AccountNumber:  req.AccountNumber,
		RoutingNumber:  req.RoutingNumber,
		BankName:       req.BankName,
		OwnerEmail:     req.OwnerEmail,
		OwnerFirstName: req.OwnerFirstName,
		OwnerLastName:  req.OwnerLastName,
	})
	if err != nil {
		respondError(c, "failed to create bank account", err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// OnrampRequest starts fiat→stablecoin funding for a plan.
type OnrampRequest struct {
	PlanID         string             `json:"planId" binding:"required"`
	SenderEmail    string             `json:"senderEmail,omitempty"`
	AmountUsd      string             `json:"amountUsd,omitempty"`
	FiatMethod     fern.PaymentMethod `json:"fiatMethod,omitempty"`
	BankAccountID  string             `json:"bankAccountId,omitempty"`
	ValidateChains bool               `json:"validateChains,omitempty"`
}

// StartOnramp runs the on-ramp flow for a stored plan. AmountUsd
// defaults to the plan's total amount.
func (h *FundingHandler) StartOnramp(c *gin.Context) {
	var req OnrampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	plan, ok := h.store.Plan(req.PlanID)
	if !ok {
		respondError(c, "plan not found", &funding.NotFoundError{PlanID: req.PlanID})
		return
	}

	amount := req.AmountUsd
	if amount == "" {
		amount = plan.AmountUsd
	}

	result, err := h.service.StartOnramp(c.Request.Context(), funding.OnrampParams{
		Plan:           plan,
		SenderEmail:    req.SenderEmail,
		AmountUsd:      amount,
		FiatMethod:     req.FiatMethod,
		BankAccountID:  req.BankAccountID,
		ValidateChains: req.ValidateChains,
	})
	if err != nil {
		respondError(c, "onramp failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompleteOnrampRequest finishes an on-ramp after bank details were
// supplied.
type CompleteOnrampRequest struct {
	PlanID         string             `json:"planId" binding:"required"`
	SenderEmail    string             `json:"senderEmail,omitempty"`
	AmountUsd      string             `json:"amountUsd,omitempty"`
	BankAccountID  string             `json:"bankAccountId" binding:"required"`
	AgentAccountID string             `json:"agentAccountId" binding:"required"`
	FiatMethod     fern.PaymentMethod `json:"fiatMethod,omitempty"`
}

// CompleteOnramp quotes and executes against previously provisioned
// accounts.
func (h *FundingHandler) CompleteOnramp(c *gin.Context) {
	var req CompleteOnrampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	plan, ok := h.store.Plan(req.PlanID)
	if !ok {
		respondError(c, "plan not found", &funding.NotFoundError{PlanID: req.PlanID})
		return
	}

	amount := req.AmountUsd
	if amount == "" {
		amount = plan.AmountUsd
	}

	result, err := h.service.CompleteOnramp(c.Request.Context(), funding.CompleteOnrampParams{
		Plan:           plan,
		SenderEmail:    req.SenderEmail,
		AmountUsd:      amount,
		BankAccountID:  req.BankAccountID,
		AgentAccountID: req.AgentAccountID,
		FiatMethod:     req.FiatMethod,
	})
	if err != nil {
		respondError(c, "onramp completion failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// OfframpRequest starts stablecoin→fiat payout. PlanID is optional so a
// holder can cash out outside any plan.
type OfframpRequest struct {
	PlanID         string             `json:"planId,omitempty"`
	ReceiverEmail  string             `json:"receiverEmail,omitempty"`
	AmountUsd      string             `json:"amountUsd,omitempty"`
	Chain          chains.Chain       `json:"chain" binding:"required"`
	AutoCashOut    bool               `json:"autoCashOut"`
	WalletAddress  string             `json:"walletAddress,omitempty"`
	FiatMethod     fern.PaymentMethod `json:"fiatMethod,omitempty"`
	ValidateChains bool               `json:"validateChains,omitempty"`
}

// StartOfframp runs the off-ramp flow.
func (h *FundingHandler) StartOfframp(c *gin.Context) {
	var req OfframpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	var plan plans.Plan
	if req.PlanID != "" {
		stored, ok := h.store.Plan(req.PlanID)
		if !ok {
			respondError(c, "plan not found", &funding.NotFoundError{PlanID: req.PlanID})
			return
		}
		plan = stored
	}

	amount := req.AmountUsd
	if amount == "" {
		amount = plan.AmountUsd
	}

	result, err := h.service.StartOfframp(c.Request.Context(), funding.OfframpParams{
		Plan:           plan,
		ReceiverEmail:  req.ReceiverEmail,
		AmountUsd:      amount,
		Chain:          req.Chain,
		AutoCashOut:    req.AutoCashOut,
		WalletAddress:  req.WalletAddress,
		FiatMethod:     req.FiatMethod,
		ValidateChains: req.ValidateChains,
	})
	if err != nil {
		respondError(c, "offramp failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransaction polls the provider for transaction status.
func (h *FundingHandler) GetTransaction(c *gin.Context) {
	tx, err := h.service.GetTransaction(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		respondError(c, "failed to fetch transaction", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":       funding.StateForTransaction(tx.TransactionStatus),
		"transaction": tx,
	})
}
