// Package funding orchestrates on-ramp and off-ramp flows against the
// settlement provider: customer resolution, KYC gating, payment account
// provisioning, quoting and transaction execution.
package funding

import (
	"context"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/client/fern"
	"github.com/planpay/planpay-api/internal/config"
)

// State tracks how far a flow invocation progressed. A failed step
// leaves the flow halted in place; callers may re-invoke the whole flow,
// which re-resolves from cache.
type State string

const (
	StateInit                State = "INIT"
	StateCustomerResolved    State = "CUSTOMER_RESOLVED"
	StateKycPending          State = "KYC_PENDING"
	StateKycVerified         State = "KYC_VERIFIED"
	StateAccountsProvisioned State = "ACCOUNTS_PROVISIONED"
	StateQuoted              State = "QUOTED"
	StateTransacted          State = "TRANSACTED"
	StateSettled             State = "SETTLED"
	StateFailed              State = "FAILED"
)

// StateForTransaction maps a provider transaction status onto the flow
// state machine. A transacted flow settles or fails only when the
// provider reports a terminal status.
func StateForTransaction(status fern.TransactionStatus) State {
	switch status {
	case fern.TransactionStatusCompleted:
		return StateSettled
	case fern.TransactionStatusFailed:
		return StateFailed
	default:
		return StateTransacted
	}
}

// Provider is the settlement provider surface the orchestrators depend
// on. *fern.Client implements it.
type Provider interface {
	EnsureCustomer(ctx context.Context, params fern.EnsureCustomerParams) (*fern.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*fern.Customer, error)
	StartKycCheck(ctx context.Context, customerID string) (*fern.KycCheck, error)
	CreateExternalCryptoWallet(ctx context.Context, params fern.ExternalCryptoWalletParams) (*fern.PaymentAccount, error)
	CreateExternalBankAccount(ctx context.Context, params fern.ExternalBankAccountParams) (*fern.PaymentAccount, error)
	CreateFernCryptoWallet(ctx context.Context, customerID string, chain string) (*fern.PaymentAccount, error)
	CreateFernFiatAccount(ctx context.Context, customerID string, currency fern.Currency) (*fern.PaymentAccount, error)
	CreateQuote(ctx context.Context, params fern.QuoteParams) (*fern.Quote, error)
	CreateTransaction(ctx context.Context, quoteID, correlationID string) (*fern.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*fern.Transaction, error)
}

// Service runs funding flows. The same instance serves all plans; flow
// invocations are independent and share only the resource cache.
type Service struct {
	provider Provider
	store    *cache.Store
	testing  config.TestingConfig
}

// NewService wires a funding service.
func NewService(provider Provider, store *cache.Store, testing config.TestingConfig) *Service {
	return &Service{
		provider: provider,
		store:    store,
		testing:  testing,
	}
}

// KycParams identifies the sender to resolve and verify.
type KycParams struct {
	Email     string
	FirstName string
	LastName  string
}

// StartKyc resolves the sender as a provider customer and reports their
// verification state with the hosted verification link.
func (s *Service) StartKyc(ctx context.Context, params KycParams) (*KycOutcome, error) {
	if params.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	firstName := params.FirstName
	if firstName == "" {
		firstName = "User"
	}
	lastName := params.LastName
	if lastName == "" {
		lastName = "Test"
	}

	customer, err := s.provider.EnsureCustomer(ctx, fern.EnsureCustomerParams{
		Email:        params.Email,
		CustomerType: fern.CustomerTypeIndividual,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		return nil, err
	}

	check, err := s.provider.StartKycCheck(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}
	return &KycOutcome{
		CustomerID:     customer.CustomerID,
		CustomerStatus: check.CustomerStatus,
		KYCLink:        check.KYCLink,
		NeedsKyc:       check.CustomerStatus != fern.CustomerStatusActive,
		Bypassed:       check.Bypassed,
	}, nil
}

// GetCustomer fetches the provider customer record.
func (s *Service) GetCustomer(ctx context.Context, customerID string) (*fern.Customer, error) {
	if customerID == "" {
		return nil, &ValidationError{Field: "customerId", Reason: "must not be empty"}
	}
	return s.provider.GetCustomer(ctx, customerID)
}

// CreateBankAccount registers the sender's bank account after KYC
// verification so a halted on-ramp can be completed.
func (s *Service) CreateBankAccount(ctx context.Context, params fern.ExternalBankAccountParams) (*fern.PaymentAccount, error) {
	if params.CustomerID == "" {
		return nil, &ValidationError{Field: "customerId", Reason: "must not be empty"}
	}
	if params.AccountNumber == "" || params.RoutingNumber == "" {
		return nil, &ValidationError{Field: "bankAccount", Reason: "account and routing numbers are required"}
	}
	return s.provider.CreateExternalBankAccount(ctx, params)
}

// GetTransaction polls the provider for transaction status. No local
// caching.
func (s *Service) GetTransaction(ctx context.Context, transactionID string) (*fern.Transaction, error) {
	if transactionID == "" {
		return nil, &ValidationError{Field: "transactionId", Reason: "must not be empty"}
	}
	return s.provider.GetTransaction(ctx, transactionID)
}
