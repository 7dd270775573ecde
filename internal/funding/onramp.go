package funding

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/client/fern"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/plans"
)

// OnrampParams starts a fiat→stablecoin flow funding the plan's agent
// wallet. AgentChain and AgentWalletAddress override the plan's agent
// wallet when set. BankAccountID reuses an existing funding source
// instead of requiring bank details.
type OnrampParams struct {
	Plan               plans.Plan
	SenderEmail        string
	AmountUsd          string
	FiatMethod         fern.PaymentMethod
	AgentChain         chains.Chain
	AgentWalletAddress string
	BankAccountID      string
	ValidateChains     bool
}

// KycOutcome reports the sender's verification state after customer
// resolution.
type KycOutcome struct {
	CustomerID     string              `json:"customerId"`
	CustomerStatus fern.CustomerStatus `json:"customerStatus"`
	KYCLink        string              `json:"kycLink,omitempty"`
	NeedsKyc       bool                `json:"needsKyc"`
	Bypassed       bool                `json:"bypassed,omitempty"`
}

// FundingOutcome reports the provisioned accounts and what the caller
// must do next.
type FundingOutcome struct {
	AgentAccountID       string          `json:"agentAccountId,omitempty"`
	FiatAccountID        string          `json:"fiatAccountId,omitempty"`
	NeedsBankDetails     bool            `json:"needsBankDetails"`
	CanProceed           bool            `json:"canProceed"`
	TransferInstructions json.RawMessage `json:"transferInstructions,omitempty"`
	NextSteps            string          `json:"nextSteps"`
}

// OnrampResult is the flow outcome. Transaction and Quote are nil when
// the flow halted before the quote step.
type OnrampResult struct {
	State       State             `json:"state"`
	Kyc         KycOutcome        `json:"kyc"`
	Funding     FundingOutcome    `json:"funding"`
	Quote       *fern.Quote       `json:"quote,omitempty"`
	Transaction *fern.Transaction `json:"transaction,omitempty"`
}

// StartOnramp runs the on-ramp flow: resolve the sender, gate on KYC,
// provision the agent destination account and a bank funding source,
// then quote USD→USDC and execute. An unverified sender halts the flow
// at KYC_PENDING with the hosted verification link and no accounts
// provisioned.
func (s *Service) StartOnramp(ctx context.Context, params OnrampParams) (*OnrampResult, error) {
	senderEmail := params.SenderEmail
	if senderEmail == "" && params.Plan.Sender != nil {
		senderEmail = params.Plan.Sender.Email
	}
	if senderEmail == "" {
		return nil, &ValidationError{Field: "senderEmail", Reason: "must not be empty"}
	}
	if params.AmountUsd == "" {
		return nil, &ValidationError{Field: "amountUsd", Reason: "must not be empty"}
	}

	agentChain := params.AgentChain
	if agentChain == "" {
		agentChain = params.Plan.AgentWallet.Chain
	}
	agentAddress := params.AgentWalletAddress
	if agentAddress == "" {
		agentAddress = params.Plan.AgentWallet.Address
	}
	if agentAddress == "" {
		return nil, &ValidationError{Field: "agentWalletAddress", Reason: "must not be empty"}
	}

	if params.ValidateChains {
		compat := chains.CompatibilityParams{ReceiverDestChain: agentChain}
		if params.Plan.Sender != nil {
			compat.SenderSourceChain = params.Plan.Sender.ChosenSourceChain
		}
		if result := chains.ValidateCompatibility(compat); !result.Valid {
			return nil, &ValidationError{
				Field:  "chain",
				Reason: strings.Join(result.Errors, "; "),
			}
		}
	}

	fiatMethod := params.FiatMethod
	if fiatMethod == "" {
		fiatMethod = fern.MethodACH
	}

	customer, err := s.provider.EnsureCustomer(ctx, fern.EnsureCustomerParams{
		Email:        senderEmail,
		CustomerType: fern.CustomerTypeIndividual,
	})
	if err != nil {
		return nil, err
	}

	kycCheck, err := s.provider.StartKycCheck(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}
	kyc := KycOutcome{
		CustomerID:     customer.CustomerID,
		CustomerStatus: kycCheck.CustomerStatus,
		KYCLink:        kycCheck.KYCLink,
		NeedsKyc:       kycCheck.CustomerStatus != fern.CustomerStatusActive,
		Bypassed:       kycCheck.Bypassed,
	}

	// Unverified senders cannot fund anything. Halt before any account
	// is provisioned and surface the hosted verification link.
	if kyc.NeedsKyc {
		logger.Info("onramp halted pending verification",
			zap.String("plan_id", params.Plan.PlanID),
			zap.String("customer_id", customer.CustomerID))
		return &OnrampResult{
			State: StateKycPending,
			Kyc:   kyc,
			Funding: FundingOutcome{
				NeedsBankDetails: true,
				NextSteps:        "Complete KYC verification using the provided link",
			},
		}, nil
	}

	agentAccountID, err := s.ensureAgentCryptoAccount(ctx, senderEmail, customer.CustomerID, agentChain, agentAddress)
	if err != nil {
		return nil, err
	}

	fiatAccountID := params.BankAccountID
	if fiatAccountID == "" && s.testing.BypassBankAccount {
		account, err := s.provider.CreateExternalBankAccount(ctx, fern.ExternalBankAccountParams{
			CustomerID:     customer.CustomerID,
			AccountNumber:  "1234567890",
			RoutingNumber:  "021000021",
			BankName:       "Test Bank",
			OwnerEmail:     senderEmail,
			OwnerFirstName: "Test",
			OwnerLastName:  "User",
		})
		if err != nil {
			return nil, err
		}
		fiatAccountID = account.PaymentAccountID
		logger.Warn("testing mode: placeholder bank account created",
			zap.String("payment_account_id", fiatAccountID))
	}

	// Verified but without a funding source: the caller must collect
	// bank details and complete the flow separately.
	if fiatAccountID == "" {
		return &OnrampResult{
			State: StateAccountsProvisioned,
			Kyc:   kyc,
			Funding: FundingOutcome{
				AgentAccountID:   agentAccountID,
				NeedsBankDetails: true,
				NextSteps:        "Provide bank account details to proceed with funding",
			},
		}, nil
	}

	quote, tx, err := s.quoteAndTransact(ctx, quoteAndTransactParams{
		customerID:    customer.CustomerID,
		sourceAccount: fiatAccountID,
		destAccount:   agentAccountID,
		amountUsd:     params.AmountUsd,
		fiatMethod:    fiatMethod,
		chain:         agentChain,
		correlationID: correlationIDForPlan(params.Plan.PlanID),
	})
	if err != nil {
		return nil, err
	}

	return &OnrampResult{
		State: StateTransacted,
		Kyc:   kyc,
		Funding: FundingOutcome{
			AgentAccountID:       agentAccountID,
			FiatAccountID:        fiatAccountID,
			CanProceed:           true,
			TransferInstructions: tx.TransferInstructions,
			NextSteps:            "Send fiat using the provided transfer instructions",
		},
		Quote:       quote,
		Transaction: tx,
	}, nil
}

// CompleteOnrampParams finishes an on-ramp after the sender supplied
// bank details out of band.
type CompleteOnrampParams struct {
	Plan           plans.Plan
	SenderEmail    string
	AmountUsd      string
	BankAccountID  string
	AgentAccountID string
	FiatMethod     fern.PaymentMethod
}

// CompleteOnramp quotes and executes against accounts provisioned by a
// prior StartOnramp invocation.
func (s *Service) CompleteOnramp(ctx context.Context, params CompleteOnrampParams) (*OnrampResult, error) {
	if params.BankAccountID == "" {
		return nil, &ValidationError{Field: "bankAccountId", Reason: "must not be empty"}
	}
	if params.AgentAccountID == "" {
		return nil, &ValidationError{Field: "agentAccountId", Reason: "must not be empty"}
	}
	senderEmail := params.SenderEmail
	if senderEmail == "" && params.Plan.Sender != nil {
		senderEmail = params.Plan.Sender.Email
	}
	if senderEmail == "" {
		return nil, &ValidationError{Field: "senderEmail", Reason: "must not be empty"}
	}

	customer, err := s.provider.EnsureCustomer(ctx, fern.EnsureCustomerParams{
		Email:        senderEmail,
		CustomerType: fern.CustomerTypeIndividual,
	})
	if err != nil {
		return nil, err
	}

	fiatMethod := params.FiatMethod
	if fiatMethod == "" {
		fiatMethod = fern.MethodACH
	}

	quote, tx, err := s.quoteAndTransact(ctx, quoteAndTransactParams{
		customerID:    customer.CustomerID,
		sourceAccount: params.BankAccountID,
		destAccount:   params.AgentAccountID,
		amountUsd:     params.AmountUsd,
		fiatMethod:    fiatMethod,
		chain:         params.Plan.AgentWallet.Chain,
		correlationID: correlationIDForPlan(params.Plan.PlanID),
	})
	if err != nil {
		return nil, err
	}

	return &OnrampResult{
		State: StateTransacted,
		Kyc:   KycOutcome{CustomerID: customer.CustomerID, CustomerStatus: fern.CustomerStatusActive},
		Funding: FundingOutcome{
			AgentAccountID:       params.AgentAccountID,
			FiatAccountID:        params.BankAccountID,
			CanProceed:           true,
			TransferInstructions: tx.TransferInstructions,
			NextSteps:            "Send fiat using the provided transfer instructions",
		},
		Quote:       quote,
		Transaction: tx,
	}, nil
}

// ensureAgentCryptoAccount provisions the third-party agent wallet
// account, reusing a previously provisioned account for the same sender
// and chain.
func (s *Service) ensureAgentCryptoAccount(ctx context.Context, senderEmail, customerID string, chain chains.Chain, address string) (string, error) {
	if id, ok := s.store.CryptoAccountID(senderEmail, chain); ok {
		return id, nil
	}
	account, err := s.provider.CreateExternalCryptoWallet(ctx, fern.ExternalCryptoWalletParams{
		CustomerID:   customerID,
		Chain:        chain,
		Address:      address,
		Nickname:     fmt.Sprintf("Agent Wallet (%s)", chain),
		IsThirdParty: true,
	})
	if err != nil {
		return "", err
	}
	s.store.SetCryptoAccountID(senderEmail, chain, account.PaymentAccountID)
	return account.PaymentAccountID, nil
}

type quoteAndTransactParams struct {
	customerID    string
	sourceAccount string
	destAccount   string
	amountUsd     string
	fiatMethod    fern.PaymentMethod
	chain         chains.Chain
	correlationID string
}

// quoteAndTransact prices USD→USDC into the agent account and commits
// the quote.
func (s *Service) quoteAndTransact(ctx context.Context, params quoteAndTransactParams) (*fern.Quote, *fern.Transaction, error) {
	quote, err := s.provider.CreateQuote(ctx, fern.QuoteParams{
		CustomerID: params.customerID,
		Source: fern.QuoteSource{
			PaymentAccountID: params.sourceAccount,
			Currency:         fern.CurrencyUSD,
			PaymentMethod:    params.fiatMethod,
			Amount:           params.amountUsd,
		},
		Destination: fern.QuoteDestination{
			PaymentAccountID: params.destAccount,
			PaymentMethod:    fern.ChainMethod(params.chain),
			Currency:         fern.CurrencyUSDC,
		},
	})
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.provider.CreateTransaction(ctx, quote.QuoteID, params.correlationID)
	if err != nil {
		return nil, nil, err
	}
	return quote, tx, nil
}

func correlationIDForPlan(planID string) string {
	if planID == "" {
		return ""
	}
	return "plan:" + planID
}
