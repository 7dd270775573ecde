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

// OfframpParams starts a stablecoin→fiat flow paying out the receiver.
// When AutoCashOut is set the provider custodies the source wallet and
// forwards deposits automatically; otherwise WalletAddress names the
// receiver's own wallet and they send funds manually.
type OfframpParams struct {
	Plan           plans.Plan
	ReceiverEmail  string
	AmountUsd      string
	Chain          chains.Chain
	AutoCashOut    bool
	WalletAddress  string
	FiatMethod     fern.PaymentMethod
	ValidateChains bool
}

// PayoutOutcome reports the provisioned payout rails.
type PayoutOutcome struct {
	FiatAccountID         string `json:"fiatAccountId"`
	CryptoAccountID       string `json:"cryptoAccountId"`
	ProviderWalletAddress string `json:"providerWalletAddress,omitempty"`
	AutoCashOut           bool   `json:"autoCashOut"`
}

// OfframpResult is the flow outcome. DepositInstructions carry the
// crypto deposit address the receiver (or an automated agent) must fund.
type OfframpResult struct {
	State               State             `json:"state"`
	CustomerID          string            `json:"customerId"`
	Payout              PayoutOutcome     `json:"payout"`
	DepositInstructions json.RawMessage   `json:"depositInstructions,omitempty"`
	Quote               *fern.Quote       `json:"quote,omitempty"`
	Transaction         *fern.Transaction `json:"transaction,omitempty"`
}

// StartOfframp runs the off-ramp flow: resolve the receiver, provision
// or reuse a fiat payout account, provision the crypto source account,
// then quote USDC→USD and execute. Without auto cash-out a wallet
// address is required and its absence fails before any provider call.
func (s *Service) StartOfframp(ctx context.Context, params OfframpParams) (*OfframpResult, error) {
	receiverEmail := params.ReceiverEmail
	if receiverEmail == "" && params.Plan.Receiver != nil {
		receiverEmail = params.Plan.Receiver.Email
	}
	if receiverEmail == "" {
		return nil, &ValidationError{Field: "receiverEmail", Reason: "must not be empty"}
	}
	if params.AmountUsd == "" {
		return nil, &ValidationError{Field: "amountUsd", Reason: "must not be empty"}
	}
	if !params.AutoCashOut && params.WalletAddress == "" {
		return nil, &ValidationError{
			Field:  "walletAddress",
			Reason: "required when auto cash-out is disabled",
		}
	}

	if params.ValidateChains {
		result := chains.ValidateCompatibility(chains.CompatibilityParams{
			ReceiverDestChain: params.Chain,
		})
		if !result.Valid {
			return nil, &ValidationError{Field: "chain", Reason: strings.Join(result.Errors, "; ")}
		}
	}

	fiatMethod := params.FiatMethod
	if fiatMethod == "" {
		fiatMethod = fern.MethodACH
	}

	customer, err := s.provider.EnsureCustomer(ctx, fern.EnsureCustomerParams{
		Email:        receiverEmail,
		CustomerType: fern.CustomerTypeIndividual,
	})
	if err != nil {
		return nil, err
	}

	fiatAccountID, err := s.ensureFiatPayoutAccount(ctx, receiverEmail, customer.CustomerID)
	if err != nil {
		return nil, err
	}

	cryptoAccountID, providerAddress, err := s.provisionCryptoSource(ctx, provisionCryptoSourceParams{
		receiverEmail: receiverEmail,
		customerID:    customer.CustomerID,
		chain:         params.Chain,
		autoCashOut:   params.AutoCashOut,
		walletAddress: params.WalletAddress,
	})
	if err != nil {
		return nil, err
	}

	quote, err := s.provider.CreateQuote(ctx, fern.QuoteParams{
		CustomerID: customer.CustomerID,
		Source: fern.QuoteSource{
			PaymentAccountID: cryptoAccountID,
			Currency:         fern.CurrencyUSDC,
			PaymentMethod:    fern.ChainMethod(params.Chain),
			Amount:           params.AmountUsd,
		},
		Destination: fern.QuoteDestination{
			PaymentAccountID: fiatAccountID,
			PaymentMethod:    fiatMethod,
			Currency:         fern.CurrencyUSD,
		},
	})
	if err != nil {
		return nil, err
	}

	correlationID := correlationIDForPlan(params.Plan.PlanID)
	if correlationID == "" {
		correlationID = "user-offramp:" + receiverEmail
	}
	tx, err := s.provider.CreateTransaction(ctx, quote.QuoteID, correlationID)
	if err != nil {
		return nil, err
	}

	logger.Info("offramp transacted",
		zap.String("plan_id", params.Plan.PlanID),
		zap.String("transaction_id", tx.TransactionID),
		zap.Bool("auto_cash_out", params.AutoCashOut))

	return &OfframpResult{
		State:      StateTransacted,
		CustomerID: customer.CustomerID,
		Payout: PayoutOutcome{
			FiatAccountID:         fiatAccountID,
			CryptoAccountID:       cryptoAccountID,
			ProviderWalletAddress: providerAddress,
			AutoCashOut:           params.AutoCashOut,
		},
		DepositInstructions: tx.TransferInstructions,
		Quote:               quote,
		Transaction:         tx,
	}, nil
}

// ensureFiatPayoutAccount reuses the receiver's cached payout account or
// provisions a provider-custodied fiat account.
func (s *Service) ensureFiatPayoutAccount(ctx context.Context, receiverEmail, customerID string) (string, error) {
	if id, ok := s.store.FiatAccountID(receiverEmail); ok {
		return id, nil
	}
	account, err := s.provider.CreateFernFiatAccount(ctx, customerID, fern.CurrencyUSD)
	if err != nil {
		return "", err
	}
	s.store.SetFiatAccountID(receiverEmail, account.PaymentAccountID)
	return account.PaymentAccountID, nil
}

type provisionCryptoSourceParams struct {
	receiverEmail string
	customerID    string
	chain         chains.Chain
	autoCashOut   bool
	walletAddress string
}

// provisionCryptoSource returns the account funds will be sent from.
// Auto cash-out creates a provider-custodied wallet whose address the
// caller forwards funds to; otherwise the receiver's own wallet is
// registered (reused per email and chain when already registered).
func (s *Service) provisionCryptoSource(ctx context.Context, params provisionCryptoSourceParams) (accountID, providerAddress string, err error) {
	if params.autoCashOut {
		account, err := s.provider.CreateFernCryptoWallet(ctx, params.customerID, string(params.chain))
		if err != nil {
			return "", "", err
		}
		if account.FernCryptoWallet != nil {
			providerAddress = account.FernCryptoWallet.Address
		}
		return account.PaymentAccountID, providerAddress, nil
	}

	if id, ok := s.store.CryptoAccountID(params.receiverEmail, params.chain); ok {
		return id, "", nil
	}
	account, err := s.provider.CreateExternalCryptoWallet(ctx, fern.ExternalCryptoWalletParams{
		CustomerID: params.customerID,
		Chain:      params.chain,
		Address:    params.walletAddress,
		Nickname:   fmt.Sprintf("User Wallet (%s)", params.chain),
	})
	if err != nil {
		return "", "", err
	}
	s.store.SetCryptoAccountID(params.receiverEmail, params.chain, account.PaymentAccountID)
	return account.PaymentAccountID, "", nil
}
