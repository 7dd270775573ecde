package funding_test

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/client/fern"
	"github.com/planpay/planpay-api/internal/config"
	"github.com/planpay/planpay-api/internal/funding"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/mocks"
	"github.com/planpay/planpay-api/internal/plans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

func testPlan() plans.Plan {
	return plans.Plan{
		PlanID: "plan_1",
		Title:  "Weekly Payment",
		AgentWallet: plans.AgentWallet{
			Chain:   chains.Base,
			Address: "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6",
		},
		Sender:    &plans.Sender{Email: "sender@example.com"},
		Receiver:  &plans.Receiver{Email: "receiver@example.com", ChosenDestChain: chains.Base},
		AmountUsd: "200",
	}
}

func newService(t *testing.T, testing config.TestingConfig) (*funding.Service, *mocks.MockProvider, *cache.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	store := cache.NewStore()
	return funding.NewService(provider, store, testing), provider, store
}

func TestStartOnramp_HaltsPendingKyc(t *testing.T) {
	service, provider, _ := newService(t, config.TestingConfig{})

	provider.EXPECT().
		EnsureCustomer(gomock.Any(), fern.EnsureCustomerParams{
			Email:        "sender@example.com",
			CustomerType: fern.CustomerTypeIndividual,
		}).
		Return(&fern.Customer{CustomerID: "cust_1"}, nil)
	provider.EXPECT().
		StartKycCheck(gomock.Any(), "cust_1").
		Return(&fern.KycCheck{
			CustomerID:     "cust_1",
			CustomerStatus: fern.CustomerStatusPending,
			KYCLink:        "https://kyc.example.com/verify",
		}, nil)

	result, err := service.StartOnramp(context.Background(), funding.OnrampParams{
		Plan:      testPlan(),
		AmountUsd: "200",
	})
	require.NoError(t, err)

	// Flow stops at KYC with the verification link; no payment account
	// calls were recorded on the mock.
	assert.Equal(t, funding.StateKycPending, result.State)
	assert.True(t, result.Kyc.NeedsKyc)
	assert.Equal(t, "https://kyc.example.com/verify", result.Kyc.KYCLink)
	assert.Empty(t, result.Funding.AgentAccountID)
	assert.Nil(t, result.Transaction)
}

func TestStartOnramp_FullFlowWithBypassedBankAccount(t *testing.T) {
	service, provider, store := newService(t, config.TestingConfig{
		BypassKYC:         true,
		BypassBankAccount: true,
		MockKYCStatus:     "ACTIVE",
	})

	instructions := json.RawMessage(`{"type":"bank","accountNumber":"999"}`)

	provider.EXPECT().
		EnsureCustomer(gomock.Any(), gomock.Any()).
		Return(&fern.Customer{CustomerID: "cust_1"}, nil)
	provider.EXPECT().
		StartKycCheck(gomock.Any(), "cust_1").
		Return(&fern.KycCheck{CustomerID: "cust_1", CustomerStatus: fern.CustomerStatusActive, Bypassed: true}, nil)
	provider.EXPECT().
		CreateExternalCryptoWallet(gomock.Any(), fern.ExternalCryptoWalletParams{
			CustomerID:   "cust_1",
			Chain:        chains.Base,
			Address:      "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6",
			Nickname:     "Agent Wallet (BASE)",
			IsThirdParty: true,
		}).
		Return(&fern.PaymentAccount{PaymentAccountID: "acct_agent"}, nil)
	provider.EXPECT().
		CreateExternalBankAccount(gomock.Any(), gomock.Any()).
		Return(&fern.PaymentAccount{PaymentAccountID: "acct_bank"}, nil)
	provider.EXPECT().
		CreateQuote(gomock.Any(), fern.QuoteParams{
			CustomerID: "cust_1",
			Source: fern.QuoteSource{
				PaymentAccountID: "acct_bank",
				Currency:         fern.CurrencyUSD,
				PaymentMethod:    fern.MethodACH,
				Amount:           "200",
			},
			Destination: fern.QuoteDestination{
				PaymentAccountID: "acct_agent",
				PaymentMethod:    fern.ChainMethod(chains.Base),
				Currency:         fern.CurrencyUSDC,
			},
		}).
		Return(&fern.Quote{QuoteID: "quote_1"}, nil)
	provider.EXPECT().
		CreateTransaction(gomock.Any(), "quote_1", "plan:plan_1").
		Return(&fern.Transaction{
			TransactionID:        "tx_1",
			TransactionStatus:    fern.TransactionStatusPending,
			TransferInstructions: instructions,
		}, nil)

	result, err := service.StartOnramp(context.Background(), funding.OnrampParams{
		Plan:      testPlan(),
		AmountUsd: "200",
	})
	require.NoError(t, err)

	assert.Equal(t, funding.StateTransacted, result.State)
	assert.True(t, result.Funding.CanProceed)
	assert.Equal(t, "acct_agent", result.Funding.AgentAccountID)
	assert.Equal(t, "acct_bank", result.Funding.FiatAccountID)
	assert.JSONEq(t, string(instructions), string(result.Funding.TransferInstructions))
	require.NotNil(t, result.Transaction)
	assert.Equal(t, "tx_1", result.Transaction.TransactionID)

	// Agent account is cached per sender and chain.
	cached, ok := store.CryptoAccountID("sender@example.com", chains.Base)
	require.True(t, ok)
	assert.Equal(t, "acct_agent", cached)
}

func TestStartOnramp_VerifiedWithoutBankDetailsHalts(t *testing.T) {
	service, provider, _ := newService(t, config.TestingConfig{})

	provider.EXPECT().
		EnsureCustomer(gomock.Any(), gomock.Any()).
		Return(&fern.Customer{CustomerID: "cust_1"}, nil)
	provider.EXPECT().
		StartKycCheck(gomock.Any(), "cust_1").
		Return(&fern.KycCheck{CustomerID: "cust_1", CustomerStatus: fern.CustomerStatusActive}, nil)
	provider.EXPECT().
		CreateExternalCryptoWallet(gomock.Any(), gomock.Any()).
		Return(&fern.PaymentAccount{PaymentAccountID: "acct_agent"}, nil)

	result, err := service.StartOnramp(context.Background(), funding.OnrampParams{
		Plan:      testPlan(),
		AmountUsd: "200",
	})
	require.NoError(t, err)

	assert.Equal(t, funding.StateAccountsProvisioned, result.State)
	assert.True(t, result.Funding.NeedsBankDetails)
	assert.False(t, result.Funding.CanProceed)
	assert.Nil(t, result.Transaction)
}

func TestStartOnramp_ReusesCachedAgentAccount(t *testing.T) {
	service, provider, store := newService(t, config.TestingConfig{BypassBankAccount: true})
	store.SetCryptoAccountID("sender@example.com", chains.Base, "acct_cached")

	provider.EXPECT().
		EnsureCustomer(gomock.Any(), gomock.Any()).
		Return(&fern.Customer{CustomerID: "cust_1"}, nil)
	provider.EXPECT().
		StartKycCheck(gomock.Any(), "cust_1").
		Return(&fern.KycCheck{CustomerID: "cust_1", CustomerStatus: fern.CustomerStatusActive}, nil)
	provider.EXPECT().
		CreateExternalBankAccount(gomock.Any(), gomock.Any()).
		Return(&fern.PaymentAccount{PaymentAccountID: "acct_bank"}, nil)
	provider.EXPECT().
		CreateQuote(gomock.Any(), gomock.Any()).
		Return(&fern.Quote{QuoteID: "quote_1"}, nil)
	provider.EXPECT().
		CreateTransaction(gomock.Any(), "quote_1", "plan:plan_1").
		Return(&fern.Transaction{TransactionID: "tx_1"}, nil)

	result, err := service.StartOnramp(context.Background(), funding.OnrampParams{
		Plan:      testPlan(),
		AmountUsd: "200",
	})
	require.NoError(t, err)
	assert.Equal(t, "acct_cached", result.Funding.AgentAccountID)
}

func TestStartOnramp_ChainValidationFailsFast(t *testing.T) {
	service, _, _ := newService(t, config.TestingConfig{})

	plan := testPlan()
	plan.AgentWallet.Chain = chains.Chain("SOLANA")

	_, err := service.StartOnramp(context.Background(), funding.OnrampParams{
		Plan:           plan,
		AmountUsd:      "200",
		ValidateChains: true,
	})

	var valErr *funding.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Reason, "SOLANA")
}

func TestStartOnramp_MissingIdentityFields(t *testing.T) {
	service, _, _ := newService(t, config.TestingConfig{})

	plan := testPlan()
	plan.Sender = nil
	_, err := service.StartOnramp(context.Background(), funding.OnrampParams{Plan: plan, AmountUsd: "200"})
	var valErr *funding.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "senderEmail", valErr.Field)

	_, err = service.StartOnramp(context.Background(), funding.OnrampParams{Plan: testPlan()})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "amountUsd", valErr.Field)
}

func TestCompleteOnramp_QuotesAndTransacts(t *testing.T) {
	service, provider, _ := newService(t, config.TestingConfig{})

	provider.EXPECT().
		EnsureCustomer(gomock.Any(), gomock.Any()).
		Return(&fern.Customer{CustomerID: "cust_1"}, nil)
	provider.EXPECT().
		CreateQuote(gomock.Any(), gomock.Any()).
		Return(&fern.Quote{QuoteID: "quote_9"}, nil)
	provider.EXPECT().
		CreateTransaction(gomock.Any(), "quote_9", "plan:plan_1").
		Return(&fern.Transaction{TransactionID: "tx_9"}, nil)

	result, err := service.CompleteOnramp(context.Background(), funding.CompleteOnrampParams{
		Plan:           testPlan(),
		AmountUsd:      "200",
		BankAccountID:  "acct_bank",
		AgentAccountID: "acct_agent",
	})
	require.NoError(t, err)
	assert.Equal(t, funding.StateTransacted, result.State)
	assert.Equal(t, "tx_9", result.Transaction.TransactionID)
}

func TestCompleteOnramp_Validation(t *testing.T) {
	service, _, _ := newService(t, config.TestingConfig{})

	_, err := service.CompleteOnramp(context.Background(), funding.CompleteOnrampParams{
		Plan:           testPlan(),
		AmountUsd:      "200",
		AgentAccountID: "acct_agent",
	})
	var valErr *funding.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "bankAccountId", valErr.Field)
}

func TestGetTransaction_DelegatesToProvider(t *testing.T) {
	service, provider, _ := newService(t, config.TestingConfig{})

	provider.EXPECT().
		GetTransaction(gomock.Any(), "tx_1").
		Return(&fern.Transaction{TransactionID: "tx_1", TransactionStatus: fern.TransactionStatusCompleted}, nil)

	tx, err := service.GetTransaction(context.Background(), "tx_1")
	require.NoError(t, err)
	assert.Equal(t, fern.TransactionStatusCompleted, tx.TransactionStatus)

	_, err = service.GetTransaction(context.Background(), "")
	assert.Error(t, err)
}

func TestStateForTransaction(t *testing.T) {
	assert.Equal(t, funding.StateSettled, funding.StateForTransaction(fern.TransactionStatusCompleted))
	assert.Equal(t, funding.StateFailed, funding.StateForTransaction(fern.TransactionStatusFailed))
	assert.Equal(t, funding.StateTransacted, funding.StateForTransaction(fern.TransactionStatusPending))
	assert.Equal(t, funding.StateTransacted, funding.StateForTransaction(fern.TransactionStatus("PROCESSING")))
}
