package fern

import (
	"encoding/json"

	"github.com/planpay/planpay-api/internal/chains"
)

// Currency is a provider-side currency code.
type Currency string

const (
	CurrencyUSD  Currency = "USD"
	CurrencyUSDC Currency = "USDC"
)

// PaymentMethod is either a fiat rail (ACH, WIRE) or a chain name for
// crypto legs.
type PaymentMethod string

const (
	MethodACH  PaymentMethod = "ACH"
	MethodWire PaymentMethod = "WIRE"
)

// ChainMethod converts a chain into the payment method the provider
// expects on crypto legs.
func ChainMethod(chain chains.Chain) PaymentMethod {
	return PaymentMethod(chain)
}

// CustomerType distinguishes individual from business customers.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
	CustomerTypeBusiness   CustomerType = "BUSINESS"
)

// CustomerStatus is the provider's verification state for a customer.
type CustomerStatus string

const (
	CustomerStatusUnknown  CustomerStatus = "UNKNOWN"
	CustomerStatusCreated  CustomerStatus = "CREATED"
	CustomerStatusPending  CustomerStatus = "PENDING"
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusRejected CustomerStatus = "REJECTED"
)

// TransactionStatus is the provider's execution state for a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Customer is the locally relevant projection of a provider customer.
type Customer struct {
	CustomerID     string         `json:"customerId"`
	CustomerStatus CustomerStatus `json:"customerStatus"`
	KYCLink        string         `json:"kycLink,omitempty"`
	Email          string         `json:"email,omitempty"`
	Name           string         `json:"name,omitempty"`
}

type listCustomersResponse struct {
	Customers []Customer `json:"customers"`
}

// EnsureCustomerParams identifies the customer to resolve or create.
type EnsureCustomerParams struct {
	Email        string
	CustomerType CustomerType
	FirstName    string
	LastName     string
	BusinessName string
}

type createCustomerRequest struct {
	CustomerType CustomerType `json:"customerType"`
	FirstName    string       `json:"firstName,omitempty"`
	LastName     string       `json:"lastName,omitempty"`
	BusinessName string       `json:"businessName,omitempty"`
	Email        string       `json:"email"`
}

type createCustomerResponse struct {
	CustomerID string `json:"customerId"`
	KYCLink    string `json:"kycLink,omitempty"`
}

// KycCheck is the outcome of a verification-state lookup. Bypassed marks
// results produced by the testing shortcut rather than a provider call.
type KycCheck struct {
	CustomerID     string         `json:"customerId"`
	CustomerStatus CustomerStatus `json:"customerStatus"`
	KYCLink        string         `json:"kycLink,omitempty"`
	Bypassed       bool           `json:"bypassed,omitempty"`
}

// Address is a postal address in provider wire format.
type Address struct {
	Country      string `json:"country,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	StateCode    string `json:"stateCode,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Locale       string `json:"locale,omitempty"`
}

// PaymentAccount is the provider's record of a created payment account.
// FernCryptoWallet carries the provider-assigned address for custodied
// wallets; BankAccountFormLink is returned for provider-custodied fiat
// rails in sandbox.
type PaymentAccount struct {
	PaymentAccountID     string                `json:"paymentAccountId"`
	PaymentAccountType   string                `json:"paymentAccountType,omitempty"`
	PaymentAccountStatus string                `json:"paymentAccountStatus,omitempty"`
	CustomerID           string                `json:"customerId,omitempty"`
	Nickname             string                `json:"nickname,omitempty"`
	CreatedAt            string                `json:"createdAt,omitempty"`
	FernCryptoWallet     *FernCryptoWalletInfo `json:"fernCryptoWallet,omitempty"`
	BankAccountFormLink  string                `json:"bankAccountFormLink,omitempty"`
}

// FernCryptoWalletInfo carries the provider-assigned address of a
// custodied wallet.
type FernCryptoWalletInfo struct {
	Address string `json:"address,omitempty"`
}

// ExternalCryptoWalletParams describes a non-custodied wallet account.
// IsThirdParty marks wallets not owned by the customer (the agent wallet).
type ExternalCryptoWalletParams struct {
	CustomerID   string
	Chain        chains.Chain
	Address      string
	Nickname     string
	IsThirdParty bool
}

// ExternalBankAccountParams describes a customer-owned bank account.
// OwnerAddress and BankAddress fall back to documented placeholders when
// nil; the provider requires both.
type ExternalBankAccountParams struct {
	CustomerID     string
	AccountNumber  string
	RoutingNumber  string
	BankName       string
	Currency       Currency
	AccountType    string
	PaymentMethod  PaymentMethod
	Nickname       string
	OwnerEmail     string
	OwnerFirstName string
	OwnerLastName  string
	OwnerAddress   *Address
	BankAddress    *Address
}

// FernAutoFiatAccountParams describes a provider-custodied fiat rail that
// auto-converts deposits into the named destination crypto account.
type FernAutoFiatAccountParams struct {
	CustomerID                  string
	DestinationPaymentAccountID string
	DestinationCurrency         Currency
	BankAccountCurrency         Currency
	Nickname                    string
}

// QuoteSource is the paying leg of a quote.
type QuoteSource struct {
	PaymentAccountID string
	Currency         Currency
	PaymentMethod    PaymentMethod
	Amount           string
}

// QuoteDestination is the receiving leg of a quote.
type QuoteDestination struct {
	PaymentAccountID string
	PaymentMethod    PaymentMethod
	Currency         Currency
}

// QuoteParams prices a source→destination conversion for a customer.
// DeveloperFeeUsd is optional.
type QuoteParams struct {
	CustomerID      string
	Source          QuoteSource
	Destination     QuoteDestination
	DeveloperFeeUsd string
}

type quoteRequest struct {
	CustomerID string `json:"customerId"`
	Source     struct {
		SourcePaymentAccountID string        `json:"sourcePaymentAccountId"`
		SourceCurrency         Currency      `json:"sourceCurrency"`
		SourcePaymentMethod    PaymentMethod `json:"sourcePaymentMethod"`
		SourceAmount           string        `json:"sourceAmount"`
	} `json:"source"`
	Destination struct {
		DestinationPaymentAccountID string        `json:"destinationPaymentAccountId"`
		DestinationPaymentMethod    PaymentMethod `json:"destinationPaymentMethod"`
		DestinationCurrency         Currency      `json:"destinationCurrency"`
	} `json:"destination"`
	DeveloperFee *developerFee `json:"developerFee,omitempty"`
}

type developerFee struct {
	DeveloperFeeType   string `json:"developerFeeType"`
	DeveloperFeeAmount string `json:"developerFeeAmount"`
}

// FeeBreakdown is the provider's fee record on quotes and transactions.
// Legs are kept raw; their shape varies by rail.
type FeeBreakdown struct {
	FeeCurrency  Currency        `json:"feeCurrency,omitempty"`
	FernFee      json.RawMessage `json:"fernFee,omitempty"`
	DeveloperFee json.RawMessage `json:"developerFee,omitempty"`
}

// Quote is an ephemeral priced conversion. It must be consumed by a
// transaction before ExpiresAt; an expired quote cannot be retried.
type Quote struct {
	QuoteID               string       `json:"quoteId"`
	ExpiresAt             string       `json:"expiresAt"`
	EstimatedExchangeRate string       `json:"estimatedExchangeRate"`
	DestinationAmount     string       `json:"destinationAmount"`
	Fees                  FeeBreakdown `json:"fees,omitempty"`
}

// TransactionSource echoes the quote's paying leg on the committed
// transaction.
type TransactionSource struct {
	SourcePaymentAccountID string        `json:"sourcePaymentAccountId"`
	SourceCurrency         Currency      `json:"sourceCurrency"`
	SourcePaymentMethod    PaymentMethod `json:"sourcePaymentMethod"`
	SourceAmount           string        `json:"sourceAmount"`
}

// TransactionDestination echoes the quote's receiving leg on the
// committed transaction.
type TransactionDestination struct {
	DestinationPaymentAccountID string        `json:"destinationPaymentAccountId"`
	DestinationPaymentMethod    PaymentMethod `json:"destinationPaymentMethod"`
	DestinationCurrency         Currency      `json:"destinationCurrency"`
	ExchangeRate                string        `json:"exchangeRate,omitempty"`
	DestinationAmount           string        `json:"destinationAmount,omitempty"`
}

// Transaction is the committed execution of a quote. TransferInstructions
// carry bank transfer details for fiat-in legs or a crypto deposit
// address for crypto-in legs; the shape is provider-defined and passed
// through untouched.
type Transaction struct {
	TransactionID        string                 `json:"transactionId"`
	CustomerID           string                 `json:"customerId,omitempty"`
	QuoteID              string                 `json:"quoteId,omitempty"`
	TransactionStatus    TransactionStatus      `json:"transactionStatus"`
	CorrelationID        string                 `json:"correlationId,omitempty"`
	Source               TransactionSource      `json:"source,omitempty"`
	Destination          TransactionDestination `json:"destination,omitempty"`
	Fees                 FeeBreakdown           `json:"fees,omitempty"`
	TransferInstructions json.RawMessage        `json:"transferInstructions,omitempty"`
	CreatedAt            string                 `json:"createdAt,omitempty"`
	UpdatedAt            string                 `json:"updatedAt,omitempty"`
}

type createTransactionRequest struct {
	QuoteID       string `json:"quoteId"`
	CorrelationID string `json:"correlationId,omitempty"`
}
