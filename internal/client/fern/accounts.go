package fern

import (
	"context"
	"fmt"
)

// The provider requires owner and bank addresses on external bank
// accounts. These placeholders are applied when the caller supplies none;
// they are a documented default, not an omission.
var (
	defaultOwnerAddress = Address{
		Country:      "US",
		AddressLine1: "123 Main St",
		City:         "New York",
		State:        "New York",
		StateCode:    "NY",
		PostalCode:   "10001",
		Locale:       "en-US",
	}
	defaultBankAddress = Address{
		Country:      "US",
		AddressLine1: "350 5th Avenue",
		AddressLine2: "Floor 21",
		City:         "New York",
		State:        "New York",
		StateCode:    "NY",
		PostalCode:   "10016",
		Locale:       "en-US",
	}
)

type externalCryptoWalletPayload struct {
	PaymentAccountType   string `json:"paymentAccountType"`
	CustomerID           string `json:"customerId"`
	Nickname             string `json:"nickname"`
	ExternalCryptoWallet struct {
		CryptoWalletType string `json:"cryptoWalletType"`
		Chain            string `json:"chain"`
		Address          string `json:"address"`
	} `json:"externalCryptoWallet"`
	IsThirdParty   bool   `json:"isThirdParty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// CreateExternalCryptoWallet registers an existing wallet address as a
// payment account. Third-party wallets (the agent wallet) are not owned
// by the customer.
func (c *Client) CreateExternalCryptoWallet(ctx context.Context, params ExternalCryptoWalletParams) (*PaymentAccount, error) {
	payload := externalCryptoWalletPayload{
		PaymentAccountType: "EXTERNAL_CRYPTO_WALLET",
		CustomerID:         params.CustomerID,
		Nickname:           params.Nickname,
		IsThirdParty:       params.IsThirdParty,
		OrganizationID:     c.orgID,
	}
	if payload.Nickname == "" {
		payload.Nickname = fmt.Sprintf("Wallet %s", params.Chain)
	}
	payload.ExternalCryptoWallet.CryptoWalletType = "EVM"
	payload.ExternalCryptoWallet.Chain = string(params.Chain)
	payload.ExternalCryptoWallet.Address = params.Address

	var account PaymentAccount
	if err := c.post(ctx, "/payment-accounts", payload, &account); err != nil {
		return nil, fmt.Errorf("failed to create external crypto wallet account: %w", err)
	}
	return &account, nil
}

type bankAccountOwner struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Type      string   `json:"type"`
	Address   *Address `json:"address,omitempty"`
}

type externalBankAccountPayload struct {
	PaymentAccountType  string `json:"paymentAccountType"`
	CustomerID          string `json:"customerId"`
	Nickname            string `json:"nickname"`
	ExternalBankAccount struct {
		AccountNumber            string           `json:"accountNumber"`
		RoutingNumber            string           `json:"routingNumber"`
		BankName                 string           `json:"bankName"`
		BankAccountCurrency      Currency         `json:"bankAccountCurrency"`
		BankAccountType          string           `json:"bankAccountType"`
		BankAccountPaymentMethod PaymentMethod    `json:"bankAccountPaymentMethod"`
		BankAccountOwner         bankAccountOwner `json:"bankAccountOwner"`
		BankAddress              *Address         `json:"bankAddress,omitempty"`
	} `json:"externalBankAccount"`
	IsThirdParty   bool   `json:"isThirdParty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// CreateExternalBankAccount registers a customer-owned bank account as a
// payment account. Owner and bank addresses default to fixed placeholders
// when not supplied.
func (c *Client) CreateExternalBankAccount(ctx context.Context, params ExternalBankAccountParams) (*PaymentAccount, error) {
	payload := externalBankAccountPayload{
		PaymentAccountType: "EXTERNAL_BANK_ACCOUNT",
		CustomerID:         params.CustomerID,
		Nickname:           params.Nickname,
		OrganizationID:     c.orgID,
	}
	if payload.Nickname == "" {
		payload.Nickname = "Bank Account"
	}

	currency := params.Currency
	if currency == "" {
		currency = CurrencyUSD
	}
	accountType := params.AccountType
	if accountType == "" {
		accountType = "CHECKING"
	}
	method := params.PaymentMethod
	if method == "" {
		method = MethodACH
	}

	ownerAddress := params.OwnerAddress
	if ownerAddress == nil {
		ownerAddress = &defaultOwnerAddress
	}
	bankAddress := params.BankAddress
	if bankAddress == nil {
		bankAddress = &defaultBankAddress
	}

	payload.ExternalBankAccount.AccountNumber = params.AccountNumber
	payload.ExternalBankAccount.RoutingNumber = params.RoutingNumber
	payload.ExternalBankAccount.BankName = params.BankName
	payload.ExternalBankAccount.BankAccountCurrency = currency
	payload.ExternalBankAccount.BankAccountType = accountType
	payload.ExternalBankAccount.BankAccountPaymentMethod = method
	payload.ExternalBankAccount.BankAccountOwner = bankAccountOwner{
		Email:     params.OwnerEmail,
		FirstName: params.OwnerFirstName,
		LastName:  params.OwnerLastName,
		Type:      string(CustomerTypeIndividual),
		Address:   ownerAddress,
	}
	payload.ExternalBankAccount.BankAddress = bankAddress

	var account PaymentAccount
	if err := c.post(ctx, "/payment-accounts", payload, &account); err != nil {
		return nil, fmt.Errorf("failed to create external bank account: %w", err)
	}
	return &account, nil
}

type fernCryptoWalletPayload struct {
	PaymentAccountType string `json:"paymentAccountType"`
	CustomerID         string `json:"customerId"`
	Nickname           string `json:"nickname"`
	FernCryptoWallet   struct {
		CryptoWalletType string `json:"cryptoWalletType"`
	} `json:"fernCryptoWallet"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// CreateFernCryptoWallet provisions a provider-custodied wallet. The
// provider assigns the address; it is returned on the account record.
func (c *Client) CreateFernCryptoWallet(ctx context.Context, customerID string, chain string) (*PaymentAccount, error) {
	payload := fernCryptoWalletPayload{
		PaymentAccountType: "FERN_CRYPTO_WALLET",
		CustomerID:         customerID,
		Nickname:           fmt.Sprintf("Fern Wallet %s", chain),
		OrganizationID:     c.orgID,
	}
	payload.FernCryptoWallet.CryptoWalletType = "EVM"

	var account PaymentAccount
	if err := c.post(ctx, "/payment-accounts", payload, &account); err != nil {
		return nil, fmt.Errorf("failed to create fern crypto wallet: %w", err)
	}
	return &account, nil
}

type fernFiatAccountPayload struct {
	PaymentAccountType string `json:"paymentAccountType"`
	CustomerID         string `json:"customerId"`
	Nickname           string `json:"nickname"`
	FernFiatAccount    struct {
		BankAccountCurrency Currency `json:"bankAccountCurrency"`
	} `json:"fernFiatAccount"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// CreateFernFiatAccount provisions a provider-custodied fiat payout rail.
func (c *Client) CreateFernFiatAccount(ctx context.Context, customerID string, currency Currency) (*PaymentAccount, error) {
	if currency == "" {
		currency = CurrencyUSD
	}
	payload := fernFiatAccountPayload{
		PaymentAccountType: "FERN_FIAT_ACCOUNT",
		CustomerID:         customerID,
		Nickname:           fmt.Sprintf("Fiat Payout (%s)", currency),
		OrganizationID:     c.orgID,
	}
	payload.FernFiatAccount.BankAccountCurrency = currency

	var account PaymentAccount
	if err := c.post(ctx, "/payment-accounts", payload, &account); err != nil {
		return nil, fmt.Errorf("failed to create fern fiat account: %w", err)
	}
	return &account, nil
}

type fernAutoFiatAccountPayload struct {
	PaymentAccountType  string `json:"paymentAccountType"`
	CustomerID          string `json:"customerId"`
	Nickname            string `json:"nickname"`
	FernAutoFiatAccount struct {
		BankAccountCurrency         Currency `json:"bankAccountCurrency"`
		DestinationPaymentAccountID string   `json:"destinationPaymentAccountId"`
		DestinationCurrency         Currency `json:"destinationCurrency"`
	} `json:"fernAutoFiatAccount"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// CreateFernAutoFiatAccount provisions a provider-custodied fiat rail
// whose deposits auto-convert into the named destination crypto account.
func (c *Client) CreateFernAutoFiatAccount(ctx context.Context, params FernAutoFiatAccountParams) (*PaymentAccount, error) {
	bankCurrency := params.BankAccountCurrency
	if bankCurrency == "" {
		bankCurrency = CurrencyUSD
	}
	destCurrency := params.DestinationCurrency
	if destCurrency == "" {
		destCurrency = CurrencyUSDC
	}

	payload := fernAutoFiatAccountPayload{
		PaymentAccountType: "FERN_AUTO_FIAT_ACCOUNT",
		CustomerID:         params.CustomerID,
		Nickname:           params.Nickname,
		OrganizationID:     c.orgID,
	}
	if payload.Nickname == "" {
		payload.Nickname = "Auto Onramp to Crypto"
	}
	payload.FernAutoFiatAccount.BankAccountCurrency = bankCurrency
	payload.FernAutoFiatAccount.DestinationPaymentAccountID = params.DestinationPaymentAccountID
	payload.FernAutoFiatAccount.DestinationCurrency = destCurrency

	var account PaymentAccount
	if err := c.post(ctx, "/payment-accounts", payload, &account); err != nil {
		return nil, fmt.Errorf("failed to create fern auto fiat account: %w", err)
	}
	return &account, nil
}
