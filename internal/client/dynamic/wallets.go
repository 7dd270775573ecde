// Package dynamic provisions MPC server wallets for the agent
// intermediary through the Dynamic wallet API.
package dynamic

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	httpclient "github.com/planpay/planpay-api/internal/client/http"
	"github.com/planpay/planpay-api/internal/logger"
)

const defaultBaseURL = "https://app.dynamicauth.com"

// thresholdSignatureScheme is the MPC key split used for server wallets.
const thresholdSignatureScheme = "TWO_OF_TWO"

// WalletProvisioner creates a custodial wallet for a plan and returns
// its address. Implementations are injected; callers never construct
// wallet clients themselves.
type WalletProvisioner interface {
	ProvisionWallet(ctx context.Context, params ProvisionParams) (*Wallet, error)
}

// ProvisionParams identifies the plan the wallet will serve and the
// chain it must live on.
type ProvisionParams struct {
	Chain    string
	PlanID   string
	PlanName string
}

// Wallet is a provisioned server wallet.
type Wallet struct {
	Address   string `json:"accountAddress"`
	PublicKey string `json:"publicKeyHex,omitempty"`
	Chain     string `json:"chain"`
}

// evmChains are the chain identifiers served by the EVM wallet family;
// anything else must be solana or is rejected.
var evmChains = map[string]bool{
	"ethereum":  true,
	"polygon":   true,
	"base":      true,
	"arbitrum":  true,
	"optimism":  true,
	"avalanche": true,
}

type chainFamily string

const (
	familyEVM chainFamily = "evm"
	familySVM chainFamily = "svm"
)

func familyForChain(chain string) (chainFamily, error) {
	if evmChains[chain] {
		return familyEVM, nil
	}
	if chain == "solana" {
		return familySVM, nil
	}
	return "", fmt.Errorf("unsupported chain: %s", chain)
}

// Client is the HTTP implementation of WalletProvisioner.
type Client struct {
	httpClient    *httpclient.HTTPClient
	environmentID string
}

// NewClient builds a wallet client against the Dynamic API.
func NewClient(apiKey, baseURL, environmentID string, collector httpclient.MetricsCollector) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("wallet api key is required")
	}
	if environmentID == "" {
		return nil, errors.New("wallet environment id is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	opts := []httpclient.ClientOption{
		httpclient.WithBaseURL(baseURL),
		httpclient.WithDefaultHeader("Authorization", "Bearer "+apiKey),
	}
	if collector != nil {
		opts = append(opts, httpclient.WithMetricsCollector(collector))
	}

	return &Client{
		httpClient:    httpclient.NewHTTPClient(opts...),
		environmentID: environmentID,
	}, nil
}

type createWalletRequest struct {
	ThresholdSignatureScheme string `json:"thresholdSignatureScheme"`
	Password                 string `json:"password"`
	Chain                    string `json:"chain"`
}

// ProvisionWallet creates a server wallet keyed to the plan. The plan ID
// doubles as the wallet password so repeat calls for the same plan hit
// the same key material.
func (c *Client) ProvisionWallet(ctx context.Context, params ProvisionParams) (*Wallet, error) {
	if params.PlanID == "" {
		return nil, errors.New("plan id is required")
	}
	family, err := familyForChain(params.Chain)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v0/environments/%s/wallets/%s", c.environmentID, family)
	req := createWalletRequest{
		ThresholdSignatureScheme: thresholdSignatureScheme,
		Password:                 "plan-" + params.PlanID,
		Chain:                    params.Chain,
	}

	resp, err := c.httpClient.Post(ctx, path, req)
	if err != nil {
		return nil, errors.Wrap(err, "wallet provisioning failed")
	}

	var wallet Wallet
	if err := c.httpClient.ProcessJSONResponse(resp, &wallet); err != nil {
		return nil, errors.Wrap(err, "failed to decode wallet response")
	}
	if wallet.Address == "" {
		return nil, errors.New("wallet response missing account address")
	}
	wallet.Chain = params.Chain

	logger.Info("provisioned server wallet",
		zap.String("plan_id", params.PlanID),
		zap.String("chain", params.Chain),
		zap.String("address", wallet.Address))
	return &wallet, nil
}
