package chains_test

import (
	"testing"

	"github.com/planpay/planpay-api/internal/chains"
	"github.com/stretchr/testify/assert"
)

func TestIsFastBridgeSupported(t *testing.T) {
	tests := []struct {
		name  string
		chain chains.Chain
		want  bool
	}{
		{name: "ethereum supported", chain: chains.Ethereum, want: true},
		{name: "base supported", chain: chains.Base, want: true},
		{name: "arbitrum supported", chain: chains.Arbitrum, want: true},
		{name: "polygon supported", chain: chains.Polygon, want: true},
		{name: "avalanche supported", chain: chains.Avalanche, want: true},
		{name: "optimism supported", chain: chains.Optimism, want: true},
		{name: "solana not supported", chain: chains.Chain("SOLANA"), want: false},
		{name: "empty not supported", chain: chains.Chain(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chains.IsFastBridgeSupported(tt.chain))
		})
	}
}

func TestValidateCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		params     chains.CompatibilityParams
		wantValid  bool
		wantErrors int
	}{
		{
			name:      "both chains supported",
			params:    chains.CompatibilityParams{SenderSourceChain: chains.Base, ReceiverDestChain: chains.Arbitrum},
			wantValid: true,
		},
		{
			name:      "receiver only, supported",
			params:    chains.CompatibilityParams{ReceiverDestChain: chains.Ethereum},
			wantValid: true,
		},
		{
			name:       "receiver chain unsupported",
			params:     chains.CompatibilityParams{ReceiverDestChain: chains.Chain("SOLANA")},
			wantValid:  false,
			wantErrors: 1,
		},
		{
			name:       "sender chain unsupported",
			params:     chains.CompatibilityParams{SenderSourceChain: chains.Chain("TRON"), ReceiverDestChain: chains.Base},
			wantValid:  false,
			wantErrors: 1,
		},
		{
			name:       "both chains unsupported",
			params:     chains.CompatibilityParams{SenderSourceChain: chains.Chain("TRON"), ReceiverDestChain: chains.Chain("SOLANA")},
			wantValid:  false,
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := chains.ValidateCompatibility(tt.params)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Len(t, result.Errors, tt.wantErrors)
		})
	}
}

func TestValidateCompatibility_ErrorNamesChain(t *testing.T) {
	result := chains.ValidateCompatibility(chains.CompatibilityParams{
		ReceiverDestChain: chains.Chain("SOLANA"),
	})

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "SOLANA")
}

func TestFastBridgeSupported_MatchesPredicate(t *testing.T) {
	for _, chain := range chains.FastBridgeSupported() {
		assert.True(t, chains.IsFastBridgeSupported(chain), "chain %s", chain)
	}
}
