package plans_test

import (
	"strings"
	"testing"

	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/plans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAgentAddress = "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6"

func TestFromParsed(t *testing.T) {
	parsed := plans.ParsedPlan{
		Title:                "Weekly Rent Split",
		Frequency:            604800,
		AmountPerTransaction: 50,
		TotalAmount:          200,
		NumberOfTransactions: 4,
	}

	tests := []struct {
		name        string
		params      plans.FromParsedParams
		wantErr     bool
		errContains string
	}{
		{
			name: "builds plan with all parties",
			params: plans.FromParsedParams{
				PlanID:             "plan_test1",
				Parsed:             parsed,
				SenderEmail:        "sender@example.com",
				ReceiverEmail:      "receiver@example.com",
				AgentChain:         chains.Base,
				AgentWalletAddress: testAgentAddress,
				ReceiverDestChain:  chains.Arbitrum,
				AutoCashOut:        true,
			},
		},
		{
			name: "missing sender email",
			params: plans.FromParsedParams{
				Parsed:             parsed,
				ReceiverEmail:      "receiver@example.com",
				AgentChain:         chains.Base,
				AgentWalletAddress: testAgentAddress,
				ReceiverDestChain:  chains.Base,
			},
			wantErr:     true,
			errContains: "sender email",
		},
		{
			name: "missing receiver email",
			params: plans.FromParsedParams{
				Parsed:             parsed,
				SenderEmail:        "sender@example.com",
				AgentChain:         chains.Base,
				AgentWalletAddress: testAgentAddress,
				ReceiverDestChain:  chains.Base,
			},
			wantErr:     true,
			errContains: "receiver email",
		},
		{
			name: "invalid agent wallet address",
			params: plans.FromParsedParams{
				Parsed:             parsed,
				SenderEmail:        "sender@example.com",
				ReceiverEmail:      "receiver@example.com",
				AgentChain:         chains.Base,
				AgentWalletAddress: "not-an-address",
				ReceiverDestChain:  chains.Base,
			},
			wantErr:     true,
			errContains: "not a valid EVM address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := plans.FromParsed(tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "plan_test1", plan.PlanID)
			assert.Equal(t, "Weekly Rent Split", plan.Title)
			assert.Equal(t, "200", plan.AmountUsd)
			assert.Equal(t, chains.Base, plan.AgentWallet.Chain)
			require.NotNil(t, plan.Receiver)
			assert.True(t, plan.Receiver.AutoCashOut)
		})
	}
}

func TestFromParsed_GeneratesPlanID(t *testing.T) {
	plan, err := plans.FromParsed(plans.FromParsedParams{
		Parsed:             plans.DefaultParsedPlan,
		SenderEmail:        "sender@example.com",
		ReceiverEmail:      "receiver@example.com",
		AgentChain:         chains.Base,
		AgentWalletAddress: testAgentAddress,
		ReceiverDestChain:  chains.Base,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(plan.PlanID, "plan_"))
}

func TestNewPlanID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := plans.NewPlanID()
		assert.False(t, seen[id], "duplicate plan id %s", id)
		seen[id] = true
	}
}

func TestUnresolvedFields(t *testing.T) {
	parsed := plans.ParsedPlan{
		Title:                "Plan",
		Frequency:            plans.Unknown,
		AmountPerTransaction: 50,
		TotalAmount:          plans.Unknown,
		NumberOfTransactions: 4,
	}

	fields := parsed.UnresolvedFields()
	assert.ElementsMatch(t, []string{"frequency", "totalAmount"}, fields)

	assert.Empty(t, plans.DefaultParsedPlan.UnresolvedFields())
}
