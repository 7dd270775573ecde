package cache_test

import (
	"testing"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/plans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CustomerID(t *testing.T) {
	store := cache.NewStore()

	_, ok := store.CustomerID("user@example.com")
	assert.False(t, ok)

	store.SetCustomerID("user@example.com", "cust_123")

	id, ok := store.CustomerID("user@example.com")
	require.True(t, ok)
	assert.Equal(t, "cust_123", id)
}

func TestStore_CryptoAccountID_KeyedByEmailAndChain(t *testing.T) {
	store := cache.NewStore()

	store.SetCryptoAccountID("user@example.com", chains.Base, "acct_base")
	store.SetCryptoAccountID("user@example.com", chains.Arbitrum, "acct_arb")

	id, ok := store.CryptoAccountID("user@example.com", chains.Base)
	require.True(t, ok)
	assert.Equal(t, "acct_base", id)

	id, ok = store.CryptoAccountID("user@example.com", chains.Arbitrum)
	require.True(t, ok)
	assert.Equal(t, "acct_arb", id)

	_, ok = store.CryptoAccountID("user@example.com", chains.Polygon)
	assert.False(t, ok)
}

func TestStore_FiatAccountID(t *testing.T) {
	store := cache.NewStore()

	store.SetFiatAccountID("user@example.com", "acct_fiat")

	id, ok := store.FiatAccountID("user@example.com")
	require.True(t, ok)
	assert.Equal(t, "acct_fiat", id)
}

func TestStore_PlanLifecycle(t *testing.T) {
	store := cache.NewStore()
	plan := plans.Plan{PlanID: "plan_1", AmountUsd: "100"}

	_, ok := store.Plan("plan_1")
	assert.False(t, ok)

	store.SetPlan(plan)

	got, ok := store.Plan("plan_1")
	require.True(t, ok)
	assert.Equal(t, plan, got)
	assert.Len(t, store.Plans(), 1)

	// Updates replace the record.
	plan.AmountUsd = "250"
	store.SetPlan(plan)
	got, _ = store.Plan("plan_1")
	assert.Equal(t, "250", got.AmountUsd)

	store.DeletePlan("plan_1")
	_, ok = store.Plan("plan_1")
	assert.False(t, ok)
}

func TestStore_PlanCopiesDoNotAliasStoredRecord(t *testing.T) {
	store := cache.NewStore()
	plan := plans.Plan{
		PlanID:   "plan_1",
		Sender:   &plans.Sender{Email: "sender@example.com"},
		Receiver: &plans.Receiver{Email: "receiver@example.com", ChosenDestChain: chains.Base},
	}
	store.SetPlan(plan)

	// Mutating the caller's struct after SetPlan leaves the store intact.
	plan.Receiver.ChosenDestChain = chains.Polygon
	got, ok := store.Plan("plan_1")
	require.True(t, ok)
	assert.Equal(t, chains.Base, got.Receiver.ChosenDestChain)

	// Mutating a read copy without SetPlan leaves the store intact.
	got.Receiver.ChosenDestChain = chains.Arbitrum
	got.Sender.Email = "other@example.com"
	reread, ok := store.Plan("plan_1")
	require.True(t, ok)
	assert.Equal(t, chains.Base, reread.Receiver.ChosenDestChain)
	assert.Equal(t, "sender@example.com", reread.Sender.Email)

	// Listing snapshots are independent too.
	listed := store.Plans()
	require.Len(t, listed, 1)
	listed[0].Receiver.ChosenDestChain = chains.Optimism
	reread, _ = store.Plan("plan_1")
	assert.Equal(t, chains.Base, reread.Receiver.ChosenDestChain)
}

func TestStore_ClearAll(t *testing.T) {
	store := cache.NewStore()
	store.SetCustomerID("user@example.com", "cust_123")
	store.SetCryptoAccountID("user@example.com", chains.Base, "acct_1")
	store.SetFiatAccountID("user@example.com", "acct_2")
	store.SetPlan(plans.Plan{PlanID: "plan_1"})

	store.ClearAll()

	_, ok := store.CustomerID("user@example.com")
	assert.False(t, ok)
	_, ok = store.CryptoAccountID("user@example.com", chains.Base)
	assert.False(t, ok)
	_, ok = store.FiatAccountID("user@example.com")
	assert.False(t, ok)
	assert.Empty(t, store.Plans())
}
