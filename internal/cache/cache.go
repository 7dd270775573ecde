// Package cache holds the process-lifetime resource cache: provider-issued
// identifiers keyed by external identity, and plan records keyed by plan id.
// Nothing here survives a restart; callers own invalidation.
package cache

import (
	"sync"

	"github.com/planpay/planpay-api/internal/chains"
	"github.com/planpay/planpay-api/internal/plans"
)

// Store is an injected in-memory cache. All methods are safe for
// concurrent use, but the multi-step ensure-or-create sequences built on
// top of it are not atomic: two concurrent flows for the same identity
// can both miss and provision duplicate provider resources.
type Store struct {
	mu sync.RWMutex

	customerIDByEmail           map[string]string
	cryptoAccountIDByEmailChain map[string]string
	fiatAccountIDByEmail        map[string]string
	plansByID                   map[string]plans.Plan
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{
		customerIDByEmail:           make(map[string]string),
		cryptoAccountIDByEmailChain: make(map[string]string),
		fiatAccountIDByEmail:        make(map[string]string),
		plansByID:                   make(map[string]plans.Plan),
	}
}

// CustomerID returns the cached provider customer id for an email.
func (s *Store) CustomerID(email string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.customerIDByEmail[email]
	return id, ok
}

// SetCustomerID caches the provider customer id for an email.
func (s *Store) SetCustomerID(email, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customerIDByEmail[email] = customerID
}

// CryptoAccountID returns the cached crypto payment account id for an
// email and chain pair.
func (s *Store) CryptoAccountID(email string, chain chains.Chain) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.cryptoAccountIDByEmailChain[cryptoKey(email, chain)]
	return id, ok
}

// SetCryptoAccountID caches the crypto payment account id for an email
// and chain pair.
func (s *Store) SetCryptoAccountID(email string, chain chains.Chain, accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cryptoAccountIDByEmailChain[cryptoKey(email, chain)] = accountID
}

// FiatAccountID returns the cached fiat payment account id for an email.
func (s *Store) FiatAccountID(email string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.fiatAccountIDByEmail[email]
	return id, ok
}

// SetFiatAccountID caches the fiat payment account id for an email.
func (s *Store) SetFiatAccountID(email, accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fiatAccountIDByEmail[email] = accountID
}

// Plan returns a copy of the stored plan for an id. Mutating the copy
// does not affect the stored record until SetPlan is called.
func (s *Store) Plan(planID string) (plans.Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plansByID[planID]
	if !ok {
		return plans.Plan{}, false
	}
	return plan.Clone(), true
}

// SetPlan stores a plan by its id, replacing any previous record.
func (s *Store) SetPlan(plan plans.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plansByID[plan.PlanID] = plan.Clone()
}

// DeletePlan removes a plan by id.
func (s *Store) DeletePlan(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plansByID, planID)
}

// Plans returns a snapshot of all stored plans.
func (s *Store) Plans() []plans.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]plans.Plan, 0, len(s.plansByID))
	for _, plan := range s.plansByID {
		out = append(out, plan.Clone())
	}
	return out
}

// ClearAll empties every map. Used by tests and the debug endpoint.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customerIDByEmail = make(map[string]string)
	s.cryptoAccountIDByEmailChain = make(map[string]string)
	s.fiatAccountIDByEmail = make(map[string]string)
	s.plansByID = make(map[string]plans.Plan)
}

func cryptoKey(email string, chain chains.Chain) string {
	return email + ":" + string(chain)
}
