package fern

import (
	"context"
	"fmt"

	httpclient "github.com/planpay/planpay-api/internal/client/http"
	"go.uber.org/zap"
)

// EnsureCustomer resolves an email to a verified-or-pending provider
// customer id, creating the customer only when neither the cache nor the
// provider knows the email. Each step short-circuits on success:
//
//  1. cached id for the email
//  2. provider lookup filtered by email
//  3. create a minimal customer
//  4. on an "already exists" rejection, re-query by email
//
// Only the already-exists failure is recovered locally; everything else
// propagates unchanged.
func (c *Client) EnsureCustomer(ctx context.Context, params EnsureCustomerParams) (*Customer, error) {
	if params.Email == "" {
		return nil, fmt.Errorf("email is required to ensure a customer")
	}

	if cached, ok := c.store.CustomerID(params.Email); ok {
		return &Customer{CustomerID: cached}, nil
	}

	if existing, err := c.findCustomerByEmail(ctx, params.Email); err == nil && existing != nil {
		c.store.SetCustomerID(params.Email, existing.CustomerID)
		return existing, nil
	} else if err != nil {
		// Lookup failures are not fatal here: creation below is the
		// authoritative attempt.
		c.logger.Warn("Could not query existing customers, will try to create",
			zap.String("email", params.Email),
			zap.Error(err))
	}

	customerType := params.CustomerType
	if customerType == "" {
		customerType = CustomerTypeIndividual
	}

	var created createCustomerResponse
	err := c.post(ctx, "/customers", createCustomerRequest{
		CustomerType: customerType,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		BusinessName: params.BusinessName,
		Email:        params.Email,
	}, &created)
	if err == nil {
		c.store.SetCustomerID(params.Email, created.CustomerID)
		c.logger.Info("Customer created",
			zap.String("email", params.Email),
			zap.String("customer_id", created.CustomerID))
		return &Customer{CustomerID: created.CustomerID, KYCLink: created.KYCLink}, nil
	}

	if isAlreadyExists(err) {
		existing, lookupErr := c.findCustomerByEmail(ctx, params.Email)
		if lookupErr == nil && existing != nil {
			c.store.SetCustomerID(params.Email, existing.CustomerID)
			return existing, nil
		}
		if lookupErr != nil {
			c.logger.Error("Failed to re-query customer after already-exists rejection",
				zap.String("email", params.Email),
				zap.Error(lookupErr))
		}
	}

	return nil, fmt.Errorf("failed to ensure customer for %s: %w", params.Email, err)
}

// findCustomerByEmail queries the provider for customers with the given
// email and returns the first match, or nil when there is none. When the
// provider holds duplicates the first result is treated as canonical.
func (c *Client) findCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	var listed listCustomersResponse
	err := c.get(ctx, "/customers", &listed, httpclient.WithQueryParam("email", email))
	if err != nil {
		return nil, err
	}
	if len(listed.Customers) == 0 {
		return nil, nil
	}
	if len(listed.Customers) > 1 {
		c.logger.Warn("Multiple provider customers share one email, using first match",
			zap.String("email", email),
			zap.Int("count", len(listed.Customers)))
	}
	return &listed.Customers[0], nil
}

// GetCustomer fetches the current provider record for a customer id,
// including verification status and the hosted KYC link.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, fmt.Sprintf("/customers/%s", customerID), &customer); err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return &customer, nil
}

// StartKycCheck reports the customer's verification state and hosted
// verification link. When the testing bypass is configured the provider
// is not called and the result is flagged as bypassed.
func (c *Client) StartKycCheck(ctx context.Context, customerID string) (*KycCheck, error) {
	if c.testing.BypassKYC {
		c.logger.Warn("KYC verification bypassed by testing configuration",
			zap.String("customer_id", customerID))
		return &KycCheck{
			CustomerID:     customerID,
			CustomerStatus: CustomerStatus(c.testing.MockKYCStatus),
			Bypassed:       true,
		}, nil
	}

	customer, err := c.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	status := customer.CustomerStatus
	if status == "" {
		status = CustomerStatusUnknown
	}
	return &KycCheck{
		CustomerID:     customerID,
		CustomerStatus: status,
		KYCLink:        customer.KYCLink,
	}, nil
}
