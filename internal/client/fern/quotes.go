package fern

import (
	"context"
	"fmt"
)

// CreateQuote prices a source→destination conversion for a customer. The
// returned quote is ephemeral and must be consumed by CreateTransaction
// before it expires; an expired quote requires pricing afresh.
func (c *Client) CreateQuote(ctx context.Context, params QuoteParams) (*Quote, error) {
	var payload quoteRequest
	payload.CustomerID = params.CustomerID
	payload.Source.SourcePaymentAccountID = params.Source.PaymentAccountID
	payload.Source.SourceCurrency = params.Source.Currency
	payload.Source.SourcePaymentMethod = params.Source.PaymentMethod
	payload.Source.SourceAmount = params.Source.Amount
	payload.Destination.DestinationPaymentAccountID = params.Destination.PaymentAccountID
	payload.Destination.DestinationPaymentMethod = params.Destination.PaymentMethod
	payload.Destination.DestinationCurrency = params.Destination.Currency

	if params.DeveloperFeeUsd != "" {
		payload.DeveloperFee = &developerFee{
			DeveloperFeeType:   "USD",
			DeveloperFeeAmount: params.DeveloperFeeUsd,
		}
	}

	var quote Quote
	if err := c.post(ctx, "/quotes", payload, &quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	return &quote, nil
}
