package fern

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateTransaction commits a quote into a transaction. A fresh
// idempotency key is generated per call, so the provider deduplicates
// retried deliveries of this single request but not caller-level retries
// of the same logical step.
func (c *Client) CreateTransaction(ctx context.Context, quoteID, correlationID string) (*Transaction, error) {
	return c.createTransaction(ctx, quoteID, correlationID, uuid.NewString())
}

// CreateTransactionWithKey commits a quote using a caller-supplied
// idempotency key, letting the caller make its own retries
// provider-deduplicated.
func (c *Client) CreateTransactionWithKey(ctx context.Context, quoteID, correlationID, idempotencyKey string) (*Transaction, error) {
	if idempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key is required")
	}
	return c.createTransaction(ctx, quoteID, correlationID, idempotencyKey)
}

func (c *Client) createTransaction(ctx context.Context, quoteID, correlationID, idempotencyKey string) (*Transaction, error) {
	payload := createTransactionRequest{
		QuoteID:       quoteID,
		CorrelationID: correlationID,
	}

	var tx Transaction
	err := c.request(ctx, http.MethodPost, "/transactions", payload, idempotencyKey, &tx)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction for quote %s: %w", quoteID, err)
	}

	c.logger.Info("Transaction created",
		zap.String("transaction_id", tx.TransactionID),
		zap.String("quote_id", quoteID),
		zap.String("status", string(tx.TransactionStatus)))
	return &tx, nil
}

// GetTransaction polls the provider for the current state of a
// transaction. Results are never cached locally.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	var tx Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/%s", transactionID), &tx); err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return &tx, nil
}
