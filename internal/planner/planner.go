// Package planner turns natural-language plan descriptions into
// structured schedules via a text-completion service.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/planpay/planpay-api/internal/client/openai"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/plans"
)

const (
	completionTemperature = 0.1
	completionMaxTokens   = 200
)

const systemPrompt = "You are a payment plan parser. Extract structured data from natural language descriptions. " +
	"Return only valid JSON with a concise title (string, max 50 chars), numeric values for frequency (in seconds), " +
	"amountPerTransaction (unitless), totalAmount (unitless), numberOfTransactions (integer), " +
	"startTimeOffset (seconds from plan acceptance), and endTimeOffset (seconds from plan acceptance)."

// Completer is the text-completion capability the parser depends on.
type Completer interface {
	Complete(ctx context.Context, params openai.CompletionParams) (string, error)
}

// ParseError means the completion response did not contain one
// well-formed JSON object with all required numeric fields.
type ParseError struct {
	Reason  string
	Content string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse plan description: %s", e.Reason)
}

// Parser extracts ParsedPlan values from free-text descriptions.
type Parser struct {
	completer Completer
}

// NewParser builds a Parser on the given completion client.
func NewParser(completer Completer) *Parser {
	return &Parser{completer: completer}
}

// jsonObjectPattern grabs the first {...} span; completions sometimes
// wrap the object in prose or code fences.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type parsedResponse struct {
	Title                string   `json:"title"`
	Frequency            *int64   `json:"frequency"`
	AmountPerTransaction *float64 `json:"amountPerTransaction"`
	TotalAmount          *float64 `json:"totalAmount"`
	NumberOfTransactions *int64   `json:"numberOfTransactions"`
	StartTimeOffset      *int64   `json:"startTimeOffset"`
	EndTimeOffset        *int64   `json:"endTimeOffset"`
}

// Parse sends the description through the completion service and decodes
// the structured result. It returns a ParseError when the response does
// not contain a well-formed JSON object with all required numeric
// fields; it does not substitute defaults.
func (p *Parser) Parse(ctx context.Context, description string) (plans.ParsedPlan, error) {
	if strings.TrimSpace(description) == "" {
		return plans.ParsedPlan{}, &ParseError{Reason: "description is empty"}
	}

	content, err := p.completer.Complete(ctx, openai.CompletionParams{
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(description),
		Temperature:  completionTemperature,
		MaxTokens:    completionMaxTokens,
	})
	if err != nil {
		return plans.ParsedPlan{}, err
	}

	parsed, err := decodeContent(content)
	if err != nil {
		return plans.ParsedPlan{}, err
	}

	if unresolved := parsed.UnresolvedFields(); len(unresolved) > 0 {
		logger.Warn("description left critical fields unresolved",
			zap.Strings("fields", unresolved))
	}
	return parsed, nil
}

// ParseOrDefault behaves like Parse but falls back to DefaultParsedPlan
// when the completion cannot be parsed. Completion transport failures
// still propagate.
func (p *Parser) ParseOrDefault(ctx context.Context, description string) (plans.ParsedPlan, error) {
	parsed, err := p.Parse(ctx, description)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			logger.Warn("falling back to default plan",
				zap.String("reason", parseErr.Reason))
			return plans.DefaultParsedPlan, nil
		}
		return plans.ParsedPlan{}, err
	}
	return parsed, nil
}

func decodeContent(content string) (plans.ParsedPlan, error) {
	candidate := jsonObjectPattern.FindString(content)
	if candidate == "" {
		candidate = content
	}

	var raw parsedResponse
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return plans.ParsedPlan{}, &ParseError{Reason: "response is not a JSON object", Content: content}
	}

	var missing []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"frequency", raw.Frequency != nil},
		{"amountPerTransaction", raw.AmountPerTransaction != nil},
		{"totalAmount", raw.TotalAmount != nil},
		{"numberOfTransactions", raw.NumberOfTransactions != nil},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return plans.ParsedPlan{}, &ParseError{
			Reason:  fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			Content: content,
		}
	}

	parsed := plans.ParsedPlan{
		Title:                strings.TrimSpace(raw.Title),
		Frequency:            *raw.Frequency,
		AmountPerTransaction: *raw.AmountPerTransaction,
		TotalAmount:          *raw.TotalAmount,
		NumberOfTransactions: *raw.NumberOfTransactions,
	}
	if parsed.Title == "" {
		parsed.Title = plans.DefaultParsedPlan.Title
	}
	if raw.StartTimeOffset != nil {
		parsed.StartTimeOffset = *raw.StartTimeOffset
	}
	if raw.EndTimeOffset != nil {
		parsed.EndTimeOffset = *raw.EndTimeOffset
	} else {
		parsed.EndTimeOffset = plans.Unknown
	}
	return parsed, nil
}

func buildUserPrompt(description string) string {
	var b strings.Builder
	b.WriteString("Parse this payment plan description and extract the following information in JSON format:\n")
	fmt.Fprintf(&b, "Description: %q\n\n", description)
	b.WriteString("Return only a JSON object with these fields:\n")
	b.WriteString("- title: A concise, descriptive title for the payment plan (max 50 characters)\n")
	b.WriteString("- frequency: Frequency in seconds (e.g., 86400 for daily, 604800 for weekly, 2592000 for monthly). Return -1 if frequency cannot be determined.\n")
	b.WriteString("- amountPerTransaction: Amount per payment as a unitless number (e.g., 0.1, 50, 100). Return -1 if amount cannot be determined.\n")
	b.WriteString("- totalAmount: Total amount for all transactions (amountPerTransaction * numberOfTransactions). Return -1 if cannot be calculated.\n")
	b.WriteString("- numberOfTransactions: Total number of transactions to be made. Return -1 if cannot be determined.\n")
	b.WriteString("- startTimeOffset: Start time offset in seconds from plan acceptance (0 for immediate start, 86400 for start tomorrow, etc.). Return 0 if not specified.\n")
	b.WriteString("- endTimeOffset: End time offset in seconds from plan acceptance (e.g., 2592000 for 30 days from acceptance, 604800 for 1 week from acceptance). Return -1 if cannot be determined.\n\n")
	b.WriteString(`Example response: {"title": "Weekly Rent Split", "frequency": 604800, "amountPerTransaction": 0.1, "totalAmount": 0.5, "numberOfTransactions": 5, "startTimeOffset": 0, "endTimeOffset": 2592000}`)
	return b.String()
}
