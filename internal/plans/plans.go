// Package plans defines the payment plan model: a transfer arrangement
// between a sender and a receiver bridged through an agent-controlled
// intermediary wallet.
package plans

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"github.com/planpay/planpay-api/internal/chains"
)

// Sentinel values used by the description parser. Unknown means the field
// could not be determined from the description; Immediate is the zero
// start offset.
const (
	Unknown   = -1
	Immediate = 0
)

// DefaultFrequencySeconds is one week, the fallback cadence when a
// description does not state one.
const DefaultFrequencySeconds = 604800

// AgentWallet is the custodial intermediary destination that temporarily
// holds bridged funds between on-ramp and off-ramp.
type AgentWallet struct {
	Chain   chains.Chain `json:"chain"`
	Address string       `json:"address"`
}

// Sender is the fiat-paying party of a plan.
type Sender struct {
	Email             string       `json:"email"`
	ChosenSourceChain chains.Chain `json:"chosenSourceChain,omitempty"`
}

// Receiver is the party cashing out. When AutoCashOut is set, funds are
// forwarded to the provider automatically instead of requiring the
// receiver to send them manually.
type Receiver struct {
	Email           string       `json:"email"`
	ChosenDestChain chains.Chain `json:"chosenDestChain"`
	AutoCashOut     bool         `json:"autoCashOut"`
}

// Plan identifies a transfer arrangement. AmountUsd is kept as a decimal
// string to avoid floating-point error in money values.
type Plan struct {
	PlanID      string      `json:"planId"`
	Title       string      `json:"title,omitempty"`
	AgentWallet AgentWallet `json:"agentWallet"`
	Sender      *Sender     `json:"sender,omitempty"`
	Receiver    *Receiver   `json:"receiver,omitempty"`
	AmountUsd   string      `json:"amountUsd"`
}

// Clone returns a copy of the plan that shares no pointers with the
// receiver, so callers can mutate one without affecting the other.
func (p Plan) Clone() Plan {
	out := p
	if p.Sender != nil {
		sender := *p.Sender
		out.Sender = &sender
	}
	if p.Receiver != nil {
		receiver := *p.Receiver
		out.Receiver = &receiver
	}
	return out
}

// ParsedPlan is the structured result of parsing a natural-language plan
// description. Numeric fields use Unknown (-1) when the description did
// not determine them; time offsets are seconds from plan acceptance.
type ParsedPlan struct {
	Title                string  `json:"title"`
	Frequency            int64   `json:"frequency"`
	AmountPerTransaction float64 `json:"amountPerTransaction"`
	TotalAmount          float64 `json:"totalAmount"`
	NumberOfTransactions int64   `json:"numberOfTransactions"`
	StartTimeOffset      int64   `json:"startTimeOffset"`
	EndTimeOffset        int64   `json:"endTimeOffset"`
}

// DefaultParsedPlan is the fallback applied when the description parser
// cannot produce a usable result.
var DefaultParsedPlan = ParsedPlan{
	Title:                "Payment Plan",
	Frequency:            DefaultFrequencySeconds,
	AmountPerTransaction: 0.1,
	TotalAmount:          0.5,
	NumberOfTransactions: 5,
	StartTimeOffset:      Immediate,
	EndTimeOffset:        30 * 24 * 60 * 60,
}

// UnresolvedFields lists the critical fields the parser could not
// determine (still carrying the Unknown sentinel).
func (p ParsedPlan) UnresolvedFields() []string {
	var fields []string
	if p.Frequency == Unknown {
		fields = append(fields, "frequency")
	}
	if p.AmountPerTransaction == Unknown {
		fields = append(fields, "amountPerTransaction")
	}
	if p.NumberOfTransactions == Unknown {
		fields = append(fields, "numberOfTransactions")
	}
	if p.TotalAmount == Unknown {
		fields = append(fields, "totalAmount")
	}
	return fields
}

// NewPlanID generates a lexicographically sortable plan identifier.
func NewPlanID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return "plan_" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// FromParsedParams carries everything needed to build a Plan from parsed
// description data.
type FromParsedParams struct {
	PlanID             string
	Parsed             ParsedPlan
	SenderEmail        string
	ReceiverEmail      string
	AgentChain         chains.Chain
	AgentWalletAddress string
	ReceiverDestChain  chains.Chain
	AutoCashOut        bool
}

// FromParsed builds a Plan from parsed description data. The agent wallet
// address must already be provisioned; FromParsed only validates its shape.
func FromParsed(params FromParsedParams) (*Plan, error) {
	if params.PlanID == "" {
		params.PlanID = NewPlanID()
	}
	if params.SenderEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}
	if params.ReceiverEmail == "" {
		return nil, fmt.Errorf("receiver email is required")
	}
	if !common.IsHexAddress(params.AgentWalletAddress) {
		return nil, fmt.Errorf("agent wallet address %q is not a valid EVM address", params.AgentWalletAddress)
	}

	return &Plan{
		PlanID: params.PlanID,
		Title:  params.Parsed.Title,
		AgentWallet: AgentWallet{
			Chain:   params.AgentChain,
			Address: params.AgentWalletAddress,
		},
		Sender: &Sender{Email: params.SenderEmail},
		Receiver: &Receiver{
			Email:           params.ReceiverEmail,
			ChosenDestChain: params.ReceiverDestChain,
			AutoCashOut:     params.AutoCashOut,
		},
		AmountUsd: formatAmount(params.Parsed.TotalAmount),
	}, nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
