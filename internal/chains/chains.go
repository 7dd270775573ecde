// Package chains defines the blockchain networks the service understands
// and validates chain choices against the fast cross-chain settlement path.
package chains

import "fmt"

// Chain identifies a blockchain network in provider wire format.
type Chain string

const (
	Ethereum  Chain = "ETHEREUM"
	Base      Chain = "BASE"
	Arbitrum  Chain = "ARBITRUM"
	Polygon   Chain = "POLYGON"
	Avalanche Chain = "AVALANCHE"
	Optimism  Chain = "OPTIMISM"
)

// fastBridgeChains is the fixed allow-list of chains reachable through the
// CCTP v2 Fast settlement path.
var fastBridgeChains = map[Chain]struct{}{
	Ethereum:  {},
	Base:      {},
	Arbitrum:  {},
	Polygon:   {},
	Avalanche: {},
	Optimism:  {},
}

// IsFastBridgeSupported reports whether the chain is on the fast bridge
// allow-list.
func IsFastBridgeSupported(chain Chain) bool {
	_, ok := fastBridgeChains[chain]
	return ok
}

// FastBridgeSupported returns the allow-list in a stable order.
func FastBridgeSupported() []Chain {
	return []Chain{Ethereum, Base, Arbitrum, Polygon, Avalanche, Optimism}
}

// CompatibilityParams are the chain choices to validate. SenderSourceChain
// is optional; ReceiverDestChain is always checked.
type CompatibilityParams struct {
	SenderSourceChain Chain
	ReceiverDestChain Chain
}

// CompatibilityResult reports validation outcome. Errors contains one
// message per incompatible chain.
type CompatibilityResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateCompatibility checks the supplied chain choices against the fast
// bridge allow-list. Pure: no I/O, no side effects.
func ValidateCompatibility(params CompatibilityParams) CompatibilityResult {
	var errs []string

	if !IsFastBridgeSupported(params.ReceiverDestChain) {
		errs = append(errs, fmt.Sprintf("receiver's chosen chain (%s) is not supported by CCTP v2 Fast", params.ReceiverDestChain))
	}

	if params.SenderSourceChain != "" && !IsFastBridgeSupported(params.SenderSourceChain) {
		errs = append(errs, fmt.Sprintf("sender's source chain (%s) is not supported by CCTP v2 Fast", params.SenderSourceChain))
	}

	return CompatibilityResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
