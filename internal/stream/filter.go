package stream

import "pumpScope/internal/geyser"

// DefaultFilterName names the transaction filter when none is configured.
const DefaultFilterName = "client"

// Config describes what one session subscribes to.
type Config struct {
	Program    string
	Commitment geyser.Commitment
	FilterName string
}

// BuildFilter returns a subscription for non-vote, successful transactions
// that reference the program.
func BuildFilter(cfg Config) geyser.Filter {
	name := cfg.FilterName
	if name == "" {
		name = DefaultFilterName
	}
	return geyser.Filter{
		Commitment: cfg.Commitment,
		Transactions: map[string]geyser.TransactionFilter{
			name: {
				Vote:           false,
				Failed:         false,
				AccountInclude: []string{cfg.Program},
			},
		},
	}
}
