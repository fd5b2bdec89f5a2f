package stream

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ParseProgramIDs validates program addresses as base58 public keys. Blank
// entries are skipped and duplicates are kept once in first-seen order.
func ParseProgramIDs(inputs []string) ([]solana.PublicKey, error) {
	programs := make([]solana.PublicKey, 0, len(inputs))
	seen := make(map[solana.PublicKey]struct{}, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(input)
		if err != nil {
			return nil, fmt.Errorf("invalid program address %s: %w", input, err)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		programs = append(programs, key)
	}
	return programs, nil
}
