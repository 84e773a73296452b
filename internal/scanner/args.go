package scanner

import (
	"errors"
	"fmt"
	"math/big"

	"arbscanner/internal/token"
)

// ErrUsage means the positional arguments were wrong; print Usage and exit.
var ErrUsage = errors.New("wrong number of arguments")

const usage = `Usage: scanner <start_token> <amount> <coin list name>
Example: scanner dai 1000000000000000000000 gemini
`

func Usage() string {
	return usage
}

// Args are the validated positional arguments of one run.
type Args struct {
	Start    token.Token
	Amount   *big.Int
	ListName string
}

// ParseArgs validates <start_token> <amount> <coin list name> (program name excluded).
func ParseArgs(args []string) (Args, error) {
	if len(args) != 3 {
		return Args{}, ErrUsage
	}

	start, err := token.Resolve(args[0])
	if err != nil {
		return Args{}, err
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return Args{}, err
	}

	if args[2] == "" {
		return Args{}, fmt.Errorf("empty coin list name")
	}

	return Args{Start: start, Amount: amount, ListName: args[2]}, nil
}

// parseAmount accepts plain base-10 digits only; no sign, no separators.
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("invalid amount: empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid amount: %q", s)
		}
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", s)
	}
	return amount, nil
}
