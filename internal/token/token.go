package token

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token is one entry of a token list.
type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Address  string `json:"address"`
	ChainID  int    `json:"chainId"`
	Decimals int    `json:"decimals,omitempty"`
}

// SameAddress reports whether a and b name the same contract, ignoring case.
func SameAddress(a, b string) bool {
	if common.IsHexAddress(a) && common.IsHexAddress(b) {
		return common.HexToAddress(a) == common.HexToAddress(b)
	}
	return strings.EqualFold(a, b)
}

// FormatUnits renders a raw on-chain amount in whole-token units, e.g. 1.5e18 wei -> "1.5".
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, int32(-decimals)).String()
}
