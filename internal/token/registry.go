package token

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownStartingToken = errors.New("invalid starting token")

// startingTokens is the fixed set a round trip may begin from.
var startingTokens = map[string]Token{
	"dai":  {Symbol: "DAI", ChainID: 1, Decimals: 18, Address: "0x6b175474e89094c44da98b954eedeac495271d0f"},
	"crv":  {Symbol: "CRV", ChainID: 1, Decimals: 18, Address: "0xd533a949740bb3306d119cc777fa900ba034cd52"},
	"weth": {Symbol: "WETH", ChainID: 1, Decimals: 18, Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"},
	"aave": {Symbol: "AAVE", ChainID: 1, Decimals: 18, Address: "0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9"},
	"usdc": {Symbol: "USDC", ChainID: 1, Decimals: 6, Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
	"mkr":  {Symbol: "MKR", ChainID: 1, Decimals: 18, Address: "0x9f8f72aa9304c8b593d555f12ef6589cc3a579a2"},
	"mana": {Symbol: "MANA", ChainID: 1, Decimals: 18, Address: "0x0f5d2fb29fb7d3cfee444a200298f468908cc942"},
	"ampl": {Symbol: "AMPL", ChainID: 1, Decimals: 9, Address: "0xd46ba6d942050d489dbd938a2c909a5d5039a161"},
}

// Keys returns the supported starting token keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(startingTokens))
	for k := range startingTokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve looks up a starting token by its key ("dai", "weth", ...).
func Resolve(key string) (Token, error) {
	t, ok := startingTokens[key]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s. Must be in (%s)", ErrUnknownStartingToken, key, strings.Join(Keys(), ", "))
	}
	return t, nil
}
