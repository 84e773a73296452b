package arbitrage

import (
	"fmt"
	"math/big"
)

var (
	pctScale  = big.NewInt(100_000) // percent * 1000, i.e. 3 decimal digits
	pctDigits = big.NewInt(1_000)
)

// PctIncrease returns (final-start)/start as a percentage with three decimals,
// e.g. "5.000". It never goes through floating point, so 30 digit amounts stay exact.
// The result is truncated toward zero. A zero start yields "inf".
func PctIncrease(start, final *big.Int) string {
	if start.Sign() == 0 {
		return "inf"
	}

	scaled := new(big.Int).Sub(final, start)
	scaled.Mul(scaled, pctScale)
	scaled.Quo(scaled, start)

	sign := ""
	if scaled.Sign() < 0 {
		sign = "-"
		scaled.Neg(scaled)
	}

	whole, frac := new(big.Int).QuoRem(scaled, pctDigits, new(big.Int))
	return fmt.Sprintf("%s%s.%03d", sign, whole.String(), frac.Int64())
}
