package badpair

import (
	"encoding/json"
	"fmt"
)

// Pair is an unordered pair of token symbols that failed to quote.
// It serializes as a two element JSON array: ["DAI","XYZ"].
type Pair struct {
	A string
	B string
}

// Key is the order-independent identity of the pair.
func (p Pair) Key() string {
	if p.A <= p.B {
		return p.A + "|" + p.B
	}
	return p.B + "|" + p.A
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.A, p.B})
}

func (p *Pair) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decode pair: want 2 symbols, got %d", len(raw))
	}
	p.A, p.B = raw[0], raw[1]
	return nil
}
