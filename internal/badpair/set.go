package badpair

import "encoding/json"

// Set is an append-only, ordered collection of bad pairs.
// Membership is symmetric: (A,B) and (B,A) are the same entry.
type Set struct {
	pairs []Pair
	index map[string]struct{}
}

// NewSet builds a Set from pairs, keeping their order and dropping repeats.
func NewSet(pairs ...Pair) *Set {
	s := &Set{index: make(map[string]struct{}, len(pairs))}
	for _, p := range pairs {
		s.Add(p.A, p.B)
	}
	return s
}

// Contains reports whether {a, b} is already known bad.
func (s *Set) Contains(a, b string) bool {
	_, ok := s.index[Pair{A: a, B: b}.Key()]
	return ok
}

// Add appends {a, b} unless it is already present and reports whether it was new.
func (s *Set) Add(a, b string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	p := Pair{A: a, B: b}
	if _, ok := s.index[p.Key()]; ok {
		return false
	}
	s.index[p.Key()] = struct{}{}
	s.pairs = append(s.pairs, p)
	return true
}

func (s *Set) Len() int {
	return len(s.pairs)
}

// Pairs returns a copy of the entries in insertion order.
func (s *Set) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

func (s *Set) MarshalJSON() ([]byte, error) {
	if s.pairs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.pairs)
}
