package badpair

import "context"

// Store persists the bad pair list between runs.
// Load returns the previously saved pairs in order. Save is append-only in
// spirit: implementations keep every pair they already hold.
type Store interface {
	Load(ctx context.Context) ([]Pair, error)
	Save(ctx context.Context, pairs []Pair) error
}
