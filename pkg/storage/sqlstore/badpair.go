package sqlstore

import (
	"context"
	"fmt"

	"arbscanner/internal/badpair"

	"gorm.io/gorm/clause"
)

// BadPairStore keeps the exclusion list in a SQL table. Rows are only ever inserted.
type BadPairStore struct {
	client *Client
}

func NewBadPairStore(client *Client) *BadPairStore {
	return &BadPairStore{client: client}
}

// Load returns every pair in insertion order.
func (s *BadPairStore) Load(ctx context.Context) ([]badpair.Pair, error) {
	var records []BadPairRecord
	if err := s.client.DB.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load bad pairs: %w", err)
	}

	pairs := make([]badpair.Pair, 0, len(records))
	for _, r := range records {
		pairs = append(pairs, badpair.Pair{A: r.SymbolA, B: r.SymbolB})
	}
	return pairs, nil
}

// Save inserts the pairs that are not stored yet; existing rows are left untouched.
func (s *BadPairStore) Save(ctx context.Context, pairs []badpair.Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	unique := badpair.NewSet(pairs...).Pairs()
	records := make([]BadPairRecord, 0, len(unique))
	for _, p := range unique {
		records = append(records, ToBadPairRecord(p))
	}

	tx := s.client.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_key"}},
		DoNothing: true,
	}).Create(&records)
	if tx.Error != nil {
		return fmt.Errorf("save bad pairs: %w", tx.Error)
	}
	return nil
}

// ToBadPairRecord converts a pair into its table row.
func ToBadPairRecord(p badpair.Pair) BadPairRecord {
	return BadPairRecord{
		SymbolA: p.A,
		SymbolB: p.B,
		PairKey: p.Key(),
	}
}
