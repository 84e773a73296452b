package sqlstore

import "time"

// BadPairRecord is one persisted exclusion list entry.
// PairKey is order independent, so (A,B) and (B,A) collide on the unique index.
type BadPairRecord struct {
	ID uint `gorm:"primaryKey"`

	SymbolA string `gorm:"type:varchar(64);not null"`
	SymbolB string `gorm:"type:varchar(64);not null"`
	PairKey string `gorm:"type:varchar(130);not null;uniqueIndex:idx_bad_pair_key"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (BadPairRecord) TableName() string {
	return "bad_pair_record"
}
