package entity

import "gorm.io/datatypes"

// StoreEntry represents the erp_store table: one whole collection
// serialized as JSON per fixed key.
type StoreEntry struct {
	Key       string         `gorm:"column:store_key;type:varchar(64);primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"column:store_value" json:"value"`
	UpdatedAt int64          `gorm:"column:updated_at;autoUpdateTime:milli" json:"updated_at"`
}

func (StoreEntry) TableName() string {
	return "erp_store"
}
