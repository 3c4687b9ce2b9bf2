package store

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "qcube.GO/model/entity"
)

// Fixed collection keys.
const (
	KeyInventory = "erp_inventario"
	KeyOrders    = "erp_ordenes"
	KeyCustomers = "erp_clientes"
	KeyMovements = "erp_movimientos"
)

// StoreRepository persists whole collections as JSON values keyed by the
// fixed identifiers above. Load falls back to whatever the caller already
// put in dest; Save replaces the stored value entirely.
type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) (*StoreRepository, error) {
	if err := db.AutoMigrate(&entity.StoreEntry{}); err != nil {
		return nil, err
	}
	return &StoreRepository{db: db}, nil
}

// Load decodes the stored collection into dest. Returns false (leaving
// dest untouched) when the key is missing or the payload does not decode.
func (r *StoreRepository) Load(key string, dest interface{}) bool {
	var row entity.StoreEntry
	if err := r.db.First(&row, "store_key = ?", key).Error; err != nil {
		return false
	}
	if err := json.Unmarshal(row.Value, dest); err != nil {
		log.Printf("store: invalid payload for %s, using default: %v", key, err)
		return false
	}
	return true
}

// Save upserts the collection under key.
func (r *StoreRepository) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	row := entity.StoreEntry{Key: key, Value: datatypes.JSON(data)}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"store_value", "updated_at"}),
	}).Create(&row).Error
}
