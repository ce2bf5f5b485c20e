package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRecord struct {
	Namespace string `gorm:"primaryKey;size:64"`
	SlotKey   string `gorm:"primaryKey;size:128"`
	Value     []byte
	UpdatedAt time.Time
}

func (slotRecord) TableName() string { return "cart_slots" }

// AutoMigrateSQLite creates the slot table used by SQLiteStore.
func AutoMigrateSQLite(db *gorm.DB) error {
	return db.AutoMigrate(&slotRecord{})
}

// SQLiteStore is the device-local store: one gorm-managed sqlite file.
type SQLiteStore struct {
	db        *gorm.DB
	namespace string
}

func NewSQLiteStore(db *gorm.DB, namespace string) *SQLiteStore {
	return &SQLiteStore{db: db, namespace: namespace}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec slotRecord
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND slot_key = ?", s.namespace, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	rec := slotRecord{
		Namespace: s.namespace,
		SlotKey:   key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("namespace = ? AND slot_key = ?", s.namespace, key).
		Delete(&slotRecord{}).Error
}
