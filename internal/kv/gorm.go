package kv

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Slot maps to the roster_slots table.
type Slot struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

// TableName overrides the table name to 'roster_slots'.
func (Slot) TableName() string {
	return "roster_slots"
}

// GormStore keeps slots in a SQL table through gorm.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the slot table and wraps db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, ErrNotConfigured
	}
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("migrate roster_slots: %w", err)
	}
	return &GormStore{db: db}, nil
}

// OpenSQLite opens (creating if needed) a sqlite database at path.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), gormConfig())
}

// OpenPostgres connects to postgres using dsn.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
}

// Get reads the slot row for key.
func (s *GormStore) Get(key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, ErrNotConfigured
	}
	var slot Slot
	// Find instead of First: a missing slot is not worth a "record not found" log.
	result := s.db.Where("key = ?", key).Limit(1).Find(&slot)
	if result.Error != nil {
		return "", false, fmt.Errorf("read key %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return slot.Value, true, nil
}

// Set upserts the slot row for key.
func (s *GormStore) Set(key, value string) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	if err := validateKey(key); err != nil {
		return err
	}
	slot := Slot{Key: key, Value: value}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&slot)
	if result.Error != nil {
		return fmt.Errorf("write key %s: %w", key, result.Error)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
