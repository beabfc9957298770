// Package kvstore provides the durable string-keyed store backing the price
// cache. Values are numeric or timestamps and survive process restarts.
package kvstore

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key. A key holds either a numeric value or a
// timestamp, depending on which setter wrote it.
type Entry struct {
	Key          string `gorm:"primaryKey"`
	NumericValue float64
	TimeValue    *time.Time
	UpdatedAt    time.Time
}

// Store is a durable key-value store over a gorm database.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db. The Entry schema must already be migrated.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SetNumeric upserts a numeric value under key.
func (s *Store) SetNumeric(key string, value float64) error {
	entry := Entry{Key: key, NumericValue: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"numeric_value", "updated_at"}),
	}).Create(&entry).Error
}

// Numeric returns the numeric value stored under key, if any.
func (s *Store) Numeric(key string) (float64, bool) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: kvstore read failed for %s: %v", key, err)
		}
		return 0, false
	}
	return entry.NumericValue, true
}

// SetTime upserts a timestamp under key.
func (s *Store) SetTime(key string, value time.Time) error {
	entry := Entry{Key: key, TimeValue: &value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"time_value", "updated_at"}),
	}).Create(&entry).Error
}

// Time returns the timestamp stored under key, if any.
func (s *Store) Time(key string) (time.Time, bool) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: kvstore read failed for %s: %v", key, err)
		}
		return time.Time{}, false
	}
	if entry.TimeValue == nil {
		return time.Time{}, false
	}
	return *entry.TimeValue, true
}
