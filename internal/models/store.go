package models

import "time"

// StoreEntry is one key-value pair persisted by the SQL store backend.
type StoreEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:255"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName pins the table name used by the SQL store backend.
func (StoreEntry) TableName() string {
	return "store_entries"
}
