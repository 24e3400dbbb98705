package models

import "time"

// Audit entities.
const (
	EntityAsset  = "asset"
	EntitySetup  = "setup"
	EntityImport = "import"
)

// Audit actions.
const (
	ActionLookup     = "lookup"
	ActionUpdate     = "update"
	ActionBulkUpdate = "bulk_update"
	ActionAdd        = "add"
	ActionDelete     = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	UserName  string `gorm:"size:255;not null"`
	Entity    string `gorm:"size:50;not null"` // "asset", "setup", "import"
	EntityKey string `gorm:"size:255;index"`   // registration number, list key, file name
	Action    string `gorm:"size:50;not null"`
	Details   string `gorm:"type:text"`
}
