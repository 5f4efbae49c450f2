package models

import (
	"time"

	"suviet_server/internal/popup"
	"suviet_server/pkg/colors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is a single key/value site setting managed from the admin CMS.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// DefaultSettings are seeded on start-up when missing. The popup ships disabled.
func DefaultSettings() []Setting {
	return []Setting{
		{Key: popup.KeyEnabled, Value: "false"},
		{Key: popup.KeyNotification, Value: ""},
		{Key: popup.KeyTitle, Value: "Thông báo"},
		{Key: popup.KeyDuration, Value: "24"},
	}
}

// EnsureDefaultSettings inserts every default setting that does not exist yet.
// Existing values are never overwritten.
func EnsureDefaultSettings(db *gorm.DB) error {
	defaults := DefaultSettings()
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults)
	if result.Error != nil {
		colors.PrintError("Failed to seed default settings: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected > 0 {
		colors.PrintSuccess("Seeded %d default settings", result.RowsAffected)
	}
	return nil
}
