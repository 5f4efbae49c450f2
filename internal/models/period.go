package models

import (
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Period is a named historical era. Periods are shown in Position order.
type Period struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Slug        string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Timeframe   string    `json:"timeframe" gorm:"size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Position    int       `json:"position" gorm:"default:0;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Period) TableName() string {
	return "periods"
}

// ValidSlug reports whether s is a lowercase URL-safe slug such as "nha-tran".
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
