package models

import (
	"time"
)

// EventType tags an event (battle, dynasty change, culture...) with a display color.
type EventType struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Name  string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Color string `json:"color" gorm:"size:20"`
}

func (EventType) TableName() string {
	return "event_types"
}

// Event is a dated historical occurrence belonging to exactly one Period.
// Year is free text so that ranges and BCE dates ("179 TCN") survive as written.
type Event struct {
	ID          uint        `json:"id" gorm:"primarykey"`
	Title       string      `json:"title" gorm:"size:255;not null"`
	Year        string      `json:"year" gorm:"size:50"`
	Description string      `json:"description" gorm:"type:text"`
	PeriodID    uint        `json:"period_id" gorm:"index;not null"`
	ImageURL    *string     `json:"image_url,omitempty" gorm:"type:text"`
	EventTypes  []EventType `json:"event_types" gorm:"many2many:event_event_types;"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
