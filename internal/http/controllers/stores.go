package controllers

import (
	"context"

	"suviet_server/internal/models"
	"suviet_server/internal/popup"
	"suviet_server/internal/services"
)

// SettingStore is the settings persistence the controllers need.
// services.SettingService implements it.
type SettingStore interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (models.Setting, error)
	Upsert(ctx context.Context, key, value string) (models.Setting, error)
	PopupSettings(ctx context.Context, defaultCooldown float64) (popup.Settings, error)
}

// TimelineStore is the period/event persistence the controllers need.
// services.TimelineService implements it.
type TimelineStore interface {
	ListPeriods(ctx context.Context) ([]models.Period, error)
	GetPeriod(ctx context.Context, slug string) (models.Period, error)
	CreatePeriod(ctx context.Context, in services.PeriodInput) (models.Period, error)
	UpdatePeriod(ctx context.Context, slug string, in services.PeriodInput) (models.Period, error)
	DeletePeriod(ctx context.Context, slug string) error
	ListEvents(ctx context.Context, periodSlug string) ([]models.Event, error)
	GetEvent(ctx context.Context, id uint) (models.Event, error)
	CreateEvent(ctx context.Context, in services.EventInput) (models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	ListEventTypes(ctx context.Context) ([]models.EventType, error)
	CreateEventType(ctx context.Context, in services.EventTypeInput) (models.EventType, error)
}

// SettingBroadcaster pushes setting changes to connected clients.
type SettingBroadcaster interface {
	BroadcastSettingUpdate(setting models.Setting)
}

var (
	_ SettingStore  = (*services.SettingService)(nil)
	_ TimelineStore = (*services.TimelineService)(nil)
)
