package services

import (
	"context"
	"errors"
	"fmt"

	"suviet_server/internal/models"

	"gorm.io/gorm"
)

// TimelineService handles database operations for periods, events and event types
type TimelineService struct {
	db *gorm.DB
}

// NewTimelineService creates a new timeline service
func NewTimelineService(db *gorm.DB) *TimelineService {
	return &TimelineService{db: db}
}

// PeriodInput is the writable part of a period
type PeriodInput struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Timeframe   string `json:"timeframe"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// EventInput is the writable part of an event
type EventInput struct {
	Title        string  `json:"title" binding:"required"`
	Year         string  `json:"year"`
	Description  string  `json:"description"`
	PeriodID     uint    `json:"period_id" binding:"required"`
	ImageURL     *string `json:"image_url"`
	EventTypeIDs []uint  `json:"event_type_ids"`
}

// EventTypeInput is the writable part of an event type
type EventTypeInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// ListPeriods returns all periods in display order
func (s *TimelineService) ListPeriods(ctx context.Context) ([]models.Period, error) {
	var periods []models.Period
	if err := s.db.WithContext(ctx).Order("position ASC, id ASC").Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

// GetPeriod returns a period by slug
func (s *TimelineService) GetPeriod(ctx context.Context, slug string) (models.Period, error) {
	var period models.Period
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Period{}, ErrPeriodNotFound
	}
	if err != nil {
		return models.Period{}, fmt.Errorf("get period %s: %w", slug, err)
	}
	return period, nil
}

// CreatePeriod inserts a new period
func (s *TimelineService) CreatePeriod(ctx context.Context, in PeriodInput) (models.Period, error) {
	if !models.ValidSlug(in.Slug) {
		return models.Period{}, ErrInvalidSlug
	}
	period := models.Period{
		Slug:        in.Slug,
		Name:        in.Name,
		Timeframe:   in.Timeframe,
		Description: in.Description,
		Position:    in.Position,
	}
	if err := s.db.WithContext(ctx).Create(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Period{}, ErrPeriodExists
		}
		return models.Period{}, fmt.Errorf("create period: %w", err)
	}
	return period, nil
}

// UpdatePeriod replaces the writable fields of the period identified by slug
func (s *TimelineService) UpdatePeriod(ctx context.Context, slug string, in PeriodInput) (models.Period, error) {
	if !models.ValidSlug(in.Slug) {
		return models.Period{}, ErrInvalidSlug
	}
	period, err := s.GetPeriod(ctx, slug)
	if err != nil {
		return models.Period{}, err
	}

	// Map form so that zero values (position 0, empty description) are written.
	updates := map[string]interface{}{
		"slug":        in.Slug,
		"name":        in.Name,
		"timeframe":   in.Timeframe,
		"description": in.Description,
		"position":    in.Position,
	}
	if err := s.db.WithContext(ctx).Model(&period).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Period{}, ErrPeriodExists
		}
		return models.Period{}, fmt.Errorf("update period %s: %w", slug, err)
	}
	return s.GetPeriod(ctx, in.Slug)
}

// DeletePeriod removes a period together with its events
func (s *TimelineService) DeletePeriod(ctx context.Context, slug string) error {
	period, err := s.GetPeriod(ctx, slug)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var events []models.Event
		if err := tx.Where("period_id = ?", period.ID).Find(&events).Error; err != nil {
			return fmt.Errorf("load events of %s: %w", slug, err)
		}
		for i := range events {
			if err := tx.Select("EventTypes").Delete(&events[i]).Error; err != nil {
				return fmt.Errorf("delete event %d: %w", events[i].ID, err)
			}
		}
		if err := tx.Delete(&period).Error; err != nil {
			return fmt.Errorf("delete period %s: %w", slug, err)
		}
		return nil
	})
}

// ListEvents returns events with their types, optionally limited to one period
func (s *TimelineService) ListEvents(ctx context.Context, periodSlug string) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Preload("EventTypes").Order("period_id ASC, id ASC")
	if periodSlug != "" {
		period, err := s.GetPeriod(ctx, periodSlug)
		if err != nil {
			return nil, err
		}
		query = query.Where("period_id = ?", period.ID)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent returns one event with its types
func (s *TimelineService) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Preload("EventTypes").First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return event, nil
}

// CreateEvent inserts an event under an existing period
func (s *TimelineService) CreateEvent(ctx context.Context, in EventInput) (models.Event, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Period{}).Where("id = ?", in.PeriodID).Count(&count).Error; err != nil {
		return models.Event{}, fmt.Errorf("check period %d: %w", in.PeriodID, err)
	}
	if count == 0 {
		return models.Event{}, ErrPeriodNotFound
	}

	event := models.Event{
		Title:       in.Title,
		Year:        in.Year,
		Description: in.Description,
		PeriodID:    in.PeriodID,
		ImageURL:    in.ImageURL,
	}
	if len(in.EventTypeIDs) > 0 {
		if err := db.Where("id IN ?", in.EventTypeIDs).Find(&event.EventTypes).Error; err != nil {
			return models.Event{}, fmt.Errorf("load event types: %w", err)
		}
	}

	if err := db.Create(&event).Error; err != nil {
		return models.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes an event and its type links
func (s *TimelineService) DeleteEvent(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Select("EventTypes").Delete(&models.Event{ID: id})
	if result.Error != nil {
		return fmt.Errorf("delete event %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ListEventTypes returns all event types by name
func (s *TimelineService) ListEventTypes(ctx context.Context) ([]models.EventType, error) {
	var types []models.EventType
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return types, nil
}

// CreateEventType inserts a new event type
func (s *TimelineService) CreateEventType(ctx context.Context, in EventTypeInput) (models.EventType, error) {
	eventType := models.EventType{Name: in.Name, Color: in.Color}
	if err := s.db.WithContext(ctx).Create(&eventType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.EventType{}, ErrEventTypeExists
		}
		return models.EventType{}, fmt.Errorf("create event type: %w", err)
	}
	return eventType, nil
}
