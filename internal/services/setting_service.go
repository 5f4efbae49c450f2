package services

import (
	"context"
	"errors"
	"fmt"

	"suviet_server/internal/models"
	"suviet_server/internal/popup"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingService handles database operations for site settings
type SettingService struct {
	db *gorm.DB
}

// NewSettingService creates a new setting service
func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// List returns every setting ordered by key
func (s *SettingService) List(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Get returns a single setting by key
func (s *SettingService) Get(ctx context.Context, key string) (models.Setting, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Setting{}, ErrSettingNotFound
	}
	if err != nil {
		return models.Setting{}, fmt.Errorf("get setting %s: %w", key, err)
	}
	return setting, nil
}

// Upsert creates the setting or replaces its value
func (s *SettingService) Upsert(ctx context.Context, key, value string) (models.Setting, error) {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return models.Setting{}, fmt.Errorf("save setting %s: %w", key, err)
	}
	return s.Get(ctx, key)
}

// Values returns the values of the requested keys. Unknown keys are absent
// from the map.
func (s *SettingService) Values(ctx context.Context, keys ...string) (map[string]string, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// PopupSettings parses the popup settings the same way the site does
func (s *SettingService) PopupSettings(ctx context.Context, defaultCooldown float64) (popup.Settings, error) {
	values, err := s.Values(ctx, popup.SettingKeys...)
	if err != nil {
		return popup.Settings{}, err
	}
	return popup.ParseSettings(values, defaultCooldown), nil
}
