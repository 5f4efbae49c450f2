package db

import (
	"fmt"

	"suviet_server/internal/models"
	"suviet_server/pkg/colors"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema and seeds default settings
func RunMigrations(db *gorm.DB) error {
	colors.PrintSubHeader("Running Database Migrations")

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return fmt.Errorf("settings table migration failed: %w", err)
	}
	colors.PrintSuccess("Settings table ready")

	if err := db.AutoMigrate(&models.Period{}); err != nil {
		return fmt.Errorf("periods table migration failed: %w", err)
	}
	colors.PrintSuccess("Periods table ready")

	// Event types before events: events reference them through the join table.
	if err := db.AutoMigrate(&models.EventType{}, &models.Event{}); err != nil {
		return fmt.Errorf("events table migration failed: %w", err)
	}
	colors.PrintSuccess("Events and event types tables ready")

	if err := addEventPeriodForeignKey(db); err != nil {
		return fmt.Errorf("failed to add event period constraint: %w", err)
	}

	if err := models.EnsureDefaultSettings(db); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	colors.PrintHeader("DATABASE MIGRATIONS COMPLETED SUCCESSFULLY")
	return nil
}

// addEventPeriodForeignKey links events.period_id to periods.id when the
// constraint is missing. Events are deleted with their period by the service.
func addEventPeriodForeignKey(db *gorm.DB) error {
	var exists int64
	db.Raw(`
		SELECT COUNT(*)
		FROM information_schema.table_constraints
		WHERE table_name = 'events'
		AND constraint_name = 'fk_events_period'
	`).Count(&exists)

	if exists > 0 {
		return nil
	}

	colors.PrintInfo("Adding events -> periods foreign key...")
	if err := db.Exec(`ALTER TABLE events ADD CONSTRAINT fk_events_period
		FOREIGN KEY (period_id) REFERENCES periods(id) ON DELETE CASCADE`).Error; err != nil {
		colors.PrintWarning("Could not add events -> periods foreign key: %v", err)
		return nil
	}
	colors.PrintSuccess("Events -> periods foreign key added")
	return nil
}

// SamplePeriods is the starter list of Vietnamese historical periods.
func SamplePeriods() []models.Period {
	return []models.Period{
		{Slug: "van-lang-au-lac", Name: "Văn Lang – Âu Lạc", Timeframe: "2879 TCN – 179 TCN", Position: 1},
		{Slug: "bac-thuoc", Name: "Bắc thuộc", Timeframe: "179 TCN – 938", Position: 2},
		{Slug: "ngo-dinh-tien-le", Name: "Ngô – Đinh – Tiền Lê", Timeframe: "939 – 1009", Position: 3},
		{Slug: "ly", Name: "Nhà Lý", Timeframe: "1009 – 1225", Position: 4},
		{Slug: "tran", Name: "Nhà Trần", Timeframe: "1225 – 1400", Position: 5},
		{Slug: "ho", Name: "Nhà Hồ", Timeframe: "1400 – 1407", Position: 6},
		{Slug: "le", Name: "Nhà Hậu Lê", Timeframe: "1428 – 1789", Position: 7},
		{Slug: "tay-son", Name: "Tây Sơn", Timeframe: "1778 – 1802", Position: 8},
		{Slug: "nguyen", Name: "Nhà Nguyễn", Timeframe: "1802 – 1945", Position: 9},
	}
}

// SeedPeriods inserts the sample periods when the periods table is empty
func SeedPeriods(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Period{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		colors.PrintInfo("Periods already present (%d), skipping sample data", count)
		return nil
	}

	periods := SamplePeriods()
	if err := db.Create(&periods).Error; err != nil {
		return fmt.Errorf("seed periods: %w", err)
	}
	colors.PrintSuccess("Seeded %d sample periods", len(periods))
	return nil
}
