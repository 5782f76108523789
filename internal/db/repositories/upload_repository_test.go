package repositories

import (
	"context"
	"testing"
	"time"

	gormModels "arkfleet/opsboard/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&gormModels.Upload{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestUploadRepository_RecordAndRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUploadRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	uploads := []gormModels.Upload{
		{Filename: "roster_june.json", Format: "roster", TargetTable: "drivers_report", RowsWritten: 40, CreatedAt: base},
		{Filename: "trip_history.csv", Format: "trip_history", TargetTable: "csv_trips", RowsWritten: 120, RowsSkipped: 2, CreatedAt: base.Add(time.Minute)},
		{Filename: "schedule.json", Format: "schedule", TargetTable: "schedule_trips", RowsWritten: 80, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range uploads {
		if err := repo.Record(ctx, &uploads[i]); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected limit of 2, got %d", len(recent))
	}
	if recent[0].Filename != "schedule.json" || recent[1].Filename != "trip_history.csv" {
		t.Errorf("Expected newest first, got %q then %q", recent[0].Filename, recent[1].Filename)
	}
	if recent[1].RowsSkipped != 2 {
		t.Errorf("Expected skip count to round-trip, got %d", recent[1].RowsSkipped)
	}
}

func TestUploadRepository_RecentEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUploadRepository(db)

	recent, err := repo.Recent(context.Background(), 20)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no rows, got %d", len(recent))
	}
}
